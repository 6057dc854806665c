package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vsinha/prodtrack/pkg/domain/entities"
	"github.com/vsinha/prodtrack/pkg/interfaces/cli/output"
)

var (
	planCategory string
	planQuantity int64
	planCycle    int
	planFormat   string
	planVerbose  bool
)

var planCmd = &cobra.Command{
	Use:   "plan [root-id...]",
	Short: "Resolve production targets into component demand and shortfall",
	Long: `Resolve production targets into component demand and compare it with stock.

Examples:
  prodtrack plan cart-1 --quantity 20
  prodtrack plan --category cart --quantity 5 --format csv
  prodtrack plan cart-1 --cycle 60 --format json`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&planCategory, "category", "c", "", "plan every root of this category")
	planCmd.Flags().Int64VarP(&planQuantity, "quantity", "q", 1, "units to produce per target")
	planCmd.Flags().IntVar(&planCycle, "cycle", -1, "production cycle in days (default: planning.production_cycle_days)")
	planCmd.Flags().StringVarP(&planFormat, "format", "f", "text", "output format: text, json, csv, svg")
	planCmd.Flags().BoolVarP(&planVerbose, "verbose", "v", false, "list the visited subassemblies")
}

func planTargets(args []string, category string, quantity int64) ([]entities.PlanTarget, error) {
	if len(args) == 0 && category == "" {
		return nil, fmt.Errorf("name at least one root id or --category")
	}

	targets := make([]entities.PlanTarget, 0, len(args)+1)
	for _, id := range args {
		targets = append(targets, entities.PlanTarget{RootID: entities.NodeID(id), Quantity: entities.Quantity(quantity)})
	}
	if category != "" {
		targets = append(targets, entities.PlanTarget{CategoryID: entities.CategoryID(category), Quantity: entities.Quantity(quantity)})
	}
	return targets, nil
}

func runPlan(cmd *cobra.Command, args []string) error {
	targets, err := planTargets(args, planCategory, planQuantity)
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	var cycle *int
	if planCycle >= 0 {
		cycle = &planCycle
	}

	report, err := s.ws.Plan(targets, cycle)
	if err != nil {
		return fmt.Errorf("planning failed: %w", err)
	}

	return output.Generate(cmd.OutOrStdout(), report, output.Config{Format: planFormat, Verbose: planVerbose})
}
