package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/vsinha/prodtrack/pkg/infrastructure/spreadsheet"
)

var templateCmd = &cobra.Command{
	Use:       "template [bom|quantities] [file]",
	Short:     "Write an empty import workbook",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"bom", "quantities"},
	RunE:      runTemplate,
}

func runTemplate(cmd *cobra.Command, args []string) error {
	var (
		f   *excelize.File
		err error
	)
	switch args[0] {
	case "bom":
		f, err = spreadsheet.BOMTemplate()
	case "quantities":
		f, err = spreadsheet.QuantityTemplate()
	default:
		return fmt.Errorf("unknown template: %s (use 'bom' or 'quantities')", args[0])
	}
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(args[1]); err != nil {
		return fmt.Errorf("failed to write %s: %w", args[1], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Template written to %s\n", args[1])
	return nil
}
