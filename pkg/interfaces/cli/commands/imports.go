package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vsinha/prodtrack/pkg/application/dto"
	"github.com/vsinha/prodtrack/pkg/domain/entities"
	"github.com/vsinha/prodtrack/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/prodtrack/pkg/infrastructure/spreadsheet"
	"github.com/vsinha/prodtrack/pkg/interfaces/cli/output"
)

var importCategory string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import spreadsheets into the workspace",
	Long: `Import a BOM or a quantity sheet. Files ending in .csv are read as CSV,
anything else as an Excel workbook.

Examples:
  prodtrack import bom control-units.xlsx --category control
  prodtrack import quantities stock.csv`,
}

var importBOMCmd = &cobra.Command{
	Use:   "bom [file]",
	Short: "Create one subassembly per BOM row",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportBOM,
}

var importQuantitiesCmd = &cobra.Command{
	Use:   "quantities [file]",
	Short: "Set component stock and subassembly quantities by name",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportQuantities,
}

func init() {
	importBOMCmd.Flags().StringVarP(&importCategory, "category", "c", "", "category receiving the subassemblies")
	_ = importBOMCmd.MarkFlagRequired("category")

	importCmd.AddCommand(importBOMCmd)
	importCmd.AddCommand(importQuantitiesCmd)
}

func isCSV(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".csv")
}

func readBOMFile(filename string) ([]dto.ImportRow, error) {
	if isCSV(filename) {
		return csv.NewLoader().LoadBOM(filename)
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer f.Close()
	return spreadsheet.ReadBOM(f)
}

func readQuantityFile(filename string) ([]dto.QuantityUpdate, error) {
	if isCSV(filename) {
		return csv.NewLoader().LoadQuantities(filename)
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer f.Close()
	return spreadsheet.ReadQuantities(f)
}

func runImportBOM(cmd *cobra.Command, args []string) error {
	rows, err := readBOMFile(args[0])
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	result, err := s.ws.ImportBOM(entities.CategoryID(importCategory), rows)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	output.ImportSummary(cmd.OutOrStdout(), result)
	return nil
}

func runImportQuantities(cmd *cobra.Command, args []string) error {
	updates, err := readQuantityFile(args[0])
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	output.QuantitySummary(cmd.OutOrStdout(), s.ws.ApplyQuantities(updates))
	return nil
}
