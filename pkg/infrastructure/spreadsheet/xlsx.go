package spreadsheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/vsinha/prodtrack/pkg/application/dto"
	"github.com/vsinha/prodtrack/pkg/domain/entities"
)

const (
	ShortfallSheet = "Shortfall"
	BOMSheet       = "BOM"
	QuantitySheet  = "Quantities"
)

var shortfallHeaders = []string{
	"Component", "Required", "Stock", "Shortfall", "Lead time (days)", "Order deadline (days)", "Urgency", "Order cost",
}

var urgencyFills = map[entities.Urgency]string{
	entities.InStock:     "#E2EFDA",
	entities.SafeToOrder: "#DDEBF7",
	entities.Urgent:      "#FFF2CC",
	entities.Critical:    "#F8CBAD",
}

// ReadBOM parses the first sheet of an xlsx workbook as a BOM sheet
func ReadBOM(r io.Reader) ([]dto.ImportRow, error) {
	records, err := readFirstSheet(r)
	if err != nil {
		return nil, err
	}
	return ParseBOMRows(records)
}

// ReadQuantities parses the first sheet of an xlsx workbook as a quantity sheet
func ReadQuantities(r io.Reader) ([]dto.QuantityUpdate, error) {
	records, err := readFirstSheet(r)
	if err != nil {
		return nil, err
	}
	return ParseQuantityRows(records)
}

func readFirstSheet(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("read excel: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read excel: %w", err)
	}
	return rows, nil
}

// WriteShortfall renders a shortfall report with one row per component, coloured by
// urgency, and a total order cost line
func WriteShortfall(report *dto.ShortfallReport) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", ShortfallSheet); err != nil {
		return nil, err
	}
	if err := writeHeader(f, ShortfallSheet, shortfallHeaders); err != nil {
		return nil, err
	}

	fills := make(map[entities.Urgency]int, len(urgencyFills))
	for urgency, color := range urgencyFills {
		style, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
		})
		if err != nil {
			return nil, err
		}
		fills[urgency] = style
	}

	for i, row := range report.Rows {
		line := i + 2
		deadline := interface{}("")
		if row.OrderDeadline != nil {
			deadline = *row.OrderDeadline
		}
		values := []interface{}{
			row.Name,
			int64(row.Required),
			int64(row.Stock),
			int64(row.Shortfall),
			row.LeadTimeDays,
			deadline,
			string(row.Urgency),
			row.OrderCost.InexactFloat64(),
		}
		if err := f.SetSheetRow(ShortfallSheet, fmt.Sprintf("A%d", line), &values); err != nil {
			return nil, err
		}
		if style, ok := fills[row.Urgency]; ok {
			if err := f.SetCellStyle(ShortfallSheet, fmt.Sprintf("G%d", line), fmt.Sprintf("G%d", line), style); err != nil {
				return nil, err
			}
		}
	}

	summary := len(report.Rows) + 3
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	f.SetCellValue(ShortfallSheet, fmt.Sprintf("A%d", summary), "Total")
	f.SetCellValue(ShortfallSheet, fmt.Sprintf("D%d", summary), report.ShortCount)
	f.SetCellValue(ShortfallSheet, fmt.Sprintf("H%d", summary), report.TotalOrderCost.InexactFloat64())
	f.SetCellValue(ShortfallSheet, fmt.Sprintf("A%d", summary+1), fmt.Sprintf("Production cycle: %d days", report.ProductionCycleDays))
	if err := f.SetCellStyle(ShortfallSheet, fmt.Sprintf("A%d", summary), fmt.Sprintf("H%d", summary), bold); err != nil {
		return nil, err
	}

	setWidths(f, ShortfallSheet, []float64{32, 10, 10, 10, 16, 20, 14, 12})
	return f, nil
}

// BOMTemplate returns an empty BOM sheet with one example line
func BOMTemplate() (*excelize.File, error) {
	return template(BOMSheet, BOMHeader, []interface{}{"Control unit", "Motor 24V", 1}, []float64{32, 32, 10})
}

// QuantityTemplate returns an empty quantity sheet with one example line
func QuantityTemplate() (*excelize.File, error) {
	return template(QuantitySheet, QuantityHeader, []interface{}{"Motor 24V", 12}, []float64{32, 10})
}

func template(sheet string, header []string, example []interface{}, widths []float64) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := writeHeader(f, sheet, header); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, "A2", &example); err != nil {
		return nil, err
	}
	setWidths(f, sheet, widths)
	return f, nil
}

func writeHeader(f *excelize.File, sheet string, header []string) error {
	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return err
	}
	for i, h := range header {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, bold); err != nil {
			return err
		}
	}
	return nil
}

func setWidths(f *excelize.File, sheet string, widths []float64) {
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}
}
