// Package spreadsheet reads bulk imports from sheets and writes planning reports.
// Sheets arrive as xlsx or csv; both are reduced to rows of cells before parsing.
package spreadsheet

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vsinha/prodtrack/pkg/application/dto"
	"github.com/vsinha/prodtrack/pkg/domain/entities"
)

// Column headers, compared case-insensitively
var (
	BOMHeader      = []string{"subassembly", "component", "quantity"}
	QuantityHeader = []string{"name", "quantity"}
)

// ParseBOMRows turns a BOM sheet into import rows. Consecutive lines with the same
// subassembly, or with an empty subassembly cell, belong to one row. A line without
// a component creates the subassembly with no requirements.
func ParseBOMRows(records [][]string) ([]dto.ImportRow, error) {
	body, err := body(records, BOMHeader, "BOM")
	if err != nil {
		return nil, err
	}

	var rows []dto.ImportRow
	for i, record := range body {
		line := i + 2
		if blank(record) {
			continue
		}
		record = pad(record, len(BOMHeader))

		name := strings.TrimSpace(record[0])
		if name == "" && len(rows) > 0 {
			name = rows[len(rows)-1].SubassemblyName
		}
		if len(rows) == 0 || name != rows[len(rows)-1].SubassemblyName {
			rows = append(rows, dto.ImportRow{SubassemblyName: name})
		}

		component := strings.TrimSpace(record[1])
		if component == "" {
			continue
		}
		quantity, err := parseQuantity(record[2])
		if err != nil {
			return nil, fmt.Errorf("BOM row %d: %w", line, err)
		}
		current := &rows[len(rows)-1]
		current.Requirements = append(current.Requirements, dto.ImportRequirement{
			ComponentName: component,
			Quantity:      quantity,
		})
	}
	return rows, nil
}

// ParseQuantityRows turns a quantity sheet into bulk updates
func ParseQuantityRows(records [][]string) ([]dto.QuantityUpdate, error) {
	body, err := body(records, QuantityHeader, "quantity")
	if err != nil {
		return nil, err
	}

	var updates []dto.QuantityUpdate
	for i, record := range body {
		if blank(record) {
			continue
		}
		record = pad(record, len(QuantityHeader))
		quantity, err := parseQuantity(record[1])
		if err != nil {
			return nil, fmt.Errorf("quantity row %d: %w", i+2, err)
		}
		updates = append(updates, dto.QuantityUpdate{Name: strings.TrimSpace(record[0]), Quantity: quantity})
	}
	return updates, nil
}

func body(records [][]string, expected []string, kind string) ([][]string, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%s sheet is empty", kind)
	}
	if !validateHeader(records[0], expected) {
		return nil, fmt.Errorf("%s sheet header mismatch. Expected: %v, Got: %v", kind, expected, records[0])
	}
	return records[1:], nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) < len(expected) {
		return false
	}
	for i, column := range expected {
		if !strings.EqualFold(strings.TrimSpace(actual[i]), column) {
			return false
		}
	}
	return true
}

// parseQuantity accepts integers and integral floats, which is how spreadsheet
// applications often render whole numbers
func parseQuantity(cell string) (entities.Quantity, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, fmt.Errorf("quantity is empty")
	}
	if n, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return entities.Quantity(n), nil
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("invalid quantity: %s", cell)
	}
	return entities.Quantity(f), nil
}

func blank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func pad(record []string, n int) []string {
	for len(record) < n {
		record = append(record, "")
	}
	return record
}
