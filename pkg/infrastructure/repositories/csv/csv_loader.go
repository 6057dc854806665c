package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/vsinha/prodtrack/pkg/application/dto"
	"github.com/vsinha/prodtrack/pkg/infrastructure/spreadsheet"
)

// Loader handles loading bulk imports from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadBOM loads BOM import rows from a CSV file
func (l *Loader) LoadBOM(filename string) ([]dto.ImportRow, error) {
	records, err := readFile(filename, "BOM")
	if err != nil {
		return nil, err
	}
	return spreadsheet.ParseBOMRows(records)
}

// LoadQuantities loads quantity updates from a CSV file
func (l *Loader) LoadQuantities(filename string) ([]dto.QuantityUpdate, error) {
	records, err := readFile(filename, "quantities")
	if err != nil {
		return nil, err
	}
	return spreadsheet.ParseQuantityRows(records)
}

// ReadBOM parses BOM import rows from an uploaded CSV body
func (l *Loader) ReadBOM(r io.Reader) ([]dto.ImportRow, error) {
	records, err := read(r, "BOM")
	if err != nil {
		return nil, err
	}
	return spreadsheet.ParseBOMRows(records)
}

// ReadQuantities parses quantity updates from an uploaded CSV body
func (l *Loader) ReadQuantities(r io.Reader) ([]dto.QuantityUpdate, error) {
	records, err := read(r, "quantities")
	if err != nil {
		return nil, err
	}
	return spreadsheet.ParseQuantityRows(records)
}

func readFile(filename, kind string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()
	return read(file, kind)
}

func read(r io.Reader, kind string) ([][]string, error) {
	reader := csv.NewReader(r)
	// lines may omit trailing empty cells
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}
	return records, nil
}
