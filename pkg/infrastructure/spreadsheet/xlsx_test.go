package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/vsinha/prodtrack/pkg/application/dto"
	"github.com/vsinha/prodtrack/pkg/domain/entities"
)

func workbook(t *testing.T, sheet string, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadBOM(t *testing.T) {
	buf := workbook(t, "Import", [][]interface{}{
		{"subassembly", "component", "quantity"},
		{"Drive unit", "Motor 24V", 2},
		{"Drive unit", "Flux capacitor", 1},
	})

	rows, err := ReadBOM(buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Drive unit", rows[0].SubassemblyName)
	assert.Equal(t, []dto.ImportRequirement{
		{ComponentName: "Motor 24V", Quantity: 2},
		{ComponentName: "Flux capacitor", Quantity: 1},
	}, rows[0].Requirements)
}

func TestReadQuantities(t *testing.T) {
	buf := workbook(t, QuantitySheet, [][]interface{}{
		{"Name", "Quantity"},
		{"Motor 24V", 50},
		{"Cart", 3},
	})

	updates, err := ReadQuantities(buf)
	require.NoError(t, err)
	assert.Equal(t, []dto.QuantityUpdate{{Name: "Motor 24V", Quantity: 50}, {Name: "Cart", Quantity: 3}}, updates)
}

func TestReadBOM_NotAWorkbook(t *testing.T) {
	_, err := ReadBOM(bytes.NewBufferString("subassembly,component,quantity\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read excel")
}

func TestWriteShortfall(t *testing.T) {
	deadline := 2
	report := &dto.ShortfallReport{
		ProductionCycleDays: 30,
		Rows: []entities.ShortfallRow{
			{Name: "Motor 24V", Required: 20, Stock: 12, Shortfall: 8, LeadTimeDays: 28, OrderDeadline: &deadline,
				Urgency: entities.Urgent, OrderCost: decimal.NewFromInt(280)},
			{Name: "Wheel", Required: 80, Stock: 100, LeadTimeDays: 3, Urgency: entities.InStock, OrderCost: decimal.Zero},
		},
		ShortCount:     1,
		TotalOrderCost: decimal.NewFromInt(280),
	}

	f, err := WriteShortfall(report)
	require.NoError(t, err)

	rows, err := f.GetRows(ShortfallSheet)
	require.NoError(t, err)
	assert.Equal(t, shortfallHeaders, rows[0])
	assert.Equal(t, []string{"Motor 24V", "20", "12", "8", "28", "2", "urgent", "280"}, rows[1])
	assert.Equal(t, "", rows[2][5], "rows in stock have no deadline")

	total, err := f.GetCellValue(ShortfallSheet, "H5")
	require.NoError(t, err)
	assert.Equal(t, "280", total)
}

func TestTemplatesParse(t *testing.T) {
	bom, err := BOMTemplate()
	require.NoError(t, err)
	buf, err := bom.WriteToBuffer()
	require.NoError(t, err)
	rows, err := ReadBOM(buf)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	quantities, err := QuantityTemplate()
	require.NoError(t, err)
	buf, err = quantities.WriteToBuffer()
	require.NoError(t, err)
	updates, err := ReadQuantities(buf)
	require.NoError(t, err)
	assert.Equal(t, []dto.QuantityUpdate{{Name: "Motor 24V", Quantity: 12}}, updates)
}
