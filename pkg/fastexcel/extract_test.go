package fastexcel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ToucanToco/fastexcel/pkg/fastexcel/grid"
)

func TestToColumnsWithErrorsPositions(t *testing.T) {
	g := grid.NewMemGrid([][]grid.Cell{
		{grid.String("id"), grid.String("label")},
		{grid.Int(1), grid.String("a")},
		{grid.String("abc"), grid.String("b")},
		{grid.Int(3), grid.String("c")},
	})
	reader := NewReader(grid.NewMemWorkbook().AddSheet("s", g))

	sheet, err := reader.LoadSheet(Idx(0), LoadOptions{
		DTypes: DTypeMap(map[IdxOrName]DType{Name("id"): DTypeInt}),
	})
	require.NoError(t, err)

	cols, cellErrs := sheet.ToColumnsWithErrors()
	require.Len(t, cols, 2)
	assert.Equal(t, []any{int64(1), nil, int64(3)}, cols[0].Values)
	assert.Equal(t, []any{"a", "b", "c"}, cols[1].Values)

	// Positions are relative to the extracted window and the selection.
	require.Len(t, cellErrs, 1)
	assert.Equal(t, 1, cellErrs[0].Row)
	assert.Equal(t, 0, cellErrs[0].Col)
	assert.Contains(t, cellErrs[0].Detail, `"abc"`)
	assert.Contains(t, cellErrs[0].Error(), "row 1, col 0")
}

func TestToColumnsWithErrorsCleanIsNil(t *testing.T) {
	sheet, err := monthYearReader().LoadSheet(Idx(0), LoadOptions{})
	require.NoError(t, err)

	_, cellErrs := sheet.ToColumnsWithErrors()
	assert.Nil(t, cellErrs)
}

func TestToRows(t *testing.T) {
	sheet, err := monthYearReader().LoadSheet(Idx(0), LoadOptions{})
	require.NoError(t, err)

	rows := sheet.ToRows()
	require.Len(t, rows, 2)
	assert.Equal(t, []any{1.0, 2019.0}, rows[0])
	assert.Equal(t, []any{2.0, 2020.0}, rows[1])
}

func TestConvertCell(t *testing.T) {
	dt := time.Date(2021, 6, 1, 8, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		cell  grid.Cell
		dtype DType
		want  any
		ok    bool
	}{
		{"empty is null", grid.Empty(), DTypeInt, nil, true},
		{"error marker is null", grid.CellError("#N/A"), DTypeFloat, nil, true},
		{"null string is null", grid.String("NULL"), DTypeString, nil, true},
		{"null dtype swallows values", grid.Int(3), DTypeNull, nil, true},
		{"int from float", grid.Float(3.0), DTypeInt, int64(3), true},
		{"int from fractional float", grid.Float(3.5), DTypeInt, nil, false},
		{"float from bool", grid.Bool(true), DTypeFloat, 1.0, true},
		{"string from float", grid.Float(29.020000000000003), DTypeString, "29.02", true},
		{"bool from string", grid.String("yes"), DTypeBool, nil, false},
		{"datetime from string", grid.String("2021-06-01 08:30:00"), DTypeDateTime, dt, true},
		{"date truncates", grid.DateTime(dt), DTypeDate, time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC), true},
		{"duration from serial", grid.Float(0.5), DTypeDuration, 12 * time.Hour, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := convertCell(tt.cell, tt.dtype)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
