package fastexcel

import (
	"fmt"

	"github.com/ToucanToco/fastexcel/pkg/fastexcel/grid"
)

// ColumnData is one extracted column: its descriptor plus one value per
// window row. Values hold nil, bool, int64, float64, string, time.Time
// or time.Duration depending on the column's dtype; nil marks a cell
// that was empty, null-like or unconvertible.
type ColumnData struct {
	Info   ColumnInfo
	Values []any
}

// CellError records a cell that could not be converted to its column's
// dtype. Row is relative to the extracted window, Col to the selection.
type CellError struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Detail string `json:"detail"`
}

func (e CellError) Error() string {
	return fmt.Sprintf("cell error at row %d, col %d: %s", e.Row, e.Col, e.Detail)
}

// ToColumns extracts the selected columns. Unconvertible cells become
// nil values; use ToColumnsWithErrors to know which ones.
func (s *Sheet) ToColumns() []ColumnData {
	cols, _ := s.extract(false)
	return cols
}

// ToColumnsWithErrors extracts the selected columns and reports every
// cell that failed to convert. The error slice is nil when all cells
// converted cleanly.
func (s *Sheet) ToColumnsWithErrors() ([]ColumnData, []CellError) {
	return s.extract(true)
}

func (s *Sheet) extract(collectErrors bool) ([]ColumnData, []CellError) {
	cols := make([]ColumnData, len(s.selected))
	var cellErrs []CellError

	for ci, info := range s.selected {
		values := make([]any, len(s.pag.rows))
		for ri, row := range s.pag.rows {
			v, ok := convertCell(s.g.Cell(row, info.Index), info.DType)
			values[ri] = v
			if !ok && collectErrors {
				cellErrs = append(cellErrs, CellError{
					Row:    ri,
					Col:    ci,
					Detail: conversionDetail(s.g.Cell(row, info.Index), info.DType),
				})
			}
		}
		cols[ci] = ColumnData{Info: info, Values: values}
	}

	return cols, cellErrs
}

// ToRows extracts the selected columns row-major. Each inner slice holds
// one value per selected column, in selection order.
func (s *Sheet) ToRows() [][]any {
	rows := make([][]any, len(s.pag.rows))
	for ri, row := range s.pag.rows {
		record := make([]any, len(s.selected))
		for ci, info := range s.selected {
			record[ci], _ = convertCell(s.g.Cell(row, info.Index), info.DType)
		}
		rows[ri] = record
	}
	return rows
}

// convertCell converts a raw cell to the column dtype. It returns the
// converted value and whether conversion succeeded; empty and null-like
// cells yield (nil, true) since columns are nullable by contract, while
// an unconvertible cell yields (nil, false).
func convertCell(c grid.Cell, dt DType) (any, bool) {
	if c.IsEmpty() || c.Kind() == grid.KindError {
		return nil, true
	}
	if s, ok := c.AsString(); ok && c.Kind() == grid.KindString && nullStrings[s] {
		return nil, true
	}

	switch dt {
	case DTypeNull:
		return nil, true
	case DTypeBool:
		if v, ok := c.AsBool(); ok {
			return v, true
		}
	case DTypeInt:
		if v, ok := c.AsInt(); ok {
			return v, true
		}
	case DTypeFloat:
		if v, ok := c.AsFloat(); ok {
			return v, true
		}
	case DTypeString:
		if v, ok := c.AsString(); ok {
			return v, true
		}
	case DTypeDateTime:
		if v, ok := c.AsDateTime(); ok {
			return v, true
		}
	case DTypeDate:
		if v, ok := c.AsDate(); ok {
			return v, true
		}
	case DTypeDuration:
		if v, ok := c.AsDuration(); ok {
			return v, true
		}
	}
	return nil, false
}

func conversionDetail(c grid.Cell, dt DType) string {
	if s, ok := c.AsString(); ok {
		return fmt.Sprintf("cannot convert %s value %q to %s", c.Kind(), s, dt)
	}
	return fmt.Sprintf("cannot convert %s value to %s", c.Kind(), dt)
}
