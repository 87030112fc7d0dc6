package fastexcel

import (
	"github.com/ToucanToco/fastexcel/pkg/fastexcel/grid"
)

// Table is a named table region resolved like a sheet. Row and header
// positions are relative to the region; column letters and absolute
// indices keep addressing the host sheet's column space, so a table
// starting at column C has its first column at absolute index 2.
type Table struct {
	sheet     *Sheet
	sheetName string
	rowOffset int
	colOffset int
}

func newTable(region grid.TableRegion, opts LoadOptions) (*Table, error) {
	s, err := newSheet(region.Name, region.Grid, region.ColOffset, opts)
	if err != nil {
		return nil, err
	}
	return &Table{
		sheet:     s,
		sheetName: region.SheetName,
		rowOffset: region.RowOffset,
		colOffset: region.ColOffset,
	}, nil
}

// Name is the table's name.
func (t *Table) Name() string { return t.sheet.Name() }

// SheetName is the name of the sheet hosting the table.
func (t *Table) SheetName() string { return t.sheetName }

// Offset returns the region's top-left corner in the host sheet.
func (t *Table) Offset() (row, col int) { return t.rowOffset, t.colOffset }

// Width is the number of columns in the region.
func (t *Table) Width() int { return t.sheet.Width() }

// Height is the number of rows in the extracted window.
func (t *Table) Height() int { return t.sheet.Height() }

// TotalHeight is the number of data rows in the region before
// pagination.
func (t *Table) TotalHeight() int { return t.sheet.TotalHeight() }

func (t *Table) SelectedColumns() []ColumnInfo { return t.sheet.SelectedColumns() }

func (t *Table) AvailableColumns() ([]ColumnInfo, error) { return t.sheet.AvailableColumns() }

func (t *Table) SpecifiedDTypes() *DTypes { return t.sheet.SpecifiedDTypes() }

func (t *Table) ToColumns() []ColumnData { return t.sheet.ToColumns() }

func (t *Table) ToColumnsWithErrors() ([]ColumnData, []CellError) {
	return t.sheet.ToColumnsWithErrors()
}

func (t *Table) ToRows() [][]any { return t.sheet.ToRows() }
