package fastexcel

import (
	"github.com/ToucanToco/fastexcel/pkg/fastexcel/grid"
)

// Reader resolves sheets and tables from a workbook. It is safe for
// concurrent use: the workbook is read-only and every Load call builds
// an independent descriptor.
type Reader struct {
	wb grid.Workbook
}

// NewReader wraps an already-loaded workbook.
func NewReader(wb grid.Workbook) *Reader {
	return &Reader{wb: wb}
}

// OpenFile reads the workbook at path into memory and returns a Reader
// over it.
func OpenFile(path string) (*Reader, error) {
	wb, err := grid.OpenWorkbook(path)
	if err != nil {
		return nil, err
	}
	return NewReader(wb), nil
}

// SheetNames lists the workbook's sheets in workbook order.
func (r *Reader) SheetNames() []string {
	return r.wb.SheetNames()
}

// TableNames lists the workbook's named tables.
func (r *Reader) TableNames() []string {
	return r.wb.TableNames()
}

// LoadSheet resolves a sheet addressed by 0-based position or by name.
func (r *Reader) LoadSheet(sheet IdxOrName, opts LoadOptions) (*Sheet, error) {
	name, ok := r.sheetName(sheet)
	if !ok {
		return nil, &SheetNotFoundError{Sheet: sheet}
	}
	g, ok := r.wb.Sheet(name)
	if !ok {
		return nil, &SheetNotFoundError{Sheet: sheet}
	}
	return newSheet(name, g, 0, opts)
}

func (r *Reader) sheetName(sheet IdxOrName) (string, bool) {
	if name, byName := sheet.ColumnName(); byName {
		for _, n := range r.wb.SheetNames() {
			if n == name {
				return name, true
			}
		}
		return "", false
	}
	idx, _ := sheet.Index()
	names := r.wb.SheetNames()
	if idx < 0 || idx >= len(names) {
		return "", false
	}
	return names[idx], true
}

// LoadTable resolves a named table.
func (r *Reader) LoadTable(name string, opts LoadOptions) (*Table, error) {
	region, ok := r.wb.Table(name)
	if !ok {
		return nil, &TableNotFoundError{Name: name}
	}
	return newTable(region, opts)
}
