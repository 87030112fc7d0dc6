package grid

// MemGrid is an in-memory Grid, used for tests and for embedding data
// that does not come from a workbook file.
type MemGrid struct {
	width int
	rows  [][]Cell
}

// NewMemGrid builds a grid from row slices. Rows may be ragged; the
// grid's width is the widest row and missing cells read as empty.
func NewMemGrid(rows [][]Cell) *MemGrid {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return &MemGrid{width: width, rows: rows}
}

func (g *MemGrid) Width() int  { return g.width }
func (g *MemGrid) Height() int { return len(g.rows) }

func (g *MemGrid) Cell(row, col int) Cell {
	if row < 0 || row >= len(g.rows) {
		return Empty()
	}
	r := g.rows[row]
	if col < 0 || col >= len(r) {
		return Empty()
	}
	return r[col]
}

// MemWorkbook is an in-memory Workbook assembled from grids and table
// regions. It is the snapshot target of the excelize adapter and the
// natural fixture type for tests.
type MemWorkbook struct {
	sheetNames []string
	sheets     map[string]Grid
	tableNames []string
	tables     map[string]TableRegion
}

func NewMemWorkbook() *MemWorkbook {
	return &MemWorkbook{
		sheets: make(map[string]Grid),
		tables: make(map[string]TableRegion),
	}
}

// AddSheet registers a sheet grid. Re-adding a name replaces its grid
// but keeps its position in the sheet order.
func (w *MemWorkbook) AddSheet(name string, g Grid) *MemWorkbook {
	if _, ok := w.sheets[name]; !ok {
		w.sheetNames = append(w.sheetNames, name)
	}
	w.sheets[name] = g
	return w
}

// AddTable registers a table region under its name.
func (w *MemWorkbook) AddTable(region TableRegion) *MemWorkbook {
	if _, ok := w.tables[region.Name]; !ok {
		w.tableNames = append(w.tableNames, region.Name)
	}
	w.tables[region.Name] = region
	return w
}

func (w *MemWorkbook) SheetNames() []string {
	names := make([]string, len(w.sheetNames))
	copy(names, w.sheetNames)
	return names
}

func (w *MemWorkbook) Sheet(name string) (Grid, bool) {
	g, ok := w.sheets[name]
	return g, ok
}

func (w *MemWorkbook) TableNames() []string {
	names := make([]string, len(w.tableNames))
	copy(names, w.tableNames)
	return names
}

func (w *MemWorkbook) Table(name string) (TableRegion, bool) {
	region, ok := w.tables[name]
	return region, ok
}
