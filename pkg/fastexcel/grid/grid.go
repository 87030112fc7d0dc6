package grid

// Grid is a fixed snapshot of a rectangular cell region. Implementations
// must be immutable after construction so that concurrent readers need
// no locking.
type Grid interface {
	// Width is the number of columns in the region.
	Width() int
	// Height is the total number of rows in the region.
	Height() int
	// Cell returns the raw value at the 0-based position. Positions
	// outside the region yield an empty cell.
	Cell(row, col int) Cell
}

// TableRegion is a named rectangular region anchored inside a sheet.
type TableRegion struct {
	// Name is the table's workbook-wide name.
	Name string
	// SheetName is the host sheet.
	SheetName string
	// RowOffset and ColOffset anchor the region in the host sheet's
	// 0-based coordinate space.
	RowOffset int
	ColOffset int
	// Grid holds the region's cells, addressed relative to the anchor.
	Grid Grid
}

// Workbook supplies sheet grids and table regions. Lookups after
// construction are infallible; adapters snapshot their source up front.
type Workbook interface {
	// SheetNames lists the sheets in workbook order.
	SheetNames() []string
	// Sheet returns the grid for the named sheet.
	Sheet(name string) (Grid, bool)
	// TableNames lists the defined tables across all sheets.
	TableNames() []string
	// Table returns the named table region.
	Table(name string) (TableRegion, bool)
}

// Section returns a view of g restricted to the given region. The view
// shares g's cells and is as immutable as g itself.
func Section(g Grid, rowOffset, colOffset, height, width int) Grid {
	return &section{g: g, rowOffset: rowOffset, colOffset: colOffset, height: height, width: width}
}

type section struct {
	g                    Grid
	rowOffset, colOffset int
	height, width        int
}

func (s *section) Width() int  { return s.width }
func (s *section) Height() int { return s.height }

func (s *section) Cell(row, col int) Cell {
	if row < 0 || row >= s.height || col < 0 || col >= s.width {
		return Empty()
	}
	return s.g.Cell(s.rowOffset+row, s.colOffset+col)
}
