package fastexcel

import (
	"github.com/ToucanToco/fastexcel/pkg/fastexcel/grid"
)

type headerKind uint8

const (
	headerNone headerKind = iota
	headerAt
	headerWith
)

// header is the resolved header specification: no label row, labels at
// an absolute row, or caller-provided names (which make every row data).
type header struct {
	kind  headerKind
	row   int
	names []string
}

// offset is the absolute row where data starts, before any skipping.
func (h header) offset() int {
	if h.kind == headerAt {
		return h.row + 1
	}
	return 0
}

type skipKind uint8

const (
	skipAuto skipKind = iota
	skipCount
	skipList
	skipFunc
)

// SkipRows specifies which data rows to exclude. A nil *SkipRows means
// the default: leading fully-blank rows are skipped when there is no
// header row.
type SkipRows struct {
	kind  skipKind
	count int
	list  map[int]bool
	fn    func(dataRow int) bool
}

// SkipRowsCount skips the first n rows after the header.
func SkipRowsCount(n int) *SkipRows {
	return &SkipRows{kind: skipCount, count: n}
}

// SkipRowsList skips exactly the given 0-based data-row indices.
func SkipRowsList(rows ...int) *SkipRows {
	list := make(map[int]bool, len(rows))
	for _, r := range rows {
		list[r] = true
	}
	return &SkipRows{kind: skipList, list: list}
}

// SkipRowsFunc skips the data rows for which fn returns true. fn is
// called with 0-based indices relative to the first data row.
func SkipRowsFunc(fn func(dataRow int) bool) *SkipRows {
	return &SkipRows{kind: skipFunc, fn: fn}
}

// shouldSkip reports whether the given data row is excluded. A
// panicking skip predicate is translated into an invalid-parameters
// error instead of crashing resolution.
func (s *SkipRows) shouldSkip(dataRow int) (skip bool, err error) {
	switch s.kind {
	case skipList:
		return s.list[dataRow], nil
	case skipFunc:
		if s.fn == nil {
			return false, invalidParamsf("skip_rows predicate must not be nil")
		}
		defer func() {
			if r := recover(); r != nil {
				skip, err = false, invalidParamsf("skip_rows predicate could not be called for row %d: %v", dataRow, r)
			}
		}()
		return s.fn(dataRow), nil
	default:
		return false, nil
	}
}

// pagination is the resolved row window: the absolute grid rows to
// extract, in order, plus the heights before and after windowing.
type pagination struct {
	// dataStart is the first absolute row after the header.
	dataStart int
	// start is dataStart plus any leading skip.
	start int
	// rows holds the absolute row indices of the extracted window.
	rows []int
	// totalHeight is the data row count ignoring skips and caps.
	totalHeight int
}

// resolvePagination turns the header/skip/cap options into an absolute
// row window over the grid.
func resolvePagination(g grid.Grid, h header, skip *SkipRows, nRows *int, trimWhitespaceTail bool) (pagination, error) {
	gridHeight := g.Height()
	dataStart := h.offset()

	if nRows != nil && *nRows < 0 {
		return pagination{}, invalidParamsf("n_rows cannot be negative, got %d", *nRows)
	}

	start := dataStart
	switch {
	case skip == nil || skip.kind == skipAuto:
		// Without an explicit header or skip spec, leading fully-blank
		// rows carry no information and are dropped.
		if h.kind == headerNone {
			for start < gridHeight && rowIsBlank(g, start) {
				start++
			}
		}
	case skip.kind == skipCount:
		if skip.count < 0 {
			return pagination{}, invalidParamsf("skip_rows cannot be negative, got %d", skip.count)
		}
		if skip.count > gridHeight {
			return pagination{}, invalidParamsf("too many rows skipped, max height is %d", gridHeight)
		}
		start += skip.count
	}

	var rows []int
	for row := start; row < gridHeight; row++ {
		if nRows != nil && len(rows) >= *nRows {
			break
		}
		if skip != nil {
			excluded, err := skip.shouldSkip(row - dataStart)
			if err != nil {
				return pagination{}, err
			}
			if excluded {
				continue
			}
		}
		rows = append(rows, row)
	}

	if trimWhitespaceTail {
		for len(rows) > 0 && rowIsBlank(g, rows[len(rows)-1]) {
			rows = rows[:len(rows)-1]
		}
	}

	totalHeight := gridHeight - dataStart
	if totalHeight < 0 {
		totalHeight = 0
	}
	return pagination{dataStart: dataStart, start: start, rows: rows, totalHeight: totalHeight}, nil
}

// rowIsBlank reports whether every cell of the row is empty or contains
// only whitespace.
func rowIsBlank(g grid.Grid, row int) bool {
	for col := 0; col < g.Width(); col++ {
		if !g.Cell(row, col).IsBlank() {
			return false
		}
	}
	return true
}
