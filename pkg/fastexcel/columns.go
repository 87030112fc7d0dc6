package fastexcel

import (
	"fmt"
	"strings"

	"github.com/ToucanToco/fastexcel/pkg/fastexcel/grid"
)

// NameOrigin records how a column's name was determined.
type NameOrigin string

const (
	// NameProvided means the name was supplied by the caller.
	NameProvided NameOrigin = "provided"
	// NameLookedUp means the name was read from the header row.
	NameLookedUp NameOrigin = "looked_up"
	// NameGenerated means the name was synthesized from the position.
	NameGenerated NameOrigin = "generated"
)

// DTypeOrigin records how a column's dtype was determined.
type DTypeOrigin string

const (
	DTypeProvidedForAll  DTypeOrigin = "provided_for_all"
	DTypeProvidedByIndex DTypeOrigin = "provided_by_index"
	DTypeProvidedByName  DTypeOrigin = "provided_by_name"
	DTypeGuessed         DTypeOrigin = "guessed"
)

// ColumnInfo describes a single resolved column.
type ColumnInfo struct {
	// Name is the column's final name, after overrides and dedup.
	Name string `json:"name"`
	// Index is the 0-based position relative to the sheet or table's
	// left edge.
	Index int `json:"index"`
	// AbsoluteIndex is the 0-based position in the host sheet's full
	// column space, stable across selections and table offsets.
	AbsoluteIndex int         `json:"absolute_index"`
	DType         DType       `json:"dtype"`
	NameOrigin    NameOrigin  `json:"name_origin"`
	DTypeOrigin   DTypeOrigin `json:"dtype_origin"`
}

// ColumnView is a ColumnInfo without type information. It is what
// selection predicates receive, since the dtype is not resolved until
// the selection is known.
type ColumnView struct {
	Name          string     `json:"name"`
	Index         int        `json:"index"`
	AbsoluteIndex int        `json:"absolute_index"`
	NameOrigin    NameOrigin `json:"name_origin"`
}

func unnamedColumn(index int) string {
	return fmt.Sprintf("__UNNAMED__%d", index)
}

// buildColumnViews names every physical column of the grid: the caller's
// override wins, then the header cell's text, then a generated marker.
// Duplicate names are disambiguated afterwards by appendAliases.
func buildColumnViews(g grid.Grid, h header, selection *ColumnSelection, colOffset int) ([]ColumnView, error) {
	width := g.Width()
	views := make([]ColumnView, 0, width)

	switch h.kind {
	case headerNone:
		for col := 0; col < width; col++ {
			views = append(views, ColumnView{
				Name:          unnamedColumn(col),
				Index:         col,
				AbsoluteIndex: colOffset + col,
				NameOrigin:    NameGenerated,
			})
		}

	case headerAt:
		for col := 0; col < width; col++ {
			view := ColumnView{Index: col, AbsoluteIndex: colOffset + col}
			if text, ok := g.Cell(h.row, col).AsString(); ok {
				// Strings read from workbooks may carry embedded null
				// bytes; they break downstream FFI consumers.
				view.Name = strings.ReplaceAll(text, "\x00", "")
				view.NameOrigin = NameLookedUp
			} else {
				view.Name = unnamedColumn(col)
				view.NameOrigin = NameGenerated
			}
			views = append(views, view)
		}

	case headerWith:
		providedByAbs, err := providedNamePositions(h.names, selection, colOffset)
		if err != nil {
			return nil, err
		}
		for col := 0; col < width; col++ {
			view := ColumnView{Index: col, AbsoluteIndex: colOffset + col}
			if name, ok := providedByAbs[colOffset+col]; ok {
				view.Name = name
				view.NameOrigin = NameProvided
			} else {
				view.Name = unnamedColumn(col)
				view.NameOrigin = NameGenerated
			}
			views = append(views, view)
		}
	}

	return appendAliases(views), nil
}

// providedNamePositions maps absolute column indices to their provided
// names. With a list selection the names name the selected columns
// one-for-one; otherwise they name the leading columns.
func providedNamePositions(names []string, selection *ColumnSelection, colOffset int) (map[int]string, error) {
	byAbs := make(map[int]string, len(names))

	if selection != nil && selection.kind == selectList {
		if len(selection.list) != len(names) {
			return nil, invalidParamsf("column_names and use_columns must have the same length")
		}
		for pos, elem := range selection.list {
			idx, byIdx := elem.Index()
			if !byIdx {
				name, _ := elem.ColumnName()
				return nil, invalidParamsf(
					"use_columns can only contain integers when used with column_names, got %q", name)
			}
			byAbs[idx] = names[pos]
		}
		return byAbs, nil
	}

	for pos, name := range names {
		byAbs[colOffset+pos] = name
	}
	return byAbs, nil
}

// appendAliases renames later occurrences of duplicated names with a
// numeric suffix; the first occurrence keeps the bare name.
func appendAliases(views []ColumnView) []ColumnView {
	taken := make(map[string]bool, len(views))
	for i := range views {
		alias := views[i].Name
		for depth := 1; taken[alias]; depth++ {
			alias = fmt.Sprintf("%s_%d", views[i].Name, depth)
		}
		views[i].Name = alias
		taken[alias] = true
	}
	return views
}
