// Package fastexcel resolves which columns of a spreadsheet sheet or
// named table to extract, what they are named, which data type each
// carries, and how raw cells convert into that type — recording, rather
// than failing on, cells that cannot be converted.
package fastexcel

import (
	"github.com/rs/zerolog"
)

// LoadOptions configures how a sheet or table is resolved. The zero
// value reads a header row at row 0, keeps every row and column, infers
// all dtypes over the full window and coerces type conflicts to string.
type LoadOptions struct {
	// HeaderRow is the absolute row holding the column labels. If nil,
	// row 0 is used unless NoHeaderRow is set. For tables the row is
	// relative to the table region.
	HeaderRow *int
	// NoHeaderRow disables the header row entirely; data starts at the
	// first row and column names are generated.
	NoHeaderRow bool
	// ColumnNames overrides column names. When set, HeaderRow is
	// ignored, every row is data, and any UseColumns list may only
	// contain integers.
	ColumnNames []string
	// SkipRows excludes data rows; nil skips leading blank rows when
	// there is no header row.
	SkipRows *SkipRows
	// NRows caps the number of rows returned after skipping. Oversized
	// values are clamped.
	NRows *int
	// SchemaSampleRows bounds how many rows are inspected to infer a
	// column's dtype. Nil samples every row; zero or negative values
	// are invalid.
	SchemaSampleRows *int
	// DTypeCoercion selects the coercion policy; empty means coerce.
	DTypeCoercion DTypeCoercion
	// UseColumns selects and orders the extracted columns; nil selects
	// all of them.
	UseColumns *ColumnSelection
	// DTypes provides explicit dtypes, for all columns or per column.
	DTypes *DTypes
	// SkipWhitespaceTailRows trims the trailing run of rows that are
	// empty or pure whitespace across all columns.
	SkipWhitespaceTailRows bool
	// Diagnostics receives non-fatal resolution notices, such as dtype
	// fallbacks. Nil discards them.
	Diagnostics *zerolog.Logger
}

func (o LoadOptions) header() header {
	if len(o.ColumnNames) > 0 {
		return header{kind: headerWith, names: o.ColumnNames}
	}
	if o.NoHeaderRow {
		return header{kind: headerNone}
	}
	row := 0
	if o.HeaderRow != nil {
		row = *o.HeaderRow
	}
	return header{kind: headerAt, row: row}
}

func (o LoadOptions) coercion() (DTypeCoercion, error) {
	if o.DTypeCoercion == "" {
		return DTypeCoerce, nil
	}
	return ParseDTypeCoercion(string(o.DTypeCoercion))
}

func (o LoadOptions) diagnostics() zerolog.Logger {
	if o.Diagnostics != nil {
		return *o.Diagnostics
	}
	return zerolog.Nop()
}
