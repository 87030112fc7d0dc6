package fastexcel

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ToucanToco/fastexcel/pkg/fastexcel/grid"
)

// Sheet is a resolved sheet (or, through Table, a table region): its row
// window, named columns, selection and dtypes. A Sheet never mutates
// after construction, so any number of goroutines may extract from it
// concurrently without locking.
type Sheet struct {
	name      string
	g         grid.Grid
	pag       pagination
	sample    []int
	coercion  DTypeCoercion
	available []ColumnView
	selected  []ColumnInfo
	dtypes    *DTypes
	diag      zerolog.Logger
}

func newSheet(name string, g grid.Grid, colOffset int, opts LoadOptions) (*Sheet, error) {
	h := opts.header()
	if h.kind == headerAt && h.row < 0 {
		return nil, invalidParamsf("header_row cannot be negative, got %d", h.row)
	}
	coercion, err := opts.coercion()
	if err != nil {
		return nil, err
	}
	if opts.SchemaSampleRows != nil && *opts.SchemaSampleRows <= 0 {
		return nil, invalidParamsf("schema_sample_rows must be strictly positive, got %d", *opts.SchemaSampleRows)
	}

	pag, err := resolvePagination(g, h, opts.SkipRows, opts.NRows, opts.SkipWhitespaceTailRows)
	if err != nil {
		return nil, err
	}

	available, err := buildColumnViews(g, h, opts.UseColumns, colOffset)
	if err != nil {
		return nil, err
	}

	selViews, err := opts.UseColumns.resolve(available, h.kind == headerWith)
	if err != nil {
		return nil, err
	}

	sample := pag.rows
	if opts.SchemaSampleRows != nil && *opts.SchemaSampleRows < len(sample) {
		sample = sample[:*opts.SchemaSampleRows]
	}

	s := &Sheet{
		name:      name,
		g:         g,
		pag:       pag,
		sample:    sample,
		coercion:  coercion,
		available: available,
		dtypes:    opts.DTypes,
		diag:      opts.diagnostics(),
	}

	selected := make([]ColumnInfo, len(selViews))
	for i, view := range selViews {
		info, err := s.finalizeColumn(view)
		if err != nil {
			return nil, err
		}
		selected[i] = info
	}
	s.selected = selected

	return s, nil
}

// finalizeColumn attaches a dtype to a named column: the explicit
// specification wins, otherwise the dtype is guessed from the sample.
func (s *Sheet) finalizeColumn(view ColumnView) (ColumnInfo, error) {
	info := ColumnInfo{
		Name:          view.Name,
		Index:         view.Index,
		AbsoluteIndex: view.AbsoluteIndex,
		NameOrigin:    view.NameOrigin,
	}

	if dt, origin, ok := s.dtypes.lookup(view.AbsoluteIndex, view.Name); ok {
		info.DType, info.DTypeOrigin = dt, origin
		return info, nil
	}

	dt, err := dtypeForColumn(s.g, s.sample, view.Index, view.Name, s.coercion, s.diag)
	if err != nil {
		return ColumnInfo{}, fmt.Errorf("could not determine dtype for column %q: %w", view.Name, err)
	}
	info.DType, info.DTypeOrigin = dt, DTypeGuessed
	return info, nil
}

// Name is the sheet's name.
func (s *Sheet) Name() string { return s.name }

// Width is the number of physical columns.
func (s *Sheet) Width() int { return s.g.Width() }

// Height is the number of rows in the extracted window, after skipping,
// capping and tail trimming.
func (s *Sheet) Height() int { return len(s.pag.rows) }

// TotalHeight is the number of data rows before pagination.
func (s *Sheet) TotalHeight() int { return s.pag.totalHeight }

// Offset is the absolute row where the extracted window starts.
func (s *Sheet) Offset() int { return s.pag.start }

// SelectedColumns returns the columns chosen by the selection, in
// selection order.
func (s *Sheet) SelectedColumns() []ColumnInfo {
	out := make([]ColumnInfo, len(s.selected))
	copy(out, s.selected)
	return out
}

// AvailableColumns resolves every physical column, including the
// unselected ones. Dtypes are resolved on each call under the same
// policy as the selection; with strict coercion a conflict in an
// unselected column surfaces here rather than at load time.
func (s *Sheet) AvailableColumns() ([]ColumnInfo, error) {
	out := make([]ColumnInfo, len(s.available))
	for i, view := range s.available {
		info, err := s.finalizeColumn(view)
		if err != nil {
			return nil, err
		}
		out[i] = info
	}
	return out, nil
}

// SpecifiedDTypes echoes back the caller's dtype specification.
func (s *Sheet) SpecifiedDTypes() *DTypes { return s.dtypes }
