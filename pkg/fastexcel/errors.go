package fastexcel

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidParameters indicates a malformed selection, pagination or
// dtype parameter.
var ErrInvalidParameters = errors.New("invalid parameters")

// ErrSheetNotFound indicates the requested sheet does not exist.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrTableNotFound indicates the requested table does not exist.
var ErrTableNotFound = errors.New("table not found")

// ErrColumnNotFound indicates a selected column index or name does not
// correspond to any available column.
var ErrColumnNotFound = errors.New("column not found")

// ErrUnsupportedColumnTypeCombination indicates that strict dtype
// coercion found incompatible cell types within one column's sample.
var ErrUnsupportedColumnTypeCombination = errors.New("unsupported column type combination")

func invalidParamsf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameters, fmt.Sprintf(format, args...))
}

// SheetNotFoundError reports a failed sheet lookup.
type SheetNotFoundError struct {
	Sheet IdxOrName
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("sheet %s not found", e.Sheet)
}

func (e *SheetNotFoundError) Unwrap() error { return ErrSheetNotFound }

// TableNotFoundError reports a failed table lookup.
type TableNotFoundError struct {
	Name string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("table named %q not found", e.Name)
}

func (e *TableNotFoundError) Unwrap() error { return ErrTableNotFound }

// ColumnNotFoundError reports a selection element that matched no
// available column. It carries the available columns for context.
type ColumnNotFoundError struct {
	Column    IdxOrName
	Available []ColumnView
}

func (e *ColumnNotFoundError) Error() string {
	names := make([]string, len(e.Available))
	for i, col := range e.Available {
		names[i] = fmt.Sprintf("%q (index %d)", col.Name, col.AbsoluteIndex)
	}
	return fmt.Sprintf("column %s not found, available columns are: [%s]",
		e.Column, strings.Join(names, ", "))
}

func (e *ColumnNotFoundError) Unwrap() error { return ErrColumnNotFound }

// UnsupportedColumnTypeCombinationError reports a strict-coercion
// conflict, scoped to the offending column.
type UnsupportedColumnTypeCombinationError struct {
	Column string
	DTypes []DType
}

func (e *UnsupportedColumnTypeCombinationError) Error() string {
	kinds := make([]string, len(e.DTypes))
	for i, dt := range e.DTypes {
		kinds[i] = string(dt)
	}
	return fmt.Sprintf("unsupported column type combination: dtype coercion is strict and column %q contains [%s]",
		e.Column, strings.Join(kinds, ", "))
}

func (e *UnsupportedColumnTypeCombinationError) Unwrap() error {
	return ErrUnsupportedColumnTypeCombination
}
