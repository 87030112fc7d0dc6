package fastexcel

import (
	"fmt"
	"strings"
)

// IdxOrName addresses a column either by absolute index or by name. Use
// the Idx and Name constructors; the zero value is index 0.
type IdxOrName struct {
	idx    int
	name   string
	isName bool
}

// Idx addresses a column by its absolute index in the host sheet.
func Idx(i int) IdxOrName { return IdxOrName{idx: i} }

// Name addresses a column by its resolved name.
func Name(s string) IdxOrName { return IdxOrName{name: s, isName: true} }

// Index returns the index and whether this addresses by index.
func (v IdxOrName) Index() (int, bool) { return v.idx, !v.isName }

// ColumnName returns the name and whether this addresses by name.
func (v IdxOrName) ColumnName() (string, bool) { return v.name, v.isName }

func (v IdxOrName) String() string {
	if v.isName {
		return fmt.Sprintf("named %q", v.name)
	}
	return fmt.Sprintf("at index %d", v.idx)
}

type selectionKind uint8

const (
	selectAll selectionKind = iota
	selectList
	selectRange
	selectPredicate
)

// ColumnSelection is the parsed form of a column-selection
// specification: all columns, an ordered list of indices/names, a
// spreadsheet-letter range expression, or a per-column predicate.
// A nil *ColumnSelection selects all columns.
type ColumnSelection struct {
	kind   selectionKind
	list   []IdxOrName
	tokens []rangeToken
	raw    string
	pred   func(ColumnView) bool
}

// SelectAll selects every available column in natural order.
func SelectAll() *ColumnSelection { return &ColumnSelection{kind: selectAll} }

// SelectColumns selects columns one by one, in the declared order.
func SelectColumns(columns ...IdxOrName) *ColumnSelection {
	return &ColumnSelection{kind: selectList, list: columns}
}

// SelectFunc selects the columns for which pred returns true, in
// natural order. The view passed to pred carries no dtype, since dtypes
// are not resolved until the selection is known.
func SelectFunc(pred func(ColumnView) bool) *ColumnSelection {
	return &ColumnSelection{kind: selectPredicate, pred: pred}
}

type rangeTokenKind uint8

const (
	tokenFixed rangeTokenKind = iota
	tokenClosed
	tokenOpenEnded
	tokenFromStart
)

type rangeToken struct {
	kind       rangeTokenKind
	start, end int
}

// ParseColumnRange parses a comma-separated range expression such as
// "A,B:D,F:" into a selection. Letters are case-insensitive and address
// the host sheet's absolute column space.
func ParseColumnRange(raw string) (*ColumnSelection, error) {
	upper := strings.ToUpper(raw)
	parts := strings.Split(upper, ",")
	tokens := make([]rangeToken, 0, len(parts))
	for _, part := range parts {
		token, err := parseRangeToken(part)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return &ColumnSelection{kind: selectRange, tokens: tokens, raw: upper}, nil
}

func parseRangeToken(part string) (rangeToken, error) {
	if !strings.Contains(part, ":") {
		idx, err := letterToIndex(part)
		if err != nil {
			return rangeToken{}, err
		}
		return rangeToken{kind: tokenFixed, start: idx}, nil
	}

	bounds := strings.Split(part, ":")
	if len(bounds) != 2 {
		return rangeToken{}, invalidParamsf(
			"expected range to contain exactly 2 elements, got %d: %q", len(bounds), part)
	}
	if bounds[0] == "" && bounds[1] == "" {
		return rangeToken{}, invalidParamsf("cannot have both start and end empty in range: %q", part)
	}
	if bounds[0] == "" {
		end, err := letterToIndex(bounds[1])
		if err != nil {
			return rangeToken{}, fmt.Errorf("invalid end element for range %q: %w", part, err)
		}
		return rangeToken{kind: tokenFromStart, end: end}, nil
	}
	start, err := letterToIndex(bounds[0])
	if err != nil {
		return rangeToken{}, fmt.Errorf("invalid start element for range %q: %w", part, err)
	}
	if bounds[1] == "" {
		return rangeToken{kind: tokenOpenEnded, start: start}, nil
	}
	end, err := letterToIndex(bounds[1])
	if err != nil {
		return rangeToken{}, fmt.Errorf("invalid end element for range %q: %w", part, err)
	}
	switch {
	case start == end:
		return rangeToken{}, invalidParamsf("empty range: %q", part)
	case start > end:
		return rangeToken{}, invalidParamsf("end of range is before start: %q", part)
	}
	return rangeToken{kind: tokenClosed, start: start, end: end}, nil
}

// letterToIndex converts a spreadsheet column label to its 0-based
// index: A is 0, Z is 25, AA is 26.
func letterToIndex(label string) (int, error) {
	if label == "" {
		return 0, invalidParamsf("a column should have at least one character, got none")
	}
	idx := 0
	for _, chr := range label {
		if chr < 'A' || chr > 'Z' {
			return 0, invalidParamsf("char is not a valid column name: %q", chr)
		}
		idx = idx*26 + int(chr-'A') + 1
	}
	return idx - 1, nil
}

// resolve applies the selection to the available columns. The returned
// views reference availables by absolute index; order follows the
// selection shape. hasNameOverrides restricts list selections to
// integer elements.
func (s *ColumnSelection) resolve(available []ColumnView, hasNameOverrides bool) ([]ColumnView, error) {
	if s == nil || s.kind == selectAll {
		out := make([]ColumnView, len(available))
		copy(out, available)
		return out, nil
	}

	switch s.kind {
	case selectList:
		return s.resolveList(available, hasNameOverrides)
	case selectRange:
		return s.resolveRange(available)
	default:
		return s.resolvePredicate(available)
	}
}

func (s *ColumnSelection) resolveList(available []ColumnView, hasNameOverrides bool) ([]ColumnView, error) {
	if len(s.list) == 0 {
		return nil, invalidParamsf("list of selected columns is empty")
	}

	out := make([]ColumnView, 0, len(s.list))
	for _, elem := range s.list {
		if name, byName := elem.ColumnName(); byName && hasNameOverrides {
			return nil, invalidParamsf(
				"use_columns can only contain integers when used with column_names, got %q", name)
		}
		if idx, byIdx := elem.Index(); byIdx && idx < 0 {
			return nil, invalidParamsf("column index cannot be negative, got %d", idx)
		}
		view, ok := findColumn(available, elem)
		if !ok {
			return nil, &ColumnNotFoundError{Column: elem, Available: available}
		}
		out = append(out, view)
	}
	return out, nil
}

// resolveRange expands every token into absolute indices, in declared
// order, then drops duplicates keeping the first occurrence. Open-ended
// bounds clamp to the available columns; explicit positions must exist.
func (s *ColumnSelection) resolveRange(available []ColumnView) ([]ColumnView, error) {
	if len(available) == 0 {
		return nil, invalidParamsf("no columns available for range %q", s.raw)
	}
	firstAbs := available[0].AbsoluteIndex
	lastAbs := available[len(available)-1].AbsoluteIndex

	var expanded []int
	for _, token := range s.tokens {
		switch token.kind {
		case tokenFixed:
			expanded = append(expanded, token.start)
		case tokenClosed:
			for idx := token.start; idx <= token.end; idx++ {
				expanded = append(expanded, idx)
			}
		case tokenOpenEnded:
			// A bound beyond the window would expand to nothing and
			// silently vanish; it is as unresolvable as a fixed letter.
			if token.start > lastAbs {
				return nil, &ColumnNotFoundError{Column: Idx(token.start), Available: available}
			}
			for idx := max(token.start, firstAbs); idx <= lastAbs; idx++ {
				expanded = append(expanded, idx)
			}
		case tokenFromStart:
			if token.end < firstAbs {
				return nil, &ColumnNotFoundError{Column: Idx(token.end), Available: available}
			}
			for idx := firstAbs; idx <= min(token.end, lastAbs); idx++ {
				expanded = append(expanded, idx)
			}
		}
	}

	seen := make(map[int]bool, len(expanded))
	out := make([]ColumnView, 0, len(expanded))
	for _, idx := range expanded {
		if seen[idx] {
			continue
		}
		seen[idx] = true
		view, ok := findColumn(available, Idx(idx))
		if !ok {
			return nil, &ColumnNotFoundError{Column: Idx(idx), Available: available}
		}
		out = append(out, view)
	}
	return out, nil
}

func (s *ColumnSelection) resolvePredicate(available []ColumnView) (views []ColumnView, err error) {
	if s.pred == nil {
		return nil, invalidParamsf("use_columns predicate must not be nil")
	}
	// A panicking predicate is the caller's bug, but it should surface
	// as an invalid-parameters error, not as a crash.
	defer func() {
		if r := recover(); r != nil {
			views, err = nil, invalidParamsf("use_columns predicate could not be called: %v", r)
		}
	}()

	for _, view := range available {
		if s.pred(view) {
			views = append(views, view)
		}
	}
	return views, nil
}

func findColumn(available []ColumnView, target IdxOrName) (ColumnView, bool) {
	for _, view := range available {
		if name, byName := target.ColumnName(); byName {
			if view.Name == name {
				return view, true
			}
		} else if idx, _ := target.Index(); view.AbsoluteIndex == idx {
			return view, true
		}
	}
	return ColumnView{}, false
}
