package fastexcel

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func availableViews(n int) []ColumnView {
	views := make([]ColumnView, n)
	for i := range views {
		views[i] = ColumnView{
			Name:          fmt.Sprintf("col_%d", i),
			Index:         i,
			AbsoluteIndex: i,
			NameOrigin:    NameLookedUp,
		}
	}
	return views
}

func absoluteIndices(views []ColumnView) []int {
	out := make([]int, len(views))
	for i, v := range views {
		out[i] = v.AbsoluteIndex
	}
	return out
}

func TestParseColumnRange(t *testing.T) {
	tests := []struct {
		raw       string
		available int
		want      []int
	}{
		{"A,B,D", 30, []int{0, 1, 3}},
		{"A,B:E,Y", 30, []int{0, 1, 2, 3, 4, 24}},
		{"A:c,b:E,w,Y:z", 30, []int{0, 1, 2, 3, 4, 22, 24, 25}},
		{"A,y:AB", 30, []int{0, 24, 25, 26, 27}},
		{"BB:BE,DDC:DDF", 3000, []int{53, 54, 55, 56, 2810, 2811, 2812, 2813}},
		{"B:", 5, []int{1, 2, 3, 4}},
		{":C", 30, []int{0, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			sel, err := ParseColumnRange(tt.raw)
			require.NoError(t, err)

			views, err := sel.resolve(availableViews(tt.available), false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, absoluteIndices(views))
		})
	}
}

func TestParseColumnRangeInvalid(t *testing.T) {
	tests := []struct {
		raw    string
		errMsg string
	}{
		{"A:A", "empty range"},
		{"B:A", "end of range is before start"},
		{":", "cannot have both start and end empty"},
		{"A:B:C", "expected range to contain exactly 2 elements"},
		{"A1", "char is not a valid column name"},
		{"", "a column should have at least one character"},
		{"A,,B", "a column should have at least one character"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			_, err := ParseColumnRange(tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidParameters)
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestRangeDedupKeepsFirstOccurrence(t *testing.T) {
	available := availableViews(6)

	left, err := ParseColumnRange("A,:B,D,E:")
	require.NoError(t, err)
	right, err := ParseColumnRange("A,B,D,E:")
	require.NoError(t, err)

	leftViews, err := left.resolve(available, false)
	require.NoError(t, err)
	rightViews, err := right.resolve(available, false)
	require.NoError(t, err)

	assert.Equal(t, absoluteIndices(rightViews), absoluteIndices(leftViews))
	assert.Equal(t, []int{0, 1, 3, 4, 5}, absoluteIndices(leftViews))
}

func TestRangeFixedColumnMustExist(t *testing.T) {
	sel, err := ParseColumnRange("Z")
	require.NoError(t, err)

	_, err = sel.resolve(availableViews(3), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestRangeOpenTokenOutsideWindow(t *testing.T) {
	t.Run("open-ended past the last column", func(t *testing.T) {
		sel, err := ParseColumnRange("E:")
		require.NoError(t, err)

		_, err = sel.resolve(availableViews(3), false)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrColumnNotFound)
	})

	t.Run("from-start before the first column", func(t *testing.T) {
		// A window starting at absolute column C, as a table anchored
		// there would have.
		available := availableViews(5)[2:]

		sel, err := ParseColumnRange(":A")
		require.NoError(t, err)

		_, err = sel.resolve(available, false)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrColumnNotFound)

		// Bounds inside the window still clamp rather than error.
		sel, err = ParseColumnRange(":D")
		require.NoError(t, err)
		views, err := sel.resolve(available, false)
		require.NoError(t, err)
		assert.Equal(t, []int{2, 3}, absoluteIndices(views))
	})
}

func TestResolveList(t *testing.T) {
	available := availableViews(5)

	t.Run("by index and name, duplicates allowed", func(t *testing.T) {
		sel := SelectColumns(Idx(3), Name("col_1"), Idx(3))
		views, err := sel.resolve(available, false)
		require.NoError(t, err)
		assert.Equal(t, []int{3, 1, 3}, absoluteIndices(views))
	})

	t.Run("empty list", func(t *testing.T) {
		_, err := SelectColumns().resolve(available, false)
		assert.ErrorIs(t, err, ErrInvalidParameters)
	})

	t.Run("negative index", func(t *testing.T) {
		_, err := SelectColumns(Idx(-1)).resolve(available, false)
		assert.ErrorIs(t, err, ErrInvalidParameters)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := SelectColumns(Name("missing")).resolve(available, false)
		var notFound *ColumnNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.ErrorContains(t, err, `"col_0" (index 0)`)
	})

	t.Run("names forbidden with name overrides", func(t *testing.T) {
		_, err := SelectColumns(Name("col_1")).resolve(available, true)
		require.ErrorIs(t, err, ErrInvalidParameters)
		assert.ErrorContains(t, err, "use_columns can only contain integers when used with column_names")
	})
}

func TestResolvePredicate(t *testing.T) {
	available := availableViews(4)

	sel := SelectFunc(func(v ColumnView) bool { return v.AbsoluteIndex%2 == 0 })
	views, err := sel.resolve(available, false)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, absoluteIndices(views))

	t.Run("nil predicate", func(t *testing.T) {
		_, err := SelectFunc(nil).resolve(available, false)
		assert.ErrorIs(t, err, ErrInvalidParameters)
	})

	t.Run("panicking predicate", func(t *testing.T) {
		panicky := SelectFunc(func(ColumnView) bool { panic("boom") })
		_, err := panicky.resolve(available, false)
		require.ErrorIs(t, err, ErrInvalidParameters)
		assert.ErrorContains(t, err, "use_columns predicate could not be called")
	})
}

func TestResolveNilSelectsAll(t *testing.T) {
	available := availableViews(3)

	var sel *ColumnSelection
	views, err := sel.resolve(available, false)
	require.NoError(t, err)
	assert.Equal(t, available, views)

	views, err = SelectAll().resolve(available, false)
	require.NoError(t, err)
	assert.Equal(t, available, views)
}
