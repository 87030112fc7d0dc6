package fastexcel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ToucanToco/fastexcel/pkg/fastexcel/grid"
)

func columnNames(views []ColumnView) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = v.Name
	}
	return out
}

func TestBuildColumnViewsFromHeader(t *testing.T) {
	g := grid.NewMemGrid([][]grid.Cell{
		{grid.String("name"), grid.Int(2024), grid.Empty(), grid.String("score")},
		{grid.String("a"), grid.Int(1), grid.Int(2), grid.Int(3)},
	})

	views, err := buildColumnViews(g, header{kind: headerAt, row: 0}, nil, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "2024", "__UNNAMED__2", "score"}, columnNames(views))
	assert.Equal(t, NameLookedUp, views[0].NameOrigin)
	assert.Equal(t, NameLookedUp, views[1].NameOrigin)
	assert.Equal(t, NameGenerated, views[2].NameOrigin)
	assert.Equal(t, 3, views[3].Index)
	assert.Equal(t, 3, views[3].AbsoluteIndex)
}

func TestBuildColumnViewsStripsNullBytes(t *testing.T) {
	g := grid.NewMemGrid([][]grid.Cell{
		{grid.String("na\x00me")},
	})

	views, err := buildColumnViews(g, header{kind: headerAt, row: 0}, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, "name", views[0].Name)
}

func TestBuildColumnViewsNoHeader(t *testing.T) {
	g := grid.NewMemGrid([][]grid.Cell{
		{grid.Int(1), grid.Int(2)},
	})

	views, err := buildColumnViews(g, header{kind: headerNone}, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"__UNNAMED__0", "__UNNAMED__1"}, columnNames(views))
	for _, v := range views {
		assert.Equal(t, NameGenerated, v.NameOrigin)
	}
}

func TestBuildColumnViewsProvidedNames(t *testing.T) {
	g := grid.NewMemGrid([][]grid.Cell{
		{grid.Int(1), grid.Int(2), grid.Int(3)},
	})
	h := header{kind: headerWith, names: []string{"left", "mid"}}

	t.Run("names cover the leading columns", func(t *testing.T) {
		views, err := buildColumnViews(g, h, nil, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"left", "mid", "__UNNAMED__2"}, columnNames(views))
		assert.Equal(t, NameProvided, views[0].NameOrigin)
		assert.Equal(t, NameGenerated, views[2].NameOrigin)
	})

	t.Run("list selection maps names to selected columns", func(t *testing.T) {
		sel := SelectColumns(Idx(0), Idx(2))
		views, err := buildColumnViews(g, h, sel, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"left", "__UNNAMED__1", "mid"}, columnNames(views))
	})

	t.Run("list selection length mismatch", func(t *testing.T) {
		sel := SelectColumns(Idx(0))
		_, err := buildColumnViews(g, h, sel, 0)
		require.ErrorIs(t, err, ErrInvalidParameters)
		assert.ErrorContains(t, err, "column_names and use_columns must have the same length")
	})

	t.Run("list selection rejects names", func(t *testing.T) {
		sel := SelectColumns(Idx(0), Name("mid"))
		_, err := buildColumnViews(g, h, sel, 0)
		require.ErrorIs(t, err, ErrInvalidParameters)
		assert.ErrorContains(t, err, `use_columns can only contain integers when used with column_names, got "mid"`)
	})
}

func TestBuildColumnViewsWithColOffset(t *testing.T) {
	g := grid.NewMemGrid([][]grid.Cell{
		{grid.String("a"), grid.String("b")},
	})

	views, err := buildColumnViews(g, header{kind: headerAt, row: 0}, nil, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, views[0].Index)
	assert.Equal(t, 2, views[0].AbsoluteIndex)
	assert.Equal(t, 1, views[1].Index)
	assert.Equal(t, 3, views[1].AbsoluteIndex)

	// Provided names without a list selection follow the region's columns.
	h := header{kind: headerWith, names: []string{"x"}}
	views, err = buildColumnViews(g, h, nil, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "__UNNAMED__1"}, columnNames(views))
}

func TestAppendAliases(t *testing.T) {
	views := []ColumnView{
		{Name: "dup"}, {Name: "dup"}, {Name: "other"}, {Name: "dup"},
	}
	assert.Equal(t, []string{"dup", "dup_1", "other", "dup_2"}, columnNames(appendAliases(views)))

	// A taken suffix is probed past instead of reused.
	views = []ColumnView{
		{Name: "dup"}, {Name: "dup_1"}, {Name: "dup"},
	}
	assert.Equal(t, []string{"dup", "dup_1", "dup_2"}, columnNames(appendAliases(views)))
}
