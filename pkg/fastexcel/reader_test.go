package fastexcel

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ToucanToco/fastexcel/pkg/fastexcel/grid"
)

func TestReaderSheetLookup(t *testing.T) {
	wb := grid.NewMemWorkbook().
		AddSheet("first", grid.NewMemGrid([][]grid.Cell{{grid.String("a")}})).
		AddSheet("second", grid.NewMemGrid([][]grid.Cell{{grid.String("b")}}))
	reader := NewReader(wb)

	assert.Equal(t, []string{"first", "second"}, reader.SheetNames())

	sheet, err := reader.LoadSheet(Idx(1), LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "second", sheet.Name())

	sheet, err = reader.LoadSheet(Name("first"), LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "first", sheet.Name())
}

func TestReaderSheetNotFound(t *testing.T) {
	reader := monthYearReader()

	for _, target := range []IdxOrName{Idx(5), Idx(-1), Name("February")} {
		_, err := reader.LoadSheet(target, LoadOptions{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSheetNotFound)

		var notFound *SheetNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, target, notFound.Sheet)
	}
}

func TestConcurrentExtraction(t *testing.T) {
	reader := monthYearReader()

	sheet, err := reader.LoadSheet(Idx(0), LoadOptions{})
	require.NoError(t, err)

	wantCols := sheet.ToColumns()
	wantAvailable, err := sheet.AvailableColumns()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			s, err := reader.LoadSheet(Name("January"), LoadOptions{})
			assert.NoError(t, err)
			assert.Equal(t, wantCols, s.ToColumns())

			assert.Equal(t, wantCols, sheet.ToColumns())
			available, err := sheet.AvailableColumns()
			assert.NoError(t, err)
			assert.Equal(t, wantAvailable, available)
		}()
	}
	wg.Wait()
}
