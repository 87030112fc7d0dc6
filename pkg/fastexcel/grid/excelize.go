package grid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// OpenWorkbook reads an xlsx file with excelize and snapshots every
// sheet and defined table into an immutable MemWorkbook. Snapshotting up
// front is what makes the provider safe for concurrent resolution calls.
func OpenWorkbook(path string) (*MemWorkbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return SnapshotWorkbook(f)
}

// SnapshotWorkbook builds a MemWorkbook from an open excelize file.
func SnapshotWorkbook(f *excelize.File) (*MemWorkbook, error) {
	wb := NewMemWorkbook()

	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, fmt.Errorf("could not read rows of sheet %q: %w", sheetName, err)
		}

		cellRows := make([][]Cell, len(rows))
		for rowIdx, row := range rows {
			cells := make([]Cell, len(row))
			for colIdx, raw := range row {
				cells[colIdx] = ParseCell(raw)
			}
			cellRows[rowIdx] = cells
		}
		sheetGrid := NewMemGrid(cellRows)
		wb.AddSheet(sheetName, sheetGrid)

		tables, err := f.GetTables(sheetName)
		if err != nil {
			return nil, fmt.Errorf("could not read tables of sheet %q: %w", sheetName, err)
		}
		for _, table := range tables {
			region, err := tableRegion(sheetGrid, sheetName, table)
			if err != nil {
				return nil, err
			}
			wb.AddTable(region)
		}
	}

	return wb, nil
}

func tableRegion(sheetGrid Grid, sheetName string, table excelize.Table) (TableRegion, error) {
	bounds := strings.SplitN(table.Range, ":", 2)
	if len(bounds) != 2 {
		return TableRegion{}, fmt.Errorf("invalid range %q for table %q", table.Range, table.Name)
	}
	startCol, startRow, err := excelize.CellNameToCoordinates(bounds[0])
	if err != nil {
		return TableRegion{}, fmt.Errorf("invalid range %q for table %q: %w", table.Range, table.Name, err)
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(bounds[1])
	if err != nil {
		return TableRegion{}, fmt.Errorf("invalid range %q for table %q: %w", table.Range, table.Name, err)
	}

	rowOffset, colOffset := startRow-1, startCol-1
	height, width := endRow-startRow+1, endCol-startCol+1
	return TableRegion{
		Name:      table.Name,
		SheetName: sheetName,
		RowOffset: rowOffset,
		ColOffset: colOffset,
		Grid:      Section(sheetGrid, rowOffset, colOffset, height, width),
	}, nil
}

var errorMarkers = map[string]bool{
	"#N/A": true, "#REF!": true, "#VALUE!": true, "#DIV/0!": true,
	"#NAME?": true, "#NULL!": true, "#NUM!": true,
}

// ParseCell types a formatted cell string: numerics, booleans,
// datetimes, clock durations and in-cell error markers are recognized,
// anything else stays a string. Workbook numerics are always floats,
// the way xlsx stores them; integer-looking values are no exception.
func ParseCell(raw string) Cell {
	if raw == "" {
		return Empty()
	}
	if errorMarkers[raw] {
		return CellError(raw)
	}
	switch raw {
	case "TRUE":
		return Bool(true)
	case "FALSE":
		return Bool(false)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return Float(f)
	}
	if t, ok := parseDateTimeString(raw); ok {
		if len(raw) == len("2006-01-02") {
			return Date(t)
		}
		return DateTime(t)
	}
	if strings.Count(raw, ":") == 2 {
		if d, ok := parseDurationString(raw); ok {
			return Duration(d)
		}
	}
	return String(raw)
}
