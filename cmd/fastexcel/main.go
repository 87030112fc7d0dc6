// Package main provides the CLI entry point for fastexcel.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ToucanToco/fastexcel/pkg/fastexcel"
)

var (
	sheetArg   string
	tableArg   string
	headerRow  int
	noHeader   bool
	skipRows   int
	nRows      int
	useColumns string
	coercion   string
	sampleRows int
	withErrors bool
	outputPath string
	pretty     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fastexcel [input.xlsx]",
		Short: "Extract typed columnar data from Excel files",
		Long: `fastexcel resolves a sheet or named table of an Excel file into
named, typed columns and outputs the descriptor and rows as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVar(&sheetArg, "sheet", "0", "Sheet to load, by 0-based index or name")
	rootCmd.Flags().StringVar(&tableArg, "table", "", "Named table to load instead of a sheet")
	rootCmd.Flags().IntVar(&headerRow, "header-row", 0, "Row holding the column labels")
	rootCmd.Flags().BoolVar(&noHeader, "no-header", false, "Treat every row as data and generate column names")
	rootCmd.Flags().IntVar(&skipRows, "skip-rows", -1, "Number of rows to skip after the header")
	rootCmd.Flags().IntVar(&nRows, "n-rows", -1, "Maximum number of rows to extract")
	rootCmd.Flags().StringVar(&useColumns, "use-columns", "", "Column range, e.g. \"A,C:E,G:\"")
	rootCmd.Flags().StringVar(&coercion, "dtype-coercion", "coerce", "Dtype coercion policy: coerce or strict")
	rootCmd.Flags().IntVar(&sampleRows, "sample-rows", -1, "Number of rows sampled for dtype inference")
	rootCmd.Flags().BoolVar(&withErrors, "errors", false, "Report cells that failed to convert")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// result is the JSON shape written to the output: the resolved window
// and columns, the extracted rows, and any conversion errors.
type result struct {
	Name        string                 `json:"name"`
	Height      int                    `json:"height"`
	TotalHeight int                    `json:"total_height"`
	Columns     []fastexcel.ColumnInfo `json:"columns"`
	Rows        [][]any                `json:"rows"`
	CellErrors  []fastexcel.CellError  `json:"cell_errors,omitempty"`
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	opts, err := buildOptions(&logger)
	if err != nil {
		return err
	}

	reader, err := fastexcel.OpenFile(inputPath)
	if err != nil {
		return fmt.Errorf("could not open workbook: %w", err)
	}

	res, err := load(reader, opts)
	if err != nil {
		return fmt.Errorf("resolution failed: %w", err)
	}

	var jsonData []byte
	if pretty {
		jsonData, err = json.MarshalIndent(res, "", "  ")
	} else {
		jsonData, err = json.Marshal(res)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	fmt.Println(string(jsonData))
	return nil
}

func buildOptions(logger *zerolog.Logger) (fastexcel.LoadOptions, error) {
	opts := fastexcel.LoadOptions{
		NoHeaderRow: noHeader,
		Diagnostics: logger,
	}

	if headerRow != 0 {
		row := headerRow
		opts.HeaderRow = &row
	}
	if skipRows >= 0 {
		opts.SkipRows = fastexcel.SkipRowsCount(skipRows)
	}
	if nRows >= 0 {
		n := nRows
		opts.NRows = &n
	}
	if sampleRows >= 0 {
		n := sampleRows
		opts.SchemaSampleRows = &n
	}
	if useColumns != "" {
		selection, err := fastexcel.ParseColumnRange(useColumns)
		if err != nil {
			return opts, err
		}
		opts.UseColumns = selection
	}
	opts.DTypeCoercion = fastexcel.DTypeCoercion(coercion)

	return opts, nil
}

func load(reader *fastexcel.Reader, opts fastexcel.LoadOptions) (*result, error) {
	if tableArg != "" {
		table, err := reader.LoadTable(tableArg, opts)
		if err != nil {
			return nil, err
		}
		res := &result{
			Name:        table.Name(),
			Height:      table.Height(),
			TotalHeight: table.TotalHeight(),
			Columns:     table.SelectedColumns(),
		}
		fill(res, table.ToColumnsWithErrors)
		return res, nil
	}

	var target fastexcel.IdxOrName
	if idx, err := strconv.Atoi(sheetArg); err == nil {
		target = fastexcel.Idx(idx)
	} else {
		target = fastexcel.Name(sheetArg)
	}

	sheet, err := reader.LoadSheet(target, opts)
	if err != nil {
		return nil, err
	}
	res := &result{
		Name:        sheet.Name(),
		Height:      sheet.Height(),
		TotalHeight: sheet.TotalHeight(),
		Columns:     sheet.SelectedColumns(),
	}
	fill(res, sheet.ToColumnsWithErrors)
	return res, nil
}

// fill transposes the extracted columns into rows, collecting cell
// errors when requested.
func fill(res *result, extract func() ([]fastexcel.ColumnData, []fastexcel.CellError)) {
	columns, cellErrs := extract()
	if withErrors {
		res.CellErrors = cellErrs
	}

	if len(columns) == 0 {
		res.Rows = [][]any{}
		return
	}
	height := len(columns[0].Values)
	res.Rows = make([][]any, height)
	for ri := 0; ri < height; ri++ {
		record := make([]any, len(columns))
		for ci, col := range columns {
			record[ci] = col.Values[ri]
		}
		res.Rows[ri] = record
	}
}
