package fastexcel

import (
	"github.com/rs/zerolog"

	"github.com/ToucanToco/fastexcel/pkg/fastexcel/grid"
)

// DType is a column or cell data type.
type DType string

const (
	DTypeNull     DType = "null"
	DTypeInt      DType = "int"
	DTypeFloat    DType = "float"
	DTypeString   DType = "string"
	DTypeBool     DType = "boolean"
	DTypeDateTime DType = "datetime"
	DTypeDate     DType = "date"
	DTypeDuration DType = "duration"
)

// ParseDType parses a dtype name as accepted on the API surface.
func ParseDType(raw string) (DType, error) {
	switch dt := DType(raw); dt {
	case DTypeNull, DTypeInt, DTypeFloat, DTypeString, DTypeBool,
		DTypeDateTime, DTypeDate, DTypeDuration:
		return dt, nil
	default:
		return "", invalidParamsf("unsupported dtype: %q", raw)
	}
}

// DTypeCoercion governs whether a sampled type conflict within a column
// falls back to string or aborts resolution.
type DTypeCoercion string

const (
	DTypeCoerce DTypeCoercion = "coerce"
	DTypeStrict DTypeCoercion = "strict"
)

// ParseDTypeCoercion parses a coercion policy name.
func ParseDTypeCoercion(raw string) (DTypeCoercion, error) {
	switch c := DTypeCoercion(raw); c {
	case DTypeCoerce, DTypeStrict:
		return c, nil
	default:
		return "", invalidParamsf("unsupported dtype_coercion: %q", raw)
	}
}

// DTypes is the user's dtype specification: a single dtype applied to
// every column, or a map keyed by absolute column index or name.
type DTypes struct {
	all   *DType
	byKey map[IdxOrName]DType
}

// DTypeAll applies one dtype to every selected column.
func DTypeAll(dt DType) *DTypes {
	return &DTypes{all: &dt}
}

// DTypeMap applies dtypes per column, keyed by absolute index or name.
func DTypeMap(m map[IdxOrName]DType) *DTypes {
	byKey := make(map[IdxOrName]DType, len(m))
	for k, v := range m {
		byKey[k] = v
	}
	return &DTypes{byKey: byKey}
}

// lookup resolves an explicit dtype for a column. Index lookups win over
// name lookups because the index is the cheaper, unambiguous key.
func (d *DTypes) lookup(absoluteIndex int, name string) (DType, DTypeOrigin, bool) {
	if d == nil {
		return "", "", false
	}
	if d.all != nil {
		return *d.all, DTypeProvidedForAll, true
	}
	if dt, ok := d.byKey[Idx(absoluteIndex)]; ok {
		return dt, DTypeProvidedByIndex, true
	}
	if dt, ok := d.byKey[Name(name)]; ok {
		return dt, DTypeProvidedByName, true
	}
	return "", "", false
}

// nullStrings are the string values considered as NULL during inference,
// mirroring pandas' default NA markers.
var nullStrings = map[string]bool{
	"": true, "#N/A": true, "#N/A N/A": true, "#NA": true, "-1.#IND": true,
	"-1.#QNAN": true, "-NaN": true, "-nan": true, "1.#IND": true,
	"1.#QNAN": true, "<NA>": true, "N/A": true, "NA": true, "NULL": true,
	"NaN": true, "None": true, "n/a": true, "nan": true, "null": true,
}

// cellDType classifies one raw cell. In-cell error markers (#N/A, #REF!)
// and NA-like strings count as null, same as empty cells.
func cellDType(c grid.Cell) DType {
	switch c.Kind() {
	case grid.KindBool:
		return DTypeBool
	case grid.KindInt:
		return DTypeInt
	case grid.KindFloat:
		return DTypeFloat
	case grid.KindString:
		s, _ := c.AsString()
		if nullStrings[s] {
			return DTypeNull
		}
		return DTypeString
	case grid.KindDateTime:
		return DTypeDateTime
	case grid.KindDate:
		return DTypeDate
	case grid.KindDuration:
		return DTypeDuration
	default:
		// empty cells and error markers
		return DTypeNull
	}
}

var (
	intTypes   = map[DType]bool{DTypeInt: true, DTypeBool: true}
	floatTypes = map[DType]bool{DTypeInt: true, DTypeFloat: true, DTypeBool: true}
	// mixed temporal granularities widen to datetime
	datetimeTypes = map[DType]bool{DTypeDate: true, DTypeDateTime: true}
)

func subsetOf(set map[DType]bool, super map[DType]bool) bool {
	for dt := range set {
		if !super[dt] {
			return false
		}
	}
	return true
}

// dtypeForColumn infers a column's dtype from the sampled rows. sample
// holds the grid row indices of the sampling window; col is the
// grid-local column index. name is only used for diagnostics and errors.
func dtypeForColumn(g grid.Grid, sample []int, col int, name string, coercion DTypeCoercion, diag zerolog.Logger) (DType, error) {
	// Columns are nullable regardless of dtype, so nulls never
	// constrain the decision.
	set := make(map[DType]bool)
	for _, row := range sample {
		if dt := cellDType(g.Cell(row, col)); dt != DTypeNull {
			set[dt] = true
		}
	}

	switch {
	case len(set) == 0:
		if len(sample) == 0 {
			return DTypeNull, nil
		}
		diag.Warn().Str("column", name).Int("index", col).
			Msg("could not determine dtype, falling back to string")
		return DTypeString, nil
	case len(set) == 1:
		for dt := range set {
			return dt, nil
		}
	case coercion == DTypeStrict:
		return "", &UnsupportedColumnTypeCombinationError{Column: name, DTypes: sortedDTypes(set)}
	case subsetOf(set, intTypes):
		return DTypeInt, nil
	case subsetOf(set, floatTypes):
		return DTypeFloat, nil
	case subsetOf(set, datetimeTypes):
		return DTypeDateTime, nil
	}
	// Any other combination can still be read as text.
	return DTypeString, nil
}

// sortedDTypes returns the set in a stable display order.
func sortedDTypes(set map[DType]bool) []DType {
	order := []DType{
		DTypeBool, DTypeInt, DTypeFloat, DTypeString,
		DTypeDateTime, DTypeDate, DTypeDuration, DTypeNull,
	}
	var out []DType
	for _, dt := range order {
		if set[dt] {
			out = append(out, dt)
		}
	}
	return out
}
