// Package grid defines the raw cell grid consumed by the schema
// resolution engine: an immutable cell value model, the Grid and
// Workbook provider interfaces, and adapters implementing them.
package grid

import (
	"strconv"
	"strings"
	"time"
)

// Kind is the raw type of a cell as stored in the workbook.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindDateTime
	KindDate
	KindDuration
	// KindError represents an in-cell error marker such as #N/A or #REF!.
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindDateTime:
		return "datetime"
	case KindDate:
		return "date"
	case KindDuration:
		return "duration"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// excelEpoch is day zero of the 1900 date system. Serial day counts and
// the epoch-relative duration conversion are anchored here.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Cell is a single raw cell value. The zero value is an empty cell.
// Cells are immutable; constructors are the only way to set a value.
type Cell struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	t    time.Time
	d    time.Duration
}

func Empty() Cell                  { return Cell{} }
func Bool(b bool) Cell             { return Cell{kind: KindBool, b: b} }
func Int(i int64) Cell             { return Cell{kind: KindInt, i: i} }
func Float(f float64) Cell         { return Cell{kind: KindFloat, f: f} }
func String(s string) Cell         { return Cell{kind: KindString, s: s} }
func DateTime(t time.Time) Cell    { return Cell{kind: KindDateTime, t: t} }
func Date(t time.Time) Cell        { return Cell{kind: KindDate, t: t} }
func Duration(d time.Duration) Cell { return Cell{kind: KindDuration, d: d} }

// CellError builds an error-marker cell, e.g. CellError("#N/A").
func CellError(marker string) Cell { return Cell{kind: KindError, s: marker} }

func (c Cell) Kind() Kind    { return c.kind }
func (c Cell) IsEmpty() bool { return c.kind == KindEmpty }

// IsBlank reports whether the cell is empty or contains only whitespace.
func (c Cell) IsBlank() bool {
	if c.kind == KindEmpty {
		return true
	}
	return c.kind == KindString && strings.TrimSpace(c.s) == ""
}

// AsBool converts the cell to a boolean. Numeric cells convert by
// comparison with zero.
func (c Cell) AsBool() (bool, bool) {
	switch c.kind {
	case KindBool:
		return c.b, true
	case KindInt:
		return c.i != 0, true
	case KindFloat:
		return c.f != 0, true
	default:
		return false, false
	}
}

// AsInt converts the cell to an int64. Floats convert only when they
// have no fractional part.
func (c Cell) AsInt() (int64, bool) {
	switch c.kind {
	case KindInt:
		return c.i, true
	case KindBool:
		if c.b {
			return 1, true
		}
		return 0, true
	case KindFloat:
		if c.f == float64(int64(c.f)) {
			return int64(c.f), true
		}
		return 0, false
	case KindString:
		i, err := strconv.ParseInt(strings.TrimSpace(c.s), 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

func (c Cell) AsFloat() (float64, bool) {
	switch c.kind {
	case KindFloat:
		return c.f, true
	case KindInt:
		return float64(c.i), true
	case KindBool:
		if c.b {
			return 1, true
		}
		return 0, true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(c.s), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// AsString converts the cell to its display string. Floats are rendered
// the way Excel displays them rather than with full binary precision.
func (c Cell) AsString() (string, bool) {
	switch c.kind {
	case KindString:
		return c.s, true
	case KindBool:
		return strconv.FormatBool(c.b), true
	case KindInt:
		return strconv.FormatInt(c.i, 10), true
	case KindFloat:
		return FormatExcelFloat(c.f), true
	case KindDateTime:
		return c.t.Format("2006-01-02 15:04:05"), true
	case KindDate:
		return c.t.Format("2006-01-02"), true
	case KindDuration:
		return c.d.String(), true
	default:
		return "", false
	}
}

// AsDateTime converts the cell to a point in time. Numeric cells are
// interpreted as serial days since the 1900 epoch.
func (c Cell) AsDateTime() (time.Time, bool) {
	switch c.kind {
	case KindDateTime:
		return c.t, true
	case KindDate:
		return time.Date(c.t.Year(), c.t.Month(), c.t.Day(), 0, 0, 0, 0, time.UTC), true
	case KindInt:
		return serialToTime(float64(c.i)), true
	case KindFloat:
		return serialToTime(c.f), true
	case KindString:
		return parseDateTimeString(strings.TrimSpace(c.s))
	default:
		return time.Time{}, false
	}
}

func (c Cell) AsDate() (time.Time, bool) {
	t, ok := c.AsDateTime()
	if !ok {
		return time.Time{}, false
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}

// AsDuration converts the cell to a duration. Numeric cells are serial
// days. Datetime and date cells convert to the span since the 1900
// epoch; the behavior is surprising but documented and relied upon, so
// it is kept as is.
func (c Cell) AsDuration() (time.Duration, bool) {
	switch c.kind {
	case KindDuration:
		return c.d, true
	case KindInt:
		return serialToDuration(float64(c.i)), true
	case KindFloat:
		return serialToDuration(c.f), true
	case KindDateTime, KindDate:
		return c.t.Sub(excelEpoch), true
	case KindString:
		return parseDurationString(strings.TrimSpace(c.s))
	default:
		return 0, false
	}
}

func serialToTime(days float64) time.Time {
	return excelEpoch.Add(serialToDuration(days))
}

func serialToDuration(days float64) time.Duration {
	// Round to the millisecond to avoid float noise in second fractions.
	ms := int64(days*24*60*60*1000 + 0.5)
	return time.Duration(ms) * time.Millisecond
}

var dateTimeLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDateTimeString(s string) (time.Time, bool) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseDurationString(s string) (time.Duration, bool) {
	// Clock-style durations ("01:18:43") are what spreadsheets produce.
	parts := strings.Split(s, ":")
	if len(parts) == 3 {
		h, errH := strconv.Atoi(parts[0])
		m, errM := strconv.Atoi(parts[1])
		sec, errS := strconv.ParseFloat(parts[2], 64)
		if errH == nil && errM == nil && errS == nil {
			d := time.Duration(h)*time.Hour +
				time.Duration(m)*time.Minute +
				time.Duration(sec*float64(time.Second))
			return d, true
		}
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d, true
	}
	return 0, false
}

// FormatExcelFloat renders a float the way Excel displays it: at most
// nine digits after the decimal point, trailing zeros and a bare decimal
// point trimmed. Excel stores 29.02 as 29.020000000000003 but shows
// 29.02, and string coercion should match what the user sees.
func FormatExcelFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', 9, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s
}
