// Package output converts extracted columns into Apache Arrow records.
package output

import (
	"fmt"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/ToucanToco/fastexcel/pkg/fastexcel"
)

// ArrowType maps a column dtype to its Arrow data type. Datetimes are
// millisecond timestamps and durations millisecond durations, matching
// the millisecond precision of serial-day conversion.
func ArrowType(dt fastexcel.DType) (arrow.DataType, error) {
	switch dt {
	case fastexcel.DTypeNull:
		return arrow.Null, nil
	case fastexcel.DTypeInt:
		return arrow.PrimitiveTypes.Int64, nil
	case fastexcel.DTypeFloat:
		return arrow.PrimitiveTypes.Float64, nil
	case fastexcel.DTypeString:
		return arrow.BinaryTypes.String, nil
	case fastexcel.DTypeBool:
		return arrow.FixedWidthTypes.Boolean, nil
	case fastexcel.DTypeDateTime:
		return arrow.FixedWidthTypes.Timestamp_ms, nil
	case fastexcel.DTypeDate:
		return arrow.FixedWidthTypes.Date32, nil
	case fastexcel.DTypeDuration:
		return arrow.FixedWidthTypes.Duration_ms, nil
	default:
		return nil, fmt.Errorf("no arrow type for dtype %q", dt)
	}
}

// Schema builds an Arrow schema from resolved column descriptors. Every
// field is nullable since any cell may be empty or unconvertible.
func Schema(columns []fastexcel.ColumnInfo) (*arrow.Schema, error) {
	fields := make([]arrow.Field, len(columns))
	for i, col := range columns {
		at, err := ArrowType(col.DType)
		if err != nil {
			return nil, err
		}
		fields[i] = arrow.Field{Name: col.Name, Type: at, Nullable: true}
	}
	return arrow.NewSchema(fields, nil), nil
}

// Record builds an Arrow record from extracted columns. The caller owns
// the record and must Release it.
func Record(columns []fastexcel.ColumnData) (arrow.Record, error) {
	infos := make([]fastexcel.ColumnInfo, len(columns))
	for i, col := range columns {
		infos[i] = col.Info
	}
	schema, err := Schema(infos)
	if err != nil {
		return nil, err
	}

	pool := memory.NewGoAllocator()
	rb := array.NewRecordBuilder(pool, schema)
	defer rb.Release()

	for i, col := range columns {
		if err := appendColumn(rb.Field(i), col); err != nil {
			return nil, fmt.Errorf("column %q: %w", col.Info.Name, err)
		}
	}

	return rb.NewRecord(), nil
}

func appendColumn(b array.Builder, col fastexcel.ColumnData) error {
	for _, v := range col.Values {
		if v == nil {
			b.AppendNull()
			continue
		}
		if err := appendValue(b, v); err != nil {
			return err
		}
	}
	return nil
}

func appendValue(b array.Builder, v any) error {
	switch b := b.(type) {
	case *array.Int64Builder:
		i, ok := v.(int64)
		if !ok {
			return fmt.Errorf("expected int64, got %T", v)
		}
		b.Append(i)
	case *array.Float64Builder:
		f, ok := v.(float64)
		if !ok {
			return fmt.Errorf("expected float64, got %T", v)
		}
		b.Append(f)
	case *array.StringBuilder:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", v)
		}
		b.Append(s)
	case *array.BooleanBuilder:
		t, ok := v.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", v)
		}
		b.Append(t)
	case *array.TimestampBuilder:
		t, ok := v.(time.Time)
		if !ok {
			return fmt.Errorf("expected time.Time, got %T", v)
		}
		b.Append(arrow.Timestamp(t.UnixMilli()))
	case *array.Date32Builder:
		t, ok := v.(time.Time)
		if !ok {
			return fmt.Errorf("expected time.Time, got %T", v)
		}
		b.Append(arrow.Date32FromTime(t))
	case *array.DurationBuilder:
		d, ok := v.(time.Duration)
		if !ok {
			return fmt.Errorf("expected time.Duration, got %T", v)
		}
		b.Append(arrow.Duration(d.Milliseconds()))
	case *array.NullBuilder:
		b.AppendNull()
	default:
		return fmt.Errorf("unsupported builder type %T", b)
	}
	return nil
}
