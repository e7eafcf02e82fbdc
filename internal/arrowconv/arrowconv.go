// Package arrowconv exports a metadata-annotated table as an Arrow record.
// Each field carries its column's flattened attributes as field metadata.
package arrowconv

import (
	"fmt"
	"time"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"

	"github.com/leengari/metaframe/internal/domain/data"
	"github.com/leengari/metaframe/internal/domain/errors"
	"github.com/leengari/metaframe/internal/domain/schema"
)

// SourceKey is the schema-level metadata key holding the schema source
const SourceKey = "metaframe.source"

// timestampType is the Arrow type used for datetime columns
var timestampType = &arrow.TimestampType{Unit: arrow.Microsecond, TimeZone: "UTC"}

// DataType maps a logical type onto an Arrow type. Columns without a
// known logical type are exported as strings.
func DataType(lt schema.LogicalType) arrow.DataType {
	switch lt {
	case schema.LogicalInteger:
		return arrow.PrimitiveTypes.Int64
	case schema.LogicalFloat:
		return arrow.PrimitiveTypes.Float64
	case schema.LogicalBoolean:
		return arrow.FixedWidthTypes.Boolean
	case schema.LogicalDatetime:
		return timestampType
	default:
		return arrow.BinaryTypes.String
	}
}

// Schema builds the Arrow schema for s, in schema column order
func Schema(s *schema.Schema) *arrow.Schema {
	fields := make([]arrow.Field, len(s.Columns))
	for i, col := range s.Columns {
		fields[i] = arrow.Field{
			Name:     col.Name,
			Type:     DataType(col.LogicalType()),
			Nullable: true,
			Metadata: fieldMetadata(col.Attributes),
		}
	}

	md := arrow.NewMetadata([]string{SourceKey}, []string{s.Source})
	return arrow.NewSchema(fields, &md)
}

func fieldMetadata(attrs schema.Attributes) arrow.Metadata {
	paths := attrs.Paths()
	flat := attrs.Flatten()

	keys := make([]string, len(paths))
	values := make([]string, len(paths))
	for i, p := range paths {
		keys[i] = p
		values[i] = fmt.Sprint(flat[p])
	}
	return arrow.NewMetadata(keys, values)
}

// Record converts frame into an Arrow record typed by s. The caller owns
// the returned record and must Release it.
func Record(mem memory.Allocator, s *schema.Schema, frame *data.Frame) (arrow.Record, error) {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}

	sc := Schema(s)
	rb := array.NewRecordBuilder(mem, sc)
	defer rb.Release()

	for i, col := range s.Columns {
		vals, ok := frame.Column(col.Name)
		if !ok {
			return nil, errors.NewUnknownColumn(col.Name)
		}
		if err := appendColumn(rb.Field(i), col, vals); err != nil {
			return nil, err
		}
	}

	return rb.NewRecord(), nil
}

func appendColumn(b array.Builder, col schema.Column, vals []interface{}) error {
	lt := col.LogicalType()
	if _, known := schema.ParseLogicalType(string(lt)); !known {
		lt = schema.LogicalString
	}

	for row, v := range vals {
		if v == nil {
			b.AppendNull()
			continue
		}

		cell, ok := schema.Cast(v, lt)
		if !ok {
			return &errors.ConversionError{Column: col.Name, Row: row, Value: v, Target: lt.String()}
		}

		switch bb := b.(type) {
		case *array.Int64Builder:
			bb.Append(cell.(int64))
		case *array.Float64Builder:
			bb.Append(cell.(float64))
		case *array.BooleanBuilder:
			bb.Append(cell.(bool))
		case *array.StringBuilder:
			bb.Append(cell.(string))
		case *array.TimestampBuilder:
			bb.Append(arrow.Timestamp(cell.(time.Time).UnixMicro()))
		default:
			return fmt.Errorf("column %s: unsupported builder %T", col.Name, b)
		}
	}
	return nil
}
