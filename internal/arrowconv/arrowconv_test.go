package arrowconv

import (
	"testing"
	"time"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/metaframe/internal/domain/schema"
	"github.com/leengari/metaframe/internal/storage/loader"
	"github.com/leengari/metaframe/internal/testutil"
)

const mixedSchemaYAML = `schema:
  - identity: {name: id}
    type: {logical_type: integer}
  - identity: {name: score}
    type: {logical_type: float}
    unit: points
  - identity: {name: active}
    type: {logical_type: boolean}
  - identity: {name: seen}
    type: {logical_type: datetime}
  - identity: {name: note}
`

func TestSchemaCarriesColumnMetadata(t *testing.T) {
	s, err := loader.ParseSchema([]byte(mixedSchemaYAML), "mixed.yaml")
	require.NoError(t, err)

	sc := Schema(s)
	require.Equal(t, 5, sc.NumFields())

	assert.True(t, arrow.TypeEqual(arrow.PrimitiveTypes.Int64, sc.Field(0).Type))
	assert.True(t, arrow.TypeEqual(arrow.PrimitiveTypes.Float64, sc.Field(1).Type))
	assert.True(t, arrow.TypeEqual(arrow.FixedWidthTypes.Boolean, sc.Field(2).Type))
	assert.Equal(t, arrow.TIMESTAMP, sc.Field(3).Type.ID())
	assert.True(t, arrow.TypeEqual(arrow.BinaryTypes.String, sc.Field(4).Type))

	md := sc.Field(1).Metadata
	idx := md.FindKey("type.logical_type")
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "float", md.Values()[idx])
	idx = md.FindKey("unit")
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "points", md.Values()[idx])

	src := sc.Metadata().FindKey(SourceKey)
	require.GreaterOrEqual(t, src, 0)
	assert.Equal(t, "mixed.yaml", sc.Metadata().Values()[src])
}

func TestRecordConvertsCells(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	s, err := loader.ParseSchema([]byte(mixedSchemaYAML), "")
	require.NoError(t, err)

	frame := testutil.CreateFrame(t, []string{"id", "score", "active", "seen", "note"}, map[string][]interface{}{
		"id":     {int64(1), nil},
		"score":  {int64(3), 2.5},
		"active": {true, "false"},
		"seen":   {"2024-01-13", nil},
		"note":   {"hi", int64(7)},
	})

	rec, err := Record(mem, s, frame)
	require.NoError(t, err)
	defer rec.Release()

	assert.EqualValues(t, 2, rec.NumRows())

	ids := rec.Column(0).(*array.Int64)
	assert.Equal(t, int64(1), ids.Value(0))
	assert.True(t, ids.IsNull(1))

	scores := rec.Column(1).(*array.Float64)
	assert.Equal(t, []float64{3, 2.5}, scores.Float64Values())

	active := rec.Column(2).(*array.Boolean)
	assert.True(t, active.Value(0))
	assert.False(t, active.Value(1))

	seen := rec.Column(3).(*array.Timestamp)
	want := time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC).UnixMicro()
	assert.Equal(t, arrow.Timestamp(want), seen.Value(0))
	assert.True(t, seen.IsNull(1))

	notes := rec.Column(4).(*array.String)
	assert.Equal(t, "7", notes.Value(1))
}

func TestRecordRejectsUnconvertibleCell(t *testing.T) {
	s, err := loader.ParseSchema([]byte(testutil.TwoIntegerSchemaYAML), "")
	require.NoError(t, err)

	frame := testutil.CreateFrame(t, []string{"a", "b"}, map[string][]interface{}{
		"a": {int64(1)},
		"b": {"three"},
	})

	_, err = Record(nil, s, frame)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "to integer")
}

func TestDataTypeDefaultsToString(t *testing.T) {
	assert.True(t, arrow.TypeEqual(arrow.BinaryTypes.String, DataType(schema.LogicalString)))
	assert.True(t, arrow.TypeEqual(arrow.BinaryTypes.String, DataType("")))
}
