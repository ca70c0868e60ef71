package memory

import (
	"testing"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	frame "github.com/go-frame/frame"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func fullSchema() *frame.Schema {
	return frame.CreateSchema([]frame.Column{
		{Name: "name", Type: &frame.StringType{}},
		{Name: "small", Type: &frame.Int32Type{}},
		{Name: "big", Type: &frame.Int64Type{}},
		{Name: "score", Type: &frame.Float64Type{}},
		{Name: "flag", Type: &frame.BoolType{}},
		{Name: "when", Type: &frame.DateTimeType{}},
		{Name: "vec", Type: &frame.VectorType{Length: 3}},
	})
}

func TestSchemaRoundTrip(t *testing.T) {
	eng := CreateEngine(nil)
	schema := fullSchema()

	engineSchema, err := eng.SchemaToEngine(schema)
	require.Nil(t, err)
	back, err := eng.SchemaFromEngine(engineSchema)
	require.Nil(t, err)
	require.Nil(t, schema.Equals(back))
}

func TestSchemaToEngineFieldTypes(t *testing.T) {
	eng := CreateEngine(nil)
	engineSchema, err := eng.SchemaToEngine(fullSchema())
	require.Nil(t, err)

	require.Equal(t, arrow.BinaryTypes.String, engineSchema.Field(0).Type)
	require.Equal(t, arrow.PrimitiveTypes.Int32, engineSchema.Field(1).Type)
	require.Equal(t, arrow.PrimitiveTypes.Int64, engineSchema.Field(2).Type)
	require.Equal(t, arrow.PrimitiveTypes.Float64, engineSchema.Field(3).Type)
	require.Equal(t, arrow.FixedWidthTypes.Boolean, engineSchema.Field(4).Type)
	// datetimes cross the bridge as tagged strings
	require.Equal(t, arrow.BinaryTypes.String, engineSchema.Field(5).Type)
	require.True(t, engineSchema.Field(5).Metadata.FindKey(metadataTypeKey) >= 0)
	require.Equal(t, arrow.FixedSizeListOf(3, arrow.PrimitiveTypes.Float64), engineSchema.Field(6).Type)
}

func TestSchemaFromEngineUnsupportedType(t *testing.T) {
	eng := CreateEngine(nil)
	engineSchema := arrow.NewSchema([]arrow.Field{
		{Name: "x", Type: arrow.PrimitiveTypes.Uint16},
	}, nil)
	_, err := eng.SchemaFromEngine(engineSchema)
	require.NotNil(t, err)
}

func TestRowsRoundTrip(t *testing.T) {
	eng := CreateEngine(nil)
	schema := frame.CreateSchema([]frame.Column{
		{Name: "id", Type: &frame.Int64Type{}},
		{Name: "name", Type: &frame.StringType{}},
		{Name: "vec", Type: &frame.VectorType{Length: 2}},
	})
	engineSchema, err := eng.SchemaToEngine(schema)
	require.Nil(t, err)

	rows := []frame.Row{
		{int64(1), "a", []float64{1, 2}},
		{int64(2), nil, []float64{3, 4}},
		{int64(3), "c", nil},
	}
	dataset, err := eng.RowsToEngine(frame.CreateSliceSource(rows).Iterate(), engineSchema)
	require.Nil(t, err)

	count, err := dataset.RowCount()
	require.Nil(t, err)
	require.Equal(t, int64(3), count)

	it, err := eng.RowsFromEngine(dataset)
	require.Nil(t, err)
	back, err := frame.CollectRows(it)
	require.Nil(t, err)
	require.Equal(t, rows, back)
}

func TestRowsSpanMultipleBlocks(t *testing.T) {
	eng := CreateEngine(&Options{BatchSize: 2})
	schema := frame.CreateSchema([]frame.Column{{Name: "n", Type: &frame.Int64Type{}}})
	engineSchema, err := eng.SchemaToEngine(schema)
	require.Nil(t, err)

	rows := make([]frame.Row, 7)
	for i := range rows {
		rows[i] = frame.Row{int64(i)}
	}
	dataset, err := eng.RowsToEngine(frame.CreateSliceSource(rows).Iterate(), engineSchema)
	require.Nil(t, err)

	it, err := eng.RowsFromEngine(dataset)
	require.Nil(t, err)
	back, err := frame.CollectRows(it)
	require.Nil(t, err)
	require.Equal(t, rows, back)
}

func TestRowsToEngineCoercesValues(t *testing.T) {
	eng := CreateEngine(nil)
	schema := frame.CreateSchema([]frame.Column{
		{Name: "n", Type: &frame.Int64Type{}},
		{Name: "s", Type: &frame.StringType{}},
	})
	engineSchema, err := eng.SchemaToEngine(schema)
	require.Nil(t, err)

	// untyped literals: plain ints and a non-string cell
	rows := []frame.Row{{1, 42}, {2, "b"}}
	dataset, err := eng.RowsToEngine(frame.CreateSliceSource(rows).Iterate(), engineSchema)
	require.Nil(t, err)

	it, err := eng.RowsFromEngine(dataset)
	require.Nil(t, err)
	back, err := frame.CollectRows(it)
	require.Nil(t, err)
	require.Equal(t, frame.Row{int64(1), "42"}, back[0])
	require.Equal(t, frame.Row{int64(2), "b"}, back[1])
}

func TestRowsToEngineArityMismatch(t *testing.T) {
	eng := CreateEngine(nil)
	schema := frame.CreateSchema([]frame.Column{
		{Name: "a", Type: &frame.Int64Type{}},
		{Name: "b", Type: &frame.Int64Type{}},
	})
	engineSchema, err := eng.SchemaToEngine(schema)
	require.Nil(t, err)

	rows := []frame.Row{{int64(1), int64(2), int64(3)}}
	_, err = eng.RowsToEngine(frame.CreateSliceSource(rows).Iterate(), engineSchema)
	require.NotNil(t, err)
	require.Equal(t, 0, eng.NumDatasets())
}

func TestDropDataset(t *testing.T) {
	eng := CreateEngine(nil)
	schema := frame.CreateSchema([]frame.Column{{Name: "n", Type: &frame.Int64Type{}}})
	engineSchema, err := eng.SchemaToEngine(schema)
	require.Nil(t, err)

	dataset, err := eng.RowsToEngine(frame.CreateSliceSource([]frame.Row{{int64(1)}}).Iterate(), engineSchema)
	require.Nil(t, err)
	require.Equal(t, 1, eng.NumDatasets())

	require.Nil(t, eng.Drop(dataset))
	require.Equal(t, 0, eng.NumDatasets())

	// the handle is no longer usable
	_, err = eng.RowsFromEngine(dataset)
	require.NotNil(t, err)
}

func TestForeignDatasetRejected(t *testing.T) {
	eng1 := CreateEngine(nil)
	eng2 := CreateEngine(nil)
	schema := frame.CreateSchema([]frame.Column{{Name: "n", Type: &frame.Int64Type{}}})
	engineSchema, err := eng1.SchemaToEngine(schema)
	require.Nil(t, err)

	dataset, err := eng1.RowsToEngine(frame.CreateSliceSource([]frame.Row{{int64(1)}}).Iterate(), engineSchema)
	require.Nil(t, err)

	_, err = eng2.RowsFromEngine(dataset)
	require.NotNil(t, err)
}
