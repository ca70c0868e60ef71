package frame

import (
	"testing"

	"github.com/stretchr/testify/require"

	errors "github.com/go-frame/frame/errors"
)

func TestInferSchemaPlaceholderNames(t *testing.T) {
	data := [][]interface{}{
		{1, "a", 1.5},
		{2, "b", 5.0},
		{3, "c", 22.7},
	}
	schema, err := InferSchema(data, nil, 0)
	require.Nil(t, err)
	expected := CreateSchema([]Column{
		{Name: "C0", Type: &Int64Type{}},
		{Name: "C1", Type: &StringType{}},
		{Name: "C2", Type: &Float64Type{}},
	})
	require.Nil(t, schema.Equals(expected))
}

func TestInferSchemaPartialNames(t *testing.T) {
	data := [][]interface{}{
		{1, "a", 1.5},
		{2, "b", 5.0},
	}
	schema, err := InferSchema(data, []string{"number", "letter"}, 0)
	require.Nil(t, err)
	require.Equal(t, []string{"number", "letter", "C2"}, schema.ColumnNames())
}

func TestInferSchemaExcessNamesIgnored(t *testing.T) {
	data := [][]interface{}{{1, "a"}}
	schema, err := InferSchema(data, []string{"one", "two", "three", "four"}, 0)
	require.Nil(t, err)
	require.Equal(t, []string{"one", "two"}, schema.ColumnNames())
}

func TestInferSchemaEmptyData(t *testing.T) {
	schema, err := InferSchema(nil, nil, 0)
	require.Nil(t, err)
	require.Equal(t, 0, schema.NumColumns())
}

func TestInferSchemaWidening(t *testing.T) {
	data := [][]interface{}{
		{1},
		{2.5},
		{3},
	}
	schema, err := InferSchema(data, nil, 0)
	require.Nil(t, err)
	require.Equal(t, &Float64Type{}, schema.Column(0).Type)
}

func TestInferSchemaOrderIndependent(t *testing.T) {
	data := [][]interface{}{
		{1, true},
		{2.5, false},
		{"x", 3},
		{4, true},
	}
	schema, err := InferSchema(data, nil, 0)
	require.Nil(t, err)
	// same rows, every rotation
	for shift := 1; shift < len(data); shift++ {
		rotated := append(append([][]interface{}{}, data[shift:]...), data[:shift]...)
		rotatedSchema, err := InferSchema(rotated, nil, 0)
		require.Nil(t, err)
		require.Equal(t, schema.ColumnTypes(), rotatedSchema.ColumnTypes())
	}
}

func TestInferSchemaArityMismatch(t *testing.T) {
	data := [][]interface{}{
		{1, 2},
		{1, 2, 3},
	}
	_, err := InferSchema(data, nil, 0)
	var schemaErr *errors.SchemaError
	require.ErrorAs(t, err, &schemaErr)
}

func TestInferSchemaVectorLengthConflict(t *testing.T) {
	data := [][]interface{}{
		{[]float64{1, 2, 3}},
		{[]float64{4, 5, 6, 7}},
	}
	_, err := InferSchema(data, nil, 0)
	var schemaErr *errors.SchemaError
	require.ErrorAs(t, err, &schemaErr)
}

func TestInferSchemaSampleSizeLimit(t *testing.T) {
	// the float row beyond the sample window must not influence the schema
	data := [][]interface{}{
		{1},
		{2},
		{3.5},
	}
	schema, err := InferSchema(data, nil, 2)
	require.Nil(t, err)
	require.Equal(t, &Int64Type{}, schema.Column(0).Type)
}
