package frame

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testSchema() *Schema {
	return CreateSchema([]Column{
		{Name: "id", Type: &Int64Type{}},
		{Name: "name", Type: &StringType{}},
		{Name: "score", Type: &Float64Type{}},
	})
}

func TestSchemaAccessors(t *testing.T) {
	schema := testSchema()
	require.Equal(t, 3, schema.NumColumns())
	require.Equal(t, []string{"id", "name", "score"}, schema.ColumnNames())
	require.Equal(t, 1, schema.IndexOf("name"))
	require.Equal(t, -1, schema.IndexOf("missing"))
	require.True(t, schema.HasColumn("score"))
	require.False(t, schema.HasColumn("missing"))
}

func TestSchemaEquality(t *testing.T) {
	require.Nil(t, testSchema().Equals(testSchema()))

	other := CreateSchema([]Column{
		{Name: "id", Type: &Int64Type{}},
		{Name: "name", Type: &StringType{}},
	})
	require.NotNil(t, testSchema().Equals(other))

	retyped, err := testSchema().Retyped("score", &Int64Type{})
	require.Nil(t, err)
	require.NotNil(t, testSchema().Equals(retyped))
}

func TestSchemaEqualityVectorLengths(t *testing.T) {
	a := CreateSchema([]Column{{Name: "v", Type: &VectorType{Length: 3}}})
	b := CreateSchema([]Column{{Name: "v", Type: &VectorType{Length: 4}}})
	require.NotNil(t, a.Equals(b))
}

func TestSchemaDerivations(t *testing.T) {
	schema := testSchema()

	added := schema.WithColumn("flag", &BoolType{})
	require.Equal(t, 4, added.NumColumns())
	// the original snapshot is untouched
	require.Equal(t, 3, schema.NumColumns())

	dropped, err := schema.WithoutColumns("name", "score")
	require.Nil(t, err)
	require.Equal(t, []string{"id"}, dropped.ColumnNames())

	_, err = schema.WithoutColumns("missing")
	require.NotNil(t, err)

	renamed, err := schema.Renamed(map[string]string{"id": "ident"})
	require.Nil(t, err)
	require.Equal(t, []string{"ident", "name", "score"}, renamed.ColumnNames())

	_, err = schema.Renamed(map[string]string{"missing": "other"})
	require.NotNil(t, err)
}

func TestSchemaDuplicateNamesTolerated(t *testing.T) {
	schema := CreateSchema([]Column{
		{Name: "a", Type: &Int64Type{}},
		{Name: "a", Type: &StringType{}},
	})
	require.Equal(t, 2, schema.NumColumns())
	// lookups resolve to the first match
	require.Equal(t, 0, schema.IndexOf("a"))
}

func TestSchemaClone(t *testing.T) {
	schema := testSchema()
	clone := schema.Clone()
	require.Nil(t, schema.Equals(clone))
	derived := clone.WithColumn("extra", &BoolType{})
	require.Equal(t, 3, schema.NumColumns())
	require.Equal(t, 4, derived.NumColumns())
}
