package frame

import (
	"strconv"

	errors "github.com/go-frame/frame/errors"
)

// DefaultInferenceSampleSize is the number of rows examined by InferSchema
// when no other sample size is configured
const DefaultInferenceSampleSize = 100

// InferSchema derives a Schema from a sample of row data. The first row seeds
// the running type list; the types of each subsequent row, up to sampleSize
// rows, are merged into it column-wise via MergeTypes. Rows which disagree on
// arity produce a SchemaError, as do vector columns whose lengths disagree.
//
// Column i is named colNames[i] when that index is in range, and "C<i>"
// otherwise; excess names are ignored. Empty data yields an empty Schema.
// A sampleSize of 0 or less selects DefaultInferenceSampleSize.
func InferSchema(data [][]interface{}, colNames []string, sampleSize int) (*Schema, error) {
	if sampleSize <= 0 {
		sampleSize = DefaultInferenceSampleSize
	}
	if len(data) < sampleSize {
		sampleSize = len(data)
	}
	if len(data) == 0 {
		return CreateSchema(nil), nil
	}
	types := inferRowTypes(data[0])
	for i := 1; i < sampleSize; i++ {
		rowTypes := inferRowTypes(data[i])
		merged, err := mergeTypeLists(types, rowTypes)
		if err != nil {
			return nil, err
		}
		types = merged
	}
	cols := make([]Column, len(types))
	for i, t := range types {
		name := placeholderColumnName(i)
		if i < len(colNames) {
			name = colNames[i]
		}
		cols[i] = Column{Name: name, Type: t}
	}
	return CreateSchema(cols), nil
}

// inferRowTypes returns the DataTypes of the values in a single row
func inferRowTypes(row []interface{}) []DataType {
	types := make([]DataType, len(row))
	for i, v := range row {
		types[i] = InferValueType(v)
	}
	return types
}

// mergeTypeLists merges two per-column type lists element-wise
func mergeTypeLists(a []DataType, b []DataType) ([]DataType, error) {
	if len(a) != len(b) {
		return nil, errors.NewSchemaError("Length of each row must be the same (found rows with lengths: %d and %d)", len(a), len(b))
	}
	merged := make([]DataType, len(a))
	for i := range a {
		t, err := MergeTypes(a[i], b[i])
		if err != nil {
			return nil, err
		}
		merged[i] = t
	}
	return merged, nil
}

func placeholderColumnName(i int) string {
	return "C" + strconv.Itoa(i)
}
