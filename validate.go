package frame

import (
	multierror "github.com/hashicorp/go-multierror"

	errors "github.com/go-frame/frame/errors"
)

// validatingSource decorates a RowSource with lazy schema validation. Rows are
// validated and cast one at a time as the iterator is consumed; the wrapped
// source is never materialized eagerly.
type validatingSource struct {
	source RowSource
	schema *Schema
}

type validatingIterator struct {
	inner  RowIterator
	schema *Schema
	failed error
}

// CreateValidatingSource wraps a RowSource so that every Row drawn from it is
// validated against, and cast to, the given Schema.
//
// Structural problems are non-recoverable: a Row whose arity differs from the
// Schema's length aborts iteration with a SchemaError the moment that Row is
// consumed. Value-level problems are recovered locally: a cell which is not
// already of its column's declared type is passed through CastValue, and a
// cell which cannot be cast becomes the null marker, silently.
//
// Declared column types must be supported cast targets (StringType,
// Int32Type, Int64Type, Float64Type, BoolType or VectorType). Any other
// declared type is a configuration error reported eagerly, here, with all
// offending columns aggregated into a single error.
func CreateValidatingSource(source RowSource, schema *Schema) (RowSource, error) {
	var unsupported error
	for _, col := range schema.Columns() {
		if !isSupportedCastTarget(col.Type) {
			unsupported = multierror.Append(unsupported, errors.NewUnsupportedTypeError(col.Name, col.Type.String()))
		}
	}
	if unsupported != nil {
		return nil, unsupported
	}
	return &validatingSource{source: source, schema: schema}, nil
}

func (s *validatingSource) Iterate() RowIterator {
	return &validatingIterator{inner: s.source.Iterate(), schema: s.schema}
}

func (it *validatingIterator) HasNext() bool {
	return it.failed == nil && it.inner.HasNext()
}

func (it *validatingIterator) Next() (Row, error) {
	if it.failed != nil {
		return nil, it.failed
	}
	row, err := it.inner.Next()
	if err != nil {
		it.failed = err
		return nil, err
	}
	validated, err := validateRow(row, it.schema)
	if err != nil {
		it.failed = err
		return nil, err
	}
	return validated, nil
}

// validateRow validates a single Row against a Schema, casting values as needed
func validateRow(row Row, schema *Schema) (Row, error) {
	if len(row) != schema.NumColumns() {
		return nil, errors.NewArityError(len(row), schema.NumColumns())
	}
	out := make(Row, len(row))
	for i, col := range schema.Columns() {
		if row[i] == nil {
			continue
		}
		if TypeMatches(row[i], col.Type) {
			// already the right data type, so keep the original value
			out[i] = row[i]
			continue
		}
		out[i] = CastValue(row[i], col.Type)
	}
	return out, nil
}

func isSupportedCastTarget(t DataType) bool {
	switch t.(type) {
	case *StringType, *Int32Type, *Int64Type, *Float64Type, *BoolType, *VectorType:
		return true
	default:
		return false
	}
}
