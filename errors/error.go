package errors

import (
	"fmt"
)

// SchemaError occurs when data is structurally incompatible with a Schema, or when
// a Schema itself is malformed. SchemaErrors are non-recoverable and abort the
// operation which surfaced them.
type SchemaError struct{ Message string }

// Error returns a textual representation of this SchemaError
func (e *SchemaError) Error() string {
	return e.Message
}

// NewSchemaError creates a SchemaError with a custom message
func NewSchemaError(format string, args ...interface{}) *SchemaError {
	return &SchemaError{Message: fmt.Sprintf(format, args...)}
}

// NewArityError creates a SchemaError indicating that a Row's width does not match
// the width of its Schema
func NewArityError(rowWidth int, schemaWidth int) *SchemaError {
	return &SchemaError{Message: fmt.Sprintf("Length of the row (%d) does not match the schema length (%d)", rowWidth, schemaWidth)}
}

// NewVectorLengthError creates a SchemaError indicating that two vector types of
// differing lengths cannot be merged
func NewVectorLengthError(a int, b int) *SchemaError {
	return &SchemaError{Message: fmt.Sprintf("Vector types of differing lengths (%d and %d) cannot be merged", a, b)}
}

// NewUnsupportedTypeError creates a SchemaError indicating that a declared column
// type is not supported by schema validation
func NewUnsupportedTypeError(colName string, typeName string) *SchemaError {
	return &SchemaError{Message: fmt.Sprintf("Schema validation does not support column %s with data type %s", colName, typeName)}
}

// MissingColumnError occurs when a named column does not exist in a Schema
type MissingColumnError struct{ Name string }

// Error returns a textual representation of this MissingColumnError
func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("Schema does not contain column with name %s", e.Name)
}

// EngineError occurs when an exchange with the external execution engine fails
// during backend promotion or demotion. The Frame's previous backend remains
// active when an EngineError is returned.
type EngineError struct {
	Op  string // the bridge operation which failed
	Err error  // the engine-side cause
}

// Error returns a textual representation of this EngineError
func (e *EngineError) Error() string {
	return fmt.Sprintf("engine %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the engine-side cause of this EngineError
func (e *EngineError) Unwrap() error {
	return e.Err
}

// NewEngineError creates an EngineError wrapping an engine-side cause
func NewEngineError(op string, err error) *EngineError {
	return &EngineError{Op: op, Err: err}
}
