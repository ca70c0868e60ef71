package frame

import (
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/gofrs/uuid"
)

// Dataset is a handle to tabular data held inside an external execution
// engine. Handles are opaque to this library beyond the accessors below; the
// engine which issued a Dataset owns its storage and lifecycle.
type Dataset interface {
	// ID uniquely identifies this Dataset within its Engine
	ID() uuid.UUID
	// Schema returns the engine-side schema of this Dataset
	Schema() *arrow.Schema
	// RowCount returns the number of rows in this Dataset, computed engine-side
	RowCount() (int64, error)
}

// Engine is the bridge to an external execution engine capable of holding and
// operating on datasets. Schemas cross the bridge as Arrow schemas; row data
// crosses as it is consumed from a RowIterator. This library never inspects
// engine-internal representations beyond the operations below.
type Engine interface {
	// SchemaToEngine serializes a Schema into the engine's schema representation
	SchemaToEngine(schema *Schema) (*arrow.Schema, error)
	// SchemaFromEngine translates an engine schema back into a Schema
	SchemaFromEngine(engineSchema *arrow.Schema) (*Schema, error)
	// RowsToEngine materializes a dataset inside the engine from a local row source
	RowsToEngine(rows RowIterator, engineSchema *arrow.Schema) (Dataset, error)
	// RowsFromEngine pulls a dataset's rows out of the engine as a local row iterator
	RowsFromEngine(dataset Dataset) (RowIterator, error)
}
