package frame

import (
	errors "github.com/go-frame/frame/errors"
)

// localBackend is a Frame backend materialized in-process: a re-iterable row
// source paired with the Schema governing its rows
type localBackend struct {
	source RowSource
	schema *Schema
}

// Frame is a tabular dataset with a stable handle and schema view, backed at
// any moment by exactly one of two storage strategies: a local row source, or
// a Dataset held inside an external execution Engine. Operations which only
// one side implements switch the active backend on first use ("promotion" to
// the engine, "demotion" to local rows); the superseded backend is discarded.
//
// A Frame is not safe for concurrent use: backend switches swap shared state
// without locking, so callers must serialize access to a single Frame.
type Frame struct {
	engine Engine
	local  *localBackend // exactly one of local and remote is non-nil
	remote Dataset
}

// CreateOptions configures Frame construction
type CreateOptions struct {
	ColumnNames    []string // preferred column names for schema inference; ignored when Schema is set
	Schema         *Schema  // a fully specified schema, skipping inference
	ValidateSchema bool     // when true, rows are validated against the schema lazily, on consumption
	SampleSize     int      // number of rows examined by schema inference; defaults to DefaultInferenceSampleSize
}

// Create constructs a Frame from source data, within the given Engine
// execution context. data may be literal rows ([][]interface{} or []Row), a
// RowSource, or an existing Dataset handle, which is adopted directly as a
// remote backend without copying. When opts is nil, the schema is inferred
// from the data with placeholder column names and no validation is applied.
func Create(engine Engine, data interface{}, opts *CreateOptions) (*Frame, error) {
	if opts == nil {
		opts = &CreateOptions{}
	}
	// an engine-held dataset is adopted as-is
	if dataset, ok := data.(Dataset); ok {
		return Load(engine, dataset), nil
	}
	// a row source with a declared schema stays lazy end to end
	if source, ok := data.(RowSource); ok && opts.Schema != nil {
		if opts.ValidateSchema {
			validating, err := CreateValidatingSource(source, opts.Schema)
			if err != nil {
				return nil, err
			}
			source = validating
		}
		return FromSource(engine, source, opts.Schema), nil
	}
	rows, err := literalRows(data)
	if err != nil {
		return nil, err
	}
	schema := opts.Schema
	if schema == nil {
		schema, err = InferSchema(rows, opts.ColumnNames, opts.SampleSize)
		if err != nil {
			return nil, err
		}
	}
	var source RowSource = CreateLiteralSource(rows)
	if opts.ValidateSchema {
		source, err = CreateValidatingSource(source, schema)
		if err != nil {
			return nil, err
		}
	}
	return FromSource(engine, source, schema), nil
}

// Load wraps an existing engine Dataset in a Frame without copying its data
func Load(engine Engine, dataset Dataset) *Frame {
	return &Frame{engine: engine, remote: dataset}
}

// FromSource constructs a locally-backed Frame from a row source and a
// fully resolved schema. No inference or validation is applied.
func FromSource(engine Engine, source RowSource, schema *Schema) *Frame {
	return &Frame{
		engine: engine,
		local:  &localBackend{source: source, schema: schema},
	}
}

// Engine returns the execution context this Frame was constructed with
func (f *Frame) Engine() Engine {
	return f.engine
}

// IsLocal returns true iff this Frame is currently backed by a local row source
func (f *Frame) IsLocal() bool {
	return f.local != nil
}

// IsRemote returns true iff this Frame is currently backed by an engine Dataset
func (f *Frame) IsRemote() bool {
	return f.remote != nil
}

// Schema returns the Schema of this Frame, read from whichever backend is
// active. Reading the schema never switches backends.
func (f *Frame) Schema() (*Schema, error) {
	if f.IsLocal() {
		return f.local.schema, nil
	}
	schema, err := f.engine.SchemaFromEngine(f.remote.Schema())
	if err != nil {
		return nil, errors.NewEngineError("schema fetch", err)
	}
	return schema, nil
}

// ColumnNames returns the names of this Frame's columns, in order
func (f *Frame) ColumnNames() ([]string, error) {
	schema, err := f.Schema()
	if err != nil {
		return nil, err
	}
	return schema.ColumnNames(), nil
}

// RowCount returns the number of rows in this Frame. It is implemented
// natively on both backends and never switches them: a local Frame counts its
// row source, a remote Frame asks the engine.
func (f *Frame) RowCount() (int64, error) {
	if f.IsRemote() {
		return f.remote.RowCount()
	}
	return CountRows(f.local.source.Iterate())
}

// Remote returns this Frame's backing Dataset, promoting the Frame to the
// engine backend first if it is currently local. Promotion serializes the
// local schema into the engine's representation and hands the local rows to
// the engine for materialization. If any step fails, the local backend
// remains active and an EngineError is returned; on success the local backend
// is discarded. Promoting an already-remote Frame is a no-op.
func (f *Frame) Remote() (Dataset, error) {
	if f.IsRemote() {
		return f.remote, nil
	}
	engineSchema, err := f.engine.SchemaToEngine(f.local.schema)
	if err != nil {
		return nil, errors.NewEngineError("schema conversion", err)
	}
	dataset, err := f.engine.RowsToEngine(f.local.source.Iterate(), engineSchema)
	if err != nil {
		return nil, errors.NewEngineError("dataset materialization", err)
	}
	f.remote = dataset
	f.local = nil
	return f.remote, nil
}

// Local returns this Frame's rows and schema, demoting the Frame to the local
// backend first if it is currently remote. Demotion fetches the engine's
// schema, translates it, and pulls the dataset's rows into a local row
// collection. If any step fails, the remote backend remains active and an
// EngineError is returned; on success the remote handle is discarded.
// Demoting an already-local Frame is a no-op.
func (f *Frame) Local() (RowSource, *Schema, error) {
	if f.IsLocal() {
		return f.local.source, f.local.schema, nil
	}
	schema, err := f.engine.SchemaFromEngine(f.remote.Schema())
	if err != nil {
		return nil, nil, errors.NewEngineError("schema fetch", err)
	}
	it, err := f.engine.RowsFromEngine(f.remote)
	if err != nil {
		return nil, nil, errors.NewEngineError("dataset fetch", err)
	}
	rows, err := CollectRows(it)
	if err != nil {
		return nil, nil, errors.NewEngineError("dataset fetch", err)
	}
	f.local = &localBackend{source: CreateSliceSource(rows), schema: schema}
	f.remote = nil
	return f.local.source, f.local.schema, nil
}

// Rows returns an iterator over this Frame's rows, demoting the Frame to the
// local backend if necessary
func (f *Frame) Rows() (RowIterator, error) {
	source, _, err := f.Local()
	if err != nil {
		return nil, err
	}
	return source.Iterate(), nil
}

// setLocal installs a new local backend wholesale, discarding the previous
// backend. Used by schema-changing operations.
func (f *Frame) setLocal(source RowSource, schema *Schema) {
	f.local = &localBackend{source: source, schema: schema}
	f.remote = nil
}

// literalRows normalizes supported literal data representations into []Row
func literalRows(data interface{}) ([][]interface{}, error) {
	switch d := data.(type) {
	case nil:
		return nil, nil
	case [][]interface{}:
		return d, nil
	case []Row:
		rows := make([][]interface{}, len(d))
		for i, r := range d {
			rows[i] = r
		}
		return rows, nil
	case RowSource:
		collected, err := CollectRows(d.Iterate())
		if err != nil {
			return nil, err
		}
		rows := make([][]interface{}, len(collected))
		for i, r := range collected {
			rows[i] = r
		}
		return rows, nil
	default:
		return nil, errors.NewSchemaError("Unable to create a frame from data of type %T", data)
	}
}
