// Package memory provides an in-process execution engine. It implements the
// frame.Engine bridge, holding datasets as lz4-compressed Arrow record
// batches, and stands in for an external distributed engine during local use
// and testing.
package memory

import (
	"fmt"
	"sync"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	frame "github.com/go-frame/frame"
	"github.com/go-frame/frame/logging"
)

// Options configures an in-process Engine
type Options struct {
	BatchSize int         // The maximum number of rows per stored record batch. Defaults to 1024.
	Logger    *zap.Logger // Structured logger for engine operations. Defaults to a no-op logger.
}

// Engine is an in-process implementation of the frame.Engine bridge. Unlike a
// Frame, an Engine may be shared: its dataset registry is guarded by a mutex.
type Engine struct {
	opts     *Options
	log      *zap.Logger
	mu       sync.Mutex
	datasets map[uuid.UUID]*dataset
}

// dataset is a handle to rows materialized inside this Engine, stored as
// lz4-compressed Arrow IPC blocks
type dataset struct {
	id      uuid.UUID
	schema  *arrow.Schema
	blocks  [][]byte
	numRows int64
}

// CreateEngine is a factory for in-process Engines
func CreateEngine(opts *Options) *Engine {
	if opts == nil {
		opts = &Options{}
	}
	if opts.BatchSize == 0 {
		opts.BatchSize = 1024
	}
	log := opts.Logger
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Engine{
		opts:     opts,
		log:      log,
		datasets: make(map[uuid.UUID]*dataset),
	}
}

// ID uniquely identifies this dataset within its Engine
func (d *dataset) ID() uuid.UUID {
	return d.id
}

// Schema returns the engine-side schema of this dataset
func (d *dataset) Schema() *arrow.Schema {
	return d.schema
}

// RowCount returns the number of rows in this dataset. The count is tracked
// engine-side, so no row data is decompressed.
func (d *dataset) RowCount() (int64, error) {
	return d.numRows, nil
}

// RowsToEngine materializes a dataset inside this Engine by consuming a local
// row iterator. Rows are encoded into Arrow record batches and stored
// compressed. Returns a handle to the new dataset.
func (e *Engine) RowsToEngine(rows frame.RowIterator, engineSchema *arrow.Schema) (frame.Dataset, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	blocks, numRows, err := encodeBlocks(rows, engineSchema, e.opts.BatchSize)
	if err != nil {
		return nil, err
	}
	ds := &dataset{id: id, schema: engineSchema, blocks: blocks, numRows: numRows}
	e.mu.Lock()
	e.datasets[id] = ds
	e.mu.Unlock()
	e.log.Debug("materialized dataset",
		zap.String("dataset", id.String()),
		zap.Int64("rows", numRows),
		zap.Int("blocks", len(blocks)))
	return ds, nil
}

// RowsFromEngine pulls a dataset's rows out of this Engine as a local row
// iterator. Blocks are decompressed lazily, one at a time, as the iterator is
// consumed.
func (e *Engine) RowsFromEngine(handle frame.Dataset) (frame.RowIterator, error) {
	ds, err := e.lookup(handle)
	if err != nil {
		return nil, err
	}
	e.log.Debug("fetching dataset",
		zap.String("dataset", ds.id.String()),
		zap.Int64("rows", ds.numRows))
	return &blockIterator{dataset: ds}, nil
}

// Drop removes a dataset from this Engine, releasing its storage
func (e *Engine) Drop(handle frame.Dataset) error {
	ds, err := e.lookup(handle)
	if err != nil {
		return err
	}
	e.mu.Lock()
	delete(e.datasets, ds.id)
	e.mu.Unlock()
	e.log.Debug("dropped dataset", zap.String("dataset", ds.id.String()))
	return nil
}

// NumDatasets returns the number of datasets currently held by this Engine
func (e *Engine) NumDatasets() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.datasets)
}

// lookup resolves a frame.Dataset handle to a dataset owned by this Engine
func (e *Engine) lookup(handle frame.Dataset) (*dataset, error) {
	ds, ok := handle.(*dataset)
	if !ok {
		return nil, fmt.Errorf("dataset %s was not created by this engine", handle.ID())
	}
	e.mu.Lock()
	_, registered := e.datasets[ds.id]
	e.mu.Unlock()
	if !registered {
		return nil, fmt.Errorf("dataset %s is not registered with this engine", ds.id)
	}
	return ds, nil
}
