package frame

import (
	"github.com/cespare/xxhash/v2"
)

// Row-level operations. All of these resolve the local backend, demoting the
// Frame first when it is currently engine-backed.

// Take returns up to n rows from the beginning of this Frame
func (f *Frame) Take(n int) ([]Row, error) {
	source, _, err := f.Local()
	if err != nil {
		return nil, err
	}
	rows := make([]Row, 0, n)
	it := source.Iterate()
	for len(rows) < n && it.HasNext() {
		row, err := it.Next()
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Filter keeps only the rows for which pred returns true, lazily
func (f *Frame) Filter(pred func(Row) (bool, error)) error {
	source, schema, err := f.Local()
	if err != nil {
		return err
	}
	f.setLocal(&filteredSource{source: source, pred: pred}, schema)
	return nil
}

// DropRows removes the rows for which pred returns true, lazily
func (f *Frame) DropRows(pred func(Row) (bool, error)) error {
	return f.Filter(func(row Row) (bool, error) {
		keep, err := pred(row)
		return !keep, err
	})
}

// DropDuplicates removes duplicate rows, keeping the first occurrence of each
// distinct row. Rows are fingerprinted by hashing their string representation.
// The Frame's rows are materialized by this operation.
func (f *Frame) DropDuplicates() error {
	source, schema, err := f.Local()
	if err != nil {
		return err
	}
	seen := make(map[uint64]bool)
	var unique []Row
	it := source.Iterate()
	for it.HasNext() {
		row, err := it.Next()
		if err != nil {
			return err
		}
		fingerprint := xxhash.Sum64String(row.ToString())
		if !seen[fingerprint] {
			seen[fingerprint] = true
			unique = append(unique, row)
		}
	}
	f.setLocal(CreateSliceSource(unique), schema)
	return nil
}

// Copy returns a new Frame over a materialized copy of this Frame's rows,
// sharing the same Engine execution context. Copying demotes this Frame to
// the local backend if necessary.
func (f *Frame) Copy() (*Frame, error) {
	source, schema, err := f.Local()
	if err != nil {
		return nil, err
	}
	rows, err := CollectRows(source.Iterate())
	if err != nil {
		return nil, err
	}
	copied := make([]Row, len(rows))
	for i, row := range rows {
		copied[i] = row.Clone()
	}
	return FromSource(f.engine, CreateSliceSource(copied), schema.Clone()), nil
}

// filteredSource yields only the rows of an underlying source which satisfy a
// predicate, lazily
type filteredSource struct {
	source RowSource
	pred   func(Row) (bool, error)
}

type filteredIterator struct {
	inner      RowIterator
	pred       func(Row) (bool, error)
	pending    Row
	hasPending bool
	failed     error
}

func (s *filteredSource) Iterate() RowIterator {
	return &filteredIterator{inner: s.source.Iterate(), pred: s.pred}
}

// advance pulls from the underlying iterator until a row satisfies the
// predicate, or the source is exhausted
func (it *filteredIterator) advance() {
	for !it.hasPending && it.failed == nil && it.inner.HasNext() {
		row, err := it.inner.Next()
		if err != nil {
			it.failed = err
			return
		}
		keep, err := it.pred(row)
		if err != nil {
			it.failed = err
			return
		}
		if keep {
			it.pending = row
			it.hasPending = true
		}
	}
}

func (it *filteredIterator) HasNext() bool {
	it.advance()
	return it.hasPending || it.failed != nil
}

func (it *filteredIterator) Next() (Row, error) {
	it.advance()
	if it.failed != nil {
		return nil, it.failed
	}
	row := it.pending
	it.pending = nil
	it.hasPending = false
	return row, nil
}
