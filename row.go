package frame

import (
	"fmt"
	"strings"
)

// Row is a single row of Frame data: an ordered sequence of values whose arity
// equals the length of the governing Schema. A nil cell is the null marker,
// denoting a value which could not be cast to its column's declared type.
type Row []interface{}

// Clone returns a copy of this Row
func (r Row) Clone() Row {
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// ToString returns a string representation of this Row
func (r Row) ToString() string {
	var res strings.Builder
	fmt.Fprint(&res, "[")
	for i, v := range r {
		if i > 0 {
			fmt.Fprint(&res, ", ")
		}
		if v == nil {
			fmt.Fprint(&res, "nil")
		} else {
			fmt.Fprintf(&res, "%v", v)
		}
	}
	fmt.Fprint(&res, "]")
	return res.String()
}

// RowIterator iterates lazily over Rows. Next returns an error when the
// underlying source fails or when a Row proves structurally incompatible with
// its Schema during validation.
type RowIterator interface {
	HasNext() bool      // HasNext returns true iff there are more Rows to iterate over
	Next() (Row, error) // Next returns the next Row, or an error if one cannot be produced
}

// RowSource is a re-iterable collection of Rows. Iterate returns a fresh
// RowIterator over the full collection each time it is called; any per-row
// cost (such as schema validation) is paid on consumption, not construction.
type RowSource interface {
	Iterate() RowIterator
}

type sliceSource struct {
	rows []Row
}

type sliceIterator struct {
	rows []Row
	next int
}

// CreateSliceSource returns a RowSource backed by an in-memory slice of Rows
func CreateSliceSource(rows []Row) RowSource {
	return &sliceSource{rows: rows}
}

// CreateLiteralSource returns a RowSource backed by literal row data
func CreateLiteralSource(data [][]interface{}) RowSource {
	rows := make([]Row, len(data))
	for i, r := range data {
		rows[i] = Row(r)
	}
	return &sliceSource{rows: rows}
}

func (s *sliceSource) Iterate() RowIterator {
	return &sliceIterator{rows: s.rows}
}

func (it *sliceIterator) HasNext() bool {
	return it.next < len(it.rows)
}

func (it *sliceIterator) Next() (Row, error) {
	if it.next >= len(it.rows) {
		return nil, fmt.Errorf("no more rows")
	}
	row := it.rows[it.next]
	it.next++
	return row, nil
}

// CollectRows consumes a RowIterator, materializing all of its Rows
func CollectRows(it RowIterator) ([]Row, error) {
	var rows []Row
	for it.HasNext() {
		row, err := it.Next()
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// CountRows consumes a RowIterator, counting its Rows
func CountRows(it RowIterator) (int64, error) {
	var count int64
	for it.HasNext() {
		_, err := it.Next()
		if err != nil {
			return 0, err
		}
		count++
	}
	return count, nil
}
