package frame

// Schema-changing operations. Each one resolves the local backend (demoting
// the Frame if necessary), derives a new Schema from the current one, and
// installs the new schema and row source wholesale.

// AddColumn appends a column to this Frame, computing each row's new value
// with fn. The Frame is demoted to the local backend if necessary. Rows are
// rebuilt lazily, on consumption.
func (f *Frame) AddColumn(colName string, colType DataType, fn func(Row) (interface{}, error)) error {
	source, schema, err := f.Local()
	if err != nil {
		return err
	}
	newSchema := schema.WithColumn(colName, colType)
	mapped := &mappedSource{
		source: source,
		fn: func(row Row) (Row, error) {
			value, err := fn(row)
			if err != nil {
				return nil, err
			}
			out := make(Row, len(row)+1)
			copy(out, row)
			out[len(row)] = value
			return out, nil
		},
	}
	f.setLocal(mapped, newSchema)
	return nil
}

// DropColumns removes the named columns from this Frame, demoting it to the
// local backend if necessary
func (f *Frame) DropColumns(colNames ...string) error {
	source, schema, err := f.Local()
	if err != nil {
		return err
	}
	newSchema, err := schema.WithoutColumns(colNames...)
	if err != nil {
		return err
	}
	// indices of surviving columns, in order
	drop := make(map[string]bool, len(colNames))
	for _, name := range colNames {
		drop[name] = true
	}
	keep := make([]int, 0, newSchema.NumColumns())
	for i, col := range schema.Columns() {
		if !drop[col.Name] {
			keep = append(keep, i)
		}
	}
	mapped := &mappedSource{
		source: source,
		fn: func(row Row) (Row, error) {
			out := make(Row, len(keep))
			for i, idx := range keep {
				out[i] = row[idx]
			}
			return out, nil
		},
	}
	f.setLocal(mapped, newSchema)
	return nil
}

// RenameColumns renames columns according to a mapping of old names to new
// names, demoting the Frame to the local backend if necessary. Row data is
// unchanged.
func (f *Frame) RenameColumns(names map[string]string) error {
	source, schema, err := f.Local()
	if err != nil {
		return err
	}
	newSchema, err := schema.Renamed(names)
	if err != nil {
		return err
	}
	f.setLocal(source, newSchema)
	return nil
}

// RetypeColumn assigns a new DataType to the named column, demoting the Frame
// to the local backend if necessary. Existing values are re-validated against
// the new schema lazily: values which cannot be cast to the new type become
// null markers on consumption.
func (f *Frame) RetypeColumn(colName string, colType DataType) error {
	source, schema, err := f.Local()
	if err != nil {
		return err
	}
	newSchema, err := schema.Retyped(colName, colType)
	if err != nil {
		return err
	}
	validating, err := CreateValidatingSource(source, newSchema)
	if err != nil {
		return err
	}
	f.setLocal(validating, newSchema)
	return nil
}

// mappedSource rebuilds each row of an underlying source through a transform
// function, lazily
type mappedSource struct {
	source RowSource
	fn     func(Row) (Row, error)
}

type mappedIterator struct {
	inner RowIterator
	fn    func(Row) (Row, error)
}

func (s *mappedSource) Iterate() RowIterator {
	return &mappedIterator{inner: s.source.Iterate(), fn: s.fn}
}

func (it *mappedIterator) HasNext() bool {
	return it.inner.HasNext()
}

func (it *mappedIterator) Next() (Row, error) {
	row, err := it.inner.Next()
	if err != nil {
		return nil, err
	}
	return it.fn(row)
}
