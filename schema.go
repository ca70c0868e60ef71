package frame

import (
	"fmt"
	"strings"

	errors "github.com/go-frame/frame/errors"
)

// Column pairs a column name with the DataType of the column's values
type Column struct {
	Name string
	Type DataType
}

// Schema is an ordered sequence of named, typed columns describing the shape
// of a Frame's Rows. Duplicate column names are tolerated, though discouraged;
// name-based lookups resolve to the first match. A Schema is an immutable
// snapshot: column-changing operations produce a new Schema rather than
// modifying one in place.
type Schema struct {
	cols []Column
}

// CreateSchema is a factory for Schemas
func CreateSchema(cols []Column) *Schema {
	copied := make([]Column, len(cols))
	copy(copied, cols)
	return &Schema{cols: copied}
}

// NumColumns returns the number of columns in this Schema
func (s *Schema) NumColumns() int {
	return len(s.cols)
}

// Column returns the column at the given index
func (s *Schema) Column(i int) Column {
	return s.cols[i]
}

// Columns returns a copy of the columns in this Schema, in order
func (s *Schema) Columns() []Column {
	out := make([]Column, len(s.cols))
	copy(out, s.cols)
	return out
}

// ColumnNames returns the names in this Schema, in order
func (s *Schema) ColumnNames() []string {
	names := make([]string, len(s.cols))
	for i, c := range s.cols {
		names[i] = c.Name
	}
	return names
}

// ColumnTypes returns the types in this Schema, in order
func (s *Schema) ColumnTypes() []DataType {
	types := make([]DataType, len(s.cols))
	for i, c := range s.cols {
		types[i] = c.Type
	}
	return types
}

// IndexOf returns the index of the first column with the given name, or -1 if
// no such column exists
func (s *Schema) IndexOf(colName string) int {
	for i, c := range s.cols {
		if c.Name == colName {
			return i
		}
	}
	return -1
}

// HasColumn returns true iff this Schema contains a column with the given name
func (s *Schema) HasColumn(colName string) bool {
	return s.IndexOf(colName) >= 0
}

// Equals returns nil iff this and another Schema have identical columns in
// identical order, or an error describing the first difference found
func (s *Schema) Equals(other *Schema) error {
	if s.NumColumns() != other.NumColumns() {
		return fmt.Errorf("Schemas have unequal numbers of columns (%d and %d)", s.NumColumns(), other.NumColumns())
	}
	for i, c := range s.cols {
		o := other.cols[i]
		if c.Name != o.Name {
			return fmt.Errorf("Column %d names do not match (%s and %s)", i, c.Name, o.Name)
		}
		if !TypesEqual(c.Type, o.Type) {
			return fmt.Errorf("Column %s types do not match (%s and %s)", c.Name, c.Type, o.Type)
		}
	}
	return nil
}

// Clone returns a copy of this Schema
func (s *Schema) Clone() *Schema {
	return CreateSchema(s.cols)
}

// WithColumn returns a new Schema with an additional column appended
func (s *Schema) WithColumn(colName string, colType DataType) *Schema {
	cols := make([]Column, len(s.cols), len(s.cols)+1)
	copy(cols, s.cols)
	cols = append(cols, Column{Name: colName, Type: colType})
	return &Schema{cols: cols}
}

// WithoutColumns returns a new Schema with all columns matching the given
// names removed. An error is returned if any named column does not exist.
func (s *Schema) WithoutColumns(colNames ...string) (*Schema, error) {
	drop := make(map[string]bool, len(colNames))
	for _, name := range colNames {
		if !s.HasColumn(name) {
			return nil, &errors.MissingColumnError{Name: name}
		}
		drop[name] = true
	}
	cols := make([]Column, 0, len(s.cols))
	for _, c := range s.cols {
		if !drop[c.Name] {
			cols = append(cols, c)
		}
	}
	return &Schema{cols: cols}, nil
}

// Renamed returns a new Schema with columns renamed according to the given
// mapping of old names to new names. An error is returned if any old name
// does not exist.
func (s *Schema) Renamed(names map[string]string) (*Schema, error) {
	for oldName := range names {
		if !s.HasColumn(oldName) {
			return nil, &errors.MissingColumnError{Name: oldName}
		}
	}
	cols := make([]Column, len(s.cols))
	for i, c := range s.cols {
		if newName, ok := names[c.Name]; ok {
			cols[i] = Column{Name: newName, Type: c.Type}
		} else {
			cols[i] = c
		}
	}
	return &Schema{cols: cols}, nil
}

// Retyped returns a new Schema with the first column of the given name
// assigned a new DataType. An error is returned if no such column exists.
func (s *Schema) Retyped(colName string, colType DataType) (*Schema, error) {
	idx := s.IndexOf(colName)
	if idx < 0 {
		return nil, &errors.MissingColumnError{Name: colName}
	}
	cols := make([]Column, len(s.cols))
	copy(cols, s.cols)
	cols[idx] = Column{Name: colName, Type: colType}
	return &Schema{cols: cols}, nil
}

// String returns a string representation of this Schema
func (s *Schema) String() string {
	var res strings.Builder
	fmt.Fprint(&res, "[")
	for i, c := range s.cols {
		if i > 0 {
			fmt.Fprint(&res, ", ")
		}
		fmt.Fprintf(&res, "(%s, %s)", c.Name, c.Type)
	}
	fmt.Fprint(&res, "]")
	return res.String()
}

// ForEachColumn iterates over the columns in this Schema, in order
func (s *Schema) ForEachColumn(fn func(i int, col Column) error) error {
	for i, c := range s.cols {
		if err := fn(i, c); err != nil {
			return err
		}
	}
	return nil
}
