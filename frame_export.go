package frame

import (
	"encoding/csv"
	"os"

	"github.com/pkg/errors"

	ferrors "github.com/go-frame/frame/errors"
)

// ExportToCSV writes this Frame's rows to a CSV file at the given path, with
// a header line of column names. The Frame is demoted to the local backend if
// necessary. Null markers are written as empty fields.
func (f *Frame) ExportToCSV(path string) error {
	source, schema, err := f.Local()
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "unable to create %s", path)
	}
	defer file.Close()
	writer := csv.NewWriter(file)
	if err = writer.Write(schema.ColumnNames()); err != nil {
		return errors.Wrapf(err, "unable to write header to %s", path)
	}
	it := source.Iterate()
	record := make([]string, schema.NumColumns())
	for it.HasNext() {
		row, err := it.Next()
		if err != nil {
			return err
		}
		if len(row) != len(record) {
			return ferrors.NewArityError(len(row), len(record))
		}
		for i, v := range row {
			if v == nil {
				record[i] = ""
			} else {
				record[i] = castToString(v).(string)
			}
		}
		if err = writer.Write(record); err != nil {
			return errors.Wrapf(err, "unable to write row to %s", path)
		}
	}
	writer.Flush()
	return errors.Wrapf(writer.Error(), "unable to flush %s", path)
}
