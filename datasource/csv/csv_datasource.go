// Package csv provides an import connector which produces locally-backed
// Frames from delimiter-separated files. The connector runs once, at Frame
// construction, and is otherwise opaque to the core library.
package csv

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"

	frame "github.com/go-frame/frame"
)

// ImportOptions configures a CSV import
type ImportOptions struct {
	Header         bool          // The first non-skipped line holds column names. Defaults to false.
	Delimiter      rune          // The delimiter separating columns. Defaults to ','.
	Comment        rune          // Lines beginning with the comment character are ignored. Defaults to no comment character.
	NilValue       string        // A special string which represents nil values. Defaults to "" (the empty string).
	ColumnNames    []string      // Preferred column names, overriding any header line.
	Schema         *frame.Schema // A fully specified schema. Fields are kept as raw strings and cast during validation.
	ValidateSchema bool          // Validate rows against the schema lazily, on consumption.
	SampleSize     int           // Number of rows examined by schema inference.
}

// Import reads a CSV file into a locally-backed Frame, inferring a schema
// from the parsed values unless one is declared in opts
func Import(engine frame.Engine, path string, opts *ImportOptions) (*frame.Frame, error) {
	if opts == nil {
		opts = &ImportOptions{}
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.Comment = opts.Comment

	colNames := opts.ColumnNames
	if opts.Header {
		header, err := reader.Read()
		if err != nil {
			return nil, errors.Wrapf(err, "unable to read header from %s", path)
		}
		if colNames == nil {
			colNames = header
		}
	}

	var rows [][]interface{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "unable to parse %s", path)
		}
		row := make([]interface{}, len(record))
		for i, field := range record {
			if opts.Schema != nil {
				// declared schemas cast raw strings during validation
				row[i] = field
				if field == opts.NilValue {
					row[i] = nil
				}
				continue
			}
			row[i] = parseField(field, opts.NilValue)
		}
		rows = append(rows, row)
	}

	return frame.Create(engine, rows, &frame.CreateOptions{
		ColumnNames:    colNames,
		Schema:         opts.Schema,
		ValidateSchema: opts.ValidateSchema || opts.Schema != nil,
		SampleSize:     opts.SampleSize,
	})
}

// parseField classifies a raw CSV field as the narrowest value it parses as,
// trying integer, then float, then boolean, then string
func parseField(field string, nilValue string) interface{} {
	if field == nilValue {
		return nil
	}
	if i, err := strconv.ParseInt(field, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(field, 64); err == nil {
		return f
	}
	if field == "true" || field == "false" {
		return field == "true"
	}
	return field
}
