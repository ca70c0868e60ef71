// Package jsonl provides an import connector which produces locally-backed
// Frames from line-delimited JSON files. Column names are gjson paths, so
// nested values can be imported with dotted names (e.g. "meta.created").
package jsonl

import (
	"bufio"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	frame "github.com/go-frame/frame"
)

// ImportOptions configures a JSONL import
type ImportOptions struct {
	Columns        []string      // gjson paths to extract per line. Defaults to the sorted top-level keys of the first line.
	Schema         *frame.Schema // A fully specified schema; its column names are used as gjson paths.
	ValidateSchema bool          // Validate rows against the schema lazily, on consumption.
	SampleSize     int           // Number of rows examined by schema inference.
}

// Import reads a line-delimited JSON file into a locally-backed Frame,
// inferring a schema from the extracted values unless one is declared in opts
func Import(engine frame.Engine, path string, opts *ImportOptions) (*frame.Frame, error) {
	if opts == nil {
		opts = &ImportOptions{}
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", path)
	}
	defer file.Close()

	columns := opts.Columns
	if opts.Schema != nil {
		columns = opts.Schema.ColumnNames()
	}

	var rows [][]interface{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !gjson.Valid(line) {
			return nil, errors.Errorf("unable to parse %s: invalid JSON line %q", path, line)
		}
		if columns == nil {
			columns = topLevelKeys(line)
		}
		row := make([]interface{}, len(columns))
		for i, col := range columns {
			row[i] = jsonValue(gjson.Get(line, col))
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "unable to read %s", path)
	}

	return frame.Create(engine, rows, &frame.CreateOptions{
		ColumnNames:    columns,
		Schema:         opts.Schema,
		ValidateSchema: opts.ValidateSchema,
		SampleSize:     opts.SampleSize,
	})
}

// topLevelKeys returns the sorted top-level keys of a JSON object line
func topLevelKeys(line string) []string {
	var keys []string
	gjson.Parse(line).ForEach(func(key, value gjson.Result) bool {
		keys = append(keys, key.String())
		return true
	})
	sort.Strings(keys)
	return keys
}

// jsonValue converts a gjson result into a Frame cell value. Missing and null
// values become the null marker, numeric arrays become vectors, and anything
// else is kept as its raw JSON text.
func jsonValue(result gjson.Result) interface{} {
	switch result.Type {
	case gjson.Null:
		return nil
	case gjson.True:
		return true
	case gjson.False:
		return false
	case gjson.Number:
		if isIntegerLiteral(result.Raw) {
			return result.Int()
		}
		return result.Float()
	case gjson.String:
		return result.Str
	default:
		if !result.Exists() {
			return nil
		}
		if result.IsArray() {
			if vec, ok := numericArray(result); ok {
				return vec
			}
		}
		return result.Raw
	}
}

// numericArray converts a JSON array of numbers into a vector value
func numericArray(result gjson.Result) ([]float64, bool) {
	elems := result.Array()
	vec := make([]float64, len(elems))
	for i, elem := range elems {
		if elem.Type != gjson.Number {
			return nil, false
		}
		vec[i] = elem.Float()
	}
	return vec, true
}

func isIntegerLiteral(raw string) bool {
	return !strings.ContainsAny(raw, ".eE")
}
