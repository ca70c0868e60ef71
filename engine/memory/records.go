package memory

import (
	"bytes"
	"fmt"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	arrowmem "github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/apache/arrow/go/v17/arrow/ipc"
	"github.com/pierrec/lz4"

	frame "github.com/go-frame/frame"
	errors "github.com/go-frame/frame/errors"
)

// encodeBlocks consumes a row iterator, encoding rows into Arrow record
// batches of at most batchSize rows, each serialized as an lz4-compressed IPC
// stream
func encodeBlocks(rows frame.RowIterator, engineSchema *arrow.Schema, batchSize int) (blocks [][]byte, numRows int64, err error) {
	targets, err := castTargets(engineSchema)
	if err != nil {
		return nil, 0, err
	}
	builder := array.NewRecordBuilder(arrowmem.DefaultAllocator, engineSchema)
	defer builder.Release()
	pending := 0
	for rows.HasNext() {
		row, err := rows.Next()
		if err != nil {
			return nil, 0, err
		}
		if len(row) != engineSchema.NumFields() {
			return nil, 0, errors.NewArityError(len(row), engineSchema.NumFields())
		}
		for i, v := range row {
			appendValue(builder.Field(i), v, targets[i])
		}
		pending++
		numRows++
		if pending == batchSize {
			block, err := flushBlock(builder, engineSchema)
			if err != nil {
				return nil, 0, err
			}
			blocks = append(blocks, block)
			pending = 0
		}
	}
	if pending > 0 {
		block, err := flushBlock(builder, engineSchema)
		if err != nil {
			return nil, 0, err
		}
		blocks = append(blocks, block)
	}
	return blocks, numRows, nil
}

// castTargets maps each engine schema field to the DataType used to coerce
// incoming cell values. DateTime fields are string-encoded, so they coerce
// through StringType.
func castTargets(engineSchema *arrow.Schema) ([]frame.DataType, error) {
	targets := make([]frame.DataType, engineSchema.NumFields())
	for i, field := range engineSchema.Fields() {
		switch field.Type.ID() {
		case arrow.STRING:
			targets[i] = &frame.StringType{}
		case arrow.INT32:
			targets[i] = &frame.Int32Type{}
		case arrow.INT64:
			targets[i] = &frame.Int64Type{}
		case arrow.FLOAT64:
			targets[i] = &frame.Float64Type{}
		case arrow.BOOL:
			targets[i] = &frame.BoolType{}
		case arrow.FIXED_SIZE_LIST:
			listType := field.Type.(*arrow.FixedSizeListType)
			targets[i] = &frame.VectorType{Length: int(listType.Len())}
		default:
			return nil, errors.NewSchemaError("Engine field %s has unsupported type %s", field.Name, field.Type)
		}
	}
	return targets, nil
}

// appendValue coerces a cell value to its column's target type and appends it
// to the column's builder. Values which cannot be coerced become nulls.
func appendValue(b array.Builder, v interface{}, target frame.DataType) {
	if v != nil && !frame.TypeMatches(v, target) {
		v = frame.CastValue(v, target)
	}
	if v == nil {
		b.AppendNull()
		return
	}
	switch builder := b.(type) {
	case *array.StringBuilder:
		builder.Append(v.(string))
	case *array.Int32Builder:
		builder.Append(v.(int32))
	case *array.Int64Builder:
		builder.Append(v.(int64))
	case *array.Float64Builder:
		builder.Append(v.(float64))
	case *array.BooleanBuilder:
		builder.Append(v.(bool))
	case *array.FixedSizeListBuilder:
		builder.Append(true)
		values := builder.ValueBuilder().(*array.Float64Builder)
		for _, f := range v.([]float64) {
			values.Append(f)
		}
	default:
		b.AppendNull()
	}
}

// flushBlock drains the record builder into a single lz4-compressed IPC block
func flushBlock(builder *array.RecordBuilder, engineSchema *arrow.Schema) ([]byte, error) {
	record := builder.NewRecord()
	defer record.Release()
	var buf bytes.Buffer
	compressor := lz4.NewWriter(&buf)
	writer := ipc.NewWriter(compressor, ipc.WithSchema(engineSchema))
	if err := writer.Write(record); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	if err := compressor.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeBlock decompresses and deserializes one stored block into Rows
func decodeBlock(block []byte, engineSchema *arrow.Schema) ([]frame.Row, error) {
	decompressor := lz4.NewReader(bytes.NewReader(block))
	reader, err := ipc.NewReader(decompressor, ipc.WithSchema(engineSchema))
	if err != nil {
		return nil, err
	}
	defer reader.Release()
	var rows []frame.Row
	for reader.Next() {
		record := reader.Record()
		numRows := int(record.NumRows())
		numCols := int(record.NumCols())
		for j := 0; j < numRows; j++ {
			row := make(frame.Row, numCols)
			for i := 0; i < numCols; i++ {
				value, err := arrowValue(record.Column(i), j)
				if err != nil {
					return nil, err
				}
				row[i] = value
			}
			rows = append(rows, row)
		}
	}
	if err := reader.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

// arrowValue extracts the value at index j of an Arrow array as a Go value
func arrowValue(col arrow.Array, j int) (interface{}, error) {
	if col.IsNull(j) {
		return nil, nil
	}
	switch arr := col.(type) {
	case *array.String:
		return arr.Value(j), nil
	case *array.Int32:
		return arr.Value(j), nil
	case *array.Int64:
		return arr.Value(j), nil
	case *array.Float64:
		return arr.Value(j), nil
	case *array.Boolean:
		return arr.Value(j), nil
	case *array.FixedSizeList:
		length := int(arr.DataType().(*arrow.FixedSizeListType).Len())
		values, ok := arr.ListValues().(*array.Float64)
		if !ok {
			return nil, fmt.Errorf("unsupported vector element array type %T", arr.ListValues())
		}
		start := (arr.Data().Offset() + j) * length
		vec := make([]float64, length)
		for k := 0; k < length; k++ {
			vec[k] = values.Value(start + k)
		}
		return vec, nil
	default:
		return nil, fmt.Errorf("unsupported engine array type %T", col)
	}
}

// blockIterator iterates over a dataset's rows, decompressing one block at a
// time
type blockIterator struct {
	dataset *dataset
	block   int
	rows    []frame.Row
	next    int
}

func (it *blockIterator) HasNext() bool {
	return it.next < len(it.rows) || it.block < len(it.dataset.blocks)
}

func (it *blockIterator) Next() (frame.Row, error) {
	for it.next >= len(it.rows) {
		if it.block >= len(it.dataset.blocks) {
			return nil, fmt.Errorf("no more rows in dataset %s", it.dataset.id)
		}
		rows, err := decodeBlock(it.dataset.blocks[it.block], it.dataset.schema)
		if err != nil {
			return nil, err
		}
		it.block++
		it.rows = rows
		it.next = 0
	}
	row := it.rows[it.next]
	it.next++
	return row, nil
}
