package memory

import (
	"github.com/apache/arrow/go/v17/arrow"

	frame "github.com/go-frame/frame"
	errors "github.com/go-frame/frame/errors"
)

// Engine-side schemas are Arrow schemas. DateTime columns cross the bridge as
// string fields tagged with metadata, since DateTime values are string-encoded.
const (
	metadataTypeKey      = "frame.type"
	metadataTypeDateTime = "datetime"
	metadataLayoutKey    = "frame.datetime.layout"
)

// SchemaToEngine serializes a Schema into the engine's Arrow representation
func (e *Engine) SchemaToEngine(schema *frame.Schema) (*arrow.Schema, error) {
	fields := make([]arrow.Field, schema.NumColumns())
	for i, col := range schema.Columns() {
		field, err := fieldToArrow(col)
		if err != nil {
			return nil, err
		}
		fields[i] = field
	}
	return arrow.NewSchema(fields, nil), nil
}

// SchemaFromEngine translates an Arrow schema back into a Schema
func (e *Engine) SchemaFromEngine(engineSchema *arrow.Schema) (*frame.Schema, error) {
	cols := make([]frame.Column, engineSchema.NumFields())
	for i, field := range engineSchema.Fields() {
		colType, err := fieldFromArrow(field)
		if err != nil {
			return nil, err
		}
		cols[i] = frame.Column{Name: field.Name, Type: colType}
	}
	return frame.CreateSchema(cols), nil
}

func fieldToArrow(col frame.Column) (arrow.Field, error) {
	field := arrow.Field{Name: col.Name, Nullable: true}
	switch t := col.Type.(type) {
	case *frame.StringType:
		field.Type = arrow.BinaryTypes.String
	case *frame.Int32Type:
		field.Type = arrow.PrimitiveTypes.Int32
	case *frame.Int64Type:
		field.Type = arrow.PrimitiveTypes.Int64
	case *frame.Float64Type:
		field.Type = arrow.PrimitiveTypes.Float64
	case *frame.BoolType:
		field.Type = arrow.FixedWidthTypes.Boolean
	case *frame.DateTimeType:
		field.Type = arrow.BinaryTypes.String
		field.Metadata = arrow.NewMetadata(
			[]string{metadataTypeKey, metadataLayoutKey},
			[]string{metadataTypeDateTime, t.GetLayout()},
		)
	case *frame.VectorType:
		field.Type = arrow.FixedSizeListOf(int32(t.Length), arrow.PrimitiveTypes.Float64)
	default:
		return arrow.Field{}, errors.NewSchemaError("Engine serialization does not support column %s with data type %s", col.Name, col.Type)
	}
	return field, nil
}

func fieldFromArrow(field arrow.Field) (frame.DataType, error) {
	switch field.Type.ID() {
	case arrow.STRING:
		if idx := field.Metadata.FindKey(metadataTypeKey); idx >= 0 && field.Metadata.Values()[idx] == metadataTypeDateTime {
			layout := ""
			if lidx := field.Metadata.FindKey(metadataLayoutKey); lidx >= 0 {
				layout = field.Metadata.Values()[lidx]
			}
			return &frame.DateTimeType{Layout: layout}, nil
		}
		return &frame.StringType{}, nil
	case arrow.INT32:
		return &frame.Int32Type{}, nil
	case arrow.INT64:
		return &frame.Int64Type{}, nil
	case arrow.FLOAT64:
		return &frame.Float64Type{}, nil
	case arrow.BOOL:
		return &frame.BoolType{}, nil
	case arrow.FIXED_SIZE_LIST:
		listType := field.Type.(*arrow.FixedSizeListType)
		if listType.Elem().ID() != arrow.FLOAT64 {
			return nil, errors.NewSchemaError("Engine field %s has unsupported vector element type %s", field.Name, listType.Elem())
		}
		return &frame.VectorType{Length: int(listType.Len())}, nil
	default:
		return nil, errors.NewSchemaError("Engine field %s has unsupported type %s", field.Name, field.Type)
	}
}
