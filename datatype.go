package frame

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"

	errors "github.com/go-frame/frame/errors"
)

// DefaultDateTimeLayout is the layout used to encode DateTime column values
// when no other layout is configured
const DefaultDateTimeLayout = time.RFC3339

// DataType describes the type of the values stored in a single Frame column.
// The set of supported DataTypes is closed: StringType, Int32Type, Int64Type,
// Float64Type, BoolType, DateTimeType and VectorType.
type DataType interface {
	String() string // String returns a human-readable name for this DataType
}

// StringType is a column type which stores string values. It also serves as the
// universal fallback type during schema inference, since any value has a string
// representation.
type StringType struct{}

// String returns a human-readable name for a StringType
func (t *StringType) String() string {
	return "string"
}

// Int32Type is a column type which stores int32 values
type Int32Type struct{}

// String returns a human-readable name for an Int32Type
func (t *Int32Type) String() string {
	return "int32"
}

// Int64Type is a column type which stores int64 values
type Int64Type struct{}

// String returns a human-readable name for an Int64Type
func (t *Int64Type) String() string {
	return "int64"
}

// Float64Type is a column type which stores float64 values
type Float64Type struct{}

// String returns a human-readable name for a Float64Type
func (t *Float64Type) String() string {
	return "float64"
}

// BoolType is a column type which stores boolean values
type BoolType struct{}

// String returns a human-readable name for a BoolType
func (t *BoolType) String() string {
	return "bool"
}

// DateTimeType is a column type which stores string-encoded datetime values.
// Layout is a Go time layout describing the encoding, defaulting to
// DefaultDateTimeLayout when empty.
type DateTimeType struct {
	Layout string
}

// String returns a human-readable name for a DateTimeType
func (t *DateTimeType) String() string {
	return "datetime"
}

// GetLayout returns the layout used to encode values of this DateTimeType
func (t *DateTimeType) GetLayout() string {
	if t.Layout == "" {
		return DefaultDateTimeLayout
	}
	return t.Layout
}

// VectorType is a column type which stores fixed-length vectors of float64
// values. The length is part of the type's identity: two VectorTypes are
// equal only if their lengths match.
type VectorType struct {
	Length int
}

// String returns a human-readable name for a VectorType
func (t *VectorType) String() string {
	return fmt.Sprintf("vector(%d)", t.Length)
}

// TypesEqual returns true iff two DataTypes are identical, including any
// parameters which form part of the type's identity (e.g. vector length)
func TypesEqual(a DataType, b DataType) bool {
	switch at := a.(type) {
	case *VectorType:
		bt, ok := b.(*VectorType)
		return ok && at.Length == bt.Length
	case *DateTimeType:
		bt, ok := b.(*DateTimeType)
		return ok && at.GetLayout() == bt.GetLayout()
	default:
		return reflect.TypeOf(a) == reflect.TypeOf(b)
	}
}

// InferValueType classifies a single value into exactly one DataType. Nested
// sequences map to a VectorType carrying their length, and anything without a
// more specific classification maps to StringType.
func InferValueType(v interface{}) DataType {
	switch val := v.(type) {
	case bool:
		return &BoolType{}
	case int, int64:
		return &Int64Type{}
	case int32:
		return &Int32Type{}
	case float32, float64:
		return &Float64Type{}
	case string:
		return &StringType{}
	case time.Time:
		return &DateTimeType{}
	case []float64:
		return &VectorType{Length: len(val)}
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			return &VectorType{Length: rv.Len()}
		}
		return &StringType{}
	}
}

// MergeTypes computes the widened DataType capable of representing values of
// both given DataTypes. It is commutative and associative. Identical types
// merge to themselves, integer types widen to Int64, any numeric type mixed
// with Float64 widens to Float64, and otherwise-incompatible types fall back
// to StringType. Two VectorTypes of differing lengths cannot be merged and
// produce a SchemaError.
func MergeTypes(a DataType, b DataType) (DataType, error) {
	if TypesEqual(a, b) {
		return a, nil
	}
	av, aIsVector := a.(*VectorType)
	bv, bIsVector := b.(*VectorType)
	if aIsVector && bIsVector {
		return nil, errors.NewVectorLengthError(av.Length, bv.Length)
	}
	if isNumericType(a) && isNumericType(b) {
		if isFloatType(a) || isFloatType(b) {
			return &Float64Type{}, nil
		}
		return &Int64Type{}, nil
	}
	// otherwise-incompatible scalars fall back to string, so that inference
	// over messy samples never aborts
	return &StringType{}, nil
}

// CastValue attempts a best-effort conversion of a value to the given target
// DataType. It never returns an error: when the value cannot be represented
// as the target type, nil (the null marker) is returned instead. Supported
// targets are StringType, Int32Type, Int64Type, Float64Type, BoolType and
// VectorType; all other targets yield nil.
func CastValue(v interface{}, target DataType) interface{} {
	if v == nil {
		return nil
	}
	switch t := target.(type) {
	case *StringType:
		return castToString(v)
	case *Int32Type:
		i, ok := castToInt64(v)
		if !ok || i > math.MaxInt32 || i < math.MinInt32 {
			return nil
		}
		return int32(i)
	case *Int64Type:
		i, ok := castToInt64(v)
		if !ok {
			return nil
		}
		return i
	case *Float64Type:
		f, ok := castToFloat64(v)
		if !ok {
			return nil
		}
		return f
	case *BoolType:
		return castToBool(v)
	case *VectorType:
		return castToVector(v, t.Length)
	default:
		return nil
	}
}

// TypeMatches returns true iff a value's runtime representation already
// matches the given DataType, requiring no cast
func TypeMatches(v interface{}, target DataType) bool {
	switch t := target.(type) {
	case *StringType:
		_, ok := v.(string)
		return ok
	case *Int32Type:
		_, ok := v.(int32)
		return ok
	case *Int64Type:
		_, ok := v.(int64)
		return ok
	case *Float64Type:
		_, ok := v.(float64)
		return ok
	case *BoolType:
		_, ok := v.(bool)
		return ok
	case *VectorType:
		vec, ok := v.([]float64)
		return ok && len(vec) == t.Length
	default:
		return false
	}
}

func isNumericType(t DataType) bool {
	switch t.(type) {
	case *Int32Type, *Int64Type, *Float64Type:
		return true
	default:
		return false
	}
}

func isFloatType(t DataType) bool {
	_, ok := t.(*Float64Type)
	return ok
}

func castToString(v interface{}) interface{} {
	switch val := v.(type) {
	case string:
		return val
	case time.Time:
		return val.Format(DefaultDateTimeLayout)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func castToInt64(v interface{}) (int64, bool) {
	switch val := v.(type) {
	case int:
		return int64(val), true
	case int32:
		return int64(val), true
	case int64:
		return val, true
	case float32:
		return int64(val), true
	case float64:
		return int64(val), true
	case bool:
		if val {
			return 1, true
		}
		return 0, true
	case string:
		i, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

func castToFloat64(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case int:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case float32:
		return float64(val), true
	case float64:
		return val, true
	case bool:
		if val {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func castToBool(v interface{}) interface{} {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		b, err := strconv.ParseBool(val)
		if err != nil {
			return nil
		}
		return b
	default:
		f, ok := castToFloat64(v)
		if !ok {
			return nil
		}
		return f != 0
	}
}

func castToVector(v interface{}, length int) interface{} {
	if vec, ok := v.([]float64); ok {
		if len(vec) != length {
			return nil
		}
		out := make([]float64, length)
		copy(out, vec)
		return out
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	if rv.Len() != length {
		return nil
	}
	out := make([]float64, length)
	for i := 0; i < length; i++ {
		f, ok := castToFloat64(rv.Index(i).Interface())
		if !ok {
			return nil
		}
		out[i] = f
	}
	return out
}
