package object

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"time"

	"github.com/cockroachdb/apd/v3"
)

// ErrUnsupportedType is matched by every TypeError.
var ErrUnsupportedType = errors.New("unsupported value type")

// TypeError is returned when a go value cannot be converted into a Value.
type TypeError struct {
	Type   reflect.Type
	Reason string
}

func (e *TypeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported value type %v: %s", e.Type, e.Reason)
	}
	return fmt.Sprintf("unsupported value type %v", e.Type)
}

func (e *TypeError) Unwrap() error { return ErrUnsupportedType }

var timeType = reflect.TypeOf(time.Time{})

// FromAny converts a go value into a Value.
//
// Integers of any width become Int, floats become Float, strings become
// String and byte slices become Binary. Maps with string keys become
// documents with their keys in sorted order, slices and arrays become lists.
// Values that already implement Value are cloned.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null{}, nil
	case *Document:
		if x == nil {
			return Null{}, nil
		}
		return x.Clone(), nil
	case Value:
		return Clone(x), nil
	case Document:
		return x.Clone(), nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case []byte:
		if x == nil {
			return Binary(nil), nil
		}
		return Binary(slices.Clone(x)), nil
	case int:
		return Int(x), nil
	case int8:
		return Int(x), nil
	case int16:
		return Int(x), nil
	case int32:
		return Int(x), nil
	case int64:
		return Int(x), nil
	case uint:
		return uintValue(uint64(x), v)
	case uint8:
		return Int(x), nil
	case uint16:
		return Int(x), nil
	case uint32:
		return Int(x), nil
	case uint64:
		return uintValue(x, v)
	case float32:
		return Float(x), nil
	case float64:
		return Float(x), nil
	case json.Number:
		return numberValue(x)
	case *apd.Decimal:
		if x == nil {
			return Null{}, nil
		}
		return NewDecimal(x), nil
	case apd.Decimal:
		return NewDecimal(&x), nil
	case time.Time:
		return TimestampOf(x), nil
	case time.Duration:
		return IntervalOf(x), nil
	case []any:
		out := make(List, len(x))
		for i, e := range x {
			ev, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			out[i] = ev
		}
		return out, nil
	case map[string]any:
		return mapValue(reflect.ValueOf(x))
	default:
		return reflectValue(reflect.ValueOf(v))
	}
}

func uintValue(x uint64, v any) (Value, error) {
	if x > math.MaxInt64 {
		return nil, &TypeError{Type: reflect.TypeOf(v), Reason: fmt.Sprintf("%d overflows int64", x)}
	}
	return Int(int64(x)), nil
}

func numberValue(n json.Number) (Value, error) {
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		return Int(i), nil
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return nil, &TypeError{Type: reflect.TypeOf(n), Reason: err.Error()}
	}
	return Float(f), nil
}

// reflectValue handles named types and generic containers.
func reflectValue(rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return uintValue(rv.Uint(), rv.Interface())
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null{}, nil
		}
		return FromAny(rv.Elem().Interface())
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return Binary(slices.Clone(rv.Bytes())), nil
		}
		return listValue(rv)
	case reflect.Array:
		return listValue(rv)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, &TypeError{Type: rv.Type(), Reason: "map keys must be strings"}
		}
		return mapValue(rv)
	case reflect.Struct:
		if rv.Type().ConvertibleTo(timeType) {
			return TimestampOf(rv.Convert(timeType).Interface().(time.Time)), nil
		}
	}
	if !rv.IsValid() {
		return Null{}, nil
	}
	return nil, &TypeError{Type: rv.Type()}
}

func listValue(rv reflect.Value) (Value, error) {
	out := make(List, rv.Len())
	for i := range out {
		ev, err := FromAny(rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		out[i] = ev
	}
	return out, nil
}

func mapValue(rv reflect.Value) (Value, error) {
	keys := rv.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int {
		switch {
		case a.String() < b.String():
			return -1
		case a.String() > b.String():
			return 1
		default:
			return 0
		}
	})
	doc := NewDocument()
	for _, k := range keys {
		ev, err := FromAny(rv.MapIndex(k).Interface())
		if err != nil {
			return nil, err
		}
		doc.SetField(k.String(), ev)
	}
	return doc, nil
}

// Interface returns the given value as a plain go value.
//
// Null becomes nil, Bool bool, Int int64, Float float64, Decimal
// *apd.Decimal, String string, Binary []byte, documents map[string]any and
// lists []any. Date, Time, Timestamp, and Interval are returned unchanged.
func Interface(v Value) any {
	switch t := v.(type) {
	case nil, Null:
		return nil
	case Bool:
		return bool(t)
	case Int:
		return int64(t)
	case Float:
		return float64(t)
	case Decimal:
		return t.Apd()
	case String:
		return string(t)
	case Binary:
		return []byte(t)
	case *Document:
		return t.AsMap()
	case List:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Interface(e)
		}
		return out
	default:
		return v
	}
}
