package object

import (
	"bytes"
)

// Kind identifies the arm of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindDecimal
	KindString
	KindBinary
	KindDate
	KindTime
	KindTimestamp
	KindInterval
	KindDocument
	KindList
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindDecimal:
		return "decimal"
	case KindString:
		return "string"
	case KindBinary:
		return "binary"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	case KindTimestamp:
		return "timestamp"
	case KindInterval:
		return "interval"
	case KindDocument:
		return "document"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is a typed document value.
//
// The following types implement Value:
//   - Null
//   - Bool
//   - Int
//   - Float
//   - Decimal
//   - String
//   - Binary
//   - Date
//   - Time
//   - Timestamp
//   - Interval
//   - *Document
//   - List
type Value interface {
	Kind() Kind
	isValue()
}

var (
	_ Value = Null{}
	_ Value = Bool(false)
	_ Value = Int(0)
	_ Value = Float(0)
	_ Value = Decimal{}
	_ Value = String("")
	_ Value = Binary(nil)
	_ Value = Date{}
	_ Value = Time{}
	_ Value = Timestamp{}
	_ Value = Interval{}
	_ Value = (*Document)(nil)
	_ Value = List(nil)
)

// Null is the null literal. It is distinct from an absent field.
type Null struct{}

func (Null) Kind() Kind { return KindNull }
func (Null) isValue()   {}

// Bool is a boolean value.
type Bool bool

func (Bool) Kind() Kind { return KindBool }
func (Bool) isValue()   {}

// Int is a 64-bit signed integer.
type Int int64

func (Int) Kind() Kind { return KindInt }
func (Int) isValue()   {}

// Float is an IEEE 754 double.
type Float float64

func (Float) Kind() Kind { return KindFloat }
func (Float) isValue()   {}

// String is a unicode text value.
type String string

func (String) Kind() Kind { return KindString }
func (String) isValue()   {}

// Binary is a raw byte sequence.
type Binary []byte

func (Binary) Kind() Kind { return KindBinary }
func (Binary) isValue()   {}

// List is an ordered sequence of values of any kind.
type List []Value

func (List) Kind() Kind { return KindList }
func (List) isValue()   {}

// Clone returns a deep copy of the given value.
func Clone(v Value) Value {
	switch t := v.(type) {
	case nil:
		return Null{}
	case Binary:
		if t == nil {
			return Binary(nil)
		}
		return Binary(bytes.Clone(t))
	case List:
		if t == nil {
			return List(nil)
		}
		out := make(List, len(t))
		for i, e := range t {
			out[i] = Clone(e)
		}
		return out
	case *Document:
		return t.Clone()
	case Decimal:
		return t.clone()
	default:
		return v
	}
}

// Equal returns true if both values are of the same kind and hold equal
// content. Documents compare field order as well as content.
//
// Floats compare with ==, so NaN is never equal to itself.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case Binary:
		return bytes.Equal(x, b.(Binary))
	case Decimal:
		return x.Equal(b.(Decimal))
	case List:
		y := b.(List)
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case *Document:
		return x.Equal(b.(*Document))
	default:
		return a == b
	}
}
