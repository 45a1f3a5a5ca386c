package node

import (
	"fmt"

	"github.com/nasdf/ojai/codec"
	"github.com/nasdf/ojai/object"

	"github.com/ipld/go-ipld-prime/datamodel"
)

// Document returns the document for the given map node.
func Document(n datamodel.Node) (*object.Document, error) {
	if n.Kind() != datamodel.Kind_Map {
		return nil, fmt.Errorf("cannot get document from %s", n.Kind().String())
	}
	v, err := Value(n)
	if err != nil {
		return nil, err
	}
	doc, ok := v.(*object.Document)
	if !ok {
		return nil, fmt.Errorf("cannot get document from tagged %s", v.Kind())
	}
	return doc, nil
}

// Value returns the document value for the given node.
func Value(n datamodel.Node) (object.Value, error) {
	switch n.Kind() {
	case datamodel.Kind_Null:
		return object.Null{}, nil
	case datamodel.Kind_Bool:
		v, err := n.AsBool()
		return object.Bool(v), err
	case datamodel.Kind_Int:
		v, err := n.AsInt()
		return object.Int(v), err
	case datamodel.Kind_Float:
		v, err := n.AsFloat()
		return object.Float(v), err
	case datamodel.Kind_String:
		v, err := n.AsString()
		return object.String(v), err
	case datamodel.Kind_Bytes:
		v, err := n.AsBytes()
		return object.Binary(v), err
	case datamodel.Kind_List:
		return ListValue(n)
	case datamodel.Kind_Map:
		if n.Length() == 1 {
			v, ok, err := taggedValue(n)
			if ok || err != nil {
				return v, err
			}
		}
		return MapValue(n)
	default:
		return nil, fmt.Errorf("cannot get value from %s", n.Kind().String())
	}
}

// MapValue returns a document containing the entries of the given map node.
func MapValue(n datamodel.Node) (*object.Document, error) {
	out := object.NewDocument()
	for iter := n.MapIterator(); !iter.Done(); {
		k, v, err := iter.Next()
		if err != nil {
			return nil, err
		}
		key, err := k.AsString()
		if err != nil {
			return nil, err
		}
		val, err := Value(v)
		if err != nil {
			return nil, err
		}
		out.SetField(key, val)
	}
	return out, nil
}

// ListValue returns a list containing the values of the given list node.
func ListValue(n datamodel.Node) (object.List, error) {
	out := make(object.List, n.Length())
	for iter := n.ListIterator(); !iter.Done(); {
		i, v, err := iter.Next()
		if err != nil {
			return nil, err
		}
		val, err := Value(v)
		if err != nil {
			return nil, err
		}
		out[i] = val
	}
	return out, nil
}

// taggedValue decodes a single entry map holding one of the kinds that have
// no native node representation.
func taggedValue(n datamodel.Node) (object.Value, bool, error) {
	k, v, err := n.MapIterator().Next()
	if err != nil {
		return nil, false, err
	}
	tag, err := k.AsString()
	if err != nil {
		return nil, false, err
	}
	switch tag {
	case codec.TagDecimal:
		s, err := v.AsString()
		if err != nil {
			return nil, true, err
		}
		d, err := object.ParseDecimal(s)
		return d, true, err
	case codec.TagDate:
		days, err := v.AsInt()
		return object.DateFromDays(days), true, err
	case codec.TagTime:
		secs, err := v.AsInt()
		return object.NewTime(0, 0, int(secs)), true, err
	case codec.TagTimestamp:
		ms, err := v.AsInt()
		return object.TimestampFromMillis(ms), true, err
	case codec.TagInterval:
		ms, err := v.AsInt()
		return object.IntervalFromMillis(ms), true, err
	default:
		return nil, false, nil
	}
}
