package object

import (
	"iter"
	"slices"
)

// IDFieldName is the name of the reserved record identifier field.
const IDFieldName = "_id"

// Document is an ordered mapping of field names to values.
//
// A new field is appended after the existing fields. Assigning a new value to
// an existing field keeps its position. A Document is not safe for concurrent
// use.
type Document struct {
	keys   []string
	fields map[string]Value
}

func (*Document) Kind() Kind { return KindDocument }
func (*Document) isValue()   {}

// NewDocument returns a new empty document.
func NewDocument() *Document {
	return &Document{
		fields: make(map[string]Value),
	}
}

// Empty returns true if the document has no fields.
func (d *Document) Empty() bool {
	return len(d.keys) == 0
}

// Len returns the number of top level fields.
func (d *Document) Len() int {
	return len(d.keys)
}

// Keys returns the top level field names in order.
func (d *Document) Keys() []string {
	return slices.Clone(d.keys)
}

// All returns an iterator over the top level fields in order.
func (d *Document) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, k := range d.keys {
			if !yield(k, d.fields[k]) {
				return
			}
		}
	}
}

// Field returns the value of the top level field with the given name.
func (d *Document) Field(name string) (Value, bool) {
	v, ok := d.fields[name]
	return v, ok
}

// SetField assigns the top level field with the given name. The value is
// stored as is and not cloned.
func (d *Document) SetField(name string, value Value) {
	if d.fields == nil {
		d.fields = make(map[string]Value)
	}
	if doc, ok := value.(*Document); value == nil || ok && doc == nil {
		value = Null{}
	}
	if _, ok := d.fields[name]; !ok {
		d.keys = append(d.keys, name)
	}
	d.fields[name] = value
}

// DeleteField removes the top level field with the given name.
func (d *Document) DeleteField(name string) {
	if _, ok := d.fields[name]; !ok {
		return
	}
	delete(d.fields, name)
	d.keys = slices.DeleteFunc(d.keys, func(k string) bool { return k == name })
}

// SetID assigns the reserved _id field.
func (d *Document) SetID(id string) *Document {
	d.SetField(IDFieldName, String(id))
	return d
}

// GetID returns the value of the _id field if it is set to a string.
func (d *Document) GetID() (string, bool) {
	v, ok := d.fields[IDFieldName].(String)
	return string(v), ok
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{
		keys:   slices.Clone(d.keys),
		fields: make(map[string]Value, len(d.fields)),
	}
	for k, v := range d.fields {
		out.fields[k] = Clone(v)
	}
	return out
}

// Equal returns true if both documents have the same fields in the same order.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	if !slices.Equal(d.keys, other.keys) {
		return false
	}
	for _, k := range d.keys {
		if !Equal(d.fields[k], other.fields[k]) {
			return false
		}
	}
	return true
}

// AsMap returns the document as a map of plain go values.
//
// See Interface for the mapping of each kind.
func (d *Document) AsMap() map[string]any {
	out := make(map[string]any, len(d.keys))
	for _, k := range d.keys {
		out[k] = Interface(d.fields[k])
	}
	return out
}
