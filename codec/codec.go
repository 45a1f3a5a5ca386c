// Package codec converts documents to and from extended JSON.
//
// Extended JSON is plain JSON where every value that JSON cannot represent
// without ambiguity is wrapped in an object with a single tag key:
//
//	{"$numberLong": 123}
//	{"$numberFloat": 11.1}
//	{"$decimal": "3.140000000000000124344978758017532527446746826171875"}
//	{"$binary": "\u0013\u0000\b"}
//	{"$dateDay": "1979-06-19"}
//	{"$time": "12:12:12"}
//	{"$date": "1970-12-12T19:12:12.000000Z"}
//	{"$interval": 172800000}
//
// Dates and timestamps whose year does not fit in four digits are written as
// a number of days or milliseconds since the unix epoch instead.
//
// The tag keys are a fixed protocol shared with the document store.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/nasdf/ojai/object"
)

// Tag keys of the extended JSON protocol.
const (
	TagLong      = "$numberLong"
	TagFloat     = "$numberFloat"
	TagDecimal   = "$decimal"
	TagBinary    = "$binary"
	TagDate      = "$dateDay"
	TagTime      = "$time"
	TagTimestamp = "$date"
	TagInterval  = "$interval"
)

// IsTag returns true if the given object key is a known tag key.
func IsTag(key string) bool {
	switch key {
	case TagLong, TagFloat, TagDecimal, TagBinary, TagDate, TagTime, TagTimestamp, TagInterval:
		return true
	default:
		return false
	}
}

// ErrReservedKey is returned when encoding a document with a field named
// after a tag key. Such a document would decode as a tagged value or fail.
var ErrReservedKey = errors.New("field name is a reserved tag key")

// ErrMalformed is matched by every error caused by invalid wire input.
var ErrMalformed = errors.New("malformed extended json")

// SyntaxError describes input that is not valid JSON or not a document.
type SyntaxError struct {
	// Offset is the input byte offset the error was detected at.
	Offset int64
	// Fragment is the input surrounding the error when it is known.
	Fragment string
	Err      error
}

func (e *SyntaxError) Error() string {
	if e.Fragment == "" {
		return fmt.Sprintf("extended json syntax error at offset %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("extended json syntax error at offset %d near %q: %v", e.Offset, e.Fragment, e.Err)
}

func (e *SyntaxError) Unwrap() []error { return []error{ErrMalformed, e.Err} }

// TagError describes a tag object that cannot be decoded.
type TagError struct {
	// Tag is the tag key of the offending object.
	Tag string
	// Fragment is the offending object rendered as JSON.
	Fragment string
	Reason   string
}

func (e *TagError) Error() string {
	return fmt.Sprintf("invalid %s value %s: %s", e.Tag, e.Fragment, e.Reason)
}

func (e *TagError) Unwrap() error { return ErrMalformed }

// Marshal returns the extended JSON encoding of the given document.
func Marshal(doc *object.Document, opts ...Option) ([]byte, error) {
	return MarshalValue(doc, opts...)
}

// MarshalValue returns the extended JSON encoding of the given value.
func MarshalValue(v object.Value, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf, opts...)
	if err := enc.EncodeValue(v); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a single document from the given extended JSON.
func Unmarshal(data []byte) (*object.Document, error) {
	v, err := UnmarshalValue(data)
	if err != nil {
		return nil, err
	}
	doc, ok := v.(*object.Document)
	if !ok {
		return nil, &SyntaxError{Fragment: excerpt(data, 0), Err: fmt.Errorf("expected document, found %s", v.Kind())}
	}
	return doc, nil
}

// UnmarshalValue decodes a single value of any kind from the given extended JSON.
func UnmarshalValue(data []byte) (object.Value, error) {
	dec := NewDecoder(bytes.NewReader(data))
	v, err := dec.DecodeValue()
	if err == nil {
		err = dec.expectEOF()
	}
	if err == io.EOF {
		err = &SyntaxError{Err: io.ErrUnexpectedEOF}
	}
	if err != nil {
		var serr *SyntaxError
		if errors.As(err, &serr) && serr.Fragment == "" {
			serr.Fragment = excerpt(data, serr.Offset)
		}
		return nil, err
	}
	return v, nil
}

// excerpt returns a short piece of data around the given offset.
func excerpt(data []byte, offset int64) string {
	const radius = 16
	start := max(offset-radius, 0)
	end := min(offset+radius, int64(len(data)))
	if start > end {
		start = end
	}
	return string(data[start:end])
}
