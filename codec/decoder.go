package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/nasdf/ojai/object"
)

// rawEntry is a key value pair of a parsed JSON object.
type rawEntry struct {
	key   string
	value any
}

// rawObject is a parsed JSON object with its keys in input order.
type rawObject []rawEntry

// Decoder reads extended JSON documents from an input stream.
type Decoder struct {
	dec *json.Decoder
}

// NewDecoder returns a new decoder that reads from r.
func NewDecoder(r io.Reader) *Decoder {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &Decoder{dec}
}

// Decode reads the next document from the stream. It returns io.EOF when the
// stream has no more documents.
func (d *Decoder) Decode() (*object.Document, error) {
	offset := d.dec.InputOffset()
	v, err := d.DecodeValue()
	if err != nil {
		return nil, err
	}
	doc, ok := v.(*object.Document)
	if !ok {
		return nil, &SyntaxError{Offset: offset, Err: fmt.Errorf("expected document, found %s", v.Kind())}
	}
	return doc, nil
}

// DecodeValue reads the next value of any kind from the stream. It returns
// io.EOF when the stream has no more values.
func (d *Decoder) DecodeValue() (object.Value, error) {
	tok, err := d.dec.Token()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, d.syntaxError(err)
	}
	raw, err := d.parse(tok)
	if err != nil {
		return nil, err
	}
	return decodeRaw(raw)
}

// expectEOF returns an error if the stream contains more tokens.
func (d *Decoder) expectEOF() error {
	_, err := d.dec.Token()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return d.syntaxError(err)
	}
	return d.syntaxError(errors.New("unexpected data after top-level value"))
}

func (d *Decoder) syntaxError(err error) error {
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	offset := d.dec.InputOffset()
	var serr *json.SyntaxError
	if errors.As(err, &serr) {
		offset = serr.Offset
	}
	return &SyntaxError{Offset: offset, Err: err}
}

func (d *Decoder) parse(tok json.Token) (any, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return d.parseObject()
		case '[':
			return d.parseArray()
		default:
			return nil, d.syntaxError(fmt.Errorf("unexpected delimiter %q", t))
		}
	default:
		return tok, nil
	}
}

func (d *Decoder) parseObject() (rawObject, error) {
	obj := rawObject{}
	for d.dec.More() {
		tok, err := d.dec.Token()
		if err != nil {
			return nil, d.syntaxError(err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, d.syntaxError(fmt.Errorf("unexpected object key %v", tok))
		}
		tok, err = d.dec.Token()
		if err != nil {
			return nil, d.syntaxError(err)
		}
		value, err := d.parse(tok)
		if err != nil {
			return nil, err
		}
		obj = append(obj, rawEntry{key, value})
	}
	if _, err := d.dec.Token(); err != nil {
		return nil, d.syntaxError(err)
	}
	return obj, nil
}

func (d *Decoder) parseArray() ([]any, error) {
	arr := []any{}
	for d.dec.More() {
		tok, err := d.dec.Token()
		if err != nil {
			return nil, d.syntaxError(err)
		}
		value, err := d.parse(tok)
		if err != nil {
			return nil, err
		}
		arr = append(arr, value)
	}
	if _, err := d.dec.Token(); err != nil {
		return nil, d.syntaxError(err)
	}
	return arr, nil
}

// decodeRaw converts a parsed JSON value into a Value.
func decodeRaw(raw any) (object.Value, error) {
	switch t := raw.(type) {
	case nil:
		return object.Null{}, nil
	case bool:
		return object.Bool(t), nil
	case string:
		return object.String(t), nil
	case json.Number:
		// untagged numbers are never written by the encoder
		f, err := strconv.ParseFloat(t.String(), 64)
		if err != nil {
			return nil, &SyntaxError{Fragment: t.String(), Err: err}
		}
		return object.Float(f), nil
	case []any:
		list := make(object.List, len(t))
		for i, e := range t {
			v, err := decodeRaw(e)
			if err != nil {
				return nil, err
			}
			list[i] = v
		}
		return list, nil
	case rawObject:
		return decodeObject(t)
	default:
		return nil, fmt.Errorf("unexpected json value %T", raw)
	}
}

func decodeObject(obj rawObject) (object.Value, error) {
	for _, e := range obj {
		if !IsTag(e.key) {
			continue
		}
		if len(obj) != 1 {
			return nil, &TagError{Tag: e.key, Fragment: renderRaw(obj), Reason: "tag object must have exactly one key"}
		}
		v, reason := decodeTag(e.key, e.value)
		if reason != "" {
			return nil, &TagError{Tag: e.key, Fragment: renderRaw(obj), Reason: reason}
		}
		return v, nil
	}
	doc := object.NewDocument()
	for _, e := range obj {
		v, err := decodeRaw(e.value)
		if err != nil {
			return nil, err
		}
		doc.SetField(e.key, v)
	}
	return doc, nil
}

// decodeTag converts the value of a tag object. The returned reason is
// non-empty when the value has the wrong shape.
func decodeTag(tag string, raw any) (object.Value, string) {
	switch tag {
	case TagLong:
		i, ok := rawInt(raw)
		if !ok {
			return nil, "expected a 64-bit integer"
		}
		return object.Int(i), ""

	case TagFloat:
		f, ok := rawFloat(raw)
		if !ok {
			return nil, "expected a float"
		}
		return object.Float(f), ""

	case TagDecimal:
		s, ok := rawText(raw)
		if !ok {
			return nil, "expected a decimal string"
		}
		d, err := object.ParseDecimal(s)
		if err != nil {
			return nil, err.Error()
		}
		return d, ""

	case TagBinary:
		s, ok := raw.(string)
		if !ok {
			return nil, "expected a string"
		}
		p, ok := binaryBytes(s)
		if !ok {
			return nil, "binary string contains characters above \\u00ff"
		}
		return p, ""

	case TagDate:
		if n, ok := raw.(json.Number); ok {
			days, err := n.Int64()
			if err != nil {
				return nil, "expected integer days"
			}
			return object.DateFromDays(days), ""
		}
		s, ok := raw.(string)
		if !ok {
			return nil, "expected a date string"
		}
		d, err := object.ParseDate(s)
		if err != nil {
			return nil, err.Error()
		}
		return d, ""

	case TagTime:
		s, ok := raw.(string)
		if !ok {
			return nil, "expected a time string"
		}
		t, err := object.ParseTime(s)
		if err != nil {
			return nil, err.Error()
		}
		return t, ""

	case TagTimestamp:
		if n, ok := raw.(json.Number); ok {
			ms, err := n.Int64()
			if err != nil {
				return nil, "expected integer milliseconds"
			}
			return object.TimestampFromMillis(ms), ""
		}
		s, ok := raw.(string)
		if !ok {
			return nil, "expected a timestamp string"
		}
		ts, err := object.ParseTimestamp(s)
		if err != nil {
			return nil, err.Error()
		}
		return ts, ""

	case TagInterval:
		i, ok := rawInt(raw)
		if !ok {
			return nil, "expected integer milliseconds"
		}
		return object.IntervalFromMillis(i), ""

	default:
		return nil, "unknown tag"
	}
}

// rawText returns the text of a string or number.
func rawText(raw any) (string, bool) {
	switch t := raw.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	default:
		return "", false
	}
}

func rawInt(raw any) (int64, bool) {
	s, ok := rawText(raw)
	if !ok {
		return 0, false
	}
	i, err := strconv.ParseInt(s, 10, 64)
	return i, err == nil
}

func rawFloat(raw any) (float64, bool) {
	switch t := raw.(type) {
	case json.Number:
		f, err := strconv.ParseFloat(t.String(), 64)
		return f, err == nil
	case string:
		switch t {
		case "NaN":
			return math.NaN(), true
		case "Infinity":
			return math.Inf(1), true
		case "-Infinity":
			return math.Inf(-1), true
		}
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// binaryBytes maps every character of s to the byte of the same value.
func binaryBytes(s string) (object.Binary, bool) {
	p := make(object.Binary, 0, len(s))
	for _, r := range s {
		if r > 0xff {
			return nil, false
		}
		p = append(p, byte(r))
	}
	return p, true
}

// renderRaw returns a compact JSON rendering of a parsed value for errors.
func renderRaw(raw any) string {
	return string(appendRaw(nil, raw))
}

func appendRaw(b []byte, raw any) []byte {
	switch t := raw.(type) {
	case nil:
		return append(b, "null"...)
	case bool:
		return strconv.AppendBool(b, t)
	case string:
		return appendString(b, t)
	case json.Number:
		return append(b, t.String()...)
	case []any:
		b = append(b, '[')
		for i, e := range t {
			if i > 0 {
				b = append(b, ',')
			}
			b = appendRaw(b, e)
		}
		return append(b, ']')
	case rawObject:
		b = append(b, '{')
		for i, e := range t {
			if i > 0 {
				b = append(b, ',')
			}
			b = appendString(b, e.key)
			b = append(b, ':')
			b = appendRaw(b, e.value)
		}
		return append(b, '}')
	default:
		return fmt.Appendf(b, "%v", raw)
	}
}
