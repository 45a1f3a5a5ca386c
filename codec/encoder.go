package codec

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/nasdf/ojai/object"
)

const hex = "0123456789abcdef"

// Dates and timestamps outside of four digit years are written as day and
// millisecond counts.
var (
	minDate      = object.NewDate(0, time.January, 1)
	maxDate      = object.NewDate(9999, time.December, 31)
	minTimestamp = object.NewTimestamp(0, time.January, 1, 0, 0, 0, 0)
	maxTimestamp = object.NewTimestamp(9999, time.December, 31, 23, 59, 59, 999)
)

type options struct {
	compact bool
}

// Option configures an Encoder.
type Option func(*options)

// WithCompact omits the space after the separators of objects and arrays.
func WithCompact() Option {
	return func(o *options) {
		o.compact = true
	}
}

// Encoder writes extended JSON documents to an output stream.
type Encoder struct {
	w        *bufio.Writer
	buf      []byte
	comma    string
	colon    string
	newlines bool
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	e := &Encoder{
		w:     bufio.NewWriter(w),
		comma: ", ",
		colon: ": ",
	}
	if o.compact {
		e.comma = ","
		e.colon = ":"
	}
	return e
}

// Flush writes any buffered data to the underlying writer.
func (e *Encoder) Flush() error {
	return e.w.Flush()
}

// Encode writes the extended JSON encoding of the given document followed by
// a newline when more than one document is written to the stream.
func (e *Encoder) Encode(doc *object.Document) error {
	if e.newlines {
		if err := e.w.WriteByte('\n'); err != nil {
			return err
		}
	}
	if err := e.EncodeValue(doc); err != nil {
		return err
	}
	e.newlines = true
	return nil
}

// EncodeValue writes the extended JSON encoding of the given value.
func (e *Encoder) EncodeValue(v object.Value) error {
	b, err := e.appendValue(e.buf[:0], v)
	if err != nil {
		return err
	}
	e.buf = b
	_, err = e.w.Write(b)
	return err
}

func (e *Encoder) appendValue(b []byte, value object.Value) ([]byte, error) {
	switch v := value.(type) {
	case nil, object.Null:
		return append(b, "null"...), nil
	case object.Bool:
		return strconv.AppendBool(b, bool(v)), nil
	case object.Int:
		b = e.appendTagStart(b, TagLong)
		b = strconv.AppendInt(b, int64(v), 10)
		return append(b, '}'), nil
	case object.Float:
		b = e.appendTagStart(b, TagFloat)
		b = appendFloat(b, float64(v))
		return append(b, '}'), nil
	case object.Decimal:
		b = e.appendTagStart(b, TagDecimal)
		b = appendString(b, v.String())
		return append(b, '}'), nil
	case object.String:
		return appendString(b, string(v)), nil
	case object.Binary:
		b = e.appendTagStart(b, TagBinary)
		b = appendBinary(b, v)
		return append(b, '}'), nil
	case object.Date:
		b = e.appendTagStart(b, TagDate)
		if v.Days() < minDate.Days() || v.Days() > maxDate.Days() {
			b = strconv.AppendInt(b, v.Days(), 10)
		} else {
			b = appendString(b, v.String())
		}
		return append(b, '}'), nil
	case object.Time:
		b = e.appendTagStart(b, TagTime)
		b = appendString(b, v.String())
		return append(b, '}'), nil
	case object.Timestamp:
		b = e.appendTagStart(b, TagTimestamp)
		if v.Millis() < minTimestamp.Millis() || v.Millis() > maxTimestamp.Millis() {
			b = strconv.AppendInt(b, v.Millis(), 10)
		} else {
			b = appendString(b, v.String())
		}
		return append(b, '}'), nil
	case object.Interval:
		b = e.appendTagStart(b, TagInterval)
		b = strconv.AppendInt(b, v.Millis(), 10)
		return append(b, '}'), nil
	case *object.Document:
		return e.appendDocument(b, v)
	case object.List:
		return e.appendList(b, v)
	default:
		return nil, fmt.Errorf("no encoder for %T", value)
	}
}

func (e *Encoder) appendTagStart(b []byte, tag string) []byte {
	b = append(b, '{')
	b = appendString(b, tag)
	return append(b, e.colon...)
}

func (e *Encoder) appendDocument(b []byte, doc *object.Document) ([]byte, error) {
	if doc == nil {
		return append(b, "null"...), nil
	}
	b = append(b, '{')
	first := true
	for k, v := range doc.All() {
		if !first {
			b = append(b, e.comma...)
		}
		first = false
		if IsTag(k) {
			return nil, fmt.Errorf("%w: %q", ErrReservedKey, k)
		}
		b = appendString(b, k)
		b = append(b, e.colon...)
		var err error
		b, err = e.appendValue(b, v)
		if err != nil {
			return nil, err
		}
	}
	return append(b, '}'), nil
}

func (e *Encoder) appendList(b []byte, list object.List) ([]byte, error) {
	b = append(b, '[')
	for i, v := range list {
		if i > 0 {
			b = append(b, e.comma...)
		}
		var err error
		b, err = e.appendValue(b, v)
		if err != nil {
			return nil, err
		}
	}
	return append(b, ']'), nil
}

// appendFloat formats finite floats the way encoding/json does and always
// keeps a fraction or exponent so the text reads as a float. Non-finite
// values are written as strings.
func appendFloat(b []byte, f float64) []byte {
	switch {
	case math.IsNaN(f):
		return appendString(b, "NaN")
	case math.IsInf(f, 1):
		return appendString(b, "Infinity")
	case math.IsInf(f, -1):
		return appendString(b, "-Infinity")
	}
	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	start := len(b)
	b = strconv.AppendFloat(b, f, format, -1, 64)
	if format == 'e' {
		// clean up e-09 to e-9
		n := len(b)
		if n-start >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
		return b
	}
	for _, c := range b[start:] {
		if c == '.' {
			return b
		}
	}
	return append(b, ".0"...)
}

// appendString writes s as a JSON string. Invalid UTF-8 is replaced with
// U+FFFD.
func appendString(b []byte, s string) []byte {
	b = append(b, '"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch c {
			case '"', '\\':
				b = append(b, '\\', c)
			case '\n':
				b = append(b, '\\', 'n')
			case '\r':
				b = append(b, '\\', 'r')
			case '\t':
				b = append(b, '\\', 't')
			case '\b':
				b = append(b, '\\', 'b')
			case '\f':
				b = append(b, '\\', 'f')
			default:
				if c < 0x20 {
					b = appendEscape(b, c)
				} else {
					b = append(b, c)
				}
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			b = append(b, `\ufffd`...)
		case r == '\u2028' || r == '\u2029':
			b = append(b, `\u202`...)
			b = append(b, hex[r&0xf])
		default:
			b = append(b, s[i:i+size]...)
		}
		i += size
	}
	return append(b, '"')
}

// appendBinary writes p as a JSON string with one escape sequence per byte.
func appendBinary(b []byte, p []byte) []byte {
	b = append(b, '"')
	for _, c := range p {
		switch c {
		case '\b':
			b = append(b, '\\', 'b')
		case '\t':
			b = append(b, '\\', 't')
		case '\n':
			b = append(b, '\\', 'n')
		case '\f':
			b = append(b, '\\', 'f')
		case '\r':
			b = append(b, '\\', 'r')
		default:
			b = appendEscape(b, c)
		}
	}
	return append(b, '"')
}

func appendEscape(b []byte, c byte) []byte {
	return append(b, '\\', 'u', '0', '0', hex[c>>4], hex[c&0xf])
}
