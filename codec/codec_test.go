package codec

import (
	"bytes"
	"errors"
	"io"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/nasdf/ojai/object"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecimal(s string) object.Decimal {
	d, err := object.ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

var testInput = []object.Value{
	object.Null{},
	object.Bool(true),
	object.Bool(false),
	object.Int(math.MaxInt64),
	object.Int(math.MinInt64),
	object.Float(3.14),
	object.Float(-0.5),
	object.Float(1e300),
	mustDecimal("3.140000000000000124344978758017532527446746826171875"),
	mustDecimal("-1.50"),
	object.String(""),
	object.String("test \"quoted\"   ☃"),
	object.Binary{},
	object.Binary{0, 1, 2, 0xff},
	object.DateFromDays(3456),
	object.DateFromDays(-20000),
	object.DateFromDays(2932897),
	object.DateFromDays(-719529),
	object.DateFromDays(math.MinInt64),
	object.NewTime(23, 59, 59),
	object.TimestampFromMillis(29877132000),
	object.TimestampFromMillis(-1),
	object.TimestampFromMillis(253402300800000),
	object.TimestampFromMillis(-62167219200001),
	object.TimestampFromMillis(math.MaxInt64),
	object.IntervalFromMillis(172800000),
	object.List{},
	object.List{object.Int(5), object.String("hello"), object.List{object.Null{}}},
	object.NewDocument(),
	object.NewDocument().SetID("1").SetValue("count", object.Int(9)).SetValue("nested.deep", object.Bool(true)),
}

func TestEncodeDecode(t *testing.T) {
	var buffer bytes.Buffer
	enc := NewEncoder(&buffer)
	dec := NewDecoder(&buffer)

	for _, expect := range testInput {
		buffer.Reset()

		err := enc.EncodeValue(expect)
		require.NoError(t, err)

		err = enc.Flush()
		require.NoError(t, err)

		actual, err := dec.DecodeValue()
		require.NoError(t, err)

		assert.True(t, object.Equal(expect, actual), "expected %#v got %#v", expect, actual)
	}
}

func TestMarshalTags(t *testing.T) {
	doc := object.NewDocument().
		SetValue("test_interval", object.IntervalFromMillis(172800000)).
		SetID("121212").
		SetValue("test_int", object.Int(123)).
		SetValue("test_timestamp", object.TimestampFromMillis(29877132000)).
		SetValue("test_float", object.Float(11.1))

	data, err := Marshal(doc)
	require.NoError(t, err)

	expect := `{"test_interval": {"$interval": 172800000}, "_id": "121212", "test_int": {"$numberLong": 123}, ` +
		`"test_timestamp": {"$date": "1970-12-12T19:12:12.000000Z"}, "test_float": {"$numberFloat": 11.1}}`
	assert.Equal(t, expect, string(data))

	data, err = Marshal(doc, WithCompact())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), `{"test_interval":{"$interval":172800000},"_id":"121212",`))
}

func TestMarshalBinary(t *testing.T) {
	doc := object.NewDocument().SetValue("test_byte_array", object.Binary{0x13, 0x00, 0x00, 0x00, 0x08, 0x00})

	data, err := Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, `{"test_byte_array": {"$binary": "\u0013\u0000\u0000\u0000\b\u0000"}}`, string(data))
	assert.Equal(t, 6, strings.Count(string(data), `\`), "one escape per byte")
}

func TestMarshalCalendarLimits(t *testing.T) {
	tests := []struct {
		value  object.Value
		expect string
	}{
		{object.NewDate(9999, time.December, 31), `{"$dateDay": "9999-12-31"}`},
		{object.NewDate(0, time.January, 1), `{"$dateDay": "0000-01-01"}`},
		{object.DateFromDays(2932897), `{"$dateDay": 2932897}`},
		{object.DateFromDays(-719529), `{"$dateDay": -719529}`},
		{object.NewTimestamp(9999, time.December, 31, 23, 59, 59, 999), `{"$date": "9999-12-31T23:59:59.999000Z"}`},
		{object.TimestampFromMillis(253402300800000), `{"$date": 253402300800000}`},
		{object.TimestampFromMillis(-62167219200001), `{"$date": -62167219200001}`},
	}
	for _, tc := range tests {
		data, err := MarshalValue(tc.value)
		require.NoError(t, err)
		assert.Equal(t, tc.expect, string(data))

		actual, err := UnmarshalValue(data)
		require.NoError(t, err)
		assert.True(t, object.Equal(tc.value, actual), "value %s", data)
	}
}

func TestMarshalReservedKey(t *testing.T) {
	doc := object.NewDocument()
	require.NoError(t, doc.Set("$date", 5))

	_, err := Marshal(doc)
	assert.ErrorIs(t, err, ErrReservedKey)

	nested := object.NewDocument().SetValue("a", object.Int(1)).SetValue("b.$binary", object.Null{})
	_, err = Marshal(nested)
	assert.ErrorIs(t, err, ErrReservedKey)

	_, err = MarshalValue(object.List{doc})
	assert.ErrorIs(t, err, ErrReservedKey)

	data, err := Marshal(object.NewDocument().SetValue("$other", object.Null{}))
	require.NoError(t, err)
	assert.Equal(t, `{"$other": null}`, string(data))
}

func TestMarshalFloat(t *testing.T) {
	tests := map[float64]string{
		11.1:         `{"$numberFloat": 11.1}`,
		2:            `{"$numberFloat": 2.0}`,
		-0.0001:      `{"$numberFloat": -0.0001}`,
		1e-9:         `{"$numberFloat": 1e-9}`,
		1e21:         `{"$numberFloat": 1e+21}`,
		math.Inf(1):  `{"$numberFloat": "Infinity"}`,
		math.Inf(-1): `{"$numberFloat": "-Infinity"}`,
	}
	for f, expect := range tests {
		data, err := MarshalValue(object.Float(f))
		require.NoError(t, err)
		assert.Equal(t, expect, string(data))
	}

	data, err := MarshalValue(object.Float(math.NaN()))
	require.NoError(t, err)
	assert.Equal(t, `{"$numberFloat": "NaN"}`, string(data))

	v, err := UnmarshalValue(data)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(float64(v.(object.Float))))
}

func TestMarshalDecimalFromFloat(t *testing.T) {
	d, err := object.DecimalFromFloat(3.14)
	require.NoError(t, err)

	data, err := Marshal(object.NewDocument().SetValue("test_decimal", d))
	require.NoError(t, err)
	assert.Equal(t, `{"test_decimal": {"$decimal": "3.140000000000000124344978758017532527446746826171875"}}`, string(data))

	doc, err := Unmarshal(data)
	require.NoError(t, err)
	v, ok := doc.Get("test_decimal")
	require.True(t, ok)
	assert.Equal(t, "3.140000000000000124344978758017532527446746826171875", v.(object.Decimal).String())
}

func TestUnmarshalKeepsOrder(t *testing.T) {
	doc, err := Unmarshal([]byte(`{"z": null, "a": {"y": true, "b": false}, "m": []}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "a", "m"}, doc.Keys())

	inner, _ := doc.Get("a")
	assert.Equal(t, []string{"y", "b"}, inner.(*object.Document).Keys())
}

func TestUnmarshalUntaggedNumber(t *testing.T) {
	doc, err := Unmarshal([]byte(`{"n": 12, "f": 1.5}`))
	require.NoError(t, err)

	n, _ := doc.Get("n")
	assert.Equal(t, object.Float(12), n)
	f, _ := doc.Get("f")
	assert.Equal(t, object.Float(1.5), f)
}

func TestUnmarshalSyntaxError(t *testing.T) {
	_, err := Unmarshal([]byte(`{"a": [1, 2}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)

	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.NotEmpty(t, syntaxErr.Fragment)

	_, err = Unmarshal([]byte(`{"a": 1`))
	require.ErrorAs(t, err, &syntaxErr)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = Unmarshal([]byte(`[]`))
	require.ErrorAs(t, err, &syntaxErr)
}

func TestUnmarshalTagError(t *testing.T) {
	_, err := Unmarshal([]byte(`{"a": {"$numberLong": 1, "extra": 2}}`))
	var tagErr *TagError
	require.ErrorAs(t, err, &tagErr)
	assert.Equal(t, TagLong, tagErr.Tag)
	assert.Equal(t, `{"$numberLong":1,"extra":2}`, tagErr.Fragment)
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Unmarshal([]byte(`{"a": {"$numberLong": 9223372036854775808}}`))
	require.ErrorAs(t, err, &tagErr)
	assert.Equal(t, "expected a 64-bit integer", tagErr.Reason)
}

func TestStream(t *testing.T) {
	var buffer bytes.Buffer
	enc := NewEncoder(&buffer, WithCompact())

	docs := []*object.Document{
		object.NewDocument().SetID("1"),
		object.NewDocument().SetID("2").SetValue("n", object.Int(2)),
		object.NewDocument(),
	}
	for _, doc := range docs {
		require.NoError(t, enc.Encode(doc))
	}
	require.NoError(t, enc.Flush())
	assert.Equal(t, "{\"_id\":\"1\"}\n{\"_id\":\"2\",\"n\":{\"$numberLong\":2}}\n{}", buffer.String())

	dec := NewDecoder(&buffer)
	for _, expect := range docs {
		actual, err := dec.Decode()
		require.NoError(t, err)
		assert.True(t, expect.Equal(actual))
	}
	_, err := dec.Decode()
	assert.True(t, errors.Is(err, io.EOF))
}

func TestStreamRejectsNonDocument(t *testing.T) {
	dec := NewDecoder(strings.NewReader(`{"a": null} 5`))

	_, err := dec.Decode()
	require.NoError(t, err)

	_, err = dec.Decode()
	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
}
