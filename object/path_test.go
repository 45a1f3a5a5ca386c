package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	segments, err := ParsePath("a.b.c")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, segments)

	for _, path := range []string{"", ".", "a.", ".a", "a..b"} {
		_, err := ParsePath(path)
		assert.ErrorIs(t, err, ErrInvalidPath, "path %q", path)
	}
}

func TestSetNestedCreatesDocuments(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, doc.Set("test_int", 123))
	require.NoError(t, doc.Set("first.test_int", 1235))
	require.NoError(t, doc.Set("first.second.flag", true))

	first, ok := doc.Get("first")
	require.True(t, ok)
	assert.Equal(t, KindDocument, first.Kind())
	assert.Equal(t, []string{"test_int", "second"}, first.(*Document).Keys())

	v, ok := doc.Get("first.second.flag")
	require.True(t, ok)
	assert.Equal(t, Bool(true), v)
}

func TestSetReplacesNonDocumentIntermediate(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, doc.Set("a", 1))
	require.NoError(t, doc.Set("a.b", 2))

	v, ok := doc.Get("a.b")
	require.True(t, ok)
	assert.Equal(t, Int(2), v)
	assert.Equal(t, []string{"a"}, doc.Keys())
}

func TestSetChangesKindInPlace(t *testing.T) {
	doc := NewDocument().SetID("121212")
	require.NoError(t, doc.Set("test_int", 123))
	require.NoError(t, doc.Set("test_float", 11.1))
	require.NoError(t, doc.Set("test_int", TimestampFromMillis(29877132000)))

	assert.Equal(t, []string{"_id", "test_int", "test_float"}, doc.Keys())
	v, _ := doc.Get("test_int")
	assert.Equal(t, KindTimestamp, v.Kind())
}

func TestSetReplacesWholeContainer(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, doc.Set("dict_field", map[string]any{"n": 2}))
	require.NoError(t, doc.Set("dict_field", map[string]any{"r": 3}))
	assert.Equal(t, map[string]any{"dict_field": map[string]any{"r": int64(3)}}, doc.AsMap())

	require.NoError(t, doc.Set("list_field", []any{1, 1}))
	require.NoError(t, doc.Set("list_field", []any{2, 2}))
	v, _ := doc.Get("list_field")
	assert.Equal(t, List{Int(2), Int(2)}, v)
}

func TestSetInvalid(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, doc.Set("a", 1))

	err := doc.Set("", 1)
	assert.ErrorIs(t, err, ErrInvalidPath)

	err = doc.Set("b.c", make(chan int))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	err = doc.Set("a.b", struct{}{})
	assert.ErrorIs(t, err, ErrUnsupportedType)

	assert.Equal(t, []string{"a"}, doc.Keys(), "failed set must not change the document")
	v, _ := doc.Get("a")
	assert.Equal(t, Int(1), v)
}

func TestSetValueCopiesValue(t *testing.T) {
	inner := NewDocument()
	inner.SetField("x", Int(1))

	doc := NewDocument().SetValue("a.inner", inner)
	inner.SetField("x", Int(2))

	v, ok := doc.Get("a.inner.x")
	require.True(t, ok)
	assert.Equal(t, Int(1), v)

	assert.Panics(t, func() { doc.SetValue("a..b", Null{}) })
}

func TestGetMissing(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, doc.Set("a.b", "leaf"))
	require.NoError(t, doc.Set("n", nil))

	for _, path := range []string{"x", "a.x", "a.b.c", "n.x", "", "a..b"} {
		_, ok := doc.Get(path)
		assert.False(t, ok, "path %q", path)
	}

	v, ok := doc.Get("n")
	require.True(t, ok, "null is present")
	assert.Equal(t, Null{}, v)
}

func TestDelete(t *testing.T) {
	doc := NewDocument().SetID("121212")
	require.NoError(t, doc.Set("test_int", 123))
	require.NoError(t, doc.Set("first.test_int", 1235))
	require.NoError(t, doc.Set("first.test_timestamp", TimestampFromMillis(29877132000)))

	doc.Delete("first.test_int")
	first, _ := doc.Get("first")
	assert.Equal(t, []string{"test_timestamp"}, first.(*Document).Keys())

	doc.Delete("first.test_timestamp")
	first, ok := doc.Get("first")
	require.True(t, ok, "emptied parent is kept")
	assert.True(t, first.(*Document).Empty())

	doc.Delete("missing.path")
	doc.Delete("test_int.x")
	doc.Delete("")
	assert.Equal(t, []string{"_id", "test_int", "first"}, doc.Keys())

	doc.Delete("test_int")
	assert.Equal(t, []string{"_id", "first"}, doc.Keys())
}
