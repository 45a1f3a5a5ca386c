package storage

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	ok, err := store.Has(ctx, "key")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.Get(ctx, "key")
	assert.ErrorIs(t, err, ErrNotFound)

	content := []byte("value")
	require.NoError(t, store.Put(ctx, "key", content))
	content[0] = 'V'

	data, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), data)

	r, err := store.GetStream(ctx, "key")
	require.NoError(t, err)
	data, err = io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, []byte("value"), data)

	_, err = store.GetStream(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := NewMemory()
	require.NoError(t, store.Put(ctx, "key", []byte("value")))
	cancel()

	_, err := store.Has(ctx, "key")
	assert.ErrorIs(t, err, context.Canceled)

	_, err = store.Get(ctx, "key")
	assert.ErrorIs(t, err, context.Canceled)

	_, err = store.GetStream(ctx, "key")
	assert.ErrorIs(t, err, context.Canceled)

	assert.ErrorIs(t, store.Put(ctx, "other", nil), context.Canceled)
}
