package storage

import (
	"bytes"
	"context"
	"io"
)

var _ Storage = (*memory)(nil)

type memory struct {
	blocks map[string][]byte
}

// NewMemory returns a new Storage that keeps all blocks in memory.
//
// The returned storage is not safe for concurrent use.
func NewMemory() Storage {
	return &memory{
		blocks: make(map[string][]byte),
	}
}

func (m *memory) Has(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	_, ok := m.blocks[key]
	return ok, nil
}

// Put stores a copy of content so callers may reuse their buffers.
func (m *memory) Put(ctx context.Context, key string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.blocks[key] = bytes.Clone(content)
	return nil
}

func (m *memory) Get(ctx context.Context, key string) ([]byte, error) {
	block, err := m.block(ctx, key)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(block), nil
}

func (m *memory) GetStream(ctx context.Context, key string) (io.ReadCloser, error) {
	block, err := m.block(ctx, key)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(block)), nil
}

func (m *memory) block(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	block, ok := m.blocks[key]
	if !ok {
		return nil, ErrNotFound
	}
	return block, nil
}
