package storage

import (
	"errors"

	"github.com/ipld/go-ipld-prime/storage"
)

// ErrNotFound is returned when a key does not exist in the storage.
var ErrNotFound = errors.New("key not found")

// Storage is a block storage that can be read from and written to by a link system.
type Storage interface {
	storage.ReadableStorage
	storage.WritableStorage
	storage.StreamingReadableStorage
}
