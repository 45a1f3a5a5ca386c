// Package ojai provides mutable documents with extended JSON encoding and a
// content addressed document collection.
package ojai

import (
	"context"
	"errors"

	"github.com/nasdf/ojai/codec"
	"github.com/nasdf/ojai/core"
	"github.com/nasdf/ojai/link"
	"github.com/nasdf/ojai/object"
	"github.com/nasdf/ojai/storage"

	"github.com/ipld/go-ipld-prime/datamodel"
)

// RootLinkKey is the storage key holding the link of the last saved collection root.
const RootLinkKey = "root"

// NewDocument returns a new empty document.
func NewDocument() *object.Document {
	return object.NewDocument()
}

// CreateDocument returns the document encoded in the given extended JSON.
func CreateDocument(data []byte) (*object.Document, error) {
	return codec.Unmarshal(data)
}

// Open returns the collection saved in the given storage. A new empty
// collection is returned when nothing has been saved yet.
func Open(ctx context.Context, store storage.Storage, opts ...core.Option) (*core.Collection, error) {
	links := link.NewStore(store)
	data, err := store.Get(ctx, RootLinkKey)
	if errors.Is(err, storage.ErrNotFound) {
		return core.NewCollection(links, opts...), nil
	}
	if err != nil {
		return nil, err
	}
	rootLink, err := link.ParseLink(string(data))
	if err != nil {
		return nil, err
	}
	return core.LoadCollection(ctx, links, rootLink, opts...)
}

// Save commits the given collection and records its root in the given storage
// so that it can be reopened with Open.
func Save(ctx context.Context, store storage.Storage, collection *core.Collection) (datamodel.Link, error) {
	rootLink, err := collection.Commit(ctx)
	if err != nil {
		return nil, err
	}
	if err := store.Put(ctx, RootLinkKey, []byte(rootLink.String())); err != nil {
		return nil, err
	}
	return rootLink, nil
}
