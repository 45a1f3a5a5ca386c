package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/nasdf/ojai/link"
	"github.com/nasdf/ojai/node"
	"github.com/nasdf/ojai/object"

	"github.com/ipld/go-ipld-prime/datamodel"
	"github.com/ipld/go-ipld-prime/node/basicnode"
)

// Collection is a set of documents keyed by their _id field.
//
// Every document is stored as its own block and the collection root links to
// all of them. A Collection is not safe for concurrent use.
type Collection struct {
	links  *link.Store
	logger *slog.Logger
	newID  func() (string, error)
	ids    []string
	docs   map[string]datamodel.Link
}

// NewCollection returns a new empty collection that stores documents in the given store.
func NewCollection(links *link.Store, opts ...Option) *Collection {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Collection{
		links:  links,
		logger: o.logger,
		newID:  o.newID,
		docs:   make(map[string]datamodel.Link),
	}
}

// LoadCollection returns the collection with the given root link.
func LoadCollection(ctx context.Context, links *link.Store, root datamodel.Link, opts ...Option) (*Collection, error) {
	ids, docs, err := loadRootDocuments(ctx, links, root)
	if err != nil {
		return nil, fmt.Errorf("load collection %s: %w", root, err)
	}
	c := NewCollection(links, opts...)
	c.ids = ids
	c.docs = docs
	c.logger.Debug("collection loaded", "root", root.String(), "documents", len(ids))
	return c, nil
}

// Len returns the number of documents in the collection.
func (c *Collection) Len() int {
	return len(c.ids)
}

// IDs returns the ids of all documents in the order they were created.
func (c *Collection) IDs() []string {
	return slices.Clone(c.ids)
}

// CreateDocument stores a copy of the given document and returns its id.
//
// When the document has no _id field a new id is generated and set on the
// stored copy. The given document is never modified.
func (c *Collection) CreateDocument(ctx context.Context, doc *object.Document) (string, error) {
	stored := doc.Clone()
	id, ok := stored.GetID()
	if !ok {
		var err error
		if id, err = c.newID(); err != nil {
			return "", fmt.Errorf("generate document id: %w", err)
		}
		stored.SetID(id)
	}
	if _, exists := c.docs[id]; exists {
		return "", fmt.Errorf("%w: %s", ErrDocumentExists, id)
	}
	if err := c.storeDocument(ctx, id, stored); err != nil {
		return "", err
	}
	c.logger.Debug("document created", "id", id, "fields", stored.Len())
	return id, nil
}

// ReadDocument returns the document with the given id.
func (c *Collection) ReadDocument(ctx context.Context, id string) (*object.Document, error) {
	lnk, ok := c.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
	}
	n, err := c.links.Load(ctx, lnk, basicnode.Prototype.Map)
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", id, err)
	}
	return node.Document(n)
}

// ReplaceDocument stores a copy of the given document under its _id field,
// replacing any document with the same id.
func (c *Collection) ReplaceDocument(ctx context.Context, doc *object.Document) error {
	id, ok := doc.GetID()
	if !ok {
		return ErrMissingID
	}
	if err := c.storeDocument(ctx, id, doc.Clone()); err != nil {
		return err
	}
	c.logger.Debug("document replaced", "id", id)
	return nil
}

// DeleteDocument removes the document with the given id.
// Deleting a document that does not exist is not an error.
func (c *Collection) DeleteDocument(ctx context.Context, id string) error {
	if _, ok := c.docs[id]; !ok {
		return nil
	}
	delete(c.docs, id)
	c.ids = slices.DeleteFunc(c.ids, func(e string) bool { return e == id })
	c.logger.Debug("document deleted", "id", id)
	return nil
}

// Commit stores a new collection root and returns its link.
func (c *Collection) Commit(ctx context.Context) (datamodel.Link, error) {
	rootNode, err := BuildRootNode(c.ids, c.docs)
	if err != nil {
		return nil, err
	}
	rootLink, err := c.links.Store(ctx, rootNode)
	if err != nil {
		return nil, err
	}
	c.logger.Info("collection committed", "root", rootLink.String(), "documents", len(c.ids))
	return rootLink, nil
}

// Export commits the collection and writes a CAR file containing the root
// and every document to the given io.Writer.
func (c *Collection) Export(ctx context.Context, out io.Writer) error {
	rootLink, err := c.Commit(ctx)
	if err != nil {
		return err
	}
	n, err := c.links.Export(ctx, rootLink, out)
	if err != nil {
		return fmt.Errorf("export collection %s: %w", rootLink, err)
	}
	c.logger.Info("collection exported", "root", rootLink.String(), "bytes", n)
	return nil
}

func (c *Collection) storeDocument(ctx context.Context, id string, doc *object.Document) error {
	n, err := node.Build(doc)
	if err != nil {
		return fmt.Errorf("build document %s: %w", id, err)
	}
	lnk, err := c.links.Store(ctx, n)
	if err != nil {
		return fmt.Errorf("store document %s: %w", id, err)
	}
	if _, ok := c.docs[id]; !ok {
		c.ids = append(c.ids, id)
	}
	c.docs[id] = lnk
	return nil
}
