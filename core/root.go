package core

import (
	"context"

	"github.com/nasdf/ojai/link"

	"github.com/ipld/go-ipld-prime/datamodel"
	"github.com/ipld/go-ipld-prime/fluent/qp"
	"github.com/ipld/go-ipld-prime/node/basicnode"
)

const (
	// CollectionDocumentsFieldName is the name of the documents field on a collection root.
	CollectionDocumentsFieldName = "Documents"
)

// DocumentsPath returns the path for the documents map of a collection root.
func DocumentsPath() datamodel.Path {
	return datamodel.ParsePath(CollectionDocumentsFieldName)
}

// BuildRootNode returns a new collection root node linking to the given documents.
func BuildRootNode(ids []string, docs map[string]datamodel.Link) (datamodel.Node, error) {
	return qp.BuildMap(basicnode.Prototype.Map, 1, func(ma datamodel.MapAssembler) {
		qp.MapEntry(ma, CollectionDocumentsFieldName, qp.Map(int64(len(ids)), func(ma datamodel.MapAssembler) {
			for _, id := range ids {
				qp.MapEntry(ma, id, qp.Link(docs[id]))
			}
		}))
	})
}

// loadRootDocuments returns the ids and document links stored in the root with the given link.
func loadRootDocuments(ctx context.Context, links *link.Store, root datamodel.Link) ([]string, map[string]datamodel.Link, error) {
	rootNode, err := links.Load(ctx, root, basicnode.Prototype.Map)
	if err != nil {
		return nil, nil, err
	}
	docsNode, err := links.GetNode(ctx, DocumentsPath(), rootNode)
	if err != nil {
		return nil, nil, err
	}
	ids := make([]string, 0, docsNode.Length())
	docs := make(map[string]datamodel.Link, docsNode.Length())
	for iter := docsNode.MapIterator(); !iter.Done(); {
		k, v, err := iter.Next()
		if err != nil {
			return nil, nil, err
		}
		id, err := k.AsString()
		if err != nil {
			return nil, nil, err
		}
		lnk, err := v.AsLink()
		if err != nil {
			return nil, nil, err
		}
		ids = append(ids, id)
		docs[id] = lnk
	}
	return ids, docs, nil
}
