package core

import "errors"

var (
	// ErrDocumentNotFound is returned when a collection has no document with the requested id.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrDocumentExists is returned when creating a document with an id that is already in use.
	ErrDocumentExists = errors.New("document already exists")
	// ErrMissingID is returned when a document without an _id field is replaced.
	ErrMissingID = errors.New("document has no _id field")
)
