package object

import (
	"errors"
	"fmt"
	"strings"
)

// PathSeparator separates the segments of a field path.
const PathSeparator = "."

// ErrInvalidPath is returned when a path is empty or contains an empty segment.
var ErrInvalidPath = errors.New("invalid field path")

// ParsePath splits the given dotted path into its segments.
func ParsePath(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	segments := strings.Split(path, PathSeparator)
	for _, s := range segments {
		if s == "" {
			return nil, fmt.Errorf("%w: empty segment in %q", ErrInvalidPath, path)
		}
	}
	return segments, nil
}

// Set converts the given go value and assigns it at the given path.
//
// Missing intermediate documents are created and intermediate values that are
// not documents are replaced with empty documents. The document is unchanged
// if the path is invalid or the value cannot be converted.
func (d *Document) Set(path string, value any) error {
	segments, err := ParsePath(path)
	if err != nil {
		return err
	}
	v, err := FromAny(value)
	if err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	d.assign(segments, v)
	return nil
}

// SetValue assigns a copy of the given value at the given path and returns
// the document.
//
// SetValue panics if the path is invalid.
func (d *Document) SetValue(path string, value Value) *Document {
	segments, err := ParsePath(path)
	if err != nil {
		panic(err)
	}
	d.assign(segments, Clone(value))
	return d
}

func (d *Document) assign(segments []string, value Value) {
	parent := d
	for _, s := range segments[:len(segments)-1] {
		child, ok := parent.fields[s].(*Document)
		if !ok {
			child = NewDocument()
			parent.SetField(s, child)
		}
		parent = child
	}
	parent.SetField(segments[len(segments)-1], value)
}

// Get returns the value at the given path.
//
// The returned bool is false if any segment is missing or an intermediate
// value is not a document.
func (d *Document) Get(path string) (Value, bool) {
	parent, leaf, ok := d.lookupParent(path)
	if !ok {
		return nil, false
	}
	return parent.Field(leaf)
}

// Delete removes the value at the given path. Missing paths are ignored.
func (d *Document) Delete(path string) {
	parent, leaf, ok := d.lookupParent(path)
	if !ok {
		return
	}
	parent.DeleteField(leaf)
}

func (d *Document) lookupParent(path string) (*Document, string, bool) {
	segments, err := ParsePath(path)
	if err != nil {
		return nil, "", false
	}
	parent := d
	for _, s := range segments[:len(segments)-1] {
		child, ok := parent.fields[s].(*Document)
		if !ok {
			return nil, "", false
		}
		parent = child
	}
	return parent, segments[len(segments)-1], true
}
