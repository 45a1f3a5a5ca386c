package node

import (
	"fmt"

	"github.com/nasdf/ojai/codec"
	"github.com/nasdf/ojai/object"

	"github.com/ipld/go-ipld-prime/datamodel"
	"github.com/ipld/go-ipld-prime/node/basicnode"
)

// Build returns a new map node containing the fields of the given document.
//
// Kinds without a native node representation are stored as single entry maps
// keyed by their extended JSON tag. Dates, times, timestamps, and intervals
// hold integers (days, seconds of the day, and milliseconds) instead of text.
func Build(doc *object.Document) (datamodel.Node, error) {
	nb := basicnode.Prototype.Map.NewBuilder()
	if err := AssignValue(doc, nb); err != nil {
		return nil, err
	}
	return nb.Build(), nil
}

// BuildValue returns a new node for the given value.
func BuildValue(v object.Value) (datamodel.Node, error) {
	nb := basicnode.Prototype.Any.NewBuilder()
	if err := AssignValue(v, nb); err != nil {
		return nil, err
	}
	return nb.Build(), nil
}

// AssignValue assembles the given value using the node assembler.
func AssignValue(value object.Value, na datamodel.NodeAssembler) error {
	switch v := value.(type) {
	case nil, object.Null:
		return na.AssignNull()
	case object.Bool:
		return na.AssignBool(bool(v))
	case object.Int:
		return na.AssignInt(int64(v))
	case object.Float:
		return na.AssignFloat(float64(v))
	case object.String:
		return na.AssignString(string(v))
	case object.Binary:
		return na.AssignBytes([]byte(v))
	case object.Decimal:
		return assignTagged(codec.TagDecimal, na, func(va datamodel.NodeAssembler) error {
			return va.AssignString(v.String())
		})
	case object.Date:
		return assignTagged(codec.TagDate, na, func(va datamodel.NodeAssembler) error {
			return va.AssignInt(v.Days())
		})
	case object.Time:
		return assignTagged(codec.TagTime, na, func(va datamodel.NodeAssembler) error {
			return va.AssignInt(int64(v.Seconds()))
		})
	case object.Timestamp:
		return assignTagged(codec.TagTimestamp, na, func(va datamodel.NodeAssembler) error {
			return va.AssignInt(v.Millis())
		})
	case object.Interval:
		return assignTagged(codec.TagInterval, na, func(va datamodel.NodeAssembler) error {
			return va.AssignInt(v.Millis())
		})
	case *object.Document:
		return assignDocument(v, na)
	case object.List:
		return assignList(v, na)
	default:
		return fmt.Errorf("no node for %T", value)
	}
}

func assignTagged(tag string, na datamodel.NodeAssembler, fn func(datamodel.NodeAssembler) error) error {
	ma, err := na.BeginMap(1)
	if err != nil {
		return err
	}
	va, err := ma.AssembleEntry(tag)
	if err != nil {
		return err
	}
	if err := fn(va); err != nil {
		return err
	}
	return ma.Finish()
}

func assignDocument(doc *object.Document, na datamodel.NodeAssembler) error {
	if doc == nil {
		return na.AssignNull()
	}
	ma, err := na.BeginMap(int64(doc.Len()))
	if err != nil {
		return err
	}
	for k, v := range doc.All() {
		if codec.IsTag(k) {
			return fmt.Errorf("%w: %q", codec.ErrReservedKey, k)
		}
		ea, err := ma.AssembleEntry(k)
		if err != nil {
			return err
		}
		if err := AssignValue(v, ea); err != nil {
			return err
		}
	}
	return ma.Finish()
}

func assignList(list object.List, na datamodel.NodeAssembler) error {
	la, err := na.BeginList(int64(len(list)))
	if err != nil {
		return err
	}
	for _, v := range list {
		if err := AssignValue(v, la.AssembleValue()); err != nil {
			return err
		}
	}
	return la.Finish()
}
