package bbcode

import (
	"fmt"

	"github.com/shodgson/richtext-go/model"
)

// UnknownNodeError is reported when the serializer meets a node whose
// (object, type) pair has no markup form. Both are empty for a nil node.
type UnknownNodeError struct {
	Object model.Object
	Type   string
}

func (e *UnknownNodeError) Error() string {
	if e.Object == "" && e.Type == "" {
		return "no markup for nil node"
	}
	return fmt.Sprintf("no markup for %s node %q", e.Object, e.Type)
}

// UnknownTagError is the outcome of looking up a tag that has no rule. When
// Partition is empty, no partition knows the tag.
type UnknownTagError struct {
	Tag       string
	Partition string
}

func (e *UnknownTagError) Error() string {
	if e.Partition != "" {
		return fmt.Sprintf("unknown %s tag [%s]", e.Partition, e.Tag)
	}
	return fmt.Sprintf("unknown tag [%s]", e.Tag)
}

// MalformedAttributeError is returned for a tag whose attribute is required
// but which does not carry exactly one attribute key. Count is the number of
// keys found.
type MalformedAttributeError struct {
	Tag   string
	Attr  string
	Count int
}

func (e *MalformedAttributeError) Error() string {
	return fmt.Sprintf("[%s] needs exactly one attribute for %s, got %d", e.Tag, e.Attr, e.Count)
}
