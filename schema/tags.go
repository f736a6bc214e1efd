package schema

import (
	"sort"

	"github.com/shodgson/richtext-go/model"
)

// Partition is one of the three disjoint groups of markup tags.
type Partition int

const (
	PartitionBlock Partition = iota
	PartitionMark
	PartitionInline
)

// Partitions lists the partitions in the order a reader tries them.
var Partitions = []Partition{PartitionBlock, PartitionMark, PartitionInline}

func (p Partition) String() string {
	switch p {
	case PartitionBlock:
		return "block"
	case PartitionMark:
		return "mark"
	case PartitionInline:
		return "inline"
	}
	return "unknown"
}

// Object is the node kind produced by tags of this partition.
func (p Partition) Object() model.Object {
	switch p {
	case PartitionMark:
		return model.ObjectMark
	case PartitionInline:
		return model.ObjectInline
	}
	return model.ObjectBlock
}

func partitionOf(o model.Object) Partition {
	switch o {
	case model.ObjectMark:
		return PartitionMark
	case model.ObjectInline:
		return PartitionInline
	}
	return PartitionBlock
}

// TagsIn returns the tag names of one partition, aliases included, sorted.
func TagsIn(p Partition) []string {
	tags := make([]string, 0, len(byTag[p]))
	for tag := range byTag[p] {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Tags returns every recognised tag name as a flat sorted list, for
// tokenizers that need to know which bracketed words are structural.
func Tags() []string {
	var tags []string
	for _, p := range Partitions {
		tags = append(tags, TagsIn(p)...)
	}
	sort.Strings(tags)
	return tags
}

// IsTag reports whether tag is in the vocabulary.
func IsTag(tag string) bool {
	_, ok := PartitionOf(tag)
	return ok
}

// PartitionOf returns the partition a tag belongs to.
func PartitionOf(tag string) (Partition, bool) {
	for _, p := range Partitions {
		if _, ok := byTag[p][tag]; ok {
			return p, true
		}
	}
	return 0, false
}
