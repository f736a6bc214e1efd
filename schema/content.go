package schema

import (
	"errors"
	"fmt"

	"github.com/shodgson/richtext-go/model"
)

// ContentError describes a child that its parent does not admit.
type ContentError struct {
	// Child-index path from the root sequence to the offending child.
	Path   []int
	Parent string
	Child  string
}

func (e *ContentError) Error() string {
	return fmt.Sprintf("%s does not admit %s (at %v)", e.Parent, e.Child, e.Path)
}

// Allows reports whether parent may contain child.
//
// Lists hold only list items. Other blocks hold blocks, marks, inlines and
// text. Marks hold marks, inlines and text, never blocks. Leaf inlines hold
// only text, and text holds nothing.
func Allows(parent, child *model.Node) bool {
	switch parent.Object {
	case model.ObjectBlock:
		if parent.Type == TypeList {
			return child.IsBlock() && child.Type == TypeListItem
		}
		return true
	case model.ObjectMark:
		return !child.IsBlock()
	case model.ObjectInline:
		return child.IsText()
	}
	return false
}

// Validate checks every node of the sequence: each must be a known variant
// and every child must be admitted by its parent. All problems are returned
// joined; nil means the tree is well formed.
func Validate(nodes []*model.Node) error {
	var errs []error
	validate(nodes, nil, &errs)
	return errors.Join(errs...)
}

func validate(nodes []*model.Node, path []int, errs *[]error) {
	for i, node := range nodes {
		p := append(append([]int(nil), path...), i)
		if !node.IsText() {
			if _, ok := SpecOf(node); !ok {
				*errs = append(*errs, fmt.Errorf("unknown %s type %q (at %v)", node.Object, node.Type, p))
			}
		} else if len(node.Nodes) > 0 {
			*errs = append(*errs, &ContentError{Path: p, Parent: "text", Child: node.Nodes[0].Name()})
			continue
		}
		for j, child := range node.Nodes {
			if !Allows(node, child) {
				*errs = append(*errs, &ContentError{
					Path:   append(append([]int(nil), p...), j),
					Parent: node.Name(),
					Child:  child.Name(),
				})
			}
		}
		validate(node.Nodes, p, errs)
	}
}
