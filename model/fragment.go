package model

import "fmt"

// A fragment represents a document: the ordered sequence of its top-level
// nodes.
//
// Like nodes, fragments are persistent data structures, and you should not
// mutate them or their content.
type Fragment struct {
	Content []*Node
}

// NewFragment creates a fragment holding the given nodes.
func NewFragment(nodes ...*Node) Fragment {
	return Fragment{Content: nodes}
}

// The number of child nodes in this fragment.
func (f Fragment) ChildCount() int {
	return len(f.Content)
}

// Get the child node at the given index. Returns an error when the index is
// out of range.
func (f Fragment) Child(index int) (*Node, error) {
	if index < 0 || index >= len(f.Content) {
		return nil, fmt.Errorf("index %d out of range for %v", index, f)
	}
	return f.Content[index], nil
}

// Call f for every top-level node.
func (f Fragment) ForEach(fn func(node *Node, index int)) {
	for i, node := range f.Content {
		fn(node, i)
	}
}

// Compare this fragment to another one.
func (f Fragment) Eq(other Fragment) bool {
	return nodesEq(f.Content, other.Content)
}

// Concatenates all the text nodes found in this fragment.
func (f Fragment) TextContent() string {
	text := ""
	for _, node := range f.Content {
		text += node.TextContent()
	}
	return text
}

// Return a debugging string that describes this fragment.
func (f Fragment) String() string {
	return "<" + nodesString(f.Content) + ">"
}
