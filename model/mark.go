package model

// A mark set is the stack of mark nodes that wrap a piece of inline content,
// outermost first. Projections that flatten marks into per-run annotations
// (Markdown, Notion) track the active set while walking the tree.
type MarkSet []*Node

// Given a set of marks, create a new set which contains this one as well, at
// the end. If an equal mark is already in the set, the set itself is
// returned.
func (s MarkSet) Add(mark *Node) MarkSet {
	if s.Contains(mark) {
		return s
	}
	cpy := make(MarkSet, len(s), len(s)+1)
	copy(cpy, s)
	return append(cpy, mark)
}

// Remove this mark from the given set, returning a new set. If this mark is
// not in the set, the set itself is returned.
func (s MarkSet) Remove(mark *Node) MarkSet {
	for i, other := range s {
		if sameMark(mark, other) {
			cpy := make(MarkSet, 0, len(s)-1)
			cpy = append(cpy, s[:i]...)
			return append(cpy, s[i+1:]...)
		}
	}
	return s
}

// Test whether an equal mark is in the set.
func (s MarkSet) Contains(mark *Node) bool {
	for _, other := range s {
		if sameMark(mark, other) {
			return true
		}
	}
	return false
}

// HasType reports whether a mark of the given type is in the set, and returns
// the innermost one.
func (s MarkSet) HasType(typ string) (*Node, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Type == typ {
			return s[i], true
		}
	}
	return nil, false
}

// Test whether two sets of marks are identical.
func SameMarkSet(a, b MarkSet) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !sameMark(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Marks compare by type and data only; their children are the marked
// content, not part of the mark.
func sameMark(a, b *Node) bool {
	return a == b || a.SameMarkup(b)
}

// Inline is one leaf of inline content with the marks wrapping it,
// outermost first.
type Inline struct {
	Node  *Node
	Marks MarkSet
}

// Flatten turns inline content, where marks wrap their content, into the
// sequence of its leaves with their active marks. Marks without content
// disappear.
func Flatten(nodes []*Node) []Inline {
	var inlines []Inline
	flatten(nodes, nil, &inlines)
	return inlines
}

func flatten(nodes []*Node, marks MarkSet, inlines *[]Inline) {
	for _, node := range nodes {
		if node.IsMark() {
			flatten(node.Nodes, marks.Add(node), inlines)
			continue
		}
		*inlines = append(*inlines, Inline{Node: node, Marks: marks})
	}
}
