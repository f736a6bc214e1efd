package model

// FindDiffStart returns the child-index path of the first node where the two
// sequences differ, or nil when they are equal. When one sequence is a
// prefix of the other, the path points one past the shorter one.
func FindDiffStart(a, b []*Node) []int {
	return findDiffStart(a, b, nil)
}

func findDiffStart(a, b []*Node, path []int) []int {
	for i := 0; ; i++ {
		if i == len(a) || i == len(b) {
			if len(a) == len(b) {
				return nil
			}
			return appendPath(path, i)
		}

		childA, childB := a[i], b[i]
		if childA == childB {
			continue
		}
		if !childA.SameMarkup(childB) || childA.Text != childB.Text {
			return appendPath(path, i)
		}
		if len(childA.Nodes) > 0 || len(childB.Nodes) > 0 {
			if inner := findDiffStart(childA.Nodes, childB.Nodes, appendPath(path, i)); inner != nil {
				return inner
			}
		}
	}
}

// FindDiffEnd is FindDiffStart scanning from the end of both sequences. The
// two paths index into a and b respectively; a final index of -1 means the
// extra content sits before the first child of that sequence.
func FindDiffEnd(a, b []*Node) (pathA, pathB []int) {
	return findDiffEnd(a, b, nil, nil)
}

func findDiffEnd(a, b []*Node, pa, pb []int) ([]int, []int) {
	ia, ib := len(a), len(b)
	for {
		if ia == 0 || ib == 0 {
			if ia == ib {
				return nil, nil
			}
			return appendPath(pa, ia-1), appendPath(pb, ib-1)
		}

		ia--
		ib--
		childA, childB := a[ia], b[ib]
		if childA == childB {
			continue
		}
		if !childA.SameMarkup(childB) || childA.Text != childB.Text {
			return appendPath(pa, ia), appendPath(pb, ib)
		}
		if len(childA.Nodes) > 0 || len(childB.Nodes) > 0 {
			innerA, innerB := findDiffEnd(childA.Nodes, childB.Nodes, appendPath(pa, ia), appendPath(pb, ib))
			if innerA != nil {
				return innerA, innerB
			}
		}
	}
}

// NodeAt follows a child-index path from the given sequence and returns the
// node it ends on, or nil when the path leaves the tree.
func NodeAt(nodes []*Node, path []int) *Node {
	var node *Node
	for _, i := range path {
		if i < 0 || i >= len(nodes) {
			return nil
		}
		node = nodes[i]
		nodes = node.Nodes
	}
	return node
}

func appendPath(path []int, i int) []int {
	out := make([]int, len(path), len(path)+1)
	copy(out, path)
	return append(out, i)
}
