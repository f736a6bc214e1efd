package model

import (
	"fmt"
	"strings"
)

// Object is the kind of a document node. Every node is exactly one of a
// block, a mark, an inline or a text run.
type Object string

const (
	ObjectBlock  Object = "block"
	ObjectMark   Object = "mark"
	ObjectInline Object = "inline"
	ObjectText   Object = "text"
)

// Valid reports whether o is one of the four known kinds.
func (o Object) Valid() bool {
	switch o {
	case ObjectBlock, ObjectMark, ObjectInline, ObjectText:
		return true
	}
	return false
}

// This type represents a node in the tree that makes up a rich-text document.
// Blocks hold blocks or inline content, marks wrap a contiguous span of inline
// content, inlines are leaves carrying their payload in Data, and text nodes
// carry characters.
//
// Nodes are persistent data structures. Instead of changing them, you create
// new ones with the content you want. Every conversion builds a fresh tree,
// so a node is never shared between the input and the output of a
// serializer or a deserializer.
//
// Do not directly mutate the properties of a Node object.
type Node struct {
	// The kind of node that this is.
	Object Object `json:"object"`
	// The variant within its kind, e.g. "heading-one", "bold" or "image".
	Type string `json:"type,omitempty"`
	// Attributes of the variant, e.g. {color: "red"} or {src: "..."}.
	Data Data `json:"data,omitempty"`
	// The node's children, in document order.
	Nodes []*Node `json:"nodes,omitempty"`
	// For text nodes, this contains the node's characters.
	Text string `json:"text,omitempty"`
}

// NewNode creates a node of the given kind and type. The data map is copied
// and the children slice is owned by the new node.
func NewNode(object Object, typ string, data map[string]string, nodes []*Node) *Node {
	return &Node{Object: object, Type: typ, Data: NewData(data), Nodes: nodes}
}

func NewBlock(typ string, data map[string]string, nodes ...*Node) *Node {
	return NewNode(ObjectBlock, typ, data, nodes)
}

func NewMark(typ string, data map[string]string, nodes ...*Node) *Node {
	return NewNode(ObjectMark, typ, data, nodes)
}

func NewInline(typ string, data map[string]string, nodes ...*Node) *Node {
	return NewNode(ObjectInline, typ, data, nodes)
}

// NewText creates a text run.
func NewText(text string) *Node {
	return &Node{Object: ObjectText, Text: text}
}

// True when this is a text node.
func (n *Node) IsText() bool {
	return n.Object == ObjectText
}

// True when this is a block node.
func (n *Node) IsBlock() bool {
	return n.Object == ObjectBlock
}

// True when this is a mark node.
func (n *Node) IsMark() bool {
	return n.Object == ObjectMark
}

// True when this is an inline node.
func (n *Node) IsInline() bool {
	return n.Object == ObjectInline
}

// The number of children that the node has.
func (n *Node) ChildCount() int {
	return len(n.Nodes)
}

// Get the child node at the given index. Returns an error when the index is
// out of range.
func (n *Node) Child(index int) (*Node, error) {
	if index < 0 || index >= len(n.Nodes) {
		return nil, fmt.Errorf("index %d out of range for %s", index, n.Name())
	}
	return n.Nodes[index], nil
}

// Get the child node at the given index, if it exists.
func (n *Node) MaybeChild(index int) *Node {
	if index < 0 || index >= len(n.Nodes) {
		return nil
	}
	return n.Nodes[index]
}

// Call f for every child node, passing the node and its index.
func (n *Node) ForEach(f func(child *Node, index int)) {
	for i, child := range n.Nodes {
		f(child, i)
	}
}

// Invoke a callback for all descendant nodes in document order. When the
// callback returns false for a given node, that node's children will not be
// recursed over.
func (n *Node) Descendants(f func(node *Node, parent *Node, index int) bool) {
	for i, child := range n.Nodes {
		if f(child, n, i) {
			child.Descendants(f)
		}
	}
}

// Concatenates all the text nodes found in this node and its children.
func (n *Node) TextContent() string {
	if n.IsText() {
		return n.Text
	}
	var sb strings.Builder
	n.Descendants(func(node, _ *Node, _ int) bool {
		if node.IsText() {
			sb.WriteString(node.Text)
		}
		return true
	})
	return sb.String()
}

// DirectText concatenates the text of the node's direct text children, in
// order, skipping every other child.
func (n *Node) DirectText() string {
	var sb strings.Builder
	for _, child := range n.Nodes {
		if child.IsText() {
			sb.WriteString(child.Text)
		}
	}
	return sb.String()
}

// Test whether two nodes represent the same piece of document.
func (n *Node) Eq(other *Node) bool {
	if n == other {
		return true
	}
	if n == nil || other == nil {
		return false
	}
	if !n.SameMarkup(other) || n.Text != other.Text {
		return false
	}
	return nodesEq(n.Nodes, other.Nodes)
}

// Compare the markup (kind, type and data) of this node to those of another.
// Returns true if both have the same markup.
func (n *Node) SameMarkup(other *Node) bool {
	return n.HasMarkup(other.Object, other.Type, other.Data)
}

// Check whether this node's markup correspond to the given kind, type and
// data. A nil data map matches an empty one.
func (n *Node) HasMarkup(object Object, typ string, data Data) bool {
	return n.Object == object && n.Type == typ && n.Data.Eq(data)
}

// Create a new node with the same markup as this node, containing the given
// children (or none).
func (n *Node) Copy(nodes ...*Node) *Node {
	return &Node{Object: n.Object, Type: n.Type, Data: n.Data, Nodes: nodes, Text: n.Text}
}

// Create a copy of this node with the given data instead of its own.
func (n *Node) WithData(data map[string]string) *Node {
	return &Node{Object: n.Object, Type: n.Type, Data: NewData(data), Nodes: n.Nodes, Text: n.Text}
}

func (n *Node) WithText(text string) *Node {
	if text == n.Text {
		return n
	}
	return NewText(text)
}

// Name is the short label used in debug output: the type, or the kind when
// the node has no type.
func (n *Node) Name() string {
	if n.Type != "" {
		return n.Type
	}
	return string(n.Object)
}

// Return a string representation of this node for debugging purposes.
func (n *Node) String() string {
	if n.IsText() {
		return fmt.Sprintf("%q", n.Text)
	}
	name := n.Name()
	if len(n.Data) > 0 {
		name += n.Data.String()
	}
	if len(n.Nodes) > 0 {
		name += "(" + nodesString(n.Nodes) + ")"
	}
	return name
}

func nodesEq(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Eq(b[i]) {
			return false
		}
	}
	return true
}

func nodesString(nodes []*Node) string {
	parts := make([]string, len(nodes))
	for i, child := range nodes {
		parts[i] = child.String()
	}
	return strings.Join(parts, ", ")
}
