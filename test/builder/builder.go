// Package builder provides terse constructors for document trees in tests:
//
//	Doc(P("plain ", B("bold")), List(Item(P("one"))))
//
// Builder arguments may be strings (text children), *model.Node (children)
// or map[string]string (the node's data).
package builder

import (
	"fmt"

	"github.com/shodgson/richtext-go/model"
	"github.com/shodgson/richtext-go/schema"
)

type NodeBuilder func(args ...interface{}) *model.Node

func takeArgs(args []interface{}) (map[string]string, []*model.Node) {
	var data map[string]string
	var nodes []*model.Node
	for _, arg := range args {
		switch a := arg.(type) {
		case string:
			nodes = append(nodes, model.NewText(a))
		case *model.Node:
			nodes = append(nodes, a)
		case []*model.Node:
			nodes = append(nodes, a...)
		case map[string]string:
			data = a
		case NodeBuilder:
			nodes = append(nodes, a())
		default:
			panic(fmt.Sprintf("builder: unexpected argument %T", arg))
		}
	}
	return data, nodes
}

func node(spec *schema.Spec) NodeBuilder {
	return func(args ...interface{}) *model.Node {
		data, nodes := takeArgs(args)
		return model.NewNode(spec.Object, spec.Type, data, nodes)
	}
}

// Create a builder for a leaf inline. A single string argument is the
// payload; the node gets no children, as when built by an editor.
func leaf(spec *schema.Spec) func(payload string) *model.Node {
	return func(payload string) *model.Node {
		return model.NewInline(spec.Type, map[string]string{spec.Payload: payload})
	}
}

// Builders returns a node builder for every variant of the schema, keyed by
// type name.
func Builders() map[string]NodeBuilder {
	result := map[string]NodeBuilder{}
	for _, spec := range schema.All() {
		result[spec.Type] = node(spec)
	}
	return result
}

func must(object model.Object, typ string) *schema.Spec {
	spec, ok := schema.Lookup(object, typ)
	if !ok {
		panic("builder: no spec for " + typ)
	}
	return spec
}

// Doc wraps top-level nodes into a fragment.
func Doc(nodes ...*model.Node) model.Fragment {
	return model.NewFragment(nodes...)
}

var out = Builders()

var (
	H1     = out[schema.TypeHeadingOne]
	H2     = out[schema.TypeHeadingTwo]
	H3     = out[schema.TypeHeadingThree]
	H4     = out[schema.TypeHeadingFour]
	H5     = out[schema.TypeHeadingFive]
	H6     = out[schema.TypeHeadingSix]
	P      = out[schema.TypeParagraph]
	List   = out[schema.TypeList]
	Item   = out[schema.TypeListItem]
	Quote  = out[schema.TypeQuote]
	Center = out[schema.TypeCenterParagraph]
	Ind    = out[schema.TypeIndentParagraph]
	Pre    = out[schema.TypePreformattedParagraph]

	URL   = out[schema.TypeLink]
	B     = out[schema.TypeBold]
	I     = out[schema.TypeItalic]
	U     = out[schema.TypeUnderline]
	Ovl   = out[schema.TypeOverline]
	Sup   = out[schema.TypeSuperscript]
	Sub   = out[schema.TypeSubscript]
	M     = out[schema.TypeMLink]
	W     = out[schema.TypeWLink]
	Gl    = out[schema.TypeGlLink]
	Ac    = out[schema.TypeAcLink]
	Color = out[schema.TypeColor]
	Big   = out[schema.TypeBig]
	Small = out[schema.TypeSmall]
	Code  = out[schema.TypeCode]

	Img    = leaf(must(model.ObjectInline, schema.TypeImage))
	Ref    = leaf(must(model.ObjectInline, schema.TypeReference))
	T      = leaf(must(model.ObjectInline, schema.TypeTranslation))
	Math   = leaf(must(model.ObjectInline, schema.TypeMath))
	Anchor = leaf(must(model.ObjectInline, schema.TypeAnchor))
)
