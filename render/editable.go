package render

import (
	"github.com/rs/zerolog"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/shodgson/richtext-go/config"
	"github.com/shodgson/richtext-go/model"
	"github.com/shodgson/richtext-go/schema"
)

// Leaf inlines are atoms on the editing surface.
var atomic = []html.Attribute{
	{Key: "contenteditable", Val: "false"},
	{Key: "draggable", Val: "false"},
}

func atomicAttrs(attrs ...html.Attribute) []html.Attribute {
	return append(attrs, atomic...)
}

// EditableRules render documents inside an editor. Presentation is inline
// so it does not depend on a stylesheet, links are coloured spans that do
// not navigate, and leaf inlines cannot be edited or dragged.
func EditableRules() []Rule {
	styled := func(object model.Object, typ string, a atom.Atom, style string) Rule {
		return tag(object, typ, a, attr("style", style))
	}

	rules := commonRules()
	return append(rules,
		styled(block, schema.TypeCenterParagraph, atom.P, "text-align:center"),
		styled(block, schema.TypeIndentParagraph, atom.P, "margin:1em 0 1em 40px"),

		styled(mark, schema.TypeOverline, atom.Span, "text-decoration:overline"),
		styled(mark, schema.TypeSuperscript, atom.Span, "vertical-align:super"),
		styled(mark, schema.TypeSubscript, atom.Span, "vertical-align:sub"),
		styled(mark, schema.TypeBig, atom.Span, "font-size:larger"),
		styled(mark, schema.TypeSmall, atom.Span, "font-size:smaller"),
		styled(mark, schema.TypeLink, atom.Span, "color:#0000ee;text-decoration:underline"),
		styled(mark, schema.TypeMLink, atom.Span, "color:#0000ee;text-decoration:underline"),
		styled(mark, schema.TypeWLink, atom.Span, "color:#0000ee;text-decoration:underline"),
		styled(mark, schema.TypeGlLink, atom.Span, "color:green;text-decoration:underline"),
		styled(mark, schema.TypeAcLink, atom.Span, "color:brown;text-decoration:underline"),

		match(inline, schema.TypeImage, func(_ *Renderer, node *model.Node, _ []*html.Node) *html.Node {
			return element(atom.Img, atomicAttrs(attr("class", "image"), attr("src", node.Data.Get("src"))), nil)
		}),
		match(inline, schema.TypeReference, func(_ *Renderer, node *model.Node, _ []*html.Node) *html.Node {
			return element(atom.Span, atomicAttrs(attr("class", "reference")), []*html.Node{text("[" + node.Data.Get("num") + "]")})
		}),
		match(inline, schema.TypeTranslation, func(_ *Renderer, _ *model.Node, _ []*html.Node) *html.Node {
			return element(atom.Span, atomicAttrs(attr("class", "translation")), []*html.Node{text("Ⓣ")})
		}),
		match(inline, schema.TypeMath, func(r *Renderer, node *model.Node, _ []*html.Node) *html.Node {
			return element(atom.Span, atomicAttrs(attr("class", "math")), []*html.Node{r.Math(node.Data.Get("math"))})
		}),
		match(inline, schema.TypeAnchor, func(_ *Renderer, _ *model.Node, _ []*html.Node) *html.Node {
			return element(atom.Span, atomicAttrs(attr("class", "anchor")), []*html.Node{text("Ⓐ")})
		}),
	)
}

// NewEditable creates a renderer for the editing surface.
func NewEditable(logger zerolog.Logger, cfg *config.Config, math MathRenderer) *Renderer {
	return NewRenderer(logger, cfg, math, EditableRules())
}
