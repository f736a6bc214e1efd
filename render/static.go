package render

import (
	"github.com/rs/zerolog"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/shodgson/richtext-go/config"
	"github.com/shodgson/richtext-go/model"
	"github.com/shodgson/richtext-go/schema"
)

const (
	block  = model.ObjectBlock
	mark   = model.ObjectMark
	inline = model.ObjectInline
)

var headings = []struct {
	typ  string
	atom atom.Atom
}{
	{schema.TypeHeadingOne, atom.H1},
	{schema.TypeHeadingTwo, atom.H2},
	{schema.TypeHeadingThree, atom.H3},
	{schema.TypeHeadingFour, atom.H4},
	{schema.TypeHeadingFive, atom.H5},
	{schema.TypeHeadingSix, atom.H6},
}

// Rules shared by both rule sets.
func commonRules() []Rule {
	var rules []Rule
	for _, h := range headings {
		rules = append(rules, tag(block, h.typ, h.atom))
	}
	return append(rules,
		match(block, schema.TypeParagraph, func(r *Renderer, node *model.Node, children []*html.Node) *html.Node {
			color := dataOr(node, "color", r.cfg.Colors.Background)
			return element(atom.P, []html.Attribute{attr("style", "background-color:"+color)}, children)
		}),
		tag(block, schema.TypeList, atom.Ol),
		tag(block, schema.TypeListItem, atom.Li),
		tag(block, schema.TypeQuote, atom.Blockquote),
		tag(block, schema.TypePreformattedParagraph, atom.Pre),

		tag(mark, schema.TypeBold, atom.B),
		tag(mark, schema.TypeItalic, atom.I),
		tag(mark, schema.TypeUnderline, atom.U),
		tag(mark, schema.TypeCode, atom.Code),
		match(mark, schema.TypeColor, func(r *Renderer, node *model.Node, children []*html.Node) *html.Node {
			color := dataOr(node, "color", r.cfg.Colors.Text)
			return element(atom.Span, []html.Attribute{attr("style", "color:"+color)}, children)
		}),
	)
}

// biographyName is the linked name of an mlink or wlink: its name, or the
// text it wraps.
func biographyName(node *model.Node) string {
	return dataOr(node, "name", node.TextContent())
}

// StaticRules render documents for reading: presentation goes through
// classes and links are real anchors.
func StaticRules() []Rule {
	link := func(typ, class string, href func(cfg *config.Config, node *model.Node) string) Rule {
		return match(mark, typ, func(r *Renderer, node *model.Node, children []*html.Node) *html.Node {
			return element(atom.A, []html.Attribute{attr("class", class), attr("href", href(r.cfg, node))}, children)
		})
	}
	class := func(object model.Object, typ string, a atom.Atom, class string) Rule {
		return tag(object, typ, a, attr("class", class))
	}

	rules := commonRules()
	return append(rules,
		class(block, schema.TypeCenterParagraph, atom.P, "center-paragraph"),
		class(block, schema.TypeIndentParagraph, atom.P, "indent-paragraph"),

		match(mark, schema.TypeLink, func(_ *Renderer, node *model.Node, children []*html.Node) *html.Node {
			return element(atom.A, []html.Attribute{attr("href", dataOr(node, "href", "#"))}, children)
		}),
		class(mark, schema.TypeOverline, atom.Span, "overline"),
		class(mark, schema.TypeSuperscript, atom.Span, "superscript"),
		class(mark, schema.TypeSubscript, atom.Span, "subscript"),
		class(mark, schema.TypeBig, atom.Span, "bigger"),
		class(mark, schema.TypeSmall, atom.Span, "smaller"),
		link(schema.TypeMLink, "mlink", func(cfg *config.Config, node *model.Node) string {
			return cfg.Links.Biographies + biographyName(node)
		}),
		link(schema.TypeWLink, "wlink", func(cfg *config.Config, node *model.Node) string {
			return cfg.Links.Biographies + biographyName(node)
		}),
		link(schema.TypeGlLink, "gllink", func(cfg *config.Config, node *model.Node) string {
			return cfg.Links.Glossary + node.Data.Get("file")
		}),
		link(schema.TypeAcLink, "aclink", func(cfg *config.Config, node *model.Node) string {
			return cfg.Links.Academy + node.Data.Get("name")
		}),

		match(inline, schema.TypeImage, func(_ *Renderer, node *model.Node, _ []*html.Node) *html.Node {
			return element(atom.Img, []html.Attribute{attr("class", "image"), attr("src", node.Data.Get("src"))}, nil)
		}),
		match(inline, schema.TypeReference, func(r *Renderer, node *model.Node, _ []*html.Node) *html.Node {
			num := node.Data.Get("num")
			a := element(atom.A, []html.Attribute{
				attr("href", r.cfg.Links.Reference+num),
				attr("class", "reference"),
			}, []*html.Node{text(num)})
			return element(atom.Span, nil, []*html.Node{text("["), a, text("]")})
		}),
		match(inline, schema.TypeTranslation, func(r *Renderer, node *model.Node, _ []*html.Node) *html.Node {
			return element(atom.A, []html.Attribute{
				attr("href", r.cfg.Links.Translation+node.Data.Get("num")),
				attr("class", "translation"),
			}, []*html.Node{text("Ⓣ")})
		}),
		match(inline, schema.TypeMath, func(r *Renderer, node *model.Node, _ []*html.Node) *html.Node {
			return element(atom.Span, []html.Attribute{attr("class", "math")}, []*html.Node{r.Math(node.Data.Get("math"))})
		}),
		match(inline, schema.TypeAnchor, func(_ *Renderer, node *model.Node, _ []*html.Node) *html.Node {
			return element(atom.Span, []html.Attribute{attr("class", "anchor"), attr("id", node.Data.Get("anchor"))}, nil)
		}),
	)
}

// NewStatic creates a renderer for static pages.
func NewStatic(logger zerolog.Logger, cfg *config.Config, math MathRenderer) *Renderer {
	return NewRenderer(logger, cfg, math, StaticRules())
}
