// Package render builds presentational HTML trees from documents.
//
// A Renderer walks the document bottom-up: the children of a node are
// rendered first, then each Rule is tried in order and the first one
// returning a node wins. Two rule sets are provided, one for static pages
// and one for the editing surface.
package render

import (
	"github.com/rs/zerolog"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/shodgson/richtext-go/config"
	"github.com/shodgson/richtext-go/model"
)

// A Rule renders one node, given its already rendered children. It returns
// nil when it does not handle the node.
type Rule func(r *Renderer, node *model.Node, children []*html.Node) *html.Node

// Renderer converts documents to HTML trees. It holds only configuration
// and may be shared.
type Renderer struct {
	logger zerolog.Logger
	cfg    *config.Config
	math   MathRenderer
	rules  []Rule
}

// NewRenderer creates a renderer trying the given rules in order. A nil
// config means config.Default() and a nil math renderer means SourceMath.
func NewRenderer(logger zerolog.Logger, cfg *config.Config, math MathRenderer, rules []Rule) *Renderer {
	if cfg == nil {
		cfg = config.Default()
	}
	if math == nil {
		math = SourceMath
	}
	return &Renderer{
		logger: logger.With().Str("component", "render").Logger(),
		cfg:    cfg,
		math:   math,
		rules:  rules,
	}
}

func (r *Renderer) Config() *config.Config {
	return r.cfg
}

// Render converts a whole document. Nodes that no rule handles are left
// out.
func (r *Renderer) Render(f model.Fragment) []*html.Node {
	return r.renderAll(f.Content)
}

func (r *Renderer) renderAll(nodes []*model.Node) []*html.Node {
	var result []*html.Node
	for _, node := range nodes {
		if rendered := r.RenderNode(node); rendered != nil {
			result = append(result, rendered)
		}
	}
	return result
}

// RenderNode converts one node and its subtree, or returns nil when no rule
// handles it.
func (r *Renderer) RenderNode(node *model.Node) *html.Node {
	if node.IsText() {
		return &html.Node{Type: html.TextNode, Data: node.Text}
	}
	children := r.renderAll(node.Nodes)
	for _, rule := range r.rules {
		if rendered := rule(r, node, children); rendered != nil {
			return rendered
		}
	}
	r.logger.Warn().Str("object", string(node.Object)).Str("type", node.Type).Msg("Node not matched")
	return nil
}

func element(a atom.Atom, attrs []html.Attribute, children []*html.Node) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
	for _, child := range children {
		n.AppendChild(child)
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

// match restricts a rule to one variant.
func match(object model.Object, typ string, f Rule) Rule {
	return func(r *Renderer, node *model.Node, children []*html.Node) *html.Node {
		if node.Object != object || node.Type != typ {
			return nil
		}
		return f(r, node, children)
	}
}

// tag renders the variant as a plain element around its children.
func tag(object model.Object, typ string, a atom.Atom, attrs ...html.Attribute) Rule {
	return match(object, typ, func(_ *Renderer, _ *model.Node, children []*html.Node) *html.Node {
		return element(a, append([]html.Attribute(nil), attrs...), children)
	})
}

// dataOr returns the node's value for key, or def when it has none.
func dataOr(node *model.Node, key, def string) string {
	if v, ok := node.Data.Lookup(key); ok {
		return v
	}
	return def
}
