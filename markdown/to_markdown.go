// Package markdown projects documents to CommonMark text, for plain-text
// exports and previews. The projection is lossy: colours, alignment and
// decorations have no Markdown form and are dropped while their content is
// kept.
package markdown

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/shodgson/richtext-go/config"
	"github.com/shodgson/richtext-go/model"
	"github.com/shodgson/richtext-go/schema"
)

// NodeSerializerFunc is the function to serialize a node. parent is nil for
// the top-level nodes of a document.
type NodeSerializerFunc func(state *SerializerState, node, parent *model.Node, index int)

// MarkFunc computes the syntax opening or closing a mark. inlines is the
// flattened inline content being written and index the position the syntax
// is written at.
type MarkFunc func(state *SerializerState, mark *model.Node, inlines []model.Inline, index int) string

// MarkSerializerSpec is the serializer info for a mark.
type MarkSerializerSpec struct {
	Open                     interface{} // Can be a string or a MarkFunc
	Close                    interface{} // Can be a string or a MarkFunc
	Mixable                  bool
	ExpelEnclosingWhitespace bool
	NoEscape                 bool
}

// Options tune a single serialization.
type Options struct {
	// TightLists renders list items without blank lines between them.
	TightLists bool
}

// Serializer holds the functions that write a document as
// Markdown/CommonMark text.
type Serializer struct {
	Nodes  map[string]NodeSerializerFunc
	Marks  map[string]MarkSerializerSpec
	config *config.Config
	logger zerolog.Logger
}

// NewSerializer constructs a serializer with the given configuration. The
// `nodes` map should map node types to functions that take a serializer
// state and such a node, and serialize the node. Text nodes are looked up
// under "text".
//
// The `marks` map should hold specs with `Open` and `Close` properties,
// which hold the strings that should appear before and after a piece of text
// marked that way, either directly or as a MarkFunc.
//
// Mark specs can also have a `Mixable` property which, when true, indicates
// that the order in which the mark's opening and closing syntax appears
// relative to other mixable marks can be varied. (For example, you can say
// `**a *b***` and `*a **b***`, but not “ `a *b*` “.)
//
// To disable character escaping in a mark, set `NoEscape`. Such a mark has
// to have the highest precedence (must always be the innermost mark).
//
// The `ExpelEnclosingWhitespace` mark property causes the serializer to move
// enclosing whitespace from inside the marks to outside the marks. This is
// necessary for emphasis marks as CommonMark does not permit enclosing
// whitespace inside emphasis marks, see:
// http://spec.commonmark.org/0.26/#example-330
//
// A nil config means config.Default().
func NewSerializer(
	logger zerolog.Logger,
	cfg *config.Config,
	nodes map[string]NodeSerializerFunc,
	marks map[string]MarkSerializerSpec,
) *Serializer {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Serializer{
		Nodes:  nodes,
		Marks:  marks,
		config: cfg,
		logger: logger.With().Str("component", "markdown").Logger(),
	}
}

// New creates a serializer for the document schema.
func New(logger zerolog.Logger, cfg *config.Config) *Serializer {
	return NewSerializer(logger, cfg, DefaultNodes, DefaultMarks)
}

// Serialize the given document to [CommonMark](http://commonmark.org/).
func (s *Serializer) Serialize(f model.Fragment, options ...Options) string {
	var opts Options
	if len(options) > 0 {
		opts = options[0]
	}
	state := NewSerializerState(s, opts)
	state.renderBlocks(nil, f.Content)
	return state.Out
}

var backticksRegexp = regexp.MustCompile("`{3,}")

func heading(level int) NodeSerializerFunc {
	return func(state *SerializerState, node, _parent *model.Node, _index int) {
		state.Write(strings.Repeat("#", level) + " ")
		state.RenderInline(node)
		state.CloseBlock(node)
	}
}

func paragraph(state *SerializerState, node, _parent *model.Node, _index int) {
	state.RenderContent(node)
	state.CloseBlock(node)
}

func omit(_state *SerializerState, _node, _parent *model.Node, _index int) {}

// DefaultNodes serialize the block and inline variants of the schema.
var DefaultNodes = map[string]NodeSerializerFunc{
	schema.TypeHeadingOne:   heading(1),
	schema.TypeHeadingTwo:   heading(2),
	schema.TypeHeadingThree: heading(3),
	schema.TypeHeadingFour:  heading(4),
	schema.TypeHeadingFive:  heading(5),
	schema.TypeHeadingSix:   heading(6),

	schema.TypeParagraph:       paragraph,
	schema.TypeCenterParagraph: paragraph,
	schema.TypeIndentParagraph: paragraph,

	schema.TypeQuote: func(state *SerializerState, node, _parent *model.Node, _index int) {
		state.WrapBlock("> ", nil, node, func() { state.RenderContent(node) })
	},
	schema.TypePreformattedParagraph: func(state *SerializerState, node, _parent *model.Node, _index int) {
		fence := "```"
		content := node.TextContent()
		matches := backticksRegexp.FindAllString(content, -1)
		for _, backticks := range matches {
			if len(backticks) >= len(fence) {
				fence = backticks + "`"
			}
		}

		state.Write(fence + "\n")
		state.Text(content, false)
		state.EnsureNewLine()
		state.Write(fence)
		state.CloseBlock(node)
	},
	schema.TypeList: func(state *SerializerState, node, _parent *model.Node, _index int) {
		maxW := len(fmt.Sprintf("%d", node.ChildCount()))
		space := strings.Repeat(" ", maxW+2)
		state.RenderList(node, space, func(i int) string {
			nStr := fmt.Sprintf("%d", 1+i)
			return strings.Repeat(" ", maxW-len(nStr)) + nStr + ". "
		})
	},
	schema.TypeListItem: func(state *SerializerState, node, _parent *model.Node, _index int) {
		state.RenderContent(node)
	},

	schema.TypeImage: func(state *SerializerState, node, _parent *model.Node, _index int) {
		state.Write(fmt.Sprintf("![](%s)", escapeURL(node.Data.Get("src"))))
	},
	schema.TypeReference: func(state *SerializerState, node, _parent *model.Node, _index int) {
		state.Text("[" + node.Data.Get("num") + "]")
	},
	schema.TypeMath: func(state *SerializerState, node, _parent *model.Node, _index int) {
		state.Text("$"+node.Data.Get("math")+"$", false)
	},
	// Translation markers and anchors only make sense on the site.
	schema.TypeTranslation: omit,
	schema.TypeAnchor:      omit,

	"text": func(state *SerializerState, node, _parent *model.Node, _index int) {
		state.Text(node.Text, !state.InAutoLink)
	},
}

// link writes a mark as an inline link to the URL computed by href.
func link(href func(cfg *config.Config, mark *model.Node) string) MarkSerializerSpec {
	return MarkSerializerSpec{
		Open: "[",
		Close: MarkFunc(func(state *SerializerState, mark *model.Node, _ []model.Inline, _ int) string {
			return "](" + escapeURL(href(state.Config, mark)) + ")"
		}),
		Mixable: true,
	}
}

// Marks with no Markdown syntax keep their content only.
var transparent = MarkSerializerSpec{Open: "", Close: "", Mixable: true}

// DefaultMarks serialize the mark variants of the schema.
var DefaultMarks = map[string]MarkSerializerSpec{
	schema.TypeItalic: {Open: "*", Close: "*", Mixable: true, ExpelEnclosingWhitespace: true},
	schema.TypeBold:   {Open: "**", Close: "**", Mixable: true, ExpelEnclosingWhitespace: true},
	schema.TypeLink: {
		Open: MarkFunc(func(state *SerializerState, mark *model.Node, inlines []model.Inline, index int) string {
			state.InAutoLink = isPlainURL(mark, inlines, index)
			if state.InAutoLink {
				return "<"
			}
			return "["
		}),
		Close: MarkFunc(func(state *SerializerState, mark *model.Node, _ []model.Inline, _ int) string {
			if state.InAutoLink {
				state.InAutoLink = false
				return ">"
			}
			href, ok := mark.Data.Lookup("href")
			if !ok {
				href = "#"
			}
			return fmt.Sprintf("](%s)", strings.ReplaceAll(escapeURL(href), `"`, `\"`))
		}),
		Mixable: true,
	},
	schema.TypeMLink: link(func(cfg *config.Config, mark *model.Node) string {
		return cfg.Links.Biographies + biographyName(mark)
	}),
	schema.TypeWLink: link(func(cfg *config.Config, mark *model.Node) string {
		return cfg.Links.Biographies + biographyName(mark)
	}),
	schema.TypeGlLink: link(func(cfg *config.Config, mark *model.Node) string {
		return cfg.Links.Glossary + mark.Data.Get("file")
	}),
	schema.TypeAcLink: link(func(cfg *config.Config, mark *model.Node) string {
		return cfg.Links.Academy + mark.Data.Get("name")
	}),
	schema.TypeCode: {
		Open: MarkFunc(func(_state *SerializerState, _mark *model.Node, inlines []model.Inline, index int) string {
			if index < 0 || index >= len(inlines) {
				return "`"
			}
			return backticksFor(inlines[index].Node, -1)
		}),
		Close: MarkFunc(func(_state *SerializerState, _mark *model.Node, inlines []model.Inline, index int) string {
			if index-1 < 0 || index-1 >= len(inlines) {
				return "`"
			}
			return backticksFor(inlines[index-1].Node, 1)
		}),
		NoEscape: true,
	},
	schema.TypeUnderline:   transparent,
	schema.TypeOverline:    transparent,
	schema.TypeSuperscript: transparent,
	schema.TypeSubscript:   transparent,
	schema.TypeColor:       transparent,
	schema.TypeBig:         transparent,
	schema.TypeSmall:       transparent,
}

// DefaultSerializer logs to the global zerolog logger and uses the default
// configuration.
var DefaultSerializer = New(log.Logger, nil)

func biographyName(mark *model.Node) string {
	if name, ok := mark.Data.Lookup("name"); ok {
		return name
	}
	return mark.TextContent()
}

// A link named by its own text is a different link for every text.
func namedByText(mark *model.Node) bool {
	if mark.Type != schema.TypeMLink && mark.Type != schema.TypeWLink {
		return false
	}
	_, ok := mark.Data.Lookup("name")
	return !ok
}

func sameMark(a, b *model.Node) bool {
	return a == b || (a.SameMarkup(b) && !namedByText(a))
}

func escapeURL(url string) string {
	url = strings.ReplaceAll(url, "(", "\\(")
	return strings.ReplaceAll(url, ")", "\\)")
}

func backticksFor(node *model.Node, side int) string {
	length := 0
	if node.IsText() {
		ticks := strings.FieldsFunc(node.Text, func(r rune) bool { return r != '`' })
		for _, t := range ticks {
			if l := len(t); l > length {
				length = l
			}
		}
	}
	result := "`"
	if length > 0 && side > 0 {
		result = " `"
	}
	for i := 0; i < length; i++ {
		result += "`"
	}
	if length > 0 && side < 0 {
		result += " "
	}
	return result
}

func isPlainURL(link *model.Node, inlines []model.Inline, index int) bool {
	href, _ := link.Data.Lookup("href")
	if !strings.Contains(href, ":") {
		return false
	}
	if index >= len(inlines) {
		return true
	}
	content := inlines[index]
	if !content.Node.IsText() || content.Node.Text != href || content.Marks[len(content.Marks)-1] != link {
		return false
	}
	if index == len(inlines)-1 {
		return true
	}
	return !inlines[index+1].Marks.Contains(link)
}
