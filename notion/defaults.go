package notion

import (
	"strings"

	"github.com/dstotijn/go-notion"

	"github.com/shodgson/richtext-go/model"
	"github.com/shodgson/richtext-go/schema"
)

// Colour names Notion knows. Anything else falls back to the default.
var colors = map[string]bool{
	"gray": true, "brown": true, "orange": true, "yellow": true, "green": true,
	"blue": true, "purple": true, "pink": true, "red": true,
}

// ColorFor maps a CSS colour name to a Notion colour.
func ColorFor(css string, background bool) notion.Color {
	name := strings.ToLower(strings.TrimSpace(css))
	if name == "grey" {
		name = "gray"
	}
	if !colors[name] {
		return notion.ColorDefault
	}
	if background {
		name += "_background"
	}
	return notion.Color(name)
}

func paragraph(s *Serializer, node *model.Node) []notion.Block {
	c := s.RichText(node.Nodes)
	p := notion.ParagraphBlock{RichText: c.RichText}
	if color, ok := node.Data.Lookup("color"); ok {
		p.Color = ColorFor(color, true)
	}
	return append([]notion.Block{p}, c.Trailing...)
}

func heading(level int) BlockFunc {
	return func(s *Serializer, node *model.Node) []notion.Block {
		c := s.RichText(node.Nodes)
		var h notion.Block
		switch level {
		case 1:
			h = notion.Heading1Block{RichText: c.RichText}
		case 2:
			h = notion.Heading2Block{RichText: c.RichText}
		default:
			h = notion.Heading3Block{RichText: c.RichText}
		}
		return append([]notion.Block{h}, c.Trailing...)
	}
}

func listItem(s *Serializer, node *model.Node) []notion.Block {
	lead, rest := Lead(node)
	c := s.RichText(lead)
	children := append(c.Trailing, s.SerializeBlocks(rest)...)
	return []notion.Block{notion.NumberedListItemBlock{RichText: c.RichText, Children: children}}
}

var plainText = "plain text"

// DefaultBlocks project the block variants of the schema. Notion has three
// heading levels; deeper headings become the third.
var DefaultBlocks = map[string]BlockFunc{
	schema.TypeHeadingOne:   heading(1),
	schema.TypeHeadingTwo:   heading(2),
	schema.TypeHeadingThree: heading(3),
	schema.TypeHeadingFour:  heading(4),
	schema.TypeHeadingFive:  heading(5),
	schema.TypeHeadingSix:   heading(6),

	schema.TypeParagraph:       paragraph,
	schema.TypeCenterParagraph: paragraph,
	schema.TypeIndentParagraph: paragraph,

	schema.TypeList: func(s *Serializer, node *model.Node) []notion.Block {
		var items []notion.Block
		node.ForEach(func(child *model.Node, _ int) {
			if child.Type == schema.TypeListItem {
				items = append(items, listItem(s, child)...)
				return
			}
			items = append(items, s.SerializeBlock(child)...)
		})
		return items
	},
	schema.TypeListItem: listItem,
	schema.TypeQuote: func(s *Serializer, node *model.Node) []notion.Block {
		lead, rest := Lead(node)
		c := s.RichText(lead)
		children := append(c.Trailing, s.SerializeBlocks(rest)...)
		return []notion.Block{notion.QuoteBlock{RichText: c.RichText, Children: children}}
	},
	schema.TypePreformattedParagraph: func(s *Serializer, node *model.Node) []notion.Block {
		var c Content
		s.Text(node.TextContent(), nil, &c)
		return []notion.Block{notion.CodeBlock{RichText: c.RichText, Language: &plainText}}
	},
}

// DefaultInlines project text and the leaf inlines of the schema.
var DefaultInlines = map[string]InlineFunc{
	"text": func(s *Serializer, leaf model.Inline, c *Content) {
		s.Text(leaf.Node.Text, leaf.Marks, c)
	},
	schema.TypeMath: func(s *Serializer, leaf model.Inline, c *Content) {
		expr := leaf.Node.Data.Get("math")
		c.RichText = append(c.RichText, s.annotate(notion.RichText{
			Type:      notion.RichTextTypeEquation,
			PlainText: expr,
			Equation:  &notion.Equation{Expression: expr},
		}, leaf.Marks))
	},
	schema.TypeReference: func(s *Serializer, leaf model.Inline, c *Content) {
		s.Text("["+leaf.Node.Data.Get("num")+"]", leaf.Marks, c)
	},
	schema.TypeImage: func(s *Serializer, leaf model.Inline, c *Content) {
		src, ok := s.Resolve(leaf.Node.Data.Get("src"))
		if !ok {
			s.logger.Debug().Str("src", leaf.Node.Data.Get("src")).Msg("Image without absolute source dropped")
			return
		}
		c.Trailing = append(c.Trailing, notion.ImageBlock{
			Type:     notion.FileTypeExternal,
			External: &notion.FileExternal{URL: src},
		})
	},
	// Translation markers and anchors only make sense on the site.
	schema.TypeTranslation: func(*Serializer, model.Inline, *Content) {},
	schema.TypeAnchor:      func(*Serializer, model.Inline, *Content) {},
}

func link(href func(s *Serializer, mark *model.Node) string) MarkFunc {
	return func(s *Serializer, mark *model.Node, rt *notion.RichText) {
		path := href(s, mark)
		url, ok := s.Resolve(path)
		if !ok {
			s.logger.Debug().Str("type", mark.Type).Str("href", path).Msg("Relative link dropped")
			return
		}
		rt.HRef = &url
		if rt.Text != nil {
			rt.Text.Link = &notion.Link{URL: url}
		}
	}
}

func biographyName(mark *model.Node) string {
	if name, ok := mark.Data.Lookup("name"); ok {
		return name
	}
	return mark.TextContent()
}

func none(*Serializer, *model.Node, *notion.RichText) {}

// DefaultMarks project the mark variants of the schema.
var DefaultMarks = map[string]MarkFunc{
	schema.TypeBold:      func(_ *Serializer, _ *model.Node, rt *notion.RichText) { rt.Annotations.Bold = true },
	schema.TypeItalic:    func(_ *Serializer, _ *model.Node, rt *notion.RichText) { rt.Annotations.Italic = true },
	schema.TypeUnderline: func(_ *Serializer, _ *model.Node, rt *notion.RichText) { rt.Annotations.Underline = true },
	schema.TypeCode:      func(_ *Serializer, _ *model.Node, rt *notion.RichText) { rt.Annotations.Code = true },
	schema.TypeColor: func(_ *Serializer, mark *model.Node, rt *notion.RichText) {
		if color, ok := mark.Data.Lookup("color"); ok {
			rt.Annotations.Color = ColorFor(color, false)
		}
	},

	schema.TypeLink: link(func(_ *Serializer, mark *model.Node) string {
		href, ok := mark.Data.Lookup("href")
		if !ok {
			return "#"
		}
		return href
	}),
	schema.TypeMLink: link(func(s *Serializer, mark *model.Node) string {
		return s.config.Links.Biographies + biographyName(mark)
	}),
	schema.TypeWLink: link(func(s *Serializer, mark *model.Node) string {
		return s.config.Links.Biographies + biographyName(mark)
	}),
	schema.TypeGlLink: link(func(s *Serializer, mark *model.Node) string {
		return s.config.Links.Glossary + mark.Data.Get("file")
	}),
	schema.TypeAcLink: link(func(s *Serializer, mark *model.Node) string {
		return s.config.Links.Academy + mark.Data.Get("name")
	}),

	schema.TypeOverline:    none,
	schema.TypeSuperscript: none,
	schema.TypeSubscript:   none,
	schema.TypeBig:         none,
	schema.TypeSmall:       none,
}
