// Package notion projects documents to Notion page content: a list of
// blocks ready to append to a page through the Notion API.
//
// Blocks map onto the closest Notion block type. Marks fold into rich text
// annotations and links; decorations Notion has no form for keep their text
// only.
package notion

import (
	"strings"
	"unicode/utf8"

	"github.com/dstotijn/go-notion"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/shodgson/richtext-go/config"
	"github.com/shodgson/richtext-go/model"
	"github.com/shodgson/richtext-go/schema"
)

// Notion refuses rich text objects longer than this.
const maxTextLength = 2000

// BlockFunc turns a block node into Notion blocks.
type BlockFunc func(s *Serializer, node *model.Node) []notion.Block

// InlineFunc adds a leaf of inline content, wrapped in marks, to c.
type InlineFunc func(s *Serializer, leaf model.Inline, c *Content)

// MarkFunc applies a mark to a rich text object.
type MarkFunc func(s *Serializer, mark *model.Node, rt *notion.RichText)

// Content is the result of projecting a run of inline content. Blocks that
// cannot live inside rich text, such as images, follow the block holding
// the text.
type Content struct {
	RichText []notion.RichText
	Trailing []notion.Block
}

type Serializer struct {
	Blocks  map[string]BlockFunc
	Inlines map[string]InlineFunc
	Marks   map[string]MarkFunc
	config  *config.Config
	logger  zerolog.Logger
}

// NewSerializer creates a serializer from the given tables. Text leaves are
// looked up in inlines under "text". A nil config means config.Default().
func NewSerializer(
	logger zerolog.Logger,
	cfg *config.Config,
	blocks map[string]BlockFunc,
	inlines map[string]InlineFunc,
	marks map[string]MarkFunc,
) *Serializer {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Serializer{
		Blocks:  blocks,
		Inlines: inlines,
		Marks:   marks,
		config:  cfg,
		logger:  logger.With().Str("component", "notion").Logger(),
	}
}

// New creates a serializer for the document schema.
func New(logger zerolog.Logger, cfg *config.Config) *Serializer {
	return NewSerializer(logger, cfg, DefaultBlocks, DefaultInlines, DefaultMarks)
}

// CreatePageContent projects a document with a default serializer.
func CreatePageContent(f model.Fragment) []notion.Block {
	return New(log.Logger, nil).SerializePage(f)
}

// SerializePage projects the top-level nodes of a document. Inline content
// at the top level becomes a paragraph.
func (s *Serializer) SerializePage(f model.Fragment) []notion.Block {
	return s.SerializeBlocks(f.Content)
}

// SerializeBlocks projects a sequence of nodes. Runs of non-block nodes are
// gathered into paragraphs.
func (s *Serializer) SerializeBlocks(nodes []*model.Node) []notion.Block {
	var result []notion.Block
	var run []*model.Node
	flush := func() {
		if len(run) > 0 {
			c := s.RichText(run)
			result = append(result, notion.ParagraphBlock{RichText: c.RichText})
			result = append(result, c.Trailing...)
			run = nil
		}
	}
	for _, node := range nodes {
		if !node.IsBlock() {
			run = append(run, node)
			continue
		}
		flush()
		result = append(result, s.SerializeBlock(node)...)
	}
	flush()
	return result
}

// SerializeBlock projects one block node.
func (s *Serializer) SerializeBlock(node *model.Node) []notion.Block {
	if fn, ok := s.Blocks[node.Type]; ok {
		return fn(s, node)
	}
	s.logger.Warn().Str("object", string(node.Object)).Str("type", node.Type).Msg("Node not matched")
	return nil
}

// RichText projects inline content.
func (s *Serializer) RichText(nodes []*model.Node) Content {
	var c Content
	for _, leaf := range model.Flatten(nodes) {
		key := leaf.Node.Type
		if leaf.Node.IsText() {
			key = "text"
		}
		fn, ok := s.Inlines[key]
		if !ok {
			s.logger.Warn().Str("object", string(leaf.Node.Object)).Str("type", key).Msg("Node not matched")
			continue
		}
		fn(s, leaf, &c)
	}
	return c
}

// Text appends plain text carrying the given marks, split in pieces Notion
// accepts.
func (s *Serializer) Text(text string, marks model.MarkSet, c *Content) {
	for _, piece := range split(text, maxTextLength) {
		c.RichText = append(c.RichText, s.annotate(notion.RichText{
			Type:      notion.RichTextTypeText,
			PlainText: piece,
			Text:      &notion.Text{Content: piece},
		}, marks))
	}
}

func (s *Serializer) annotate(rt notion.RichText, marks model.MarkSet) notion.RichText {
	rt.Annotations = &notion.Annotations{Color: notion.ColorDefault}
	for _, mark := range marks {
		fn, ok := s.Marks[mark.Type]
		if !ok {
			s.logger.Warn().Str("type", mark.Type).Msg("Mark not matched")
			continue
		}
		fn(s, mark, &rt)
	}
	if *rt.Annotations == (notion.Annotations{Color: notion.ColorDefault}) {
		rt.Annotations = nil
	}
	return rt
}

// Resolve turns a site path into a URL Notion accepts. Paths are joined to
// the configured site; without one they cannot be linked.
func (s *Serializer) Resolve(path string) (string, bool) {
	if strings.Contains(path, "://") || strings.HasPrefix(path, "mailto:") {
		return path, true
	}
	site := s.config.Links.Site
	if site == "" {
		return "", false
	}
	if strings.HasPrefix(path, "#") {
		return site + path, true
	}
	return strings.TrimSuffix(site, "/") + "/" + strings.TrimPrefix(path, "/"), true
}

// split cuts text into pieces of at most size runes.
func split(text string, size int) []string {
	if utf8.RuneCountInString(text) <= size {
		return []string{text}
	}
	var pieces []string
	for text != "" {
		end, n := 0, 0
		for end < len(text) && n < size {
			_, width := utf8.DecodeRuneInString(text[end:])
			end += width
			n++
		}
		pieces = append(pieces, text[:end])
		text = text[end:]
	}
	return pieces
}

// Lead splits the children of a container block into the inline content
// written on the container itself and the blocks nested under it. Leading
// inline children are the lead; otherwise a first paragraph is.
func Lead(node *model.Node) ([]*model.Node, []*model.Node) {
	i := 0
	for i < len(node.Nodes) && !node.Nodes[i].IsBlock() {
		i++
	}
	if i > 0 {
		return node.Nodes[:i], node.Nodes[i:]
	}
	if len(node.Nodes) > 0 && isParagraph(node.Nodes[0]) {
		return node.Nodes[0].Nodes, node.Nodes[1:]
	}
	return nil, node.Nodes
}

func isParagraph(node *model.Node) bool {
	switch node.Type {
	case schema.TypeParagraph, schema.TypeCenterParagraph, schema.TypeIndentParagraph:
		return node.IsBlock()
	}
	return false
}
