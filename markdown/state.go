package markdown

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/shodgson/richtext-go/config"
	"github.com/shodgson/richtext-go/model"
)

// SerializerState is an object used to track state and expose methods related
// to markdown serialization. Instances are passed to node and mark
// serialization functions.
type SerializerState struct {
	Nodes        map[string]NodeSerializerFunc
	Marks        map[string]MarkSerializerSpec
	Config       *config.Config
	Delim        string
	Out          string
	Closed       *model.Node
	InAutoLink   bool
	AtBlockStart bool
	InTightList  bool
	tightLists   bool
	logger       zerolog.Logger
}

// NewSerializerState creates the state for one run of the serializer.
func NewSerializerState(s *Serializer, opts Options) *SerializerState {
	return &SerializerState{
		Nodes:      s.Nodes,
		Marks:      s.Marks,
		Config:     s.config,
		tightLists: opts.TightLists,
		logger:     s.logger,
	}
}

func (s *SerializerState) flushClose(size ...int) {
	if s.Closed == nil {
		return
	}
	s.EnsureNewLine()
	siz := 2
	if len(size) > 0 {
		siz = size[0]
	}
	if siz > 1 {
		delimMin := strings.TrimRightFunc(s.Delim, unicode.IsSpace)
		for i := 1; i < siz; i++ {
			s.Out += delimMin + "\n"
		}
	}
	s.Closed = nil
}

// WrapBlock renders a block, prefixing each line with `delim`, and the first
// line in `firstDelim`. `node` should be the node that is closed at the end of
// the block, and `f` is a function that renders the content of the block.
func (s *SerializerState) WrapBlock(delim string, firstDelim *string, node *model.Node, f func()) {
	old := s.Delim
	d := delim
	if firstDelim != nil {
		d = *firstDelim
	}
	s.Write(d)
	s.Delim += delim
	f()
	s.Delim = old
	s.CloseBlock(node)
}

func (s *SerializerState) atBlank() bool {
	if len(s.Out) == 0 {
		return true
	}
	return s.Out[len(s.Out)-1] == '\n'
}

// EnsureNewLine ensures the current content ends with a newline.
func (s *SerializerState) EnsureNewLine() {
	if !s.atBlank() {
		s.Out += "\n"
	}
}

// Write prepares the state for writing output (closing closed paragraphs,
// adding delimiters, and so on), and then optionally add content
// (unescaped) to the output.
func (s *SerializerState) Write(content ...string) {
	s.flushClose()
	if s.Delim != "" && s.atBlank() {
		s.Out += s.Delim
	}
	if len(content) > 0 {
		s.Out += content[0]
	}
}

// CloseBlock closes the block for the given node.
func (s *SerializerState) CloseBlock(node *model.Node) {
	s.Closed = node
}

var textRegexp1 = regexp.MustCompile(`(^|[^\\])\!$`)

// Text adds the given text to the document. When escape is not `false`, it
// will be escaped.
func (s *SerializerState) Text(text string, escape ...bool) {
	lines := strings.Split(text, "\n")
	esc := true
	if len(escape) > 0 {
		esc = escape[0]
	}
	for i, line := range lines {
		s.Write()
		// Escape exclamation marks in front of links
		if !esc && strings.HasPrefix(line, "[") && textRegexp1.MatchString(s.Out) {
			s.Out = s.Out[:len(s.Out)-1] + "\\!"
		}
		if esc {
			s.Out += s.Esc(line, s.AtBlockStart)
		} else {
			s.Out += line
		}
		if i != len(lines)-1 {
			s.Out += "\n"
		}
	}
}

// Render the given node.
func (s *SerializerState) Render(node, parent *model.Node, index int) {
	key := node.Type
	if node.IsText() {
		key = "text"
	}
	if fn, ok := s.Nodes[key]; ok {
		fn(s, node, parent, index)
		return
	}
	s.logger.Warn().Str("object", string(node.Object)).Str("type", node.Type).Msg("Node not matched")
}

// RenderContent renders the contents of `parent` as block nodes. Runs of
// non-block children are rendered together as inline content.
func (s *SerializerState) RenderContent(parent *model.Node) {
	s.renderBlocks(parent, parent.Nodes)
}

func (s *SerializerState) renderBlocks(parent *model.Node, nodes []*model.Node) {
	var run []*model.Node
	flush := func() {
		if len(run) > 0 {
			s.renderInlines(parent, run)
			s.CloseBlock(run[0])
			run = nil
		}
	}
	for i, node := range nodes {
		if !node.IsBlock() {
			run = append(run, node)
			continue
		}
		flush()
		s.Render(node, parent, i)
	}
	flush()
}

var inlineRegexp = regexp.MustCompile(`^(\s*)(.*?)(\s*)$`)

// RenderInline renders the contents of `parent` as inline content.
func (s *SerializerState) RenderInline(parent *model.Node) {
	s.renderInlines(parent, parent.Nodes)
}

func (s *SerializerState) renderInlines(parent *model.Node, nodes []*model.Node) {
	inlines := model.Flatten(nodes)
	s.AtBlockStart = true
	var active model.MarkSet
	var trailing string

	progress := func(index int) {
		var node *model.Node
		var marks model.MarkSet
		if index < len(inlines) {
			node, marks = inlines[index].Node, inlines[index].Marks
		}

		leading := trailing
		trailing = ""
		// If whitespace has to be expelled from the node, adjust
		// leading and trailing accordingly.
		if node != nil && node.IsText() {
			expel := false
			for _, mark := range marks {
				if info, ok := s.Marks[mark.Type]; ok && info.ExpelEnclosingWhitespace {
					if active.Contains(mark) {
						continue
					}
					if index >= len(inlines)-1 || !inlines[index+1].Marks.Contains(mark) {
						expel = true
						break
					}
				}
			}
			if expel {
				parts := inlineRegexp.FindStringSubmatch(node.Text)
				if len(parts) == 4 {
					leading += parts[1]
					trailing = parts[3]
					if parts[1] != "" || parts[3] != "" {
						if inner := parts[2]; inner != "" {
							node = node.WithText(inner)
						} else {
							node = nil
						}
						if node == nil {
							marks = active
						}
					}
				}
			}
		}

		var inner *model.Node
		if len(marks) > 0 {
			inner = marks[len(marks)-1]
		}
		noEsc := false
		if inner != nil {
			noEsc = s.Marks[inner.Type].NoEscape
		}
		length := len(marks)
		if noEsc {
			length--
		}

		// Try to reorder 'mixable' marks, such as em and strong, which
		// in Markdown may be opened and closed in different order, so
		// that order of the marks for the token matches the order in
		// active.
		for i, mark := range marks {
			if !s.Marks[mark.Type].Mixable {
				break
			}
			for j, other := range active {
				if !s.Marks[other.Type].Mixable {
					break
				}
				if sameMark(mark, other) {
					mixed := make(model.MarkSet, 0, len(marks))
					if i > j {
						mixed = append(mixed, marks[:j]...)
						mixed = append(mixed, mark)
						mixed = append(mixed, marks[j:i]...)
						mixed = append(mixed, marks[i+1:]...)
						marks = mixed
					} else if j > i {
						mixed = append(mixed, marks[:i]...)
						mixed = append(mixed, marks[i+1:j]...)
						mixed = append(mixed, mark)
						mixed = append(mixed, marks[j:]...)
						marks = mixed
					}
					break
				}
			}
		}

		// Find the prefix of the mark set that didn't change
		min := len(marks)
		if l := len(active); l < min {
			min = l
		}
		keep := 0
		for keep < min && sameMark(marks[keep], active[keep]) {
			keep++
		}

		// Close the marks that need to be closed
		for keep < len(active) {
			s.Text(s.MarkString(active[len(active)-1], false, inlines, index), false)
			active = active[:len(active)-1]
		}

		// Output any previously expelled trailing whitespace outside the marks
		if leading != "" {
			s.Text(leading)
		}

		// Open the marks that need to be opened
		if node != nil {
			for len(active) < length {
				add := marks[len(active)]
				active = append(active, add)
				s.Text(s.MarkString(add, true, inlines, index), false)
			}

			// Render the node. Special case code marks, since their content
			// may not be escaped.
			if noEsc && node.IsText() {
				s.Text(s.MarkString(inner, true, inlines, index)+node.Text+
					s.MarkString(inner, false, inlines, index+1), false)
			} else {
				s.Render(node, parent, index)
			}
		}
	}

	for i := range inlines {
		progress(i)
	}
	progress(len(inlines))
	s.AtBlockStart = false
}

// RenderList renders a node's content as a list. `delim` should be the extra
// indentation added to all lines except the first in an item, `firstDelim` is
// a function going from an item index to a delimiter for the first line of the
// item.
func (s *SerializerState) RenderList(node *model.Node, delim string, firstDelim func(i int) string) {
	if s.Closed != nil && s.Closed.Type == node.Type {
		s.flushClose(3)
	} else if s.InTightList {
		s.flushClose(1)
	}

	isTight := s.tightLists
	prevTight := s.InTightList
	s.InTightList = isTight
	node.ForEach(func(child *model.Node, i int) {
		if i > 0 && isTight {
			s.flushClose(1)
		}
		first := firstDelim(i)
		s.WrapBlock(delim, &first, node, func() { s.Render(child, node, i) })
	})
	s.InTightList = prevTight
}

var (
	escRegexp1 = regexp.MustCompile("([`*\\\\~\\[\\]])")
	escRegexp2 = regexp.MustCompile(`(\b_)|(_\b)`)
	escRegexp3 = regexp.MustCompile(`^([#\-*+>])`)
	escRegexp4 = regexp.MustCompile(`(\s*\d+)\.`)
)

// Esc escapes the given string so that it can safely appear in Markdown
// content. If `startOfLine` is true, also escape characters that have special
// meaning only at the start of the line.
func (s *SerializerState) Esc(str string, startOfLine ...bool) string {
	start := false
	if len(startOfLine) > 0 {
		start = startOfLine[0]
	}
	str = escRegexp1.ReplaceAllString(str, "\\$1")
	str = escRegexp2.ReplaceAllString(str, "\\_")
	if start {
		str = escRegexp3.ReplaceAllString(str, "\\$1")
		str = escRegexp4.ReplaceAllString(str, "$1\\.")
	}
	return str
}

// MarkString gets the markdown string for a given opening or closing mark.
func (s *SerializerState) MarkString(mark *model.Node, open bool, inlines []model.Inline, index int) string {
	info, ok := s.Marks[mark.Type]
	if !ok {
		s.logger.Warn().Str("type", mark.Type).Msg("Mark not matched")
		return ""
	}
	value := info.Open
	if !open {
		value = info.Close
	}
	switch value := value.(type) {
	case string:
		return value
	case MarkFunc:
		return value(s, mark, inlines, index)
	case func(state *SerializerState, mark *model.Node, inlines []model.Inline, index int) string:
		return value(s, mark, inlines, index)
	}
	return ""
}
