package bbcode

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/shodgson/richtext-go/model"
	"github.com/shodgson/richtext-go/schema"
)

// Recurse converts a tag's content into document nodes. Rules call it for
// their children so that they stay agnostic of how the walk is done.
type Recurse func(content []Content) ([]*model.Node, error)

// A rule rebuilds one document variant from an element.
type rule func(el *Element, next Recurse) (*model.Node, error)

// Deserializer rebuilds documents from tokenized markup. It holds no state
// between calls and may be shared.
type Deserializer struct {
	logger zerolog.Logger
	rules  map[schema.Partition]map[string]rule

	// Report, when set, receives every tag that was skipped, after it has
	// been logged.
	Report func(err error)
	// SkipMalformed makes Deserialize drop elements with malformed
	// attributes, reporting them, instead of failing.
	SkipMalformed bool
}

// NewDeserializer creates a deserializer logging to the given logger.
func NewDeserializer(logger zerolog.Logger) *Deserializer {
	d := &Deserializer{
		logger: logger.With().Str("component", "bbcode.deserializer").Logger(),
		rules:  map[schema.Partition]map[string]rule{},
	}
	for _, p := range schema.Partitions {
		d.rules[p] = map[string]rule{}
		for _, tag := range schema.TagsIn(p) {
			spec, _ := schema.LookupTag(p, tag)
			d.rules[p][tag] = d.ruleFor(spec)
		}
	}
	return d
}

// DefaultDeserializer logs to the global zerolog logger.
var DefaultDeserializer = NewDeserializer(log.Logger)

func (d *Deserializer) ruleFor(spec *schema.Spec) rule {
	switch {
	case spec.IsLeaf():
		return func(el *Element, next Recurse) (*model.Node, error) {
			nodes, err := children(el, next)
			if err != nil {
				return nil, err
			}
			// Only the direct text children make up the payload.
			leaf := model.NewInline(spec.Type, nil, nodes...)
			return leaf.WithData(map[string]string{spec.Payload: leaf.DirectText()}), nil
		}
	case spec.Type == schema.TypeList:
		return func(el *Element, next Recurse) (*model.Node, error) {
			nodes, err := children(el, next)
			if err != nil {
				return nil, err
			}
			list := model.NewBlock(spec.Type, nil)
			var items []*model.Node
			for _, child := range nodes {
				if schema.Allows(list, child) {
					items = append(items, child)
				} else {
					d.logger.Debug().Str("tag", el.Tag).Str("child", child.Name()).Msg("Dropping list child")
				}
			}
			return model.NewBlock(spec.Type, nil, items...), nil
		}
	}
	return func(el *Element, next Recurse) (*model.Node, error) {
		data, err := d.attrData(spec, el)
		if err != nil {
			return nil, err
		}
		nodes, err := children(el, next)
		if err != nil {
			return nil, err
		}
		return model.NewNode(spec.Object, spec.Type, data, nodes), nil
	}
}

// attrData reads the variant's attribute from the element's flag attribute.
// An optional attribute is read only when the element has exactly one
// attribute key, otherwise the data is empty. A required attribute without
// exactly one key is an error.
func (d *Deserializer) attrData(spec *schema.Spec, el *Element) (map[string]string, error) {
	switch spec.Mode {
	case schema.AttrOptional:
		if key, ok := el.SoleAttr(); ok {
			return map[string]string{spec.Attr: key}, nil
		}
		if len(el.Attrs) > 1 {
			d.logger.Debug().Str("tag", el.Tag).Strs("attributes", el.AttrKeys()).Msg("Ignoring attributes")
		}
	case schema.AttrRequired:
		key, ok := el.SoleAttr()
		if !ok {
			return nil, &MalformedAttributeError{Tag: el.Tag, Attr: spec.Attr, Count: len(el.Attrs)}
		}
		return map[string]string{spec.Attr: key}, nil
	}
	return nil, nil
}

// DeserializeIn rebuilds el using only the rules of one partition. When the
// partition has no rule for the tag the result is an *UnknownTagError.
func (d *Deserializer) DeserializeIn(p schema.Partition, el *Element, next Recurse) (*model.Node, error) {
	r, ok := d.rules[p][el.Tag]
	if !ok {
		return nil, &UnknownTagError{Tag: el.Tag, Partition: p.String()}
	}
	if next == nil {
		next = d.recurseFor(p, el.Tag)
	}
	return r(el, next)
}

// DeserializeElement rebuilds el, trying block, mark and inline rules in
// turn. A tag none of them knows gives an *UnknownTagError. When next is nil
// the children are converted with Deserialize.
func (d *Deserializer) DeserializeElement(el *Element, next Recurse) (*model.Node, error) {
	for _, p := range schema.Partitions {
		if _, ok := d.rules[p][el.Tag]; ok {
			return d.DeserializeIn(p, el, next)
		}
	}
	return nil, &UnknownTagError{Tag: el.Tag}
}

// Deserialize converts a content sequence. Raw text becomes text nodes.
// Whitespace-only runs containing a line break are layout between tags and
// are dropped, but only from sequences holding block content; inside
// preformatted paragraphs and next to inline content they are kept. Unknown
// tags are reported and skipped. A malformed attribute aborts with a
// *MalformedAttributeError unless SkipMalformed is set.
func (d *Deserializer) Deserialize(content []Content) ([]*model.Node, error) {
	return d.deserialize(content, false)
}

// deserializeVerbatim converts content keeping every text run.
func (d *Deserializer) deserializeVerbatim(content []Content) ([]*model.Node, error) {
	return d.deserialize(content, true)
}

// recurseFor is the default recursion for the children of a tag.
func (d *Deserializer) recurseFor(p schema.Partition, tag string) Recurse {
	if spec, ok := schema.LookupTag(p, tag); ok && spec.Type == schema.TypePreformattedParagraph {
		return d.deserializeVerbatim
	}
	return d.Deserialize
}

func (d *Deserializer) deserialize(content []Content, verbatim bool) ([]*model.Node, error) {
	var nodes []*model.Node
	layout := map[int]bool{}
	for _, c := range content {
		switch c := c.(type) {
		case Text:
			if !verbatim && isLayout(string(c)) {
				layout[len(nodes)] = true
			}
			nodes = append(nodes, model.NewText(string(c)))
		case *Element:
			if c == nil {
				continue
			}
			node, err := d.DeserializeElement(c, nil)
			if err != nil {
				var unknown *UnknownTagError
				var malformed *MalformedAttributeError
				switch {
				case errors.As(err, &unknown) && unknown.Tag == c.Tag:
					d.report(err)
					continue
				case errors.As(err, &malformed) && d.SkipMalformed:
					d.report(err)
					continue
				}
				return nil, err
			}
			nodes = append(nodes, node)
		}
	}
	if len(layout) == 0 || !holdsBlocks(nodes, layout) {
		return nodes, nil
	}
	kept := nodes[:0]
	for i, node := range nodes {
		if !layout[i] {
			kept = append(kept, node)
		}
	}
	return kept, nil
}

// holdsBlocks reports whether a sequence is block content: at least one
// block and nothing else besides layout text.
func holdsBlocks(nodes []*model.Node, layout map[int]bool) bool {
	blocks := 0
	for i, node := range nodes {
		switch {
		case layout[i]:
		case node.IsBlock():
			blocks++
		default:
			return false
		}
	}
	return blocks > 0
}

// DeserializeFragment converts a whole tokenized document.
func (d *Deserializer) DeserializeFragment(content []Content) (model.Fragment, error) {
	nodes, err := d.Deserialize(content)
	if err != nil {
		return model.Fragment{}, err
	}
	return model.NewFragment(nodes...), nil
}

// children converts the element's content, locating any error inside it.
func children(el *Element, next Recurse) ([]*model.Node, error) {
	nodes, err := next(el.Content)
	if err != nil {
		return nil, fmt.Errorf("in [%s]: %w", el.Tag, err)
	}
	return nodes, nil
}

func isLayout(s string) bool {
	return strings.TrimSpace(s) == "" && strings.ContainsAny(s, "\r\n")
}

func (d *Deserializer) report(err error) {
	switch err.(type) {
	case *MalformedAttributeError:
		d.logger.Error().Err(err).Msg("Skipping malformed tag")
	default:
		d.logger.Warn().Err(err).Msg("Skipping unknown tag")
	}
	if d.Report != nil {
		d.Report(err)
	}
}
