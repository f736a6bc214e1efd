package bbcode

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/shodgson/richtext-go/model"
	"github.com/shodgson/richtext-go/schema"
)

// Serializer writes documents as bracket-tag markup. It holds no state
// between calls and may be shared.
type Serializer struct {
	logger zerolog.Logger
	// Report, when set, receives every problem met while serializing, after
	// it has been logged. Problems never stop serialization.
	Report func(err error)
}

// NewSerializer creates a serializer logging to the given logger.
func NewSerializer(logger zerolog.Logger) *Serializer {
	return &Serializer{logger: logger.With().Str("component", "bbcode.serializer").Logger()}
}

// DefaultSerializer logs to the global zerolog logger.
var DefaultSerializer = NewSerializer(log.Logger)

// Serialize writes the given nodes one after the other.
//
// A node with no markup form is reported as an *UnknownNodeError and
// contributes nothing, while its siblings are still written. A gllink or
// aclink mark without its required value is reported as a
// *MalformedAttributeError and written as a bare tag so its content is kept.
func (s *Serializer) Serialize(nodes ...*model.Node) string {
	var sb strings.Builder
	for _, node := range nodes {
		sb.WriteString(s.SerializeNode(node))
	}
	return sb.String()
}

// SerializeFragment writes a whole document.
func (s *Serializer) SerializeFragment(f model.Fragment) string {
	return s.Serialize(f.Content...)
}

// SerializeNode writes one node. Children are written first and the result
// is wrapped in the node's tags.
func (s *Serializer) SerializeNode(node *model.Node) string {
	if node == nil {
		s.report(&UnknownNodeError{})
		return ""
	}
	if node.IsText() {
		return node.Text
	}
	spec, ok := schema.SpecOf(node)
	if !ok {
		s.report(&UnknownNodeError{Object: node.Object, Type: node.Type})
		return ""
	}
	if spec.IsLeaf() {
		return s.openTag(spec, node) + node.Data.Get(spec.Payload) + closeTag(spec)
	}
	return s.openTag(spec, node) + s.Serialize(node.Nodes...) + closeTag(spec)
}

func (s *Serializer) openTag(spec *schema.Spec, node *model.Node) string {
	switch spec.Mode {
	case schema.AttrOptional:
		if value, ok := node.Data.Lookup(spec.Attr); ok {
			return "[" + spec.Tag + "=" + value + "]"
		}
	case schema.AttrRequired:
		if value, ok := node.Data.Lookup(spec.Attr); ok {
			return "[" + spec.Tag + "=" + value + "]"
		}
		s.report(&MalformedAttributeError{Tag: spec.Tag, Attr: spec.Attr})
	}
	return "[" + spec.Tag + "]"
}

func closeTag(spec *schema.Spec) string {
	return "[/" + spec.Tag + "]"
}

func (s *Serializer) report(err error) {
	switch err.(type) {
	case *MalformedAttributeError:
		s.logger.Error().Err(err).Msg("Malformed node")
	default:
		s.logger.Warn().Err(err).Msg("Node not matched")
	}
	if s.Report != nil {
		s.Report(err)
	}
}
