// Package schema defines the node types of the rich-text document, the
// markup tags they are written with, and which children each of them admits.
//
// Every (object, type) pair of the document model has exactly one Spec. The
// bbcode package builds its serializer and deserializer dispatch tables from
// these specs, so adding a variant here is enough to make it convertible.
package schema

import "github.com/shodgson/richtext-go/model"

// Block types.
const (
	TypeHeadingOne            = "heading-one"
	TypeHeadingTwo            = "heading-two"
	TypeHeadingThree          = "heading-three"
	TypeHeadingFour           = "heading-four"
	TypeHeadingFive           = "heading-five"
	TypeHeadingSix            = "heading-six"
	TypeParagraph             = "paragraph"
	TypeList                  = "list"
	TypeListItem              = "list-item"
	TypeQuote                 = "quote"
	TypeCenterParagraph       = "center-paragraph"
	TypeIndentParagraph       = "indent-paragraph"
	TypePreformattedParagraph = "preformatted-paragraph"
)

// Mark types.
const (
	TypeLink        = "link"
	TypeBold        = "bold"
	TypeItalic      = "italic"
	TypeUnderline   = "underline"
	TypeOverline    = "overline"
	TypeSuperscript = "superscript"
	TypeSubscript   = "subscript"
	TypeMLink       = "mlink"
	TypeWLink       = "wlink"
	TypeGlLink      = "gllink"
	TypeAcLink      = "aclink"
	TypeColor       = "color"
	TypeBig         = "big"
	TypeSmall       = "small"
	TypeCode        = "code"
)

// Inline types.
const (
	TypeImage       = "image"
	TypeReference   = "reference"
	TypeTranslation = "translation"
	TypeMath        = "math"
	TypeAnchor      = "anchor"
)

// AttrMode says how a variant's single attribute is written in markup.
type AttrMode int

const (
	// The variant has no attribute.
	AttrNone AttrMode = iota
	// The attribute may be absent; it is read only when the tag carries
	// exactly one attribute key.
	AttrOptional
	// The attribute must be present; a tag without exactly one attribute key
	// is malformed.
	AttrRequired
)

func (m AttrMode) String() string {
	switch m {
	case AttrOptional:
		return "optional"
	case AttrRequired:
		return "required"
	}
	return "none"
}

// Spec describes one document variant and its markup form.
type Spec struct {
	// Object and Type identify the variant in the document model.
	Object model.Object
	Type   string
	// Tag is the markup tag the variant is written with. Aliases are also
	// accepted when reading.
	Tag     string
	Aliases []string
	// Attr is the data key carried as the tag's flag attribute, as in
	// [url=href] or [p=color].
	Attr string
	Mode AttrMode
	// Payload is set for leaf inlines: the data key holding the text written
	// between the open and close tags.
	Payload string
}

// IsLeaf reports whether the variant is a leaf inline carrying its payload
// as tag content.
func (s *Spec) IsLeaf() bool {
	return s.Payload != ""
}

// Partition is the group of tags the variant belongs to.
func (s *Spec) Partition() Partition {
	return partitionOf(s.Object)
}

// Tags returns the tag and its aliases.
func (s *Spec) Tags() []string {
	return append([]string{s.Tag}, s.Aliases...)
}

func block(typ, tag string) *Spec {
	return &Spec{Object: model.ObjectBlock, Type: typ, Tag: tag}
}

func mark(typ, tag string) *Spec {
	return &Spec{Object: model.ObjectMark, Type: typ, Tag: tag}
}

func leaf(typ, tag, payload string) *Spec {
	return &Spec{Object: model.ObjectInline, Type: typ, Tag: tag, Payload: payload}
}

// Blocks are the specs for block variants.
var Blocks = []*Spec{
	block(TypeHeadingOne, "h1"),
	block(TypeHeadingTwo, "h2"),
	block(TypeHeadingThree, "h3"),
	block(TypeHeadingFour, "h4"),
	block(TypeHeadingFive, "h5"),
	block(TypeHeadingSix, "h6"),

	// A paragraph, optionally with a background color: [p=yellow].
	{Object: model.ObjectBlock, Type: TypeParagraph, Tag: "p", Attr: "color", Mode: AttrOptional},

	// An ordered list. Written as [list], older documents use [ol].
	{Object: model.ObjectBlock, Type: TypeList, Tag: "list", Aliases: []string{"ol"}},
	block(TypeListItem, "item"),

	block(TypeQuote, "quote"),
	block(TypeCenterParagraph, "center"),
	block(TypeIndentParagraph, "ind"),
	block(TypePreformattedParagraph, "pre"),
}

// Marks are the specs for mark variants.
var Marks = []*Spec{
	// An external link: [url=href].
	{Object: model.ObjectMark, Type: TypeLink, Tag: "url", Attr: "href", Mode: AttrOptional},

	mark(TypeBold, "b"),
	mark(TypeItalic, "i"),
	mark(TypeUnderline, "u"),
	mark(TypeOverline, "ovl"),
	mark(TypeSuperscript, "sup"),
	mark(TypeSubscript, "sub"),

	// Biography links. Without a name the linked text is the name.
	{Object: model.ObjectMark, Type: TypeMLink, Tag: "m", Attr: "name", Mode: AttrOptional},
	{Object: model.ObjectMark, Type: TypeWLink, Tag: "w", Attr: "name", Mode: AttrOptional},

	// Glossary and academy links always name their target.
	{Object: model.ObjectMark, Type: TypeGlLink, Tag: "gl", Attr: "file", Mode: AttrRequired},
	{Object: model.ObjectMark, Type: TypeAcLink, Tag: "ac", Attr: "name", Mode: AttrRequired},

	{Object: model.ObjectMark, Type: TypeColor, Tag: "color", Attr: "color", Mode: AttrOptional},

	mark(TypeBig, "big"),
	mark(TypeSmall, "small"),
	mark(TypeCode, "code"),
}

// Inlines are the specs for leaf inline variants.
var Inlines = []*Spec{
	leaf(TypeImage, "img", "src"),
	leaf(TypeReference, "ref", "num"),
	leaf(TypeTranslation, "t", "num"),
	leaf(TypeMath, "math", "math"),
	leaf(TypeAnchor, "anchor", "anchor"),
}

type specKey struct {
	object model.Object
	typ    string
}

var (
	byType = map[specKey]*Spec{}
	byTag  = map[Partition]map[string]*Spec{}
)

func init() {
	for _, group := range [][]*Spec{Blocks, Marks, Inlines} {
		for _, s := range group {
			byType[specKey{s.Object, s.Type}] = s
			p := s.Partition()
			if byTag[p] == nil {
				byTag[p] = map[string]*Spec{}
			}
			for _, tag := range s.Tags() {
				byTag[p][tag] = s
			}
		}
	}
}

// Lookup returns the spec of the given variant.
func Lookup(object model.Object, typ string) (*Spec, bool) {
	s, ok := byType[specKey{object, typ}]
	return s, ok
}

// SpecOf returns the spec of a node's variant.
func SpecOf(node *model.Node) (*Spec, bool) {
	return Lookup(node.Object, node.Type)
}

// LookupTag returns the spec read from the given tag within one partition.
func LookupTag(p Partition, tag string) (*Spec, bool) {
	s, ok := byTag[p][tag]
	return s, ok
}

// All returns every spec: blocks, then marks, then inlines.
func All() []*Spec {
	all := make([]*Spec, 0, len(Blocks)+len(Marks)+len(Inlines))
	all = append(all, Blocks...)
	all = append(all, Marks...)
	return append(all, Inlines...)
}
