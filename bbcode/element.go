// Package bbcode converts documents to and from bracket-tag markup such as
//
//	[p=yellow]Born in [m=Bernoulli_Jacob]Basel[/m][ref]1[/ref][/p]
//
// The serializer writes markup text directly. The deserializer does not read
// text: it consumes the tree an external markup tokenizer produces, made of
// Element and Text values.
package bbcode

import "sort"

// Content is one entry of a tag's content: either a *Element or a Text.
type Content interface {
	isContent()
}

// Text is a run of raw characters between tags.
type Text string

func (Text) isContent() {}

// Element is a parsed tag with its attributes and content. A flag attribute
// such as the "red" in [p=red] arrives as the key of Attrs; its value is
// irrelevant.
type Element struct {
	Tag     string
	Attrs   map[string]string
	Content []Content
}

func (*Element) isContent() {}

// NewElement creates an element with the given flag attributes as keys.
func NewElement(tag string, flags []string, content ...Content) *Element {
	var attrs map[string]string
	if len(flags) > 0 {
		attrs = make(map[string]string, len(flags))
		for _, f := range flags {
			attrs[f] = ""
		}
	}
	return &Element{Tag: tag, Attrs: attrs, Content: content}
}

// AttrKeys returns the attribute keys in sorted order.
func (e *Element) AttrKeys() []string {
	keys := make([]string, 0, len(e.Attrs))
	for k := range e.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SoleAttr returns the element's only attribute key. ok is false when the
// element has zero or several attributes, or when the only key is empty.
func (e *Element) SoleAttr() (key string, ok bool) {
	if len(e.Attrs) != 1 {
		return "", false
	}
	for k := range e.Attrs {
		key = k
	}
	return key, key != ""
}
