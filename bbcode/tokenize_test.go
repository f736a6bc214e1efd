package bbcode_test

import (
	"strings"

	. "github.com/shodgson/richtext-go/bbcode"
	"github.com/shodgson/richtext-go/schema"
)

// tokenize is a small markup reader for tests. It recognises [tag],
// [tag=value] and [/tag] for known tags only; any other bracketed text stays
// raw. A value becomes the element's only flag attribute.
func tokenize(src string) []Content {
	root := &Element{}
	stack := []*Element{root}
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			top := stack[len(stack)-1]
			top.Content = append(top.Content, Text(text.String()))
			text.Reset()
		}
	}

	for len(src) > 0 {
		if src[0] == '[' {
			if end := strings.IndexByte(src, ']'); end > 0 {
				inner := src[1:end]
				if name, ok := strings.CutPrefix(inner, "/"); ok {
					if len(stack) > 1 && stack[len(stack)-1].Tag == name {
						flush()
						stack = stack[:len(stack)-1]
						src = src[end+1:]
						continue
					}
				} else if name, value, hasValue := strings.Cut(inner, "="); schema.IsTag(name) {
					flush()
					var flags []string
					if hasValue {
						flags = []string{value}
					}
					el := NewElement(name, flags)
					top := stack[len(stack)-1]
					top.Content = append(top.Content, el)
					stack = append(stack, el)
					src = src[end+1:]
					continue
				}
			}
		}
		text.WriteByte(src[0])
		src = src[1:]
	}
	flush()
	return root.Content
}
