package render

import (
	"errors"
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// MathRenderer typesets a math source string into an HTML fragment.
// Implementations may fail or be slow; the renderer never lets a failure
// escape.
type MathRenderer interface {
	RenderMath(src string) (*html.Node, error)
}

// MathFunc adapts a function to MathRenderer.
type MathFunc func(src string) (*html.Node, error)

func (f MathFunc) RenderMath(src string) (*html.Node, error) {
	return f(src)
}

// SourceMath shows the math source as code.
var SourceMath MathRenderer = MathFunc(func(src string) (*html.Node, error) {
	return element(atom.Code, nil, []*html.Node{text(src)}), nil
})

var errNoMath = errors.New("math renderer returned nothing")

// Math typesets src with the configured math renderer. When it fails or
// panics, the source is shown in a math-error span instead.
func (r *Renderer) Math(src string) *html.Node {
	node, err := r.tryMath(src)
	if err != nil {
		r.logger.Warn().Err(err).Str("math", src).Msg("Math rendering failed")
		return element(atom.Span, []html.Attribute{attr("class", "math-error")}, []*html.Node{text(src)})
	}
	return node
}

func (r *Renderer) tryMath(src string) (node *html.Node, err error) {
	defer func() {
		if p := recover(); p != nil {
			node, err = nil, fmt.Errorf("math renderer panicked: %v", p)
		}
	}()
	node, err = r.math.RenderMath(src)
	if err == nil && node == nil {
		err = errNoMath
	}
	return node, err
}
