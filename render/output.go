package render

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/tdewolff/minify/v2"
	htmlmin "github.com/tdewolff/minify/v2/html"
	"golang.org/x/net/html"

	"github.com/shodgson/richtext-go/model"
)

// Policy is the allow-list applied to rendered HTML when sanitizing is on.
// It extends the user generated content policy with the classes, styles
// and editor attributes the rule sets emit.
var Policy = newPolicy()

var minifier = newMinifier()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("id").OnElements("span")
	p.AllowAttrs("contenteditable", "draggable").OnElements("span", "img")
	p.AllowStyles("color", "background-color").Globally()
	p.AllowStyles("text-align", "margin", "text-decoration", "vertical-align", "font-size").Globally()
	return p
}

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/html", htmlmin.Minify)
	return m
}

// RenderHTML renders a document to an HTML string, then sanitizes and
// minifies it as configured.
func (r *Renderer) RenderHTML(f model.Fragment) (string, error) {
	var buf bytes.Buffer
	for _, node := range r.Render(f) {
		if err := html.Render(&buf, node); err != nil {
			return "", fmt.Errorf("render html: %w", err)
		}
	}

	out := buf.String()
	if r.cfg.Output.Sanitize {
		out = Policy.Sanitize(out)
	}
	if r.cfg.Output.Minify {
		minified, err := minifier.String("text/html", out)
		if err != nil {
			return "", fmt.Errorf("minify html: %w", err)
		}
		out = minified
	}
	return out, nil
}
