package render_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/shodgson/richtext-go/config"
	"github.com/shodgson/richtext-go/model"
	. "github.com/shodgson/richtext-go/render"
	. "github.com/shodgson/richtext-go/test/builder"
)

func attrs(kv ...string) map[string]string {
	data := map[string]string{}
	for i := 0; i+1 < len(kv); i += 2 {
		data[kv[i]] = kv[i+1]
	}
	return data
}

func test(t *testing.T, r *Renderer, doc model.Fragment, expected string, msg string) {
	t.Helper()
	out, err := r.RenderHTML(doc)
	require.NoError(t, err)
	assert.Equal(t, expected, out, msg)
}

func TestStatic(t *testing.T) {
	r := NewStatic(zerolog.Nop(), nil, nil)

	test(t, r, Doc(P("hello")),
		`<p style="background-color:initial">hello</p>`,
		"Should use the default background")

	test(t, r, Doc(P(attrs("color", "yellow"), "hi")),
		`<p style="background-color:yellow">hi</p>`,
		"Should use the paragraph colour")

	test(t, r, Doc(H1("a"), H6("f")),
		`<h1>a</h1><h6>f</h6>`,
		"Should represent headings")

	test(t, r, Doc(List(Item("a"), Item("b")), Quote("q"), Pre("x := 1")),
		`<ol><li>a</li><li>b</li></ol><blockquote>q</blockquote><pre>x := 1</pre>`,
		"Should represent lists, quotes and preformatted text")

	test(t, r, Doc(Center("c"), Ind("i")),
		`<p class="center-paragraph">c</p><p class="indent-paragraph">i</p>`,
		"Should use classes for paragraph styles")

	test(t, r, Doc(B("b", I("i")), U("u"), Code("c")),
		`<b>b<i>i</i></b><u>u</u><code>c</code>`,
		"Should nest simple marks")

	test(t, r, Doc(Ovl("o"), Sup("2"), Sub("n"), Big("B"), Small("s")),
		`<span class="overline">o</span><span class="superscript">2</span><span class="subscript">n</span>`+
			`<span class="bigger">B</span><span class="smaller">s</span>`,
		"Should use classes for decorations")

	test(t, r, Doc(URL(attrs("href", "http://a.b"), "x"), URL("y")),
		`<a href="http://a.b">x</a><a href="#">y</a>`,
		"Should represent links")

	test(t, r, Doc(M("Euler"), M(attrs("name", "Gauss"), "Carl"), W("Abel")),
		`<a class="mlink" href="/biographies/Euler">Euler</a>`+
			`<a class="mlink" href="/biographies/Gauss">Carl</a>`+
			`<a class="wlink" href="/biographies/Abel">Abel</a>`,
		"Should link biographies by name or text")

	test(t, r, Doc(Gl(attrs("file", "prime"), "primes"), Ac(attrs("name", "calc"), "course")),
		`<a class="gllink" href="/glossary/prime">primes</a><a class="aclink" href="/academy/calc">course</a>`,
		"Should link glossary and academy")

	test(t, r, Doc(Color("plain"), Color(attrs("color", "red"), "hot")),
		`<span style="color:black">plain</span><span style="color:red">hot</span>`,
		"Should colour text")

	test(t, r, Doc(P(Img("a.png"), Ref("3"), T("7"), Anchor("top"))),
		`<p style="background-color:initial"><img class="image" src="a.png"/>`+
			`<span>[<a href="#ref3" class="reference">3</a>]</span>`+
			`<a href="/translation/7" class="translation">Ⓣ</a>`+
			`<span class="anchor" id="top"></span></p>`,
		"Should represent leaf inlines")

	test(t, r, Doc(Math("x^2")),
		`<span class="math"><code>x^2</code></span>`,
		"Should show math source by default")

	test(t, r, Doc(P("a & <b>")),
		`<p style="background-color:initial">a &amp; &lt;b&gt;</p>`,
		"Should escape text")
}

func TestStaticConfiguredLinks(t *testing.T) {
	cfg := config.Default()
	cfg.Links.Biographies = "/people/"
	cfg.Links.Reference = "#note-"
	r := NewStatic(zerolog.Nop(), cfg, nil)

	test(t, r, Doc(M("Euler"), Ref("1")),
		`<a class="mlink" href="/people/Euler">Euler</a><span>[<a href="#note-1" class="reference">1</a>]</span>`,
		"Should resolve links against the configuration")
}

func TestEditable(t *testing.T) {
	r := NewEditable(zerolog.Nop(), nil, nil)

	test(t, r, Doc(Center("c"), Ind("i")),
		`<p style="text-align:center">c</p><p style="margin:1em 0 1em 40px">i</p>`,
		"Should inline paragraph styles")

	test(t, r, Doc(Sup("2"), Sub("n")),
		`<span style="vertical-align:super">2</span><span style="vertical-align:sub">n</span>`,
		"Should inline vertical alignment")

	test(t, r, Doc(M("Euler"), Gl(attrs("file", "f"), "g")),
		`<span style="color:#0000ee;text-decoration:underline">Euler</span>`+
			`<span style="color:green;text-decoration:underline">g</span>`,
		"Should not navigate from links")

	test(t, r, Doc(Img("a.png"), Ref("3"), T("7"), Anchor("top")),
		`<img class="image" src="a.png" contenteditable="false" draggable="false"/>`+
			`<span class="reference" contenteditable="false" draggable="false">[3]</span>`+
			`<span class="translation" contenteditable="false" draggable="false">Ⓣ</span>`+
			`<span class="anchor" contenteditable="false" draggable="false">Ⓐ</span>`,
		"Should make leaf inlines atomic")
}

func TestMathDegrades(t *testing.T) {
	failing := MathFunc(func(src string) (*html.Node, error) {
		return nil, errors.New("bad input")
	})
	panicking := MathFunc(func(src string) (*html.Node, error) {
		panic("boom")
	})
	empty := MathFunc(func(src string) (*html.Node, error) {
		return nil, nil
	})

	for name, math := range map[string]MathRenderer{"error": failing, "panic": panicking, "nil": empty} {
		t.Run(name, func(t *testing.T) {
			r := NewStatic(zerolog.Nop(), nil, math)
			test(t, r, Doc(P("a", Math("\\frac{1}{0}"), "b")),
				`<p style="background-color:initial">a<span class="math"><span class="math-error">\frac{1}{0}</span></span>b</p>`,
				"Should show the source in a placeholder")
		})
	}

	typeset := MathFunc(func(src string) (*html.Node, error) {
		n := &html.Node{Type: html.ElementNode, DataAtom: atom.Var, Data: "var"}
		n.AppendChild(&html.Node{Type: html.TextNode, Data: src})
		return n, nil
	})
	test(t, NewEditable(zerolog.Nop(), nil, typeset), Doc(Math("x")),
		`<span class="math" contenteditable="false" draggable="false"><var>x</var></span>`,
		"Should embed the typeset fragment")
}

func TestUnmatchedNode(t *testing.T) {
	var buf bytes.Buffer
	r := NewStatic(zerolog.New(&buf), nil, nil)

	test(t, r, Doc(P("a"), model.NewBlock("table", nil, P("x")), P("b")),
		`<p style="background-color:initial">a</p><p style="background-color:initial">b</p>`,
		"Should leave out unknown nodes")
	assert.Contains(t, buf.String(), `"type":"table"`)
	assert.Contains(t, buf.String(), "Node not matched")
}

func TestCustomRules(t *testing.T) {
	hr := func(r *Renderer, node *model.Node, children []*html.Node) *html.Node {
		if node.Type != "rule" {
			return nil
		}
		return &html.Node{Type: html.ElementNode, DataAtom: atom.Hr, Data: "hr"}
	}
	r := NewRenderer(zerolog.Nop(), nil, nil, append([]Rule{hr}, StaticRules()...))
	test(t, r, Doc(model.NewBlock("rule", nil), H2("x")),
		`<hr/><h2>x</h2>`,
		"Should try rules in order")
}

func TestSanitize(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Sanitize = true
	r := NewStatic(zerolog.Nop(), cfg, nil)

	out, err := r.RenderHTML(Doc(P(URL(attrs("href", "javascript:alert(1)"), "click"), Center("c"))))
	require.NoError(t, err)
	assert.NotContains(t, out, "javascript:")
	assert.Contains(t, out, "click")
	assert.Contains(t, out, `class="center-paragraph"`)
}

func TestMinify(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Minify = true
	r := NewStatic(zerolog.Nop(), cfg, nil)

	out, err := r.RenderHTML(Doc(List(Item("a"), Item("b"))))
	require.NoError(t, err)
	assert.Contains(t, out, "<ol><li>a")
	assert.NotContains(t, out, "</li>")
}
