package notion

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dstotijn/go-notion"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shodgson/richtext-go/config"
	"github.com/shodgson/richtext-go/model"
	. "github.com/shodgson/richtext-go/test/builder"
)

func attrs(kv ...string) map[string]string {
	data := map[string]string{}
	for i := 0; i+1 < len(kv); i += 2 {
		data[kv[i]] = kv[i+1]
	}
	return data
}

func siteConfig() *config.Config {
	cfg := config.Default()
	cfg.Links.Site = "https://example.com"
	return cfg
}

func plain(rts []notion.RichText) string {
	var b strings.Builder
	for _, rt := range rts {
		b.WriteString(rt.PlainText)
	}
	return b.String()
}

func TestSerializePage(t *testing.T) {
	s := New(zerolog.Nop(), nil)
	blocks := s.SerializePage(Doc(H1("one"), H2("two"), H3("three"), H5("five"), P("para"), Center("c")))
	require.Len(t, blocks, 6)

	h1, ok := blocks[0].(notion.Heading1Block)
	require.True(t, ok)
	assert.Equal(t, "one", plain(h1.RichText))
	_, ok = blocks[1].(notion.Heading2Block)
	assert.True(t, ok)
	_, ok = blocks[2].(notion.Heading3Block)
	assert.True(t, ok)

	// deeper headings become the third level
	h5, ok := blocks[3].(notion.Heading3Block)
	require.True(t, ok)
	assert.Equal(t, "five", plain(h5.RichText))

	p, ok := blocks[4].(notion.ParagraphBlock)
	require.True(t, ok)
	assert.Equal(t, "para", plain(p.RichText))
	assert.Nil(t, p.RichText[0].Annotations)

	_, ok = blocks[5].(notion.ParagraphBlock)
	assert.True(t, ok)
}

func TestSerializeContainers(t *testing.T) {
	s := New(zerolog.Nop(), nil)
	blocks := s.SerializePage(Doc(
		List(Item("a"), Item(P("b"), List(Item("c")))),
		Quote(P("q"), P("r")),
		Pre("x := 1\ny := 2"),
	))
	require.Len(t, blocks, 4)

	a, ok := blocks[0].(notion.NumberedListItemBlock)
	require.True(t, ok)
	assert.Equal(t, "a", plain(a.RichText))
	assert.Empty(t, a.Children)

	b, ok := blocks[1].(notion.NumberedListItemBlock)
	require.True(t, ok)
	assert.Equal(t, "b", plain(b.RichText))
	require.Len(t, b.Children, 1)
	c, ok := b.Children[0].(notion.NumberedListItemBlock)
	require.True(t, ok)
	assert.Equal(t, "c", plain(c.RichText))

	q, ok := blocks[2].(notion.QuoteBlock)
	require.True(t, ok)
	assert.Equal(t, "q", plain(q.RichText))
	require.Len(t, q.Children, 1)
	r, ok := q.Children[0].(notion.ParagraphBlock)
	require.True(t, ok)
	assert.Equal(t, "r", plain(r.RichText))

	code, ok := blocks[3].(notion.CodeBlock)
	require.True(t, ok)
	assert.Equal(t, "x := 1\ny := 2", plain(code.RichText))
	require.NotNil(t, code.Language)
	assert.Equal(t, "plain text", *code.Language)
}

func TestAnnotations(t *testing.T) {
	s := New(zerolog.Nop(), nil)
	blocks := s.SerializePage(Doc(P("a ", B("b", I("bi")), U("u"), Code("c"), Color(attrs("color", "Red"), "r"), Sup("2"))))
	require.Len(t, blocks, 1)
	p := blocks[0].(notion.ParagraphBlock)
	require.Len(t, p.RichText, 7)

	assert.Nil(t, p.RichText[0].Annotations)
	assert.True(t, p.RichText[1].Annotations.Bold)
	assert.False(t, p.RichText[1].Annotations.Italic)
	assert.True(t, p.RichText[2].Annotations.Bold)
	assert.True(t, p.RichText[2].Annotations.Italic)
	assert.True(t, p.RichText[3].Annotations.Underline)
	assert.True(t, p.RichText[4].Annotations.Code)
	assert.Equal(t, notion.Color("red"), p.RichText[5].Annotations.Color)

	// superscript has no Notion form
	assert.Equal(t, "2", p.RichText[6].PlainText)
	assert.Nil(t, p.RichText[6].Annotations)
}

func TestColorFor(t *testing.T) {
	assert.Equal(t, notion.Color("yellow_background"), ColorFor("yellow", true))
	assert.Equal(t, notion.Color("gray"), ColorFor(" Grey ", false))
	assert.Equal(t, notion.ColorDefault, ColorFor("#ff0000", false))

	s := New(zerolog.Nop(), nil)
	p := s.SerializePage(Doc(P(attrs("color", "blue"), "x")))[0].(notion.ParagraphBlock)
	assert.Equal(t, notion.Color("blue_background"), p.Color)
}

func TestLinks(t *testing.T) {
	s := New(zerolog.Nop(), siteConfig())
	p := s.SerializePage(Doc(P(
		URL(attrs("href", "https://go.dev"), "go"),
		M("Euler"),
		W(attrs("name", "Abel"), "Niels"),
		Gl(attrs("file", "prime"), "primes"),
		Ac(attrs("name", "calc"), "class"),
	)))[0].(notion.ParagraphBlock)
	require.Len(t, p.RichText, 5)

	var urls []string
	for _, rt := range p.RichText {
		require.NotNil(t, rt.Text.Link)
		urls = append(urls, rt.Text.Link.URL)
		require.NotNil(t, rt.HRef)
		assert.Equal(t, rt.Text.Link.URL, *rt.HRef)
	}
	assert.Equal(t, []string{
		"https://go.dev",
		"https://example.com/biographies/Euler",
		"https://example.com/biographies/Abel",
		"https://example.com/glossary/prime",
		"https://example.com/academy/calc",
	}, urls)

	// without a site, relative links keep their text only
	p = New(zerolog.Nop(), nil).SerializePage(Doc(P(M("Euler"))))[0].(notion.ParagraphBlock)
	assert.Nil(t, p.RichText[0].Text.Link)
	assert.Equal(t, "Euler", p.RichText[0].PlainText)
}

func TestInlines(t *testing.T) {
	s := New(zerolog.Nop(), siteConfig())
	blocks := s.SerializePage(Doc(P("Area ", B(Math("\\pi r^2")), Ref("3"), T("1"), Anchor("top"), Img("/img/a.png"), Img("https://cdn.test/b.png"))))
	require.Len(t, blocks, 3)

	p := blocks[0].(notion.ParagraphBlock)
	require.Len(t, p.RichText, 3)
	eq := p.RichText[1]
	assert.Equal(t, notion.RichTextTypeEquation, eq.Type)
	require.NotNil(t, eq.Equation)
	assert.Equal(t, "\\pi r^2", eq.Equation.Expression)
	assert.True(t, eq.Annotations.Bold)
	assert.Equal(t, "[3]", p.RichText[2].PlainText)

	// images follow the paragraph
	img, ok := blocks[1].(notion.ImageBlock)
	require.True(t, ok)
	assert.Equal(t, notion.FileTypeExternal, img.Type)
	require.NotNil(t, img.External)
	assert.Equal(t, "https://example.com/img/a.png", img.External.URL)
	assert.Equal(t, "https://cdn.test/b.png", blocks[2].(notion.ImageBlock).External.URL)
}

func TestTopLevelInlines(t *testing.T) {
	s := New(zerolog.Nop(), nil)
	blocks := s.SerializePage(Doc(model.NewText("loose "), B("text"), H1("h")))
	require.Len(t, blocks, 2)
	p, ok := blocks[0].(notion.ParagraphBlock)
	require.True(t, ok)
	assert.Equal(t, "loose text", plain(p.RichText))
}

func TestLongText(t *testing.T) {
	s := New(zerolog.Nop(), nil)
	long := strings.Repeat("é", maxTextLength+10)
	p := s.SerializePage(Doc(P(long)))[0].(notion.ParagraphBlock)
	require.Len(t, p.RichText, 2)
	assert.Equal(t, long, plain(p.RichText))
	assert.Equal(t, strings.Repeat("é", 10), p.RichText[1].Text.Content)
}

func TestUnknownNode(t *testing.T) {
	var buf bytes.Buffer
	s := New(zerolog.New(&buf), nil)
	blocks := s.SerializePage(Doc(P("a"), model.NewBlock("table", nil, P("x")), P("b")))
	assert.Len(t, blocks, 2)
	assert.Contains(t, buf.String(), "Node not matched")
	assert.Contains(t, buf.String(), `"component":"notion"`)
}
