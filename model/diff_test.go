package model_test

import (
	"testing"

	. "github.com/shodgson/richtext-go/model"
	"github.com/stretchr/testify/assert"
)

func TestFindDiffStart(t *testing.T) {
	start := func(a, b Fragment) []int {
		return FindDiffStart(a.Content, b.Content)
	}

	// returns nil for identical nodes
	assert.Nil(t, start(doc(p("a", b("b"))), doc(p("a", b("b")))))

	// notices when one node is longer
	assert.Equal(t, []int{1}, start(doc(p("a")), doc(p("a"), p("b"))))

	// notices different text
	assert.Equal(t, []int{0, 0}, start(doc(p("foo")), doc(p("fob"))))

	// notices a different mark
	assert.Equal(t, []int{0, 1}, start(doc(p("a", b("x"))), doc(p("a", i("x")))))

	// finds a deep change
	assert.Equal(t, []int{0, 0, 1, 0},
		start(doc(list(item(p("x"), p("y")))), doc(list(item(p("x"), p("z"))))))

	// notices different data
	assert.Equal(t, []int{0},
		start(doc(p(map[string]string{"color": "red"})), doc(p())))
}

func TestFindDiffEnd(t *testing.T) {
	a, b := FindDiffEnd(doc(p("a"), p("c")).Content, doc(p("a"), p("b"), p("c")).Content)
	assert.Equal(t, []int{0, 0}, a)
	assert.Equal(t, []int{1, 0}, b)

	a, b = FindDiffEnd(doc(p("x")).Content, doc(p("x")).Content)
	assert.Nil(t, a)
	assert.Nil(t, b)
}

func TestNodeAt(t *testing.T) {
	d := doc(p("a", b("bold")), p("c"))
	assert.Equal(t, "bold", NodeAt(d.Content, []int{0, 1}).Type)
	assert.Nil(t, NodeAt(d.Content, []int{3}))
}
