package schema_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shodgson/richtext-go/model"
	. "github.com/shodgson/richtext-go/schema"
	. "github.com/shodgson/richtext-go/test/builder"
)

func TestPartitionsAreDisjoint(t *testing.T) {
	seen := map[string]Partition{}
	for _, p := range Partitions {
		for _, tag := range TagsIn(p) {
			other, dup := seen[tag]
			assert.False(t, dup, "tag %q in both %s and %s", tag, other, p)
			seen[tag] = p
		}
	}
	assert.Len(t, Tags(), len(seen))
}

func TestVocabulary(t *testing.T) {
	assert.ElementsMatch(t, []string{"anchor", "img", "math", "ref", "t"}, TagsIn(PartitionInline))
	assert.Contains(t, TagsIn(PartitionBlock), "list")
	assert.Contains(t, TagsIn(PartitionBlock), "ol")
	assert.Contains(t, TagsIn(PartitionMark), "gl")

	p, ok := PartitionOf("ol")
	require.True(t, ok)
	assert.Equal(t, PartitionBlock, p)
	assert.True(t, IsTag("sup"))
	// matching is exact
	assert.False(t, IsTag("B"))
	assert.False(t, IsTag("table"))
}

func TestEveryVariantHasOneSpec(t *testing.T) {
	for _, spec := range All() {
		found, ok := Lookup(spec.Object, spec.Type)
		require.True(t, ok, spec.Type)
		assert.Same(t, spec, found)

		byTag, ok := LookupTag(spec.Partition(), spec.Tag)
		require.True(t, ok, spec.Tag)
		assert.Same(t, spec, byTag)
		assert.Equal(t, spec.Object, spec.Partition().Object())

		if spec.Mode != AttrNone {
			assert.NotEmpty(t, spec.Attr, spec.Type)
		}
		if spec.IsLeaf() {
			assert.Equal(t, model.ObjectInline, spec.Object)
		}
	}

	gl, _ := Lookup(model.ObjectMark, TypeGlLink)
	assert.Equal(t, AttrRequired, gl.Mode)
	assert.Equal(t, "file", gl.Attr)
	m, _ := Lookup(model.ObjectMark, TypeMLink)
	assert.Equal(t, AttrOptional, m.Mode)

	_, ok := Lookup(model.ObjectBlock, TypeBold)
	assert.False(t, ok)
}

func TestAllows(t *testing.T) {
	assert.True(t, Allows(List(), Item()))
	assert.False(t, Allows(List(), P()))
	assert.False(t, Allows(List(), model.NewText("x")))
	assert.True(t, Allows(Quote(), List()))
	assert.True(t, Allows(B(), I()))
	assert.True(t, Allows(B(), Math("x")))
	assert.False(t, Allows(B(), P()))
	assert.True(t, Allows(Math("x"), model.NewText("x")))
	assert.False(t, Allows(Math("x"), B()))
	assert.False(t, Allows(model.NewText("x"), model.NewText("y")))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(Doc(P("a", B("b")), List(Item(P("c")))).Content))

	err := Validate([]*model.Node{
		P("a"),
		List(Item("x"), P("bad")),
		B(P("nested")),
		model.NewBlock("table", nil),
	})
	require.Error(t, err)

	var content *ContentError
	require.True(t, errors.As(err, &content))
	assert.Equal(t, []int{1, 1}, content.Path)
	assert.Equal(t, TypeList, content.Parent)
	assert.Equal(t, TypeParagraph, content.Child)

	assert.Contains(t, err.Error(), "bold does not admit paragraph (at [2 0])")
	assert.Contains(t, err.Error(), `unknown block type "table" (at [3])`)
}
