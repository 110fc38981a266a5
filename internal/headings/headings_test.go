package headings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slugs(nodes []*NestedHeading) []string {
	out := []string{}
	for _, n := range nodes {
		out = append(out, n.Slug)
	}
	return out
}

func count(nodes []*NestedHeading) int {
	n := len(nodes)
	for _, node := range nodes {
		n += count(node.Children)
	}
	return n
}

func TestNest_SiblingsAndChildren(t *testing.T) {
	got := Nest([]Heading{
		{Depth: 1, Slug: "a"},
		{Depth: 2, Slug: "b"},
		{Depth: 2, Slug: "c"},
		{Depth: 1, Slug: "d"},
	})

	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Slug)
	assert.Equal(t, []string{"b", "c"}, slugs(got[0].Children))
	assert.Equal(t, "d", got[1].Slug)
	assert.Empty(t, got[1].Children)
	assert.NotNil(t, got[1].Children)
}

func TestNest_SkippedDepthAttachesToNearest(t *testing.T) {
	got := Nest([]Heading{
		{Depth: 1, Slug: "a"},
		{Depth: 3, Slug: "b"},
	})

	require.Len(t, got, 1)
	assert.Equal(t, []string{"b"}, slugs(got[0].Children))
}

func TestNest_DescendsRightSpine(t *testing.T) {
	got := Nest([]Heading{
		{Depth: 1, Slug: "a"},
		{Depth: 2, Slug: "b"},
		{Depth: 3, Slug: "c"},
		{Depth: 2, Slug: "d"},
		{Depth: 4, Slug: "e"},
	})

	require.Len(t, got, 1)
	a := got[0]
	require.Equal(t, []string{"b", "d"}, slugs(a.Children))
	assert.Equal(t, []string{"c"}, slugs(a.Children[0].Children))
	assert.Equal(t, []string{"e"}, slugs(a.Children[1].Children))
}

func TestNest_ShallowerHeadingStartsNewRoot(t *testing.T) {
	got := Nest([]Heading{
		{Depth: 3, Slug: "a"},
		{Depth: 2, Slug: "b"},
		{Depth: 2, Slug: "c"},
	})
	assert.Equal(t, []string{"a", "b", "c"}, slugs(got))
}

func TestNest_GarbageDepthsNeverPanic(t *testing.T) {
	input := []Heading{
		{Depth: 0, Slug: "zero"},
		{Depth: -3, Slug: "neg"},
		{Depth: 9, Slug: "nine"},
		{Depth: 2, Slug: "two"},
	}
	var got []*NestedHeading
	require.NotPanics(t, func() { got = Nest(input) })
	assert.Equal(t, len(input), count(got))
}

func TestNest_Empty(t *testing.T) {
	got := Nest(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilter(t *testing.T) {
	input := []Heading{{Depth: 1, Slug: "a"}, {Depth: 2, Slug: "b"}, {Depth: 4, Slug: "c"}}
	got := Filter(input, 2, 3)
	assert.Equal(t, []Heading{{Depth: 2, Slug: "b"}}, got)
}
