package headings

// Heading is one heading of a rendered page, in document order.
type Heading struct {
	Depth int    // 1 for h1 through 6 for h6
	Slug  string // Anchor id, unique per page
	Text  string // Plain-text content
}

// NestedHeading is a heading with the headings nested beneath it.
type NestedHeading struct {
	Depth    int
	Slug     string
	Text     string
	Children []*NestedHeading
}

// Nest converts a flat list of headings into a tree. Headings with the same
// depth become siblings; a deeper heading is added as a child of the prior
// one. Depth jumps are not validated: a heading is attached as deep as the
// current right spine of the tree allows.
func Nest(headings []Heading) []*NestedHeading {
	nested := []*NestedHeading{}

	for _, h := range headings {
		node := &NestedHeading{
			Depth:    h.Depth,
			Slug:     h.Slug,
			Text:     h.Text,
			Children: []*NestedHeading{},
		}

		if len(nested) == 0 || nested[len(nested)-1].Depth >= h.Depth {
			nested = append(nested, node)
			continue
		}

		inner := nested[len(nested)-1]
		for inner.Depth < h.Depth-1 && len(inner.Children) > 0 {
			inner = inner.Children[len(inner.Children)-1]
		}
		inner.Children = append(inner.Children, node)
	}

	return nested
}

// Filter keeps headings within [minDepth, maxDepth], as used for a page's
// table of contents.
func Filter(headings []Heading, minDepth, maxDepth int) []Heading {
	var out []Heading
	for _, h := range headings {
		if h.Depth >= minDepth && h.Depth <= maxDepth {
			out = append(out, h)
		}
	}
	return out
}
