// Package headings extracts page headings and nests them into the tree used
// for tables of contents.
package headings

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/ast"
)

// FromAST collects the headings of an already parsed goldmark document.
// Headings have a slug only when the parser assigned them an id.
func FromAST(doc ast.Node, source []byte) []Heading {
	var out []Heading
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		var slug string
		if id, ok := h.AttributeString("id"); ok {
			if b, ok := id.([]byte); ok {
				slug = string(b)
			}
		}
		out = append(out, Heading{
			Depth: h.Level,
			Slug:  slug,
			Text:  strings.TrimSpace(inlineText(h, source)),
		})
		return ast.WalkSkipChildren, nil
	})
	return out
}

// inlineText collects the text of a node's inline children.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		case *ast.RawHTML:
			// Inline tags carry no heading text.
		default:
			buf.WriteString(inlineText(c, src))
		}
	}
	return buf.String()
}
