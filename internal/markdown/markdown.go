package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/brioche-dev/brioche-website/internal/headings"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// Renderer converts markdown and MDX sources into HTML documents.
type Renderer struct {
	md  goldmark.Markdown
	mdx bool
}

// New returns the site's markdown renderer: GitHub Flavored Markdown, auto
// heading ids, and raw HTML passed through (pages are trusted; feed content
// is sanitized separately).
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Typographer),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// NewMDX is New with MDX module syntax (top-level import/export lines)
// stripped before rendering. JSX components are rendered as raw HTML.
func NewMDX() *Renderer {
	r := New()
	r.mdx = true
	return r
}

// Render parses and renders source.
func (r *Renderer) Render(source []byte) (*Document, error) {
	if r.mdx {
		source = stripModuleSyntax(source)
	}

	doc := r.md.Parser().Parse(text.NewReader(source))

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, source, doc); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	return &Document{
		HTML:     buf.Bytes(),
		Headings: headings.FromAST(doc, source),
		Text:     plainText(doc, source),
	}, nil
}

// plainText joins the text of every top-level block with blank lines.
func plainText(doc ast.Node, src []byte) string {
	var parts []string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if _, ok := n.(*ast.HTMLBlock); ok {
			continue
		}
		if t := extractText(n, src); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n\n")
}

// extractText gets the text content of a goldmark AST node.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && !n.HasChildren() {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	skip := ""
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if _, raw := c.(*ast.RawHTML); skip != "" && !raw {
			continue
		}
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.String:
			buf.Write(t.Value)
		case *ast.RawHTML:
			// Inline script and style bodies are code, not text.
			if tag, closing := rawTag(t, src); tag == "script" || tag == "style" {
				if closing {
					skip = ""
				} else {
					skip = tag
				}
			}
		default:
			if c.Type() == ast.TypeBlock && buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			buf.WriteString(extractText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}

// rawTag returns the lower-cased element name of an inline HTML tag and
// whether it is a closing tag.
func rawTag(n *ast.RawHTML, src []byte) (string, bool) {
	var raw []byte
	for i := 0; i < n.Segments.Len(); i++ {
		seg := n.Segments.At(i)
		raw = append(raw, seg.Value(src)...)
	}
	raw = bytes.TrimPrefix(raw, []byte("<"))
	closing := bytes.HasPrefix(raw, []byte("/"))
	raw = bytes.TrimPrefix(raw, []byte("/"))
	end := bytes.IndexFunc(raw, func(r rune) bool {
		return r == '>' || r == '/' || r == ' ' || r == '\t' || r == '\n'
	})
	if end >= 0 {
		raw = raw[:end]
	}
	return strings.ToLower(string(raw)), closing
}

// stripModuleSyntax drops top-level import and export statements, which
// only make sense to an MDX compiler.
func stripModuleSyntax(source []byte) []byte {
	var out bytes.Buffer
	out.Grow(len(source))
	inFence := false
	for line := range bytes.Lines(source) {
		if bytes.HasPrefix(line, []byte("```")) || bytes.HasPrefix(line, []byte("~~~")) {
			inFence = !inFence
		}
		if !inFence && (bytes.HasPrefix(line, []byte("import ")) || bytes.HasPrefix(line, []byte("export "))) {
			continue
		}
		out.Write(line)
	}
	return out.Bytes()
}
