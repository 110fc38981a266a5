// Package anchors decorates rendered headings with a self-link, the way the
// docs theme does for pages under /docs/.
package anchors

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// docsSection marks pages whose headings the docs theme links already.
const docsSection = "/docs/"

const linkIconPath = "m12.11 15.39-3.88 3.88a2.52 2.52 0 0 1-3.5 0 2.47 2.47 0 0 1 0-3.5l3.88-3.88a1 1 0 0 0-1.42-1.42l-3.88 3.89a4.48 4.48 0 0 0 6.33 6.33l3.89-3.88a1 1 0 1 0-1.42-1.42Zm8.58-12.08a4.49 4.49 0 0 0-6.33 0l-3.89 3.88a1 1 0 0 0 1.42 1.42l3.88-3.88a2.52 2.52 0 0 1 3.5 0 2.47 2.47 0 0 1 0 3.5l-3.88 3.88a1 1 0 1 0 1.42 1.42l3.88-3.89a4.49 4.49 0 0 0 0-6.33ZM8.83 15.17a1 1 0 0 0 1.1.22 1 1 0 0 0 .32-.22l4.92-4.92a1 1 0 0 0-1.42-1.42l-4.92 4.92a1 1 0 0 0 0 1.42Z"

// Inject wraps every h1-h6 element that has an id in a heading wrapper
// followed by an anchor link to that id. Pages whose source path lies in the
// docs section are left alone. The tree is modified in place.
func Inject(root *html.Node, sourcePath string) {
	if root == nil || strings.Contains(normalizePath(sourcePath), docsSection) {
		return
	}
	walk(root)
}

// InjectHTML runs Inject over an HTML fragment and renders the result.
func InjectHTML(fragment []byte, sourcePath string) ([]byte, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(bytes.NewReader(fragment), body)
	if err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}

	Inject(body, sourcePath)

	var buf bytes.Buffer
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return nil, fmt.Errorf("render fragment: %w", err)
		}
	}
	return buf.Bytes(), nil
}

func walk(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if id := attr(c, "id"); c.Type == html.ElementNode && Rank(c) > 0 && id != "" {
			// The wrapper is not walked again.
			wrap(c, id)
		} else {
			walk(c)
		}
		c = next
	}
}

func wrap(heading *html.Node, id string) {
	parent := heading.Parent
	wrapper := element("div", "class", "sl-heading-wrapper level-"+heading.Data)
	parent.InsertBefore(wrapper, heading)
	parent.RemoveChild(heading)

	label := element("span", "class", "sr-only")
	label.AppendChild(&html.Node{Type: html.TextNode, Data: textContent(heading)})

	link := element("a", "class", "sl-anchor-link", "href", "#"+id)
	link.AppendChild(linkIcon())
	link.AppendChild(label)

	wrapper.AppendChild(heading)
	wrapper.AppendChild(link)
}

// Rank returns the level (1 to 6) of an h1-h6 element, or 0 for anything else.
func Rank(n *html.Node) int {
	if n == nil || n.Type != html.ElementNode {
		return 0
	}
	name := strings.ToLower(n.Data)
	if len(name) != 2 || name[0] != 'h' {
		return 0
	}
	if name[1] > '0' && name[1] < '7' {
		return int(name[1] - '0')
	}
	return 0
}

func linkIcon() *html.Node {
	span := element("span", "aria-hidden", "true", "class", "sl-anchor-icon")
	svg := element("svg", "width", "16", "height", "16", "viewBox", "0 0 24 24")
	svg.Namespace = "svg"
	path := element("path", "fill", "currentcolor", "d", linkIconPath)
	path.Namespace = "svg"
	svg.AppendChild(path)
	span.AppendChild(svg)
	return span
}

func element(tag string, kv ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	for i := 0; i+1 < len(kv); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return n
}

func attr(n *html.Node, key string) string {
	if n.Type != html.ElementNode {
		return ""
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return buf.String()
}

// normalizePath converts Windows separators so the docs check works for
// both markdown and MDX sources.
func normalizePath(path string) string {
	return strings.ReplaceAll(path, `\`, "/")
}
