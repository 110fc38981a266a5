package build

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/brioche-dev/brioche-website/internal/config"
	"github.com/brioche-dev/brioche-website/internal/headings"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

//go:embed templates/*.html templates/styles.xsl
var templateFS embed.FS

// Layouts rendered by the builder.
const (
	layoutPage      = "page"
	layoutDoc       = "doc"
	layoutPost      = "post"
	layoutBlogIndex = "blog_index"
)

type layouts map[string]*template.Template

func loadLayouts() (layouts, error) {
	funcs := template.FuncMap{"headTag": headTag}
	out := layouts{}
	for _, name := range []string{layoutPage, layoutDoc, layoutPost, layoutBlogIndex} {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse layout %s: %w", name, err)
		}
		out[name] = t
	}
	return out, nil
}

func (l layouts) render(w io.Writer, name string, data *pageData) error {
	t, ok := l[name]
	if !ok {
		return fmt.Errorf("unknown layout %q", name)
	}
	return t.ExecuteTemplate(w, "base", data)
}

// pageData is what every layout renders from.
type pageData struct {
	Site        config.Site
	Title       string
	Description string
	Path        string
	Canonical   string
	FeedPath    string
	ThemePath   string
	Body        template.HTML
	TOC         []*headings.NestedHeading
	Sidebar     []sidebarEntry
	Pagefind    bool
	Post        *postMeta
	Posts       []postCard
}

type sidebarEntry struct {
	Label   string
	Link    string
	Current bool
	Items   []sidebarEntry
}

type postMeta struct {
	Author         string
	AuthorURL      string
	Machine        string
	Human          string
	ReadingMinutes int
}

type postCard struct {
	Title   string
	URL     string
	Author  string
	Machine string
	Human   string
	Summary string
}

func sidebarFor(items []config.SidebarItem, current string) []sidebarEntry {
	out := make([]sidebarEntry, 0, len(items))
	for _, item := range items {
		out = append(out, sidebarEntry{
			Label:   item.Label,
			Link:    item.Link,
			Current: item.Link != "" && trimSlash(item.Link) == trimSlash(current),
			Items:   sidebarFor(item.Items, current),
		})
	}
	return out
}

// headTag renders a configured <head> element. Attribute values are
// escaped by the html renderer.
func headTag(tag config.HeadTag) (template.HTML, error) {
	n := &html.Node{Type: html.ElementNode, Data: tag.Tag, DataAtom: atom.Lookup([]byte(tag.Tag))}
	for _, a := range tag.Attrs {
		n.Attr = append(n.Attr, html.Attribute{Key: a.Name, Val: a.Value})
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
