// Package build renders the content collections into a static site: pages,
// docs, blog posts and index, RSS feed, redirect table and theme stylesheet.
package build

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/brioche-dev/brioche-website/internal/anchors"
	"github.com/brioche-dev/brioche-website/internal/config"
	"github.com/brioche-dev/brioche-website/internal/content"
	"github.com/brioche-dev/brioche-website/internal/excerpt"
	"github.com/brioche-dev/brioche-website/internal/feed"
	"github.com/brioche-dev/brioche-website/internal/headings"
	"github.com/brioche-dev/brioche-website/internal/markdown"
	"github.com/brioche-dev/brioche-website/internal/redirects"
	"github.com/brioche-dev/brioche-website/internal/theme"
	"github.com/brioche-dev/brioche-website/internal/timestamp"
)

// Table of contents depth range, as on the docs theme.
const (
	tocMinDepth = 2
	tocMaxDepth = 3
)

// Result summarizes a finished build.
type Result struct {
	Pages      int   `json:"pages"`
	Docs       int   `json:"docs"`
	Posts      int   `json:"posts"`
	Drafts     int   `json:"drafts"`
	Assets     int   `json:"assets"`
	DurationMS int64 `json:"duration_ms"`
}

// Collections holds the loaded content of one build.
type Collections struct {
	Pages []*content.PageEntry
	Docs  []*content.DocEntry
	Blog  []*content.BlogEntry
}

// Builder renders the site described by a Config.
type Builder struct {
	cfg     config.Config
	log     *slog.Logger
	layouts layouts
	status  *Status
}

// New creates a builder. Layout templates are parsed once here.
func New(cfg config.Config, log *slog.Logger) (*Builder, error) {
	l, err := loadLayouts()
	if err != nil {
		return nil, err
	}
	return &Builder{
		cfg:     cfg,
		log:     log,
		layouts: l,
		status:  NewStatus(),
	}, nil
}

// Status returns the builder's build tracker.
func (b *Builder) Status() *Status {
	return b.status
}

// Run performs one complete build into the output directory, replacing
// whatever was there. Any error aborts the build.
func (b *Builder) Run(ctx context.Context) (Result, error) {
	b.status.start()
	res, err := b.run(ctx)
	b.status.finish(res, err)
	return res, err
}

func (b *Builder) run(ctx context.Context) (Result, error) {
	start := time.Now()
	var res Result

	col, err := b.Load(ctx)
	if err != nil {
		return res, err
	}
	b.log.Info("collections loaded", "step", "load",
		"pages", len(col.Pages), "docs", len(col.Docs), "posts", len(col.Blog))

	out := newOutput()

	b.status.SetPhase(PhaseRendering)
	if res.Pages, err = b.renderPages(out, col.Pages); err != nil {
		return res, err
	}
	if res.Docs, err = b.renderDocs(out, col.Docs); err != nil {
		return res, err
	}
	if res.Posts, err = b.renderBlog(out, col.Blog); err != nil {
		return res, err
	}
	res.Drafts = len(col.Blog) - res.Posts

	rss, err := b.renderFeed(col.Blog)
	if err != nil {
		return res, err
	}
	out.add(feed.Path, rss)
	if sheet := b.cfg.Site.Feed.Stylesheet; sheet != "" {
		xsl, err := templateFS.ReadFile("templates/styles.xsl")
		if err != nil {
			return res, err
		}
		out.add(sheet, xsl)
	}
	out.add(redirects.Path, []byte(redirects.Compile(b.cfg.Site.Redirects)))
	out.add(theme.Path, []byte(b.cfg.Site.Theme.CSS()))

	b.status.SetPhase(PhaseWriting)
	if err := ctx.Err(); err != nil {
		return res, err
	}
	if res.Assets, err = out.write(b.cfg.OutputDir, b.cfg.PublicDir); err != nil {
		return res, err
	}

	res.DurationMS = time.Since(start).Milliseconds()
	b.log.Info("build complete", "step", "write", "count", len(out.files)+res.Assets,
		"output", b.cfg.OutputDir, "duration_ms", res.DurationMS)
	return res, nil
}

// Load reads and validates all content collections.
func (b *Builder) Load(ctx context.Context) (*Collections, error) {
	b.status.SetPhase(PhaseLoading)
	dir := b.cfg.ContentDir

	pages, err := content.LoadPages(ctx, filepath.Join(dir, "pages"))
	if err != nil {
		return nil, fmt.Errorf("load pages: %w", err)
	}
	docs, err := content.LoadDocs(ctx, filepath.Join(dir, "docs"))
	if err != nil {
		return nil, fmt.Errorf("load docs: %w", err)
	}
	blog, err := content.LoadBlog(ctx, filepath.Join(dir, "blog"))
	if err != nil {
		return nil, fmt.Errorf("load blog: %w", err)
	}
	return &Collections{Pages: pages, Docs: docs, Blog: blog}, nil
}

// Feed loads the blog and renders the RSS document.
func (b *Builder) Feed(ctx context.Context) ([]byte, error) {
	blog, err := content.LoadBlog(ctx, filepath.Join(b.cfg.ContentDir, "blog"))
	if err != nil {
		return nil, fmt.Errorf("load blog: %w", err)
	}
	return b.renderFeed(blog)
}

func (b *Builder) renderFeed(blog []*content.BlogEntry) ([]byte, error) {
	site := b.cfg.Site
	opts := feed.DefaultOptions(site.URL)
	if site.Feed.Title != "" {
		opts.Title = site.Feed.Title
	}
	if site.Feed.Description != "" {
		opts.Description = site.Feed.Description
	}
	opts.TrailingSlash = site.Feed.TrailingSlash

	f, err := feed.Assemble(blog, opts)
	if err != nil {
		return nil, fmt.Errorf("assemble feed: %w", err)
	}
	return feed.Render(f, site.Feed.Stylesheet)
}

func (b *Builder) renderPages(out *output, pages []*content.PageEntry) (int, error) {
	for _, p := range pages {
		doc, body, err := b.renderSource(p.FilePath, p.Body)
		if err != nil {
			return 0, fmt.Errorf("page %s: %w", p.FilePath, err)
		}
		title := p.Title
		if title == "" {
			title = doc.Title
		}

		urlPath := "/" + p.ID
		data := b.pageData(urlPath, title, p.Description, body)
		data.TOC = headings.Nest(headings.Filter(doc.Headings, tocMinDepth, tocMaxDepth))

		file := pageFile(urlPath)
		if p.ID == "404" {
			file = "/404.html"
		}
		if err := b.emit(out, file, layoutPage, data); err != nil {
			return 0, err
		}
	}
	b.log.Info("rendered", "step", "pages", "count", len(pages))
	return len(pages), nil
}

func (b *Builder) renderDocs(out *output, docs []*content.DocEntry) (int, error) {
	n := 0
	for _, d := range docs {
		if d.Draft {
			b.log.Debug("skipping draft doc", "id", d.ID)
			continue
		}
		doc, body, err := b.renderSource(d.FilePath, d.Body)
		if err != nil {
			return 0, fmt.Errorf("doc %s: %w", d.FilePath, err)
		}

		urlPath := path.Join("/docs", d.ID)
		data := b.pageData(urlPath, d.Title, d.Description, body)
		data.TOC = headings.Nest(headings.Filter(doc.Headings, tocMinDepth, tocMaxDepth))
		data.Pagefind = d.Pagefind
		if !d.Sidebar.Hidden {
			data.Sidebar = sidebarFor(b.cfg.Site.Sidebar, urlPath)
		}

		layout := layoutDoc
		if d.Template == "splash" {
			layout = layoutPage
		}
		if err := b.emit(out, pageFile(urlPath), layout, data); err != nil {
			return 0, err
		}
		n++
	}
	b.log.Info("rendered", "step", "docs", "count", n)
	return n, nil
}

func (b *Builder) renderBlog(out *output, blog []*content.BlogEntry) (int, error) {
	published := content.Published(blog)
	cards := make([]postCard, 0, len(published))

	for _, e := range published {
		doc, body, err := b.renderSource(e.FilePath, e.Body)
		if err != nil {
			return 0, fmt.Errorf("post %s: %w", e.FilePath, err)
		}

		urlPath := path.Join("/blog", e.ID)
		summary := excerpt.Summarize(doc.Text, excerpt.DefaultConfig())
		data := b.pageData(urlPath, e.Title, summary, body)
		data.TOC = headings.Nest(headings.Filter(doc.Headings, tocMinDepth, tocMaxDepth))
		data.Post = &postMeta{
			Author:         e.Author,
			AuthorURL:      e.AuthorURL,
			Machine:        timestamp.Machine(*e.PubDate),
			Human:          timestamp.Human(*e.PubDate),
			ReadingMinutes: excerpt.ReadingMinutes(doc.Text),
		}
		if err := b.emit(out, pageFile(urlPath), layoutPost, data); err != nil {
			return 0, err
		}

		cards = append(cards, postCard{
			Title:   e.Title,
			URL:     urlPath,
			Author:  e.Author,
			Machine: data.Post.Machine,
			Human:   data.Post.Human,
			Summary: summary,
		})
	}

	index := b.pageData("/blog", "Blog", b.cfg.Site.Feed.Description, "")
	index.Posts = cards
	if err := b.emit(out, pageFile("/blog"), layoutBlogIndex, index); err != nil {
		return 0, err
	}

	b.log.Info("rendered", "step", "blog", "count", len(published), "drafts", len(blog)-len(published))
	return len(published), nil
}

// renderSource renders a content file and decorates its headings. The
// anchor check sees the path relative to the content root, so docs pages
// are recognised wherever the content directory lives.
func (b *Builder) renderSource(filePath string, body []byte) (*markdown.Document, template.HTML, error) {
	src, err := markdown.ForFile(filePath)
	if err != nil {
		return nil, "", err
	}
	doc, err := src.Render(body)
	if err != nil {
		return nil, "", err
	}

	rel, err := filepath.Rel(b.cfg.ContentDir, filepath.FromSlash(filePath))
	if err != nil {
		rel = filePath
	}
	html, err := anchors.InjectHTML(doc.HTML, "/"+filepath.ToSlash(rel))
	if err != nil {
		return nil, "", err
	}
	return doc, template.HTML(html), nil
}

func (b *Builder) pageData(urlPath, title, description string, body template.HTML) *pageData {
	site := b.cfg.Site
	return &pageData{
		Site:        site,
		Title:       title,
		Description: description,
		Path:        urlPath,
		Canonical:   strings.TrimRight(site.URL, "/") + urlPath,
		FeedPath:    feed.Path,
		ThemePath:   theme.Path,
		Body:        body,
	}
}

func (b *Builder) emit(out *output, file, layout string, data *pageData) error {
	var buf bytes.Buffer
	if err := b.layouts.render(&buf, layout, data); err != nil {
		return fmt.Errorf("render %s: %w", file, err)
	}
	out.add(file, buf.Bytes())
	return nil
}

// pageFile maps a URL path to its index.html in the output tree.
func pageFile(urlPath string) string {
	return path.Join("/", urlPath, "index.html")
}

func trimSlash(p string) string {
	if p == "/" {
		return p
	}
	return strings.TrimRight(p, "/")
}

// output collects generated files before anything touches the disk, so a
// failed build leaves the previous output in place.
type output struct {
	files map[string][]byte
	order []string
}

func newOutput() *output {
	return &output{files: map[string][]byte{}}
}

func (o *output) add(name string, data []byte) {
	if _, exists := o.files[name]; !exists {
		o.order = append(o.order, name)
	}
	o.files[name] = data
}

// write replaces dir with the public assets followed by the generated
// files. It returns the number of assets copied.
func (o *output) write(dir, publicDir string) (int, error) {
	if err := os.RemoveAll(dir); err != nil {
		return 0, fmt.Errorf("clean output: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}

	assets, err := copyTree(publicDir, dir)
	if err != nil {
		return 0, fmt.Errorf("copy public assets: %w", err)
	}

	for _, name := range o.order {
		dst := filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(name, "/")))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return 0, err
		}
		if err := os.WriteFile(dst, o.files[name], 0o644); err != nil {
			return 0, fmt.Errorf("write %s: %w", name, err)
		}
	}
	return assets, nil
}

// copyTree copies every regular file under src into dst. A missing src
// copies nothing.
func copyTree(src, dst string) (int, error) {
	if src == "" {
		return 0, nil
	}
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return 0, nil
	}
	n := 0
	err := filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if err := copyFile(p, target); err != nil {
			return err
		}
		n++
		return nil
	})
	return n, err
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
