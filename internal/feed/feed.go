// Package feed assembles the blog's RSS feed.
package feed

import (
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"

	"github.com/brioche-dev/brioche-website/internal/content"
	"github.com/brioche-dev/brioche-website/internal/excerpt"
	"github.com/brioche-dev/brioche-website/internal/markdown"
	"github.com/gorilla/feeds"
)

// Path is where the feed is published in the built site.
const Path = "/rss.xml"

// DefaultStylesheet is the XSL stylesheet referenced by the feed.
const DefaultStylesheet = "/rss/styles.xsl"

// Options describe the feed channel.
type Options struct {
	Title       string
	Description string
	Site        string // Absolute base URL, e.g. https://brioche.dev
	BlogPath    string // Prefix for post links; defaults to /blog/
	// TrailingSlash ends every generated link with "/". The site serves
	// posts without one.
	TrailingSlash bool
	Excerpt       excerpt.Config
}

// DefaultOptions returns the Brioche blog channel for site.
func DefaultOptions(site string) Options {
	return Options{
		Title:       "Brioche Blog",
		Description: "The official blog of Brioche.",
		Site:        site,
		BlogPath:    "/blog/",
		Excerpt:     excerpt.DefaultConfig(),
	}
}

// Assemble builds the feed from the blog collection. Drafts are skipped and
// items are ordered newest first; posts published at the same time keep
// their collection order.
func Assemble(entries []*content.BlogEntry, opts Options) (*feeds.Feed, error) {
	if opts.BlogPath == "" {
		opts.BlogPath = "/blog/"
	}

	siteURL, err := canonicalURL(opts.Site, "/", opts.TrailingSlash)
	if err != nil {
		return nil, fmt.Errorf("site url: %w", err)
	}

	f := &feeds.Feed{
		Title:       opts.Title,
		Description: opts.Description,
		Link:        &feeds.Link{Href: siteURL},
	}

	for _, entry := range content.Published(entries) {
		item, err := newItem(entry, opts)
		if err != nil {
			return nil, fmt.Errorf("blog entry %s: %w", entry.ID, err)
		}
		f.Add(item)
	}
	if len(f.Items) > 0 {
		f.Updated = f.Items[0].Created
	}

	return f, nil
}

func newItem(entry *content.BlogEntry, opts Options) (*feeds.Item, error) {
	link, err := canonicalURL(opts.Site, strings.TrimSuffix(opts.BlogPath, "/")+"/"+entry.ID, opts.TrailingSlash)
	if err != nil {
		return nil, err
	}

	src, err := markdown.ForFile(entry.FilePath)
	if err != nil {
		return nil, err
	}
	doc, err := src.Render(entry.Body)
	if err != nil {
		return nil, err
	}

	// The excerpt is taken from the sanitized body so that nothing the
	// sanitizer removed reaches the description.
	body := Sanitize(doc.HTML)
	text, err := markdown.FragmentText([]byte(body))
	if err != nil {
		return nil, err
	}

	return &feeds.Item{
		Title:       entry.Title,
		Link:        &feeds.Link{Href: link},
		Id:          link,
		Author:      &feeds.Author{Name: entry.Author},
		Created:     entry.PubDate.UTC(),
		Description: excerpt.Summarize(text, opts.Excerpt),
		Content:     body,
	}, nil
}

// Render serializes f as RSS 2.0 with an xml-stylesheet processing
// instruction pointing at stylesheet. An empty stylesheet omits it.
func Render(f *feeds.Feed, stylesheet string) ([]byte, error) {
	rss, err := f.ToRss()
	if err != nil {
		return nil, fmt.Errorf("encode rss: %w", err)
	}
	if stylesheet == "" {
		return []byte(rss), nil
	}

	// The stylesheet instruction must follow the one XML declaration, so
	// the encoder's own declaration is replaced.
	body := rss
	if strings.HasPrefix(body, "<?xml ") {
		if end := strings.Index(body, "?>"); end >= 0 {
			body = body[end+len("?>"):]
		}
	}
	body = strings.TrimLeft(body, " \t\r\n")

	pi := fmt.Sprintf(`<?xml-stylesheet href="%s" type="text/xsl"?>`, xmlEscape(stylesheet))
	return []byte(xml.Header + pi + "\n" + body), nil
}

// canonicalURL resolves link against site. The path ends in "/" when
// trailingSlash is set and never otherwise.
func canonicalURL(site, link string, trailingSlash bool) (string, error) {
	base, err := url.Parse(site)
	if err != nil {
		return "", err
	}
	if !base.IsAbs() {
		return "", fmt.Errorf("%q is not an absolute url", site)
	}
	ref, err := url.Parse(link)
	if err != nil {
		return "", err
	}
	u := base.ResolveReference(ref)
	u.Path = strings.TrimSuffix(u.Path, "/index.html")
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	if trailingSlash {
		u.Path += "/"
	}
	return u.String(), nil
}

func xmlEscape(s string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(s))
	return b.String()
}
