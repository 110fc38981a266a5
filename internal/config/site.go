package config

import (
	"github.com/brioche-dev/brioche-website/internal/feed"
	"github.com/brioche-dev/brioche-website/internal/redirects"
	"github.com/brioche-dev/brioche-website/internal/theme"
)

// Site is the declarative site configuration, read from the YAML site file.
type Site struct {
	Title       string            `yaml:"title" json:"title"`
	Description string            `yaml:"description" json:"description"`
	URL         string            `yaml:"url" json:"url"`
	Social      map[string]string `yaml:"social" json:"social"`
	Sidebar     []SidebarItem     `yaml:"sidebar" json:"sidebar"`
	Head        []HeadTag         `yaml:"head" json:"head"`
	CustomCSS   []string          `yaml:"customCss" json:"customCss"`
	Redirects   []redirects.Entry `yaml:"redirects" json:"redirects"`
	Theme       theme.Palette     `yaml:"theme" json:"theme"`
	Feed        Feed              `yaml:"feed" json:"feed"`
}

// SidebarItem is either a link or a labelled group of items.
type SidebarItem struct {
	Label string        `yaml:"label" json:"label"`
	Link  string        `yaml:"link,omitempty" json:"link,omitempty"`
	Items []SidebarItem `yaml:"items,omitempty" json:"items,omitempty"`
}

// HeadTag is an extra element emitted into every page's <head>.
type HeadTag struct {
	Tag   string     `yaml:"tag" json:"tag"`
	Attrs []HeadAttr `yaml:"attrs" json:"attrs"`
}

// HeadAttr keeps attribute order stable in the rendered tag.
type HeadAttr struct {
	Name  string `yaml:"name" json:"name"`
	Value string `yaml:"value" json:"value"`
}

// Feed configures the blog's RSS channel.
type Feed struct {
	Title         string `yaml:"title" json:"title"`
	Description   string `yaml:"description" json:"description"`
	Stylesheet    string `yaml:"stylesheet" json:"stylesheet"`
	TrailingSlash bool   `yaml:"trailingSlash" json:"trailingSlash"`
}

func link(label, href string) SidebarItem {
	return SidebarItem{Label: label, Link: href}
}

func attrs(kv ...string) []HeadAttr {
	var out []HeadAttr
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, HeadAttr{Name: kv[i], Value: kv[i+1]})
	}
	return out
}

// DefaultSite is the Brioche site as it ships.
func DefaultSite() Site {
	opts := feed.DefaultOptions("")
	return Site{
		Title:       "Brioche",
		Description: "A delicious package manager.",
		URL:         "https://brioche.dev",
		Social: map[string]string{
			"github": "https://github.com/brioche-dev",
		},
		Sidebar: []SidebarItem{
			link("Getting Started", "/docs/getting-started"),
			link("Installation", "/docs/installation"),
			link("Configuration", "/docs/configuration"),
			{
				Label: "Core Concepts",
				Items: []SidebarItem{
					link("Projects", "/docs/core-concepts/projects"),
					link("Artifacts", "/docs/core-concepts/artifacts"),
					link("Recipes", "/docs/core-concepts/recipes"),
					link("Baking", "/docs/core-concepts/baking"),
					link("Registry", "/docs/core-concepts/registry"),
					link("Workspaces", "/docs/core-concepts/workspaces"),
				},
			},
			{
				Label: "How It Works",
				Items: []SidebarItem{
					link("Blobs", "/docs/how-it-works/blobs"),
					link("Sandboxing", "/docs/how-it-works/sandboxing"),
					link("Tick Encoding", "/docs/how-it-works/tick-encoding"),
					link("Packed Executables", "/docs/how-it-works/packed-executables"),
				},
			},
		},
		Head: []HeadTag{
			{Tag: "link", Attrs: attrs("rel", "apple-touch-icon", "sizes", "180x180", "href", "/apple-touch-icon.png")},
			{Tag: "link", Attrs: attrs("rel", "icon", "type", "image/png", "sizes", "32x32", "href", "/favicon-32x32.png")},
			{Tag: "link", Attrs: attrs("rel", "icon", "type", "image/png", "sizes", "16x16", "href", "/favicon-16x16.png")},
			{Tag: "link", Attrs: attrs("rel", "manifest", "href", "/site.webmanifest")},
			{Tag: "link", Attrs: attrs("rel", "mask-icon", "href", "/safari-pinned-tab.svg", "color", "#e9c193")},
			{Tag: "meta", Attrs: attrs("name", "msapplication-TileColor", "content", "#da532c")},
			{Tag: "meta", Attrs: attrs("name", "theme-color", "content", "#41362f")},
		},
		Redirects: []redirects.Entry{
			{From: "/docs", To: "/docs/getting-started"},
		},
		Theme: theme.DefaultPalette(),
		Feed: Feed{
			Title:       opts.Title,
			Description: opts.Description,
			Stylesheet:  feed.DefaultStylesheet,
		},
	}
}
