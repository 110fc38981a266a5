package content

import (
	"context"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DocEntry is a validated documentation page.
type DocEntry struct {
	ID          string
	FilePath    string
	Ext         string
	Body        []byte
	Title       string
	Description string
	Template    string
	Draft       bool
	Sidebar     DocSidebar
	Pagefind    bool
}

// DocSidebar holds per-page sidebar overrides.
type DocSidebar struct {
	Label  string `yaml:"label" json:"label"`
	Order  *int   `yaml:"order" json:"order"`
	Hidden bool   `yaml:"hidden" json:"hidden"`
}

type docFrontMatter struct {
	Title       string     `yaml:"title" json:"title"`
	Description string     `yaml:"description" json:"description"`
	Template    string     `yaml:"template" json:"template"`
	Draft       bool       `yaml:"draft" json:"draft"`
	Sidebar     DocSidebar `yaml:"sidebar" json:"sidebar"`
	Pagefind    *bool      `yaml:"pagefind" json:"pagefind"`
	Slug        string     `yaml:"slug" json:"slug"`
}

func (m *docFrontMatter) Validate() error {
	return validation.ValidateStruct(m,
		validation.Field(&m.Title, validation.Required),
		validation.Field(&m.Template, validation.In("doc", "splash")),
	)
}

// DocsCollection returns the docs collection rooted at dir.
func DocsCollection(dir string) Collection {
	return Collection{
		Name:       "docs",
		Base:       dir,
		Extensions: []string{".md", ".mdx"},
	}
}

// LoadDocs reads and validates every docs page under dir. Drafts are
// returned too; callers decide whether to render them.
func LoadDocs(ctx context.Context, dir string) ([]*DocEntry, error) {
	c := DocsCollection(dir)
	ids := c.ids()
	var entries []*DocEntry
	err := c.Walk(ctx, func() any { return &docFrontMatter{} }, func(f File, meta any) error {
		m := meta.(*docFrontMatter)
		id := f.ID
		if m.Slug != "" {
			id = normalizeID(m.Slug)
		}
		if err := ids.claim(id, f.Path); err != nil {
			return err
		}
		if err := m.Validate(); err != nil {
			return &ValidationError{Collection: c.Name, Entry: id, Err: err}
		}
		entry := &DocEntry{
			ID:          id,
			FilePath:    filepath.ToSlash(f.Path),
			Ext:         f.Ext,
			Body:        f.Body,
			Title:       m.Title,
			Description: m.Description,
			Template:    m.Template,
			Draft:       m.Draft,
			Sidebar:     m.Sidebar,
			Pagefind:    true,
		}
		if entry.Template == "" {
			entry.Template = "doc"
		}
		if m.Pagefind != nil {
			entry.Pagefind = *m.Pagefind
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
