package content

import (
	"context"
	"path/filepath"
)

// PageEntry is a standalone site page (home, community, ...). HTML pages
// usually carry no front matter and take their title from <title>.
type PageEntry struct {
	ID          string
	FilePath    string
	Ext         string
	Body        []byte
	Title       string
	Description string
}

type pageFrontMatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Slug        string `yaml:"slug"`
}

// PagesCollection returns the pages collection rooted at dir. It takes
// every file the markdown package can render.
func PagesCollection(dir string) Collection {
	return Collection{
		Name:      "pages",
		Base:      dir,
		RootEntry: true,
	}
}

// LoadPages reads every page under dir.
func LoadPages(ctx context.Context, dir string) ([]*PageEntry, error) {
	c := PagesCollection(dir)
	ids := c.ids()
	var entries []*PageEntry
	err := c.Walk(ctx, func() any { return &pageFrontMatter{} }, func(f File, meta any) error {
		m := meta.(*pageFrontMatter)
		id := f.ID
		if m.Slug != "" {
			id = normalizeID(m.Slug)
		}
		if err := ids.claim(id, f.Path); err != nil {
			return err
		}
		entries = append(entries, &PageEntry{
			ID:          id,
			FilePath:    filepath.ToSlash(f.Path),
			Ext:         f.Ext,
			Body:        f.Body,
			Title:       m.Title,
			Description: m.Description,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
