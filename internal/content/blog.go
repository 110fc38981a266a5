package content

import (
	"context"
	"path/filepath"
	"sort"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// BlogEntry is a validated blog post.
type BlogEntry struct {
	ID        string
	FilePath  string
	Ext       string
	Body      []byte
	Title     string
	Author    string
	AuthorURL string
	PubDate   *time.Time // nil for drafts
}

// IsPublished reports whether the post has a publish date.
func (e *BlogEntry) IsPublished() bool {
	return e.PubDate != nil
}

type blogFrontMatter struct {
	Title     string    `yaml:"title" json:"title"`
	Author    string    `yaml:"author" json:"author"`
	AuthorURL string    `yaml:"authorUrl" json:"authorUrl"`
	PubDate   yaml.Node `yaml:"pubDate" json:"pubDate"`
	Slug      string    `yaml:"slug" json:"slug"`
}

func (m *blogFrontMatter) Validate() error {
	return validation.ValidateStruct(m,
		validation.Field(&m.Title, validation.Required),
		validation.Field(&m.Author, validation.Required),
		validation.Field(&m.AuthorURL, validation.Required),
		validation.Field(&m.PubDate, validation.By(validNullableDate)),
	)
}

// BlogCollection returns the blog collection rooted at dir.
func BlogCollection(dir string) Collection {
	return Collection{
		Name:       "blog",
		Base:       dir,
		Extensions: []string{".md", ".mdx"},
	}
}

// LoadBlog reads and validates every post under dir, drafts included, in
// path order.
func LoadBlog(ctx context.Context, dir string) ([]*BlogEntry, error) {
	c := BlogCollection(dir)
	ids := c.ids()
	var entries []*BlogEntry
	err := c.Walk(ctx, func() any { return &blogFrontMatter{} }, func(f File, meta any) error {
		m := meta.(*blogFrontMatter)
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
		pubDate, _ := parseNullableDate(m.PubDate)
		entries = append(entries, &BlogEntry{
			ID:        id,
			FilePath:  filepath.ToSlash(f.Path),
			Ext:       f.Ext,
			Body:      f.Body,
			Title:     m.Title,
			Author:    m.Author,
			AuthorURL: m.AuthorURL,
			PubDate:   pubDate,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Published drops drafts and orders the rest newest first. Posts sharing a
// publish date keep their input order.
func Published(entries []*BlogEntry) []*BlogEntry {
	out := make([]*BlogEntry, 0, len(entries))
	for _, e := range entries {
		if e.IsPublished() {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PubDate.After(*out[j].PubDate)
	})
	return out
}
