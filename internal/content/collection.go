// Package content loads the site's content collections (blog posts, docs and
// standalone pages) from disk and validates their front matter.
package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/goliatone/go-slug"
	"gopkg.in/yaml.v3"

	"github.com/brioche-dev/brioche-website/internal/markdown"
)

// Collection names a directory of content files.
type Collection struct {
	Name       string   // e.g. "blog"
	Base       string   // Directory the glob is rooted at
	Extensions []string // Lower-case, with dot; empty means every renderable file

	// RootEntry allows an entry with the empty id (the collection's own
	// index page).
	RootEntry bool
}

// File is one raw file of a collection, split into front matter and body.
type File struct {
	ID   string // Slugified path relative to Base, without extension
	Path string // Path on disk
	Ext  string
	Body []byte
}

var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// Walk visits every matching file under c.Base in lexical order, decoding its
// front matter into a fresh value from newMeta and handing both to fn.
// A missing Base directory is an empty collection.
func (c Collection) Walk(ctx context.Context, newMeta func() any, fn func(File, any) error) error {
	if _, err := os.Stat(c.Base); os.IsNotExist(err) {
		return nil
	}

	return filepath.WalkDir(c.Base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !c.matches(path) {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		rel, err := filepath.Rel(c.Base, path)
		if err != nil {
			return err
		}
		id := EntryID(rel)

		meta := newMeta()
		body, err := frontmatter.Parse(bytes.NewReader(raw), meta, yamlFormat)
		if err != nil {
			return &ValidationError{Collection: c.Name, Entry: id, Err: err}
		}

		return fn(File{ID: id, Path: path, Ext: strings.ToLower(filepath.Ext(path)), Body: body}, meta)
	})
}

func (c Collection) matches(path string) bool {
	if len(c.Extensions) == 0 {
		return markdown.IsSupportedExtension(path)
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range c.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// idSet tracks the entry ids claimed while loading one collection.
type idSet struct {
	c    Collection
	seen map[string]string
}

func (c Collection) ids() *idSet {
	return &idSet{c: c, seen: map[string]string{}}
}

// claim records id for the file at path. Two files resolving to the same
// id, or an empty id outside a RootEntry collection, are rejected.
func (s *idSet) claim(id, path string) error {
	if id == "" && !s.c.RootEntry {
		rel, err := filepath.Rel(s.c.Base, path)
		if err != nil {
			rel = path
		}
		return &ValidationError{
			Collection: s.c.Name,
			Entry:      filepath.ToSlash(rel),
			Err:        errors.New("entry id is empty; rename the file or set a slug"),
		}
	}
	if prev, ok := s.seen[id]; ok {
		return &ValidationError{
			Collection: s.c.Name,
			Entry:      id,
			Err:        fmt.Errorf("duplicate entry id: %s and %s", filepath.ToSlash(prev), filepath.ToSlash(path)),
		}
	}
	s.seen[id] = path
	return nil
}

// EntryID derives an entry's id from its path relative to the collection
// base: extension dropped, each segment slugified, "/" separated. A
// trailing "index" segment is dropped.
func EntryID(rel string) string {
	rel = filepath.ToSlash(rel)
	return normalizeID(strings.TrimSuffix(rel, filepath.Ext(rel)))
}

// normalizeID slugifies each "/" separated segment of id.
func normalizeID(id string) string {
	var segments []string
	for _, seg := range strings.Split(id, "/") {
		if seg == "" {
			continue
		}
		if normalized, err := slug.Normalize(seg); err == nil && normalized != "" {
			seg = normalized
		}
		segments = append(segments, seg)
	}
	if n := len(segments); n > 0 && segments[n-1] == "index" {
		segments = segments[:n-1]
	}
	return strings.Join(segments, "/")
}
