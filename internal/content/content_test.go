package content

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, rel, body string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

const publishedPost = `---
title: Announcing Brioche
author: Kyle
authorUrl: https://github.com/kylewlacy
pubDate: 2024-05-01
---

Hello **world**.
`

const draftPost = `---
title: Work in progress
author: Kyle
authorUrl: https://github.com/kylewlacy
pubDate: null
---

Not yet.
`

func TestLoadBlog_PublishedAndDraft(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "announcing.md", publishedPost)
	writeFile(t, dir, "wip.mdx", draftPost)
	writeFile(t, dir, "notes.txt", "ignored")

	entries, err := LoadBlog(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	post := entries[0]
	assert.Equal(t, "announcing", post.ID)
	assert.Equal(t, "Announcing Brioche", post.Title)
	assert.Equal(t, "https://github.com/kylewlacy", post.AuthorURL)
	require.NotNil(t, post.PubDate)
	assert.True(t, post.PubDate.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, post.IsPublished())
	assert.Contains(t, string(post.Body), "Hello **world**.")
	assert.NotContains(t, string(post.Body), "authorUrl")

	draft := entries[1]
	assert.Equal(t, "wip", draft.ID)
	assert.Equal(t, ".mdx", draft.Ext)
	assert.Nil(t, draft.PubDate)
	assert.False(t, draft.IsPublished())
}

func TestLoadBlog_MissingPubDateIsSchemaViolation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.md", "---\ntitle: Broken\nauthor: A\nauthorUrl: https://example.com\n---\nbody\n")

	_, err := LoadBlog(context.Background(), dir)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "blog", verr.Collection)
	assert.Equal(t, "broken", verr.Entry)
	assert.Equal(t, []string{"pubDate"}, verr.Fields())
	assert.Contains(t, err.Error(), "pubDate")
}

func TestLoadBlog_MissingFieldsNamed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "empty.md", "---\npubDate: 2024-01-01\n---\n")

	_, err := LoadBlog(context.Background(), dir)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"author", "authorUrl", "title"}, verr.Fields())
}

func TestLoadBlog_BadDate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.md", "---\ntitle: T\nauthor: A\nauthorUrl: u\npubDate: someday\n---\n")

	_, err := LoadBlog(context.Background(), dir)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "bad", verr.Entry)
	assert.Contains(t, err.Error(), "expected a date or null")
}

func TestLoadBlog_QuotedDateAndSlugOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "2024/post.md", "---\ntitle: T\nauthor: A\nauthorUrl: u\npubDate: \"2024-02-03T10:00:00Z\"\nslug: custom\n---\n")

	entries, err := LoadBlog(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "custom", entries[0].ID)
	assert.True(t, entries[0].PubDate.Equal(time.Date(2024, 2, 3, 10, 0, 0, 0, time.UTC)))
}

func TestLoadBlog_MissingDirIsEmpty(t *testing.T) {
	entries, err := LoadBlog(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLoadBlog_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "announcing.md", publishedPost)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := LoadBlog(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}

func date(day int) *time.Time {
	t := time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestPublished_FiltersDraftsAndSortsStable(t *testing.T) {
	entries := []*BlogEntry{
		{ID: "old", PubDate: date(1)},
		{ID: "draft"},
		{ID: "tie-first", PubDate: date(5)},
		{ID: "newest", PubDate: date(9)},
		{ID: "tie-second", PubDate: date(5)},
	}

	got := Published(entries)

	var ids []string
	for _, e := range got {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"newest", "tie-first", "tie-second", "old"}, ids)
}

func TestLoadDocs_SchemaAndDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "getting-started.md", "---\ntitle: Getting Started\nsidebar:\n  order: 1\n---\n# Hi\n")
	writeFile(t, dir, "core-concepts/recipes.mdx", "---\ntitle: Recipes\ndraft: true\npagefind: false\n---\n")

	entries, err := LoadDocs(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "core-concepts/recipes", entries[0].ID)
	assert.True(t, entries[0].Draft)
	assert.False(t, entries[0].Pagefind)

	assert.Equal(t, "getting-started", entries[1].ID)
	assert.Equal(t, "doc", entries[1].Template)
	assert.True(t, entries[1].Pagefind)
	require.NotNil(t, entries[1].Sidebar.Order)
	assert.Equal(t, 1, *entries[1].Sidebar.Order)
}

func TestLoadDocs_InvalidTemplate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "x.md", "---\ntitle: X\ntemplate: fancy\n---\n")

	_, err := LoadDocs(context.Background(), dir)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "docs", verr.Collection)
	assert.Equal(t, []string{"template"}, verr.Fields())
}

func TestLoadPages_HTMLWithoutFrontMatter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "index.md", "---\ntitle: Home\n---\n# Brioche\n")
	writeFile(t, dir, "community.html", "<html><head><title>Community</title></head><body><h1>Hi</h1></body></html>")

	entries, err := LoadPages(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "community", entries[0].ID)
	assert.Equal(t, "", entries[0].Title)
	assert.Contains(t, string(entries[0].Body), "<title>Community</title>")
	assert.Equal(t, "", entries[1].ID)
	assert.Equal(t, "Home", entries[1].Title)
}

func TestEntryID(t *testing.T) {
	assert.Equal(t, "hello", EntryID("hello.md"))
	assert.Equal(t, "core-concepts/recipes", EntryID(filepath.Join("core-concepts", "recipes.mdx")))
	assert.Equal(t, "how-it-works", EntryID("how-it-works/index.md"))
	assert.Equal(t, "", EntryID("index.md"))
}

func TestLoadBlog_IndexFileRejected(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "index.md", publishedPost)

	_, err := LoadBlog(context.Background(), dir)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Equal(t, "blog", verr.Collection)
	assert.Equal(t, "index.md", verr.Entry)
}

func TestLoadBlog_DuplicateIDRejected(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", publishedPost)
	writeFile(t, dir, "a.mdx", publishedPost)

	_, err := LoadBlog(context.Background(), dir)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Equal(t, "a", verr.Entry)
	assert.Contains(t, verr.Error(), "duplicate entry id")
}

func TestLoadDocs_SlugCollisionRejected(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "install.md", "---\ntitle: Install\n---\n")
	writeFile(t, dir, "setup.md", "---\ntitle: Setup\nslug: install\n---\n")

	_, err := LoadDocs(context.Background(), dir)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Equal(t, "docs", verr.Collection)
	assert.Equal(t, "install", verr.Entry)
}

func TestLoadPages_RenderableExtensionsOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "about.markdown", "# About\n")
	writeFile(t, dir, "logo.svg", "<svg/>")
	writeFile(t, dir, "notes.txt", "ignored")

	entries, err := LoadPages(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "about", entries[0].ID)
}
