// Package markdown renders content sources (markdown, MDX and plain HTML)
// into HTML documents with their headings and plain text extracted.
package markdown

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/brioche-dev/brioche-website/internal/headings"
)

// Document is a rendered content source.
type Document struct {
	Title    string             // From <title> for HTML sources; empty for markdown
	HTML     []byte             // Rendered body
	Headings []headings.Heading // In document order
	Text     string             // Plain text, paragraphs separated by blank lines
}

// Source renders one kind of content file.
type Source interface {
	Render(source []byte) (*Document, error)
}

// SupportedExtensions lists content file extensions the site can render.
var SupportedExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".mdx":      true,
	".html":     true,
	".htm":      true,
}

// ForFile returns the appropriate renderer for a filename.
func ForFile(filename string) (Source, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".md", ".markdown":
		return New(), nil
	case ".mdx":
		return NewMDX(), nil
	case ".html", ".htm":
		return &HTMLSource{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}
