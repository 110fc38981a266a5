// Package excerpt builds short plain-text summaries of posts for feed item
// descriptions and blog index cards.
package excerpt

import (
	"strings"
)

// Config controls summary length.
type Config struct {
	MaxWords int    // Upper bound on words in the summary.
	Ellipsis string // Appended when a sentence had to be cut.
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxWords: 55,
		Ellipsis: "…",
	}
}

// Summarize returns the leading paragraph of text, cut down to whole
// sentences when it is longer than cfg.MaxWords. A first sentence that is
// itself too long is cut at a word boundary and gets cfg.Ellipsis.
func Summarize(text string, cfg Config) string {
	if cfg.MaxWords <= 0 {
		cfg.MaxWords = DefaultConfig().MaxWords
	}

	paragraphs := splitByParagraphs(text)
	if len(paragraphs) == 0 {
		return ""
	}
	para := strings.Join(strings.Fields(paragraphs[0]), " ")
	if CountWords(para) <= cfg.MaxWords {
		return para
	}

	var current strings.Builder
	words := 0
	for _, sent := range splitSentences(para) {
		n := CountWords(sent)
		if words+n > cfg.MaxWords {
			break
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sent)
		words += n
	}
	if current.Len() > 0 {
		return current.String()
	}

	fields := strings.Fields(para)
	return strings.Join(fields[:cfg.MaxWords], " ") + cfg.Ellipsis
}

// CountWords counts whitespace-separated words.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// ReadingMinutes estimates reading time at roughly 200 words per minute,
// never less than one minute for non-empty text.
func ReadingMinutes(text string) int {
	words := CountWords(text)
	if words == 0 {
		return 0
	}
	minutes := (words + 199) / 200
	return minutes
}

// splitByParagraphs splits on double-newlines.
func splitByParagraphs(text string) []string {
	parts := strings.Split(text, "\n\n")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// splitSentences does basic sentence splitting.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(text) && text[i+1] == ' ' {
			sentences = append(sentences, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}
