package excerpt

import (
	"strings"
	"testing"
)

func TestSummarize_ShortParagraphKept(t *testing.T) {
	text := "Brioche is a package manager.\nIt builds things.\n\nSecond paragraph."
	got := Summarize(text, DefaultConfig())
	if got != "Brioche is a package manager. It builds things." {
		t.Errorf("unexpected summary %q", got)
	}
}

func TestSummarize_CutsAtSentenceBoundary(t *testing.T) {
	text := "One two three. Four five six. Seven eight nine."
	got := Summarize(text, Config{MaxWords: 7, Ellipsis: "..."})
	if got != "One two three. Four five six." {
		t.Errorf("unexpected summary %q", got)
	}
}

func TestSummarize_LongFirstSentenceGetsEllipsis(t *testing.T) {
	text := strings.Repeat("word ", 100)
	got := Summarize(text, Config{MaxWords: 5, Ellipsis: "..."})
	if got != "word word word word word..." {
		t.Errorf("unexpected summary %q", got)
	}
}

func TestSummarize_Empty(t *testing.T) {
	if got := Summarize("  \n\n  ", DefaultConfig()); got != "" {
		t.Errorf("expected empty summary, got %q", got)
	}
}

func TestSummarize_ZeroMaxWordsUsesDefault(t *testing.T) {
	text := strings.Repeat("a ", 10)
	if got := Summarize(text, Config{}); CountWords(got) != 10 {
		t.Errorf("expected all 10 words, got %q", got)
	}
}

func TestReadingMinutes(t *testing.T) {
	tests := []struct {
		words int
		want  int
	}{
		{0, 0},
		{1, 1},
		{200, 1},
		{201, 2},
		{1000, 5},
	}
	for _, tt := range tests {
		if got := ReadingMinutes(strings.Repeat("w ", tt.words)); got != tt.want {
			t.Errorf("ReadingMinutes(%d words): expected %d, got %d", tt.words, tt.want, got)
		}
	}
}
