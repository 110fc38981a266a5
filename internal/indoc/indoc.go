// Package indoc strips common indentation from multi-line string literals so
// embedded snippets (shell commands, code samples) can be indented with the
// surrounding Go source.
package indoc

import (
	"strings"
)

// Indoc joins literal segments with the interleaved values, drops a blank
// first and last line, and removes the indentation shared by every non-blank
// line. The result always ends with a newline.
func Indoc(segments []string, values ...string) string {
	var b strings.Builder
	for i, seg := range segments {
		b.WriteString(seg)
		if i < len(values) {
			b.WriteString(values[i])
		}
	}

	lines := strings.Split(b.String(), "\n")
	if len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	lines = append(lines, "")

	// -1 until a non-blank line is seen: nothing to strip.
	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t\r\v\f"))
		if minIndent < 0 || n < minIndent {
			minIndent = n
		}
	}

	if minIndent > 0 {
		for i, line := range lines {
			if len(line) <= minIndent {
				lines[i] = ""
			} else {
				lines[i] = line[minIndent:]
			}
		}
	}

	return strings.Join(lines, "\n")
}

// Dedent is Indoc for a single literal with no substitutions.
func Dedent(s string) string {
	return Indoc([]string{s})
}
