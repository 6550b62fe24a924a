// Package markup turns stored note content into terminal-safe text.
package markup

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strict     = bluemonday.StrictPolicy()
	blockBreak = regexp.MustCompile(`(?i)<\s*(br\s*/?|/\s*(p|div|li|h[1-6]|blockquote|pre|tr))\s*>`)
)

// Paragraphs returns the text of content with one entry per block element.
// Tags are dropped, entities decoded and runs of whitespace collapsed.
func Paragraphs(content string) []string {
	if strings.TrimSpace(content) == "" {
		return nil
	}
	marked := blockBreak.ReplaceAllString(content, "$0\n")
	text := Clean(html.UnescapeString(strict.Sanitize(marked)))
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// Clean drops control characters other than newline and tab, including ones
// decoded from numeric entities, so the result cannot drive the terminal.
func Clean(text string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || !unicode.IsControl(r) {
			return r
		}
		return -1
	}, text)
}

// Label is Clean for single-line text such as titles and tag names.
func Label(text string) string {
	return strings.Join(strings.Fields(Clean(text)), " ")
}

// Plain flattens content to a single line of text.
func Plain(content string) string {
	return strings.Join(Paragraphs(content), " ")
}

// Text returns content as editable plain text with one line per block.
func Text(content string) string {
	return strings.Join(Paragraphs(content), "\n")
}

// FromText escapes plain text into a markup fragment, one line per <br>.
func FromText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = html.EscapeString(line)
	}
	return strings.Join(lines, "<br>")
}
