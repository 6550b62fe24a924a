package app

import (
	"fmt"
	"strings"

	"keepnotes/internal/query"
)

// TagManager is the main panel of the edit-tags view.
type TagManager struct {
	cursor int
	width  int
	height int
}

func NewTagManager() *TagManager {
	return &TagManager{}
}

func (t *TagManager) SetSize(width, height int) {
	t.width = width
	t.height = height
}

func (t *TagManager) Clamp(count int) {
	t.cursor = clamp(t.cursor, 0, max(0, count-1))
}

func (t *TagManager) Move(delta, count int) {
	if count == 0 {
		return
	}
	t.cursor = clamp(t.cursor+delta, 0, count-1)
}

func (t *TagManager) Selected(tags []string) (string, bool) {
	if t.cursor < 0 || t.cursor >= len(tags) {
		return "", false
	}
	return tags[t.cursor], true
}

func (t *TagManager) View(tags []string, counts query.Counts, focused bool) string {
	width := max(1, t.width)
	if len(tags) == 0 {
		return emptyStateStyle.Render(truncateToWidth("No tags. Press a to add one.", width))
	}
	lines := make([]string, 0, len(tags))
	for i, tag := range tags {
		count := fmt.Sprintf("%d notes", counts.ByTag[tag])
		if counts.ByTag[tag] == 1 {
			count = "1 note"
		}
		labelWidth := max(1, width-len(count)-4)
		line := "  " + padToWidth(truncateToWidth("#"+tag, labelWidth), labelWidth) + " " + count
		line = padToWidth(truncateToWidth(line, width), width)
		if focused && i == t.cursor {
			lines = append(lines, selectedStyle.Render(line))
			continue
		}
		lines = append(lines, tagChipStyle.Render(line))
	}
	if t.height > 0 && len(lines) > t.height {
		start := clamp(t.cursor-t.height+1, 0, len(lines)-t.height)
		lines = lines[start : start+t.height]
	}
	return strings.Join(lines, "\n")
}
