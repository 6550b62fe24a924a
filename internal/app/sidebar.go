package app

import (
	"fmt"
	"strings"

	"keepnotes/internal/query"
	"keepnotes/internal/types"
)

type sidebarItemKind int

const (
	sidebarItemView sidebarItemKind = iota
	sidebarItemTag
)

type sidebarItem struct {
	kind sidebarItemKind
	view types.View
	tag  string
}

// SidebarController tracks the cursor over the navigation entries and the tag
// chips below them.
type SidebarController struct {
	items  []sidebarItem
	cursor int
	width  int
	height int
}

func NewSidebarController() *SidebarController {
	return &SidebarController{}
}

func (s *SidebarController) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func (s *SidebarController) SetTags(tags []string) {
	items := make([]sidebarItem, 0, len(types.Views())+len(tags))
	for _, view := range types.Views() {
		items = append(items, sidebarItem{kind: sidebarItemView, view: view})
	}
	for _, tag := range tags {
		items = append(items, sidebarItem{kind: sidebarItemTag, tag: tag})
	}
	s.items = items
	s.cursor = clamp(s.cursor, 0, len(items)-1)
}

func (s *SidebarController) Move(delta int) {
	if len(s.items) == 0 {
		return
	}
	s.cursor = clamp(s.cursor+delta, 0, len(s.items)-1)
}

func (s *SidebarController) Selected() (sidebarItem, bool) {
	if s.cursor < 0 || s.cursor >= len(s.items) {
		return sidebarItem{}, false
	}
	return s.items[s.cursor], true
}

func (s *SidebarController) View(data types.StoreData, counts query.Counts, showCounts, focused bool) string {
	width := max(1, s.width)
	lines := []string{brandStyle.Render(truncateToWidth(" Keep Notes", width)), ""}
	tagHeaderDone := false
	for i, item := range s.items {
		if item.kind == sidebarItemTag && !tagHeaderDone {
			lines = append(lines, "", sectionStyle.Render(" Tags"))
			tagHeaderDone = true
		}
		lines = append(lines, s.renderItem(i, item, data, counts, showCounts, focused, width))
	}
	if !tagHeaderDone {
		lines = append(lines, "", sectionStyle.Render(" Tags"), emptyStateStyle.Render(truncateToWidth("   no tags", width)))
	}
	if s.height > 0 && len(lines) > s.height {
		lines = s.window(lines)
	}
	return strings.Join(lines, "\n")
}

func (s *SidebarController) renderItem(i int, item sidebarItem, data types.StoreData, counts query.Counts, showCounts, focused bool, width int) string {
	var label, count string
	current := false
	switch item.kind {
	case sidebarItemView:
		label = viewLabel(item.view)
		current = data.View == item.view && (item.view != types.ViewNotes || data.ActiveTag == "")
		if showCounts && item.view != types.ViewEditTags {
			count = fmt.Sprintf("%d", counts.ForView(item.view))
		}
	case sidebarItemTag:
		label = "#" + item.tag
		current = data.View == types.ViewNotes && data.ActiveTag == item.tag
		if showCounts {
			if n := counts.ByTag[item.tag]; n > 0 {
				count = fmt.Sprintf("%d", n)
			}
		}
	}
	marker := "  "
	if focused && i == s.cursor {
		marker = "▸ "
	}
	labelWidth := max(1, width-3-len(count)-1)
	text := " " + marker + padToWidth(truncateToWidth(label, labelWidth), labelWidth)
	if count != "" {
		text += " " + count
	}
	text = padToWidth(truncateToWidth(text, width), width)

	switch {
	case focused && i == s.cursor:
		return selectedStyle.Render(text)
	case current && item.kind == sidebarItemTag:
		return tagChipActiveStyle.Render(text)
	case current:
		return navCurrentStyle.Render(text)
	case item.kind == sidebarItemTag:
		return tagChipStyle.Render(text)
	default:
		return navStyle.Render(text)
	}
}

// window keeps the cursor row visible when the tag list overflows.
func (s *SidebarController) window(lines []string) []string {
	cursorLine := s.cursor + 2
	if s.cursor >= len(types.Views()) {
		cursorLine += 2
	}
	start := clamp(cursorLine-s.height+1, 0, len(lines)-s.height)
	return lines[start : start+s.height]
}

func viewLabel(view types.View) string {
	switch view {
	case types.ViewArchive:
		return "Archive"
	case types.ViewTrash:
		return "Trash"
	case types.ViewEditTags:
		return "Edit Tags"
	default:
		return "Notes"
	}
}
