package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"keepnotes/internal/types"
)

type sortPickerAction int

const (
	sortPickerNone sortPickerAction = iota
	sortPickerApply
	sortPickerClose
)

const sortPickerWidth = 34

// SortPicker is a radio list over the sort modes plus a "none" entry.
type SortPicker struct {
	options []types.SortMode
	cursor  int
	current types.SortMode
}

func NewSortPicker() *SortPicker {
	return &SortPicker{options: append(types.SortModes(), types.SortNone)}
}

func (p *SortPicker) Open(current types.SortMode) {
	p.current = current
	p.cursor = 0
	for i, mode := range p.options {
		if mode == current {
			p.cursor = i
		}
	}
}

func (p *SortPicker) Selected() types.SortMode {
	return p.options[p.cursor]
}

func (p *SortPicker) HandleKey(msg tea.KeyPressMsg) (sortPickerAction, types.SortMode) {
	switch msg.String() {
	case "esc", "q", "s":
		return sortPickerClose, p.current
	case "up", "k":
		p.cursor = (p.cursor + len(p.options) - 1) % len(p.options)
	case "down", "j":
		p.cursor = (p.cursor + 1) % len(p.options)
	case "x", "backspace":
		return sortPickerApply, types.SortNone
	case "enter", "space":
		return sortPickerApply, p.Selected()
	}
	return sortPickerNone, p.current
}

func (p *SortPicker) View() string {
	lines := []string{headerStyle.Render("Sort notes")}
	for i, mode := range p.options {
		radio := "( )"
		if mode == p.current {
			radio = "(•)"
		}
		line := padToWidth(radio+" "+mode.Label(), sortPickerWidth-4)
		if i == p.cursor {
			line = selectedStyle.Render(line)
		} else {
			line = navStyle.Render(line)
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", helpStyle.Render("enter apply • x clear • esc close"))
	return modalBorderStyle.Render(strings.Join(lines, "\n"))
}
