package app

import "keepnotes/internal/types"

type HotkeyContext int

const (
	HotkeyGlobal HotkeyContext = iota
	HotkeySidebar
	HotkeyNotes
	HotkeyTagManager
	HotkeyEditor
	HotkeySortPicker
	HotkeyTagInput
	HotkeyConfirm
)

type Hotkey struct {
	Key      string
	Label    string
	Context  HotkeyContext
	Priority int
}

type HotkeyResolver interface {
	ActiveContexts(*Model) []HotkeyContext
}

func DefaultHotkeys() []Hotkey {
	return []Hotkey{
		{Key: "n", Label: "new", Context: HotkeyGlobal, Priority: 10},
		{Key: "s", Label: "sort", Context: HotkeyGlobal, Priority: 11},
		{Key: "tab", Label: "focus", Context: HotkeyGlobal, Priority: 12},
		{Key: "1-4", Label: "views", Context: HotkeyGlobal, Priority: 13},
		{Key: "q", Label: "quit", Context: HotkeyGlobal, Priority: 90},
		{Key: "j/k", Label: "move", Context: HotkeySidebar, Priority: 20},
		{Key: "enter", Label: "open", Context: HotkeySidebar, Priority: 21},
		{Key: "esc", Label: "clear tag", Context: HotkeySidebar, Priority: 22},
		{Key: "j/k/h/l", Label: "move", Context: HotkeyNotes, Priority: 20},
		{Key: "enter", Label: "edit", Context: HotkeyNotes, Priority: 21},
		{Key: "a", Label: "archive", Context: HotkeyNotes, Priority: 22},
		{Key: "d", Label: "trash", Context: HotkeyNotes, Priority: 23},
		{Key: "y", Label: "copy", Context: HotkeyNotes, Priority: 24},
		{Key: "j/k", Label: "move", Context: HotkeyTagManager, Priority: 20},
		{Key: "a", Label: "add tag", Context: HotkeyTagManager, Priority: 21},
		{Key: "x", Label: "delete tag", Context: HotkeyTagManager, Priority: 22},
		{Key: "enter", Label: "filter", Context: HotkeyTagManager, Priority: 23},
		{Key: "ctrl+s", Label: "save", Context: HotkeyEditor, Priority: 10},
		{Key: "tab", Label: "next field", Context: HotkeyEditor, Priority: 11},
		{Key: "←/→", Label: "change", Context: HotkeyEditor, Priority: 12},
		{Key: "esc", Label: "cancel", Context: HotkeyEditor, Priority: 13},
		{Key: "j/k", Label: "move", Context: HotkeySortPicker, Priority: 10},
		{Key: "enter", Label: "apply", Context: HotkeySortPicker, Priority: 11},
		{Key: "x", Label: "clear", Context: HotkeySortPicker, Priority: 12},
		{Key: "esc", Label: "close", Context: HotkeySortPicker, Priority: 13},
		{Key: "enter", Label: "add", Context: HotkeyTagInput, Priority: 10},
		{Key: "esc", Label: "cancel", Context: HotkeyTagInput, Priority: 11},
		{Key: "y/enter", Label: "confirm", Context: HotkeyConfirm, Priority: 10},
		{Key: "n/esc", Label: "cancel", Context: HotkeyConfirm, Priority: 11},
	}
}

type DefaultHotkeyResolver struct{}

// ActiveContexts lists the contexts whose hotkeys apply. Modals replace the
// global context since they capture every key.
func (r DefaultHotkeyResolver) ActiveContexts(m *Model) []HotkeyContext {
	if m == nil {
		return []HotkeyContext{HotkeyGlobal}
	}
	switch m.mode {
	case uiModeEditor:
		return []HotkeyContext{HotkeyEditor}
	case uiModeSortPicker:
		return []HotkeyContext{HotkeySortPicker}
	case uiModeTagInput:
		return []HotkeyContext{HotkeyTagInput}
	case uiModeConfirm:
		return []HotkeyContext{HotkeyConfirm}
	}
	contexts := []HotkeyContext{HotkeyGlobal}
	switch {
	case m.focus == focusSidebar:
		contexts = append(contexts, HotkeySidebar)
	case m.data.View == types.ViewEditTags:
		contexts = append(contexts, HotkeyTagManager)
	default:
		contexts = append(contexts, HotkeyNotes)
	}
	return contexts
}
