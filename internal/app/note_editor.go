package app

import (
	"slices"
	"strings"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"keepnotes/internal/markup"
	"keepnotes/internal/types"
)

type editorField int

const (
	fieldTitle editorField = iota
	fieldContent
	fieldBackground
	fieldPriority
	fieldTags
	editorFieldCount
)

type editorAction int

const (
	editorActionNone editorAction = iota
	editorActionSave
	editorActionCancel
	editorActionNewTag
)

const (
	editorMaxWidth      = 72
	editorContentHeight = 6
	editorTitleLimit    = 512
)

// NoteEditor is the modal form for creating and editing a note.
type NoteEditor struct {
	noteID      string
	original    string
	initialText string
	title       textinput.Model
	content     textarea.Model
	background  types.Background
	priority    types.Priority
	tagOptions  []string
	selected    []string
	tagCursor   int
	field       editorField
	width       int
}

func NewNoteEditor() *NoteEditor {
	title := textinput.New()
	title.Placeholder = "Title"
	title.Prompt = ""
	title.CharLimit = editorTitleLimit

	content := textarea.New()
	content.Placeholder = "Write your note..."
	content.ShowLineNumbers = false
	content.SetHeight(editorContentHeight)

	e := &NoteEditor{title: title, content: content}
	e.Resize(editorMaxWidth)
	return e
}

// OpenNew resets the form for a new note using the configured defaults.
func (e *NoteEditor) OpenNew(tagOptions []string, bg types.Background, priority types.Priority, preselect string) tea.Cmd {
	e.reset(tagOptions)
	e.background = bg
	e.priority = priority
	if preselect != "" && slices.Contains(tagOptions, preselect) {
		e.selected = []string{preselect}
	}
	return e.focus(fieldTitle)
}

// OpenEdit pre-populates the form from note.
func (e *NoteEditor) OpenEdit(note types.Note, tagOptions []string) tea.Cmd {
	e.reset(tagOptions)
	e.noteID = note.ID
	e.original = note.Content
	e.initialText = markup.Text(note.Content)
	e.title.SetValue(note.Title)
	e.content.SetValue(e.initialText)
	e.background = note.Background
	e.priority = note.Priority
	e.selected = append([]string{}, note.Tags...)
	return e.focus(fieldTitle)
}

func (e *NoteEditor) reset(tagOptions []string) {
	e.noteID = ""
	e.original = ""
	e.initialText = ""
	e.title.Reset()
	e.content.Reset()
	e.background = types.BackgroundNone
	e.priority = types.PriorityLow
	e.tagOptions = append([]string{}, tagOptions...)
	e.selected = nil
	e.tagCursor = 0
}

func (e *NoteEditor) IsEditing() bool {
	return e.noteID != ""
}

// Draft returns the form as a note draft. Untouched content keeps the stored
// markup verbatim.
func (e *NoteEditor) Draft() types.NoteDraft {
	text := e.content.Value()
	content := e.original
	if !e.IsEditing() || text != e.initialText {
		content = markup.FromText(text)
	}
	return types.NoteDraft{
		ID:         e.noteID,
		Title:      e.title.Value(),
		Content:    content,
		Tags:       append([]string{}, e.selected...),
		Background: e.background,
		Priority:   e.priority,
	}
}

// AddTagOption makes tag selectable and selects it.
func (e *NoteEditor) AddTagOption(tag string) {
	if !slices.Contains(e.tagOptions, tag) {
		e.tagOptions = append(e.tagOptions, tag)
	}
	if !slices.Contains(e.selected, tag) {
		e.selected = append(e.selected, tag)
	}
	e.tagCursor = slices.Index(e.tagOptions, tag)
}

func (e *NoteEditor) Resize(width int) {
	e.width = clamp(width, 24, editorMaxWidth)
	inner := e.width - 4
	e.title.SetWidth(max(1, inner-8))
	e.content.SetWidth(max(1, inner))
}

func (e *NoteEditor) focus(field editorField) tea.Cmd {
	e.field = field
	e.title.Blur()
	e.content.Blur()
	switch field {
	case fieldTitle:
		return e.title.Focus()
	case fieldContent:
		return e.content.Focus()
	}
	return nil
}

func (e *NoteEditor) HandleKey(msg tea.KeyPressMsg) (editorAction, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return editorActionCancel, nil
	case "ctrl+s":
		return editorActionSave, nil
	case "tab":
		return editorActionNone, e.focus((e.field + 1) % editorFieldCount)
	case "shift+tab":
		return editorActionNone, e.focus((e.field + editorFieldCount - 1) % editorFieldCount)
	}

	var cmd tea.Cmd
	switch e.field {
	case fieldTitle:
		if msg.String() == "enter" {
			return editorActionNone, e.focus(fieldContent)
		}
		e.title, cmd = e.title.Update(msg)
	case fieldContent:
		e.content, cmd = e.content.Update(msg)
	case fieldBackground:
		e.background = cycle(types.Backgrounds(), e.background, cycleStep(msg))
	case fieldPriority:
		e.priority = cycle([]types.Priority{types.PriorityLow, types.PriorityHigh}, e.priority, cycleStep(msg))
	case fieldTags:
		return e.handleTagKey(msg), nil
	}
	return editorActionNone, cmd
}

func (e *NoteEditor) handleTagKey(msg tea.KeyPressMsg) editorAction {
	switch msg.String() {
	case "left", "h", "up", "k":
		if e.tagCursor > 0 {
			e.tagCursor--
		}
	case "right", "l", "down", "j":
		if e.tagCursor < len(e.tagOptions)-1 {
			e.tagCursor++
		}
	case "space", "enter", "x":
		if e.tagCursor < len(e.tagOptions) {
			e.toggleTag(e.tagOptions[e.tagCursor])
		}
	case "+":
		return editorActionNewTag
	}
	return editorActionNone
}

func (e *NoteEditor) toggleTag(tag string) {
	if idx := slices.Index(e.selected, tag); idx >= 0 {
		e.selected = slices.Delete(e.selected, idx, idx+1)
		return
	}
	e.selected = append(e.selected, tag)
}

// Update forwards non-key messages such as cursor blinks to the focused input.
func (e *NoteEditor) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch e.field {
	case fieldTitle:
		e.title, cmd = e.title.Update(msg)
	case fieldContent:
		e.content, cmd = e.content.Update(msg)
	}
	return cmd
}

func (e *NoteEditor) View() string {
	inner := e.width - 4
	heading := "New note"
	if e.IsEditing() {
		heading = "Edit note"
	}
	lines := []string{
		headerStyle.Render(heading),
		e.label(fieldTitle, "Title ") + e.title.View(),
		e.label(fieldContent, "Content"),
		e.content.View(),
		e.label(fieldBackground, "Background ") + e.choice(string(e.background), e.field == fieldBackground) +
			lipgloss.NewStyle().Foreground(backgroundColor(e.background)).Render(" ●"),
		e.label(fieldPriority, "Priority ") + e.choice(string(e.priority), e.field == fieldPriority),
		e.label(fieldTags, "Tags ") + e.tagsLine(max(1, inner-5)),
		"",
		helpStyle.Render(truncateToWidth("ctrl+s save • tab next • ←/→ change • space toggle tag • + new tag • esc cancel", inner)),
	}
	return modalBorderStyle.Width(e.width).Render(strings.Join(lines, "\n"))
}

func (e *NoteEditor) label(field editorField, text string) string {
	if e.field == field {
		return fieldLabelFocusStyle.Render(text)
	}
	return fieldLabelStyle.Render(text)
}

func (e *NoteEditor) choice(value string, focused bool) string {
	if focused {
		return selectedStyle.Render("‹ " + value + " ›")
	}
	return navStyle.Render(value)
}

func (e *NoteEditor) tagsLine(width int) string {
	if len(e.tagOptions) == 0 {
		return emptyStateStyle.Render("no tags yet, press + to add one")
	}
	parts := make([]string, 0, len(e.tagOptions))
	for i, tag := range e.tagOptions {
		mark := "[ ]"
		if slices.Contains(e.selected, tag) {
			mark = "[x]"
		}
		part := mark + " " + tag
		if e.field == fieldTags && i == e.tagCursor {
			part = selectedStyle.Render(part)
		} else {
			part = tagChipStyle.Render(part)
		}
		parts = append(parts, part)
	}
	return truncateToWidth(strings.Join(parts, "  "), width)
}

func cycleStep(msg tea.KeyPressMsg) int {
	switch msg.String() {
	case "left", "h", "up", "k":
		return -1
	case "right", "l", "down", "j", "space", "enter":
		return 1
	}
	return 0
}

func cycle[T comparable](values []T, current T, step int) T {
	if step == 0 || len(values) == 0 {
		return current
	}
	idx := slices.Index(values, current)
	if idx < 0 {
		return values[0]
	}
	return values[(idx+step+len(values))%len(values)]
}
