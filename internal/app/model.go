package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"keepnotes/internal/logging"
	"keepnotes/internal/markup"
	"keepnotes/internal/notes"
	"keepnotes/internal/query"
	"keepnotes/internal/types"
)

const (
	defaultWidth        = 100
	defaultHeight       = 30
	defaultSidebarWidth = 24
	minMainWidth        = 20
	minContentHeight    = 4
	statusLinePadding   = 1
	tickInterval        = 500 * time.Millisecond
	tagInputWidth       = 32
)

type uiMode int

const (
	uiModeNormal uiMode = iota
	uiModeEditor
	uiModeSortPicker
	uiModeTagInput
	uiModeConfirm
)

type paneFocus int

const (
	focusNotes paneFocus = iota
	focusSidebar
)

type tickMsg time.Time

type ModelOption func(*Model)

type Model struct {
	ctx           context.Context
	store         *notes.Store
	logger        logging.Logger
	now           func() time.Time
	data          types.StoreData
	visible       []types.Note
	counts        query.Counts
	mode          uiMode
	tagInputFrom  uiMode
	focus         paneFocus
	sidebar       *SidebarController
	grid          *NoteGrid
	tagManager    *TagManager
	editor        *NoteEditor
	sortPicker    *SortPicker
	tagInput      textinput.Model
	confirm       *ConfirmController
	pendingDelete string
	hotkeys       *HotkeyRenderer
	layerComposer LayerComposer
	sidebarWidth  int
	showCounts    bool
	defaultBg     types.Background
	defaultPrio   types.Priority
	status        string
	toastText     string
	toastLevel    toastLevel
	toastUntil    time.Time
	startupToasts []queuedToast
	width         int
	height        int
}

func WithLogger(logger logging.Logger) ModelOption {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func WithSidebarWidth(width int) ModelOption {
	return func(m *Model) {
		if width > 0 {
			m.sidebarWidth = width
		}
	}
}

func WithShowCounts(show bool) ModelOption {
	return func(m *Model) {
		m.showCounts = show
	}
}

// WithEditorDefaults sets the background and priority of new notes.
func WithEditorDefaults(bg types.Background, priority types.Priority) ModelOption {
	return func(m *Model) {
		if bg.Valid() {
			m.defaultBg = bg
		}
		if priority.Valid() {
			m.defaultPrio = priority
		}
	}
}

func withClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

func NewModel(store *notes.Store, opts ...ModelOption) Model {
	tagInput := textinput.New()
	tagInput.Placeholder = "Tag name"
	tagInput.Prompt = "# "
	tagInput.CharLimit = 64
	tagInput.SetWidth(tagInputWidth - 6)

	m := Model{
		ctx:           context.Background(),
		store:         store,
		logger:        logging.Nop(),
		now:           time.Now,
		sidebar:       NewSidebarController(),
		grid:          NewNoteGrid(),
		tagManager:    NewTagManager(),
		editor:        NewNoteEditor(),
		sortPicker:    NewSortPicker(),
		tagInput:      tagInput,
		confirm:       NewConfirmController(),
		hotkeys:       NewHotkeyRenderer(DefaultHotkeys(), DefaultHotkeyResolver{}),
		layerComposer: NewTextLayerComposer(),
		sidebarWidth:  defaultSidebarWidth,
		showCounts:    true,
		defaultBg:     types.BackgroundNone,
		defaultPrio:   types.PriorityLow,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	m.refresh()
	if store != nil {
		if err := store.LoadError(); err != nil {
			m.enqueueStartupToast(toastLevelWarning, "stored notes could not be read; started empty: "+err.Error())
		}
	}
	m.resize(defaultWidth, defaultHeight)
	return m
}

// Run starts the terminal UI and blocks until it exits.
func Run(ctx context.Context, store *notes.Store, opts ...ModelOption) error {
	model := NewModel(store, opts...)
	model.ctx = ctx
	p := tea.NewProgram(&model, tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tickMsg:
		m.handleTick(time.Time(msg))
		return m, tickCmd()
	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	}
	switch m.mode {
	case uiModeEditor:
		return m, m.editor.Update(msg)
	case uiModeTagInput:
		var cmd tea.Cmd
		m.tagInput, cmd = m.tagInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	switch m.mode {
	case uiModeEditor:
		return m.handleEditorKey(msg)
	case uiModeSortPicker:
		m.handleSortPickerKey(msg)
		return nil
	case uiModeTagInput:
		return m.handleTagInputKey(msg)
	case uiModeConfirm:
		m.handleConfirmKey(msg)
		return nil
	}

	key := msg.String()
	switch key {
	case "q":
		return tea.Quit
	case "tab":
		if m.focus == focusSidebar {
			m.focus = focusNotes
		} else {
			m.focus = focusSidebar
		}
		return nil
	case "1", "2", "3", "4":
		m.setView(types.Views()[int(key[0]-'1')])
		return nil
	case "n":
		return m.openEditor(nil)
	case "s":
		m.sortPicker.Open(m.data.Sort)
		m.mode = uiModeSortPicker
		return nil
	case "r":
		if err := m.store.Reload(m.ctx); err != nil {
			m.showWarningToast("reload fell back to defaults: " + err.Error())
		} else {
			m.showInfoToast("reloaded")
		}
		m.refresh()
		return nil
	}

	if m.focus == focusSidebar {
		m.handleSidebarKey(key)
		return nil
	}
	if m.data.View == types.ViewEditTags {
		return m.handleTagManagerKey(key)
	}
	return m.handleNotesKey(key)
}

func (m *Model) handleSidebarKey(key string) {
	switch key {
	case "up", "k":
		m.sidebar.Move(-1)
	case "down", "j":
		m.sidebar.Move(1)
	case "esc":
		if m.data.ActiveTag != "" {
			m.apply(m.store.SetActiveTag(m.ctx, ""), "")
		}
	case "enter", "space":
		item, ok := m.sidebar.Selected()
		if !ok {
			return
		}
		if item.kind == sidebarItemView {
			m.setView(item.view)
			return
		}
		tag := item.tag
		if m.data.View == types.ViewNotes && m.data.ActiveTag == tag {
			tag = ""
		}
		m.apply(m.store.SetActiveTag(m.ctx, tag), "")
		m.grid.Clamp(len(m.visible))
	}
}

func (m *Model) handleNotesKey(key string) tea.Cmd {
	count := len(m.visible)
	switch key {
	case "up", "k":
		m.grid.MoveRow(-1, count)
	case "down", "j":
		m.grid.MoveRow(1, count)
	case "left", "h":
		m.grid.Move(-1, count)
	case "right", "l":
		m.grid.Move(1, count)
	case "esc":
		if m.data.ActiveTag != "" {
			m.apply(m.store.SetActiveTag(m.ctx, ""), "")
		}
	}
	note, ok := m.selectedNote()
	if !ok {
		return nil
	}
	switch key {
	case "enter", "e":
		return m.openEditor(&note)
	case "a":
		updated, err := m.store.ToggleArchived(m.ctx, note.ID)
		msg := "archived"
		if !updated.Archived {
			msg = "moved back to notes"
		}
		m.apply(err, msg)
	case "d", "delete":
		updated, err := m.store.ToggleTrashed(m.ctx, note.ID)
		msg := "moved to trash"
		if !updated.Trashed {
			msg = "restored from trash"
		}
		m.apply(err, msg)
	case "y":
		m.copyWithToast(markup.Text(note.Content), "note copied")
	}
	return nil
}

func (m *Model) handleTagManagerKey(key string) tea.Cmd {
	count := len(m.data.Tags)
	switch key {
	case "up", "k":
		m.tagManager.Move(-1, count)
	case "down", "j":
		m.tagManager.Move(1, count)
	case "a", "+":
		return m.openTagInput(uiModeNormal)
	case "x", "delete", "backspace":
		if tag, ok := m.tagManager.Selected(m.data.Tags); ok {
			m.pendingDelete = tag
			m.confirm.Open("Delete Tag", fmt.Sprintf("Delete tag %q? It is removed from every note.", tag), "Delete", "Cancel")
			m.mode = uiModeConfirm
		}
	case "enter":
		if tag, ok := m.tagManager.Selected(m.data.Tags); ok {
			m.apply(m.store.SetActiveTag(m.ctx, tag), "")
		}
	}
	return nil
}

func (m *Model) handleEditorKey(msg tea.KeyPressMsg) tea.Cmd {
	action, cmd := m.editor.HandleKey(msg)
	switch action {
	case editorActionCancel:
		m.mode = uiModeNormal
	case editorActionSave:
		m.saveEditor()
	case editorActionNewTag:
		return m.openTagInput(uiModeEditor)
	}
	return cmd
}

func (m *Model) saveEditor() {
	editing := m.editor.IsEditing()
	note, err := m.store.UpsertNote(m.ctx, m.editor.Draft())
	if err != nil && !errors.Is(err, notes.ErrPersist) {
		m.showWarningToast(err.Error())
		return
	}
	m.mode = uiModeNormal
	msg := "note created"
	if editing {
		msg = "note saved"
	}
	m.apply(err, msg)
	m.selectNote(note.ID)
}

func (m *Model) handleSortPickerKey(msg tea.KeyPressMsg) {
	action, mode := m.sortPicker.HandleKey(msg)
	switch action {
	case sortPickerClose:
		m.mode = uiModeNormal
	case sortPickerApply:
		m.mode = uiModeNormal
		m.apply(m.store.SetSort(m.ctx, mode), "sorted by "+strings.ToLower(mode.Label()))
	}
}

func (m *Model) handleTagInputKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.closeTagInput()
		return nil
	case "enter":
		name := strings.TrimSpace(m.tagInput.Value())
		added, err := m.store.AddTag(m.ctx, name)
		if errors.Is(err, notes.ErrInvalidTag) {
			m.showWarningToast("tag name is required")
			return nil
		}
		switch {
		case err != nil:
			m.apply(err, "")
		case added:
			m.apply(nil, "tag added: "+name)
		default:
			m.showInfoToast("tag already exists: " + name)
		}
		if m.tagInputFrom == uiModeEditor {
			m.editor.AddTagOption(name)
		}
		m.closeTagInput()
		return nil
	}
	var cmd tea.Cmd
	m.tagInput, cmd = m.tagInput.Update(msg)
	return cmd
}

func (m *Model) handleConfirmKey(msg tea.KeyPressMsg) {
	_, choice := m.confirm.HandleKey(msg)
	switch choice {
	case confirmChoiceConfirm:
		tag := m.pendingDelete
		m.closeConfirm()
		m.apply(m.store.RemoveTag(m.ctx, tag), "tag deleted: "+tag)
	case confirmChoiceCancel:
		m.closeConfirm()
	}
}

func (m *Model) closeConfirm() {
	m.confirm.Close()
	m.pendingDelete = ""
	m.mode = uiModeNormal
}

func (m *Model) openEditor(note *types.Note) tea.Cmd {
	m.mode = uiModeEditor
	if note != nil {
		return m.editor.OpenEdit(*note, m.data.Tags)
	}
	preselect := ""
	if m.data.View == types.ViewNotes {
		preselect = m.data.ActiveTag
	}
	return m.editor.OpenNew(m.data.Tags, m.defaultBg, m.defaultPrio, preselect)
}

func (m *Model) openTagInput(from uiMode) tea.Cmd {
	m.tagInputFrom = from
	m.tagInput.Reset()
	m.mode = uiModeTagInput
	return m.tagInput.Focus()
}

func (m *Model) closeTagInput() {
	m.tagInput.Blur()
	m.tagInput.Reset()
	m.mode = m.tagInputFrom
	m.tagInputFrom = uiModeNormal
}

func (m *Model) setView(view types.View) {
	m.apply(m.store.SetView(m.ctx, view), "")
	m.grid.Clamp(len(m.visible))
}

// apply surfaces a mutation result and re-derives the frame state. A failed
// save keeps the change in memory, so the frame still refreshes.
func (m *Model) apply(err error, success string) {
	switch {
	case errors.Is(err, notes.ErrPersist):
		m.logger.Error("ui_save_failed", logging.F("error", err))
		m.showErrorToast("changes not saved: " + err.Error())
	case err != nil:
		m.showWarningToast(err.Error())
	case success != "":
		m.showInfoToast(success)
	}
	m.refresh()
}

func (m *Model) refresh() {
	if m.store == nil {
		m.data = types.DefaultStoreData(nil)
	} else {
		m.data = m.store.Snapshot()
	}
	m.visible = query.Visible(m.data)
	m.counts = query.CountNotes(m.data.Notes)
	m.sidebar.SetTags(m.data.Tags)
	m.grid.Clamp(len(m.visible))
	m.tagManager.Clamp(len(m.data.Tags))
}

func (m *Model) selectedNote() (types.Note, bool) {
	idx := m.grid.Selected()
	if idx < 0 || idx >= len(m.visible) {
		return types.Note{}, false
	}
	return m.visible[idx], true
}

func (m *Model) selectNote(id string) {
	for i, note := range m.visible {
		if note.ID == id {
			m.grid.Move(i-m.grid.Selected(), len(m.visible))
			return
		}
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	sidebarWidth := m.sidebarWidth
	if width-sidebarWidth-1 < minMainWidth {
		sidebarWidth = max(0, width-minMainWidth-1)
	}
	contentHeight := max(minContentHeight, height-1)
	m.sidebar.SetSize(sidebarWidth, contentHeight)
	mainWidth := max(minMainWidth, width-sidebarWidth-1)
	m.grid.SetSize(mainWidth, contentHeight-2)
	m.tagManager.SetSize(mainWidth, contentHeight-2)
	m.editor.Resize(width - 4)
	m.grid.Clamp(len(m.visible))
}

func (m *Model) View() tea.View {
	view := tea.NewView(m.render())
	view.AltScreen = true
	view.WindowTitle = "keepnotes · " + query.HeaderTitle(m.data.View, m.data.ActiveTag)
	return view
}

func (m *Model) render() string {
	width, height := m.width, m.height
	contentHeight := max(minContentHeight, height-1)
	sidebarWidth := m.sidebar.width
	mainWidth := max(minMainWidth, width-sidebarWidth-1)

	sidebar := lipgloss.NewStyle().Width(sidebarWidth).Height(contentHeight).MaxHeight(contentHeight).
		Render(m.sidebar.View(m.data, m.counts, m.showCounts, m.focus == focusSidebar && m.mode == uiModeNormal))
	divider := dividerStyle.Render(strings.TrimSuffix(strings.Repeat("│\n", contentHeight), "\n"))
	main := lipgloss.NewStyle().Width(mainWidth).Height(contentHeight).MaxHeight(contentHeight).
		Render(m.renderMain(mainWidth))
	body := main
	if sidebarWidth > 0 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, divider, main)
	}

	help := ""
	if m.hotkeys != nil {
		help = m.hotkeys.Render(m)
	}
	status := statusStyle.Render(m.status)
	statusLine := truncateToWidth(renderStatusLine(width, helpStyle.Render(help), status), width)
	frame := lipgloss.JoinVertical(lipgloss.Left, body, statusLine)

	var overlays []LayerOverlay
	if modal := m.modalView(); modal != "" {
		overlays = append(overlays, centeredOverlay(modal, width, height))
	}
	if pill := m.toastPill(width); pill != "" {
		overlays = append(overlays, LayerOverlay{Row: 0, Col: max(0, width-lipgloss.Width(pill)), Block: pill})
	}
	if m.layerComposer == nil || len(overlays) == 0 {
		return frame
	}
	return m.layerComposer.Compose(frame, overlays)
}

func (m *Model) renderMain(width int) string {
	title := query.HeaderTitle(m.data.View, m.data.ActiveTag)
	header := headerStyle.Render(title)
	if m.data.View != types.ViewEditTags {
		header = renderStatusLine(width, header, statusStyle.Render("sort: "+m.data.Sort.Label()))
	}
	focused := m.focus == focusNotes && m.mode == uiModeNormal
	var body string
	if m.data.View == types.ViewEditTags {
		body = m.tagManager.View(m.data.Tags, m.counts, focused)
	} else {
		body = m.grid.View(m.visible, focused, emptyText(m.data))
	}
	return header + "\n\n" + body
}

func (m *Model) modalView() string {
	switch m.mode {
	case uiModeEditor:
		return m.editor.View()
	case uiModeSortPicker:
		return m.sortPicker.View()
	case uiModeTagInput:
		return modalBorderStyle.Width(tagInputWidth).Render(headerStyle.Render("New tag") + "\n" + m.tagInput.View())
	case uiModeConfirm:
		return m.confirm.View(m.width)
	}
	return ""
}

func emptyText(data types.StoreData) string {
	switch {
	case data.View == types.ViewArchive:
		return "No archived notes."
	case data.View == types.ViewTrash:
		return "Trash is empty."
	case data.ActiveTag != "":
		return fmt.Sprintf("No notes tagged %q.", data.ActiveTag)
	default:
		return "No notes yet. Press n to create one."
	}
}
