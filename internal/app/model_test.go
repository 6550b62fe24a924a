package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	xansi "github.com/charmbracelet/x/ansi"

	"keepnotes/internal/notes"
	"keepnotes/internal/store"
	"keepnotes/internal/types"
)

type failingState struct {
	inner store.StateStore
	fail  bool
}

func (f *failingState) Load(ctx context.Context) (*types.StoreData, error) {
	return f.inner.Load(ctx)
}

func (f *failingState) Save(ctx context.Context, data *types.StoreData) error {
	if f.fail {
		return errors.New("disk full")
	}
	return f.inner.Save(ctx, data)
}

func newTestModel(t *testing.T) (*Model, *failingState) {
	t.Helper()
	state := &failingState{inner: store.NewStateStore(store.NewMemoryRepository())}
	clock := time.UnixMilli(1_000)
	next := 0
	s := notes.Open(context.Background(), state,
		notes.WithClock(func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		}),
		notes.WithIDSource(func() string {
			next++
			return fmt.Sprintf("id%06d", next)
		}),
	)
	m := NewModel(s)
	m.resize(120, 30)
	return &m, state
}

func keyText(text string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: []rune(text)[0], Text: text}
}

func keyCode(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlS() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}
}

func renderPlain(m *Model) string {
	view := m.View()
	return xansi.Strip(fmt.Sprint(view.Content))
}

func createNote(t *testing.T, m *Model, title, content string) types.Note {
	t.Helper()
	m.handleKey(keyText("n"))
	if m.mode != uiModeEditor {
		t.Fatalf("expected editor mode after n, got %v", m.mode)
	}
	m.editor.title.SetValue(title)
	m.editor.content.SetValue(content)
	m.handleKey(ctrlS())
	if m.mode != uiModeNormal {
		t.Fatalf("expected editor to close after save, got %v", m.mode)
	}
	snap := m.store.Snapshot()
	return snap.Notes[len(snap.Notes)-1]
}

func TestViewShowsHeaderAndEmptyState(t *testing.T) {
	m, _ := newTestModel(t)

	plain := renderPlain(m)
	if !strings.Contains(plain, "Notes") {
		t.Fatalf("expected Notes header, got %q", plain)
	}
	if !strings.Contains(plain, "No notes yet") {
		t.Fatalf("expected empty state, got %q", plain)
	}
	for _, tag := range types.DefaultTags() {
		if !strings.Contains(plain, "#"+tag) {
			t.Fatalf("expected sidebar tag %q, got %q", tag, plain)
		}
	}
}

func TestViewUsesAltScreenAndTitle(t *testing.T) {
	m, _ := newTestModel(t)
	view := m.View()
	if !view.AltScreen {
		t.Fatalf("expected alt screen")
	}
	if !strings.Contains(view.WindowTitle, "Notes") {
		t.Fatalf("unexpected window title %q", view.WindowTitle)
	}
}

func TestCreateNoteFromEditor(t *testing.T) {
	m, _ := newTestModel(t)

	note := createNote(t, m, "Groceries", "milk\neggs")
	if note.Title != "Groceries" {
		t.Fatalf("unexpected title %q", note.Title)
	}
	if note.Content != "milk<br>eggs" {
		t.Fatalf("unexpected content %q", note.Content)
	}
	if note.Background != types.BackgroundNone || note.Priority != types.PriorityLow {
		t.Fatalf("expected default background and priority, got %q %q", note.Background, note.Priority)
	}
	if m.toastText != "note created" {
		t.Fatalf("expected create toast, got %q", m.toastText)
	}
	plain := renderPlain(m)
	if !strings.Contains(plain, "Groceries") {
		t.Fatalf("expected card in view, got %q", plain)
	}
}

func TestEditorCancelLeavesStoreUntouched(t *testing.T) {
	m, _ := newTestModel(t)
	m.handleKey(keyText("n"))
	m.editor.title.SetValue("draft")
	m.handleKey(keyCode(tea.KeyEscape))

	if m.mode != uiModeNormal {
		t.Fatalf("expected normal mode, got %v", m.mode)
	}
	if got := len(m.store.Snapshot().Notes); got != 0 {
		t.Fatalf("expected no notes, got %d", got)
	}
}

func TestEditorCyclesBackgroundAndPriority(t *testing.T) {
	m, _ := newTestModel(t)
	m.handleKey(keyText("n"))
	for m.editor.field != fieldBackground {
		m.handleKey(keyCode(tea.KeyTab))
	}
	m.handleKey(keyCode(tea.KeyLeft))
	m.handleKey(keyCode(tea.KeyTab))
	m.handleKey(keyCode(tea.KeyRight))
	m.handleKey(ctrlS())

	note := m.store.Snapshot().Notes[0]
	if note.Background != types.BackgroundYellow {
		t.Fatalf("expected yellow background, got %q", note.Background)
	}
	if note.Priority != types.PriorityHigh {
		t.Fatalf("expected high priority, got %q", note.Priority)
	}
}

func TestNewNotePreselectsActiveTag(t *testing.T) {
	m, _ := newTestModel(t)
	if err := m.store.SetActiveTag(context.Background(), "Quotes"); err != nil {
		t.Fatalf("SetActiveTag: %v", err)
	}
	m.refresh()

	note := createNote(t, m, "Stoic", "amor fati")
	if len(note.Tags) != 1 || note.Tags[0] != "Quotes" {
		t.Fatalf("expected Quotes tag, got %v", note.Tags)
	}
	if len(m.visible) != 1 {
		t.Fatalf("expected note visible under tag filter, got %d", len(m.visible))
	}
}

func TestEditExistingNoteKeepsIdentity(t *testing.T) {
	m, _ := newTestModel(t)
	created := createNote(t, m, "Groceries", "milk")

	m.handleKey(keyCode(tea.KeyEnter))
	if m.mode != uiModeEditor || !m.editor.IsEditing() {
		t.Fatalf("expected edit mode")
	}
	m.editor.title.SetValue("Groceries (weekly)")
	m.handleKey(ctrlS())

	snap := m.store.Snapshot()
	if len(snap.Notes) != 1 {
		t.Fatalf("expected one note, got %d", len(snap.Notes))
	}
	got := snap.Notes[0]
	if got.ID != created.ID || got.CreatedAt != created.CreatedAt {
		t.Fatalf("expected identity preserved, got %+v", got)
	}
	if got.Title != "Groceries (weekly)" || got.Content != "milk" {
		t.Fatalf("unexpected note after edit: %+v", got)
	}
	if got.UpdatedAt <= created.UpdatedAt {
		t.Fatalf("expected updatedAt to advance")
	}
}

func TestArchiveAndTrashMoveNoteBetweenViews(t *testing.T) {
	m, _ := newTestModel(t)
	createNote(t, m, "Groceries", "milk")

	m.handleKey(keyText("a"))
	if len(m.visible) != 0 {
		t.Fatalf("expected archived note to leave notes view")
	}
	if m.toastText != "archived" {
		t.Fatalf("unexpected toast %q", m.toastText)
	}

	m.handleKey(keyText("2"))
	if m.data.View != types.ViewArchive || len(m.visible) != 1 {
		t.Fatalf("expected note in archive view, got view=%q visible=%d", m.data.View, len(m.visible))
	}

	m.handleKey(keyText("d"))
	note := m.store.Snapshot().Notes[0]
	if !note.Trashed || note.Archived {
		t.Fatalf("expected trash to clear archive, got %+v", note)
	}

	m.handleKey(keyText("3"))
	if len(m.visible) != 1 {
		t.Fatalf("expected note in trash view")
	}
	if !strings.Contains(renderPlain(m), "Trash") {
		t.Fatalf("expected Trash header")
	}
}

func TestSortPickerAppliesMode(t *testing.T) {
	m, _ := newTestModel(t)
	m.handleKey(keyText("s"))
	if m.mode != uiModeSortPicker {
		t.Fatalf("expected sort picker mode")
	}
	if !strings.Contains(renderPlain(m), "Sort notes") {
		t.Fatalf("expected sort picker overlay")
	}

	m.sortPicker.Open(types.SortPrioDesc)
	m.handleKey(keyCode(tea.KeyEnter))
	if m.mode != uiModeNormal {
		t.Fatalf("expected picker to close")
	}
	if got := m.store.Snapshot().Sort; got != types.SortPrioDesc {
		t.Fatalf("expected prio-desc, got %q", got)
	}

	m.handleKey(keyText("s"))
	m.handleKey(keyText("x"))
	if got := m.store.Snapshot().Sort; got != types.SortNone {
		t.Fatalf("expected sort cleared, got %q", got)
	}
}

func TestSidebarTagToggle(t *testing.T) {
	m, _ := newTestModel(t)
	m.handleKey(keyCode(tea.KeyTab))
	if m.focus != focusSidebar {
		t.Fatalf("expected sidebar focus")
	}
	for range types.Views() {
		m.handleKey(keyText("j"))
	}
	m.handleKey(keyCode(tea.KeyEnter))
	if m.data.ActiveTag != "Coding" {
		t.Fatalf("expected Coding filter, got %q", m.data.ActiveTag)
	}
	if !strings.Contains(renderPlain(m), "No notes tagged \"Coding\"") {
		t.Fatalf("expected tag empty state")
	}

	m.handleKey(keyCode(tea.KeyEnter))
	if m.data.ActiveTag != "" {
		t.Fatalf("expected second enter to clear filter, got %q", m.data.ActiveTag)
	}
}

func TestTagManagerAddAndDeleteTag(t *testing.T) {
	m, _ := newTestModel(t)
	m.handleKey(keyText("n"))
	m.editor.title.SetValue("Run")
	m.editor.selected = []string{"Exercise"}
	m.handleKey(ctrlS())

	m.handleKey(keyText("4"))
	if m.data.View != types.ViewEditTags {
		t.Fatalf("expected edit-tags view")
	}
	m.handleKey(keyText("a"))
	if m.mode != uiModeTagInput {
		t.Fatalf("expected tag input mode")
	}
	m.tagInput.SetValue("  Reading ")
	m.handleKey(keyCode(tea.KeyEnter))
	if got := m.store.Snapshot().Tags; got[len(got)-1] != "Reading" {
		t.Fatalf("expected Reading appended, got %v", got)
	}

	m.handleKey(keyText("j"))
	m.handleKey(keyText("x"))
	if m.mode != uiModeConfirm || m.pendingDelete != "Exercise" {
		t.Fatalf("expected confirm for Exercise, got mode=%v pending=%q", m.mode, m.pendingDelete)
	}
	m.handleKey(keyText("y"))

	snap := m.store.Snapshot()
	for _, tag := range snap.Tags {
		if tag == "Exercise" {
			t.Fatalf("expected Exercise removed, got %v", snap.Tags)
		}
	}
	if len(snap.Notes[0].Tags) != 0 {
		t.Fatalf("expected tag removed from note, got %v", snap.Notes[0].Tags)
	}
}

func TestEditorNewTagReturnsToEditor(t *testing.T) {
	m, _ := newTestModel(t)
	m.handleKey(keyText("n"))
	for m.editor.field != fieldTags {
		m.handleKey(keyCode(tea.KeyTab))
	}
	m.handleKey(keyText("+"))
	if m.mode != uiModeTagInput {
		t.Fatalf("expected tag input from editor")
	}
	m.tagInput.SetValue("Ideas")
	m.handleKey(keyCode(tea.KeyEnter))
	if m.mode != uiModeEditor {
		t.Fatalf("expected return to editor, got %v", m.mode)
	}
	if draft := m.editor.Draft(); len(draft.Tags) != 1 || draft.Tags[0] != "Ideas" {
		t.Fatalf("expected new tag selected in draft, got %v", draft.Tags)
	}
}

func TestPersistFailureShowsErrorToastAndKeepsChange(t *testing.T) {
	m, state := newTestModel(t)
	createNote(t, m, "Groceries", "milk")
	state.fail = true

	m.handleKey(keyText("a"))
	if m.toastLevel != toastLevelError {
		t.Fatalf("expected error toast, got %v", m.toastLevel)
	}
	if !strings.Contains(m.toastText, "changes not saved") {
		t.Fatalf("unexpected toast %q", m.toastText)
	}
	if !m.store.Snapshot().Notes[0].Archived {
		t.Fatalf("expected in-memory change to stick")
	}
}

func TestCopyNoteUsesPlainText(t *testing.T) {
	orig := clipboardWriteAll
	t.Cleanup(func() { clipboardWriteAll = orig })
	var copied string
	clipboardWriteAll = func(text string) error {
		copied = text
		return nil
	}

	m, _ := newTestModel(t)
	createNote(t, m, "Groceries", "milk\n<eggs>")
	m.handleKey(keyText("y"))
	if copied != "milk\n<eggs>" {
		t.Fatalf("unexpected clipboard text %q", copied)
	}
	if m.toastText != "note copied" {
		t.Fatalf("unexpected toast %q", m.toastText)
	}
}

func TestLoadErrorQueuesStartupToast(t *testing.T) {
	kv := store.NewMemoryRepository()
	if err := kv.Put(context.Background(), store.StateKey, []byte("{not json")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	s := notes.Open(context.Background(), store.NewStateStore(kv))
	m := NewModel(s)
	if m.toastLevel != toastLevelWarning || !strings.Contains(m.toastText, "started empty") {
		t.Fatalf("expected load warning toast, got %v %q", m.toastLevel, m.toastText)
	}
}

func TestQuitKeys(t *testing.T) {
	m, _ := newTestModel(t)
	if cmd := m.handleKey(keyText("q")); cmd == nil {
		t.Fatalf("expected quit command")
	}
	m.handleKey(keyText("n"))
	m.handleKey(keyText("q"))
	if m.mode != uiModeEditor {
		t.Fatalf("expected q to be typed into the editor")
	}
}

func TestResizeNarrowTerminalShrinksSidebar(t *testing.T) {
	m, _ := newTestModel(t)
	m.resize(30, 10)
	if m.sidebar.width > 30-minMainWidth-1 {
		t.Fatalf("expected sidebar to shrink, got %d", m.sidebar.width)
	}
	_ = renderPlain(m)
}
