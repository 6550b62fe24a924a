package app

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	xansi "github.com/charmbracelet/x/ansi"

	"keepnotes/internal/query"
	"keepnotes/internal/types"
)

func gridNotes(n int) []types.Note {
	out := make([]types.Note, 0, n)
	for i := range n {
		out = append(out, types.Note{
			ID:         fmt.Sprintf("n%d", i),
			Title:      fmt.Sprintf("Note %d", i),
			Content:    "body",
			Background: types.BackgroundNone,
			Priority:   types.PriorityLow,
			CreatedAt:  int64(i + 1),
		})
	}
	return out
}

func TestNoteGridMoveRowUsesColumns(t *testing.T) {
	g := NewNoteGrid()
	g.SetSize(minCardWidth*3+cardGap*2, cardHeight*2)
	cols := g.columns()
	if cols < 2 {
		t.Fatalf("expected multiple columns, got %d", cols)
	}
	g.MoveRow(1, 10)
	if g.Selected() != cols {
		t.Fatalf("expected selection %d, got %d", cols, g.Selected())
	}
	g.Move(100, 10)
	if g.Selected() != 9 {
		t.Fatalf("expected clamp to last, got %d", g.Selected())
	}
	g.Clamp(3)
	if g.Selected() != 2 {
		t.Fatalf("expected clamp after shrink, got %d", g.Selected())
	}
	g.Clamp(0)
	if g.Selected() != 0 {
		t.Fatalf("expected reset on empty, got %d", g.Selected())
	}
}

func TestNoteGridRendersUntitledAndTags(t *testing.T) {
	g := NewNoteGrid()
	g.SetSize(80, cardHeight*2)
	notes := gridNotes(1)
	notes[0].Title = ""
	notes[0].Tags = []string{"Coding"}
	notes[0].Priority = types.PriorityHigh

	plain := xansi.Strip(g.View(notes, true, "empty"))
	if !strings.Contains(plain, untitledLabel) {
		t.Fatalf("expected untitled label, got %q", plain)
	}
	if !strings.Contains(plain, "#Coding") {
		t.Fatalf("expected tag chip, got %q", plain)
	}
	if !strings.Contains(plain, "high") {
		t.Fatalf("expected priority in meta line, got %q", plain)
	}
}

func TestNoteGridEmptyText(t *testing.T) {
	g := NewNoteGrid()
	g.SetSize(60, 10)
	if plain := xansi.Strip(g.View(nil, false, "Trash is empty.")); !strings.Contains(plain, "Trash is empty.") {
		t.Fatalf("expected empty text, got %q", plain)
	}
}

func TestSortPickerKeys(t *testing.T) {
	p := NewSortPicker()
	p.Open(types.SortCreated)
	if p.Selected() != types.SortCreated {
		t.Fatalf("expected cursor on current mode, got %q", p.Selected())
	}
	action, _ := p.HandleKey(tea.KeyPressMsg{Code: tea.KeyDown})
	if action != sortPickerNone || p.Selected() != types.SortEdited {
		t.Fatalf("expected move to edited, got %v %q", action, p.Selected())
	}
	action, mode := p.HandleKey(tea.KeyPressMsg{Code: tea.KeyEnter})
	if action != sortPickerApply || mode != types.SortEdited {
		t.Fatalf("expected apply edited, got %v %q", action, mode)
	}
	action, mode = p.HandleKey(tea.KeyPressMsg{Code: tea.KeyEscape})
	if action != sortPickerClose || mode != types.SortCreated {
		t.Fatalf("expected close keeping current, got %v %q", action, mode)
	}
}

func TestTagManagerCountsActiveNotes(t *testing.T) {
	tm := NewTagManager()
	tm.SetSize(40, 10)
	counts := query.Counts{ByTag: map[string]int{"Coding": 1, "Quotes": 3}}
	plain := xansi.Strip(tm.View([]string{"Coding", "Quotes"}, counts, true))
	if !strings.Contains(plain, "1 note") || !strings.Contains(plain, "3 notes") {
		t.Fatalf("unexpected tag manager view %q", plain)
	}
}

func TestNoteGridDropsControlSequences(t *testing.T) {
	g := NewNoteGrid()
	g.SetSize(80, cardHeight*2)
	notes := gridNotes(1)
	notes[0].Title = "Evil\x1b]52;c;ZXZpbA==\x07"
	notes[0].Content = "<p>hi&#27;]0;title&#7;</p>\x1b[2J"
	notes[0].Tags = []string{"tag\x1b[2J"}

	out := g.View(notes, false, "empty")
	for _, seq := range []string{"\x1b]", "\x07", "\x1b[2J"} {
		if strings.Contains(out, seq) {
			t.Fatalf("expected %q to be stripped, got %q", seq, out)
		}
	}
	if plain := xansi.Strip(out); !strings.Contains(plain, "Evil]52;c;ZXZpbA==") || !strings.Contains(plain, "#tag[2J") {
		t.Fatalf("expected printable text to survive, got %q", plain)
	}
}
