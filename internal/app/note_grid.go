package app

import (
	"strings"

	"charm.land/lipgloss/v2"

	"keepnotes/internal/markup"
	"keepnotes/internal/types"
)

const (
	minCardWidth     = 28
	cardGap          = 1
	cardPreviewLines = 2
	cardHeight       = cardPreviewLines + 5
	untitledLabel    = "Untitled"
	dateLayout       = "2006-01-02"
)

// NoteGrid lays note cards out in rows and tracks the selected card.
type NoteGrid struct {
	selected int
	offset   int
	width    int
	height   int
}

func NewNoteGrid() *NoteGrid {
	return &NoteGrid{}
}

func (g *NoteGrid) SetSize(width, height int) {
	g.width = width
	g.height = height
}

func (g *NoteGrid) columns() int {
	return max(1, (g.width+cardGap)/(minCardWidth+cardGap))
}

func (g *NoteGrid) cardWidth() int {
	cols := g.columns()
	return max(minCardWidth/2, (g.width-(cols-1)*cardGap)/cols)
}

func (g *NoteGrid) visibleRows() int {
	return max(1, g.height/cardHeight)
}

// Clamp keeps the selection inside a list of count notes.
func (g *NoteGrid) Clamp(count int) {
	if count <= 0 {
		g.selected = 0
		g.offset = 0
		return
	}
	g.selected = clamp(g.selected, 0, count-1)
	g.scrollToSelected()
}

func (g *NoteGrid) Move(delta, count int) {
	if count <= 0 {
		return
	}
	g.selected = clamp(g.selected+delta, 0, count-1)
	g.scrollToSelected()
}

func (g *NoteGrid) MoveRow(delta, count int) {
	g.Move(delta*g.columns(), count)
}

func (g *NoteGrid) Selected() int {
	return g.selected
}

func (g *NoteGrid) scrollToSelected() {
	row := g.selected / g.columns()
	rows := g.visibleRows()
	if row < g.offset {
		g.offset = row
	}
	if row >= g.offset+rows {
		g.offset = row - rows + 1
	}
}

func (g *NoteGrid) View(notes []types.Note, focused bool, emptyText string) string {
	if len(notes) == 0 {
		return lipgloss.Place(max(1, g.width), max(1, g.height), lipgloss.Center, lipgloss.Center, emptyStateStyle.Render(emptyText))
	}
	cols := g.columns()
	width := g.cardWidth()
	start := g.offset * cols
	end := min(len(notes), start+g.visibleRows()*cols)

	var rows []string
	for rowStart := start; rowStart < end; rowStart += cols {
		cards := make([]string, 0, cols*2)
		for i := rowStart; i < min(end, rowStart+cols); i++ {
			if i > rowStart {
				cards = append(cards, strings.Repeat(" ", cardGap))
			}
			cards = append(cards, renderCard(notes[i], width, focused && i == g.selected))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return strings.Join(rows, "\n")
}

func renderCard(note types.Note, width int, selected bool) string {
	inner := max(1, width-4)

	title := cardUntitledStyle.Render(truncateToWidth(untitledLabel, inner))
	if label := markup.Label(note.Title); label != "" {
		title = cardTitleStyle.Render(truncateToWidth(label, inner))
	}
	lines := []string{title}

	preview := wrapLines(markup.Plain(note.Content), inner, cardPreviewLines)
	for i := 0; i < cardPreviewLines; i++ {
		text := ""
		if i < len(preview) {
			text = preview[i]
		}
		lines = append(lines, cardBodyStyle.Render(padToWidth(text, inner)))
	}

	tagParts := make([]string, 0, len(note.Tags))
	for _, tag := range note.Tags {
		tagParts = append(tagParts, "#"+markup.Label(tag))
	}
	lines = append(lines, cardTagStyle.Render(truncateToWidth(strings.Join(tagParts, " "), inner)))

	priority := cardMetaStyle.Render(string(note.Priority))
	if note.Priority == types.PriorityHigh {
		priority = priorityHighStyle.Render("high")
	}
	swatch := lipgloss.NewStyle().Foreground(backgroundColor(note.Background)).Render("●")
	meta := cardMetaStyle.Render(note.Created().Format(dateLayout)+" · ") + priority + " " + swatch
	lines = append(lines, truncateToWidth(meta, inner))

	return cardBorderStyle(note.Background, selected).Width(width).Render(strings.Join(lines, "\n"))
}
