package types

import "time"

type Background string

const (
	BackgroundRed    Background = "red"
	BackgroundBlue   Background = "blue"
	BackgroundYellow Background = "yellow"
	BackgroundNone   Background = "none"
)

// Backgrounds lists every background in the order the editor cycles through them.
func Backgrounds() []Background {
	return []Background{BackgroundRed, BackgroundBlue, BackgroundYellow, BackgroundNone}
}

func (b Background) Valid() bool {
	switch b {
	case BackgroundRed, BackgroundBlue, BackgroundYellow, BackgroundNone:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow  Priority = "low"
	PriorityHigh Priority = "high"
)

func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityHigh
}

// Rank orders priorities low before high.
func (p Priority) Rank() int {
	if p == PriorityHigh {
		return 1
	}
	return 0
}

// Note is a single rich-text entry. Content is an opaque markup fragment and
// is stored exactly as the editor produced it.
type Note struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Tags       []string   `json:"tags"`
	Background Background `json:"background"`
	Priority   Priority   `json:"priority"`
	CreatedAt  int64      `json:"createdAt"`
	UpdatedAt  int64      `json:"updatedAt"`
	Archived   bool       `json:"archived"`
	Trashed    bool       `json:"trashed"`
}

func (n Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (n Note) Created() time.Time {
	return time.UnixMilli(n.CreatedAt)
}

func (n Note) Updated() time.Time {
	return time.UnixMilli(n.UpdatedAt)
}

func CloneNote(note Note) Note {
	out := note
	if note.Tags != nil {
		out.Tags = append([]string(nil), note.Tags...)
	}
	return out
}

// NoteDraft carries editor input. An empty ID creates a new note.
type NoteDraft struct {
	ID         string     `validate:"omitempty"`
	Title      string
	Content    string
	Tags       []string   `validate:"dive,required"`
	Background Background `validate:"oneof=red blue yellow none"`
	Priority   Priority   `validate:"oneof=low high"`
}

// DraftFromNote pre-populates an editor draft from an existing note.
func DraftFromNote(note Note) NoteDraft {
	return NoteDraft{
		ID:         note.ID,
		Title:      note.Title,
		Content:    note.Content,
		Tags:       append([]string(nil), note.Tags...),
		Background: note.Background,
		Priority:   note.Priority,
	}
}
