// Package query derives the visible note list from StoreData. Every function
// is pure; callers own the inputs.
package query

import (
	"cmp"
	"slices"

	"keepnotes/internal/types"
)

// FilterByView reports whether note belongs to view. The edit-tags view shows
// no notes.
func FilterByView(note types.Note, view types.View, activeTag string) bool {
	switch view {
	case types.ViewArchive:
		return !note.Trashed && note.Archived
	case types.ViewTrash:
		return note.Trashed
	case types.ViewNotes:
		if note.Archived || note.Trashed {
			return false
		}
		return activeTag == "" || note.HasTag(activeTag)
	default:
		return false
	}
}

// ApplySort returns a sorted copy of notes. The sort is stable so ties keep
// the order notes have in the store.
func ApplySort(notes []types.Note, mode types.SortMode) []types.Note {
	out := slices.Clone(notes)
	var compare func(a, b types.Note) int
	switch mode {
	case types.SortPrioAsc:
		compare = func(a, b types.Note) int { return cmp.Compare(a.Priority.Rank(), b.Priority.Rank()) }
	case types.SortPrioDesc:
		compare = func(a, b types.Note) int { return cmp.Compare(b.Priority.Rank(), a.Priority.Rank()) }
	case types.SortLatest:
		compare = func(a, b types.Note) int { return cmp.Compare(b.CreatedAt, a.CreatedAt) }
	case types.SortEdited:
		compare = func(a, b types.Note) int { return cmp.Compare(b.UpdatedAt, a.UpdatedAt) }
	default:
		compare = func(a, b types.Note) int { return cmp.Compare(a.CreatedAt, b.CreatedAt) }
	}
	slices.SortStableFunc(out, compare)
	return out
}

// Visible filters data by its current view and tag, then applies its sort.
func Visible(data types.StoreData) []types.Note {
	if data.View == types.ViewEditTags {
		return nil
	}
	filtered := make([]types.Note, 0, len(data.Notes))
	for _, note := range data.Notes {
		if FilterByView(note, data.View, data.ActiveTag) {
			filtered = append(filtered, note)
		}
	}
	return ApplySort(filtered, data.Sort)
}

func HeaderTitle(view types.View, activeTag string) string {
	switch view {
	case types.ViewArchive:
		return "Archive"
	case types.ViewTrash:
		return "Trash"
	case types.ViewEditTags:
		return "Edit Tags"
	}
	if activeTag != "" {
		return activeTag
	}
	return "Notes"
}

// Counts holds the sidebar badge numbers.
type Counts struct {
	Active   int
	Archived int
	Trashed  int
	ByTag    map[string]int
}

func (c Counts) ForView(view types.View) int {
	switch view {
	case types.ViewNotes:
		return c.Active
	case types.ViewArchive:
		return c.Archived
	case types.ViewTrash:
		return c.Trashed
	}
	return 0
}

// CountNotes tallies notes per view. Tag counts only include active notes.
func CountNotes(notes []types.Note) Counts {
	counts := Counts{ByTag: map[string]int{}}
	for _, note := range notes {
		switch {
		case note.Trashed:
			counts.Trashed++
		case note.Archived:
			counts.Archived++
		default:
			counts.Active++
			for _, tag := range note.Tags {
				counts.ByTag[tag]++
			}
		}
	}
	return counts
}
