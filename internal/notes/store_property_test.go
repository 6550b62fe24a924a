package notes

import (
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"keepnotes/internal/query"
	"keepnotes/internal/store"
	"keepnotes/internal/types"
)

const (
	opToggleArchived = iota
	opToggleTrashed
)

func propertyStore(t *testing.T, count int) (*Store, []string) {
	t.Helper()
	s := Open(context.Background(), store.NewStateStore(store.NewMemoryRepository()), WithIDSource(sequentialIDs()))
	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		note, err := s.UpsertNote(context.Background(), types.NoteDraft{Title: "p"})
		if err != nil {
			t.Fatalf("create note: %v", err)
		}
		ids = append(ids, note.ID)
	}
	return s, ids
}

func TestToggleSequencesNeverArchiveAndTrash(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("archived and trashed are exclusive", prop.ForAll(
		func(ops []int, targets []int) bool {
			ctx := context.Background()
			s, ids := propertyStore(t, 3)
			for i, op := range ops {
				id := ids[targets[i%len(targets)]%len(ids)]
				var err error
				if op == opToggleArchived {
					_, err = s.ToggleArchived(ctx, id)
				} else {
					_, err = s.ToggleTrashed(ctx, id)
				}
				if err != nil {
					return false
				}
			}
			for _, note := range s.Snapshot().Notes {
				if note.Archived && note.Trashed {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(opToggleArchived, opToggleTrashed)),
		gen.SliceOfN(4, gen.IntRange(0, 2)),
	))

	properties.TestingRun(t)
}

func TestDoubleToggleRestoresFlag(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("toggling twice is identity", prop.ForAll(
		func(archived, trashed, toggleArchive bool) bool {
			ctx := context.Background()
			s, ids := propertyStore(t, 1)
			id := ids[0]
			if archived {
				if _, err := s.ToggleArchived(ctx, id); err != nil {
					return false
				}
			}
			if trashed {
				if _, err := s.ToggleTrashed(ctx, id); err != nil {
					return false
				}
			}
			before, _ := s.Note(id)
			toggle := s.ToggleTrashed
			if toggleArchive {
				toggle = s.ToggleArchived
			}
			if _, err := toggle(ctx, id); err != nil {
				return false
			}
			after, err := toggle(ctx, id)
			if err != nil {
				return false
			}
			if toggleArchive {
				return after.Archived == before.Archived
			}
			return after.Trashed == before.Trashed
		},
		gen.Bool(),
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestNoteAppearsInExactlyOneView(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("each note is listed under a single view", prop.ForAll(
		func(ops []int) bool {
			ctx := context.Background()
			s, ids := propertyStore(t, 1)
			for _, op := range ops {
				toggle := s.ToggleTrashed
				if op == opToggleArchived {
					toggle = s.ToggleArchived
				}
				if _, err := toggle(ctx, ids[0]); err != nil {
					return false
				}
			}
			note, _ := s.Note(ids[0])
			hits := 0
			for _, view := range types.Views() {
				if query.FilterByView(note, view, "") {
					hits++
				}
			}
			return hits == 1
		},
		gen.SliceOf(gen.IntRange(opToggleArchived, opToggleTrashed)),
	))

	properties.TestingRun(t)
}
