// Package notes owns the in-memory StoreData. Every mutation goes through a
// named method and is persisted before the method returns.
package notes

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"keepnotes/internal/logging"
	"keepnotes/internal/markup"
	"keepnotes/internal/query"
	"keepnotes/internal/store"
	"keepnotes/internal/types"
)

type Store struct {
	mu          sync.Mutex
	data        types.StoreData
	state       store.StateStore
	now         func() time.Time
	newID       func() string
	logger      logging.Logger
	validate    *validator.Validate
	defaultTags []string
	loadErr     error
}

// Open loads the persisted state. An absent document starts from defaults; a
// corrupt or unreadable one does too, and the cause is kept in LoadError.
func Open(ctx context.Context, state store.StateStore, opts ...Option) *Store {
	s := &Store{
		state:       state,
		now:         time.Now,
		newID:       newNoteID,
		logger:      logging.Nop(),
		validate:    validator.New(),
		defaultTags: types.DefaultTags(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.mu.Lock()
	s.loadLocked(ctx)
	s.mu.Unlock()
	return s
}

func (s *Store) loadLocked(ctx context.Context) {
	s.loadErr = nil
	data, err := s.state.Load(ctx)
	switch {
	case err == nil:
		s.data = *data
		s.data.Normalize()
		scrubLabels(&s.data)
	case errors.Is(err, store.ErrStateNotFound):
		s.data = types.DefaultStoreData(s.defaultTags)
	default:
		s.loadErr = err
		s.data = types.DefaultStoreData(s.defaultTags)
		s.logger.Warn("state_load_failed", logging.F("error", err))
	}
}

// LoadError reports why the last load fell back to defaults, if it did.
func (s *Store) LoadError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// Reload replaces the in-memory state with the persisted document.
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)
	return s.loadErr
}

func (s *Store) Snapshot() types.StoreData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return types.CloneStoreData(s.data)
}

func (s *Store) Note(id string) (types.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return types.Note{}, false
	}
	return types.CloneNote(s.data.Notes[idx]), true
}

// Visible runs the query pipeline over the current state.
func (s *Store) Visible() []types.Note {
	return query.Visible(s.Snapshot())
}

func (s *Store) SetView(ctx context.Context, view types.View) error {
	if !view.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidView, view)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.View = view
	if view != types.ViewNotes {
		s.data.ActiveTag = ""
	}
	return s.persistLocked(ctx, "set_view")
}

// SetActiveTag filters the notes view by tag. An empty tag clears the filter.
func (s *Store) SetActiveTag(ctx context.Context, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.View = types.ViewNotes
	s.data.ActiveTag = strings.TrimSpace(tag)
	return s.persistLocked(ctx, "set_active_tag")
}

func (s *Store) SetSort(ctx context.Context, mode types.SortMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSort, mode)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Sort = mode
	return s.persistLocked(ctx, "set_sort")
}

// UpsertNote creates a note when draft.ID is empty and edits the matching
// note otherwise. Edits keep createdAt and the archived/trashed flags.
func (s *Store) UpsertNote(ctx context.Context, draft types.NoteDraft) (types.Note, error) {
	draft.ID = strings.TrimSpace(draft.ID)
	draft.Title = strings.TrimSpace(markup.Clean(draft.Title))
	draft.Tags = cleanTags(draft.Tags)
	if draft.Background == "" {
		draft.Background = types.BackgroundNone
	}
	if draft.Priority == "" {
		draft.Priority = types.PriorityLow
	}
	if err := s.validate.Struct(draft); err != nil {
		return types.Note{}, fmt.Errorf("%w: %v", ErrInvalidNote, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now().UnixMilli()

	if draft.ID == "" {
		note := types.Note{
			ID:         s.uniqueIDLocked(),
			Title:      draft.Title,
			Content:    draft.Content,
			Tags:       draft.Tags,
			Background: draft.Background,
			Priority:   draft.Priority,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		s.data.Notes = append(s.data.Notes, note)
		return types.CloneNote(note), s.persistLocked(ctx, "create_note", logging.F("note_id", note.ID))
	}

	idx := s.indexLocked(draft.ID)
	if idx < 0 {
		return types.Note{}, fmt.Errorf("%w: %s", ErrNoteNotFound, draft.ID)
	}
	note := &s.data.Notes[idx]
	note.Title = draft.Title
	note.Content = draft.Content
	note.Tags = draft.Tags
	note.Background = draft.Background
	note.Priority = draft.Priority
	note.UpdatedAt = max(now, note.CreatedAt)
	return types.CloneNote(*note), s.persistLocked(ctx, "update_note", logging.F("note_id", note.ID))
}

// ToggleArchived flips the archived flag. Archiving clears trashed.
func (s *Store) ToggleArchived(ctx context.Context, id string) (types.Note, error) {
	return s.mutateNote(ctx, id, "toggle_archived", func(note *types.Note) {
		note.Archived = !note.Archived
		if note.Archived {
			note.Trashed = false
		}
	})
}

// ToggleTrashed flips the trashed flag. Trashing clears archived.
func (s *Store) ToggleTrashed(ctx context.Context, id string) (types.Note, error) {
	return s.mutateNote(ctx, id, "toggle_trashed", func(note *types.Note) {
		note.Trashed = !note.Trashed
		if note.Trashed {
			note.Archived = false
		}
	})
}

// SetNoteTags replaces the tag selection of a note.
func (s *Store) SetNoteTags(ctx context.Context, id string, tags []string) (types.Note, error) {
	tags = cleanTags(tags)
	return s.mutateNote(ctx, id, "set_note_tags", func(note *types.Note) {
		note.Tags = tags
		note.UpdatedAt = max(s.now().UnixMilli(), note.CreatedAt)
	})
}

func (s *Store) mutateNote(ctx context.Context, id, op string, fn func(*types.Note)) (types.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return types.Note{}, fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	fn(&s.data.Notes[idx])
	note := types.CloneNote(s.data.Notes[idx])
	return note, s.persistLocked(ctx, op, logging.F("note_id", id))
}

// AddTag appends a tag. It reports false without saving when the tag exists.
func (s *Store) AddTag(ctx context.Context, name string) (bool, error) {
	name = cleanTag(name)
	if name == "" {
		return false, ErrInvalidTag
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.Contains(s.data.Tags, name) {
		return false, nil
	}
	s.data.Tags = append(s.data.Tags, name)
	return true, s.persistLocked(ctx, "add_tag", logging.F("tag", name))
}

// RemoveTag deletes a tag from the tag list and from every note in one
// mutation. A matching active tag filter is cleared.
func (s *Store) RemoveTag(ctx context.Context, name string) error {
	name = cleanTag(name)
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := slices.Index(s.data.Tags, name)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrTagNotFound, name)
	}
	s.data.Tags = slices.Delete(s.data.Tags, idx, idx+1)
	for i := range s.data.Notes {
		s.data.Notes[i].Tags = slices.DeleteFunc(s.data.Notes[i].Tags, func(tag string) bool {
			return tag == name
		})
	}
	if s.data.ActiveTag == name {
		s.data.ActiveTag = ""
	}
	return s.persistLocked(ctx, "remove_tag", logging.F("tag", name))
}

// persistLocked saves the whole document. On failure the in-memory state is
// kept and the error wraps ErrPersist.
func (s *Store) persistLocked(ctx context.Context, op string, fields ...logging.Field) error {
	if err := s.state.Save(ctx, &s.data); err != nil {
		s.logger.Error("state_save_failed", append(fields, logging.F("op", op), logging.F("error", err))...)
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	if s.logger.Enabled(logging.Debug) {
		s.logger.Debug("state_saved", append(fields, logging.F("op", op))...)
	}
	return nil
}

func (s *Store) indexLocked(id string) int {
	id = strings.TrimSpace(id)
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.data.Notes, func(note types.Note) bool {
		return note.ID == id
	})
}

func (s *Store) uniqueIDLocked() string {
	const attempts = 16
	for range attempts {
		id := s.newID()
		if s.indexLocked(id) < 0 {
			return id
		}
	}
	for {
		id := newNoteID()
		if s.indexLocked(id) < 0 {
			return id
		}
	}
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = cleanTag(tag)
		if tag == "" || slices.Contains(out, tag) {
			continue
		}
		out = append(out, tag)
	}
	return out
}

func cleanTag(tag string) string {
	return strings.TrimSpace(markup.Clean(tag))
}

// scrubLabels strips control characters from titles and tag names that came
// in through an import or a hand-edited document.
func scrubLabels(data *types.StoreData) {
	data.Tags = cleanTags(data.Tags)
	data.ActiveTag = cleanTag(data.ActiveTag)
	for i := range data.Notes {
		data.Notes[i].Title = strings.TrimSpace(markup.Clean(data.Notes[i].Title))
		data.Notes[i].Tags = cleanTags(data.Notes[i].Tags)
	}
}
