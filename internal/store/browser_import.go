package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"keepnotes/internal/types"
)

// browserNote is the note shape the browser widget kept in localStorage.
// Native exports use content/background and are accepted as well.
type browserNote struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	HTML       string           `json:"html"`
	Content    string           `json:"content"`
	Tags       []string         `json:"tags"`
	Bg         types.Background `json:"bg"`
	Background types.Background `json:"background"`
	Priority   types.Priority   `json:"priority"`
	CreatedAt  int64            `json:"createdAt"`
	UpdatedAt  int64            `json:"updatedAt"`
	Archived   *bool            `json:"archived"`
	Trashed    *bool            `json:"trashed"`
}

type browserExport struct {
	Notes     []browserNote `json:"notes"`
	Tags      []string      `json:"tags"`
	Sort      *string       `json:"sort"`
	View      string        `json:"view"`
	ActiveTag *string       `json:"activeTag"`
}

// ParseBrowserExport converts a localStorage dump of the browser widget into
// StoreData. Optional archived/trashed flags become explicit booleans.
func ParseBrowserExport(raw []byte) (*types.StoreData, error) {
	var in browserExport
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	if in.Notes == nil && in.Tags == nil {
		return nil, fmt.Errorf("%w: no notes or tags in document", ErrCorruptState)
	}
	data := &types.StoreData{
		Notes: make([]types.Note, 0, len(in.Notes)),
		Tags:  in.Tags,
		View:  types.View(in.View),
	}
	if in.Sort != nil {
		if mode, ok := types.ParseSortMode(*in.Sort); ok {
			data.Sort = mode
		}
	}
	if in.ActiveTag != nil {
		data.ActiveTag = *in.ActiveTag
	}
	for _, item := range in.Notes {
		note := types.Note{
			ID:         item.ID,
			Title:      item.Title,
			Content:    item.HTML,
			Tags:       item.Tags,
			Background: item.Bg,
			Priority:   item.Priority,
			CreatedAt:  item.CreatedAt,
			UpdatedAt:  item.UpdatedAt,
		}
		if note.Content == "" {
			note.Content = item.Content
		}
		if note.Background == "" {
			note.Background = item.Background
		}
		if !note.Background.Valid() {
			note.Background = types.BackgroundNone
		}
		if !note.Priority.Valid() {
			note.Priority = types.PriorityLow
		}
		if item.Archived != nil {
			note.Archived = *item.Archived
		}
		if item.Trashed != nil {
			note.Trashed = *item.Trashed
		}
		data.Notes = append(data.Notes, note)
	}
	data.Normalize()
	return data, nil
}

// SeedFromBrowserExport writes an imported document into dst. Existing state
// is left alone unless force is set; the boolean reports whether it wrote.
func SeedFromBrowserExport(ctx context.Context, dst StateStore, raw []byte, force bool) (bool, error) {
	if dst == nil {
		return false, errors.New("state store is required")
	}
	if !force {
		_, err := dst.Load(ctx)
		switch {
		case err == nil:
			return false, nil
		case errors.Is(err, ErrStateNotFound), errors.Is(err, ErrCorruptState):
		default:
			return false, err
		}
	}
	data, err := ParseBrowserExport(raw)
	if err != nil {
		return false, err
	}
	if err := dst.Save(ctx, data); err != nil {
		return false, err
	}
	return true, nil
}
