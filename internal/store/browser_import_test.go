package store

import (
	"context"
	"errors"
	"testing"

	"keepnotes/internal/types"
)

const browserDump = `{
  "notes": [
    {"id":"n1","title":"Quote","html":"<i>carpe</i>","tags":["Quotes"],"bg":"yellow","priority":"high","createdAt":10,"updatedAt":20},
    {"id":"n2","title":"","html":"","tags":[],"bg":"purple","priority":"","createdAt":30,"updatedAt":5,"archived":true,"trashed":true}
  ],
  "tags": ["Coding","Quotes"],
  "sort": null,
  "view": "archive",
  "activeTag": null
}`

func TestParseBrowserExport(t *testing.T) {
	data, err := ParseBrowserExport([]byte(browserDump))
	if err != nil {
		t.Fatalf("ParseBrowserExport: %v", err)
	}
	if len(data.Notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(data.Notes))
	}
	first := data.Notes[0]
	if first.Content != "<i>carpe</i>" || first.Background != types.BackgroundYellow || first.Priority != types.PriorityHigh {
		t.Fatalf("unexpected first note: %#v", first)
	}
	if first.Archived || first.Trashed {
		t.Fatalf("absent flags should decode as false: %#v", first)
	}
	second := data.Notes[1]
	if second.Background != types.BackgroundNone || second.Priority != types.PriorityLow {
		t.Fatalf("expected invalid enums to fall back: %#v", second)
	}
	if second.Archived && second.Trashed {
		t.Fatalf("archived and trashed must not both be set: %#v", second)
	}
	if second.UpdatedAt < second.CreatedAt {
		t.Fatalf("updatedAt must not precede createdAt: %#v", second)
	}
	if data.Sort != types.SortNone || data.View != types.ViewArchive || data.ActiveTag != "" {
		t.Fatalf("unexpected view state: %#v", data)
	}
}

func TestParseBrowserExportRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "[]", "{}", "nope"} {
		if _, err := ParseBrowserExport([]byte(raw)); !errors.Is(err, ErrCorruptState) {
			t.Fatalf("expected ErrCorruptState for %q, got %v", raw, err)
		}
	}
}

func TestSeedFromBrowserExportRespectsExisting(t *testing.T) {
	ctx := context.Background()
	state := NewStateStore(NewMemoryRepository())
	existing := types.DefaultStoreData([]string{"Mine"})
	if err := state.Save(ctx, &existing); err != nil {
		t.Fatalf("save: %v", err)
	}

	wrote, err := SeedFromBrowserExport(ctx, state, []byte(browserDump), false)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if wrote {
		t.Fatalf("expected existing state to be kept")
	}
	loaded, _ := state.Load(ctx)
	if len(loaded.Tags) != 1 || loaded.Tags[0] != "Mine" {
		t.Fatalf("existing state was overwritten: %#v", loaded.Tags)
	}

	wrote, err = SeedFromBrowserExport(ctx, state, []byte(browserDump), true)
	if err != nil {
		t.Fatalf("forced seed: %v", err)
	}
	if !wrote {
		t.Fatalf("expected forced seed to write")
	}
	loaded, _ = state.Load(ctx)
	if len(loaded.Notes) != 2 {
		t.Fatalf("expected imported notes, got %#v", loaded.Notes)
	}
}

func TestSeedFromBrowserExportIntoEmpty(t *testing.T) {
	ctx := context.Background()
	state := NewStateStore(NewMemoryRepository())
	wrote, err := SeedFromBrowserExport(ctx, state, []byte(browserDump), false)
	if err != nil || !wrote {
		t.Fatalf("expected seed into empty store, wrote=%v err=%v", wrote, err)
	}
}
