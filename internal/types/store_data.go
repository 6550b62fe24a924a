package types

import (
	"encoding/json"
	"errors"
	"strings"
)

type View string

const (
	ViewNotes    View = "notes"
	ViewArchive  View = "archive"
	ViewTrash    View = "trash"
	ViewEditTags View = "edit-tags"
)

// Views lists the navigation entries in sidebar order.
func Views() []View {
	return []View{ViewNotes, ViewArchive, ViewTrash, ViewEditTags}
}

func (v View) Valid() bool {
	switch v {
	case ViewNotes, ViewArchive, ViewTrash, ViewEditTags:
		return true
	}
	return false
}

func ParseView(raw string) (View, bool) {
	v := View(strings.ToLower(strings.TrimSpace(raw)))
	return v, v.Valid()
}

// SortMode is empty when no sort is selected.
type SortMode string

const (
	SortNone     SortMode = ""
	SortPrioAsc  SortMode = "prio-asc"
	SortPrioDesc SortMode = "prio-desc"
	SortLatest   SortMode = "latest"
	SortCreated  SortMode = "created"
	SortEdited   SortMode = "edited"
)

// SortModes lists the selectable modes in picker order.
func SortModes() []SortMode {
	return []SortMode{SortPrioAsc, SortPrioDesc, SortLatest, SortCreated, SortEdited}
}

func (m SortMode) Valid() bool {
	switch m {
	case SortNone, SortPrioAsc, SortPrioDesc, SortLatest, SortCreated, SortEdited:
		return true
	}
	return false
}

func ParseSortMode(raw string) (SortMode, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "none" || value == "null" {
		return SortNone, true
	}
	m := SortMode(value)
	return m, m.Valid()
}

func (m SortMode) Label() string {
	switch m {
	case SortPrioAsc:
		return "Priority (low first)"
	case SortPrioDesc:
		return "Priority (high first)"
	case SortLatest:
		return "Latest created"
	case SortCreated:
		return "Created"
	case SortEdited:
		return "Last edited"
	default:
		return "None"
	}
}

// StoreData is the whole application state. It is persisted as a single
// document and replaced wholesale on load.
type StoreData struct {
	Notes     []Note
	Tags      []string
	Sort      SortMode
	View      View
	ActiveTag string
}

type storeDataJSON struct {
	Notes     []Note    `json:"notes"`
	Tags      []string  `json:"tags"`
	Sort      *SortMode `json:"sort"`
	View      View      `json:"view"`
	ActiveTag *string   `json:"activeTag"`
}

func (d StoreData) MarshalJSON() ([]byte, error) {
	out := storeDataJSON{
		Notes: d.Notes,
		Tags:  d.Tags,
		View:  d.View,
	}
	if out.Notes == nil {
		out.Notes = []Note{}
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	if d.Sort != SortNone {
		sort := d.Sort
		out.Sort = &sort
	}
	if d.ActiveTag != "" {
		tag := d.ActiveTag
		out.ActiveTag = &tag
	}
	return json.Marshal(out)
}

var errNoDocument = errors.New("document has no notes or tags")

func (d *StoreData) UnmarshalJSON(raw []byte) error {
	var in storeDataJSON
	if err := json.Unmarshal(raw, &in); err != nil {
		return err
	}
	if in.Notes == nil && in.Tags == nil {
		return errNoDocument
	}
	d.Notes = in.Notes
	d.Tags = in.Tags
	d.View = in.View
	d.Sort = SortNone
	if in.Sort != nil {
		d.Sort = *in.Sort
	}
	d.ActiveTag = ""
	if in.ActiveTag != nil {
		d.ActiveTag = *in.ActiveTag
	}
	d.Normalize()
	return nil
}

// Normalize fills nil collections, repairs a missing view and enforces that a
// note is never both archived and trashed (trash wins).
func (d *StoreData) Normalize() {
	if d.Notes == nil {
		d.Notes = []Note{}
	}
	if d.Tags == nil {
		d.Tags = []string{}
	}
	if !d.View.Valid() {
		d.View = ViewNotes
	}
	if !d.Sort.Valid() {
		d.Sort = SortNone
	}
	for i := range d.Notes {
		if d.Notes[i].Tags == nil {
			d.Notes[i].Tags = []string{}
		}
		if !d.Notes[i].Background.Valid() {
			d.Notes[i].Background = BackgroundNone
		}
		if !d.Notes[i].Priority.Valid() {
			d.Notes[i].Priority = PriorityLow
		}
		if d.Notes[i].Archived && d.Notes[i].Trashed {
			d.Notes[i].Archived = false
		}
		if d.Notes[i].UpdatedAt < d.Notes[i].CreatedAt {
			d.Notes[i].UpdatedAt = d.Notes[i].CreatedAt
		}
	}
}

var defaultTags = []string{"Coding", "Exercise", "Quotes", "태그1"}

func DefaultTags() []string {
	return append([]string(nil), defaultTags...)
}

// DefaultStoreData is the state used on first start or after a corrupt load.
func DefaultStoreData(tags []string) StoreData {
	if tags == nil {
		tags = DefaultTags()
	}
	return StoreData{
		Notes: []Note{},
		Tags:  append([]string{}, tags...),
		Sort:  SortCreated,
		View:  ViewNotes,
	}
}

func CloneStoreData(d StoreData) StoreData {
	out := d
	out.Notes = make([]Note, len(d.Notes))
	for i, note := range d.Notes {
		out.Notes[i] = CloneNote(note)
	}
	out.Tags = append([]string{}, d.Tags...)
	return out
}
