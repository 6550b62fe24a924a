package notes

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"keepnotes/internal/logging"
)

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDSource replaces the generator used for new note ids.
func WithIDSource(newID func() string) Option {
	return func(s *Store) {
		if newID != nil {
			s.newID = newID
		}
	}
}

func WithLogger(logger logging.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDefaultTags sets the tag list used when no state has been persisted.
func WithDefaultTags(tags []string) Option {
	return func(s *Store) {
		s.defaultTags = append([]string{}, tags...)
	}
}

// newNoteID returns 8 lowercase hex characters.
func newNoteID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
