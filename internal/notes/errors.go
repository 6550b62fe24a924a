package notes

import "errors"

var (
	ErrNoteNotFound = errors.New("note not found")
	ErrInvalidNote  = errors.New("invalid note")
	ErrInvalidTag   = errors.New("tag name is required")
	ErrTagNotFound  = errors.New("tag not found")
	ErrInvalidView  = errors.New("invalid view")
	ErrInvalidSort  = errors.New("invalid sort mode")
	ErrPersist      = errors.New("failed to persist notes")
)
