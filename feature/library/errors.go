package library

import "errors"

var (
	// ErrNotFound is returned when a list entry or its catalogue entry does not exist.
	ErrNotFound = errors.New("list entry not found")
	// ErrForbidden is returned when a user touches another user's entry.
	ErrForbidden = errors.New("list entry belongs to another user")
	// ErrConflict is returned when the title is already on the user's list.
	ErrConflict = errors.New("title already on list")
	// ErrInvalidEntry is returned for out-of-range status, progress or score.
	ErrInvalidEntry = errors.New("invalid list entry")
)
