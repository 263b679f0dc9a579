package catalog

import "errors"

var (
	// ErrNotFound is returned when no catalogue entry matches.
	ErrNotFound = errors.New("catalog entry not found")
	// ErrInvalidQuery is returned for search or ranking parameters out of range.
	ErrInvalidQuery = errors.New("invalid catalog query")
	// ErrInvalidEntry is returned when an entry cannot be created as given.
	ErrInvalidEntry = errors.New("invalid catalog entry")
	// ErrConflict is returned when an external id is already catalogued.
	ErrConflict = errors.New("catalog entry already exists")
)
