package importer

import (
	"errors"
	"fmt"
)

var (
	// ErrDocumentFormat is returned when the export cannot be parsed. Nothing is written.
	ErrDocumentFormat = errors.New("invalid MyAnimeList export")
	// ErrCommit is returned when the batch could not be committed. Everything is rolled back.
	ErrCommit = errors.New("failed to commit import")
)

// Stage names the step an entry failed in.
type Stage string

const (
	StageMetadata Stage = "metadata"
	StageCatalog  Stage = "catalog"
	StageList     Stage = "list"
)

// EntryError records a recoverable failure for one entry.
type EntryError struct {
	ExternalID int
	Stage      Stage
	Err        error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("%s: entry %d: %v", e.Stage, e.ExternalID, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}
