package library

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"media-tracker/core/utils"
	"media-tracker/feature/catalog"
	catalogmodels "media-tracker/feature/catalog/models"
	"media-tracker/feature/library/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles list mutations on behalf of a user.
type Service struct {
	store   *Store
	catalog *catalog.Store
	logger  *zap.Logger
}

// NewService creates a new list service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{
		store:   NewStore(db),
		catalog: catalog.NewStore(db),
		logger:  logger,
	}
}

// Store exposes the underlying data-access layer.
func (s *Service) Store() *Store {
	return s.store
}

// AddInput puts a title on the list.
type AddInput struct {
	CatalogEntryID uint   `json:"catalog_entry_id"`
	Status         string `json:"status"`
	Progress       int    `json:"progress"`
	UserScore      int    `json:"user_score"`
	Notes          string `json:"notes"`
}

// Add creates a list entry for a catalogue entry.
func (s *Service) Add(ctx context.Context, userID uint, in AddInput) (*models.ListEntry, error) {
	if in.CatalogEntryID == 0 {
		return nil, fmt.Errorf("%w: catalog_entry_id is required", ErrInvalidEntry)
	}
	ce, err := s.catalog.GetByID(ctx, in.CatalogEntryID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, fmt.Errorf("%w: catalog entry %d", ErrNotFound, in.CatalogEntryID)
		}
		return nil, err
	}

	e := &models.ListEntry{UserID: userID, CatalogEntryID: ce.ID, Status: models.StatusPlanned}
	status := in.Status
	score, notes := in.UserScore, in.Notes
	p := Patch{Status: &status, UserScore: &score, Notes: &notes}
	if in.Progress != 0 {
		progress := in.Progress
		p.Progress = &progress
	}
	if err := apply(e, ce, p); err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, e); err != nil {
		return nil, err
	}
	e.Catalog = ce
	s.logger.Debug("List entry added", zap.Uint("user_id", userID), zap.Uint("catalog_entry_id", ce.ID))
	return e, nil
}

// Patch is a partial list entry update. Nil fields are left unchanged.
type Patch struct {
	Status    *string `json:"status"`
	Progress  *int    `json:"progress"`
	UserScore *int    `json:"user_score"`
	Notes     *string `json:"notes"`
}

// Update applies a patch to one of the user's entries.
func (s *Service) Update(ctx context.Context, userID, entryID uint, p Patch) (*models.ListEntry, error) {
	e, err := s.owned(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}
	if err := apply(e, e.Catalog, p); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete removes one of the user's entries.
func (s *Service) Delete(ctx context.Context, userID, entryID uint) error {
	if _, err := s.owned(ctx, userID, entryID); err != nil {
		return err
	}
	return s.store.Delete(ctx, entryID)
}

// Facets are the filter values present on a user's list.
type Facets struct {
	Statuses []models.Status      `json:"statuses"`
	Kinds    []catalogmodels.Kind `json:"kinds"`
	Tags     []string             `json:"tags"`
}

// ListResult is a user's list with its facets.
type ListResult struct {
	Items  []models.ListEntry `json:"items"`
	Facets Facets             `json:"facets"`
}

// List returns the user's list, optionally narrowed to one status. Facets
// always describe the whole list.
func (s *Service) List(ctx context.Context, userID uint, status string) (*ListResult, error) {
	var filter models.Status
	if strings.TrimSpace(status) != "" {
		st, ok := models.ParseStatus(status)
		if !ok {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidEntry, status)
		}
		filter = st
	}

	all, err := s.store.List(ctx, userID, "")
	if err != nil {
		return nil, err
	}

	res := &ListResult{Items: make([]models.ListEntry, 0, len(all))}
	statuses := map[models.Status]bool{}
	kinds := map[catalogmodels.Kind]bool{}
	var tags []string
	for _, e := range all {
		statuses[e.Status] = true
		if e.Catalog != nil {
			kinds[e.Catalog.Kind] = true
			tags = append(tags, e.Catalog.Tags)
		}
		if filter == "" || e.Status == filter {
			res.Items = append(res.Items, e)
		}
	}

	for _, st := range models.Statuses {
		if statuses[st] {
			res.Facets.Statuses = append(res.Facets.Statuses, st)
		}
	}
	for _, k := range catalogmodels.Kinds {
		if kinds[k] {
			res.Facets.Kinds = append(res.Facets.Kinds, k)
		}
	}
	res.Facets.Tags = utils.UnionSorted(tags)
	return res, nil
}

// Stats summarizes the user's list.
func (s *Service) Stats(ctx context.Context, userID uint) (*Stats, error) {
	return s.store.Stats(ctx, userID)
}

func (s *Service) owned(ctx context.Context, userID, entryID uint) (*models.ListEntry, error) {
	e, err := s.store.Get(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if e.UserID != userID {
		return nil, ErrForbidden
	}
	return e, nil
}

// apply validates and merges p into e. Progress is clamped to the
// catalogue entry's length; completing an entry fills progress to it.
func apply(e *models.ListEntry, ce *catalogmodels.CatalogEntry, p Patch) error {
	var total *int
	if ce != nil {
		total = ce.TotalUnits
	}
	previous := e.Status

	if p.Status != nil && strings.TrimSpace(*p.Status) != "" {
		st, ok := models.ParseStatus(*p.Status)
		if !ok {
			return fmt.Errorf("%w: unknown status %q", ErrInvalidEntry, *p.Status)
		}
		e.Status = st
	}
	if p.UserScore != nil {
		if *p.UserScore < 0 || *p.UserScore > models.MaxUserScore {
			return fmt.Errorf("%w: user_score must be between 0 and %d", ErrInvalidEntry, models.MaxUserScore)
		}
		e.UserScore = *p.UserScore
	}
	if p.Notes != nil {
		e.Notes = strings.TrimSpace(*p.Notes)
	}
	if p.Progress != nil {
		e.Progress = *p.Progress
	}

	// Only a switch to Completed without an explicit progress fills it.
	if e.Status == models.StatusCompleted && previous != models.StatusCompleted && p.Progress == nil {
		e.MarkCompleted(total)
	}
	e.Progress = models.ClampProgress(e.Progress, total)
	return nil
}
