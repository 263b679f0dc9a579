package library

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"media-tracker/feature/library/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the data-access layer of the list table.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store over db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// InList reports which of catalogIDs are on the user's list.
func (s *Store) InList(ctx context.Context, userID uint, catalogIDs []uint) (map[uint]bool, error) {
	found := make(map[uint]bool, len(catalogIDs))
	if len(catalogIDs) == 0 {
		return found, nil
	}

	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&models.ListEntry{}).
		Where("user_id = ? AND catalog_entry_id IN ?", userID, catalogIDs).
		Pluck("catalog_entry_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check list membership: %w", err)
	}
	for _, id := range ids {
		found[id] = true
	}
	return found, nil
}

// Find returns the user's entry for a catalogue entry.
func (s *Store) Find(ctx context.Context, userID, catalogID uint) (*models.ListEntry, error) {
	var e models.ListEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND catalog_entry_id = ?", userID, catalogID).
		First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find list entry: %w", err)
	}
	return &e, nil
}

// FindOrCreate returns the user's entry for a catalogue entry, inserting a
// Planned one when none exists. A concurrent insert of the same pair is
// rolled back to a savepoint and the stored row returned.
func (s *Store) FindOrCreate(ctx context.Context, userID, catalogID uint) (e *models.ListEntry, created bool, err error) {
	e, err = s.Find(ctx, userID, catalogID)
	if err == nil {
		return e, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	e = &models.ListEntry{UserID: userID, CatalogEntryID: catalogID, Status: models.StatusPlanned}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(e).Error
	})
	if err == nil {
		return e, true, nil
	}
	if !isDuplicate(err) {
		return nil, false, fmt.Errorf("failed to create list entry: %w", err)
	}

	e, err = s.Find(ctx, userID, catalogID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to re-read conflicting list entry: %w", err)
	}
	return e, false, nil
}

// Create inserts e. A duplicate (user, catalogue entry) pair returns ErrConflict.
func (s *Store) Create(ctx context.Context, e *models.ListEntry) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(e).Error
	})
	if err != nil {
		if isDuplicate(err) {
			return ErrConflict
		}
		return fmt.Errorf("failed to create list entry: %w", err)
	}
	return nil
}

// Get returns one entry with its catalogue entry.
func (s *Store) Get(ctx context.Context, id uint) (*models.ListEntry, error) {
	var e models.ListEntry
	if err := s.db.WithContext(ctx).Preload("Catalog").First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get list entry %d: %w", id, err)
	}
	return &e, nil
}

// Save writes every field of an existing entry, leaving the catalogue row alone.
func (s *Store) Save(ctx context.Context, e *models.ListEntry) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(e).Error; err != nil {
		return fmt.Errorf("failed to save list entry %d: %w", e.ID, err)
	}
	return nil
}

// Delete removes one entry.
func (s *Store) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.ListEntry{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete list entry %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns the user's entries, most recently updated first. An empty
// status lists everything.
func (s *Store) List(ctx context.Context, userID uint, status models.Status) ([]models.ListEntry, error) {
	tx := s.db.WithContext(ctx).Preload("Catalog").Where("user_id = ?", userID)
	if status != "" {
		tx = tx.Where("status = ?", status)
	}

	var rows []models.ListEntry
	if err := tx.Order("updated_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return rows, nil
}

// Stats summarizes a user's list.
type Stats struct {
	Total         int64                   `json:"total"`
	ByStatus      map[models.Status]int64 `json:"by_status"`
	MeanScore     *float64                `json:"mean_score,omitempty"`
	ScoredCount   int64                   `json:"scored_count"`
	TotalProgress int64                   `json:"total_progress"`
}

// Stats aggregates the user's list.
func (s *Store) Stats(ctx context.Context, userID uint) (*Stats, error) {
	st := &Stats{ByStatus: make(map[models.Status]int64, len(models.Statuses))}
	for _, status := range models.Statuses {
		st.ByStatus[status] = 0
	}

	var counts []struct {
		Status models.Status
		N      int64
	}
	err := s.db.WithContext(ctx).
		Model(&models.ListEntry{}).
		Select("status, COUNT(*) AS n").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count list entries: %w", err)
	}
	for _, c := range counts {
		st.ByStatus[c.Status] = c.N
		st.Total += c.N
	}

	var scores struct {
		Mean *float64
		N    int64
	}
	err = s.db.WithContext(ctx).
		Model(&models.ListEntry{}).
		Select("AVG(user_score) AS mean, COUNT(*) AS n").
		Where("user_id = ? AND user_score > 0", userID).
		Scan(&scores).Error
	if err != nil {
		return nil, fmt.Errorf("failed to average list scores: %w", err)
	}
	st.MeanScore = scores.Mean
	st.ScoredCount = scores.N

	var progress struct{ Total int64 }
	err = s.db.WithContext(ctx).
		Model(&models.ListEntry{}).
		Select("COALESCE(SUM(progress), 0) AS total").
		Where("user_id = ?", userID).
		Scan(&progress).Error
	if err != nil {
		return nil, fmt.Errorf("failed to total list progress: %w", err)
	}
	st.TotalProgress = progress.Total
	return st, nil
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "Duplicate entry")
}
