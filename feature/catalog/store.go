package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"media-tracker/feature/catalog/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the data-access layer of the catalogue table.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store over db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// FindByExternalIDs resolves a set of external ids with a single IN query.
func (s *Store) FindByExternalIDs(ctx context.Context, ids []int) (map[int]*models.CatalogEntry, error) {
	found := make(map[int]*models.CatalogEntry, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	var rows []*models.CatalogEntry
	if err := s.db.WithContext(ctx).Where("external_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to look up catalog entries: %w", err)
	}
	for _, row := range rows {
		if row.ExternalID != nil {
			found[*row.ExternalID] = row
		}
	}
	return found, nil
}

// GetByID returns one entry by primary key.
func (s *Store) GetByID(ctx context.Context, id uint) (*models.CatalogEntry, error) {
	var e models.CatalogEntry
	if err := s.db.WithContext(ctx).First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get catalog entry %d: %w", id, err)
	}
	return &e, nil
}

// GetByExternalID returns one entry by external id. The read locks the row
// where the dialect supports it, so a transaction sees rows committed by
// concurrent imports.
func (s *Store) GetByExternalID(ctx context.Context, externalID int) (*models.CatalogEntry, error) {
	var e models.CatalogEntry
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("external_id = ?", externalID).
		First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get catalog entry by external id %d: %w", externalID, err)
	}
	return &e, nil
}

// Create inserts e. When another writer already inserted the same external
// id, the insert is rolled back to a savepoint, e is replaced by the stored
// row and created is false.
func (s *Store) Create(ctx context.Context, e *models.CatalogEntry) (created bool, err error) {
	if strings.TrimSpace(e.Title) == "" {
		return false, fmt.Errorf("%w: title is required", ErrInvalidEntry)
	}
	if e.Kind == "" {
		e.Kind = models.KindAnime
	}

	// Nested transactions run as savepoints inside an outer transaction.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(e).Error
	})
	if err == nil {
		return true, nil
	}
	if !isDuplicate(err) || e.ExternalID == nil {
		return false, fmt.Errorf("failed to create catalog entry: %w", err)
	}

	existing, getErr := s.GetByExternalID(ctx, *e.ExternalID)
	if getErr != nil {
		return false, fmt.Errorf("failed to re-read conflicting catalog entry: %w", getErr)
	}
	*e = *existing
	return false, nil
}

// Save writes every field of an existing entry.
func (s *Store) Save(ctx context.Context, e *models.CatalogEntry) error {
	if err := s.db.WithContext(ctx).Save(e).Error; err != nil {
		return fmt.Errorf("failed to save catalog entry %d: %w", e.ID, err)
	}
	return nil
}

// ListWithExternalID pages through entries that have an external id, in id order.
func (s *Store) ListWithExternalID(ctx context.Context, afterID uint, limit int) ([]*models.CatalogEntry, error) {
	var rows []*models.CatalogEntry
	err := s.db.WithContext(ctx).
		Where("external_id IS NOT NULL AND id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog entries: %w", err)
	}
	return rows, nil
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// Fallback for connections opened without TranslateError.
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "Duplicate entry")
}
