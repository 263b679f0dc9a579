package catalog

import (
	"context"
	"fmt"
	"strings"

	"media-tracker/core/cache"
	"media-tracker/core/utils"
	"media-tracker/feature/catalog/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Membership reports which catalogue entries are on a user's list.
type Membership interface {
	InList(ctx context.Context, userID uint, catalogIDs []uint) (map[uint]bool, error)
}

// Service handles catalogue reads, admin creation and rankings.
type Service struct {
	store      *Store
	cfg        Config
	logger     *zap.Logger
	membership Membership
	facets     *cache.Store[*Facets]
	rankings   *cache.Store[[]Ranked]
}

// NewService creates a new catalogue service.
func NewService(db *gorm.DB, cfg Config, logger *zap.Logger) *Service {
	return &Service{
		store:    NewStore(db),
		cfg:      cfg,
		logger:   logger,
		facets:   cache.New[*Facets](cfg.cacheTTL()),
		rankings: cache.New[[]Ranked](cfg.cacheTTL()),
	}
}

// SetMembership enables the in_list flag on search results.
func (s *Service) SetMembership(m Membership) {
	s.membership = m
}

// Store exposes the underlying data-access layer.
func (s *Service) Store() *Store {
	return s.store
}

// InvalidateCaches drops cached facets and rankings after catalogue writes.
func (s *Service) InvalidateCaches() {
	s.facets.InvalidateAll()
	s.rankings.InvalidateAll()
}

// Get returns one entry.
func (s *Service) Get(ctx context.Context, id uint) (*models.CatalogEntry, error) {
	return s.store.GetByID(ctx, id)
}

// Search runs a catalogue search on behalf of userID (0 for anonymous).
func (s *Service) Search(ctx context.Context, p SearchParams, userID uint) (*SearchResult, error) {
	if err := p.Normalize(); err != nil {
		return nil, err
	}

	rows, total, err := s.store.Search(ctx, p)
	if err != nil {
		return nil, err
	}

	inList := map[uint]bool{}
	if userID != 0 && s.membership != nil && len(rows) > 0 {
		ids := make([]uint, len(rows))
		for i := range rows {
			ids[i] = rows[i].ID
		}
		if inList, err = s.membership.InList(ctx, userID, ids); err != nil {
			return nil, err
		}
	}

	items := make([]SearchItem, len(rows))
	for i := range rows {
		items[i] = SearchItem{CatalogEntry: rows[i], InList: inList[rows[i].ID]}
	}

	return &SearchResult{
		Items:   items,
		Total:   total,
		Page:    p.Page,
		PerPage: p.PerPage,
		HasNext: int64(p.Page*p.PerPage) < total,
	}, nil
}

// Facets returns the cached filter values.
func (s *Service) Facets(ctx context.Context) (*Facets, error) {
	return s.facets.GetOrBuild(ctx, "facets", s.store.LoadFacets)
}

// Top returns the ranked listing for q, cached per query.
func (s *Service) Top(ctx context.Context, q RankingQuery) ([]Ranked, error) {
	if q.Limit <= 0 {
		q.Limit = s.cfg.topLimit()
	}
	if q.Limit > maxPerPage {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidQuery, maxPerPage)
	}
	if q.Year != nil && (*q.Year < minYear || *q.Year > maxYear) {
		return nil, fmt.Errorf("%w: year must be between %d and %d", ErrInvalidQuery, minYear, maxYear)
	}
	q.Tag = strings.TrimSpace(q.Tag)

	return s.rankings.GetOrBuild(ctx, q.key(), func(ctx context.Context) ([]Ranked, error) {
		prior, ok, err := s.store.AverageScore(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			prior = s.cfg.defaultScore()
		}
		return s.store.TopRanked(ctx, q, s.cfg.minVotes(), prior)
	})
}

// CreateInput is an administrative catalogue addition.
type CreateInput struct {
	ExternalID   *int        `json:"external_id"`
	Title        string      `json:"title"`
	AltTitle     string      `json:"alt_title"`
	Kind         models.Kind `json:"kind"`
	Synopsis     string      `json:"synopsis"`
	ImageURL     string      `json:"image_url"`
	Tags         []string    `json:"tags"`
	Themes       []string    `json:"themes"`
	Demographics []string    `json:"demographics"`
	Studios      []string    `json:"studios"`
	Source       string      `json:"source"`
	ReleaseYear  *int        `json:"release_year"`
	TotalUnits   *int        `json:"total_units"`
}

// Create adds a catalogue entry by hand.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.CatalogEntry, error) {
	kind := models.KindManhwa
	if in.Kind != "" {
		k, ok := models.ParseKind(string(in.Kind))
		if !ok {
			return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidEntry, in.Kind)
		}
		kind = k
	}
	if in.ExternalID != nil && *in.ExternalID <= 0 {
		return nil, fmt.Errorf("%w: external_id must be positive", ErrInvalidEntry)
	}
	if in.TotalUnits != nil && *in.TotalUnits < 0 {
		return nil, fmt.Errorf("%w: total_units must not be negative", ErrInvalidEntry)
	}
	if in.ReleaseYear != nil && (*in.ReleaseYear < minYear || *in.ReleaseYear > maxYear) {
		return nil, fmt.Errorf("%w: release_year must be between %d and %d", ErrInvalidEntry, minYear, maxYear)
	}

	e := &models.CatalogEntry{
		ExternalID:   in.ExternalID,
		Title:        strings.TrimSpace(in.Title),
		AltTitle:     strings.TrimSpace(in.AltTitle),
		Kind:         kind,
		Synopsis:     strings.TrimSpace(in.Synopsis),
		ImageURL:     strings.TrimSpace(in.ImageURL),
		Tags:         utils.JoinSet(in.Tags),
		Themes:       utils.JoinSet(in.Themes),
		Demographics: utils.JoinSet(in.Demographics),
		Studios:      utils.JoinSet(in.Studios),
		Source:       strings.TrimSpace(in.Source),
		ReleaseYear:  in.ReleaseYear,
		TotalUnits:   in.TotalUnits,
	}

	created, err := s.store.Create(ctx, e)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, fmt.Errorf("%w: external id %d", ErrConflict, *in.ExternalID)
	}

	s.InvalidateCaches()
	s.logger.Info("Catalog entry created", zap.Uint("id", e.ID), zap.String("title", e.Title))
	return e, nil
}
