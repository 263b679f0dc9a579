package catalog

import (
	"context"
	"fmt"
	"strings"

	"media-tracker/core/utils"
	"media-tracker/feature/catalog/models"

	"gorm.io/gorm"
)

// Sort orders accepted by Search.
const (
	SortPopularity = "popularity"
	SortScore      = "score"
	SortTitle      = "title"
	SortYear       = "year"
)

const (
	minYear        = 1900
	maxYear        = 2100
	maxPage        = 100
	maxPerPage     = 100
	defaultPerPage = 20
)

// SearchParams are the catalogue search filters. Tags, Themes and
// Demographics require every listed member to be present.
type SearchParams struct {
	Query        string
	Tags         []string
	Themes       []string
	Demographics []string
	Studio       string
	Year         *int
	Kind         models.Kind
	Sort         string
	Page         int
	PerPage      int
}

// Normalize fills defaults and validates ranges.
func (p *SearchParams) Normalize() error {
	p.Query = strings.TrimSpace(p.Query)
	p.Studio = strings.TrimSpace(p.Studio)
	if p.Sort == "" {
		p.Sort = SortPopularity
	}
	if p.Page == 0 {
		p.Page = 1
	}
	if p.PerPage == 0 {
		p.PerPage = defaultPerPage
	}

	switch p.Sort {
	case SortPopularity, SortScore, SortTitle, SortYear:
	default:
		return fmt.Errorf("%w: sort must be one of popularity, score, title, year", ErrInvalidQuery)
	}
	if p.Page < 1 || p.Page > maxPage {
		return fmt.Errorf("%w: page must be between 1 and %d", ErrInvalidQuery, maxPage)
	}
	if p.PerPage < 1 || p.PerPage > maxPerPage {
		return fmt.Errorf("%w: per_page must be between 1 and %d", ErrInvalidQuery, maxPerPage)
	}
	if p.Year != nil && (*p.Year < minYear || *p.Year > maxYear) {
		return fmt.Errorf("%w: year must be between %d and %d", ErrInvalidQuery, minYear, maxYear)
	}
	if p.Kind != "" {
		if _, ok := models.ParseKind(string(p.Kind)); !ok {
			return fmt.Errorf("%w: unknown kind %q", ErrInvalidQuery, p.Kind)
		}
	}
	return nil
}

// SearchItem is one search hit.
type SearchItem struct {
	models.CatalogEntry
	InList bool `json:"in_list"`
}

// SearchResult is one page of search hits.
type SearchResult struct {
	Items   []SearchItem `json:"items"`
	Total   int64        `json:"total"`
	Page    int          `json:"page"`
	PerPage int          `json:"per_page"`
	HasNext bool         `json:"has_next"`
}

// Search runs a filtered, sorted and paginated query. p must be normalized.
func (s *Store) Search(ctx context.Context, p SearchParams) ([]models.CatalogEntry, int64, error) {
	tx := s.db.WithContext(ctx).Model(&models.CatalogEntry{})

	if p.Query != "" {
		term := "%" + strings.ToLower(p.Query) + "%"
		tx = tx.Where("LOWER(title) LIKE ? OR LOWER(alt_title) LIKE ?", term, term)
	}
	tx = containsAll(tx, "tags", p.Tags)
	tx = containsAll(tx, "themes", p.Themes)
	tx = containsAll(tx, "demographics", p.Demographics)
	if p.Studio != "" {
		tx = tx.Where("LOWER(studios) LIKE ?", "%"+strings.ToLower(p.Studio)+"%")
	}
	if p.Year != nil {
		tx = tx.Where("release_year = ?", *p.Year)
	}
	if p.Kind != "" {
		tx = tx.Where("kind = ?", p.Kind)
	}

	// Session makes the filtered chain reusable for both queries.
	tx = tx.Session(&gorm.Session{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count search results: %w", err)
	}

	var rows []models.CatalogEntry
	err := applySort(tx, p.Sort).
		Offset((p.Page - 1) * p.PerPage).
		Limit(p.PerPage).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search catalog: %w", err)
	}
	return rows, total, nil
}

func containsAll(tx *gorm.DB, column string, members []string) *gorm.DB {
	for _, m := range utils.SplitSet(strings.Join(members, ",")) {
		tx = tx.Where("LOWER("+column+") LIKE ?", "%"+strings.ToLower(m)+"%")
	}
	return tx
}

// applySort orders by the requested column with NULLs last.
func applySort(tx *gorm.DB, sort string) *gorm.DB {
	switch sort {
	case SortScore:
		return tx.Order("score IS NULL").Order("score DESC").Order("id ASC")
	case SortTitle:
		return tx.Order("title ASC").Order("id ASC")
	case SortYear:
		return tx.Order("release_year IS NULL").Order("release_year DESC").Order("id ASC")
	default:
		return tx.Order("popularity_rank IS NULL").Order("popularity_rank ASC").Order("id ASC")
	}
}

// Facets are the distinct filter values present in the catalogue.
type Facets struct {
	Tags         []string `json:"tags"`
	Themes       []string `json:"themes"`
	Demographics []string `json:"demographics"`
	Studios      []string `json:"studios"`
	Years        []int    `json:"years"`
}

// LoadFacets collects the distinct filter values.
func (s *Store) LoadFacets(ctx context.Context) (*Facets, error) {
	type facetRow struct {
		Tags         string
		Themes       string
		Demographics string
		Studios      string
	}
	var rows []facetRow
	err := s.db.WithContext(ctx).
		Model(&models.CatalogEntry{}).
		Distinct("tags", "themes", "demographics", "studios").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load facets: %w", err)
	}

	var years []int
	err = s.db.WithContext(ctx).
		Model(&models.CatalogEntry{}).
		Where("release_year IS NOT NULL").
		Distinct().
		Order("release_year DESC").
		Pluck("release_year", &years).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load facet years: %w", err)
	}

	var tags, themes, demographics, studios []string
	for _, r := range rows {
		tags = append(tags, r.Tags)
		themes = append(themes, r.Themes)
		demographics = append(demographics, r.Demographics)
		studios = append(studios, r.Studios)
	}

	return &Facets{
		Tags:         utils.UnionSorted(tags),
		Themes:       utils.UnionSorted(themes),
		Demographics: utils.UnionSorted(demographics),
		Studios:      utils.UnionSorted(studios),
		Years:        years,
	}, nil
}
