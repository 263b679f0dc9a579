package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"media-tracker/feature/catalog/models"
)

// Ranked is a catalogue entry with its Bayesian weighted score.
type Ranked struct {
	models.CatalogEntry `gorm:"embedded"`
	WeightedScore       float64 `gorm:"column:weighted_score" json:"weighted_score"`
}

// RankingQuery narrows a ranked listing.
type RankingQuery struct {
	Tag   string
	Year  *int
	Limit int
}

func (q RankingQuery) key() string {
	year := 0
	if q.Year != nil {
		year = *q.Year
	}
	return fmt.Sprintf("top|tag=%s|year=%d|limit=%d", strings.ToLower(q.Tag), year, q.Limit)
}

// AverageScore returns the mean score across scored entries. ok is false
// when no entry has a score.
func (s *Store) AverageScore(ctx context.Context) (avg float64, ok bool, err error) {
	var v sql.NullFloat64
	row := s.db.WithContext(ctx).
		Model(&models.CatalogEntry{}).
		Select("AVG(score)").
		Where("score IS NOT NULL").
		Row()
	if err := row.Scan(&v); err != nil {
		return 0, false, fmt.Errorf("failed to compute average score: %w", err)
	}
	return v.Float64, v.Valid, nil
}

// TopRanked lists entries ordered by weighted score
//
//	WS = v/(v+m)*R + m/(v+m)*C
//
// where v is the vote count, R the score, m the vote threshold and C the
// prior. Entries with fewer than m votes or no score are left out entirely.
func (s *Store) TopRanked(ctx context.Context, q RankingQuery, minVotes int, prior float64) ([]Ranked, error) {
	// The 1.0 factors force floating point division on every dialect.
	weighted := "(vote_count * 1.0 / (vote_count + ?)) * score + (? * 1.0 / (vote_count + ?)) * ?"

	tx := s.db.WithContext(ctx).
		Model(&models.CatalogEntry{}).
		Select("catalog_entries.*, ("+weighted+") AS weighted_score", minVotes, minVotes, minVotes, prior).
		Where("vote_count >= ? AND score IS NOT NULL", minVotes)

	if q.Tag != "" {
		tx = tx.Where("LOWER(tags) LIKE ?", "%"+strings.ToLower(q.Tag)+"%")
	}
	if q.Year != nil {
		tx = tx.Where("release_year = ?", *q.Year)
	}

	var rows []Ranked
	if err := tx.Order("weighted_score DESC").Order("id ASC").Limit(q.Limit).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to rank catalog entries: %w", err)
	}
	return rows, nil
}
