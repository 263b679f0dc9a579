package models

import (
	"strconv"
	"strings"
	"time"

	"media-tracker/core/utils"
	"media-tracker/feature/metadata"
)

// CatalogEntry is a canonical title shared by every user.
type CatalogEntry struct {
	ID             uint       `gorm:"column:id;primaryKey" json:"id"`
	ExternalID     *int       `gorm:"column:external_id;uniqueIndex" json:"external_id,omitempty"`
	Title          string     `gorm:"column:title;size:255;not null" json:"title"`
	AltTitle       string     `gorm:"column:alt_title;size:255" json:"alt_title,omitempty"`
	Kind           Kind       `gorm:"column:kind;size:16;not null;index" json:"kind"`
	MediaType      string     `gorm:"column:media_type;size:32" json:"media_type,omitempty"`
	ImageURL       string     `gorm:"column:image_url;size:512" json:"image_url,omitempty"`
	Synopsis       string     `gorm:"column:synopsis;type:text" json:"synopsis,omitempty"`
	Tags           string     `gorm:"column:tags;type:text" json:"tags,omitempty"`
	Themes         string     `gorm:"column:themes;type:text" json:"themes,omitempty"`
	Demographics   string     `gorm:"column:demographics;type:text" json:"demographics,omitempty"`
	Studios        string     `gorm:"column:studios;type:text" json:"studios,omitempty"`
	Producers      string     `gorm:"column:producers;type:text" json:"producers,omitempty"`
	Licensors      string     `gorm:"column:licensors;type:text" json:"licensors,omitempty"`
	Source         string     `gorm:"column:source;size:64" json:"source,omitempty"`
	ReleaseYear    *int       `gorm:"column:release_year;index" json:"release_year,omitempty"`
	TotalUnits     *int       `gorm:"column:total_units" json:"total_units,omitempty"`
	Score          *float64   `gorm:"column:score" json:"score,omitempty"`
	PopularityRank *int       `gorm:"column:popularity_rank" json:"popularity_rank,omitempty"`
	VoteCount      *int       `gorm:"column:vote_count" json:"vote_count,omitempty"`
	Members        *int       `gorm:"column:members" json:"members,omitempty"`
	Favorites      *int       `gorm:"column:favorites" json:"favorites,omitempty"`
	Status         string     `gorm:"column:status;size:64" json:"status,omitempty"`
	Rating         string     `gorm:"column:rating;size:64" json:"rating,omitempty"`
	Duration       string     `gorm:"column:duration;size:64" json:"duration,omitempty"`
	AirFrom        *time.Time `gorm:"column:air_from" json:"air_from,omitempty"`
	AirTo          *time.Time `gorm:"column:air_to" json:"air_to,omitempty"`
	CreatedAt      time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name used by GORM.
func (CatalogEntry) TableName() string {
	return "catalog_entries"
}

// NeedsEnrichment reports whether a stored entry is missing the fields a
// metadata fetch is expected to supply.
func (e *CatalogEntry) NeedsEnrichment() bool {
	return e.ImageURL == "" || e.Synopsis == "" || e.Source == ""
}

// TagList returns the tags as a slice.
func (e *CatalogEntry) TagList() []string {
	return utils.SplitSet(e.Tags)
}

// NewFromMetadata builds an entry from fetched metadata.
func NewFromMetadata(m *metadata.Metadata, kind Kind) *CatalogEntry {
	id := m.ExternalID
	e := &CatalogEntry{ExternalID: &id, Kind: kind}
	e.ApplyMetadata(m)
	if e.Title == "" {
		e.Title = UnknownTitle(id)
	}
	return e
}

// UnknownTitle is the placeholder title of an entry nothing could name.
func UnknownTitle(externalID int) string {
	return "Unknown " + strconv.Itoa(externalID)
}

// ApplyMetadata merges fetched metadata into the entry and reports whether
// anything changed.
//
// Identity fields are only filled when empty. Volatile fields (score,
// popularity, votes, members, favorites, status, unit count, end date) take
// the incoming value whenever it is present. No field is ever blanked.
func (e *CatalogEntry) ApplyMetadata(m *metadata.Metadata) bool {
	if m == nil {
		return false
	}
	changed := false

	enrich := func(dst *string, v string) {
		if *dst == "" && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
			changed = true
		}
	}
	enrichSet := func(dst *string, v []string) {
		if *dst == "" {
			if joined := utils.JoinSet(v); joined != "" {
				*dst = joined
				changed = true
			}
		}
	}
	overwrite := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" && *dst != v {
			*dst = v
			changed = true
		}
	}

	enrich(&e.Title, m.Title)
	enrich(&e.AltTitle, m.AltTitle)
	enrich(&e.MediaType, m.MediaType)
	enrich(&e.ImageURL, m.ImageURL)
	enrich(&e.Synopsis, m.Synopsis)
	enrich(&e.Source, m.Source)
	enrich(&e.Rating, m.Rating)
	enrich(&e.Duration, m.Duration)
	enrichSet(&e.Tags, m.Genres)
	enrichSet(&e.Themes, m.Themes)
	enrichSet(&e.Demographics, m.Demographics)
	enrichSet(&e.Studios, m.Studios)
	enrichSet(&e.Producers, m.Producers)
	enrichSet(&e.Licensors, m.Licensors)

	if e.ReleaseYear == nil && m.Year != nil {
		e.ReleaseYear = copyInt(m.Year)
		changed = true
	}
	if e.AirFrom == nil && m.AiredFrom != nil {
		t := *m.AiredFrom
		e.AirFrom = &t
		changed = true
	}

	overwrite(&e.Status, m.Status)
	changed = overwriteInt(&e.TotalUnits, m.TotalUnits) || changed
	changed = overwriteInt(&e.PopularityRank, m.Popularity) || changed
	changed = overwriteInt(&e.VoteCount, m.ScoredBy) || changed
	changed = overwriteInt(&e.Members, m.Members) || changed
	changed = overwriteInt(&e.Favorites, m.Favorites) || changed

	if m.Score != nil && (e.Score == nil || *e.Score != *m.Score) {
		s := *m.Score
		e.Score = &s
		changed = true
	}
	if m.AiredTo != nil && (e.AirTo == nil || !e.AirTo.Equal(*m.AiredTo)) {
		t := *m.AiredTo
		e.AirTo = &t
		changed = true
	}

	return changed
}

func overwriteInt(dst **int, v *int) bool {
	if v == nil {
		return false
	}
	if *dst != nil && **dst == *v {
		return false
	}
	*dst = copyInt(v)
	return true
}

func copyInt(v *int) *int {
	n := *v
	return &n
}

// IntPtr returns a pointer to n.
func IntPtr(n int) *int {
	return &n
}
