package metadata

import (
	"strings"
	"time"
)

// Endpoint selects the API resource a title is fetched from.
type Endpoint string

const (
	EndpointAnime Endpoint = "anime"
	EndpointManga Endpoint = "manga"
)

// Metadata is the normalized view of one title. Absent fields are nil or empty.
type Metadata struct {
	ExternalID   int
	Endpoint     Endpoint
	Title        string
	AltTitle     string
	MediaType    string
	ImageURL     string
	Synopsis     string
	Source       string
	Status       string
	Rating       string
	Duration     string
	Genres       []string
	Themes       []string
	Demographics []string
	Studios      []string
	Producers    []string
	Licensors    []string
	Year         *int
	TotalUnits   *int
	Score        *float64
	Popularity   *int
	ScoredBy     *int
	Members      *int
	Favorites    *int
	AiredFrom    *time.Time
	AiredTo      *time.Time
}

// Payload types mirror the Jikan v4 JSON. Every scalar is a pointer so a
// missing or null field stays distinguishable from a zero value.

type envelope struct {
	Data *titlePayload `json:"data"`
}

type named struct {
	Name *string `json:"name"`
}

type imageSet struct {
	ImageURL      *string `json:"image_url"`
	LargeImageURL *string `json:"large_image_url"`
}

type dateRange struct {
	From *string `json:"from"`
	To   *string `json:"to"`
}

type titlePayload struct {
	MalID        *int                `json:"mal_id"`
	Title        *string             `json:"title"`
	TitleEnglish *string             `json:"title_english"`
	Type         *string             `json:"type"`
	Images       map[string]imageSet `json:"images"`
	Synopsis     *string             `json:"synopsis"`
	Source       *string             `json:"source"`
	Status       *string             `json:"status"`
	Rating       *string             `json:"rating"`
	Duration     *string             `json:"duration"`
	Year         *int                `json:"year"`
	Episodes     *int                `json:"episodes"`
	Chapters     *int                `json:"chapters"`
	Score        *float64            `json:"score"`
	Popularity   *int                `json:"popularity"`
	ScoredBy     *int                `json:"scored_by"`
	Members      *int                `json:"members"`
	Favorites    *int                `json:"favorites"`
	Aired        *dateRange          `json:"aired"`
	Published    *dateRange          `json:"published"`
	Genres       []named             `json:"genres"`
	Themes       []named             `json:"themes"`
	Demographics []named             `json:"demographics"`
	Studios      []named             `json:"studios"`
	Producers    []named             `json:"producers"`
	Authors      []named             `json:"authors"`
	Licensors    []named             `json:"licensors"`
}

func (p *titlePayload) toMetadata(id int, endpoint Endpoint) *Metadata {
	m := &Metadata{
		ExternalID:   id,
		Endpoint:     endpoint,
		Title:        str(p.Title),
		AltTitle:     str(p.TitleEnglish),
		MediaType:    str(p.Type),
		Synopsis:     str(p.Synopsis),
		Source:       str(p.Source),
		Status:       str(p.Status),
		Rating:       str(p.Rating),
		Duration:     str(p.Duration),
		Genres:       names(p.Genres),
		Themes:       names(p.Themes),
		Demographics: names(p.Demographics),
		Studios:      names(p.Studios),
		Licensors:    names(p.Licensors),
		Year:         positive(p.Year),
		Score:        p.Score,
		Popularity:   positive(p.Popularity),
		ScoredBy:     p.ScoredBy,
		Members:      p.Members,
		Favorites:    p.Favorites,
	}

	if jpg, ok := p.Images["jpg"]; ok {
		m.ImageURL = firstNonEmpty(str(jpg.LargeImageURL), str(jpg.ImageURL))
	}

	dates := p.Aired
	if endpoint == EndpointManga {
		m.TotalUnits = positive(p.Chapters)
		m.Producers = names(p.Authors)
		dates = p.Published
	} else {
		m.TotalUnits = positive(p.Episodes)
		m.Producers = names(p.Producers)
	}
	if dates != nil {
		m.AiredFrom = parseDate(dates.From)
		m.AiredTo = parseDate(dates.To)
	}
	if m.Year == nil && m.AiredFrom != nil {
		y := m.AiredFrom.Year()
		m.Year = &y
	}

	return m
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

func positive(p *int) *int {
	if p == nil || *p <= 0 {
		return nil
	}
	return p
}

func names(items []named) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if n := str(it.Name); n != "" {
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// parseDate accepts RFC 3339 timestamps and plain dates.
func parseDate(p *string) *time.Time {
	s := str(p)
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
