package importer

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"media-tracker/core/utils"
	catalogmodels "media-tracker/feature/catalog/models"
)

// Export layout:
//
//	<myanimelist>
//	  <myinfo>...</myinfo>
//	  <anime><series_animedb_id>1</series_animedb_id>...</anime>
//	  <manga><manga_mangadb_id>2</manga_mangadb_id>...</manga>
//	</myanimelist>
type document struct {
	XMLName xml.Name   `xml:"myanimelist"`
	MyInfo  *myInfo    `xml:"myinfo"`
	Items   []rawEntry `xml:",any"`
}

type myInfo struct {
	UserName string `xml:"user_name"`
}

type rawEntry struct {
	XMLName         xml.Name
	AnimeID         string `xml:"series_animedb_id"`
	AnimeTitle      string `xml:"series_title"`
	SeriesType      string `xml:"series_type"`
	Episodes        string `xml:"series_episodes"`
	WatchedEpisodes string `xml:"my_watched_episodes"`
	MangaID         string `xml:"manga_mangadb_id"`
	MangaTitle      string `xml:"manga_title"`
	Chapters        string `xml:"manga_chapters"`
	ReadChapters    string `xml:"my_read_chapters"`
	Score           string `xml:"my_score"`
	Status          string `xml:"my_status"`
	Comments        string `xml:"my_comments"`
}

// entry is one list item of the export. ExternalID is zero when the
// document carried no usable id.
type entry struct {
	Position   int
	RawID      string
	ExternalID int
	Kind       catalogmodels.Kind
	MediaType  string
	Title      string
	TotalUnits *int
	Progress   *int
	Score      *int
	Status     string
	Notes      string
}

// parseDocument decodes an export into its entries, in document order.
func parseDocument(r io.Reader) ([]entry, error) {
	var doc document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentFormat, err)
	}
	if doc.MyInfo == nil {
		return nil, fmt.Errorf("%w: missing myinfo", ErrDocumentFormat)
	}

	var entries []entry
	for _, item := range doc.Items {
		switch item.XMLName.Local {
		case "anime":
			entries = append(entries, item.anime(len(entries)))
		case "manga":
			entries = append(entries, item.manga(len(entries)))
		}
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no anime or manga entries", ErrDocumentFormat)
	}
	return entries, nil
}

func (r rawEntry) anime(pos int) entry {
	kind := catalogmodels.KindAnime
	if k, ok := catalogmodels.ParseKind(r.SeriesType); ok {
		kind = k
	}
	e := r.common(pos, r.AnimeID, kind)
	e.MediaType = strings.TrimSpace(r.SeriesType)
	e.Title = strings.TrimSpace(r.AnimeTitle)
	e.TotalUnits = positive(r.Episodes)
	e.Progress = nonNegative(r.WatchedEpisodes)
	return e
}

func (r rawEntry) manga(pos int) entry {
	kind := catalogmodels.KindManga
	if k, ok := catalogmodels.ParseKind(r.SeriesType); ok {
		kind = k
	}
	e := r.common(pos, r.MangaID, kind)
	e.Title = strings.TrimSpace(r.MangaTitle)
	e.TotalUnits = positive(r.Chapters)
	e.Progress = nonNegative(r.ReadChapters)
	return e
}

func (r rawEntry) common(pos int, rawID string, kind catalogmodels.Kind) entry {
	e := entry{
		Position: pos,
		RawID:    strings.TrimSpace(rawID),
		Kind:     kind,
		Status:   strings.TrimSpace(r.Status),
		Notes:    strings.TrimSpace(r.Comments),
	}
	if id, ok := utils.ParsePositiveInt(rawID); ok {
		e.ExternalID = id
	}
	if s, ok := utils.ParsePositiveInt(r.Score); ok && s <= 10 {
		e.Score = &s
	}
	return e
}

// minimal is the catalogue entry built from the document alone.
func (e entry) minimal() *catalogmodels.CatalogEntry {
	id := e.ExternalID
	title := e.Title
	if title == "" {
		title = catalogmodels.UnknownTitle(id)
	}
	return &catalogmodels.CatalogEntry{
		ExternalID: &id,
		Title:      title,
		Kind:       e.Kind,
		MediaType:  e.MediaType,
		TotalUnits: e.TotalUnits,
	}
}

func positive(s string) *int {
	if n, ok := utils.ParsePositiveInt(s); ok {
		return &n
	}
	return nil
}

func nonNegative(s string) *int {
	if n, ok := utils.ParseNonNegativeInt(s); ok {
		return &n
	}
	return nil
}
