package importer

import (
	"fmt"
	"strings"
	"testing"

	catalogmodels "media-tracker/feature/catalog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportXML(items ...string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<myanimelist>
  <myinfo><user_name>tester</user_name><user_export_type>1</user_export_type></myinfo>
` + strings.Join(items, "\n") + `
</myanimelist>`
}

func animeXML(id string, title string, episodes, watched, score int, status, comments string) string {
	return fmt.Sprintf(`<anime>
  <series_animedb_id>%s</series_animedb_id>
  <series_title><![CDATA[%s]]></series_title>
  <series_type>TV</series_type>
  <series_episodes>%d</series_episodes>
  <my_watched_episodes>%d</my_watched_episodes>
  <my_score>%d</my_score>
  <my_status>%s</my_status>
  <my_comments><![CDATA[%s]]></my_comments>
</anime>`, id, title, episodes, watched, score, status, comments)
}

func mangaXML(id string, title string, chapters, read int, status string) string {
	return fmt.Sprintf(`<manga>
  <manga_mangadb_id>%s</manga_mangadb_id>
  <manga_title><![CDATA[%s]]></manga_title>
  <manga_chapters>%d</manga_chapters>
  <my_read_chapters>%d</my_read_chapters>
  <my_score>0</my_score>
  <my_status>%s</my_status>
</manga>`, id, title, chapters, read, status)
}

func TestParseDocument(t *testing.T) {
	doc := exportXML(
		animeXML("1", "Cowboy Bebop", 26, 26, 9, "Completed", " classic "),
		mangaXML("2", "Berserk", 0, 370, "Reading"),
		animeXML("abc", "Broken", 12, 1, 42, "Watching", ""),
	)

	entries, err := parseDocument(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	bebop := entries[0]
	assert.Equal(t, 1, bebop.ExternalID)
	assert.Equal(t, catalogmodels.KindAnime, bebop.Kind)
	assert.Equal(t, "TV", bebop.MediaType)
	assert.Equal(t, "Cowboy Bebop", bebop.Title)
	assert.Equal(t, 26, *bebop.TotalUnits)
	assert.Equal(t, 9, *bebop.Score)
	assert.Equal(t, "classic", bebop.Notes)

	berserk := entries[1]
	assert.Equal(t, 2, berserk.ExternalID)
	assert.Equal(t, catalogmodels.KindManga, berserk.Kind)
	assert.Nil(t, berserk.TotalUnits, "zero chapters means unknown")
	assert.Equal(t, 370, *berserk.Progress)
	assert.Nil(t, berserk.Score, "zero score means unrated")

	broken := entries[2]
	assert.Zero(t, broken.ExternalID)
	assert.Equal(t, "abc", broken.RawID)
	assert.Nil(t, broken.Score, "out of range score is dropped")
}

func TestParseDocument_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not xml", "this is not xml"},
		{"truncated", `<myanimelist><myinfo></myinfo><anime><series_animedb_id>1`},
		{"wrong root", `<animelist><myinfo/><anime><series_animedb_id>1</series_animedb_id></anime></animelist>`},
		{"missing myinfo", `<myanimelist><anime><series_animedb_id>1</series_animedb_id></anime></myanimelist>`},
		{"no entries", exportXML()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseDocument(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, ErrDocumentFormat)
		})
	}
}

func TestEntryMinimal(t *testing.T) {
	e := entry{ExternalID: 77, Kind: catalogmodels.KindAnime, MediaType: "OVA", TotalUnits: catalogmodels.IntPtr(6)}
	ce := e.minimal()
	assert.Equal(t, "Unknown 77", ce.Title)
	assert.Equal(t, 77, *ce.ExternalID)
	assert.Equal(t, "OVA", ce.MediaType)
	assert.Equal(t, 6, *ce.TotalUnits)
}
