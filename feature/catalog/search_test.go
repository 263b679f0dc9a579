package catalog

import (
	"context"
	"testing"

	"media-tracker/feature/catalog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchParams_Normalize(t *testing.T) {
	tests := []struct {
		name    string
		params  SearchParams
		wantErr bool
	}{
		{"Defaults", SearchParams{}, false},
		{"BadSort", SearchParams{Sort: "random"}, true},
		{"PageTooLow", SearchParams{Page: -1}, true},
		{"PageTooHigh", SearchParams{Page: 101}, true},
		{"PerPageTooHigh", SearchParams{PerPage: 500}, true},
		{"YearTooOld", SearchParams{Year: models.IntPtr(1800)}, true},
		{"YearOK", SearchParams{Year: models.IntPtr(2001)}, false},
		{"BadKind", SearchParams{Kind: "Novel"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Normalize()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidQuery)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	p := SearchParams{}
	require.NoError(t, p.Normalize())
	assert.Equal(t, SortPopularity, p.Sort)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PerPage)
}

func seedSearchFixtures(t *testing.T) *Store {
	t.Helper()
	db := setupTestDB(t)
	score := func(f float64) *float64 { return &f }
	seed(t, db,
		&models.CatalogEntry{Title: "Fullmetal Alchemist", AltTitle: "FMA", Tags: "Action, Adventure, Drama", Studios: "Bones", ReleaseYear: models.IntPtr(2009), PopularityRank: models.IntPtr(3), Score: score(9.1)},
		&models.CatalogEntry{Title: "Mob Psycho 100", Tags: "Action, Comedy", Themes: "Super Power", Studios: "Bones", ReleaseYear: models.IntPtr(2016), PopularityRank: models.IntPtr(40), Score: score(8.5)},
		&models.CatalogEntry{Title: "Solo Leveling", Kind: models.KindManhwa, Tags: "Action, Fantasy", ReleaseYear: models.IntPtr(2018)},
		&models.CatalogEntry{Title: "Barakamon", Tags: "Comedy, Slice of Life", Demographics: "Shounen", Studios: "Kinema Citrus", ReleaseYear: models.IntPtr(2014), PopularityRank: models.IntPtr(700), Score: score(8.4)},
	)
	return NewStore(db)
}

func search(t *testing.T, store *Store, p SearchParams) ([]models.CatalogEntry, int64) {
	t.Helper()
	require.NoError(t, p.Normalize())
	rows, total, err := store.Search(context.Background(), p)
	require.NoError(t, err)
	return rows, total
}

func titles(rows []models.CatalogEntry) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Title
	}
	return out
}

func TestStore_Search(t *testing.T) {
	store := seedSearchFixtures(t)

	t.Run("TextMatchesAltTitle", func(t *testing.T) {
		rows, total := search(t, store, SearchParams{Query: "fma"})
		assert.Equal(t, int64(1), total)
		assert.Equal(t, []string{"Fullmetal Alchemist"}, titles(rows))
	})

	t.Run("AllTagsRequired", func(t *testing.T) {
		rows, _ := search(t, store, SearchParams{Tags: []string{"Action", "Comedy"}})
		assert.Equal(t, []string{"Mob Psycho 100"}, titles(rows))
	})

	t.Run("ThemesAndDemographics", func(t *testing.T) {
		rows, _ := search(t, store, SearchParams{Themes: []string{"super power"}})
		assert.Equal(t, []string{"Mob Psycho 100"}, titles(rows))

		rows, _ = search(t, store, SearchParams{Demographics: []string{"Shounen"}})
		assert.Equal(t, []string{"Barakamon"}, titles(rows))
	})

	t.Run("StudioYearKind", func(t *testing.T) {
		rows, _ := search(t, store, SearchParams{Studio: "Bones", Sort: SortTitle})
		assert.Equal(t, []string{"Fullmetal Alchemist", "Mob Psycho 100"}, titles(rows))

		rows, _ = search(t, store, SearchParams{Year: models.IntPtr(2014)})
		assert.Equal(t, []string{"Barakamon"}, titles(rows))

		rows, _ = search(t, store, SearchParams{Kind: models.KindManhwa})
		assert.Equal(t, []string{"Solo Leveling"}, titles(rows))
	})

	t.Run("SortsWithNullsLast", func(t *testing.T) {
		rows, _ := search(t, store, SearchParams{})
		assert.Equal(t, []string{"Fullmetal Alchemist", "Mob Psycho 100", "Barakamon", "Solo Leveling"}, titles(rows))

		rows, _ = search(t, store, SearchParams{Sort: SortScore})
		assert.Equal(t, []string{"Fullmetal Alchemist", "Mob Psycho 100", "Barakamon", "Solo Leveling"}, titles(rows))

		rows, _ = search(t, store, SearchParams{Sort: SortYear})
		assert.Equal(t, []string{"Solo Leveling", "Mob Psycho 100", "Barakamon", "Fullmetal Alchemist"}, titles(rows))
	})

	t.Run("Paginates", func(t *testing.T) {
		rows, total := search(t, store, SearchParams{Sort: SortTitle, Page: 2, PerPage: 3})
		assert.Equal(t, int64(4), total)
		assert.Equal(t, []string{"Solo Leveling"}, titles(rows))
	})
}

func TestStore_LoadFacets(t *testing.T) {
	store := seedSearchFixtures(t)

	f, err := store.LoadFacets(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Action", "Adventure", "Comedy", "Drama", "Fantasy", "Slice of Life"}, f.Tags)
	assert.Equal(t, []string{"Super Power"}, f.Themes)
	assert.Equal(t, []string{"Shounen"}, f.Demographics)
	assert.Equal(t, []string{"Bones", "Kinema Citrus"}, f.Studios)
	assert.Equal(t, []int{2018, 2016, 2014, 2009}, f.Years)
}
