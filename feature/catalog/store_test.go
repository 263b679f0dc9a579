package catalog

import (
	"context"
	"testing"

	"media-tracker/core/database"
	"media-tracker/feature/catalog/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupTestDB opens a private in-memory SQLite database with the catalogue table.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, &models.CatalogEntry{}))
	return db
}

// setupMockDB creates a GORM DB over sqlmock with the MySQL dialect.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func seed(t *testing.T, db *gorm.DB, entries ...*models.CatalogEntry) {
	t.Helper()
	for _, e := range entries {
		if e.Kind == "" {
			e.Kind = models.KindAnime
		}
		require.NoError(t, db.Create(e).Error)
	}
}

func TestStore_FindByExternalIDs(t *testing.T) {
	db := setupTestDB(t)
	seed(t, db,
		&models.CatalogEntry{ExternalID: models.IntPtr(1), Title: "One"},
		&models.CatalogEntry{ExternalID: models.IntPtr(2), Title: "Two"},
		&models.CatalogEntry{Title: "No external id"},
	)
	store := NewStore(db)

	found, err := store.FindByExternalIDs(context.Background(), []int{1, 2, 3})
	require.NoError(t, err)
	assert.Len(t, found, 2)
	assert.Equal(t, "One", found[1].Title)
	assert.Equal(t, "Two", found[2].Title)
	assert.NotContains(t, found, 3)

	empty, err := store.FindByExternalIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestStore_FindByExternalIDs_SingleQuery(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	mock.ExpectQuery("SELECT \\* FROM `catalog_entries` WHERE external_id IN \\(\\?,\\?,\\?\\)").
		WithArgs(10, 20, 30).
		WillReturnRows(sqlmock.NewRows([]string{"id", "external_id", "title", "kind"}).
			AddRow(1, 10, "Ten", "Anime"))

	found, err := store.FindByExternalIDs(context.Background(), []int{10, 20, 30})
	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("RequiresTitle", func(t *testing.T) {
		store := NewStore(setupTestDB(t))
		_, err := store.Create(ctx, &models.CatalogEntry{Title: "  "})
		assert.ErrorIs(t, err, ErrInvalidEntry)
	})

	t.Run("DefaultsKind", func(t *testing.T) {
		store := NewStore(setupTestDB(t))
		e := &models.CatalogEntry{Title: "Solo Leveling"}
		created, err := store.Create(ctx, e)
		require.NoError(t, err)
		assert.True(t, created)
		assert.NotZero(t, e.ID)
		assert.Equal(t, models.KindAnime, e.Kind)
	})

	t.Run("ConflictReReadsInsideTransaction", func(t *testing.T) {
		db := setupTestDB(t)
		winner := &models.CatalogEntry{ExternalID: models.IntPtr(42), Title: "Winner"}
		seed(t, db, winner)

		err := db.Transaction(func(tx *gorm.DB) error {
			store := NewStore(tx)

			loser := &models.CatalogEntry{ExternalID: models.IntPtr(42), Title: "Loser"}
			created, err := store.Create(ctx, loser)
			require.NoError(t, err)
			assert.False(t, created)
			assert.Equal(t, winner.ID, loser.ID)
			assert.Equal(t, "Winner", loser.Title)

			// The transaction is still usable after the rolled back insert.
			created, err = store.Create(ctx, &models.CatalogEntry{ExternalID: models.IntPtr(43), Title: "Next"})
			require.NoError(t, err)
			assert.True(t, created)
			return nil
		})
		require.NoError(t, err)

		var count int64
		db.Model(&models.CatalogEntry{}).Count(&count)
		assert.Equal(t, int64(2), count)
	})
}

func TestStore_GetAndSave(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	e := &models.CatalogEntry{ExternalID: models.IntPtr(7), Title: "Seven"}
	seed(t, db, e)
	store := NewStore(db)

	got, err := store.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Seven", got.Title)

	_, err = store.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.GetByExternalID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	got.Synopsis = "Updated"
	require.NoError(t, store.Save(ctx, got))

	again, err := store.GetByExternalID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Updated", again.Synopsis)
}

func TestStore_ListWithExternalID(t *testing.T) {
	db := setupTestDB(t)
	seed(t, db,
		&models.CatalogEntry{ExternalID: models.IntPtr(1), Title: "A"},
		&models.CatalogEntry{Title: "Local only"},
		&models.CatalogEntry{ExternalID: models.IntPtr(2), Title: "B"},
		&models.CatalogEntry{ExternalID: models.IntPtr(3), Title: "C"},
	)
	store := NewStore(db)

	page, err := store.ListWithExternalID(context.Background(), 0, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "A", page[0].Title)
	assert.Equal(t, "B", page[1].Title)

	rest, err := store.ListWithExternalID(context.Background(), page[1].ID, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "C", rest[0].Title)
}
