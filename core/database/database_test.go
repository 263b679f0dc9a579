package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	t.Run("Invalid Connection", func(t *testing.T) {
		cfg := Config{
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "root",
			Password:       "wrongpassword",
			Name:           "media_tracker",
			Driver:         DriverMySQL,
			TimeoutSeconds: 1,
		}

		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("Unsupported Driver", func(t *testing.T) {
		db, err := Connect(Config{Driver: "oracle"})
		assert.ErrorContains(t, err, "unsupported database driver")
		assert.Nil(t, db)
	})

	t.Run("SQLite Memory", func(t *testing.T) {
		db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
		require.NoError(t, err)
		require.NotNil(t, db)
		assert.Equal(t, "sqlite", db.Dialector.Name())
	})
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, ":memory:", sqliteDSN(":memory:", 30))
	assert.Equal(t, "file::memory:?cache=shared", sqliteDSN("file::memory:?cache=shared", 30))
	assert.Equal(t, "file:x?mode=memory", sqliteDSN("file:x?mode=memory", 30))
	assert.Equal(t, "tracker.db?_busy_timeout=5000&_journal_mode=WAL", sqliteDSN("tracker.db", 5))
	assert.Equal(t, "file:tracker.db?cache=shared&_busy_timeout=5000&_journal_mode=WAL", sqliteDSN("file:tracker.db?cache=shared", 5))
	assert.Equal(t, "tracker.db?_journal_mode=DELETE&_busy_timeout=1000", sqliteDSN("tracker.db?_journal_mode=DELETE", 1))
}

func TestConnect_SQLiteFileAllowsConcurrentReads(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: filepath.Join(t.TempDir(), "tracker.db"), TimeoutSeconds: 5})
	require.NoError(t, err)
	require.NoError(t, Migrate(db, &migrateModel{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Greater(t, sqlDB.Stats().MaxOpenConnections, 1)

	tx := db.Begin()
	require.NoError(t, tx.Error)
	require.NoError(t, tx.Create(&migrateModel{Name: "pending"}).Error)

	// A second connection can still answer while the transaction is open.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, sqlDB.PingContext(ctx))
	var n int64
	require.NoError(t, db.WithContext(ctx).Model(&migrateModel{}).Count(&n).Error)
	assert.Equal(t, int64(0), n)

	require.NoError(t, tx.Commit().Error)
}

type migrateModel struct {
	ID   uint
	Name string
}

func TestMigrate(t *testing.T) {
	assert.Error(t, Migrate(nil, &migrateModel{}))

	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	require.NoError(t, Migrate(db, &migrateModel{}))
	assert.True(t, db.Migrator().HasTable(&migrateModel{}))
}
