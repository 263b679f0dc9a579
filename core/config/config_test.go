package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "https://api.jikan.moe/v4", cfg.Metadata.BaseURL)
	assert.Equal(t, 1200, cfg.Metadata.MinIntervalMillis)
	assert.Equal(t, 3, cfg.Metadata.MaxAttempts)
	assert.Equal(t, 5, cfg.Metadata.BackoffSeconds)
	assert.Equal(t, 1000, cfg.Catalog.MinVotes)
	assert.InDelta(t, 7.0, cfg.Catalog.DefaultScore, 0.0001)
	assert.Equal(t, 16, cfg.Import.MaxUploadMB)
	assert.True(t, cfg.Import.Archive)
	assert.Equal(t, "mal", cfg.Import.ArchivePrefix)
	assert.Equal(t, 0, cfg.Refresh.IntervalHours)
	assert.True(t, cfg.Database.AutoMigrate)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	dir := t.TempDir()
	env := "SERVER_PORT=9090\nMETADATA_MAX_ATTEMPTS=5\nCATALOG_MIN_VOTES=50\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("METADATA_MAX_ATTEMPTS")
		os.Unsetenv("CATALOG_MIN_VOTES")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 5, cfg.Metadata.MaxAttempts)
	assert.Equal(t, 50, cfg.Catalog.MinVotes)
}
