package cmd

import (
	"context"
	"fmt"
	"time"

	"media-tracker/core/config"
	"media-tracker/core/database"
	"media-tracker/core/logger"
	"media-tracker/core/storage"
	catalogmodels "media-tracker/feature/catalog/models"
	librarymodels "media-tracker/feature/library/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// schemaModels are the tables owned by the service, in migration order.
var schemaModels = []any{&catalogmodels.CatalogEntry{}, &librarymodels.ListEntry{}}

// runtime is what every command needs before doing its own work.
type runtime struct {
	cfg *config.Config
	log *zap.Logger
	db  *gorm.DB
}

// bootstrap loads configuration, builds the logger and opens the database.
// The database is required by every command.
func bootstrap() (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database connection required: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db, schemaModels...); err != nil {
			return nil, err
		}
		logg.Debug("Schema migrated")
	}

	return &runtime{cfg: cfg, log: logg, db: db}, nil
}

// storageClient creates the archive client and makes sure the bucket exists.
// A nil client means archiving is unavailable; callers carry on without it.
func (r *runtime) storageClient(ctx context.Context) storage.Client {
	client, err := storage.NewClient(r.cfg.Storage)
	if err != nil {
		r.log.Warn("Storage client unavailable, imports will not be archived", zap.Error(err))
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := storage.EnsureBucket(ctx, client, r.cfg.Storage.Bucket, r.cfg.Storage.Region); err != nil {
		r.log.Warn("Archive bucket unavailable", zap.String("bucket", r.cfg.Storage.Bucket), zap.Error(err))
	}
	return client
}
