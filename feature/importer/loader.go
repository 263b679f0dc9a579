package importer

import (
	"media-tracker/feature/metadata"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	reconciler *Reconciler
	handler    *Handler
	enabled    bool
}

// NewFeature creates a new import feature.
func NewFeature(db *gorm.DB, fetcher metadata.Fetcher, cfg Config, logger *zap.Logger) *Feature {
	r := NewReconciler(db, fetcher, logger)
	return &Feature{
		reconciler: r,
		handler:    NewHandler(r, cfg, logger),
		enabled:    db != nil && fetcher != nil,
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "importer"
}

// IsEnabled reports whether the feature can serve requests.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Reconciler exposes the reconciler for wiring and the CLI.
func (f *Feature) Reconciler() *Reconciler {
	return f.reconciler
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
