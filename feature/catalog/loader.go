package catalog

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new catalogue feature.
func NewFeature(db *gorm.DB, cfg Config, logger *zap.Logger) *Feature {
	svc := NewService(db, cfg, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "catalog"
}

// IsEnabled reports whether the feature can serve requests.
func (f *Feature) IsEnabled() bool {
	return f.service.store.db != nil
}

// Service exposes the catalogue service to the features that depend on it.
func (f *Feature) Service() *Service {
	return f.service
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
