package health

import (
	"media-tracker/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for health checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the health routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/health", h.HandleHealth)
}

// HandleHealth reports database, schema and storage health.
// @Summary Health Check
// @Description Pings the database, compares the catalogue and list tables against the models and checks the import archive bucket.
// @Tags health
// @Produce json
// @Success 200 {object} Report "ok or degraded"
// @Failure 503 {object} Report "database unreachable"
// @Router /health [get]
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	report := h.service.Check(c.Context())
	if report.Status == StatusError {
		logger.WithRayID(h.service.logger, c).Error("Health check failed", zap.String("database", report.Database.Error))
		return c.Status(fiber.StatusServiceUnavailable).JSON(report)
	}
	return c.JSON(report)
}
