package importer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"media-tracker/core/logger"
	"media-tracker/core/middleware/auth"
	"media-tracker/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for list imports.
type Handler struct {
	reconciler *Reconciler
	cfg        Config
	logger     *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(reconciler *Reconciler, cfg Config, logger *zap.Logger) *Handler {
	return &Handler{reconciler: reconciler, cfg: cfg, logger: logger}
}

// RegisterRoutes registers the import routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/imports/mal", auth.RequireUser(), h.HandleImportMAL)
}

// HandleImportMAL imports a MyAnimeList XML export into the acting user's list.
// @Summary Import MyAnimeList Export
// @Description Reconciles the export against the catalogue, fetching metadata for unknown titles, and upserts the user's list in one transaction.
// @Tags imports
// @Accept multipart/form-data
// @Produce json
// @Param X-User-ID header int true "Acting user"
// @Param file formData file true "MyAnimeList XML export"
// @Param import_scores formData bool false "Copy scores"
// @Param import_notes formData bool false "Copy comments"
// @Param import_dates formData bool false "Copy status and progress"
// @Success 200 {object} Result
// @Failure 400 {object} Result "Invalid document"
// @Failure 413 {object} map[string]string "Document too large"
// @Failure 500 {object} Result "Commit failed"
// @Router /imports/mal [post]
func (h *Handler) HandleImportMAL(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	l := logger.WithUser(logger.WithRayID(h.logger, c), userID)

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No file provided"})
	}
	if !strings.EqualFold(filepath.Ext(file.Filename), ".xml") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only XML files are supported"})
	}
	if file.Size > h.cfg.maxUploadBytes() {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"error": fmt.Sprintf("File exceeds %d MB", h.cfg.maxUploadBytes()>>20),
		})
	}

	f, err := file.Open()
	if err != nil {
		l.Error("Failed to open upload", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	defer f.Close()

	opts := Options{
		ImportScores: utils.ToBool(c.FormValue("import_scores")),
		ImportNotes:  utils.ToBool(c.FormValue("import_notes")),
		ImportDates:  utils.ToBool(c.FormValue("import_dates")),
		Filename:     file.Filename,
	}

	res, err := h.reconciler.Import(c.Context(), userID, f, opts)
	switch {
	case err == nil:
		return c.JSON(res)
	case errors.Is(err, ErrDocumentFormat):
		return c.Status(fiber.StatusBadRequest).JSON(res)
	default:
		l.Error("Import failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(res)
	}
}
