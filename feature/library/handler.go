package library

import (
	"errors"
	"strconv"

	"media-tracker/core/logger"
	"media-tracker/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for user lists.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the list routes. Every route needs an acting user.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/library", auth.RequireUser())
	group.Get("/", h.HandleList)
	group.Get("/stats", h.HandleStats)
	group.Post("/", h.HandleAdd)
	group.Patch("/:id", h.HandleUpdate)
	group.Delete("/:id", h.HandleDelete)
}

// HandleList returns the acting user's list.
// @Summary List Library
// @Description The acting user's list with status, kind and tag facets.
// @Tags library
// @Produce json
// @Param X-User-ID header int true "Acting user"
// @Param status query string false "Planned, Watching, Reading, Completed or Dropped"
// @Success 200 {object} ListResult
// @Failure 400 {object} map[string]string "Invalid status"
// @Router /library [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	res, err := h.service.List(c.Context(), auth.UserID(c), c.Query("status"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(res)
}

// HandleStats returns aggregate figures for the acting user's list.
// @Summary Library Stats
// @Tags library
// @Produce json
// @Param X-User-ID header int true "Acting user"
// @Success 200 {object} Stats
// @Router /library/stats [get]
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	st, err := h.service.Stats(c.Context(), auth.UserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(st)
}

// HandleAdd puts a catalogue entry on the acting user's list.
// @Summary Add To Library
// @Tags library
// @Accept json
// @Produce json
// @Param X-User-ID header int true "Acting user"
// @Param entry body AddInput true "Entry"
// @Success 201 {object} models.ListEntry
// @Failure 404 {object} map[string]string "Catalogue entry not found"
// @Failure 409 {object} map[string]string "Already on list"
// @Router /library [post]
func (h *Handler) HandleAdd(c *fiber.Ctx) error {
	var in AddInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	e, err := h.service.Add(c.Context(), auth.UserID(c), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(e)
}

// HandleUpdate patches one list entry.
// @Summary Update Library Entry
// @Tags library
// @Accept json
// @Produce json
// @Param X-User-ID header int true "Acting user"
// @Param id path int true "List entry id"
// @Param patch body Patch true "Fields to change"
// @Success 200 {object} models.ListEntry
// @Failure 403 {object} map[string]string "Owned by another user"
// @Failure 404 {object} map[string]string "Not found"
// @Router /library/{id} [patch]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	id, err := entryID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	var p Patch
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	e, err := h.service.Update(c.Context(), auth.UserID(c), id, p)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(e)
}

// HandleDelete removes one list entry.
// @Summary Delete Library Entry
// @Tags library
// @Param X-User-ID header int true "Acting user"
// @Param id path int true "List entry id"
// @Success 204
// @Failure 403 {object} map[string]string "Owned by another user"
// @Failure 404 {object} map[string]string "Not found"
// @Router /library/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	id, err := entryID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := h.service.Delete(c.Context(), auth.UserID(c), id); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrInvalidEntry):
		status = fiber.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		status = fiber.StatusForbidden
	case errors.Is(err, ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, ErrConflict):
		status = fiber.StatusConflict
	default:
		logger.WithUser(logger.WithRayID(h.service.logger, c), auth.UserID(c)).
			Error("Library request failed", zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func entryID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
