package catalog

import (
	"errors"
	"strconv"
	"strings"

	"media-tracker/core/logger"
	"media-tracker/core/middleware/auth"
	"media-tracker/feature/catalog/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the catalogue.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalogue routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog")
	group.Get("/search", auth.OptionalUser(), h.HandleSearch)
	group.Get("/filters", h.HandleFilters)
	group.Get("/top", h.HandleTop)
	group.Get("/:id", h.HandleGet)
	group.Post("/", h.HandleCreate)
}

// HandleSearch searches the catalogue.
// @Summary Search Catalogue
// @Description Text search over titles with tag, theme, demographic, studio, year and kind filters.
// @Tags catalog
// @Produce json
// @Param q query string false "Text matched against title and alternative title"
// @Param tags query string false "Comma separated tags, all required"
// @Param themes query string false "Comma separated themes, all required"
// @Param demographics query string false "Comma separated demographics, all required"
// @Param studio query string false "Studio"
// @Param year query int false "Release year"
// @Param kind query string false "Anime, Manga, Manhwa or Webtoon"
// @Param sort query string false "popularity (default), score, title or year"
// @Param page query int false "Page, 1-100"
// @Param per_page query int false "Page size, 1-100"
// @Success 200 {object} SearchResult
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /catalog/search [get]
func (h *Handler) HandleSearch(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	p := SearchParams{
		Query:        c.Query("q"),
		Tags:         splitQuery(c.Query("tags")),
		Themes:       splitQuery(c.Query("themes")),
		Demographics: splitQuery(c.Query("demographics")),
		Studio:       c.Query("studio"),
		Kind:         models.Kind(c.Query("kind")),
		Sort:         c.Query("sort"),
	}
	var err error
	if p.Year, err = optionalInt(c, "year"); err != nil {
		return badRequest(c, err)
	}
	if p.Page, err = intQuery(c, "page"); err != nil {
		return badRequest(c, err)
	}
	if p.PerPage, err = intQuery(c, "per_page"); err != nil {
		return badRequest(c, err)
	}
	if k, ok := models.ParseKind(string(p.Kind)); ok {
		p.Kind = k
	}

	result, err := h.service.Search(c.Context(), p, auth.UserID(c))
	if err != nil {
		if errors.Is(err, ErrInvalidQuery) {
			return badRequest(c, err)
		}
		l.Error("Catalog search failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}

// HandleFilters returns the available search filter values.
// @Summary Search Filters
// @Description Distinct tags, themes, demographics, studios and years present in the catalogue.
// @Tags catalog
// @Produce json
// @Success 200 {object} Facets
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /catalog/filters [get]
func (h *Handler) HandleFilters(c *fiber.Ctx) error {
	facets, err := h.service.Facets(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Loading facets failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(facets)
}

// HandleTop returns the ranked listing.
// @Summary Top Ranked
// @Description Entries ordered by Bayesian weighted score. Entries below the vote threshold are excluded.
// @Tags catalog
// @Produce json
// @Param tag query string false "Restrict to a tag"
// @Param year query int false "Restrict to a release year"
// @Param limit query int false "Listing length, 1-100"
// @Success 200 {array} Ranked
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /catalog/top [get]
func (h *Handler) HandleTop(c *fiber.Ctx) error {
	q := RankingQuery{Tag: c.Query("tag")}
	var err error
	if q.Year, err = optionalInt(c, "year"); err != nil {
		return badRequest(c, err)
	}
	if q.Limit, err = intQuery(c, "limit"); err != nil {
		return badRequest(c, err)
	}
	if q.Limit < 0 {
		return badRequest(c, errors.New("limit must be positive"))
	}

	ranked, err := h.service.Top(c.Context(), q)
	if err != nil {
		if errors.Is(err, ErrInvalidQuery) {
			return badRequest(c, err)
		}
		logger.WithRayID(h.service.logger, c).Error("Ranking failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(ranked)
}

// HandleGet returns one catalogue entry.
// @Summary Get Catalogue Entry
// @Tags catalog
// @Produce json
// @Param id path int true "Catalogue entry id"
// @Success 200 {object} models.CatalogEntry
// @Failure 404 {object} map[string]string "Not found"
// @Router /catalog/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return badRequest(c, errors.New("invalid id"))
	}

	entry, err := h.service.Get(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(entry)
}

// HandleCreate adds a catalogue entry.
// @Summary Create Catalogue Entry
// @Tags catalog
// @Accept json
// @Produce json
// @Param entry body CreateInput true "Entry"
// @Success 201 {object} models.CatalogEntry
// @Failure 400 {object} map[string]string "Invalid entry"
// @Failure 409 {object} map[string]string "External id already catalogued"
// @Router /catalog [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var in CreateInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, err)
	}

	entry, err := h.service.Create(c.Context(), in)
	switch {
	case err == nil:
		return c.Status(fiber.StatusCreated).JSON(entry)
	case errors.Is(err, ErrInvalidEntry):
		return badRequest(c, err)
	case errors.Is(err, ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		l.Error("Catalog create failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

func splitQuery(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func intQuery(c *fiber.Ctx, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(key + " must be an integer")
	}
	return n, nil
}

func optionalInt(c *fiber.Ctx, key string) (*int, error) {
	if c.Query(key) == "" {
		return nil, nil
	}
	n, err := intQuery(c, key)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
