package handlers

import (
	"strings"
	"time"

	"chartline/internal/app"
	"chartline/internal/models"
	"chartline/internal/repositories"
	"chartline/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AdminHandler struct {
	Handler
	repos      repositories.Repository
	matcher    *services.CatalogMatcherService
	reconciler *services.TallyReconcilerService
	cache      *services.CatalogCacheService
}

func NewAdminHandler(app app.App, router fiber.Router) *AdminHandler {
	return &AdminHandler{
		repos:      app.Repos,
		matcher:    app.Services.CatalogMatcher,
		reconciler: app.Services.TallyReconciler,
		cache:      app.Services.CatalogCache,
		Handler: Handler{
			log:        logger.New("handlers").File("admin_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AdminHandler) Register() {
	admin := h.router.Group("/admin", h.middleware.RequireAdmin())

	songs := admin.Group("/songs")
	songs.Get("/pending", h.listPending)
	songs.Post("/:id/verify", h.verifySong)
	songs.Post("/:id/reject", h.rejectSong)
	songs.Post("/:id/merge/:targetId", h.mergeSongs)

	admin.Post("/reprocess", h.reprocessUnmatched)
	admin.Post("/review-pending", h.reviewPending)
	admin.Post("/recompute/:date", h.recomputeTallies)

	admin.Get("/decisions", h.listDecisions)
	admin.Put("/artists", h.upsertArtist)
}

func (h *AdminHandler) listPending(c *fiber.Ctx) error {
	log := h.log.Function("listPending")

	limit := c.QueryInt("limit", 100)
	songs, err := h.repos.CanonicalSong.GetByStatus(
		c.UserContext(),
		models.SongStatusPending,
		limit,
	)
	if err != nil {
		_ = log.Error("Failed to list pending songs", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list pending songs",
		})
	}

	return c.JSON(fiber.Map{
		"songs": songs,
		"count": len(songs),
	})
}

func (h *AdminHandler) verifySong(c *fiber.Ctx) error {
	log := h.log.Function("verifySong")

	songID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid song id",
		})
	}

	if err := h.reconciler.VerifySong(c.UserContext(), songID); err != nil {
		_ = log.Error("Failed to verify song", "error", err, "songID", songID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to verify song",
		})
	}

	return c.JSON(fiber.Map{
		"status": "verified",
		"songId": songID,
	})
}

func (h *AdminHandler) rejectSong(c *fiber.Ctx) error {
	log := h.log.Function("rejectSong")

	songID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid song id",
		})
	}

	if err := h.reconciler.RejectSong(c.UserContext(), songID); err != nil {
		_ = log.Error("Failed to reject song", "error", err, "songID", songID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to reject song",
		})
	}

	return c.JSON(fiber.Map{
		"status": "rejected",
		"songId": songID,
	})
}

// mergeSongs folds the song at :id into the song at :targetId.
func (h *AdminHandler) mergeSongs(c *fiber.Ctx) error {
	log := h.log.Function("mergeSongs")

	sourceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid source song id",
		})
	}
	targetID, err := uuid.Parse(c.Params("targetId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid target song id",
		})
	}

	result, err := h.reconciler.Merge(c.UserContext(), sourceID, targetID)
	if err != nil {
		_ = log.Error("Failed to merge songs", "error", err, "source", sourceID, "target", targetID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to merge songs",
		})
	}

	return c.JSON(result)
}

func (h *AdminHandler) reprocessUnmatched(c *fiber.Ctx) error {
	log := h.log.Function("reprocessUnmatched")

	date := time.Now().UTC()
	if dateParam := c.Query("date"); dateParam != "" {
		parsed, err := time.Parse("2006-01-02", dateParam)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "date must be formatted as YYYY-MM-DD",
			})
		}
		date = parsed
	}

	stats, err := h.matcher.ProcessUnmatched(c.UserContext(), date, c.QueryInt("limit", 200))
	if err != nil {
		_ = log.Error("Failed to reprocess unmatched tallies", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to reprocess unmatched tallies",
		})
	}

	return c.JSON(stats)
}

func (h *AdminHandler) reviewPending(c *fiber.Ctx) error {
	log := h.log.Function("reviewPending")

	stats, err := h.matcher.ReviewPending(c.UserContext(), c.QueryInt("limit", 100))
	if err != nil {
		_ = log.Error("Failed to review pending songs", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to review pending songs",
		})
	}

	return c.JSON(stats)
}

func (h *AdminHandler) recomputeTallies(c *fiber.Ctx) error {
	log := h.log.Function("recomputeTallies")

	date, err := time.Parse("2006-01-02", c.Params("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "date must be formatted as YYYY-MM-DD",
		})
	}

	updated, err := h.reconciler.Recompute(c.UserContext(), date)
	if err != nil {
		_ = log.Error("Failed to recompute tallies", "error", err, "date", date)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to recompute tallies",
		})
	}

	return c.JSON(fiber.Map{
		"date":  date.Format("2006-01-02"),
		"songs": updated,
	})
}

func (h *AdminHandler) listDecisions(c *fiber.Ctx) error {
	log := h.log.Function("listDecisions")

	action := models.DecisionAction(c.Query("action"))
	entries, err := h.repos.DecisionLog.List(
		c.UserContext(),
		action,
		c.QueryInt("limit", 100),
		c.QueryInt("offset", 0),
	)
	if err != nil {
		_ = log.Error("Failed to list decisions", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list decisions",
		})
	}

	return c.JSON(fiber.Map{
		"decisions": entries,
		"count":     len(entries),
	})
}

type upsertArtistRequest struct {
	Name     string   `json:"name"`
	Aliases  []string `json:"aliases"`
	Genre    string   `json:"genre"`
	IsActive *bool    `json:"isActive"`
}

// upsertArtist creates or updates a verified artist, then drops the
// catalog caches so the new aliases take effect immediately.
func (h *AdminHandler) upsertArtist(c *fiber.Ctx) error {
	log := h.log.Function("upsertArtist")

	var req upsertArtistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name is required",
		})
	}

	artist := &models.VerifiedArtist{
		Name:     strings.TrimSpace(req.Name),
		Aliases:  strings.Join(req.Aliases, "\n"),
		Genre:    req.Genre,
		IsActive: true,
	}
	if req.IsActive != nil {
		artist.IsActive = *req.IsActive
	}

	if err := h.repos.VerifiedArtist.Upsert(c.UserContext(), artist); err != nil {
		_ = log.Error("Failed to upsert artist", "error", err, "name", req.Name)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save artist",
		})
	}

	h.cache.Invalidate(c.UserContext())

	return c.JSON(artist)
}
