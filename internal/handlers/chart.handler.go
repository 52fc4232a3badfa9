package handlers

import (
	"time"

	"chartline/internal/app"
	"chartline/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type ChartHandler struct {
	Handler
	repos repositories.Repository
}

type chartEntry struct {
	Position int    `json:"position"`
	Artist   string `json:"artist"`
	Title    string `json:"title"`
	Count    int    `json:"count"`
	ImageURL string `json:"imageUrl,omitempty"`
}

func NewChartHandler(app app.App, router fiber.Router) *ChartHandler {
	return &ChartHandler{
		repos: app.Repos,
		Handler: Handler{
			log:        logger.New("handlers").File("chart_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ChartHandler) Register() {
	charts := h.router.Group("/charts")
	charts.Get("/today", h.getTodayChart)
	charts.Get("/:date", h.getChart)
}

func (h *ChartHandler) getTodayChart(c *fiber.Ctx) error {
	return h.renderChart(c, time.Now().UTC())
}

// getChart returns the canonical chart for one day. Only verified songs
// appear; unresolved and pending votes are excluded until reviewed.
func (h *ChartHandler) getChart(c *fiber.Ctx) error {
	date, err := time.Parse("2006-01-02", c.Params("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "date must be formatted as YYYY-MM-DD",
		})
	}

	return h.renderChart(c, date)
}

func (h *ChartHandler) renderChart(c *fiber.Ctx, date time.Time) error {
	log := h.log.Function("renderChart")

	tallies, err := h.repos.CanonicalTally.GetByDate(c.UserContext(), date)
	if err != nil {
		_ = log.Error("Failed to load chart", "error", err, "date", date)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load chart",
		})
	}

	entries := make([]chartEntry, 0, len(tallies))
	for i, tally := range tallies {
		entry := chartEntry{
			Position: i + 1,
			Count:    tally.Count,
		}
		if tally.Song != nil {
			entry.Artist = tally.Song.Artist
			entry.Title = tally.Song.Title
			if tally.Song.ImageURL != nil {
				entry.ImageURL = *tally.Song.ImageURL
			}
		}
		entries = append(entries, entry)
	}

	return c.JSON(fiber.Map{
		"date":    date.Format("2006-01-02"),
		"entries": entries,
	})
}
