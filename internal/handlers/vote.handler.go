package handlers

import (
	"chartline/internal/app"
	"chartline/internal/models"
	"chartline/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type VoteHandler struct {
	Handler
	voteIngestion *services.VoteIngestionService
}

type submitVoteRequest struct {
	Channel string `json:"channel"`
	UserRef string `json:"userRef"`
	Text    string `json:"text"`
}

func NewVoteHandler(app app.App, router fiber.Router) *VoteHandler {
	return &VoteHandler{
		voteIngestion: app.Services.VoteIngestion,
		Handler: Handler{
			log:        logger.New("handlers").File("vote_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *VoteHandler) Register() {
	votes := h.router.Group("/votes")
	votes.Post("/", h.submitVote)
}

// submitVote accepts one inbound chat message from a channel adapter and
// returns the reply text to send back to the voter.
func (h *VoteHandler) submitVote(c *fiber.Ctx) error {
	log := h.log.Function("submitVote")

	var req submitVoteRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	channel := models.VoteChannel(req.Channel)
	switch channel {
	case models.ChannelTelegram, models.ChannelWhatsApp:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "channel must be telegram or whatsapp",
		})
	}

	if req.UserRef == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "userRef is required",
		})
	}

	message, err := h.voteIngestion.Submit(c.UserContext(), channel, req.UserRef, req.Text)
	if err != nil {
		_ = log.Error("Vote submission failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process vote",
		})
	}

	return c.JSON(fiber.Map{
		"message": message,
	})
}
