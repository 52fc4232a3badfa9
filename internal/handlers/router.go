package handlers

import (
	"chartline/internal/app"
	"chartline/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func Router(router fiber.Router, app *app.App) error {
	api := router.Group("/api")
	HealthHandler(api, app.Config)
	NewVoteHandler(*app, api).Register()
	NewChartHandler(*app, api).Register()
	NewAdminHandler(*app, api).Register()

	return nil
}
