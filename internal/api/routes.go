package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes registers all HTTP routes on the Fiber app.
func RegisterRoutes(app *fiber.App, handler *AlleviateHandler) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(HealthResponse{
			Status:    "OK",
			Message:   "alleviate-api is running",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	})

	settings := app.Group("/settings", BasicAuth())
	settings.Post("/phone", handler.UpdatePhoneHandler)

	// Fallback for unmatched routes
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "endpoint not found",
			"endpoints": []string{
				"GET /health",
				"GET /metrics",
				"POST /settings/phone",
			},
		})
	})
}
