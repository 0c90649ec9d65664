// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"retireplan/internal/gateway/adapters/http/middleware"
	"retireplan/internal/gateway/adapters/http/retirement"
	"retireplan/internal/gateway/config"
	"retireplan/internal/gateway/ports/services"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, corsConfig config.CORSConfig, retirementService services.RetirementService) {
	handler := retirement.NewHandler(retirementService)

	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())
	app.Use(middleware.NewCORSMiddleware(corsConfig))

	app.Get("/retirement_calculator/:user_id", handler.GetSummary)

	apiV1 := app.Group("/api/v1")

	retirementRoutes := apiV1.Group("/retirement")
	retirementRoutes.Get("/users/:user_id/projection", handler.GetProjection)
	retirementRoutes.Post("/projection", handler.Project)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
