package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"

	"retireplan/internal/gateway/config"
)

// NewCORSMiddleware разрешает запросы браузерных клиентов с настроенных источников.
func NewCORSMiddleware(cfg config.CORSConfig) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowCredentials: cfg.AllowCredentials,
		AllowMethods:     []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodOptions},
		AllowHeaders:     []string{fiber.HeaderContentType, fiber.HeaderAccept, HeaderRequestID},
		ExposeHeaders:    []string{HeaderRequestID},
	})
}
