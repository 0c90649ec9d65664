// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"retireplan/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// requestContextKey - ключ Locals с контекстом запроса.
const requestContextKey = "requestContext"

// NewRequestIDMiddleware берет идентификатор из X-Request-ID или создает новый,
// возвращает его клиенту и кладет контекст с идентификатором в Locals.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestID := ctx.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		ctx.Set(HeaderRequestID, requestID)

		ctx.Locals(requestContextKey, logger.NewRequestIDContext(ctx.Context(), requestID))

		return ctx.Next()
	}
}

// RequestContext возвращает контекст запроса с идентификатором.
func RequestContext(ctx fiber.Ctx) context.Context {
	if requestCtx, ok := ctx.Locals(requestContextKey).(context.Context); ok {
		return requestCtx
	}
	return ctx.Context()
}
