// Package retirement содержит HTTP-обработчики расчета пенсионных накоплений.
package retirement

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"retireplan/internal/gateway/adapters/http/middleware"
	"retireplan/internal/gateway/app/dto"
	"retireplan/internal/gateway/app/services"
	"retireplan/internal/gateway/ports/provider"
	portservices "retireplan/internal/gateway/ports/services"
	"retireplan/internal/gateway/resilience"
	core "retireplan/internal/retirement"
	"retireplan/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerGetSummary    = "handling retirement summary request"
	LogHandlerGetProjection = "handling retirement projection request"
	LogHandlerProject       = "handling projection request"

	ErrMsgUserIDNotInteger   = "user_id must be an integer"
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgUserNotFound       = "user not found"
	ErrMsgProviderFailed     = "failed to retrieve user data"
	ErrMsgProviderOpen       = "user data provider temporarily unavailable"
	ErrMsgInternal           = "Internal server error"
)

// Handler обработчик HTTP-запросов расчета.
type Handler struct {
	retirementService portservices.RetirementService
}

// NewHandler создает новый экземпляр обработчика.
func NewHandler(retirementService portservices.RetirementService) *Handler {
	return &Handler{
		retirementService: retirementService,
	}
}

// GetSummary отвечает JSON-строкой с итоговым сообщением.
func (h *Handler) GetSummary(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetSummary"))
	log.Debug(requestCtx, LogHandlerGetSummary)

	userID, err := parseUserID(ctx)
	if err != nil {
		return writeError(ctx, fiber.StatusUnprocessableEntity, ErrMsgUserIDNotInteger)
	}

	message, err := h.retirementService.GetSummary(requestCtx, userID)
	if err != nil {
		return handleError(ctx, err)
	}

	if err := ctx.JSON(message); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// GetProjection отвечает подробным расчетом; ?schedule=true добавляет график взносов.
func (h *Handler) GetProjection(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetProjection"))
	log.Debug(requestCtx, LogHandlerGetProjection)

	userID, err := parseUserID(ctx)
	if err != nil {
		return writeError(ctx, fiber.StatusUnprocessableEntity, ErrMsgUserIDNotInteger)
	}

	resp, err := h.retirementService.GetProjection(requestCtx, userID, fiber.Query[bool](ctx, "schedule"))
	if err != nil {
		return handleError(ctx, err)
	}

	if err := ctx.JSON(resp); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Project рассчитывает проекцию по записи из тела запроса.
func (h *Handler) Project(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.Project"))
	log.Debug(requestCtx, LogHandlerProject)

	var record dto.UserRecord
	if err := ctx.Bind().WithoutAutoHandling().JSON(&record); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return writeError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	resp, err := h.retirementService.Project(requestCtx, &record, fiber.Query[bool](ctx, "schedule"))
	if err != nil {
		return handleError(ctx, err)
	}

	if err := ctx.JSON(resp); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

func parseUserID(ctx fiber.Ctx) (int64, error) {
	return strconv.ParseInt(ctx.Params("user_id"), 10, 64)
}

// handleError переводит ошибку сервиса в HTTP-ответ.
func handleError(ctx fiber.Ctx, err error) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)

	switch {
	case errors.Is(err, services.ErrInvalidUserID), errors.Is(err, services.ErrInvalidRequest):
		return writeError(ctx, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, core.ErrImplausibleInputs):
		return writeError(ctx, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, provider.ErrUserNotFound):
		return writeError(ctx, fiber.StatusNotFound, ErrMsgUserNotFound)
	case errors.Is(err, resilience.ErrCircuitOpen):
		log.Warn(requestCtx, ErrMsgProviderOpen, zap.Error(err))
		return writeError(ctx, fiber.StatusServiceUnavailable, ErrMsgProviderOpen)
	case errors.Is(err, provider.ErrUnavailable),
		errors.Is(err, provider.ErrUnexpectedStatus),
		errors.Is(err, provider.ErrMalformedResponse),
		errors.Is(err, services.ErrInvalidUserRecord):
		log.Error(requestCtx, ErrMsgProviderFailed, zap.Error(err))
		return writeError(ctx, fiber.StatusBadGateway, ErrMsgProviderFailed)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return writeError(ctx, fiberErr.Code, fiberErr.Message)
	}

	log.Error(requestCtx, ErrMsgInternal, zap.Error(err))
	return writeError(ctx, fiber.StatusInternalServerError, ErrMsgInternal)
}

func writeError(ctx fiber.Ctx, status int, message string) error {
	if err := ctx.Status(status).JSON(fiber.Map{"error": message}); err != nil {
		return fmt.Errorf("error sending %d response: %w", status, err)
	}
	return nil
}
