// Package services определяет интерфейсы прикладных сервисов.
package services

import (
	"context"

	"retireplan/internal/gateway/app/dto"
)

// RetirementService определяет расчет пенсионных накоплений.
type RetirementService interface {
	// GetSummary возвращает текстовое сообщение для пользователя userID.
	GetSummary(ctx context.Context, userID int64) (string, error)

	// GetProjection возвращает подробный расчет для пользователя userID.
	GetProjection(ctx context.Context, userID int64, withSchedule bool) (*dto.ProjectionResponse, error)

	// Project рассчитывает проекцию по переданной записи без обращения к поставщику.
	Project(ctx context.Context, record *dto.UserRecord, withSchedule bool) (*dto.ProjectionResponse, error)
}
