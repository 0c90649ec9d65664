// Package provider определяет порт поставщика данных пользователей.
package provider

import (
	"context"
	"errors"

	"retireplan/internal/gateway/app/dto"
)

// Ошибки получения данных.
var (
	// ErrUserNotFound - поставщик не знает такого пользователя.
	ErrUserNotFound = errors.New("user not found")
	// ErrUnavailable - поставщик недоступен или не ответил вовремя.
	ErrUnavailable = errors.New("user data provider unavailable")
	// ErrUnexpectedStatus - поставщик ответил неуспешным статусом.
	ErrUnexpectedStatus = errors.New("user data provider returned unexpected status")
	// ErrMalformedResponse - тело ответа не удалось разобрать.
	ErrMalformedResponse = errors.New("user data provider returned malformed response")
)

// UserDataProvider получает запись пользователя по идентификатору.
type UserDataProvider interface {
	FetchUser(ctx context.Context, userID int64) (*dto.UserRecord, error)
}
