package services

import "errors"

// Ошибки сервиса расчета.
var (
	// ErrInvalidUserID - идентификатор пользователя отрицателен.
	ErrInvalidUserID = errors.New("user id must be a non-negative integer")
	// ErrInvalidRequest - тело запроса расчета не прошло проверку.
	ErrInvalidRequest = errors.New("invalid projection request")
	// ErrInvalidUserRecord - поставщик вернул запись, не прошедшую проверку.
	ErrInvalidUserRecord = errors.New("user data provider returned invalid record")
)
