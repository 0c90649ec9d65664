// Package services содержит прикладные сервисы шлюза расчета.
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"retireplan/internal/gateway/app/dto"
	"retireplan/internal/gateway/ports/cache"
	"retireplan/internal/gateway/ports/provider"
	"retireplan/internal/gateway/ports/services"
	"retireplan/internal/gateway/resilience"
	"retireplan/internal/retirement"
	"retireplan/pkg/logger"
)

// Константы для логирования.
const (
	LogServiceGetSummary    = "retirement service: get summary"
	LogServiceGetProjection = "retirement service: get projection"
	LogServiceProject       = "retirement service: project"
	LogRecordCacheHit       = "user record found in cache"
	LogRecordCached         = "user record cached"

	ErrorFetchUserFailed   = "failed to fetch user record"
	ErrorCacheReadFailed   = "failed to read user record from cache"
	ErrorCacheWriteFailed  = "failed to cache user record"
	ErrorCacheDecodeFailed = "failed to decode cached user record"
	ErrorComputeFailed     = "failed to compute projection"
)

// RecordCacheKeyPrefix - префикс ключа кэша записи пользователя.
const RecordCacheKeyPrefix = "retirement:user:"

const cacheWriteTimeout = 2 * time.Second

// RetirementServiceImpl реализация интерфейса RetirementService.
type RetirementServiceImpl struct {
	provider   provider.UserDataProvider
	cache      cache.Cache
	resilience *resilience.ServiceResilience
	calculator *retirement.Calculator
	validate   *validator.Validate
	cacheTTL   time.Duration
}

// Option настраивает сервис.
type Option func(*RetirementServiceImpl)

// WithCacheTTL задает время жизни записей в кэше; 0 - TTL кэша по умолчанию.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *RetirementServiceImpl) {
		s.cacheTTL = ttl
	}
}

// NewRetirementService создает новый экземпляр сервиса расчета.
func NewRetirementService(
	userProvider provider.UserDataProvider,
	recordCache cache.Cache,
	res *resilience.ServiceResilience,
	calculator *retirement.Calculator,
	opts ...Option,
) services.RetirementService {
	s := &RetirementServiceImpl{
		provider:   userProvider,
		cache:      recordCache,
		resilience: res,
		calculator: calculator,
		validate:   validator.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetSummary возвращает итоговое сообщение для пользователя.
func (s *RetirementServiceImpl) GetSummary(ctx context.Context, userID int64) (string, error) {
	logger.Log(ctx).Info(ctx, LogServiceGetSummary, zap.Int64("user_id", userID))

	resp, err := s.projectUser(ctx, userID, false)
	if err != nil {
		return "", err
	}

	return resp.Message, nil
}

// GetProjection возвращает подробный расчет для пользователя.
func (s *RetirementServiceImpl) GetProjection(ctx context.Context, userID int64, withSchedule bool) (*dto.ProjectionResponse, error) {
	logger.Log(ctx).Info(ctx, LogServiceGetProjection,
		zap.Int64("user_id", userID), zap.Bool("schedule", withSchedule))

	return s.projectUser(ctx, userID, withSchedule)
}

// Project рассчитывает проекцию по переданной записи.
func (s *RetirementServiceImpl) Project(ctx context.Context, record *dto.UserRecord, withSchedule bool) (*dto.ProjectionResponse, error) {
	logger.Log(ctx).Info(ctx, LogServiceProject, zap.Bool("schedule", withSchedule))

	if record == nil {
		return nil, fmt.Errorf("%w: empty body", ErrInvalidRequest)
	}

	return s.project(ctx, record, withSchedule, ErrInvalidRequest)
}

func (s *RetirementServiceImpl) projectUser(ctx context.Context, userID int64, withSchedule bool) (*dto.ProjectionResponse, error) {
	if userID < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidUserID, userID)
	}

	record, err := s.loadRecord(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.project(ctx, record, withSchedule, ErrInvalidUserRecord)
}

// loadRecord читает запись из кэша, при промахе запрашивает поставщика
// и сохраняет ответ. Сбои кэша не прерывают расчет.
func (s *RetirementServiceImpl) loadRecord(ctx context.Context, userID int64) (*dto.UserRecord, error) {
	log := logger.Log(ctx).With(zap.Int64("user_id", userID))
	key := RecordCacheKeyPrefix + strconv.FormatInt(userID, 10)

	cached, ok, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		log.Warn(ctx, ErrorCacheReadFailed, zap.Error(err))
	case ok:
		var record dto.UserRecord
		decodeErr := record.UnmarshalBinary([]byte(cached))
		if decodeErr == nil {
			log.Debug(ctx, LogRecordCacheHit)
			return &record, nil
		}
		log.Warn(ctx, ErrorCacheDecodeFailed, zap.Error(decodeErr))
	}

	record, err := resilience.ExecuteWithResult(ctx, s.resilience, "FetchUser",
		func(ctx context.Context) (*dto.UserRecord, error) {
			return s.provider.FetchUser(ctx, userID)
		})
	if err != nil {
		if !errors.Is(err, provider.ErrUserNotFound) {
			log.Error(ctx, ErrorFetchUserFailed, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", ErrorFetchUserFailed, err)
	}

	s.storeRecord(ctx, log, key, record)

	return record, nil
}

func (s *RetirementServiceImpl) storeRecord(ctx context.Context, log *logger.Logger, key string, record *dto.UserRecord) {
	data, err := record.MarshalBinary()
	if err != nil {
		log.Warn(ctx, ErrorCacheWriteFailed, zap.Error(err))
		return
	}

	cacheCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheWriteTimeout)
	defer cancel()

	if err := s.cache.Set(cacheCtx, key, string(data), s.cacheTTL); err != nil {
		log.Warn(ctx, ErrorCacheWriteFailed, zap.Error(err))
		return
	}
	log.Debug(ctx, LogRecordCached)
}

// project проверяет запись и выполняет расчет. invalid - ошибка, которой
// помечается непрошедшая проверку запись.
func (s *RetirementServiceImpl) project(
	ctx context.Context,
	record *dto.UserRecord,
	withSchedule bool,
	invalid error,
) (*dto.ProjectionResponse, error) {
	if err := s.validate.Struct(record); err != nil {
		return nil, fmt.Errorf("%w: %w", invalid, err)
	}

	inputs, err := record.ToInputs()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", invalid, err)
	}

	plan, err := s.calculator.Evaluate(inputs, withSchedule)
	if errors.Is(err, retirement.ErrImplausibleInputs) {
		return nil, err
	}
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrorComputeFailed, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorComputeFailed, err)
	}

	resp := dto.NewProjectionResponse(inputs.RetirementAge, plan.Projection)
	if withSchedule {
		resp.WithSchedule(plan.Schedule)
	}

	return resp, nil
}
