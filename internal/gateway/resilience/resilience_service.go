package resilience

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"retireplan/internal/gateway/config"
	"retireplan/pkg/logger"
)

// ServiceResilience объединяет Circuit Breaker и повторные попытки для вызовов внешнего сервиса.
type ServiceResilience struct {
	serviceName    string
	circuitBreaker *CircuitBreaker
	retry          *Retry
}

// NewServiceResilience создает обертку отказоустойчивости с настройками по умолчанию.
func NewServiceResilience(serviceName string) *ServiceResilience {
	return &ServiceResilience{
		serviceName:    serviceName,
		circuitBreaker: NewCircuitBreaker(serviceName, DefaultCircuitBreakerConfig()),
		retry:          NewRetry(serviceName, DefaultRetryConfig()),
	}
}

// NewFromConfig создает обертку по конфигурации поставщика.
// Ошибки из permanent не повторяются и не учитываются Circuit Breaker как отказы.
func NewFromConfig(serviceName string, cfg config.ProviderConfig, permanent ...error) *ServiceResilience {
	isPermanent := func(err error) bool {
		for _, target := range permanent {
			if errors.Is(err, target) {
				return true
			}
		}
		return false
	}

	breaker := CircuitBreakerConfig{
		ErrorThreshold:   cfg.Breaker.ErrorThreshold,
		Timeout:          cfg.Breaker.OpenTimeout,
		SuccessThreshold: cfg.Breaker.SuccessThreshold,
		IsFailure:        func(err error) bool { return !isPermanent(err) },
	}

	retry := RetryConfig{
		MaxAttempts:    cfg.Retry.MaxAttempts,
		InitialBackoff: cfg.Retry.InitialBackoff,
		MaxBackoff:     cfg.Retry.MaxBackoff,
		BackoffFactor:  cfg.Retry.BackoffFactor,
		ShouldRetry: func(err error) bool {
			return DefaultShouldRetry(err) && !isPermanent(err)
		},
	}

	return &ServiceResilience{
		serviceName:    serviceName,
		circuitBreaker: NewCircuitBreaker(serviceName, breaker),
		retry:          NewRetry(serviceName, retry),
	}
}

// State возвращает состояние Circuit Breaker.
func (r *ServiceResilience) State() CircuitState {
	return r.circuitBreaker.GetState()
}

// ExecuteWithResilience выполняет операцию с отказоустойчивостью.
// Серия повторов считается одним вызовом для Circuit Breaker.
func (r *ServiceResilience) ExecuteWithResilience(
	ctx context.Context,
	operationName string,
	operation func(ctx context.Context) error,
) error {
	log := logger.Log(ctx).With(
		zap.String("service", r.serviceName),
		zap.String("operation", operationName),
	)
	log.Debug(ctx, "Executing operation with resilience")

	return r.circuitBreaker.Execute(ctx, func() error {
		return r.retry.Execute(ctx, func() error {
			if err := operation(ctx); err != nil {
				log.Warn(ctx, "Operation failed", zap.Error(err))
				return err
			}
			return nil
		})
	})
}

// ExecuteWithResult выполняет операцию с отказоустойчивостью и возвращает ее результат.
func ExecuteWithResult[T any](
	ctx context.Context,
	r *ServiceResilience,
	operationName string,
	operation func(ctx context.Context) (T, error),
) (T, error) {
	var result T

	err := r.ExecuteWithResilience(ctx, operationName, func(ctx context.Context) error {
		value, err := operation(ctx)
		if err != nil {
			return err
		}
		result = value
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return result, nil
}
