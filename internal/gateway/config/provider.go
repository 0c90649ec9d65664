package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// ProviderConfig представляет конфигурацию клиента поставщика данных пользователей.
type ProviderConfig struct {
	BaseURL string        `yaml:"base_url" env:"RETIREMENT_PROVIDER_BASE_URL" env-default:"http://localhost:9000/users" validate:"required,url"`
	Timeout time.Duration `yaml:"timeout" env:"RETIREMENT_PROVIDER_TIMEOUT" env-default:"5s" validate:"gt=0"`

	Retry   RetryConfig   `yaml:"retry"`
	Breaker BreakerConfig `yaml:"breaker"`
}

// RetryConfig задает повторные попытки запросов к поставщику.
type RetryConfig struct {
	MaxAttempts    int           `yaml:"max_attempts" env:"RETIREMENT_PROVIDER_RETRY_MAX_ATTEMPTS" env-default:"3" validate:"min=1"`
	InitialBackoff time.Duration `yaml:"initial_backoff" env:"RETIREMENT_PROVIDER_RETRY_INITIAL_BACKOFF" env-default:"100ms"`
	MaxBackoff     time.Duration `yaml:"max_backoff" env:"RETIREMENT_PROVIDER_RETRY_MAX_BACKOFF" env-default:"1s"`
	BackoffFactor  float64       `yaml:"backoff_factor" env:"RETIREMENT_PROVIDER_RETRY_BACKOFF_FACTOR" env-default:"2" validate:"gte=1"`
}

// BreakerConfig задает параметры Circuit Breaker для поставщика.
type BreakerConfig struct {
	ErrorThreshold   int           `yaml:"error_threshold" env:"RETIREMENT_PROVIDER_BREAKER_ERROR_THRESHOLD" env-default:"5" validate:"min=1"`
	OpenTimeout      time.Duration `yaml:"open_timeout" env:"RETIREMENT_PROVIDER_BREAKER_OPEN_TIMEOUT" env-default:"10s"`
	SuccessThreshold int           `yaml:"success_threshold" env:"RETIREMENT_PROVIDER_BREAKER_SUCCESS_THRESHOLD" env-default:"2" validate:"min=1"`
}

// Validate проверяет ограничения конфигурации поставщика, заданные тегами validate.
func (c *ProviderConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%s: %w", ErrInvalidConfigValue, err)
	}
	return nil
}
