// Package config содержит конфигурацию HTTP-сервиса пенсионного калькулятора.
package config

import (
	"context"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"retireplan/internal/retirement"
	pkgconfig "retireplan/pkg/config"
	"retireplan/pkg/logger"
)

// Константы ошибок и сообщений для конфигурации.
const (
	ServiceName = "retirement-calculator"

	// EnvConfigPath - необязательный путь к файлу конфигурации.
	EnvConfigPath = "RETIREMENT_CONFIG_PATH"

	LogConfigLoaded       = "Configuration loaded successfully"
	ErrFailedLoadConfig   = "Failed to load configuration"
	ErrInvalidConfigValue = "Invalid configuration"
)

// Config представляет полную конфигурацию сервиса.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Provider    ProviderConfig    `yaml:"provider"`
	Logging     LoggingConfig     `yaml:"logging"`
	Shutdown    ShutdownConfig    `yaml:"shutdown"`
	Redis       RedisConfig       `yaml:"redis"`
	CORS        CORSConfig        `yaml:"cors"`
	Assumptions AssumptionsConfig `yaml:"assumptions"`
}

// Load загружает конфигурацию из файла RETIREMENT_CONFIG_PATH (если задан)
// и переменных окружения, затем проверяет значения.
func Load(ctx context.Context) (*Config, error) {
	log := logger.Log(ctx)

	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, os.Getenv(EnvConfigPath))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		log.Error(ctx, ErrInvalidConfigValue, zap.Error(err))
		return nil, err
	}

	log.Info(ctx, LogConfigLoaded,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("provider_base_url", cfg.Provider.BaseURL),
		zap.Duration("provider_timeout", cfg.Provider.Timeout),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.String("redis_address", cfg.Redis.GetAddress()),
		zap.Duration("redis_default_ttl", cfg.Redis.DefaultTTL),
		zap.Strings("cors_allow_origins", cfg.CORS.AllowOrigins),
		zap.Float64("inflation_rate", cfg.Assumptions.InflationRate),
		zap.Float64("salary_increase_rate", cfg.Assumptions.SalaryIncreaseRate))

	return cfg, nil
}

// Validate проверяет ограничения, заданные тегами validate.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%s: %w", ErrInvalidConfigValue, err)
	}
	return nil
}

// GetEnvironment возвращает режим работы логгера.
func (c *LoggingConfig) GetEnvironment() logger.Environment {
	if c.Mode == "development" {
		return logger.Development
	}
	return logger.Production
}

// ToAssumptions переводит конфигурацию в допущения калькулятора.
func (c *AssumptionsConfig) ToAssumptions() retirement.Assumptions {
	return retirement.Assumptions{
		InflationRate:      c.InflationRate,
		SalaryIncreaseRate: c.SalaryIncreaseRate,
	}
}
