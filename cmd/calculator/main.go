package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"retireplan/internal/gateway/adapters/cache"
	httpServer "retireplan/internal/gateway/adapters/http"
	"retireplan/internal/gateway/adapters/provider/userdata"
	"retireplan/internal/gateway/app/services"
	"retireplan/internal/gateway/config"
	portcache "retireplan/internal/gateway/ports/cache"
	"retireplan/internal/gateway/ports/provider"
	"retireplan/internal/gateway/resilience"
	"retireplan/internal/retirement"
	"retireplan/pkg/logger"
	"retireplan/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "RETIREMENT_LOGGER_MODE"
	EnvLoggerLevel = "RETIREMENT_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrCreateProvider       = "failed to create user data provider client"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrStartHTTPServer      = "failed to start HTTP server"
	ErrShutdown             = "shutdown finished with errors"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "retirement calculator started"
	LogServiceShutdownDone = "retirement calculator shutdown complete"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingCache        = "closing cache"
	LogInitProvider        = "initializing user data provider client"
	LogInitCache           = "initializing cache"
	LogCacheDisabled       = "redis cache disabled"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
)

const providerServiceName = "user-data-provider"

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitProvider, zap.String("base_url", cfg.Provider.BaseURL))
		userProvider, err := userdata.NewClient(cfg.Provider)
		if err != nil {
			log.Error(ctx, ErrCreateProvider, zap.Error(err))
			exitCode = 1
			return
		}

		recordCache, err := newCache(ctx, log, &cfg.Redis)
		if err != nil {
			log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitServices)
		calculator := retirement.NewCalculator(cfg.Assumptions.ToAssumptions())
		res := resilience.NewFromConfig(providerServiceName, cfg.Provider, provider.ErrUserNotFound)
		retirementService := services.NewRetirementService(userProvider, recordCache, res, calculator)

		log.Info(ctx, LogInitHTTPServer)
		app := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})

		httpServer.SetupRouter(app, cfg.CORS, retirementService)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := app.Listen(cfg.HTTP.GetAddress(), fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		err = shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return app.ShutdownWithContext(ctx)
			},
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingCache)
				return recordCache.Close()
			},
		)
		if err != nil {
			log.Error(ctx, ErrShutdown, zap.Error(err))
			exitCode = 1
		}

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// newCache подключается к Redis или возвращает пустой кэш, если Redis отключен.
func newCache(ctx context.Context, log *logger.Logger, cfg *config.RedisConfig) (portcache.Cache, error) {
	if !cfg.Enabled {
		log.Info(ctx, LogCacheDisabled)
		return cache.NoopCache{}, nil
	}

	log.Info(ctx, LogInitCache, zap.String("address", cfg.GetAddress()))
	return cache.NewRedisCache(ctx, cfg)
}
