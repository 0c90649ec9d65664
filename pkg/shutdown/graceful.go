// Package shutdown предоставляет корректное завершение приложения
// по сигналам SIGINT и SIGTERM.
package shutdown

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"retireplan/pkg/logger"
)

// Константы для логирования.
const (
	LogSignalReceived  = "shutdown signal received"
	LogContextDone     = "shutdown requested by context"
	LogHookFailed      = "shutdown hook failed"
	LogShutdownTimeout = "shutdown timed out"
)

// ErrTimeout возвращается, если хуки не завершились за отведенное время.
var ErrTimeout = errors.New("shutdown timed out")

// Hook освобождает один ресурс при завершении.
type Hook func(context.Context) error

// Wait блокирует выполнение до сигнала SIGINT/SIGTERM или отмены ctx,
// затем выполняет хуки в рамках timeout.
func Wait(ctx context.Context, timeout time.Duration, hooks ...Hook) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	log := logger.Log(ctx)
	select {
	case sig := <-sigCh:
		log.Info(ctx, LogSignalReceived, zap.String("signal", sig.String()))
	case <-ctx.Done():
		log.Info(ctx, LogContextDone)
	}

	return Run(context.WithoutCancel(ctx), timeout, hooks...)
}

// Run параллельно выполняет хуки и ждет их завершения не дольше timeout.
func Run(ctx context.Context, timeout time.Duration, hooks ...Hook) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log := logger.Log(ctx)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for i, hook := range hooks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := hook(ctx); err != nil {
				log.Error(ctx, LogHookFailed, zap.Int("hook", i), zap.Error(err))
				mu.Lock()
				errs = append(errs, fmt.Errorf("hook %d: %w", i, err))
				mu.Unlock()
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		mu.Lock()
		defer mu.Unlock()
		return errors.Join(errs...)
	case <-ctx.Done():
		log.Warn(ctx, LogShutdownTimeout, zap.Duration("timeout", timeout))
		return ErrTimeout
	}
}
