package shutdown_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retireplan/pkg/shutdown"
)

var errClose = errors.New("close failed")

func TestRunExecutesAllHooks(t *testing.T) {
	var calls atomic.Int32
	hook := func(context.Context) error {
		calls.Add(1)
		return nil
	}

	err := shutdown.Run(context.Background(), time.Second, hook, hook, hook)

	require.NoError(t, err)
	assert.EqualValues(t, 3, calls.Load())
}

func TestRunJoinsHookErrors(t *testing.T) {
	ok := func(context.Context) error { return nil }
	failing := func(context.Context) error { return errClose }

	err := shutdown.Run(context.Background(), time.Second, ok, failing)

	require.Error(t, err)
	assert.ErrorIs(t, err, errClose)
}

func TestRunTimesOut(t *testing.T) {
	slow := func(ctx context.Context) error {
		select {
		case <-time.After(5 * time.Second):
		case <-ctx.Done():
			time.Sleep(50 * time.Millisecond)
		}
		return nil
	}

	err := shutdown.Run(context.Background(), 20*time.Millisecond, slow)

	assert.ErrorIs(t, err, shutdown.ErrTimeout)
}

func TestWaitReturnsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	hookCalled := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- shutdown.Wait(ctx, time.Second, func(hookCtx context.Context) error {
			close(hookCalled)
			return hookCtx.Err()
		})
	}()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err, "hooks must run with a live context after cancellation")
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return after context cancellation")
	}

	select {
	case <-hookCalled:
	default:
		t.Fatal("hook was not called")
	}
}
