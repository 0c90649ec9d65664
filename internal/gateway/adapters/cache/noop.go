package cache

import (
	"context"
	"time"

	"retireplan/internal/gateway/ports/cache"
)

// NoopCache ничего не хранит; используется, когда Redis отключен.
type NoopCache struct{}

var _ cache.Cache = NoopCache{}

func (NoopCache) Get(context.Context, string) (string, bool, error) { return "", false, nil }

func (NoopCache) Set(context.Context, string, string, time.Duration) error { return nil }

func (NoopCache) Delete(context.Context, string) error { return nil }

func (NoopCache) Close() error { return nil }
