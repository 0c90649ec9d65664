package redis_test

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbredis "retireplan/pkg/db/redis"
)

func TestNewClient(t *testing.T) {
	s := miniredis.RunT(t)
	host, portStr, err := net.SplitHostPort(s.Addr())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	client, err := dbredis.NewClient(context.Background(), dbredis.Config{Host: host, Port: port, DB: 0})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	got, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestNewClient_Unreachable(t *testing.T) {
	client, err := dbredis.NewClient(context.Background(), dbredis.Config{
		Host:        "127.0.0.1",
		Port:        1,
		DialTimeout: 100 * time.Millisecond,
	})
	require.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
}

func TestConfig_Address(t *testing.T) {
	assert.Equal(t, "localhost:6379", dbredis.Config{Host: "localhost", Port: 6379}.Address())
	assert.Equal(t, "[::1]:6380", dbredis.Config{Host: "::1", Port: 6380}.Address())
}
