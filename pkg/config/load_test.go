package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retireplan/pkg/config"
)

type sampleConfig struct {
	Name    string        `yaml:"name" env:"SAMPLE_NAME" env-default:"default-name"`
	Port    int           `yaml:"port" env:"SAMPLE_PORT" env-default:"8080"`
	Timeout time.Duration `yaml:"timeout" env:"SAMPLE_TIMEOUT" env-default:"5s"`
}

func TestLoad_EnvironmentOnly(t *testing.T) {
	t.Setenv("SAMPLE_PORT", "9090")

	cfg, err := config.Load[sampleConfig](context.Background(), "sample", "")
	require.NoError(t, err)

	assert.Equal(t, "default-name", cfg.Name)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoad_FileWithEnvironmentOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: from-file\nport: 7000\ntimeout: 2s\n"), 0o600))
	t.Setenv("SAMPLE_PORT", "7100")

	cfg, err := config.Load[sampleConfig](context.Background(), "sample", path)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Name)
	assert.Equal(t, 7100, cfg.Port)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
}

func TestLoad_MissingFileFallsBackToEnvironment(t *testing.T) {
	cfg, err := config.Load[sampleConfig](context.Background(), "sample", filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("SAMPLE_PORT", "not-a-number")

	cfg, err := config.Load[sampleConfig](context.Background(), "sample", "")
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to load configuration")
}
