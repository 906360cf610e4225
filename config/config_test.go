package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "https://jsonplaceholder.typicode.com", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, StrategySequential, cfg.Render.Strategy)
	assert.Equal(t, 4, cfg.Render.Concurrency)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `
api:
  base_url: http://localhost:8081
render:
  strategy: concurrent
  concurrency: 8
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8081", cfg.API.BaseURL)
	assert.Equal(t, StrategyConcurrent, cfg.Render.Strategy)
	assert.Equal(t, 8, cfg.Render.Concurrency)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DIRECTORY_SERVER_ADDR", ":9090")
	t.Setenv("DIRECTORY_RENDER_STRATEGY", "concurrent")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, StrategyConcurrent, cfg.Render.Strategy)
}

func TestValidate(t *testing.T) {
	cfg := &Config{API: APIConfig{BaseURL: "http://x"}, Render: RenderConfig{Strategy: "parallel"}}
	assert.Error(t, cfg.Validate())

	cfg.Render.Strategy = StrategySequential
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 1, cfg.Render.Concurrency)

	cfg.API.BaseURL = ""
	assert.Error(t, cfg.Validate())
}
