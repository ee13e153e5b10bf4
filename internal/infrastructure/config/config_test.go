package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "openai/gpt-4o-mini", cfg.OpenRouter.Model)
	assert.Equal(t, 3000, cfg.OpenRouter.MaxTokens)
	assert.Equal(t, 2000, cfg.OpenRouter.VisionMaxTokens)
	assert.InDelta(t, 0.1, cfg.OpenRouter.Temperature, 0.001)
	assert.Equal(t, 60*time.Second, cfg.OpenRouter.Timeout)
	assert.Equal(t, 10*time.Second, cfg.Scraper.Timeout)
	assert.Equal(t, 15000, cfg.Scraper.MaxChars)
	assert.Equal(t, int64(10*1024*1024), cfg.Upload.MaxSizeBytes)
	assert.Equal(t, "recipes.db", cfg.Database.Path)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("OPENROUTER_MODEL", "anthropic/claude-3-haiku")
	t.Setenv("DATABASE_PATH", "/tmp/override.db")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "anthropic/claude-3-haiku", cfg.OpenRouter.Model)
	assert.Equal(t, "/tmp/override.db", cfg.Database.Path)
}

func TestValidateConfigRejectsBadValues(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	broken := *cfg
	broken.OpenRouter.MaxTokens = 0
	assert.Error(t, validateConfig(&broken))

	broken = *cfg
	broken.Scraper.MaxChars = 0
	assert.Error(t, validateConfig(&broken))

	broken = *cfg
	broken.Cache.Backend = "memcached"
	assert.Error(t, validateConfig(&broken))

	broken = *cfg
	broken.Database.Path = ""
	assert.Error(t, validateConfig(&broken))
}
