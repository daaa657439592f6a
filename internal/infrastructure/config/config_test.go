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

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "gemini", cfg.Generation.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.Generation.Model)
	assert.Equal(t, 60*time.Second, cfg.Generation.Timeout)
	assert.Equal(t, 4, cfg.Recipes.DefaultCandidates)
	assert.Equal(t, 8, cfg.Recipes.MaxCandidates)
	assert.Equal(t, "https://cookpad.com/search/", cfg.Recipes.SearchURLBase)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, int64(1<<20), cfg.BodyLimit)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GENERATION_PROVIDER", "openrouter")
	t.Setenv("GENERATION_MODEL", "google/gemini-2.5-flash")
	t.Setenv("OPENROUTER_API_KEY", "or-key")
	t.Setenv("APP_RECIPES_MAX_CANDIDATES", "5")
	t.Setenv("CACHE_ENABLED", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "openrouter", cfg.Generation.Provider)
	assert.Equal(t, "google/gemini-2.5-flash", cfg.Generation.Model)
	assert.Equal(t, "or-key", cfg.ActiveProvider().APIKey)
	assert.Equal(t, 5, cfg.Recipes.MaxCandidates)
	assert.True(t, cfg.Cache.Enabled)
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown provider", map[string]string{"GENERATION_PROVIDER": "bogus"}},
		{"unknown cache backend", map[string]string{"CACHE_ENABLED": "true", "CACHE_BACKEND": "memcached"}},
		{"zero max candidates", map[string]string{"APP_RECIPES_MAX_CANDIDATES": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestActiveProvider(t *testing.T) {
	cfg := &Config{
		Generation: GenerationConfig{Provider: "gemini"},
		Gemini:     ProviderConfig{APIKey: "g"},
		OpenRouter: ProviderConfig{APIKey: "o"},
	}
	assert.Equal(t, "g", cfg.ActiveProvider().APIKey)

	cfg.Generation.Provider = "openrouter"
	assert.Equal(t, "o", cfg.ActiveProvider().APIKey)
}
