package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMConfigDefaults(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("LLM_TIMEOUT", "")
	t.Setenv("LLM_MAX_RETRIES", "")

	cfg, err := newLLMConfig()
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenRouter, cfg.Provider)
	assert.Equal(t, 60*time.Second, cfg.Timeout)
	assert.Equal(t, 0, cfg.MaxRetries)
	assert.Equal(t, 2000, cfg.MaxTokens)
	assert.InDelta(t, 0.2, cfg.Temperature, 1e-9)
	assert.Contains(t, cfg.SystemInstruction, "interview coach")
}

func TestNewLLMConfigRejectsUnknownProvider(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "perplexity")

	_, err := newLLMConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported LLM provider")
}

func TestNewLLMConfigOverrides(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("LLM_TIMEOUT", "5s")
	t.Setenv("LLM_MAX_RETRIES", "2")

	cfg, err := newLLMConfig()
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 2, cfg.MaxRetries)
}

func TestNewCoachConfig(t *testing.T) {
	t.Setenv("MATCH_UPDATE_THRESHOLD", "0.75")
	t.Setenv("PLATEAU_AFTER", "72h")

	cfg, err := newCoachConfig()
	require.NoError(t, err)
	assert.InDelta(t, 0.75, cfg.MatchUpdateThreshold, 1e-9)
	assert.Equal(t, 72*time.Hour, cfg.PlateauAfter)
	assert.Equal(t, 7*24*time.Hour, cfg.RecentWindow)
}

func TestNewCoachConfigRejectsThresholdOutOfRange(t *testing.T) {
	t.Setenv("MATCH_UPDATE_THRESHOLD", "1.5")

	_, err := newCoachConfig()
	require.Error(t, err)
}

func TestInvalidNumbersFallBackToDefaults(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	t.Setenv("SOME_DURATION", "forever")

	assert.Equal(t, 3, getEnvInt("SOME_INT", 3))
	assert.Equal(t, time.Minute, getEnvDuration("SOME_DURATION", time.Minute))
}

func TestProviderConfigs(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "or-key")
	t.Setenv("OPENROUTER_MODEL", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GEMINI_MODEL", "custom")

	or := newOpenRouterConfig()
	assert.Equal(t, "or-key", or.APIKey)
	assert.Equal(t, "perplexity/sonar", or.Model)
	assert.Equal(t, "https://openrouter.ai/api/v1", or.BaseURL)

	gem := newGeminiConfig()
	assert.Empty(t, gem.APIKey)
	assert.Equal(t, "custom", gem.Model)
}
