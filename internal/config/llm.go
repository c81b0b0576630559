package config

import (
	"fmt"
	"sync"
	"time"
)

const (
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
)

// LLMConfig holds provider-neutral generation settings.
type LLMConfig struct {
	Provider          string
	SystemInstruction string
	Timeout           time.Duration
	MaxRetries        int
	MaxTokens         int
	Temperature       float64
}

var (
	llmConfig *LLMConfig
	llmOnce   sync.Once
	llmErr    error
)

func LoadLLMConfig() (*LLMConfig, error) {
	llmOnce.Do(func() {
		llmConfig, llmErr = newLLMConfig()
	})
	return llmConfig, llmErr
}

func newLLMConfig() (*LLMConfig, error) {
	cfg := &LLMConfig{
		Provider:          getEnvOrDefault("LLM_PROVIDER", ProviderOpenRouter),
		SystemInstruction: "You are an expert SDE-2 interview coach. Provide analytical, data-driven responses without sugar-coating.",
		Timeout:           getEnvDuration("LLM_TIMEOUT", 60*time.Second),
		MaxRetries:        getEnvInt("LLM_MAX_RETRIES", 0),
		MaxTokens:         getEnvInt("LLM_MAX_TOKENS", 2000),
		Temperature:       getEnvFloat("LLM_TEMPERATURE", 0.2),
	}
	if err := validateLLMConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateLLMConfig(cfg *LLMConfig) error {
	switch cfg.Provider {
	case ProviderOpenRouter, ProviderGemini:
	default:
		return fmt.Errorf("unsupported LLM provider: %s. Currently supported: %s, %s", cfg.Provider, ProviderOpenRouter, ProviderGemini)
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be positive")
	}
	if cfg.MaxRetries < 0 {
		return fmt.Errorf("LLM_MAX_RETRIES cannot be negative")
	}
	return nil
}
