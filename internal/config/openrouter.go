package config

import (
	"os"
	"sync"
)

type OpenRouterConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

var (
	openRouterConfig *OpenRouterConfig
	openRouterOnce   sync.Once
)

func LoadOpenRouterConfig() *OpenRouterConfig {
	openRouterOnce.Do(func() {
		openRouterConfig = newOpenRouterConfig()
	})
	return openRouterConfig
}

func newOpenRouterConfig() *OpenRouterConfig {
	return &OpenRouterConfig{
		APIKey:  os.Getenv("OPENROUTER_API_KEY"),
		BaseURL: getEnvOrDefault("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		Model:   getEnvOrDefault("OPENROUTER_MODEL", "perplexity/sonar"),
	}
}
