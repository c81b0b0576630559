package config

import (
	"os"
	"sync"
)

type GeminiConfig struct {
	APIKey string
	Model  string
}

var (
	geminiConfig *GeminiConfig
	geminiOnce   sync.Once
)

func LoadGeminiConfig() *GeminiConfig {
	geminiOnce.Do(func() {
		geminiConfig = newGeminiConfig()
	})
	return geminiConfig
}

func newGeminiConfig() *GeminiConfig {
	return &GeminiConfig{
		APIKey: os.Getenv("GEMINI_API_KEY"),
		Model:  getEnvOrDefault("GEMINI_MODEL", "gemini-2.5-flash"),
	}
}
