package service

import (
	"context"
	"fmt"

	"github.com/fadilmartias/interview-coach/internal/config"
	"github.com/fadilmartias/interview-coach/internal/logger"
)

// LLMGateway sends one prompt to a completion provider and returns the raw text.
type LLMGateway interface {
	Complete(ctx context.Context, prompt string) (string, error)
	ProviderName() string
}

// NewGateway builds the gateway selected by LLM_PROVIDER. A missing API key is
// not fatal here; every call then fails with a ConfigError.
func NewGateway(ctx context.Context, llmCfg *config.LLMConfig, log *logger.Logger) (LLMGateway, error) {
	switch llmCfg.Provider {
	case config.ProviderOpenRouter:
		return NewOpenRouterService(config.LoadOpenRouterConfig(), llmCfg, log), nil
	case config.ProviderGemini:
		return NewGeminiService(ctx, config.LoadGeminiConfig(), llmCfg, log)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", llmCfg.Provider)
	}
}
