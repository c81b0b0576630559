package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fadilmartias/interview-coach/internal/apperror"
	"github.com/fadilmartias/interview-coach/internal/config"
	"github.com/fadilmartias/interview-coach/internal/logger"
	"github.com/fadilmartias/interview-coach/internal/metrics"
	"github.com/fadilmartias/interview-coach/internal/util"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const openRouterProvider = "openrouter"

// OpenRouterService talks to an OpenAI-compatible chat completions endpoint.
type OpenRouterService struct {
	client *resty.Client
	cfg    *config.OpenRouterConfig
	llm    *config.LLMConfig
	log    *logger.Logger
}

func NewOpenRouterService(cfg *config.OpenRouterConfig, llmCfg *config.LLMConfig, log *logger.Logger) *OpenRouterService {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(llmCfg.Timeout).
		SetHeader("Content-Type", "application/json")

	if llmCfg.MaxRetries > 0 {
		client.SetRetryCount(llmCfg.MaxRetries).
			SetRetryWaitTime(time.Second).
			SetRetryMaxWaitTime(10 * time.Second).
			AddRetryCondition(func(r *resty.Response, err error) bool {
				if err != nil {
					return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
				}
				return r.StatusCode() == 429 || r.StatusCode() >= 500
			})
	}

	return &OpenRouterService{
		client: client,
		cfg:    cfg,
		llm:    llmCfg,
		log:    log.With("gateway", openRouterProvider),
	}
}

func (s *OpenRouterService) ProviderName() string {
	return openRouterProvider
}

func (s *OpenRouterService) Complete(ctx context.Context, prompt string) (string, error) {
	if s.cfg.APIKey == "" {
		return "", apperror.NewConfigError("OPENROUTER_API_KEY")
	}
	if strings.TrimSpace(prompt) == "" {
		return "", apperror.NewValidationError("prompt cannot be empty", nil)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.llm.Timeout)
	defer cancel()

	started := time.Now()
	text, err := s.complete(timeoutCtx, prompt)
	metrics.ObserveGateway(openRouterProvider, started, err)
	if err != nil {
		s.log.Warn("completion failed", "model", s.cfg.Model, "error", err)
		return "", err
	}
	s.log.Debug("completion received", "model", s.cfg.Model, "chars", len(text), "elapsed", time.Since(started))
	return text, nil
}

func (s *OpenRouterService) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(s.cfg.APIKey).
		SetBody(map[string]any{
			"model": s.cfg.Model,
			"messages": []map[string]string{
				{"role": "system", "content": s.llm.SystemInstruction},
				{"role": "user", "content": prompt},
			},
			"max_tokens":  s.llm.MaxTokens,
			"temperature": s.llm.Temperature,
		}).
		Post("/chat/completions")
	if err != nil {
		return "", &apperror.GatewayError{Provider: openRouterProvider, Message: "request failed", Err: err}
	}

	if resp.IsError() {
		return "", &apperror.GatewayError{
			Provider:   openRouterProvider,
			StatusCode: resp.StatusCode(),
			Body:       util.Preview(resp.String(), util.PreviewLimit),
			Message:    "non-success response",
		}
	}

	text := gjson.Get(resp.String(), "choices.0.message.content").String()
	if strings.TrimSpace(text) == "" {
		return "", &apperror.GatewayError{
			Provider:   openRouterProvider,
			StatusCode: resp.StatusCode(),
			Message:    "empty completion content",
		}
	}
	return text, nil
}
