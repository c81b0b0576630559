package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/fadilmartias/interview-coach/internal/apperror"
	"github.com/fadilmartias/interview-coach/internal/config"
	"github.com/fadilmartias/interview-coach/internal/logger"
	"github.com/fadilmartias/interview-coach/internal/metrics"
	"github.com/fadilmartias/interview-coach/internal/util"
	"google.golang.org/genai"
)

const geminiProvider = "gemini"

type GeminiService struct {
	client    *genai.Client
	cfg       *config.GeminiConfig
	llm       *config.LLMConfig
	log       *logger.Logger
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

// NewGeminiService creates the genai client. Without GEMINI_API_KEY the service
// is still returned and every call fails with a ConfigError.
func NewGeminiService(ctx context.Context, cfg *config.GeminiConfig, llmCfg *config.LLMConfig, log *logger.Logger) (*GeminiService, error) {
	if cfg.APIKey == "" {
		return NewGeminiServiceWithClient(nil, cfg, llmCfg, log), nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return NewGeminiServiceWithClient(client, cfg, llmCfg, log), nil
}

func NewGeminiServiceWithClient(client *genai.Client, cfg *config.GeminiConfig, llmCfg *config.LLMConfig, log *logger.Logger) *GeminiService {
	return &GeminiService{
		client:    client,
		cfg:       cfg,
		llm:       llmCfg,
		log:       log.With("gateway", geminiProvider),
		BaseDelay: time.Second,
		MaxDelay:  10 * time.Second,
	}
}

func (s *GeminiService) ProviderName() string {
	return geminiProvider
}

func (s *GeminiService) Complete(ctx context.Context, prompt string) (string, error) {
	if s.client == nil {
		return "", apperror.NewConfigError("GEMINI_API_KEY")
	}
	if strings.TrimSpace(prompt) == "" {
		return "", apperror.NewValidationError("prompt cannot be empty", nil)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.llm.Timeout)
	defer cancel()

	started := time.Now()
	text, err := s.generate(timeoutCtx, prompt)
	metrics.ObserveGateway(geminiProvider, started, err)
	if err != nil {
		s.log.Warn("completion failed", "model", s.cfg.Model, "error", err)
		return "", err
	}
	return text, nil
}

func (s *GeminiService) generate(ctx context.Context, prompt string) (string, error) {
	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(s.llm.SystemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr(float32(s.llm.Temperature)),
		MaxOutputTokens:   int32(s.llm.MaxTokens),
	}

	var lastErr error
	for attempt := 0; attempt <= s.llm.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := s.calculateBackoff(attempt)
			s.log.Info("retrying completion", "attempt", attempt, "max_retries", s.llm.MaxRetries, "delay", delay)

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", &apperror.GatewayError{Provider: geminiProvider, Message: "timeout during retry", Err: ctx.Err()}
			}
		}

		result, err := s.client.Models.GenerateContent(ctx, s.cfg.Model, genai.Text(prompt), genConfig)
		if err == nil {
			if err := validateGenerateResponse(result); err != nil {
				return "", &apperror.GatewayError{Provider: geminiProvider, Message: "invalid response", Err: err}
			}
			text := result.Text()
			if strings.TrimSpace(text) == "" {
				return "", &apperror.GatewayError{Provider: geminiProvider, Message: "empty completion content"}
			}
			return text, nil
		}

		lastErr = toGatewayError(err)
		if !isRetryableError(err) {
			return "", lastErr
		}
	}

	return "", lastErr
}

func (s *GeminiService) calculateBackoff(attempt int) time.Duration {
	delay := s.BaseDelay * time.Duration(math.Pow(2, float64(attempt-1)))
	if delay > s.MaxDelay {
		delay = s.MaxDelay
	}
	return delay
}

func apiErrorOf(err error) (genai.APIError, bool) {
	var ptr *genai.APIError
	if errors.As(err, &ptr) && ptr != nil {
		return *ptr, true
	}
	var val genai.APIError
	if errors.As(err, &val) {
		return val, true
	}
	return genai.APIError{}, false
}

func toGatewayError(err error) *apperror.GatewayError {
	gwErr := &apperror.GatewayError{Provider: geminiProvider, Message: "generate content failed", Err: err}
	if apiErr, ok := apiErrorOf(err); ok {
		gwErr.StatusCode = apiErr.Code
		gwErr.Body = util.Preview(apiErr.Message, util.PreviewLimit)
		gwErr.Err = nil
	}
	return gwErr
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if apiErr, ok := apiErrorOf(err); ok {
		switch apiErr.Code {
		case 429, 500, 502, 503, 504:
			return true
		default:
			return false
		}
	}

	errMsg := err.Error()
	return strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "temporary failure") ||
		strings.Contains(errMsg, "EOF")
}

func validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}
	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}
	if resp.Candidates[0].Content == nil {
		return fmt.Errorf("candidate content is nil")
	}
	if len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no parts in content")
	}
	return nil
}
