package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/fadilmartias/interview-coach/internal/apperror"
	"github.com/fadilmartias/interview-coach/internal/dto"
	"github.com/fadilmartias/interview-coach/internal/logger"
	"github.com/fadilmartias/interview-coach/internal/metrics"
	"github.com/fadilmartias/interview-coach/internal/model"
	"github.com/fadilmartias/interview-coach/internal/prompts"
	"github.com/fadilmartias/interview-coach/internal/util"
	"github.com/tidwall/gjson"
)

const (
	toneStrict       = "Provide brutally honest, strict analysis without encouragement"
	toneConstructive = "Provide constructive analysis"

	defaultCompletionConfidence = 0.5
)

// AnalyzerService turns free-text feedback into candidate pointers.
type AnalyzerService struct {
	gateway LLMGateway
	prompts *prompts.PromptManager
	matcher *SimilarityService
	log     *logger.Logger
}

func NewAnalyzerService(gateway LLMGateway, pm *prompts.PromptManager, matcher *SimilarityService, log *logger.Logger) *AnalyzerService {
	return &AnalyzerService{
		gateway: gateway,
		prompts: pm,
		matcher: matcher,
		log:     log.With("service", "analyzer"),
	}
}

// Analyze asks the model for suggestions and checks every claimed update
// against the existing pointers. Any gateway, decode or shape failure is
// returned as an AnalysisError; no empty result is substituted.
func (s *AnalyzerService) Analyze(ctx context.Context, feedback string, existing []model.Pointer, strictMode bool) (*dto.AnalysisResult, error) {
	result, err := s.analyze(ctx, feedback, existing, strictMode)
	metrics.ObserveAnalysis(err)
	return result, err
}

func (s *AnalyzerService) analyze(ctx context.Context, feedback string, existing []model.Pointer, strictMode bool) (*dto.AnalysisResult, error) {
	feedback = strings.TrimSpace(feedback)
	if feedback == "" {
		return nil, apperror.NewValidationError("feedback is required", map[string]string{"feedback": "feedback is required"})
	}

	variant, tone := prompts.VariantConstructive, toneConstructive
	if strictMode {
		variant, tone = prompts.VariantStrict, toneStrict
	}
	prompt, err := s.prompts.BuildPrompt(prompts.FeedbackAnalysis, variant, map[string]string{
		"Feedback":         feedback,
		"ExistingPointers": formatExistingPointers(existing),
		"Tone":             tone,
	})
	if err != nil {
		return nil, apperror.NewAnalysisError("could not build prompt", err)
	}

	text, err := s.gateway.Complete(ctx, prompt)
	if err != nil {
		return nil, apperror.NewAnalysisError("language model call failed", err)
	}

	payload, err := util.DecodeLLMJSON(text)
	if err != nil {
		s.log.Warn("undecodable analysis response", "preview", util.Preview(text, 200))
		return nil, apperror.NewAnalysisError("could not decode model response", err)
	}

	result, err := parseAnalysis(payload)
	if err != nil {
		return nil, err
	}

	s.refineSuggestions(result.Suggestions, existing)
	s.log.Info("feedback analyzed", "suggestions", len(result.Suggestions), "strict", strictMode, "existing", len(existing))
	return result, nil
}

func parseAnalysis(payload []byte) (*dto.AnalysisResult, error) {
	root := gjson.ParseBytes(payload)
	if !root.IsObject() {
		return nil, apperror.NewAnalysisError("model response is not a JSON object",
			&apperror.DecodeError{Preview: util.Preview(string(payload), util.PreviewLimit)})
	}

	suggestions := root.Get("suggestions")
	if !suggestions.Exists() {
		return nil, apperror.NewAnalysisError("model response is missing suggestions", nil)
	}
	if !suggestions.IsArray() {
		return nil, apperror.NewAnalysisError("model suggestions are not a list", nil)
	}

	result := &dto.AnalysisResult{
		Suggestions:           []model.ParsedPointer{},
		PerformanceAnalysis:   root.Get("performance_analysis").String(),
		DevilsAdvocateRemarks: root.Get("devils_advocate_remarks").String(),
		ConfidenceScores:      map[string]float64{},
	}
	if err := json.Unmarshal([]byte(suggestions.Raw), &result.Suggestions); err != nil {
		return nil, apperror.NewAnalysisError("model suggestions have an unexpected shape", err)
	}

	root.Get("confidence_scores").ForEach(func(key, value gjson.Result) bool {
		if value.Type == gjson.Number {
			result.ConfidenceScores[key.String()] = clamp01(value.Float())
		}
		return true
	})
	return result, nil
}

func (s *AnalyzerService) refineSuggestions(suggestions []model.ParsedPointer, existing []model.Pointer) {
	known := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		known[p.ID.String()] = struct{}{}
	}

	for i := range suggestions {
		sg := &suggestions[i]
		sg.Title = strings.TrimSpace(sg.Title)
		if topic, ok := model.ParseTopic(string(sg.Topic)); ok {
			sg.Topic = topic
		}
		sg.SimilarityScore = clamp01(sg.SimilarityScore)

		if sg.ExistingPointerID != "" {
			if _, ok := known[sg.ExistingPointerID]; !ok {
				s.log.Warn("dropping unknown existing_pointer_id", "title", sg.Title, "id", sg.ExistingPointerID)
				sg.ExistingPointerID = ""
			}
		}
		if sg.ExistingPointerID == "" {
			sg.IsUpdate = false
		}
		if sg.IsUpdate {
			continue
		}

		matches := s.matcher.Match(sg.Title, sg.ActionSteps, existing)
		if best, ok := s.matcher.BestUpdate(matches); ok {
			sg.IsUpdate = true
			sg.ExistingPointerID = best.Pointer.ID.String()
			sg.SimilarityScore = best.Score
			sg.AIReasoning = strings.TrimSpace(sg.AIReasoning + fmt.Sprintf(" Closely matches existing pointer %q.", best.Pointer.Title))
		}
	}
}

// GeneratePracticeQuestions is advisory: every failure yields an empty list.
func (s *AnalyzerService) GeneratePracticeQuestions(ctx context.Context, topics []string) []model.SuggestedQuestion {
	questions := []model.SuggestedQuestion{}

	prompt, err := s.prompts.BuildPrompt(prompts.PracticeQuestions, prompts.VariantDefault, map[string]string{
		"Topics": strings.Join(NormalizeTopics(topics), ", "),
	})
	if err != nil {
		s.log.Error("could not build questions prompt", "error", err)
		return questions
	}

	text, err := s.gateway.Complete(ctx, prompt)
	if err != nil {
		s.log.Warn("practice questions unavailable", "error", err)
		return questions
	}

	payload, err := util.DecodeLLMJSON(text)
	if err != nil {
		s.log.Warn("undecodable questions response", "error", err)
		return questions
	}

	raw := gjson.GetBytes(payload, "questions")
	if !raw.IsArray() {
		return questions
	}
	var parsed []model.SuggestedQuestion
	if err := json.Unmarshal([]byte(raw.Raw), &parsed); err != nil {
		s.log.Warn("questions have an unexpected shape", "error", err)
		return questions
	}
	for _, q := range parsed {
		q.Question = strings.TrimSpace(q.Question)
		if q.Question == "" {
			continue
		}
		if topic, ok := model.ParseTopic(string(q.Topic)); ok {
			q.Topic = topic
		}
		questions = append(questions, q)
	}
	return questions
}

// ValidateCompletedPointer asks whether new feedback contradicts a completed pointer.
func (s *AnalyzerService) ValidateCompletedPointer(ctx context.Context, pointer model.Pointer, feedback string) (*dto.CompletionCheck, error) {
	feedback = strings.TrimSpace(feedback)
	if feedback == "" {
		return nil, apperror.NewValidationError("feedback is required", map[string]string{"feedback": "feedback is required"})
	}

	prompt, err := s.prompts.BuildPrompt(prompts.CompletionCheck, prompts.VariantDefault, map[string]string{
		"Title":       pointer.Title,
		"ActionSteps": util.Deref(pointer.ActionSteps),
		"Feedback":    feedback,
	})
	if err != nil {
		return nil, apperror.NewAnalysisError("could not build prompt", err)
	}

	text, err := s.gateway.Complete(ctx, prompt)
	if err != nil {
		return nil, apperror.NewAnalysisError("language model call failed", err)
	}

	check := &dto.CompletionCheck{Confidence: defaultCompletionConfidence, Comment: "Validation analysis failed."}
	payload, err := util.DecodeLLMJSON(text)
	if err != nil {
		s.log.Warn("undecodable completion check", "pointer_id", pointer.ID, "error", err)
		return check, nil
	}

	root := gjson.ParseBytes(payload)
	check.Comment = "Unable to validate completion."
	if c := root.Get("confidence"); c.Type == gjson.Number {
		check.Confidence = clamp01(c.Float())
	}
	if c := strings.TrimSpace(root.Get("comment").String()); c != "" {
		check.Comment = c
	}
	return check, nil
}

// NormalizeTopics dedupes and sorts topic names; an empty input means every topic.
func NormalizeTopics(topics []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(topics))
	for _, t := range topics {
		t = strings.TrimSpace(t)
		if parsed, ok := model.ParseTopic(t); ok {
			t = string(parsed)
		}
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	if len(out) == 0 {
		for _, t := range model.Topics {
			out = append(out, string(t))
		}
	}
	sort.Strings(out)
	return out
}

func formatExistingPointers(existing []model.Pointer) string {
	if len(existing) == 0 {
		return "(none)"
	}
	lines := make([]string, 0, len(existing))
	for _, p := range existing {
		lines = append(lines, fmt.Sprintf("- %s (%s, %s) [id: %s]", p.Title, p.Topic, p.Status, p.ID))
	}
	return strings.Join(lines, "\n")
}

func clamp01(v float64) float64 {
	switch {
	case v != v || v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
