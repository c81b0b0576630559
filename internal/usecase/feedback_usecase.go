package usecase

import (
	"context"
	"strings"

	"github.com/fadilmartias/interview-coach/internal/apperror"
	"github.com/fadilmartias/interview-coach/internal/dto"
	"github.com/fadilmartias/interview-coach/internal/logger"
	"github.com/fadilmartias/interview-coach/internal/model"
	"github.com/fadilmartias/interview-coach/internal/response"
	"github.com/fadilmartias/interview-coach/internal/util"
	"gorm.io/datatypes"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// FeedbackUsecase runs one feedback submission: analysis, practice questions
// and the frozen session record.
type FeedbackUsecase struct {
	pointers PointerStore
	sessions FeedbackSessionStore
	analyzer FeedbackAnalyzer
	cache    QuestionCache
	log      *logger.Logger
}

// NewFeedbackUsecase accepts a nil cache; questions are then generated on every submission.
func NewFeedbackUsecase(pointers PointerStore, sessions FeedbackSessionStore, analyzer FeedbackAnalyzer, cache QuestionCache, log *logger.Logger) *FeedbackUsecase {
	return &FeedbackUsecase{
		pointers: pointers,
		sessions: sessions,
		analyzer: analyzer,
		cache:    cache,
		log:      log.With("usecase", "feedback"),
	}
}

// Submit analyses feedback against the owner's pointers. Nothing is stored
// when the analysis fails.
func (uc *FeedbackUsecase) Submit(ctx context.Context, ownerID string, req dto.SubmitFeedbackRequest) (*dto.FeedbackResult, error) {
	feedback := strings.TrimSpace(req.Feedback)
	if feedback == "" {
		return nil, apperror.NewValidationError("feedback is required", map[string]string{"feedback": "feedback is required"})
	}

	existing, err := uc.pointers.GetAll(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	analysis, err := uc.analyzer.Analyze(ctx, feedback, existing, req.DevilsAdvocateMode)
	if err != nil {
		return nil, err
	}

	questions := uc.practiceQuestions(ctx, existing)

	session := &model.FeedbackSession{
		OwnerID:               ownerID,
		RawFeedback:           feedback,
		ParsedPointers:        datatypes.NewJSONType(analysis.Suggestions),
		DevilsAdvocateEnabled: req.DevilsAdvocateMode,
		SuggestedQuestions:    datatypes.NewJSONType(questions),
	}
	// Devil's advocate remarks stay in the returned analysis only.
	if comments := strings.TrimSpace(analysis.PerformanceAnalysis); comments != "" {
		session.AIComments = util.Ptr(comments)
	}
	if err := uc.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	uc.log.Info("feedback session stored", "session_id", session.ID, "owner_id", ownerID, "suggestions", len(analysis.Suggestions), "questions", len(questions))
	return &dto.FeedbackResult{Session: *session, Analysis: *analysis, Questions: questions}, nil
}

func (uc *FeedbackUsecase) practiceQuestions(ctx context.Context, existing []model.Pointer) []model.SuggestedQuestion {
	topics := make([]string, 0, len(existing))
	for _, p := range existing {
		topics = append(topics, string(p.Topic))
	}

	if uc.cache != nil {
		if cached, ok := uc.cache.Get(ctx, topics); ok {
			return cached
		}
	}
	questions := uc.analyzer.GeneratePracticeQuestions(ctx, topics)
	if uc.cache != nil && len(questions) > 0 {
		uc.cache.Set(ctx, topics, questions)
	}
	return questions
}

func (uc *FeedbackUsecase) ListSessions(ctx context.Context, ownerID string, page, pageSize int) ([]model.FeedbackSession, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	sessions, total, err := uc.sessions.List(ctx, ownerID, page, pageSize)
	if err != nil {
		return nil, nil, err
	}
	return sessions, response.NewPagination(page, pageSize, total, len(sessions)), nil
}

