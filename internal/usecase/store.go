package usecase

import (
	"context"

	"github.com/fadilmartias/interview-coach/internal/dto"
	"github.com/fadilmartias/interview-coach/internal/model"
	"github.com/google/uuid"
)

// PointerStore is the persistence the coach needs for pointers. Implementations
// must scope every pointer lookup to ownerID.
type PointerStore interface {
	GetAll(ctx context.Context, ownerID string) ([]model.Pointer, error)
	GetByID(ctx context.Context, id uuid.UUID, ownerID string) (*model.Pointer, error)
	CreateWithHistory(ctx context.Context, p *model.Pointer, h *model.PointerHistory) error
	UpdateWithHistory(ctx context.Context, p *model.Pointer, h *model.PointerHistory) error
	Delete(ctx context.Context, id uuid.UUID, ownerID string) error
	GetHistory(ctx context.Context, pointerID uuid.UUID) ([]model.PointerHistory, error)
}

type FeedbackSessionStore interface {
	Create(ctx context.Context, session *model.FeedbackSession) error
	List(ctx context.Context, ownerID string, page, pageSize int) ([]model.FeedbackSession, int64, error)
}

// FeedbackAnalyzer is implemented by service.AnalyzerService.
type FeedbackAnalyzer interface {
	Analyze(ctx context.Context, feedback string, existing []model.Pointer, strictMode bool) (*dto.AnalysisResult, error)
	GeneratePracticeQuestions(ctx context.Context, topics []string) []model.SuggestedQuestion
	ValidateCompletedPointer(ctx context.Context, pointer model.Pointer, feedback string) (*dto.CompletionCheck, error)
}

// QuestionCache stores generated practice questions per topic set.
type QuestionCache interface {
	Get(ctx context.Context, topics []string) ([]model.SuggestedQuestion, bool)
	Set(ctx context.Context, topics []string, questions []model.SuggestedQuestion)
}
