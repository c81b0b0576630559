package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fadilmartias/interview-coach/internal/apperror"
	"github.com/fadilmartias/interview-coach/internal/config"
	"github.com/fadilmartias/interview-coach/internal/dto"
	"github.com/fadilmartias/interview-coach/internal/logger"
	"github.com/fadilmartias/interview-coach/internal/model"
	"github.com/fadilmartias/interview-coach/internal/repository"
	"github.com/fadilmartias/interview-coach/internal/service"
	"github.com/fadilmartias/interview-coach/internal/util"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const owner = "user-1"

func newReconciliation(t *testing.T, analyzer FeedbackAnalyzer) (*ReconciliationUsecase, *repository.PointerRepository) {
	t.Helper()
	store := repository.NewPointerRepository(newTestDB(t))
	uc := NewReconciliationUsecase(store, service.NewSimilarityService(0.8), analyzer, config.DefaultCoachConfig(), logger.Nop())
	return uc, store
}

func TestApplyCreatesPointer(t *testing.T) {
	ctx := context.Background()
	uc, store := newReconciliation(t, &stubAnalyzer{})

	p, err := uc.Apply(ctx, model.ParsedPointer{
		Title:           "Review BFS/DFS edge cases",
		Topic:           model.TopicDSA,
		ActionSteps:     "Solve 5 grid problems",
		SimilarityScore: 0.0,
		AIReasoning:     "Missed visited set",
		IsUpdate:        false,
	}, owner)
	require.NoError(t, err)

	assert.Equal(t, model.StatusNotStarted, p.Status)
	assert.Equal(t, 5, p.Weightage)
	assert.Equal(t, "Created from feedback analysis", util.Deref(p.FeedbackSummary))
	assert.Nil(t, p.CompletedAt)

	history, err := store.GetHistory(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, model.ChangeCreated, history[0].ChangeType)
	assert.Equal(t, "AI-suggested pointer approved by user", util.Deref(history[0].Remarks))
	assert.Equal(t, model.StatusNotStarted, *history[0].NewStatus)
	assert.Equal(t, "Missed visited set", util.Deref(history[0].AIReasoning))
}

func TestApplyCreateValidatesFields(t *testing.T) {
	uc, store := newReconciliation(t, &stubAnalyzer{})

	_, err := uc.Apply(context.Background(), model.ParsedPointer{Title: "x", Topic: "Cooking"}, owner)
	assert.True(t, apperror.IsValidation(err))

	pointers, err := store.GetAll(context.Background(), owner)
	require.NoError(t, err)
	assert.Empty(t, pointers)
}

func TestApplyUpdatesMatchingPointer(t *testing.T) {
	ctx := context.Background()
	uc, store := newReconciliation(t, &stubAnalyzer{})

	existing, err := uc.Apply(ctx, model.ParsedPointer{Title: "practice two-pointer technique", Topic: model.TopicDSA}, owner)
	require.NoError(t, err)

	updated, err := uc.Apply(ctx, model.ParsedPointer{
		Title:             "Practice two-pointer technique",
		Topic:             model.TopicDSA,
		ActionSteps:       "Do 10 sliding window problems",
		SimilarityScore:   0.95,
		ExistingPointerID: existing.ID.String(),
		AIReasoning:       "Same weakness again",
		IsUpdate:          true,
	}, owner)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, updated.ID)
	assert.Equal(t, "Updated based on recent feedback", util.Deref(updated.FeedbackSummary))
	assert.Equal(t, "Do 10 sliding window problems", util.Deref(updated.ActionSteps))

	history, err := store.GetHistory(ctx, existing.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, model.ChangeUpdated, history[0].ChangeType)
	assert.Equal(t, "AI-suggested update approved by user", util.Deref(history[0].Remarks))
	assert.Equal(t, 0.95, *history[0].SimilarityScore)

	all, err := store.GetAll(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestApplyRejectsUnverifiedUpdate(t *testing.T) {
	ctx := context.Background()
	uc, store := newReconciliation(t, &stubAnalyzer{})

	existing, err := uc.Apply(ctx, model.ParsedPointer{Title: "Graph traversal", Topic: model.TopicDSA}, owner)
	require.NoError(t, err)

	_, err = uc.Apply(ctx, model.ParsedPointer{
		Title:             "Improve STAR storytelling",
		Topic:             model.TopicBehavioral,
		ExistingPointerID: existing.ID.String(),
		IsUpdate:          true,
	}, owner)
	assert.True(t, apperror.IsValidation(err))

	got, err := store.GetByID(ctx, existing.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "Graph traversal", got.Title)

	history, err := store.GetHistory(ctx, existing.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestApplyUpdateOfMissingOrForeignPointer(t *testing.T) {
	ctx := context.Background()
	uc, _ := newReconciliation(t, &stubAnalyzer{})

	theirs, err := uc.Apply(ctx, model.ParsedPointer{Title: "Graph traversal", Topic: model.TopicDSA}, "someone-else")
	require.NoError(t, err)

	for _, id := range []string{uuid.NewString(), theirs.ID.String()} {
		_, err := uc.Apply(ctx, model.ParsedPointer{Title: "Graph traversal", Topic: model.TopicDSA, ExistingPointerID: id, IsUpdate: true}, owner)
		assert.True(t, apperror.IsNotFound(err), "id %s", id)
	}

	_, err = uc.Apply(ctx, model.ParsedPointer{Title: "Graph traversal", ExistingPointerID: "nope", IsUpdate: true}, owner)
	assert.True(t, apperror.IsValidation(err))
}

func TestApplyRejectsPartialOverlapBelowThreshold(t *testing.T) {
	ctx := context.Background()
	uc, store := newReconciliation(t, &stubAnalyzer{})

	existing, err := uc.Apply(ctx, model.ParsedPointer{Title: "Practice system design mocks", Topic: model.TopicSystemDesign}, owner)
	require.NoError(t, err)

	// one shared word scores 0.5, which is a match but not an update
	matches := uc.matcher.Match("Practice recursion", "", []model.Pointer{*existing})
	require.Len(t, matches, 1)
	assert.InDelta(t, 0.5, matches[0].Score, 1e-9)

	_, err = uc.Apply(ctx, model.ParsedPointer{
		Title:             "Practice recursion",
		Topic:             model.TopicDSA,
		ActionSteps:       "Solve 10 recursion problems",
		ExistingPointerID: existing.ID.String(),
		IsUpdate:          true,
	}, owner)
	assert.True(t, apperror.IsValidation(err))

	got, err := store.GetByID(ctx, existing.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "Practice system design mocks", got.Title)
	assert.Nil(t, got.ActionSteps)

	history, err := store.GetHistory(ctx, existing.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestMarkComplete(t *testing.T) {
	ctx := context.Background()
	uc, store := newReconciliation(t, &stubAnalyzer{})
	fixed := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return fixed }

	p, err := uc.Create(ctx, owner, dto.CreatePointerRequest{Title: "LLD parking lot", Topic: model.TopicLLD})
	require.NoError(t, err)

	done, err := uc.MarkComplete(ctx, p.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)
	assert.True(t, done.CompletedAt.Equal(fixed))

	history, err := store.GetHistory(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, model.ChangeMarkedComplete, history[0].ChangeType)
	assert.Equal(t, model.StatusNotStarted, *history[0].PreviousStatus)
	assert.Equal(t, model.StatusCompleted, *history[0].NewStatus)

	_, err = uc.MarkComplete(ctx, p.ID, owner)
	assert.True(t, errors.Is(err, apperror.ErrAlreadyCompleted))
	assert.True(t, apperror.IsValidation(err))

	_, err = uc.MarkComplete(ctx, p.ID, "intruder")
	assert.True(t, apperror.IsNotFound(err))
}

func TestCreateValidatesWeightage(t *testing.T) {
	uc, _ := newReconciliation(t, &stubAnalyzer{})

	_, err := uc.Create(context.Background(), owner, dto.CreatePointerRequest{Title: "t", Topic: model.TopicDSA, Weightage: util.Ptr(11)})
	var vErr *apperror.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.Fields, "weightage")

	p, err := uc.Create(context.Background(), owner, dto.CreatePointerRequest{Title: "t", Topic: "system design", Weightage: util.Ptr(8)})
	require.NoError(t, err)
	assert.Equal(t, model.TopicSystemDesign, p.Topic)
	assert.Equal(t, 8, p.Weightage)
}

func TestUpdateKeepsCompletedAtConsistent(t *testing.T) {
	ctx := context.Background()
	uc, store := newReconciliation(t, &stubAnalyzer{})

	p, err := uc.Create(ctx, owner, dto.CreatePointerRequest{Title: "Caching strategies", Topic: model.TopicSystemDesign})
	require.NoError(t, err)

	completed := model.StatusCompleted
	p, err = uc.Update(ctx, p.ID, owner, dto.UpdatePointerRequest{Status: &completed, Weightage: util.Ptr(9)})
	require.NoError(t, err)
	assert.NotNil(t, p.CompletedAt)
	assert.Equal(t, 9, p.Weightage)

	inProgress := model.StatusInProgress
	p, err = uc.Update(ctx, p.ID, owner, dto.UpdatePointerRequest{Status: &inProgress})
	require.NoError(t, err)
	assert.Nil(t, p.CompletedAt)

	bogus := model.Status("abandoned")
	_, err = uc.Update(ctx, p.ID, owner, dto.UpdatePointerRequest{Status: &bogus})
	assert.True(t, apperror.IsValidation(err))

	history, err := store.GetHistory(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, history, 3)
}

func TestReopen(t *testing.T) {
	ctx := context.Background()
	uc, store := newReconciliation(t, &stubAnalyzer{})

	p, err := uc.Create(ctx, owner, dto.CreatePointerRequest{Title: "Heap problems", Topic: model.TopicDSA})
	require.NoError(t, err)

	_, err = uc.Reopen(ctx, p.ID, owner, "")
	assert.True(t, apperror.IsValidation(err))

	_, err = uc.MarkComplete(ctx, p.ID, owner)
	require.NoError(t, err)

	reopened, err := uc.Reopen(ctx, p.ID, owner, "Failed a heap question in mock")
	require.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, reopened.Status)
	assert.Nil(t, reopened.CompletedAt)

	history, err := store.GetHistory(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ChangeReopened, history[0].ChangeType)
	assert.Equal(t, "Failed a heap question in mock", util.Deref(history[0].Remarks))
}

func TestCheckCompletion(t *testing.T) {
	ctx := context.Background()
	analyzer := &stubAnalyzer{check: &dto.CompletionCheck{Confidence: 0.9, Comment: "Looks solid"}}
	uc, _ := newReconciliation(t, analyzer)

	p, err := uc.Create(ctx, owner, dto.CreatePointerRequest{Title: "Tries", Topic: model.TopicDSA})
	require.NoError(t, err)

	_, err = uc.CheckCompletion(ctx, p.ID, owner, "feedback")
	assert.True(t, apperror.IsValidation(err))

	_, err = uc.MarkComplete(ctx, p.ID, owner)
	require.NoError(t, err)

	result, err := uc.CheckCompletion(ctx, p.ID, owner, "nailed tries")
	require.NoError(t, err)
	assert.False(t, result.Reopened)
	assert.Equal(t, model.StatusCompleted, result.Pointer.Status)

	analyzer.check = &dto.CompletionCheck{Confidence: 0.1, Comment: "Struggled with tries again"}
	result, err = uc.CheckCompletion(ctx, p.ID, owner, "could not implement insert")
	require.NoError(t, err)
	assert.True(t, result.Reopened)
	assert.Equal(t, model.StatusInProgress, result.Pointer.Status)
	assert.Nil(t, result.Pointer.CompletedAt)
}

func TestDeleteAndHistoryOwnership(t *testing.T) {
	ctx := context.Background()
	uc, _ := newReconciliation(t, &stubAnalyzer{})

	p, err := uc.Create(ctx, owner, dto.CreatePointerRequest{Title: "Tries", Topic: model.TopicDSA})
	require.NoError(t, err)

	_, err = uc.History(ctx, p.ID, "intruder")
	assert.True(t, apperror.IsNotFound(err))
	assert.True(t, apperror.IsNotFound(uc.Delete(ctx, p.ID, "intruder")))

	require.NoError(t, uc.Delete(ctx, p.ID, owner))
	assert.True(t, apperror.IsNotFound(uc.Delete(ctx, p.ID, owner)))

	pointers, err := uc.List(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, pointers)
}
