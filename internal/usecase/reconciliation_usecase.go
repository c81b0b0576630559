package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fadilmartias/interview-coach/internal/apperror"
	"github.com/fadilmartias/interview-coach/internal/config"
	"github.com/fadilmartias/interview-coach/internal/dto"
	"github.com/fadilmartias/interview-coach/internal/logger"
	"github.com/fadilmartias/interview-coach/internal/metrics"
	"github.com/fadilmartias/interview-coach/internal/model"
	"github.com/fadilmartias/interview-coach/internal/service"
	"github.com/fadilmartias/interview-coach/internal/util"
	"github.com/google/uuid"
)

const (
	summaryUpdated = "Updated based on recent feedback"
	summaryCreated = "Created from feedback analysis"

	remarksUpdateApproved  = "AI-suggested update approved by user"
	remarksCreateApproved  = "AI-suggested pointer approved by user"
	remarksCreatedManually = "Created manually"
	remarksEdited          = "Edited by user"
	remarksCompleted       = "Marked complete by user"
	remarksReopened        = "Reopened by user"
	remarksAutoReopened    = "Reopened after new feedback contradicted completion"
)

// ReconciliationUsecase applies approved suggestions and user edits to the
// pointer set. Every mutation writes exactly one history entry.
type ReconciliationUsecase struct {
	store    PointerStore
	matcher  *service.SimilarityService
	analyzer FeedbackAnalyzer
	cfg      *config.CoachConfig
	log      *logger.Logger
	now      func() time.Time
}

func NewReconciliationUsecase(store PointerStore, matcher *service.SimilarityService, analyzer FeedbackAnalyzer, cfg *config.CoachConfig, log *logger.Logger) *ReconciliationUsecase {
	return &ReconciliationUsecase{
		store:    store,
		matcher:  matcher,
		analyzer: analyzer,
		cfg:      cfg,
		log:      log.With("usecase", "reconciliation"),
		now:      time.Now,
	}
}

// Apply turns an approved suggestion into a new pointer or an update of the
// pointer it references. Update claims are re-checked with the matcher and
// rejected without any write unless the referenced pointer scores at least
// the update threshold.
func (uc *ReconciliationUsecase) Apply(ctx context.Context, decision model.ParsedPointer, ownerID string) (*model.Pointer, error) {
	if decision.TargetsExisting() {
		return uc.applyUpdate(ctx, decision, ownerID)
	}
	return uc.applyCreate(ctx, decision, ownerID)
}

func (uc *ReconciliationUsecase) applyUpdate(ctx context.Context, decision model.ParsedPointer, ownerID string) (*model.Pointer, error) {
	id, err := uuid.Parse(decision.ExistingPointerID)
	if err != nil {
		return nil, apperror.NewValidationError("invalid existing pointer id", map[string]string{"existing_pointer_id": "must be a uuid"})
	}
	p, err := uc.store.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	match, ok := uc.matcher.BestUpdate(uc.matcher.Match(decision.Title, decision.ActionSteps, []model.Pointer{*p}))
	if !ok {
		uc.log.Warn("rejected unverified update", "pointer_id", id, "title", decision.Title)
		return nil, apperror.NewValidationError("suggestion does not match the referenced pointer",
			map[string]string{"existing_pointer_id": fmt.Sprintf("similarity with %q is below %.2f", p.Title, uc.matcher.UpdateThreshold)})
	}
	uc.log.Debug("update verified", "pointer_id", id, "score", match.Score)

	if title := strings.TrimSpace(decision.Title); title != "" {
		p.Title = title
	}
	if steps := strings.TrimSpace(decision.ActionSteps); steps != "" {
		p.ActionSteps = util.Ptr(steps)
	}
	p.FeedbackSummary = util.Ptr(summaryUpdated)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	entry := &model.PointerHistory{
		ChangeType:      model.ChangeUpdated,
		AIReasoning:     optional(decision.AIReasoning),
		SimilarityScore: util.Ptr(decision.SimilarityScore),
		Remarks:         util.Ptr(remarksUpdateApproved),
		PreviousStatus:  util.Ptr(p.Status),
		NewStatus:       util.Ptr(p.Status),
	}
	if err := uc.store.UpdateWithHistory(ctx, p, entry); err != nil {
		return nil, err
	}
	uc.recorded(entry.ChangeType, p)
	return p, nil
}

func (uc *ReconciliationUsecase) applyCreate(ctx context.Context, decision model.ParsedPointer, ownerID string) (*model.Pointer, error) {
	topic, _ := model.ParseTopic(string(decision.Topic))
	p := &model.Pointer{
		OwnerID:         ownerID,
		Title:           strings.TrimSpace(decision.Title),
		Topic:           topic,
		Status:          model.StatusNotStarted,
		Weightage:       model.DefaultWeightage,
		FeedbackSummary: util.Ptr(summaryCreated),
		ActionSteps:     optional(decision.ActionSteps),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	entry := &model.PointerHistory{
		ChangeType:      model.ChangeCreated,
		AIReasoning:     optional(decision.AIReasoning),
		SimilarityScore: util.Ptr(decision.SimilarityScore),
		Remarks:         util.Ptr(remarksCreateApproved),
		NewStatus:       util.Ptr(model.StatusNotStarted),
	}
	if err := uc.store.CreateWithHistory(ctx, p, entry); err != nil {
		return nil, err
	}
	uc.recorded(entry.ChangeType, p)
	return p, nil
}

// Create adds a pointer entered directly by the user.
func (uc *ReconciliationUsecase) Create(ctx context.Context, ownerID string, req dto.CreatePointerRequest) (*model.Pointer, error) {
	topic, _ := model.ParseTopic(string(req.Topic))
	p := &model.Pointer{
		OwnerID:         ownerID,
		Title:           strings.TrimSpace(req.Title),
		Topic:           topic,
		Status:          model.StatusNotStarted,
		Weightage:       model.DefaultWeightage,
		FeedbackSummary: req.FeedbackSummary,
		ActionSteps:     req.ActionSteps,
	}
	if req.Weightage != nil {
		p.Weightage = *req.Weightage
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	entry := &model.PointerHistory{
		ChangeType: model.ChangeCreated,
		Remarks:    util.Ptr(remarksCreatedManually),
		NewStatus:  util.Ptr(model.StatusNotStarted),
	}
	if err := uc.store.CreateWithHistory(ctx, p, entry); err != nil {
		return nil, err
	}
	uc.recorded(entry.ChangeType, p)
	return p, nil
}

func (uc *ReconciliationUsecase) MarkComplete(ctx context.Context, pointerID uuid.UUID, ownerID string) (*model.Pointer, error) {
	p, err := uc.store.GetByID(ctx, pointerID, ownerID)
	if err != nil {
		return nil, err
	}
	if p.IsCompleted() {
		return nil, &apperror.ValidationError{Message: "pointer is already completed", Err: apperror.ErrAlreadyCompleted}
	}

	previous := p.Status
	p.SetStatus(model.StatusCompleted, uc.now())
	entry := &model.PointerHistory{
		ChangeType:     model.ChangeMarkedComplete,
		Remarks:        util.Ptr(remarksCompleted),
		PreviousStatus: util.Ptr(previous),
		NewStatus:      util.Ptr(model.StatusCompleted),
	}
	if err := uc.store.UpdateWithHistory(ctx, p, entry); err != nil {
		return nil, err
	}
	uc.recorded(entry.ChangeType, p)
	return p, nil
}

// Update applies a partial edit. CompletedAt follows the resulting status.
func (uc *ReconciliationUsecase) Update(ctx context.Context, pointerID uuid.UUID, ownerID string, req dto.UpdatePointerRequest) (*model.Pointer, error) {
	p, err := uc.store.GetByID(ctx, pointerID, ownerID)
	if err != nil {
		return nil, err
	}

	previous := p.Status
	if req.Title != nil {
		p.Title = strings.TrimSpace(*req.Title)
	}
	if req.Topic != nil {
		p.Topic, _ = model.ParseTopic(string(*req.Topic))
	}
	if req.Weightage != nil {
		p.Weightage = *req.Weightage
	}
	if req.FeedbackSummary != nil {
		p.FeedbackSummary = req.FeedbackSummary
	}
	if req.ActionSteps != nil {
		p.ActionSteps = req.ActionSteps
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, apperror.NewValidationError("invalid pointer", map[string]string{"status": "unknown status: " + string(*req.Status)})
		}
		p.SetStatus(*req.Status, uc.now())
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	entry := &model.PointerHistory{
		ChangeType:     model.ChangeUpdated,
		Remarks:        util.Ptr(remarksEdited),
		PreviousStatus: util.Ptr(previous),
		NewStatus:      util.Ptr(p.Status),
	}
	if err := uc.store.UpdateWithHistory(ctx, p, entry); err != nil {
		return nil, err
	}
	uc.recorded(entry.ChangeType, p)
	return p, nil
}

// Reopen moves a completed pointer back to in_progress.
func (uc *ReconciliationUsecase) Reopen(ctx context.Context, pointerID uuid.UUID, ownerID, reason string) (*model.Pointer, error) {
	p, err := uc.store.GetByID(ctx, pointerID, ownerID)
	if err != nil {
		return nil, err
	}
	remarks := strings.TrimSpace(reason)
	if remarks == "" {
		remarks = remarksReopened
	}
	return uc.reopen(ctx, p, &model.PointerHistory{Remarks: util.Ptr(remarks)})
}

// CheckCompletion asks the analyzer whether new feedback still supports a
// completed pointer and reopens it when confidence falls below the threshold.
func (uc *ReconciliationUsecase) CheckCompletion(ctx context.Context, pointerID uuid.UUID, ownerID, feedback string) (*dto.CheckCompletionResult, error) {
	p, err := uc.store.GetByID(ctx, pointerID, ownerID)
	if err != nil {
		return nil, err
	}
	if !p.IsCompleted() {
		return nil, apperror.NewValidationError("only completed pointers can be checked", map[string]string{"status": string(p.Status)})
	}

	check, err := uc.analyzer.ValidateCompletedPointer(ctx, *p, feedback)
	if err != nil {
		return nil, err
	}

	result := &dto.CheckCompletionResult{Check: *check, Pointer: *p}
	if check.Confidence >= uc.cfg.ReopenConfidence {
		return result, nil
	}

	reopened, err := uc.reopen(ctx, p, &model.PointerHistory{
		AIReasoning:     optional(check.Comment),
		SimilarityScore: util.Ptr(check.Confidence),
		Remarks:         util.Ptr(remarksAutoReopened),
	})
	if err != nil {
		return nil, err
	}
	result.Reopened = true
	result.Pointer = *reopened
	return result, nil
}

func (uc *ReconciliationUsecase) reopen(ctx context.Context, p *model.Pointer, entry *model.PointerHistory) (*model.Pointer, error) {
	if !p.IsCompleted() {
		return nil, apperror.NewValidationError("only completed pointers can be reopened", map[string]string{"status": string(p.Status)})
	}

	previous := p.Status
	p.SetStatus(model.StatusInProgress, uc.now())
	entry.ChangeType = model.ChangeReopened
	entry.PreviousStatus = util.Ptr(previous)
	entry.NewStatus = util.Ptr(model.StatusInProgress)
	if err := uc.store.UpdateWithHistory(ctx, p, entry); err != nil {
		return nil, err
	}
	uc.recorded(entry.ChangeType, p)
	return p, nil
}

func (uc *ReconciliationUsecase) Delete(ctx context.Context, pointerID uuid.UUID, ownerID string) error {
	if err := uc.store.Delete(ctx, pointerID, ownerID); err != nil {
		return err
	}
	uc.log.Info("pointer deleted", "pointer_id", pointerID, "owner_id", ownerID)
	return nil
}

func (uc *ReconciliationUsecase) List(ctx context.Context, ownerID string) ([]model.Pointer, error) {
	return uc.store.GetAll(ctx, ownerID)
}

// History returns the audit trail, newest first, after checking ownership.
func (uc *ReconciliationUsecase) History(ctx context.Context, pointerID uuid.UUID, ownerID string) ([]model.PointerHistory, error) {
	if _, err := uc.store.GetByID(ctx, pointerID, ownerID); err != nil {
		return nil, err
	}
	return uc.store.GetHistory(ctx, pointerID)
}

func (uc *ReconciliationUsecase) recorded(change model.ChangeType, p *model.Pointer) {
	metrics.ObservePointerChange(string(change))
	uc.log.Info("pointer changed", "change", change, "pointer_id", p.ID, "status", p.Status)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
