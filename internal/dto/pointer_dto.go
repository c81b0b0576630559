package dto

import "github.com/fadilmartias/interview-coach/internal/model"

type CreatePointerRequest struct {
	Title           string      `json:"title"`
	Topic           model.Topic `json:"topic"`
	Weightage       *int        `json:"weightage"`
	FeedbackSummary *string     `json:"feedback_summary"`
	ActionSteps     *string     `json:"action_steps"`
}

// UpdatePointerRequest carries a partial edit; nil fields are left untouched.
type UpdatePointerRequest struct {
	Title           *string       `json:"title"`
	Topic           *model.Topic  `json:"topic"`
	Status          *model.Status `json:"status"`
	Weightage       *int          `json:"weightage"`
	FeedbackSummary *string       `json:"feedback_summary"`
	ActionSteps     *string       `json:"action_steps"`
}

type ApprovePointerRequest struct {
	Suggestion model.ParsedPointer `json:"suggestion"`
}

type ReopenPointerRequest struct {
	Reason string `json:"reason"`
}

type CheckCompletionRequest struct {
	Feedback string `json:"feedback"`
}

type CheckCompletionResult struct {
	Check    CompletionCheck `json:"check"`
	Reopened bool            `json:"reopened"`
	Pointer  model.Pointer   `json:"pointer"`
}
