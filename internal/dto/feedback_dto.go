package dto

import "github.com/fadilmartias/interview-coach/internal/model"

type SubmitFeedbackRequest struct {
	Feedback           string `json:"feedback"`
	DevilsAdvocateMode bool   `json:"devils_advocate_mode"`
}

type FeedbackResult struct {
	Session   model.FeedbackSession     `json:"session"`
	Analysis  AnalysisResult            `json:"analysis"`
	Questions []model.SuggestedQuestion `json:"questions"`
}
