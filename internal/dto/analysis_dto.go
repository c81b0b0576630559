package dto

import "github.com/fadilmartias/interview-coach/internal/model"

// AnalysisResult is the decoded model answer for one feedback submission.
type AnalysisResult struct {
	Suggestions           []model.ParsedPointer `json:"suggestions"`
	PerformanceAnalysis   string                `json:"performance_analysis"`
	DevilsAdvocateRemarks string                `json:"devils_advocate_remarks"`
	ConfidenceScores      map[string]float64    `json:"confidence_scores"`
}

type CompletionCheck struct {
	Confidence float64 `json:"confidence"`
	Comment    string  `json:"comment"`
}

// PointerMatch pairs an existing pointer with its similarity to a candidate.
type PointerMatch struct {
	Pointer model.Pointer `json:"pointer"`
	Score   float64       `json:"score"`
}
