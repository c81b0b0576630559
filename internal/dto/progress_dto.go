package dto

import "github.com/fadilmartias/interview-coach/internal/model"

type TopicProgress struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Score     int `json:"score"`
}

type ProgressMetrics struct {
	TotalPointers     int                           `json:"total_pointers"`
	CompletedPointers int                           `json:"completed_pointers"`
	CompletionRate    float64                       `json:"completion_rate"`
	WeightedScore     float64                       `json:"weighted_score"`
	TopicBreakdown    map[model.Topic]TopicProgress `json:"topic_breakdown"`
	RecentActivity    int                           `json:"recent_activity"`
	PlateauWarnings   []string                      `json:"plateau_warnings"`
}
