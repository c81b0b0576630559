package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FeedbackSession freezes one analysis event. Rows are never updated.
type FeedbackSession struct {
	ID                    uuid.UUID                               `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID               string                                  `gorm:"type:varchar(64);not null;index" json:"owner_id"`
	RawFeedback           string                                  `gorm:"type:text;not null" json:"raw_feedback"`
	ParsedPointers        datatypes.JSONType[[]ParsedPointer]     `json:"parsed_pointers"`
	SubmittedAt           time.Time                               `gorm:"autoCreateTime;index" json:"submitted_at"`
	AIComments            *string                                 `gorm:"type:text" json:"ai_comments"`
	DevilsAdvocateEnabled bool                                    `gorm:"not null;default:false" json:"devils_advocate_enabled"`
	PerformanceScore      *float64                                `json:"performance_score"`
	SuggestedQuestions    datatypes.JSONType[[]SuggestedQuestion] `json:"suggested_questions"`
}

func (s *FeedbackSession) TableName() string {
	return "feedback_sessions"
}

func (s *FeedbackSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
