package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PointerHistory is an append-only audit entry for a pointer.
type PointerHistory struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PointerID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"pointer_id"`
	UpdatedAt       time.Time  `gorm:"autoCreateTime;index" json:"updated_at"`
	ChangeType      ChangeType `gorm:"type:varchar(20);not null" json:"change_type"`
	AIReasoning     *string    `gorm:"type:text" json:"ai_reasoning"`
	SimilarityScore *float64   `json:"similarity_score"`
	Remarks         *string    `gorm:"type:text" json:"remarks"`
	PreviousStatus  *Status    `gorm:"type:varchar(20)" json:"previous_status"`
	NewStatus       *Status    `gorm:"type:varchar(20)" json:"new_status"`
}

func (h *PointerHistory) TableName() string {
	return "pointer_history"
}

func (h *PointerHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
