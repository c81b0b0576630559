package model

import (
	"strings"
	"time"

	"github.com/fadilmartias/interview-coach/internal/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinWeightage     = 1
	MaxWeightage     = 10
	DefaultWeightage = 5
)

// Pointer is one tracked improvement item, owned by a single user.
type Pointer struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID         string     `gorm:"type:varchar(64);not null;index" json:"owner_id"`
	Title           string     `gorm:"type:text;not null" json:"title"`
	Topic           Topic      `gorm:"type:varchar(32);not null;index" json:"topic"`
	Status          Status     `gorm:"type:varchar(20);not null;default:not_started;index" json:"status"`
	Weightage       int        `gorm:"not null;default:5;check:chk_pointers_weightage,weightage >= 1 AND weightage <= 10" json:"weightage"`
	FeedbackSummary *string    `gorm:"type:text" json:"feedback_summary"`
	ActionSteps     *string    `gorm:"type:text" json:"action_steps"`
	CreatedAt       time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	CompletedAt     *time.Time `json:"completed_at"`
}

func (p *Pointer) TableName() string {
	return "pointers"
}

func (p *Pointer) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Validate checks field ranges and the completed_at/status pairing.
func (p *Pointer) Validate() error {
	fields := map[string]string{}
	if strings.TrimSpace(p.Title) == "" {
		fields["title"] = "title is required"
	}
	if !p.Topic.Valid() {
		fields["topic"] = "unknown topic: " + string(p.Topic)
	}
	if !p.Status.Valid() {
		fields["status"] = "unknown status: " + string(p.Status)
	}
	if p.Weightage < MinWeightage || p.Weightage > MaxWeightage {
		fields["weightage"] = "weightage must be between 1 and 10"
	}
	if (p.Status == StatusCompleted) != (p.CompletedAt != nil) {
		fields["completed_at"] = "completed_at must be set exactly when status is completed"
	}
	if len(fields) > 0 {
		return apperror.NewValidationError("invalid pointer", fields)
	}
	return nil
}

// SetStatus moves the pointer to status and keeps CompletedAt consistent.
func (p *Pointer) SetStatus(status Status, now time.Time) {
	if status == StatusCompleted {
		if p.Status != StatusCompleted || p.CompletedAt == nil {
			p.CompletedAt = &now
		}
	} else {
		p.CompletedAt = nil
	}
	p.Status = status
}

func (p *Pointer) IsCompleted() bool {
	return p.Status == StatusCompleted
}
