package repository

import (
	"context"

	"github.com/fadilmartias/interview-coach/internal/model"
	"gorm.io/gorm"
)

// FeedbackSessionRepository only creates and reads; sessions are immutable.
type FeedbackSessionRepository struct {
	db *gorm.DB
}

func NewFeedbackSessionRepository(db *gorm.DB) *FeedbackSessionRepository {
	return &FeedbackSessionRepository{db}
}

func (r *FeedbackSessionRepository) Create(ctx context.Context, session *model.FeedbackSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// List pages through an owner's sessions, newest first, and reports the total count.
func (r *FeedbackSessionRepository) List(ctx context.Context, ownerID string, page, pageSize int) ([]model.FeedbackSession, int64, error) {
	var (
		sessions []model.FeedbackSession
		total    int64
	)
	q := r.db.WithContext(ctx).Model(&model.FeedbackSession{}).Where("owner_id = ?", ownerID).Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("submitted_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&sessions).Error
	return sessions, total, err
}
