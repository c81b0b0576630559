package repository

import (
	"github.com/fadilmartias/interview-coach/internal/model"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the coach tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.Pointer{}, &model.PointerHistory{}, &model.FeedbackSession{})
}
