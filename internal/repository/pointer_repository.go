package repository

import (
	"context"
	"errors"

	"github.com/fadilmartias/interview-coach/internal/apperror"
	"github.com/fadilmartias/interview-coach/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PointerRepository persists pointers and their history. Every read and write
// is scoped to the owner; a pointer owned by someone else is reported as missing.
type PointerRepository struct {
	db *gorm.DB
}

func NewPointerRepository(db *gorm.DB) *PointerRepository {
	return &PointerRepository{db}
}

// GetAll lists an owner's pointers, newest first. An empty ownerID lists every pointer.
func (r *PointerRepository) GetAll(ctx context.Context, ownerID string) ([]model.Pointer, error) {
	var pointers []model.Pointer
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if ownerID != "" {
		q = q.Where("owner_id = ?", ownerID)
	}
	err := q.Find(&pointers).Error
	return pointers, err
}

func (r *PointerRepository) GetByID(ctx context.Context, id uuid.UUID, ownerID string) (*model.Pointer, error) {
	var p model.Pointer
	err := r.db.WithContext(ctx).First(&p, "id = ? AND owner_id = ?", id, ownerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NewNotFoundError("pointer", id.String())
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateWithHistory inserts the pointer and its first history entry in one transaction.
func (r *PointerRepository) CreateWithHistory(ctx context.Context, p *model.Pointer, h *model.PointerHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		h.PointerID = p.ID
		return tx.Create(h).Error
	})
}

// UpdateWithHistory writes every mutable column of p and appends h. Concurrent
// writers are not detected: the last update wins.
func (r *PointerRepository) UpdateWithHistory(ctx context.Context, p *model.Pointer, h *model.PointerHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(p).
			Where("owner_id = ?", p.OwnerID).
			Select("*").
			Omit("id", "owner_id", "created_at").
			Updates(p)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperror.NewNotFoundError("pointer", p.ID.String())
		}
		h.PointerID = p.ID
		return tx.Create(h).Error
	})
}

// Delete removes the pointer together with its history.
func (r *PointerRepository) Delete(ctx context.Context, id uuid.UUID, ownerID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&model.Pointer{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperror.NewNotFoundError("pointer", id.String())
		}
		return tx.Where("pointer_id = ?", id).Delete(&model.PointerHistory{}).Error
	})
}

// GetHistory returns the audit trail of a pointer, newest first.
func (r *PointerRepository) GetHistory(ctx context.Context, pointerID uuid.UUID) ([]model.PointerHistory, error) {
	var history []model.PointerHistory
	err := r.db.WithContext(ctx).
		Where("pointer_id = ?", pointerID).
		Order("updated_at DESC").
		Find(&history).Error
	return history, err
}
