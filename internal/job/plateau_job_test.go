package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fadilmartias/interview-coach/internal/config"
	"github.com/fadilmartias/interview-coach/internal/logger"
	"github.com/fadilmartias/interview-coach/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listStore struct {
	pointers []model.Pointer
	err      error
	owner    *string
}

func (s *listStore) GetAll(_ context.Context, ownerID string) ([]model.Pointer, error) {
	s.owner = &ownerID
	return s.pointers, s.err
}

func (s *listStore) GetByID(context.Context, uuid.UUID, string) (*model.Pointer, error) {
	return nil, errors.New("not used")
}

func (s *listStore) CreateWithHistory(context.Context, *model.Pointer, *model.PointerHistory) error {
	return errors.New("not used")
}

func (s *listStore) UpdateWithHistory(context.Context, *model.Pointer, *model.PointerHistory) error {
	return errors.New("not used")
}

func (s *listStore) Delete(context.Context, uuid.UUID, string) error {
	return errors.New("not used")
}

func (s *listStore) GetHistory(context.Context, uuid.UUID) ([]model.PointerHistory, error) {
	return nil, errors.New("not used")
}

func TestPlateauScanCountsStalePointers(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	completedAt := now.Add(-40 * 24 * time.Hour)
	store := &listStore{pointers: []model.Pointer{
		{ID: uuid.New(), Title: "old", Status: model.StatusInProgress, UpdatedAt: now.Add(-20 * 24 * time.Hour)},
		{ID: uuid.New(), Title: "fresh", Status: model.StatusNotStarted, UpdatedAt: now.Add(-time.Hour)},
		{ID: uuid.New(), Title: "done", Status: model.StatusCompleted, CompletedAt: &completedAt, UpdatedAt: completedAt},
	}}

	j := NewPlateauScanJob(store, config.DefaultCoachConfig(), logger.Nop())
	j.now = func() time.Time { return now }

	stale, err := j.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stale)
	require.NotNil(t, store.owner)
	assert.Empty(t, *store.owner)
}

func TestPlateauScanStoreError(t *testing.T) {
	j := NewPlateauScanJob(&listStore{err: errors.New("db down")}, config.DefaultCoachConfig(), logger.Nop())
	_, err := j.Run(context.Background())
	assert.ErrorContains(t, err, "db down")
}

func TestPlateauScanStartRejectsBadSchedule(t *testing.T) {
	cfg := config.DefaultCoachConfig()
	cfg.PlateauScanSchedule = "not a schedule"
	j := NewPlateauScanJob(&listStore{}, cfg, logger.Nop())
	assert.Error(t, j.Start())

	cfg.PlateauScanSchedule = "@every 1h"
	require.NoError(t, j.Start())
	j.Stop()
}
