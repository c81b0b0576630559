package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/fadilmartias/interview-coach/internal/config"
	"github.com/fadilmartias/interview-coach/internal/dto"
	"github.com/fadilmartias/interview-coach/internal/model"
)

type MetricsOptions struct {
	RecentWindow time.Duration
	PlateauAfter time.Duration
}

// ComputeMetrics derives progress from a pointer set. It has no side effects.
func ComputeMetrics(pointers []model.Pointer, now time.Time, opts MetricsOptions) dto.ProgressMetrics {
	metrics := dto.ProgressMetrics{
		TopicBreakdown:  map[model.Topic]dto.TopicProgress{},
		PlateauWarnings: []string{},
	}

	var completedWeight, totalWeight int
	for _, p := range pointers {
		metrics.TotalPointers++
		topic := metrics.TopicBreakdown[p.Topic]
		topic.Total++
		topic.Score += p.Weightage
		totalWeight += p.Weightage

		if p.IsCompleted() {
			metrics.CompletedPointers++
			topic.Completed++
			completedWeight += p.Weightage
		}
		metrics.TopicBreakdown[p.Topic] = topic

		if now.Sub(p.UpdatedAt) <= opts.RecentWindow {
			metrics.RecentActivity++
		}
	}

	if metrics.TotalPointers > 0 {
		metrics.CompletionRate = float64(metrics.CompletedPointers) / float64(metrics.TotalPointers) * 100
	}
	if totalWeight > 0 {
		metrics.WeightedScore = float64(completedWeight) / float64(totalWeight) * 100
	}

	metrics.PlateauWarnings = PlateauWarnings(pointers, now, opts.PlateauAfter)
	return metrics
}

// StalePointers returns non-completed pointers untouched for longer than
// after, oldest first.
func StalePointers(pointers []model.Pointer, now time.Time, after time.Duration) []model.Pointer {
	stale := []model.Pointer{}
	for _, p := range pointers {
		if !p.IsCompleted() && now.Sub(p.UpdatedAt) > after {
			stale = append(stale, p)
		}
	}
	sort.SliceStable(stale, func(i, j int) bool {
		return stale[i].UpdatedAt.Before(stale[j].UpdatedAt)
	})
	return stale
}

func PlateauWarnings(pointers []model.Pointer, now time.Time, after time.Duration) []string {
	stale := StalePointers(pointers, now, after)
	warnings := make([]string, 0, len(stale))
	for _, p := range stale {
		days := int(now.Sub(p.UpdatedAt).Hours() / 24)
		warnings = append(warnings, fmt.Sprintf("%q (%s) has not progressed in %d days", p.Title, p.Topic, days))
	}
	return warnings
}

type ProgressUsecase struct {
	store PointerStore
	cfg   *config.CoachConfig
	now   func() time.Time
}

func NewProgressUsecase(store PointerStore, cfg *config.CoachConfig) *ProgressUsecase {
	return &ProgressUsecase{store: store, cfg: cfg, now: time.Now}
}

func (uc *ProgressUsecase) Metrics(ctx context.Context, ownerID string) (*dto.ProgressMetrics, error) {
	pointers, err := uc.store.GetAll(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	m := ComputeMetrics(pointers, uc.now(), uc.options())
	return &m, nil
}

func (uc *ProgressUsecase) options() MetricsOptions {
	return MetricsOptions{RecentWindow: uc.cfg.RecentWindow, PlateauAfter: uc.cfg.PlateauAfter}
}
