package job

import (
	"context"
	"fmt"
	"time"

	"github.com/fadilmartias/interview-coach/internal/config"
	"github.com/fadilmartias/interview-coach/internal/logger"
	"github.com/fadilmartias/interview-coach/internal/metrics"
	"github.com/fadilmartias/interview-coach/internal/usecase"
	"github.com/robfig/cron/v3"
)

// PlateauScanJob periodically looks for pointers that stopped moving and
// reports them through logs and the plateau gauge.
type PlateauScanJob struct {
	store usecase.PointerStore
	cfg   *config.CoachConfig
	log   *logger.Logger
	cron  *cron.Cron
	now   func() time.Time
}

func NewPlateauScanJob(store usecase.PointerStore, cfg *config.CoachConfig, log *logger.Logger) *PlateauScanJob {
	return &PlateauScanJob{
		store: store,
		cfg:   cfg,
		log:   log.With("job", "plateau_scan"),
		cron:  cron.New(),
		now:   time.Now,
	}
}

// Start schedules the scan. An empty schedule disables it.
func (j *PlateauScanJob) Start() error {
	if j.cfg.PlateauScanSchedule == "" {
		j.log.Info("plateau scan disabled")
		return nil
	}

	_, err := j.cron.AddFunc(j.cfg.PlateauScanSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := j.Run(ctx); err != nil {
			j.log.Error("plateau scan failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule plateau scan: %w", err)
	}

	j.cron.Start()
	j.log.Info("plateau scan scheduled", "schedule", j.cfg.PlateauScanSchedule)
	return nil
}

func (j *PlateauScanJob) Stop() {
	<-j.cron.Stop().Done()
}

// Run performs one scan across all owners and returns the stale pointer count.
func (j *PlateauScanJob) Run(ctx context.Context) (int, error) {
	pointers, err := j.store.GetAll(ctx, "")
	if err != nil {
		return 0, fmt.Errorf("failed to load pointers: %w", err)
	}

	now := j.now()
	stale := usecase.StalePointers(pointers, now, j.cfg.PlateauAfter)
	for _, p := range stale {
		j.log.Warn("pointer plateaued",
			"pointer_id", p.ID,
			"owner_id", p.OwnerID,
			"title", p.Title,
			"idle_days", int(now.Sub(p.UpdatedAt).Hours()/24),
		)
	}
	metrics.SetPlateauPointers(len(stale))
	j.log.Info("plateau scan finished", "scanned", len(pointers), "stale", len(stale))
	return len(stale), nil
}
