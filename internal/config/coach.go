package config

import (
	"fmt"
	"sync"
	"time"
)

// CoachConfig tunes matching, staleness and reopen decisions.
type CoachConfig struct {
	MatchUpdateThreshold float64
	PlateauAfter         time.Duration
	RecentWindow         time.Duration
	ReopenConfidence     float64
	PlateauScanSchedule  string
}

var (
	coachConfig *CoachConfig
	coachOnce   sync.Once
	coachErr    error
)

func LoadCoachConfig() (*CoachConfig, error) {
	coachOnce.Do(func() {
		coachConfig, coachErr = newCoachConfig()
	})
	return coachConfig, coachErr
}

func newCoachConfig() (*CoachConfig, error) {
	cfg := &CoachConfig{
		MatchUpdateThreshold: getEnvFloat("MATCH_UPDATE_THRESHOLD", 0.8),
		PlateauAfter:         getEnvDuration("PLATEAU_AFTER", 14*24*time.Hour),
		RecentWindow:         getEnvDuration("RECENT_WINDOW", 7*24*time.Hour),
		ReopenConfidence:     getEnvFloat("REOPEN_CONFIDENCE", 0.4),
		PlateauScanSchedule:  getEnvOrDefault("PLATEAU_SCAN_SCHEDULE", "@every 6h"),
	}
	if cfg.MatchUpdateThreshold <= 0 || cfg.MatchUpdateThreshold > 1 {
		return nil, fmt.Errorf("MATCH_UPDATE_THRESHOLD must be in (0,1], got %v", cfg.MatchUpdateThreshold)
	}
	if cfg.ReopenConfidence < 0 || cfg.ReopenConfidence > 1 {
		return nil, fmt.Errorf("REOPEN_CONFIDENCE must be in [0,1], got %v", cfg.ReopenConfidence)
	}
	if cfg.PlateauAfter <= 0 || cfg.RecentWindow <= 0 {
		return nil, fmt.Errorf("PLATEAU_AFTER and RECENT_WINDOW must be positive")
	}
	return cfg, nil
}

// DefaultCoachConfig returns the built-in tuning without reading the environment.
func DefaultCoachConfig() *CoachConfig {
	return &CoachConfig{
		MatchUpdateThreshold: 0.8,
		PlateauAfter:         14 * 24 * time.Hour,
		RecentWindow:         7 * 24 * time.Hour,
		ReopenConfidence:     0.4,
		PlateauScanSchedule:  "@every 6h",
	}
}
