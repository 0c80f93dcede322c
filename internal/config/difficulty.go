package config

import (
	"math"
	"time"
)

// DifficultyManager turns a difficulty config into gravity adjustments.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables speed progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether the gravity speeds up with level.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// Level returns the difficulty level (0.0 to 1.0).
func (d *DifficultyManager) Level() float64 {
	return d.initialLevel
}

// SpeedFactor returns how much faster than configured the gravity runs.
func (d *DifficultyManager) SpeedFactor() float64 {
	f := 1.0 + d.initialLevel*d.cfg.Scaling.SpeedMultiplier
	if f < 1.0 {
		return 1.0
	}
	return f
}

// Scale shortens an interval by the speed factor, never below 1ms.
// Non-positive intervals are returned unchanged.
func (d *DifficultyManager) Scale(interval time.Duration) time.Duration {
	if interval <= 0 {
		return interval
	}
	scaled := time.Duration(math.Round(float64(interval) / d.SpeedFactor()))
	if scaled < time.Millisecond {
		return time.Millisecond
	}
	return scaled
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
