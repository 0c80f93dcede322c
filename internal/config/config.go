// Package config provides YAML-based game configuration loading and
// difficulty management for blockfall.
package config

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// BlockfallConfig contains all tunable numbers of a blockfall game.
type BlockfallConfig struct {
	Speed      SpeedConfig      `yaml:"speed"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Rules      RulesConfig      `yaml:"rules"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SpeedConfig defines the gravity curve. Intervals are milliseconds.
type SpeedConfig struct {
	Curve       string  `yaml:"curve"` // "linear" or "exponential"
	BaseMS      int     `yaml:"base_ms"`
	StepMS      int     `yaml:"step_ms"`      // linear decrement per level
	DecayFactor float64 `yaml:"decay_factor"` // exponential ratio per level
	MinMS       int     `yaml:"min_ms"`
}

// ScoringConfig defines the points table.
type ScoringConfig struct {
	LinePoints      []int  `yaml:"line_points"` // index n-1 is the award for n rows
	ExtraLinePoints int    `yaml:"extra_line_points"`
	Multiplier      string `yaml:"multiplier"` // "pre_clear_level" or "none"
	HardDropPerRow  int    `yaml:"hard_drop_per_row"`
	SoftDropPerRow  int    `yaml:"soft_drop_per_row"`
}

// RulesConfig defines level progression.
type RulesConfig struct {
	LinesPerLevel int `yaml:"lines_per_level"`
}

// DifficultyConfig defines how a preset bends the gravity curve.
type DifficultyConfig struct {
	Enabled      bool          `yaml:"enabled"`       // false freezes speed at level 1
	InitialLevel float64       `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Scaling      ScalingConfig `yaml:"scaling"`
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // extra speed at initial_level 1.0
}

// Known curve and multiplier names.
const (
	CurveLinear      = "linear"
	CurveExponential = "exponential"
	MultiplierLevel  = "pre_clear_level"
	MultiplierNone   = "none"
)

// Base returns the level 1 interval.
func (s SpeedConfig) Base() time.Duration { return time.Duration(s.BaseMS) * time.Millisecond }

// Step returns the linear decrement per level.
func (s SpeedConfig) Step() time.Duration { return time.Duration(s.StepMS) * time.Millisecond }

// Min returns the interval floor.
func (s SpeedConfig) Min() time.Duration { return time.Duration(s.MinMS) * time.Millisecond }

// Validate reports every problem found in the config.
func (c BlockfallConfig) Validate() error {
	var errs []error

	switch c.Speed.Curve {
	case CurveLinear, CurveExponential:
	default:
		errs = append(errs, fmt.Errorf("speed.curve: unknown curve %q", c.Speed.Curve))
	}
	if c.Speed.BaseMS <= 0 {
		errs = append(errs, fmt.Errorf("speed.base_ms: must be positive, got %d", c.Speed.BaseMS))
	}
	if c.Speed.MinMS <= 0 {
		errs = append(errs, fmt.Errorf("speed.min_ms: must be positive, got %d", c.Speed.MinMS))
	}
	if c.Speed.StepMS < 0 {
		errs = append(errs, fmt.Errorf("speed.step_ms: must not be negative, got %d", c.Speed.StepMS))
	}
	if c.Speed.DecayFactor <= 0 || c.Speed.DecayFactor > 1 {
		errs = append(errs, fmt.Errorf("speed.decay_factor: must be in (0,1], got %g", c.Speed.DecayFactor))
	}

	switch c.Scoring.Multiplier {
	case MultiplierLevel, MultiplierNone:
	default:
		errs = append(errs, fmt.Errorf("scoring.multiplier: unknown policy %q", c.Scoring.Multiplier))
	}
	if len(c.Scoring.LinePoints) == 0 {
		errs = append(errs, errors.New("scoring.line_points: must not be empty"))
	}
	if c.Scoring.HardDropPerRow < 0 || c.Scoring.SoftDropPerRow < 0 {
		errs = append(errs, errors.New("scoring: drop bonuses must not be negative"))
	}

	if c.Rules.LinesPerLevel <= 0 {
		errs = append(errs, fmt.Errorf("rules.lines_per_level: must be positive, got %d", c.Rules.LinesPerLevel))
	}
	if c.Difficulty.InitialLevel < 0 || c.Difficulty.InitialLevel > 1 {
		errs = append(errs, fmt.Errorf("difficulty.initial_level: must be in [0,1], got %g", c.Difficulty.InitialLevel))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Marshal encodes the config as YAML.
func (c BlockfallConfig) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name from the command line.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
