package engine

import (
	"math"
	"time"
)

// MultiplierPolicy decides whether line-clear points scale with level.
type MultiplierPolicy string

const (
	// MultiplyPreClearLevel multiplies by the level in effect before the
	// clear is counted toward the next level.
	MultiplyPreClearLevel MultiplierPolicy = "pre_clear_level"
	// MultiplyNone awards the raw table value.
	MultiplyNone MultiplierPolicy = "none"
)

// SpeedCurve selects how the gravity interval shrinks with level.
type SpeedCurve string

const (
	CurveLinear      SpeedCurve = "linear"
	CurveExponential SpeedCurve = "exponential"
)

// Rules holds the tunable numbers of a game. The zero value is not usable;
// start from DefaultRules.
type Rules struct {
	// LinePoints[n-1] is the base award for clearing n rows at once.
	LinePoints []int
	// ExtraLinePoints is added per row beyond len(LinePoints).
	ExtraLinePoints int
	Multiplier      MultiplierPolicy
	HardDropPerRow  int
	SoftDropPerRow  int
	LinesPerLevel   int

	Curve        SpeedCurve
	BaseInterval time.Duration
	StepInterval time.Duration // linear decrement per level
	DecayFactor  float64       // exponential ratio per level
	MinInterval  time.Duration
	// FreezeSpeed pins Speed to level 1 regardless of progress.
	FreezeSpeed bool
}

// DefaultRules returns the classic scoring table and a linear curve.
func DefaultRules() Rules {
	return Rules{
		LinePoints:      []int{100, 300, 500, 800},
		ExtraLinePoints: 200,
		Multiplier:      MultiplyPreClearLevel,
		HardDropPerRow:  2,
		SoftDropPerRow:  0,
		LinesPerLevel:   10,
		Curve:           CurveLinear,
		BaseInterval:    1000 * time.Millisecond,
		StepInterval:    100 * time.Millisecond,
		DecayFactor:     0.85,
		MinInterval:     100 * time.Millisecond,
	}
}

// LineClearPoints returns the base award for clearing n rows at once,
// before any level multiplier. Clears beyond the table add ExtraLinePoints
// per row on top of the last entry.
func (r Rules) LineClearPoints(n int) int {
	if n <= 0 || len(r.LinePoints) == 0 {
		return 0
	}
	if n <= len(r.LinePoints) {
		return r.LinePoints[n-1]
	}
	last := r.LinePoints[len(r.LinePoints)-1]
	return last + r.ExtraLinePoints*(n-len(r.LinePoints))
}

// ClearScore returns the points for clearing n rows at the given level.
func (r Rules) ClearScore(n, level int) int {
	base := r.LineClearPoints(n)
	if r.Multiplier == MultiplyPreClearLevel {
		return base * max(level, 1)
	}
	return base
}

// LevelFor returns the level reached after clearing lines rows in total.
func (r Rules) LevelFor(lines int) int {
	per := r.LinesPerLevel
	if per <= 0 {
		per = 10
	}
	return lines/per + 1
}

// Speed returns the gravity interval at the given level. It never
// increases with level and never drops below MinInterval.
func (r Rules) Speed(level int) time.Duration {
	if level < 1 || r.FreezeSpeed {
		level = 1
	}

	var d time.Duration
	switch r.Curve {
	case CurveExponential:
		f := r.DecayFactor
		if f <= 0 || f > 1 {
			f = 0.85
		}
		d = time.Duration(float64(r.BaseInterval) * math.Pow(f, float64(level-1)))
	default:
		d = r.BaseInterval - time.Duration(level-1)*r.StepInterval
	}

	if d < r.MinInterval {
		return r.MinInterval
	}
	return d
}
