package config

import (
	_ "embed"
)

//go:embed defaults/blockfall.yaml
var defaultBlockfallYAML []byte

// DefaultBlockfallConfig returns the default blockfall configuration.
func DefaultBlockfallConfig() BlockfallConfig {
	return BlockfallConfig{
		Speed: SpeedConfig{
			Curve:       CurveLinear,
			BaseMS:      1000,
			StepMS:      100,
			DecayFactor: 0.85,
			MinMS:       100,
		},
		Scoring: ScoringConfig{
			LinePoints:      []int{100, 300, 500, 800},
			ExtraLinePoints: 200,
			Multiplier:      MultiplierLevel,
			HardDropPerRow:  2,
			SoftDropPerRow:  0,
		},
		Rules: RulesConfig{
			LinesPerLevel: 10,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}
