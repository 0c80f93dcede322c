package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestDefaultsValidate(t *testing.T) {
	if err := DefaultBlockfallConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestEmbeddedMatchesHardcoded(t *testing.T) {
	cfg, err := decode(defaultBlockfallYAML)
	if err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultBlockfallConfig()) {
		t.Errorf("embedded config = %+v, expected %+v", cfg, DefaultBlockfallConfig())
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BlockfallConfig)
		want   string
	}{
		{"zero base", func(c *BlockfallConfig) { c.Speed.BaseMS = 0 }, "base_ms"},
		{"negative min", func(c *BlockfallConfig) { c.Speed.MinMS = -5 }, "min_ms"},
		{"unknown curve", func(c *BlockfallConfig) { c.Speed.Curve = "cubic" }, "curve"},
		{"factor zero", func(c *BlockfallConfig) { c.Speed.DecayFactor = 0 }, "decay_factor"},
		{"factor above one", func(c *BlockfallConfig) { c.Speed.DecayFactor = 1.5 }, "decay_factor"},
		{"unknown multiplier", func(c *BlockfallConfig) { c.Scoring.Multiplier = "post" }, "multiplier"},
		{"empty table", func(c *BlockfallConfig) { c.Scoring.LinePoints = nil }, "line_points"},
		{"zero lines per level", func(c *BlockfallConfig) { c.Rules.LinesPerLevel = 0 }, "lines_per_level"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultBlockfallConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestLoadCustomPathOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "speed:\n  curve: exponential\n  decay_factor: 0.5\nscoring:\n  line_points: [40, 100]\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBlockfall(path)
	if err != nil {
		t.Fatalf("LoadBlockfall: %v", err)
	}
	if cfg.Speed.Curve != CurveExponential || cfg.Speed.DecayFactor != 0.5 {
		t.Errorf("speed = %+v, expected exponential 0.5", cfg.Speed)
	}
	if cfg.Speed.BaseMS != 1000 {
		t.Errorf("BaseMS = %d, expected default 1000", cfg.Speed.BaseMS)
	}
	if !reflect.DeepEqual(cfg.Scoring.LinePoints, []int{40, 100}) {
		t.Errorf("LinePoints = %v, expected [40 100]", cfg.Scoring.LinePoints)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadBlockfall(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("speed: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBlockfall(bad); err == nil {
		t.Error("expected error for malformed yaml")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("speed:\n  base_ms: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBlockfall(invalid); err == nil {
		t.Error("expected error for invalid values")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := DefaultBlockfallConfig().Marshal()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "lines_per_level: 10") {
		t.Errorf("marshalled yaml missing rules:\n%s", data)
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset        DifficultyPreset
		enabled       bool
		initial       float64
		linesPerLevel int
	}{
		{DifficultyEasy, true, 0.0, 12},
		{DifficultyNormal, true, 0.3, 10},
		{DifficultyHard, true, 0.7, 8},
		{DifficultyFixed, false, 0.0, 10},
	}
	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultBlockfallConfig()
			ApplyBlockfallPreset(&cfg, tc.preset)
			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if cfg.Difficulty.InitialLevel != tc.initial {
				t.Errorf("InitialLevel = %g, expected %g", cfg.Difficulty.InitialLevel, tc.initial)
			}
			if cfg.Rules.LinesPerLevel != tc.linesPerLevel {
				t.Errorf("LinesPerLevel = %d, expected %d", cfg.Rules.LinesPerLevel, tc.linesPerLevel)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset("hard"); err != nil || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %q, %v", p, err)
	}
	if _, err := ParsePreset("insane"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestDifficultyScale(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{Enabled: true, Scaling: ScalingConfig{SpeedMultiplier: 1.0}})
	if got := d.Scale(time.Second); got != time.Second {
		t.Errorf("Scale at level 0 = %v, expected 1s", got)
	}

	d.SetInitialLevel(1.0)
	if got := d.Scale(time.Second); got != 500*time.Millisecond {
		t.Errorf("Scale at level 1 = %v, expected 500ms", got)
	}

	d.SetInitialLevel(7)
	if d.Level() != 1.0 {
		t.Errorf("Level() = %g, expected clamp to 1", d.Level())
	}

	if got := d.Scale(time.Nanosecond); got != time.Millisecond {
		t.Errorf("Scale floor = %v, expected 1ms", got)
	}

	d.SetEnabled(false)
	if d.IsEnabled() {
		t.Error("IsEnabled should follow SetEnabled")
	}
}
