package config

import "math"

// Multiplier bounds keep scaled budgets playable.
const (
	minMultiplier = 0.25
	maxMultiplier = 4.0
)

// DifficultyManager turns a difficulty preset into budget multipliers.
type DifficultyManager struct {
	cfg    DifficultyConfig
	preset DifficultyPreset
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	preset, ok := ParsePreset(string(cfg.Preset))
	if !ok {
		preset = DifficultyNormal
	}
	return &DifficultyManager{cfg: cfg, preset: preset}
}

// SetPreset overrides the configured preset.
func (d *DifficultyManager) SetPreset(preset DifficultyPreset) {
	d.preset = preset
}

// Preset returns the active preset.
func (d *DifficultyManager) Preset() DifficultyPreset {
	return d.preset
}

// Multipliers returns the move and time budget multipliers for the active
// preset. The fixed preset and unset values yield 1.
func (d *DifficultyManager) Multipliers() (moves, time float64) {
	var s ScalingConfig
	switch d.preset {
	case DifficultyEasy:
		s = d.cfg.Easy
	case DifficultyNormal:
		s = d.cfg.Normal
	case DifficultyHard:
		s = d.cfg.Hard
	default:
		return 1, 1
	}
	return multiplier(s.MoveMultiplier), multiplier(s.TimeMultiplier)
}

func multiplier(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return clampF(v, minMultiplier, maxMultiplier)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
