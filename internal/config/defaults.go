package config

import (
	_ "embed"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the default match-3 configuration.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Board: BoardConfig{
			MinMatchCount:      3,
			MinPossibleMatches: 3,
		},
		Generation: GenerationConfig{
			MaxItemAttempts:  50,
			MaxPairAttempts:  100,
			MaxSpawnAttempts: 10,
			MaxSetupAttempts: 50,
		},
		Pacing: PacingConfig{
			SwapTicks:  6,
			PopTicks:   2,
			FallTicks:  3,
			SpawnTicks: 4,
		},
		Stuck: StuckConfig{
			Policy: "reshuffle",
		},
		Scoring: ScoringConfig{
			PointsPerTile: 10,
			CascadeBonus:  0.5,
		},
		Difficulty: DifficultyConfig{
			Preset: DifficultyNormal,
			Easy:   ScalingConfig{MoveMultiplier: 1.5, TimeMultiplier: 1.5},
			Normal: ScalingConfig{MoveMultiplier: 1.0, TimeMultiplier: 1.0},
			Hard:   ScalingConfig{MoveMultiplier: 0.75, TimeMultiplier: 0.7},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultMatch3YAML
}
