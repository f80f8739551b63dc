// Package config provides YAML-based game configuration loading and
// difficulty management for match3.
package config

// Match3Config contains all tunables of the match-3 game.
type Match3Config struct {
	Board      BoardConfig      `yaml:"board"`
	Generation GenerationConfig `yaml:"generation"`
	Pacing     PacingConfig     `yaml:"pacing"`
	Stuck      StuckConfig      `yaml:"stuck"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines match rules.
type BoardConfig struct {
	MinMatchCount      int `yaml:"min_match_count"`
	MinPossibleMatches int `yaml:"min_possible_matches"` // Levels may override
}

// GenerationConfig bounds the layout generator and the setup loop.
type GenerationConfig struct {
	MaxItemAttempts  int `yaml:"max_item_attempts"`
	MaxPairAttempts  int `yaml:"max_pair_attempts"`
	MaxSpawnAttempts int `yaml:"max_spawn_attempts"`
	MaxSetupAttempts int `yaml:"max_setup_attempts"`
}

// PacingConfig sets how many UI ticks each resolution step is shown for.
type PacingConfig struct {
	SwapTicks  int `yaml:"swap_ticks"`
	PopTicks   int `yaml:"pop_ticks"`
	FallTicks  int `yaml:"fall_ticks"`
	SpawnTicks int `yaml:"spawn_ticks"`
}

// StuckConfig decides what happens when the board runs out of moves.
type StuckConfig struct {
	Policy string `yaml:"policy"` // "report" or "reshuffle"
}

// ScoringConfig defines points per popped tile.
type ScoringConfig struct {
	PointsPerTile int     `yaml:"points_per_tile"`
	CascadeBonus  float64 `yaml:"cascade_bonus"`
}

// DifficultyConfig scales lose-condition budgets per preset.
type DifficultyConfig struct {
	Preset DifficultyPreset `yaml:"preset"`
	Easy   ScalingConfig    `yaml:"easy"`
	Normal ScalingConfig    `yaml:"normal"`
	Hard   ScalingConfig    `yaml:"hard"`
}

// ScalingConfig defines the magnitude of budget changes.
type ScalingConfig struct {
	MoveMultiplier float64 `yaml:"move_multiplier"`
	TimeMultiplier float64 `yaml:"time_multiplier"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a name to a preset. Unknown names report false.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(name); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	case "":
		return DifficultyNormal, true
	default:
		return DifficultyNormal, false
	}
}

// IsFixedPreset returns true if the preset keeps authored budgets unchanged.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
