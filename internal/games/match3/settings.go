package match3

import (
	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// SessionSettings turns the loaded configuration into session settings for
// one attempt seeded with seed.
func SessionSettings(cfg config.Match3Config, seed uint64) core.SessionConfig {
	moveMul, timeMul := config.NewDifficultyManager(cfg.Difficulty).Multipliers()
	return core.SessionConfig{
		Engine: core.EngineConfig{
			MinMatchCount:      cfg.Board.MinMatchCount,
			MinPossibleMatches: cfg.Board.MinPossibleMatches,
			MaxItemAttempts:    cfg.Generation.MaxItemAttempts,
			MaxPairAttempts:    cfg.Generation.MaxPairAttempts,
			MaxSpawnAttempts:   cfg.Generation.MaxSpawnAttempts,
			MaxSetupAttempts:   cfg.Generation.MaxSetupAttempts,
			Stuck:              core.StuckPolicy(cfg.Stuck.Policy),
		},
		Scoring: core.Scoring{
			PointsPerTile: cfg.Scoring.PointsPerTile,
			CascadeBonus:  cfg.Scoring.CascadeBonus,
		},
		MoveScale: moveMul,
		TimeScale: timeMul,
		Seed:      seed,
	}
}

// stepDelay returns how many ticks the host waits before applying the step
// of phase p.
func stepDelay(p config.PacingConfig, phase core.Phase) int {
	switch phase {
	case core.PhaseSwapping, core.PhaseReverting:
		return p.SwapTicks
	case core.PhasePopping:
		return p.PopTicks
	case core.PhaseFalling:
		return p.FallTicks
	case core.PhaseRepopulating:
		return p.SpawnTicks
	default:
		return 0
	}
}

// NextSeed derives the seed of the following attempt.
func NextSeed(seed uint64) uint64 {
	// splitmix64
	seed += 0x9e3779b97f4a7c15
	z := seed
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
