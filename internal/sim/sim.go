// Package sim plays a level many times with the greedy autoplayer to
// measure how hard it is.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// Options control a simulation batch.
type Options struct {
	Runs           int     // Number of attempts; defaults to 100
	Workers        int     // Concurrent attempts; defaults to 4
	Seed           uint64  // Base seed; attempt i plays seed NextSeed(Seed+i)
	MaxMoves       int     // Autoplay move cap per attempt
	SecondsPerMove float64 // Play time charged per move for time limits
}

// RunResult is the outcome of one attempt.
type RunResult struct {
	Seed        uint64
	Status      core.Status
	Score       int
	Moves       int
	Matches     int
	SetupFailed bool
}

// Report aggregates a batch.
type Report struct {
	Level         string
	Runs          int
	Wins          int
	Losses        int
	SetupFailures int
	AvgMoves      float64 // Over played attempts
	AvgWinMoves   float64 // Over won attempts
	AvgScore      float64
	BestScore     int
	Results       []RunResult
}

// WinRate returns the share of played attempts that were won.
func (r Report) WinRate() float64 {
	played := r.Runs - r.SetupFailures
	if played == 0 {
		return 0
	}
	return float64(r.Wins) / float64(played)
}

// Simulate plays lvl opts.Runs times. Attempts share no state and run on a
// bounded worker pool; setup exhaustion counts as a setup failure, any other
// error aborts the batch.
func Simulate(ctx context.Context, lvl *core.LevelDef, cfg config.Match3Config, opts Options, logger *log.Logger) (Report, error) {
	if lvl == nil {
		return Report{}, core.ErrNoLevel
	}
	if opts.Runs <= 0 {
		opts.Runs = 100
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	results := make([]RunResult, opts.Runs)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for i := range opts.Runs {
		seed := match3.NextSeed(opts.Seed + uint64(i))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := playOnce(lvl, match3.SessionSettings(cfg, seed), opts, logger)
			if err != nil {
				return fmt.Errorf("run %d (seed %d): %w", i, seed, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	return aggregate(lvl.ID, results), nil
}

func playOnce(lvl *core.LevelDef, settings core.SessionConfig, opts Options, logger *log.Logger) (RunResult, error) {
	r := RunResult{Seed: settings.Seed}
	s := core.NewSession(lvl, settings, logger)
	if err := s.Start(); err != nil {
		if errors.Is(err, core.ErrSetupExhausted) {
			r.SetupFailed = true
			return r, nil
		}
		return r, err
	}

	r.Status = core.Autoplay(s, core.AutoplayOptions{
		MaxMoves:       opts.MaxMoves,
		SecondsPerMove: opts.SecondsPerMove,
	})
	run := s.Run()
	r.Score, r.Moves, r.Matches = run.Score, run.Moves, run.Matches
	return r, nil
}

func aggregate(levelID string, results []RunResult) Report {
	rep := Report{Level: levelID, Runs: len(results), Results: results}
	var moves, winMoves, score int
	for _, r := range results {
		if r.SetupFailed {
			rep.SetupFailures++
			continue
		}
		switch r.Status {
		case core.StatusComplete:
			rep.Wins++
			winMoves += r.Moves
		default:
			rep.Losses++
		}
		moves += r.Moves
		score += r.Score
		rep.BestScore = max(rep.BestScore, r.Score)
	}
	if played := rep.Runs - rep.SetupFailures; played > 0 {
		rep.AvgMoves = float64(moves) / float64(played)
		rep.AvgScore = float64(score) / float64(played)
	}
	if rep.Wins > 0 {
		rep.AvgWinMoves = float64(winMoves) / float64(rep.Wins)
	}
	return rep
}
