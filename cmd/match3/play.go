package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play match-3",
	Long: `Start the game in your terminal.

Without a level the level picker opens. Winning a level moves on to the
next one in the pack.

Controls:
  Arrows / WASD  - Move cursor, or swap when a piece is selected
  Enter / Space  - Select piece
  Mouse          - Click a piece, then a neighbour to swap
  H / ?          - Show a hint
  X              - Shuffle when no moves are left
  P              - Pause
  R              - Restart level
  Esc / B        - Back to the level picker (from pause or game over)
  Q / Ctrl+C     - Quit

Examples:
  match3 play
  match3 play lvl02
  match3 play lvl04 --difficulty hard --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	lvls, err := loadLevels()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		if _, err := findLevel(lvls, args[0]); err != nil {
			return err
		}
	}

	// Open result storage; play continues without it
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open results database", "err", err)
	}
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	restore := fileLogger()
	defer restore()

	if len(args) == 0 {
		return tui.RunSession(tui.SessionOptions{
			GameID: match3.GameID,
			Game:   gameOptions(),
			Levels: lvls,
			Store:  store,
			Logger: logger,
		}, cfg)
	}

	opts := gameOptions()
	opts.Level = args[0]
	game, err := registry.Create(match3.GameID, opts)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	return tui.Run(game, store, cfg, logger)
}

// runtimeConfig builds the platform config from the flags and the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	return cfg
}
