// match3 is a terminal match-3 puzzle game.
//
// Usage:
//
//	match3 levels              - List available levels
//	match3 play [level]        - Play from the level picker or a given level
//	match3 scores [level]      - Show stored results
//	match3 serve               - Start SSH server for remote play
//	match3 sim <level>         - Autoplay a level many times and report
//
// Global flags:
//
//	--config <path>      - Game config YAML (default: search order)
//	--levels <dir>       - Level directory (default: built-in levels)
//	--difficulty <name>  - easy, normal, hard or fixed
//	--db <path>          - Results database (default: ~/.match3/results.db)
//	--log-level <level>  - debug, info, warn or error
//	--theme <name>       - default, neon or mono
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

var (
	// Global flags
	flagConfig     string
	flagLevelsDir  string
	flagDifficulty string
	flagDBPath     string
	flagLogLevel   string
	flagFPS        int
	flagSeed       uint64
	flagTheme      string

	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "match3",
	Short: "Match-3 - a tile swapping puzzle for your terminal",
	Long: `Match-3 is a terminal puzzle game: swap neighbouring pieces to line up
three or more of a kind and meet each level's objectives before you run out
of moves or time.

Available commands:
  levels   - Show all available levels
  play     - Play from the level picker or a given level
  scores   - View stored results
  serve    - Start SSH server for remote play
  sim      - Autoplay a level to measure its difficulty

Examples:
  match3 play
  match3 play lvl03 --difficulty hard
  match3 scores lvl03
  match3 serve --ssh :2222
  match3 sim lvl05 --runs 500 --workers 8`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "match3",
			Level:           level,
		})
		if flagDifficulty != "" {
			if _, ok := config.ParsePreset(flagDifficulty); !ok {
				return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
			}
		}
		theme, ok := tui.ThemeByName(flagTheme)
		if !ok {
			return fmt.Errorf("unknown theme %q (want default, neon or mono)", flagTheme)
		}
		tui.SetTheme(theme)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a match3 config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory of level files (default: built-in levels)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.match3/results.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "default", "Color theme: default, neon, mono")

	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
}

// loadLevels reads the level pack selected by --levels.
func loadLevels() ([]levels.Level, error) {
	loader := levels.Embedded()
	if flagLevelsDir != "" {
		loader = levels.NewDirLoader(flagLevelsDir)
	}
	loader.Logger = logger
	lvls, err := loader.LoadAll()
	if err != nil {
		return nil, err
	}
	if len(lvls) == 0 {
		return nil, fmt.Errorf("no levels found in %s", levelSource())
	}
	return lvls, nil
}

func levelSource() string {
	if flagLevelsDir != "" {
		return flagLevelsDir
	}
	return "the built-in pack"
}

// findLevel returns the level with the given ID.
func findLevel(lvls []levels.Level, id string) (levels.Level, error) {
	for _, l := range lvls {
		if l.ID == id {
			return l, nil
		}
	}
	return levels.Level{}, fmt.Errorf("%w: %s (run 'match3 levels' to list them)", levels.ErrNotFound, id)
}

// loadConfig reads the game config and applies --difficulty.
func loadConfig() (config.Match3Config, error) {
	cfg, err := config.LoadMatch3(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset, _ := config.ParsePreset(flagDifficulty)
		config.ApplyMatch3Preset(&cfg, preset)
	}
	return cfg, nil
}

// gameOptions are the registry options every game instance is created with.
func gameOptions() registry.Options {
	return registry.Options{
		ConfigPath: flagConfig,
		LevelsDir:  flagLevelsDir,
		Difficulty: flagDifficulty,
		Logger:     logger,
	}
}

// fileLogger sends log output to ~/.match3/match3.log while a full screen
// program owns the terminal. It returns a close function.
func fileLogger() func() {
	home, err := os.UserHomeDir()
	if err != nil {
		logger.SetLevel(log.FatalLevel)
		return func() {}
	}
	path := filepath.Join(home, ".match3", "match3.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.SetLevel(log.FatalLevel)
		return func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		logger.SetLevel(log.FatalLevel)
		return func() {}
	}
	logger.SetOutput(f)
	return func() {
		logger.SetOutput(os.Stderr)
		f.Close()
	}
}
