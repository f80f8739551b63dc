package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var (
	flagScoresLimit       int
	flagScoresInteractive bool
	flagScoresClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show stored results",
	Long: `Without a level, shows a summary of every played level. With a level,
shows its best attempts.

Examples:
  match3 scores
  match3 scores lvl03
  match3 scores lvl03 --limit 25
  match3 scores -i
  match3 scores lvl03 --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of results to show")
	scoresCmd.Flags().BoolVarP(&flagScoresInteractive, "interactive", "i", false, "Open the scoreboard browser")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all results for the level")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	levelID := ""
	if len(args) == 1 {
		levelID = args[0]
	}

	if flagScoresClear {
		if levelID == "" {
			return fmt.Errorf("--clear needs a level")
		}
		if err := store.ClearResults(levelID); err != nil {
			return err
		}
		logger.Info("results cleared", "level", levelID)
		return nil
	}

	if flagScoresInteractive {
		lvls, err := loadLevels()
		if err != nil {
			return err
		}
		cfg := runtimeConfig()
		_, err = tui.RunScoreboard(lvls, store, levelID, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	if levelID == "" {
		return printSummary(store)
	}
	return printLevelResults(store, levelID)
}

func printSummary(store *storage.Store) error {
	lvls, err := loadLevels()
	if err != nil {
		return err
	}
	stats, err := store.AllLevelStats()
	if err != nil {
		return err
	}

	fmt.Println("Results by level")
	fmt.Println()

	t := newTable("Level", "Attempts", "Wins", "Win rate", "Best", "Fewest moves", "Last played")
	played := 0
	for _, l := range lvls {
		st, ok := stats[l.ID]
		if !ok {
			continue
		}
		played++
		fewest := "-"
		if st.FewestWinMoves > 0 {
			fewest = fmt.Sprint(st.FewestWinMoves)
		}
		t.Row(
			l.ID,
			fmt.Sprint(st.Attempts),
			fmt.Sprint(st.Wins),
			fmt.Sprintf("%.0f%%", st.WinRate()*100),
			fmt.Sprint(st.BestScore),
			fewest,
			st.LastPlayed.Format("2006-01-02 15:04"),
		)
	}

	if played == 0 {
		fmt.Println("No results recorded yet.")
		fmt.Println()
		fmt.Println("Play 'match3 play' to set the first one!")
		return nil
	}
	fmt.Println(t.Render())
	return nil
}

func printLevelResults(store *storage.Store, levelID string) error {
	results, err := store.TopResults(levelID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Best results - %s\n", levelID)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No results recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'match3 play %s' to set the first one!\n", levelID)
		return nil
	}

	t := newTable("Rank", "Score", "Result", "Moves", "Matches", "Time", "Date")
	for i, r := range results {
		outcome := "lost"
		if r.Won() {
			outcome = "won"
		}
		t.Row(
			fmt.Sprint(i+1),
			fmt.Sprint(r.Score),
			outcome,
			fmt.Sprint(r.Moves),
			fmt.Sprint(r.Matches),
			r.Duration.Round(100 * time.Millisecond).String(),
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	fmt.Println(t.Render())

	best, err := store.BestScore(levelID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(headers...)
}
