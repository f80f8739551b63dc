package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var flagLevelsBest bool

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all available levels",
	Long: `Shows every level in the selected pack with its board size, objectives
and lose conditions.

Examples:
  match3 levels
  match3 levels --best
  match3 levels --levels ./my-levels`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().BoolVar(&flagLevelsBest, "best", false, "Include best scores from the results database")
}

func runLevels(_ *cobra.Command, _ []string) error {
	lvls, err := loadLevels()
	if err != nil {
		return err
	}

	var stats map[string]*storage.LevelStats
	if flagLevelsBest {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		if stats, err = store.AllLevelStats(); err != nil {
			return err
		}
	}

	headers := []string{"ID", "Name", "Board", "Objectives", "Lose"}
	if flagLevelsBest {
		headers = append(headers, "Best", "Wins")
	}

	t := newTable(headers...)

	for _, l := range lvls {
		row := []string{
			l.ID,
			l.Name,
			fmt.Sprintf("%dx%d", l.Grid.W, l.Grid.H),
			describeObjectives(l.Objectives),
			describeLoseConditions(l.LoseConditions),
		}
		if flagLevelsBest {
			best, wins := "-", "-"
			if st, ok := stats[l.ID]; ok {
				best = fmt.Sprint(st.BestScore)
				wins = fmt.Sprintf("%d/%d", st.Wins, st.Attempts)
			}
			row = append(row, best, wins)
		}
		t.Row(row...)
	}

	fmt.Println(t.Render())
	fmt.Println()
	fmt.Println("Run 'match3 play <id>' to play a level.")
	return nil
}

func describeObjectives(specs []core.ObjectiveSpec) string {
	parts := make([]string, 0, len(specs))
	for _, s := range specs {
		switch s.Type {
		case core.ObjectiveTotalMatches:
			parts = append(parts, fmt.Sprintf("match %d", s.Target))
		case core.ObjectiveItemMatches:
			parts = append(parts, fmt.Sprintf("match %d %s", s.Target, s.Item))
		case core.ObjectiveClearLayers:
			parts = append(parts, fmt.Sprintf("break %d layers", s.Target))
		case core.ObjectiveCollectSinks:
			parts = append(parts, fmt.Sprintf("collect %d", s.Target))
		default:
			parts = append(parts, s.Type)
		}
	}
	return strings.Join(parts, ", ")
}

func describeLoseConditions(specs []core.LoseConditionSpec) string {
	if len(specs) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(specs))
	for _, s := range specs {
		switch s.Type {
		case core.LoseMoveLimit:
			parts = append(parts, fmt.Sprintf("%d moves", s.Moves))
		case core.LoseTimeLimit:
			parts = append(parts, fmt.Sprintf("%gs", s.Seconds))
		default:
			parts = append(parts, s.Type)
		}
	}
	return strings.Join(parts, ", ")
}
