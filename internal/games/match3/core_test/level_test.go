package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

func TestParseShape(t *testing.T) {
	shape, err := core.ParseShape([]string{
		"S#.",
		"#3#",
	})
	require.NoError(t, err)

	assert.Equal(t, 3, shape.Grid.W)
	assert.Equal(t, 2, shape.Grid.H)
	assert.Equal(t, 5, shape.Grid.ActiveCount())
	assert.False(t, shape.Grid.IsActive(2, 0))
	assert.Equal(t, []core.Coord{core.C(0, 0)}, shape.Sinks)
	assert.Equal(t, []core.ObstaclePlacement{{Pos: core.C(1, 1), Health: 3}}, shape.Obstacles)
}

func TestParseShapeErrors(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		code string
	}{
		{"no rows", nil, "EMPTY_SHAPE"},
		{"empty row", []string{""}, "EMPTY_SHAPE"},
		{"ragged", []string{"###", "##"}, "BAD_SHAPE"},
		{"unknown cell", []string{"#0#"}, "BAD_SHAPE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := core.ParseShape(tt.rows)
			var verr core.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.code, verr.Code)
			assert.Contains(t, err.Error(), "["+tt.code+"]")
		})
	}
}

func validLevel() *core.LevelDef {
	return &core.LevelDef{
		ID:          "v",
		Grid:        core.NewFullGrid(4, 4),
		Palette:     core.Palette{{Item: "a", Weight: 1}, {Item: "b", Weight: 1}},
		Obstacles:   []core.ObstaclePlacement{{Pos: core.C(1, 1), Health: 2}},
		Sinks:       []core.Coord{core.C(3, 0)},
		SinkColumns: []int{3},
		Objectives: []core.ObjectiveSpec{
			{Type: core.ObjectiveItemMatches, Item: "a", Target: 3},
		},
		LoseConditions: []core.LoseConditionSpec{{Type: core.LoseMoveLimit, Moves: 5}},
	}
}

func TestLevelValidate(t *testing.T) {
	require.NoError(t, validLevel().Validate())

	tests := []struct {
		name   string
		mutate func(l *core.LevelDef)
		code   string
	}{
		{"missing id", func(l *core.LevelDef) { l.ID = "" }, "MISSING_ID"},
		{"no grid", func(l *core.LevelDef) { l.Grid = nil }, "EMPTY_SHAPE"},
		{"all inactive", func(l *core.LevelDef) { l.Grid = core.NewGrid(2, 1, []bool{false, false}) }, "EMPTY_SHAPE"},
		{"single item", func(l *core.LevelDef) { l.Palette = l.Palette[:1] }, "NO_PALETTE"},
		{"blank item", func(l *core.LevelDef) { l.Palette[1].Item = "" }, "NO_PALETTE"},
		{"duplicate item", func(l *core.LevelDef) { l.Palette[1].Item = "a" }, "DUPLICATE_ITEM"},
		{"obstacle off grid", func(l *core.LevelDef) { l.Obstacles[0].Pos = core.C(9, 9) }, "BAD_OBSTACLE"},
		{"obstacle without health", func(l *core.LevelDef) { l.Obstacles[0].Health = 0 }, "BAD_OBSTACLE"},
		{"sink off grid", func(l *core.LevelDef) { l.Sinks[0] = core.C(-1, 0) }, "BAD_SINK"},
		{"sink column", func(l *core.LevelDef) { l.SinkColumns = []int{4} }, "BAD_SINK"},
		{"no objectives", func(l *core.LevelDef) { l.Objectives = nil }, "NO_OBJECTIVES"},
		{"foreign item", func(l *core.LevelDef) { l.Objectives[0].Item = "z" }, "BAD_OBJECTIVE"},
		{"bad lose condition", func(l *core.LevelDef) { l.LoseConditions[0].Moves = 0 }, "BAD_LOSE_CONDITION"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validLevel()
			tt.mutate(l)
			var verr core.ValidationError
			require.ErrorAs(t, l.Validate(), &verr)
			assert.Equal(t, tt.code, verr.Code)
		})
	}
}

func TestBuildBoardPlacesFixtures(t *testing.T) {
	lvl := validLevel()

	b := lvl.BuildBoard()
	requireLinked(t, b)

	assert.Equal(t, 1, b.ObjectCount(core.KindObstacle))
	assert.Equal(t, 1, b.ObjectCount(core.KindSink))
	assert.Len(t, b.EmptyTiles(), 14)
	assert.Equal(t, 2, b.Tile(core.C(1, 1)).Object().Health)

	other := lvl.BuildBoard()
	other.Tile(core.C(1, 1)).Object().Damage()
	assert.Equal(t, 2, b.Tile(core.C(1, 1)).Object().Health, "each board gets its own objects")
}
