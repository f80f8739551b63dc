package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

func matched(items ...core.ItemKind) core.MatchesMade {
	tiles := make([]core.MatchedTile, len(items))
	for i, it := range items {
		tiles[i] = core.MatchedTile{Pos: core.C(i, 0), Item: it}
	}
	return core.MatchesMade{Tiles: tiles, Cascade: 1}
}

func mustObjective(t *testing.T, spec core.ObjectiveSpec) core.Objective {
	t.Helper()
	o, err := core.NewObjective(spec)
	require.NoError(t, err)
	return o
}

func mustLose(t *testing.T, spec core.LoseConditionSpec) core.LoseCondition {
	t.Helper()
	l, err := core.NewLoseCondition(spec)
	require.NoError(t, err)
	return l
}

func TestObjectives(t *testing.T) {
	tests := []struct {
		name   string
		spec   core.ObjectiveSpec
		events []core.Event
		done   bool
		text   string
	}{
		{
			name:   "total matches",
			spec:   core.ObjectiveSpec{Type: core.ObjectiveTotalMatches, Target: 5},
			events: []core.Event{matched("a", "a", "a"), matched("b", "b", "b")},
			done:   true,
			text:   "Matches 5/5",
		},
		{
			name:   "item matches counts one kind",
			spec:   core.ObjectiveSpec{Type: core.ObjectiveItemMatches, Item: "red", Target: 4},
			events: []core.Event{matched("red", "red", "red"), matched("blue", "blue", "blue")},
			done:   false,
			text:   "red 3/4",
		},
		{
			name:   "clear layers",
			spec:   core.ObjectiveSpec{Type: core.ObjectiveClearLayers, Target: 2},
			events: []core.Event{core.LayerBroken{}, matched("a", "a", "a"), core.LayerBroken{}},
			done:   true,
			text:   "Layers 2/2",
		},
		{
			name:   "collect sinks",
			spec:   core.ObjectiveSpec{Type: core.ObjectiveCollectSinks, Target: 3},
			events: []core.Event{core.SinkCollected{}},
			done:   false,
			text:   "Sinks 1/3",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := core.NewRun([]core.Objective{mustObjective(t, tt.spec)}, nil, core.DefaultScoring())
			for _, ev := range tt.events {
				run.OnEvent(ev)
			}
			o := run.Objectives[0]
			assert.Equal(t, tt.done, o.IsCompleted())
			assert.Equal(t, tt.text, o.ProgressText())
			if tt.done {
				assert.Equal(t, 1.0, o.Progress())
			} else {
				assert.Less(t, o.Progress(), 1.0)
			}
		})
	}
}

func TestObjectiveProgressClamped(t *testing.T) {
	o := mustObjective(t, core.ObjectiveSpec{Type: core.ObjectiveTotalMatches, Target: 2})
	o.OnMatchMade(matched("a", "a", "a").Tiles)

	assert.Equal(t, 1.0, o.Progress())
	assert.Equal(t, "Matches 2/2", o.ProgressText())
}

func TestObjectiveCloneResetsCounters(t *testing.T) {
	o := mustObjective(t, core.ObjectiveSpec{Type: core.ObjectiveItemMatches, Item: "a", Target: 3})
	o.OnMatchMade(matched("a", "a", "a").Tiles)
	require.True(t, o.IsCompleted())

	c := o.Clone()
	assert.False(t, c.IsCompleted())
	assert.Equal(t, 0.0, c.Progress())
	assert.True(t, o.IsCompleted(), "clone does not share state")

	o.Setup()
	assert.False(t, o.IsCompleted())
}

func TestNewObjectiveErrors(t *testing.T) {
	tests := []struct {
		name string
		spec core.ObjectiveSpec
		code string
	}{
		{"unknown", core.ObjectiveSpec{Type: "score", Target: 1}, "UNKNOWN_OBJECTIVE"},
		{"zero target", core.ObjectiveSpec{Type: core.ObjectiveTotalMatches}, "BAD_OBJECTIVE"},
		{"item without kind", core.ObjectiveSpec{Type: core.ObjectiveItemMatches, Target: 3}, "BAD_OBJECTIVE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := core.NewObjective(tt.spec)
			var verr core.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.code, verr.Code)
		})
	}
}

func TestMoveLimit(t *testing.T) {
	l := mustLose(t, core.LoseConditionSpec{Type: core.LoseMoveLimit, Moves: 2})

	assert.False(t, l.IsConditionMet())
	l.OnMoveMade()
	assert.Equal(t, "Moves 1", l.ProgressText())
	l.UpdateTime(100)
	assert.False(t, l.IsConditionMet())
	l.OnMoveMade()
	assert.True(t, l.IsConditionMet())
	l.OnMoveMade()
	assert.Equal(t, "Moves 0", l.ProgressText())

	c := l.Clone()
	assert.False(t, c.IsConditionMet())
}

func TestTimeLimitClampsAtZero(t *testing.T) {
	l := mustLose(t, core.LoseConditionSpec{Type: core.LoseTimeLimit, Seconds: 65})
	tl := l.(*core.TimeLimit)

	assert.Equal(t, "Time 1:05", l.ProgressText())
	l.UpdateTime(-3)
	assert.Equal(t, 65.0, tl.Remaining)
	l.OnMoveMade()
	l.UpdateTime(60.5)
	assert.False(t, l.IsConditionMet())
	assert.Equal(t, "Time 0:05", l.ProgressText())
	l.UpdateTime(10)
	assert.True(t, l.IsConditionMet())
	assert.Equal(t, 0.0, tl.Remaining)
}

func TestLoseConditionSpecScaled(t *testing.T) {
	moves := core.LoseConditionSpec{Type: core.LoseMoveLimit, Moves: 20}
	assert.Equal(t, 30, moves.Scaled(1.5, 1).Moves)
	assert.Equal(t, 1, moves.Scaled(0.01, 1).Moves)
	assert.Equal(t, 20, moves.Scaled(0, 0).Moves)

	secs := core.LoseConditionSpec{Type: core.LoseTimeLimit, Seconds: 60}
	assert.Equal(t, 45.0, secs.Scaled(1, 0.75).Seconds)
}

func TestRunCompletionBeatsFailure(t *testing.T) {
	run := core.NewRun(
		[]core.Objective{mustObjective(t, core.ObjectiveSpec{Type: core.ObjectiveTotalMatches, Target: 3})},
		[]core.LoseCondition{mustLose(t, core.LoseConditionSpec{Type: core.LoseMoveLimit, Moves: 1})},
		core.DefaultScoring(),
	)
	run.OnEvent(core.MoveMade{})
	run.OnEvent(matched("a", "a", "a"))

	assert.Equal(t, core.StatusPlaying, run.Evaluate(false), "no decision mid-cascade")
	assert.Equal(t, core.StatusComplete, run.Evaluate(true))
	assert.Equal(t, 1, run.Moves)
	assert.Equal(t, 3, run.Matches)
}

func TestRunFailsOnMoveLimit(t *testing.T) {
	run := core.NewRun(
		[]core.Objective{mustObjective(t, core.ObjectiveSpec{Type: core.ObjectiveTotalMatches, Target: 30})},
		[]core.LoseCondition{mustLose(t, core.LoseConditionSpec{Type: core.LoseMoveLimit, Moves: 1})},
		core.DefaultScoring(),
	)
	run.OnEvent(core.MoveMade{})
	run.OnEvent(matched("a", "a", "a"))

	assert.Equal(t, core.StatusFailed, run.Evaluate(true))

	// Decided runs stay decided.
	run.OnEvent(matched("b", "b", "b"))
	assert.Equal(t, core.StatusFailed, run.Evaluate(true))
}

func TestRunWithoutObjectivesNeverCompletes(t *testing.T) {
	run := core.NewRun(nil, nil, core.DefaultScoring())
	run.OnEvent(matched("a", "a", "a"))
	assert.Equal(t, core.StatusPlaying, run.Evaluate(true))
}

func TestRunTickOnlyWhileInteractive(t *testing.T) {
	run := core.NewRun(
		[]core.Objective{mustObjective(t, core.ObjectiveSpec{Type: core.ObjectiveTotalMatches, Target: 30})},
		[]core.LoseCondition{mustLose(t, core.LoseConditionSpec{Type: core.LoseTimeLimit, Seconds: 5})},
		core.DefaultScoring(),
	)

	run.Tick(10, false)
	assert.Equal(t, core.StatusPlaying, run.Evaluate(true))
	assert.Zero(t, run.Elapsed)

	run.Tick(5, true)
	assert.Equal(t, 5.0, run.Elapsed)
	assert.Equal(t, core.StatusFailed, run.Evaluate(true))
}

func TestScoring(t *testing.T) {
	s := core.Scoring{PointsPerTile: 10, CascadeBonus: 0.5}
	assert.Equal(t, 30, s.Points(3, 1))
	assert.Equal(t, 45, s.Points(3, 2))
	assert.Equal(t, 80, s.Points(4, 3))

	run := core.NewRun(nil, nil, s)
	run.OnEvent(core.MatchesMade{Tiles: matched("a", "a", "a").Tiles, Cascade: 1})
	run.OnEvent(core.MatchesMade{Tiles: matched("b", "b", "b").Tiles, Cascade: 2})
	assert.Equal(t, 75, run.Score)
}

func TestRunClonesPrototypes(t *testing.T) {
	proto := mustObjective(t, core.ObjectiveSpec{Type: core.ObjectiveTotalMatches, Target: 3})
	first := core.NewRun([]core.Objective{proto}, nil, core.DefaultScoring())
	first.OnEvent(matched("a", "a", "a"))
	require.Equal(t, core.StatusComplete, first.Evaluate(true))

	second := core.NewRun([]core.Objective{proto}, nil, core.DefaultScoring())
	assert.Equal(t, core.StatusPlaying, second.Evaluate(true))
	assert.False(t, proto.IsCompleted())
}
