package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// refillPalette never shares a kind with the letters used by boardFromRows
// fixtures, so refilled pieces cannot extend a hand-built run.
var refillPalette = core.Palette{
	{Item: "p", Weight: 1},
	{Item: "q", Weight: 1},
	{Item: "r", Weight: 1},
	{Item: "s", Weight: 1},
	{Item: "t", Weight: 1},
	{Item: "u", Weight: 1},
}

// boardFromRows builds a board from rows of cells:
// a-o matchable of that kind, 1-9 obstacle, S sink, _ empty, . inactive.
func boardFromRows(t *testing.T, rows ...string) *core.Board {
	t.Helper()
	h := len(rows)
	w := len(rows[0])
	active := make([]bool, 0, w*h)
	for _, row := range rows {
		require.Len(t, row, w, "ragged fixture")
		for _, ch := range row {
			active = append(active, ch != '.')
		}
	}
	b := core.NewBoard(core.NewGrid(w, h, active))
	for y, row := range rows {
		for x, ch := range row {
			pos := core.C(x, y)
			switch {
			case ch >= 'a' && ch <= 'o':
				b.Place(pos, core.NewMatchable(core.ItemKind(string(ch))))
			case ch >= '1' && ch <= '9':
				b.Place(pos, core.NewObstacle(int(ch-'0')))
			case ch == 'S':
				b.Place(pos, core.NewSink())
			}
		}
	}
	return b
}

// newReadyEngine wraps a prefilled board in an engine that reports instead
// of reshuffling and never asks for a minimum number of moves.
func newReadyEngine(t *testing.T, b *core.Board) (*core.Engine, *recorder) {
	t.Helper()
	cfg := core.DefaultEngineConfig()
	cfg.MinPossibleMatches = 0
	cfg.Stuck = core.StuckReport
	e := core.NewEngine(b, refillPalette, cfg, core.NewRNG(7), nil)
	rec := &recorder{}
	e.Subscribe(rec)
	require.NoError(t, e.Setup())
	require.True(t, e.Idle())
	return e, rec
}

type recorder struct {
	events []core.Event
}

func (r *recorder) OnEvent(ev core.Event) {
	r.events = append(r.events, ev)
}

func (r *recorder) reset() {
	r.events = nil
}

func eventsOf[T core.Event](r *recorder) []T {
	var out []T
	for _, ev := range r.events {
		if e, ok := ev.(T); ok {
			out = append(out, e)
		}
	}
	return out
}

// requireLinked checks the tile/object back-reference invariant and that no
// object sits on two tiles.
func requireLinked(t *testing.T, b *core.Board) {
	t.Helper()
	seen := make(map[*core.BoardObject]core.Coord)
	for _, tile := range b.Tiles() {
		obj := tile.Object()
		if obj == nil {
			continue
		}
		require.Same(t, tile, obj.Tile(), "object at %s points elsewhere", tile.Pos)
		if prev, dup := seen[obj]; dup {
			t.Fatalf("object %d on %s and %s", obj.ID, prev, tile.Pos)
		}
		seen[obj] = tile.Pos
	}
}

// requireSettled checks a board after a turn: every active tile filled and no
// immediate match left.
func requireSettled(t *testing.T, b *core.Board) {
	t.Helper()
	requireLinked(t, b)
	require.Empty(t, b.EmptyTiles())
	require.Empty(t, core.NewDetector(3).FindImmediateMatches(b))
}

func kindAt(t *testing.T, b *core.Board, pos core.Coord) core.ItemKind {
	t.Helper()
	k, ok := b.KindAt(pos)
	require.True(t, ok, "no matchable at %s", pos)
	return k
}
