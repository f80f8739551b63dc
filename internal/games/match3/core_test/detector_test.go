package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

func TestFindImmediateMatchesRowOfThree(t *testing.T) {
	b := core.NewBoard(core.NewFullGrid(8, 8))
	for x := 0; x < 3; x++ {
		b.Place(core.C(x, 0), core.NewMatchable("red"))
	}

	got := core.NewDetector(3).FindImmediateMatches(b)

	assert.Equal(t, core.NewTileSet(core.C(0, 0), core.C(1, 0), core.C(2, 0)), got)
}

func TestFindImmediateMatches(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		want []core.Coord
	}{
		{
			name: "none",
			rows: []string{"aab", "bba", "aab"},
		},
		{
			name: "vertical",
			rows: []string{"ab", "ac", "ab"},
			want: []core.Coord{core.C(0, 0), core.C(0, 1), core.C(0, 2)},
		},
		{
			name: "run of four",
			rows: []string{"bbbb", "acac"},
			want: []core.Coord{core.C(0, 0), core.C(1, 0), core.C(2, 0), core.C(3, 0)},
		},
		{
			name: "inactive gap breaks run",
			rows: []string{"aa.a"},
		},
		{
			name: "obstacle breaks run",
			rows: []string{"aa1a"},
		},
		{
			name: "cross shares centre",
			rows: []string{"bab", "aaa", "bab"},
			want: []core.Coord{
				core.C(1, 0),
				core.C(0, 1), core.C(1, 1), core.C(2, 1),
				core.C(1, 2),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := boardFromRows(t, tt.rows...)
			got := core.NewDetector(3).FindImmediateMatches(b)
			assert.ElementsMatch(t, tt.want, got.Sorted())
		})
	}
}

func TestFindMatchesWithTileLShape(t *testing.T) {
	b := boardFromRows(t,
		"abb",
		"acc",
		"aaa",
	)
	det := core.NewDetector(3)

	got := det.FindMatchesWithTile(b, core.C(0, 2))
	assert.ElementsMatch(t, []core.Coord{
		core.C(0, 0), core.C(0, 1), core.C(0, 2),
		core.C(1, 2), core.C(2, 2),
	}, got.Sorted())

	assert.Empty(t, det.FindMatchesWithTile(b, core.C(1, 1)))
	assert.Empty(t, det.FindMatchesWithTile(b, core.C(5, 5)))
}

func TestWouldCreateMatch(t *testing.T) {
	b := boardFromRows(t,
		"aa_",
		"bcb",
		"_cd",
	)
	det := core.NewDetector(3)

	assert.True(t, det.WouldCreateMatch(b, core.C(2, 0), "a"))
	assert.False(t, det.WouldCreateMatch(b, core.C(2, 0), "b"))
	assert.True(t, det.WouldCreateMatch(b, core.C(1, 0), "c"), "replacing the current kind counts")
	assert.False(t, det.WouldCreateMatch(b, core.C(0, 2), "c"))
}

func TestFindPossibleMoves(t *testing.T) {
	b := boardFromRows(t,
		"abaa",
		"cdef",
	)
	det := core.NewDetector(3)

	moves := det.FindPossibleMoves(b)
	require.Equal(t, []core.Move{{A: core.C(0, 0), B: core.C(1, 0)}}, moves)

	tiles := det.FindPossibleMatches(b)
	assert.Equal(t, core.NewTileSet(core.C(0, 0), core.C(1, 0)), tiles)
	assert.Equal(t, tiles, det.FindPossibleMatches(b), "repeat query returns the same set")

	popped := det.MatchesAfterSwap(b, core.C(0, 0), core.C(1, 0))
	assert.ElementsMatch(t, []core.Coord{core.C(1, 0), core.C(2, 0), core.C(3, 0)}, popped.Sorted())
	assert.Equal(t, core.ItemKind("a"), kindAt(t, b, core.C(0, 0)), "hypothetical swap leaves the board alone")
}

func TestPossibleMovesIgnoreObstaclesAndSinks(t *testing.T) {
	b := boardFromRows(t,
		"a1aa",
		"Sbcd",
	)
	assert.Empty(t, core.NewDetector(3).FindPossibleMoves(b))
}

func TestLayoutViewOverridesBoard(t *testing.T) {
	b := boardFromRows(t,
		"ab_",
		"__.",
	)
	l := core.Layout{
		core.C(1, 0): "a",
		core.C(2, 0): "a",
		core.C(2, 1): "a",
	}
	v := core.NewLayoutView(b, l)
	det := core.NewDetector(3)

	k, ok := v.KindAt(core.C(1, 0))
	require.True(t, ok)
	assert.Equal(t, core.ItemKind("a"), k)

	_, ok = v.KindAt(core.C(2, 1))
	assert.False(t, ok, "layout entries on inactive tiles are ignored")

	assert.ElementsMatch(t, []core.Coord{core.C(0, 0), core.C(1, 0), core.C(2, 0)}, det.FindImmediateMatches(v).Sorted())
	assert.Empty(t, det.FindImmediateMatches(b), "board itself is unchanged")
}

func TestDetectorMinMatchCount(t *testing.T) {
	b := boardFromRows(t, "aab")

	assert.Empty(t, core.NewDetector(3).FindImmediateMatches(b))
	assert.Len(t, core.NewDetector(2).FindImmediateMatches(b), 2)
	assert.Equal(t, core.DefaultMinMatchCount, core.NewDetector(0).MinMatchCount)
}
