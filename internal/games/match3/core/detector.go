package core

import "sort"

// DefaultMinMatchCount is the shortest run that counts as a match.
const DefaultMinMatchCount = 3

// TileSet is an unordered set of board positions.
type TileSet map[Coord]struct{}

// NewTileSet creates a set holding the given positions.
func NewTileSet(coords ...Coord) TileSet {
	s := make(TileSet, len(coords))
	for _, c := range coords {
		s[c] = struct{}{}
	}
	return s
}

// Add inserts a position.
func (s TileSet) Add(c Coord) {
	s[c] = struct{}{}
}

// Has reports membership.
func (s TileSet) Has(c Coord) bool {
	_, ok := s[c]
	return ok
}

// Union adds every member of other to s.
func (s TileSet) Union(other TileSet) {
	for c := range other {
		s[c] = struct{}{}
	}
}

// Sorted returns the members in row-major order.
func (s TileSet) Sorted() []Coord {
	out := make([]Coord, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// Move is a pair of adjacent tiles whose swap produces a match.
type Move struct {
	A Coord
	B Coord
}

// Detector finds runs of equal item kinds. All queries work against any
// KindView, so the same code checks the live board and hypothetical layouts.
type Detector struct {
	MinMatchCount int
}

// NewDetector creates a detector. Values below 2 fall back to the default.
func NewDetector(minMatchCount int) Detector {
	if minMatchCount < 2 {
		minMatchCount = DefaultMinMatchCount
	}
	return Detector{MinMatchCount: minMatchCount}
}

// FindImmediateMatches returns every tile that belongs to a horizontal or
// vertical run of at least MinMatchCount.
func (d Detector) FindImmediateMatches(v KindView) TileSet {
	out := make(TileSet)
	for y := 0; y < v.Height(); y++ {
		d.scanLine(v, C(0, y), DirRight, v.Width(), out)
	}
	for x := 0; x < v.Width(); x++ {
		d.scanLine(v, C(x, 0), DirDown, v.Height(), out)
	}
	return out
}

// scanLine walks length cells from start and adds qualifying runs to out.
func (d Detector) scanLine(v KindView, start Coord, dir Dir, length int, out TileSet) {
	dx, dy := dir.Delta()
	i := 0
	for i < length {
		pos := start.Add(dx*i, dy*i)
		kind, ok := v.KindAt(pos)
		if !ok {
			i++
			continue
		}
		run := []Coord{pos}
		next := pos.Step(dir)
		for i+len(run) < length {
			k, ok := v.KindAt(next)
			if !ok || k != kind {
				break
			}
			run = append(run, next)
			next = next.Step(dir)
		}
		if len(run) >= d.MinMatchCount {
			for _, c := range run {
				out.Add(c)
			}
		}
		i += len(run)
	}
}

// FindMatchesWithTile returns the runs through pos. The horizontal and the
// vertical axis qualify independently, so L and T shapes return both arms.
func (d Detector) FindMatchesWithTile(v KindView, pos Coord) TileSet {
	out := make(TileSet)
	kind, ok := v.KindAt(pos)
	if !ok {
		return out
	}
	for _, axis := range [2][2]Dir{{DirLeft, DirRight}, {DirUp, DirDown}} {
		run := []Coord{pos}
		for _, dir := range axis {
			next := pos.Step(dir)
			for {
				k, ok := v.KindAt(next)
				if !ok || k != kind {
					break
				}
				run = append(run, next)
				next = next.Step(dir)
			}
		}
		if len(run) >= d.MinMatchCount {
			for _, c := range run {
				out.Add(c)
			}
		}
	}
	return out
}

// WouldCreateMatch reports whether pos holding kind would complete a run,
// whatever pos currently holds.
func (d Detector) WouldCreateMatch(v KindView, pos Coord, kind ItemKind) bool {
	horizontal := 1 + d.countFrom(v, pos, DirLeft, kind) + d.countFrom(v, pos, DirRight, kind)
	if horizontal >= d.MinMatchCount {
		return true
	}
	vertical := 1 + d.countFrom(v, pos, DirUp, kind) + d.countFrom(v, pos, DirDown, kind)
	return vertical >= d.MinMatchCount
}

// countFrom counts contiguous tiles of kind starting one step from pos.
func (d Detector) countFrom(v KindView, pos Coord, dir Dir, kind ItemKind) int {
	n := 0
	next := pos.Step(dir)
	for {
		k, ok := v.KindAt(next)
		if !ok || k != kind {
			return n
		}
		n++
		next = next.Step(dir)
	}
}

// FindPossibleMoves returns every adjacent pair whose swap forms a run. Each
// pair is reported once, with A before B in row-major order.
func (d Detector) FindPossibleMoves(v KindView) []Move {
	var moves []Move
	for y := 0; y < v.Height(); y++ {
		for x := 0; x < v.Width(); x++ {
			a := C(x, y)
			ka, ok := v.KindAt(a)
			if !ok {
				continue
			}
			for _, dir := range [2]Dir{DirRight, DirDown} {
				b := a.Step(dir)
				kb, ok := v.KindAt(b)
				if !ok || ka == kb {
					continue
				}
				if d.SwapCreatesMatch(v, a, b) {
					moves = append(moves, Move{A: a, B: b})
				}
			}
		}
	}
	return moves
}

// SwapCreatesMatch reports whether exchanging the kinds at a and b forms a
// run at either position.
func (d Detector) SwapCreatesMatch(v KindView, a, b Coord) bool {
	ka, okA := v.KindAt(a)
	kb, okB := v.KindAt(b)
	if !okA || !okB {
		return false
	}
	sv := swappedView{KindView: v, a: a, b: b}
	return d.WouldCreateMatch(sv, a, kb) || d.WouldCreateMatch(sv, b, ka)
}

// FindPossibleMatches returns every tile that is part of some possible move.
func (d Detector) FindPossibleMatches(v KindView) TileSet {
	out := make(TileSet)
	for _, m := range d.FindPossibleMoves(v) {
		out.Add(m.A)
		out.Add(m.B)
	}
	return out
}

// MatchesAfterSwap returns the tiles a swap of a and b would pop, without
// touching the board.
func (d Detector) MatchesAfterSwap(v KindView, a, b Coord) TileSet {
	sv := swappedView{KindView: v, a: a, b: b}
	out := d.FindMatchesWithTile(sv, a)
	out.Union(d.FindMatchesWithTile(sv, b))
	return out
}
