package core

// KindView answers "which item kind sits at pos" for the match detector. It
// is satisfied by the live board and by a board overlaid with a pending
// layout, so detection works the same before and after objects exist.
type KindView interface {
	Width() int
	Height() int
	KindAt(pos Coord) (ItemKind, bool)
}

// Layout is a pending assignment of item kinds to tiles, not yet turned into
// board objects.
type Layout map[Coord]ItemKind

// Clone returns a copy of the layout.
func (l Layout) Clone() Layout {
	out := make(Layout, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}

// LayoutView overlays a pending layout on top of a board. Layout entries win
// over whatever the board holds at the same position.
type LayoutView struct {
	Board  *Board
	Layout Layout
}

// NewLayoutView creates a view of board with layout applied.
func NewLayoutView(b *Board, l Layout) LayoutView {
	return LayoutView{Board: b, Layout: l}
}

// Width returns the board width.
func (v LayoutView) Width() int { return v.Board.Width() }

// Height returns the board height.
func (v LayoutView) Height() int { return v.Board.Height() }

// KindAt returns the pending kind at pos, falling back to the board.
func (v LayoutView) KindAt(pos Coord) (ItemKind, bool) {
	if k, ok := v.Layout[pos]; ok {
		if v.Board.IsValidTile(v.Board.Tile(pos)) {
			return k, true
		}
		return "", false
	}
	return v.Board.KindAt(pos)
}

// swappedView exchanges the kinds at two positions of an underlying view.
type swappedView struct {
	KindView
	a, b Coord
}

func (v swappedView) KindAt(pos Coord) (ItemKind, bool) {
	switch pos {
	case v.a:
		return v.KindView.KindAt(v.b)
	case v.b:
		return v.KindView.KindAt(v.a)
	}
	return v.KindView.KindAt(pos)
}

// Materialize turns a layout into matchable objects on the board. Positions
// that are invalid or already occupied are skipped. It returns the positions
// that received an object, in row-major order.
func (b *Board) Materialize(l Layout) []Coord {
	var placed []Coord
	for _, c := range b.Grid.Coords() {
		item, ok := l[c]
		if !ok {
			continue
		}
		t := b.Tile(c)
		if !b.IsValidTile(t) || t.object != nil {
			continue
		}
		b.SetObjectAt(t, NewMatchable(item))
		placed = append(placed, c)
	}
	return placed
}
