package core

// fallWave moves at most one object per column. In each column the lowest
// empty active tile takes the nearest object above it; inactive tiles are
// skipped over. An object that cannot move blocks the tiles below it, and the
// search continues above it. It returns the moves made, left to right.
func (b *Board) fallWave() []Moved {
	var moves []Moved
	for x := 0; x < b.Grid.W; x++ {
		if mv, ok := b.fallColumn(x); ok {
			moves = append(moves, mv)
		}
	}
	return moves
}

func (b *Board) fallColumn(x int) (Moved, bool) {
	y := b.Grid.H - 1
	for y >= 0 {
		t := b.Tile(C(x, y))
		if !t.Active || t.object != nil {
			y--
			continue
		}
		src := b.nearestAbove(x, y)
		if src == nil {
			return Moved{}, false
		}
		obj := src.object
		if !obj.Movable() || obj.interacting {
			y = src.Pos.Y - 1
			continue
		}
		mv := Moved{ID: obj.ID, Kind: obj.Kind, Item: obj.Item, From: src.Pos, To: t.Pos}
		b.SetObjectAt(t, obj)
		return mv, true
	}
	return Moved{}, false
}

// nearestAbove returns the closest occupied active tile above (x, y).
func (b *Board) nearestAbove(x, y int) *Tile {
	for yy := y - 1; yy >= 0; yy-- {
		t := b.Tile(C(x, yy))
		if t.Active && t.object != nil {
			return t
		}
	}
	return nil
}

// collectSinks removes every sink resting on the lowest active tile of its
// column.
func (b *Board) collectSinks() []SinkCollected {
	var out []SinkCollected
	for x := 0; x < b.Grid.W; x++ {
		y := b.lowestActiveRow(x)
		if y < 0 {
			continue
		}
		t := b.Tile(C(x, y))
		if t.object != nil && t.object.Kind == KindSink {
			b.Remove(t.Pos)
			out = append(out, SinkCollected{Pos: t.Pos})
		}
	}
	return out
}

// topActiveTile returns the highest active tile of column x, or nil.
func (b *Board) topActiveTile(x int) *Tile {
	for y := 0; y < b.Grid.H; y++ {
		if t := b.Tile(C(x, y)); t != nil && t.Active {
			return t
		}
	}
	return nil
}
