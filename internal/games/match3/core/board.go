package core

// Board maps every grid coordinate to a Tile and owns all object placement.
// Every mutation keeps tile.Object().Tile() == tile.
type Board struct {
	Grid   *Grid
	tiles  []*Tile
	nextID int
}

// NewBoard creates a board with one tile per grid cell, all empty.
func NewBoard(g *Grid) *Board {
	b := &Board{
		Grid:   g,
		tiles:  make([]*Tile, g.W*g.H),
		nextID: 1,
	}
	for _, c := range g.Coords() {
		b.tiles[g.index(c)] = &Tile{
			Pos:    c,
			Active: g.Active[g.index(c)],
		}
	}
	return b
}

// Width returns the board width.
func (b *Board) Width() int { return b.Grid.W }

// Height returns the board height.
func (b *Board) Height() int { return b.Grid.H }

// Tile returns the tile at pos, or nil outside the grid.
func (b *Board) Tile(pos Coord) *Tile {
	if !b.Grid.InBounds(pos) {
		return nil
	}
	return b.tiles[b.Grid.index(pos)]
}

// IsValidTile reports whether t exists and is active.
func (b *Board) IsValidTile(t *Tile) bool {
	return t != nil && t.Active
}

// CanSelect reports whether the player may pick up the occupant of t.
func (b *Board) CanSelect(t *Tile) bool {
	if !b.IsValidTile(t) || t.object == nil {
		return false
	}
	return t.object.Swappable() && !t.object.interacting
}

// SetObjectAt makes obj the occupant of t. The previous occupant loses its
// back-reference and obj is detached from whatever tile held it before.
// A nil obj clears the tile.
func (b *Board) SetObjectAt(t *Tile, obj *BoardObject) {
	if t == nil {
		return
	}
	if prev := t.object; prev != nil && prev != obj {
		prev.tile = nil
	}
	if obj != nil {
		if obj.tile != nil && obj.tile != t {
			obj.tile.object = nil
		}
		if obj.ID == 0 {
			obj.ID = b.nextID
			b.nextID++
		}
		obj.tile = t
	}
	t.object = obj
}

// Place puts obj on the tile at pos. It returns false when pos is not a valid
// tile.
func (b *Board) Place(pos Coord, obj *BoardObject) bool {
	t := b.Tile(pos)
	if !b.IsValidTile(t) {
		return false
	}
	b.SetObjectAt(t, obj)
	return true
}

// Remove clears the tile at pos and returns the former occupant.
func (b *Board) Remove(pos Coord) *BoardObject {
	t := b.Tile(pos)
	if t == nil || t.object == nil {
		return nil
	}
	obj := t.object
	b.SetObjectAt(t, nil)
	return obj
}

// Swap exchanges the occupants of two tiles. Either tile being invalid makes
// it a no-op; the return value reports whether anything happened.
func (b *Board) Swap(a, c Coord) bool {
	ta, tc := b.Tile(a), b.Tile(c)
	if !b.IsValidTile(ta) || !b.IsValidTile(tc) || ta == tc {
		return false
	}
	oa, oc := ta.object, tc.object
	b.SetObjectAt(ta, oc)
	b.SetObjectAt(tc, oa)
	return true
}

// RandomValidTile picks uniformly among active, occupied tiles.
func (b *Board) RandomValidTile(rng RNG) *Tile {
	occupied := b.OccupiedTiles()
	if len(occupied) == 0 {
		return nil
	}
	return occupied[rng.Intn(len(occupied))]
}

// ActiveTileCount returns the number of active tiles.
func (b *Board) ActiveTileCount() int {
	return b.Grid.ActiveCount()
}

// Tiles returns every tile, active or not, in row-major order.
func (b *Board) Tiles() []*Tile {
	out := make([]*Tile, len(b.tiles))
	copy(out, b.tiles)
	return out
}

// EmptyTiles returns active tiles without an occupant, in row-major order.
func (b *Board) EmptyTiles() []*Tile {
	var out []*Tile
	for _, t := range b.tiles {
		if t.Active && t.object == nil {
			out = append(out, t)
		}
	}
	return out
}

// OccupiedTiles returns active tiles with an occupant, in row-major order.
func (b *Board) OccupiedTiles() []*Tile {
	var out []*Tile
	for _, t := range b.tiles {
		if t.Active && t.object != nil {
			out = append(out, t)
		}
	}
	return out
}

// KindAt implements KindView over the live board.
func (b *Board) KindAt(pos Coord) (ItemKind, bool) {
	t := b.Tile(pos)
	if !b.IsValidTile(t) {
		return "", false
	}
	return t.Item()
}

// Assignment returns the item kind of every matchable occupant.
func (b *Board) Assignment() Layout {
	out := make(Layout)
	for _, t := range b.tiles {
		if item, ok := t.Item(); ok && t.Active {
			out[t.Pos] = item
		}
	}
	return out
}

// ClearSelection resets the presentation flags on every tile.
func (b *Board) ClearSelection() {
	for _, t := range b.tiles {
		t.Selected = false
		t.Hovered = false
	}
}

// ObjectCount returns the number of objects of the given kind on the board.
func (b *Board) ObjectCount(kind ObjectKind) int {
	n := 0
	for _, t := range b.tiles {
		if t.object != nil && t.object.Kind == kind {
			n++
		}
	}
	return n
}

// lowestActiveRow returns the largest active Y in column x, or -1.
func (b *Board) lowestActiveRow(x int) int {
	for y := b.Grid.H - 1; y >= 0; y-- {
		if b.Grid.IsActive(x, y) {
			return y
		}
	}
	return -1
}
