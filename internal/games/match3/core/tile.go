package core

// Tile is a fixed board cell. Its position and activity never change; its
// occupant changes through Board.SetObjectAt only.
type Tile struct {
	Pos    Coord
	Active bool

	// Presentation flags. Game logic never reads them.
	Selected bool
	Hovered  bool

	object *BoardObject
}

// Object returns the occupant, or nil.
func (t *Tile) Object() *BoardObject {
	return t.object
}

// Empty reports whether the tile has no occupant.
func (t *Tile) Empty() bool {
	return t.object == nil
}

// Item returns the item kind of a matchable occupant.
func (t *Tile) Item() (ItemKind, bool) {
	if t.object == nil || !t.object.Matchable() {
		return "", false
	}
	return t.object.Item, true
}
