package core

// ItemKind identifies a matchable piece. Two pieces match when their kinds are
// equal; the palette of a level decides which kinds exist.
type ItemKind string

// ObjectKind is the variant tag of a BoardObject.
type ObjectKind uint8

const (
	KindMatchable ObjectKind = iota
	KindObstacle
	KindSink
)

// String returns the lowercase variant name.
func (k ObjectKind) String() string {
	switch k {
	case KindMatchable:
		return "matchable"
	case KindObstacle:
		return "obstacle"
	case KindSink:
		return "sink"
	default:
		return "unknown"
	}
}

type capabilities struct {
	swappable bool
	matchable bool
	movable   bool
}

var kindCaps = [...]capabilities{
	KindMatchable: {swappable: true, matchable: true, movable: true},
	KindObstacle:  {},
	KindSink:      {movable: true},
}

// Swappable reports whether objects of this kind can be swapped by the player.
func (k ObjectKind) Swappable() bool { return kindCaps[k].swappable }

// Matchable reports whether objects of this kind take part in runs.
func (k ObjectKind) Matchable() bool { return kindCaps[k].matchable }

// Movable reports whether gravity moves objects of this kind.
func (k ObjectKind) Movable() bool { return kindCaps[k].movable }

// BoardObject is whatever occupies a tile: a matchable piece, an obstacle with
// health, or a sink that falls to the bottom of its column.
//
// The owning tile is tracked by the board; only Board.SetObjectAt changes it.
type BoardObject struct {
	ID        int
	Kind      ObjectKind
	Item      ItemKind // Matchable only
	Health    int      // Obstacle only
	MaxHealth int      // Obstacle only

	tile        *Tile
	interacting bool
}

// NewMatchable creates a matchable piece of the given kind.
func NewMatchable(item ItemKind) *BoardObject {
	return &BoardObject{Kind: KindMatchable, Item: item}
}

// NewObstacle creates an obstacle with the given health (at least 1).
func NewObstacle(health int) *BoardObject {
	if health < 1 {
		health = 1
	}
	return &BoardObject{Kind: KindObstacle, Health: health, MaxHealth: health}
}

// NewSink creates a sink object.
func NewSink() *BoardObject {
	return &BoardObject{Kind: KindSink}
}

// Tile returns the tile that currently owns the object, or nil.
func (o *BoardObject) Tile() *Tile {
	return o.tile
}

// Swappable reports the swappable capability of the object's variant.
func (o *BoardObject) Swappable() bool { return o.Kind.Swappable() }

// Matchable reports the matchable capability of the object's variant.
func (o *BoardObject) Matchable() bool { return o.Kind.Matchable() }

// Movable reports the movable capability of the object's variant.
func (o *BoardObject) Movable() bool { return o.Kind.Movable() }

// Interacting reports whether the object is part of a swap in flight.
func (o *BoardObject) Interacting() bool {
	return o.interacting
}

// Damage removes one point of health from an obstacle and reports whether it
// just broke. Non-obstacles and already broken obstacles are unaffected.
func (o *BoardObject) Damage() bool {
	if o.Kind != KindObstacle || o.Health <= 0 {
		return false
	}
	o.Health--
	return o.Health <= 0
}
