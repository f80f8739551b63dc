package core

// Event is something the engine reports to its observers. Events are queued
// while a step runs and dispatched in order when the step ends.
type Event interface {
	event()
}

// MatchedTile is one tile of a match with the item it held.
type MatchedTile struct {
	Pos  Coord
	Item ItemKind
}

// MoveMade is emitted once per accepted player swap, before evaluation.
type MoveMade struct {
	A, B Coord
}

// Swapped is emitted when two occupants exchange tiles. AtA and AtB are the
// items now at A and B.
type Swapped struct {
	A, B     Coord
	AtA, AtB ItemKind
}

// Reverted is emitted when a swap without a match is undone.
type Reverted struct {
	A, B     Coord
	AtA, AtB ItemKind
}

// MatchesMade is emitted once per match wave. Each tile appears once even
// when it belongs to both a horizontal and a vertical run.
type MatchesMade struct {
	Tiles   []MatchedTile
	Cascade int // 1 for the player's swap, then 2, 3, ...
}

// ObstacleDamaged is emitted when a match hits an adjacent obstacle.
type ObstacleDamaged struct {
	Pos       Coord
	Health    int
	MaxHealth int
}

// LayerBroken is emitted once when an obstacle reaches zero health.
type LayerBroken struct {
	Pos Coord
}

// Popped is emitted when a matched piece leaves the board.
type Popped struct {
	Pos  Coord
	Item ItemKind
}

// Moved is emitted when gravity moves an object.
type Moved struct {
	ID   int
	Kind ObjectKind
	Item ItemKind
	From Coord
	To   Coord
}

// Spawned is emitted when a new object appears on the board.
type Spawned struct {
	ID   int
	Kind ObjectKind
	Item ItemKind
	Pos  Coord
}

// SinkCollected is emitted when a sink reaches the bottom of its column.
type SinkCollected struct {
	Pos Coord
}

// NoMovesLeft is emitted when the board has fewer possible moves than the
// configured threshold.
type NoMovesLeft struct {
	Possible int
}

// Reshuffled is emitted after a stuck board was rebuilt.
type Reshuffled struct{}

// TurnEnded is emitted when input is enabled again.
type TurnEnded struct {
	Cascades int
	Popped   int
}

func (MoveMade) event()        {}
func (Swapped) event()         {}
func (Reverted) event()        {}
func (MatchesMade) event()     {}
func (ObstacleDamaged) event() {}
func (LayerBroken) event()     {}
func (Popped) event()          {}
func (Moved) event()           {}
func (Spawned) event()         {}
func (SinkCollected) event()   {}
func (NoMovesLeft) event()     {}
func (Reshuffled) event()      {}
func (TurnEnded) event()       {}

// Observer receives engine events.
type Observer interface {
	OnEvent(ev Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ev Event)

// OnEvent calls f.
func (f ObserverFunc) OnEvent(ev Event) { f(ev) }

// Presenter is the narrow surface a visual or audio layer implements.
type Presenter interface {
	Spawn(item ItemKind, pos Coord)
	Despawn(pos Coord)
	NotifyMatchEffect(positions []Coord)
	NotifyObstacleDamaged(pos Coord, health int)
}

// SinkItem is the item a presenter receives for a sink.
const SinkItem ItemKind = "<sink>"

// PresentedItem returns the item a presenter should draw for an object.
func PresentedItem(kind ObjectKind, item ItemKind) ItemKind {
	if kind == KindSink {
		return SinkItem
	}
	return item
}

// PresenterObserver forwards engine events to a Presenter.
type PresenterObserver struct {
	P Presenter
}

// OnEvent translates ev into presenter calls.
func (o PresenterObserver) OnEvent(ev Event) {
	switch e := ev.(type) {
	case Spawned:
		o.P.Spawn(PresentedItem(e.Kind, e.Item), e.Pos)
	case Popped:
		o.P.Despawn(e.Pos)
	case Moved:
		o.P.Despawn(e.From)
		o.P.Spawn(PresentedItem(e.Kind, e.Item), e.To)
	case Swapped:
		o.exchange(e.A, e.B, e.AtA, e.AtB)
	case Reverted:
		o.exchange(e.A, e.B, e.AtA, e.AtB)
	case MatchesMade:
		positions := make([]Coord, len(e.Tiles))
		for i, t := range e.Tiles {
			positions[i] = t.Pos
		}
		o.P.NotifyMatchEffect(positions)
	case ObstacleDamaged:
		o.P.NotifyObstacleDamaged(e.Pos, e.Health)
	case LayerBroken:
		o.P.Despawn(e.Pos)
	case SinkCollected:
		o.P.Despawn(e.Pos)
	}
}

func (o PresenterObserver) exchange(a, b Coord, atA, atB ItemKind) {
	o.P.Despawn(a)
	o.P.Despawn(b)
	o.P.Spawn(atA, a)
	o.P.Spawn(atB, b)
}
