package match3

import "github.com/vovakirdan/tui-match3/internal/games/match3/core"

// effects is the game's presenter: it remembers which tiles were recently
// spawned, matched or hit so the renderer can flash them.
type effects struct {
	ttl     int
	fresh   map[core.Coord]int
	popping map[core.Coord]int
	hit     map[core.Coord]int
}

func newEffects(ttl int) *effects {
	return &effects{
		ttl:     max(ttl, 1),
		fresh:   make(map[core.Coord]int),
		popping: make(map[core.Coord]int),
		hit:     make(map[core.Coord]int),
	}
}

func (e *effects) Spawn(_ core.ItemKind, pos core.Coord) {
	e.fresh[pos] = e.ttl
}

func (e *effects) Despawn(pos core.Coord) {
	delete(e.fresh, pos)
}

func (e *effects) NotifyMatchEffect(positions []core.Coord) {
	for _, p := range positions {
		e.popping[p] = e.ttl
	}
}

func (e *effects) NotifyObstacleDamaged(pos core.Coord, _ int) {
	e.hit[pos] = e.ttl
}

// decay ages every effect by one tick.
func (e *effects) decay() {
	for _, m := range []map[core.Coord]int{e.fresh, e.popping, e.hit} {
		for p, n := range m {
			if n <= 1 {
				delete(m, p)
			} else {
				m[p] = n - 1
			}
		}
	}
}

func (e *effects) clear() {
	clear(e.fresh)
	clear(e.popping)
	clear(e.hit)
}
