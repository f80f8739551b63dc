package core

import (
	"io"

	"github.com/charmbracelet/log"
)

// Phase is the resolution engine's state.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseSwapping
	PhaseEvaluating
	PhaseReverting
	PhasePopping
	PhaseFalling
	PhaseRepopulating
	PhaseCascadeCheck
	PhaseSolvabilityCheck
	PhaseNoMovesLeft
)

var phaseNames = [...]string{
	PhaseIdle:             "idle",
	PhaseSwapping:         "swapping",
	PhaseEvaluating:       "evaluating",
	PhaseReverting:        "reverting",
	PhasePopping:          "popping",
	PhaseFalling:          "falling",
	PhaseRepopulating:     "repopulating",
	PhaseCascadeCheck:     "cascade-check",
	PhaseSolvabilityCheck: "solvability-check",
	PhaseNoMovesLeft:      "no-moves-left",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// StuckPolicy decides what happens when too few moves remain after a turn.
type StuckPolicy string

const (
	// StuckReport emits NoMovesLeft and keeps the board.
	StuckReport StuckPolicy = "report"
	// StuckReshuffle rebuilds every matchable piece.
	StuckReshuffle StuckPolicy = "reshuffle"
)

// maxSettleSteps bounds a single Settle call.
const maxSettleSteps = 100000

// EngineConfig holds the tunables of the resolution engine.
type EngineConfig struct {
	MinMatchCount      int
	MinPossibleMatches int
	MaxItemAttempts    int
	MaxPairAttempts    int
	MaxSpawnAttempts   int
	MaxSetupAttempts   int
	Stuck              StuckPolicy
	SinkColumns        []int
}

// DefaultEngineConfig returns the default engine configuration.
func DefaultEngineConfig() EngineConfig {
	gp := DefaultGenParams()
	return EngineConfig{
		MinMatchCount:      DefaultMinMatchCount,
		MinPossibleMatches: gp.MinPossibleMatches,
		MaxItemAttempts:    gp.MaxItemAttempts,
		MaxPairAttempts:    gp.MaxPairAttempts,
		MaxSpawnAttempts:   10,
		MaxSetupAttempts:   50,
		Stuck:              StuckReshuffle,
	}
}

// Engine runs turns on a board. A turn is a finite sequence of steps: each
// Advance call applies one step (one pop, one gravity wave, one refill...) and
// dispatches the events it produced. Input is closed from the moment a swap
// is accepted until the turn has fully settled.
type Engine struct {
	board   *Board
	det     Detector
	gen     *Generator
	palette Palette
	rng     RNG
	cfg     EngineConfig
	logger  *log.Logger

	phase       Phase
	canInteract bool
	swap        Move
	popQueue    []Coord
	cascade     int
	popped      int

	queue      []Event
	observers  []Observer
	sinkDemand func() int
}

// NewEngine creates an engine for board. Call Setup before the first swap.
// A nil logger discards output.
func NewEngine(board *Board, palette Palette, cfg EngineConfig, rng RNG, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.MaxSetupAttempts < 1 {
		cfg.MaxSetupAttempts = 1
	}
	if cfg.MaxSpawnAttempts < 1 {
		cfg.MaxSpawnAttempts = 1
	}
	if cfg.Stuck == "" {
		cfg.Stuck = StuckReport
	}
	det := NewDetector(cfg.MinMatchCount)
	gen := NewGenerator(det, GenParams{
		MinPossibleMatches: cfg.MinPossibleMatches,
		MaxItemAttempts:    cfg.MaxItemAttempts,
		MaxPairAttempts:    cfg.MaxPairAttempts,
	})
	return &Engine{
		board:   board,
		det:     det,
		gen:     gen,
		palette: palette,
		rng:     rng,
		cfg:     cfg,
		logger:  logger,
	}
}

// Board returns the board the engine drives.
func (e *Engine) Board() *Board { return e.board }

// Detector returns the engine's match detector.
func (e *Engine) Detector() Detector { return e.det }

// Phase returns the current phase.
func (e *Engine) Phase() Phase { return e.phase }

// CanInteract reports whether a swap would be accepted.
func (e *Engine) CanInteract() bool { return e.canInteract }

// Idle reports whether no turn is in flight and input is open.
func (e *Engine) Idle() bool { return e.phase == PhaseIdle && e.canInteract }

// Settled reports whether no turn is in flight: the board is idle or stuck
// without moves.
func (e *Engine) Settled() bool {
	return e.phase == PhaseIdle || e.phase == PhaseNoMovesLeft
}

// Subscribe registers an observer for all future events.
func (e *Engine) Subscribe(o Observer) {
	e.observers = append(e.observers, o)
}

// SetSinkDemand installs the callback that says how many more sinks the run
// still needs. Without one no sinks are spawned.
func (e *Engine) SetSinkDemand(f func() int) {
	e.sinkDemand = f
}

// PossibleMoves returns the swaps that would currently match.
func (e *Engine) PossibleMoves() []Move {
	return e.det.FindPossibleMoves(e.board)
}

// Setup fills every empty tile with a starting layout that has no immediate
// matches and at least MinPossibleMatches possible moves. It gives up after
// MaxSetupAttempts with ErrSetupExhausted and leaves the board untouched.
func (e *Engine) Setup() error {
	defer e.flush()
	e.canInteract = false
	for attempt := 1; attempt <= e.cfg.MaxSetupAttempts; attempt++ {
		res, err := e.gen.Generate(e.board, e.palette, e.rng)
		if err != nil {
			return err
		}
		view := NewLayoutView(e.board, res.Layout)
		immediate := len(e.det.FindImmediateMatches(view))
		moves := len(e.det.FindPossibleMoves(view))
		if immediate == 0 && moves >= e.cfg.MinPossibleMatches {
			for _, pos := range e.board.Materialize(res.Layout) {
				e.emitSpawn(pos)
			}
			e.phase = PhaseIdle
			e.canInteract = true
			e.logger.Debug("board ready", "attempt", attempt, "moves", moves, "pairs", len(res.Pairs))
			return nil
		}
		e.logger.Debug("layout rejected", "attempt", attempt, "immediate", immediate, "moves", moves, "degraded", res.Degraded)
	}
	return ErrSetupExhausted
}

// RequestSwap starts a turn swapping the occupants of a and b. It returns
// false, changing nothing, unless input is open and both tiles are adjacent,
// valid and hold selectable objects.
func (e *Engine) RequestSwap(a, b Coord) bool {
	if !e.canInteract || e.phase != PhaseIdle || !a.Adjacent(b) {
		return false
	}
	ta, tb := e.board.Tile(a), e.board.Tile(b)
	if !e.board.CanSelect(ta) || !e.board.CanSelect(tb) {
		return false
	}
	ta.object.interacting = true
	tb.object.interacting = true
	e.canInteract = false
	e.swap = Move{A: a, B: b}
	e.cascade = 0
	e.popped = 0
	e.phase = PhaseSwapping
	return true
}

// Advance applies one step of the turn in flight and reports whether more
// steps remain.
func (e *Engine) Advance() bool {
	defer e.flush()
	switch e.phase {
	case PhaseSwapping:
		e.stepSwap()
	case PhaseEvaluating:
		e.stepEvaluate()
	case PhaseReverting:
		e.stepRevert()
	case PhasePopping:
		e.stepPop()
	case PhaseFalling:
		e.stepFall()
	case PhaseRepopulating:
		e.refill()
		e.phase = PhaseCascadeCheck
	case PhaseCascadeCheck:
		e.stepCascadeCheck()
	case PhaseSolvabilityCheck:
		e.stepSolvability()
	default:
		return false
	}
	return e.phase != PhaseIdle && e.phase != PhaseNoMovesLeft
}

// Settle runs the turn in flight to completion and returns the number of
// steps taken.
func (e *Engine) Settle() int {
	steps := 0
	for e.Advance() {
		steps++
		if steps >= maxSettleSteps {
			e.logger.Error("turn did not settle", "phase", e.phase, "steps", steps)
			break
		}
	}
	return steps
}

// Reshuffle replaces every matchable piece with a fresh valid layout.
// Obstacles and sinks keep their tiles and health. It is allowed while idle
// or stuck; on failure the previous pieces are restored.
func (e *Engine) Reshuffle() error {
	if e.phase != PhaseIdle && e.phase != PhaseNoMovesLeft && e.phase != PhaseSolvabilityCheck {
		return nil
	}
	defer e.flush()

	wasOpen := e.canInteract
	snapshot := e.board.Assignment()
	for pos := range snapshot {
		if obj := e.board.Remove(pos); obj != nil {
			e.emit(Popped{Pos: pos, Item: obj.Item})
		}
	}
	if err := e.Setup(); err != nil {
		for _, pos := range e.board.Materialize(snapshot) {
			e.emitSpawn(pos)
		}
		e.canInteract = wasOpen
		return err
	}
	e.emit(Reshuffled{})
	return nil
}

func (e *Engine) stepSwap() {
	a, b := e.swap.A, e.swap.B
	e.board.Swap(a, b)
	e.emitSwap(false)
	e.emit(MoveMade{A: a, B: b})
	e.phase = PhaseEvaluating
}

func (e *Engine) stepEvaluate() {
	a, b := e.swap.A, e.swap.B
	matched := e.det.FindMatchesWithTile(e.board, a)
	matched.Union(e.det.FindMatchesWithTile(e.board, b))
	e.release(a, b)
	if len(matched) == 0 {
		e.phase = PhaseReverting
		return
	}
	e.cascade = 1
	e.beginPop(matched)
}

func (e *Engine) stepRevert() {
	e.board.Swap(e.swap.A, e.swap.B)
	e.emitSwap(true)
	e.endTurn()
}

// beginPop reports a match wave, damages the obstacles next to it and queues
// the matched tiles for popping.
func (e *Engine) beginPop(matched TileSet) {
	coords := matched.Sorted()
	tiles := make([]MatchedTile, 0, len(coords))
	for _, c := range coords {
		item, _ := e.board.KindAt(c)
		tiles = append(tiles, MatchedTile{Pos: c, Item: item})
	}
	e.emit(MatchesMade{Tiles: tiles, Cascade: e.cascade})
	e.damageObstacles(matched)
	e.popQueue = coords
	e.phase = PhasePopping
}

// damageObstacles removes one health from every obstacle adjacent to the
// match, once per wave however many matched tiles touch it.
func (e *Engine) damageObstacles(matched TileSet) {
	hit := make(TileSet)
	for c := range matched {
		for _, d := range AllDirs {
			n := c.Step(d)
			t := e.board.Tile(n)
			if e.board.IsValidTile(t) && t.object != nil && t.object.Kind == KindObstacle {
				hit.Add(n)
			}
		}
	}
	for _, pos := range hit.Sorted() {
		obj := e.board.Tile(pos).object
		broke := obj.Damage()
		e.emit(ObstacleDamaged{Pos: pos, Health: obj.Health, MaxHealth: obj.MaxHealth})
		if broke {
			e.board.Remove(pos)
			e.emit(LayerBroken{Pos: pos})
		}
	}
}

func (e *Engine) stepPop() {
	if len(e.popQueue) > 0 {
		pos := e.popQueue[0]
		e.popQueue = e.popQueue[1:]
		if obj := e.board.Remove(pos); obj != nil {
			e.emit(Popped{Pos: pos, Item: obj.Item})
			e.popped++
		}
	}
	if len(e.popQueue) == 0 {
		e.phase = PhaseFalling
	}
}

func (e *Engine) stepFall() {
	moves := e.board.fallWave()
	for _, mv := range moves {
		e.emit(mv)
	}
	collected := e.board.collectSinks()
	for _, sc := range collected {
		e.emit(sc)
	}
	if len(moves) == 0 && len(collected) == 0 {
		e.phase = PhaseRepopulating
	}
}

// refill drops in any sinks the run still needs, then fills the remaining
// empty tiles. Candidate layouts that would complete a run with a new piece
// are retried; after MaxSpawnAttempts the least matching one is used.
func (e *Engine) refill() {
	e.spawnSinks()

	var best GenResult
	bestBad := -1
	for attempt := 0; attempt < e.cfg.MaxSpawnAttempts; attempt++ {
		res, err := e.gen.Generate(e.board, e.palette, e.rng)
		if err != nil {
			e.logger.Error("refill failed", "err", err)
			return
		}
		bad := e.spawnMatches(res.Layout)
		if bestBad < 0 || bad < bestBad {
			best, bestBad = res, bad
		}
		if bad == 0 {
			break
		}
	}
	if bestBad > 0 || best.Degraded > 0 {
		e.logger.Warn("refill degraded", "matching", bestBad, "degraded", best.Degraded)
	}
	for _, pos := range e.board.Materialize(best.Layout) {
		e.emitSpawn(pos)
	}
}

// spawnMatches counts new pieces of l that would sit in an immediate run.
func (e *Engine) spawnMatches(l Layout) int {
	n := 0
	for c := range e.det.FindImmediateMatches(NewLayoutView(e.board, l)) {
		if _, ok := l[c]; ok {
			n++
		}
	}
	return n
}

func (e *Engine) spawnSinks() {
	if e.sinkDemand == nil || len(e.cfg.SinkColumns) == 0 {
		return
	}
	need := e.sinkDemand() - e.board.ObjectCount(KindSink)
	for _, x := range e.cfg.SinkColumns {
		if need <= 0 {
			return
		}
		t := e.board.topActiveTile(x)
		if t == nil || t.object != nil {
			continue
		}
		e.board.SetObjectAt(t, NewSink())
		e.emitSpawn(t.Pos)
		need--
	}
}

func (e *Engine) stepCascadeCheck() {
	matched := e.det.FindImmediateMatches(e.board)
	if len(matched) == 0 {
		e.phase = PhaseSolvabilityCheck
		return
	}
	e.cascade++
	e.beginPop(matched)
}

func (e *Engine) stepSolvability() {
	moves := len(e.det.FindPossibleMoves(e.board))
	if moves >= e.cfg.MinPossibleMatches {
		e.endTurn()
		return
	}
	if e.cfg.Stuck == StuckReshuffle {
		err := e.Reshuffle()
		if err == nil {
			e.logger.Info("board reshuffled", "moves", moves)
			e.endTurn()
			return
		}
		e.logger.Error("reshuffle failed", "err", err)
	}
	e.emit(NoMovesLeft{Possible: moves})
	if moves == 0 {
		e.phase = PhaseNoMovesLeft
		e.canInteract = false
		return
	}
	e.endTurn()
}

func (e *Engine) endTurn() {
	e.emit(TurnEnded{Cascades: e.cascade, Popped: e.popped})
	e.phase = PhaseIdle
	e.canInteract = true
	e.popQueue = nil
}

func (e *Engine) release(coords ...Coord) {
	for _, c := range coords {
		if t := e.board.Tile(c); t != nil && t.object != nil {
			t.object.interacting = false
		}
	}
}

func (e *Engine) emitSwap(revert bool) {
	a, b := e.swap.A, e.swap.B
	atA, _ := e.board.KindAt(a)
	atB, _ := e.board.KindAt(b)
	if revert {
		e.emit(Reverted{A: a, B: b, AtA: atA, AtB: atB})
		return
	}
	e.emit(Swapped{A: a, B: b, AtA: atA, AtB: atB})
}

func (e *Engine) emitSpawn(pos Coord) {
	obj := e.board.Tile(pos).object
	e.emit(Spawned{ID: obj.ID, Kind: obj.Kind, Item: obj.Item, Pos: pos})
}

func (e *Engine) emit(ev Event) {
	e.queue = append(e.queue, ev)
}

// flush dispatches queued events in emission order.
func (e *Engine) flush() {
	for len(e.queue) > 0 {
		batch := e.queue
		e.queue = nil
		for _, ev := range batch {
			for _, o := range e.observers {
				o.OnEvent(ev)
			}
		}
	}
}
