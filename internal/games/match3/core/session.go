package core

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// SessionConfig configures a level session.
type SessionConfig struct {
	Engine    EngineConfig
	Scoring   Scoring
	MoveScale float64 // Multiplier on move_limit budgets; 0 keeps them
	TimeScale float64 // Multiplier on time_limit budgets; 0 keeps them
	Seed      uint64
}

// DefaultSessionConfig returns the default session configuration.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Engine:    DefaultEngineConfig(),
		Scoring:   DefaultScoring(),
		MoveScale: 1,
		TimeScale: 1,
	}
}

// Session plays one attempt at a level: it builds the board, runs the setup
// loop, wires the run tracker to the engine and turns player input into swap
// requests. Every method is a no-op until Start succeeds.
type Session struct {
	level  *LevelDef
	cfg    SessionConfig
	logger *log.Logger

	engine    *Engine
	run       *Run
	observers []Observer

	selected    Coord
	hasSelected bool
}

// NewSession creates a session for level. A nil logger discards output.
func NewSession(level *LevelDef, cfg SessionConfig, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{level: level, cfg: cfg, logger: logger}
}

// Subscribe registers an observer of engine events. Observers added before
// Start also see the initial spawn events.
func (s *Session) Subscribe(o Observer) {
	s.observers = append(s.observers, o)
	if s.engine != nil {
		s.engine.Subscribe(o)
	}
}

// Start sets the level up. On failure the session stays not started; the
// seed moves on so that calling Start again tries different layouts.
func (s *Session) Start() error {
	if s.engine != nil {
		return nil
	}
	if s.level == nil {
		s.logger.Error("no level assigned")
		return ErrNoLevel
	}
	lvl := s.level

	objectives := make([]Objective, 0, len(lvl.Objectives))
	for _, spec := range lvl.Objectives {
		o, err := NewObjective(spec)
		if err != nil {
			s.logger.Error("invalid objective", "level", lvl.ID, "err", err)
			return fmt.Errorf("level %s: %w", lvl.ID, err)
		}
		objectives = append(objectives, o)
	}
	lose := make([]LoseCondition, 0, len(lvl.LoseConditions))
	for _, spec := range lvl.LoseConditions {
		l, err := NewLoseCondition(spec.Scaled(s.cfg.MoveScale, s.cfg.TimeScale))
		if err != nil {
			s.logger.Error("invalid lose condition", "level", lvl.ID, "err", err)
			return fmt.Errorf("level %s: %w", lvl.ID, err)
		}
		lose = append(lose, l)
	}

	ecfg := s.cfg.Engine
	if lvl.MinPossibleMatches > 0 {
		ecfg.MinPossibleMatches = lvl.MinPossibleMatches
	}
	ecfg.SinkColumns = lvl.SinkColumns

	run := NewRun(objectives, lose, s.cfg.Scoring)
	eng := NewEngine(lvl.BuildBoard(), lvl.Palette, ecfg, NewRNG(s.cfg.Seed), s.logger.With("level", lvl.ID))
	eng.Subscribe(run)
	for _, o := range s.observers {
		eng.Subscribe(o)
	}
	eng.SetSinkDemand(run.SinksNeeded)

	if err := eng.Setup(); err != nil {
		s.logger.Error("level setup failed", "level", lvl.ID, "seed", s.cfg.Seed, "err", err)
		s.cfg.Seed = NewRNG(s.cfg.Seed).Next()
		return fmt.Errorf("level %s: %w", lvl.ID, err)
	}
	s.engine, s.run = eng, run
	s.logger.Info("level started", "level", lvl.ID, "seed", s.cfg.Seed)
	return nil
}

// Seed returns the seed the next Start uses, or the running attempt's seed.
func (s *Session) Seed() uint64 { return s.cfg.Seed }

// Level returns the level definition, which may be nil.
func (s *Session) Level() *LevelDef { return s.level }

// Engine returns the engine, or nil before Start.
func (s *Session) Engine() *Engine { return s.engine }

// Run returns the run tracker, or nil before Start.
func (s *Session) Run() *Run { return s.run }

// Board returns the board, or nil before Start.
func (s *Session) Board() *Board {
	if s.engine == nil {
		return nil
	}
	return s.engine.Board()
}

// Status returns the run outcome state.
func (s *Session) Status() Status {
	if s.run == nil {
		return StatusNotStarted
	}
	return s.run.Status()
}

// Playing reports whether the run is still undecided.
func (s *Session) Playing() bool {
	return s.Status() == StatusPlaying
}

// Stuck reports whether the board has no possible move left.
func (s *Session) Stuck() bool {
	return s.engine != nil && s.engine.Phase() == PhaseNoMovesLeft
}

// Swap requests a swap of a and b. It returns false when the run is over,
// a turn is in flight or the swap is not allowed.
func (s *Session) Swap(a, b Coord) bool {
	if !s.Playing() {
		return false
	}
	s.Deselect()
	return s.engine.RequestSwap(a, b)
}

// Selected returns the selected tile, if any.
func (s *Session) Selected() (Coord, bool) {
	return s.selected, s.hasSelected
}

// SelectAt handles a tap on pos: the first tap selects, a tap on a neighbour
// swaps, a tap on the same tile deselects and a tap elsewhere moves the
// selection. It returns true when a swap was requested.
func (s *Session) SelectAt(pos Coord) bool {
	if !s.Playing() || !s.engine.CanInteract() {
		return false
	}
	b := s.engine.Board()
	if s.hasSelected {
		switch {
		case pos == s.selected:
			s.Deselect()
			return false
		case pos.Adjacent(s.selected):
			return s.Swap(s.selected, pos)
		}
	}
	t := b.Tile(pos)
	if !b.CanSelect(t) {
		return false
	}
	s.Deselect()
	s.selected, s.hasSelected = pos, true
	t.Selected = true
	return false
}

// Deselect clears the selection.
func (s *Session) Deselect() {
	if s.hasSelected && s.engine != nil {
		if t := s.engine.Board().Tile(s.selected); t != nil {
			t.Selected = false
		}
	}
	s.hasSelected = false
}

// SwipeDirection swaps the selected tile with its neighbour in direction d.
func (s *Session) SwipeDirection(d Dir) bool {
	if !s.hasSelected {
		return false
	}
	return s.Swap(s.selected, s.selected.Step(d))
}

// Advance applies one engine step and re-evaluates the run. It reports
// whether more steps remain.
func (s *Session) Advance() bool {
	if s.engine == nil {
		return false
	}
	more := s.engine.Advance()
	s.evaluate()
	return more
}

// Settle runs the turn in flight to completion.
func (s *Session) Settle() {
	if s.engine == nil {
		return
	}
	s.engine.Settle()
	s.evaluate()
}

// Tick passes dt seconds of wall time to the run.
func (s *Session) Tick(dt float64) {
	if s.engine == nil {
		return
	}
	s.run.Tick(dt, s.engine.CanInteract())
	s.evaluate()
}

// Reshuffle rebuilds the pieces of an idle or stuck board.
func (s *Session) Reshuffle() error {
	if !s.Playing() {
		return nil
	}
	err := s.engine.Reshuffle()
	if err != nil {
		s.logger.Warn("reshuffle failed", "level", s.level.ID, "err", err)
	}
	s.evaluate()
	return err
}

// Hint returns a swap that would match right now.
func (s *Session) Hint() (Move, bool) {
	if !s.Playing() || !s.engine.Idle() {
		return Move{}, false
	}
	return BestMove(s.engine.Board(), s.engine.Detector())
}

func (s *Session) evaluate() {
	s.run.Evaluate(s.engine.Settled())
}
