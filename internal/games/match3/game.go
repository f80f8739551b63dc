// Package match3 provides the match-3 puzzle game for the terminal host.
package match3

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/config"
	platformcore "github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

// GameID is the registry identifier of the match-3 game.
const GameID = "match3"

// maxStepsPerTick bounds zero-delay engine steps applied in a single tick.
const maxStepsPerTick = 64

// ErrNoLevels is returned when no playable level could be loaded.
var ErrNoLevels = errors.New("match3: no levels found")

// Game implements the match-3 game on top of a level session.
type Game struct {
	cfg    config.Match3Config
	logger *log.Logger

	levels     []levels.Level
	levelIndex int

	session  *core.Session
	effects  *effects
	setupErr error
	seed     uint64
	started  bool

	// Screen dimensions
	screenW  int
	screenH  int
	tickRate int

	// Status
	tick   uint64
	paused bool
	wait   int // Ticks spent waiting on the current engine step

	// Input state
	cursor    core.Coord
	hint      core.Move
	hintTicks int
	message   string
	msgTicks  int

	layout boardLayout
}

func init() {
	registry.Register(GameID, "Match-3", func(opts registry.Options) (registry.Game, error) {
		return New(opts)
	})
}

// New loads configuration and levels as described by opts and creates a
// game positioned on the requested level.
func New(opts registry.Options) (*Game, error) {
	cfg, err := config.LoadMatch3(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.Difficulty != "" {
		preset, ok := config.ParsePreset(opts.Difficulty)
		if !ok {
			return nil, fmt.Errorf("unknown difficulty %q", opts.Difficulty)
		}
		config.ApplyMatch3Preset(&cfg, preset)
	}

	loader := levels.Embedded()
	if opts.LevelsDir != "" {
		loader = levels.NewDirLoader(opts.LevelsDir)
	}
	loader.Logger = opts.Logger
	lvls, err := loader.LoadAll()
	if err != nil {
		return nil, err
	}

	g, err := NewWithLevels(cfg, lvls, opts.Logger)
	if err != nil {
		return nil, err
	}
	if opts.Level != "" {
		if err := g.SelectLevel(opts.Level); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// NewWithLevels creates a game over an explicit level list. A nil logger
// discards output.
func NewWithLevels(cfg config.Match3Config, lvls []levels.Level, logger *log.Logger) (*Game, error) {
	if len(lvls) == 0 {
		return nil, ErrNoLevels
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		cfg:      cfg,
		logger:   logger,
		levels:   lvls,
		screenW:  80,
		screenH:  24,
		tickRate: 60,
	}, nil
}

// SelectLevel moves to the level with the given ID. A started game restarts
// on that level.
func (g *Game) SelectLevel(id string) error {
	for i, lvl := range g.levels {
		if lvl.ID == id {
			g.levelIndex = i
			if g.started {
				g.startLevel()
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %s", levels.ErrNotFound, id)
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Match-3"
}

// LevelID returns the ID of the level being played.
func (g *Game) LevelID() string {
	return g.levels[g.levelIndex].ID
}

// Session returns the current level session.
func (g *Game) Session() *core.Session {
	return g.session
}

// Reset starts the current level with a fresh seed.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.seed = cfg.Seed
	if cfg.TickRate > 0 {
		g.tickRate = cfg.TickRate
	}
	if cfg.ScreenW > 0 && cfg.ScreenH > 0 {
		g.screenW, g.screenH = cfg.ScreenW, cfg.ScreenH
	}
	g.started = true
	g.startLevel()
}

// Resize adapts the board layout to a new screen size.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	g.calculateLayout()
}

func (g *Game) startLevel() {
	lvl := g.levels[g.levelIndex]

	g.effects = newEffects(g.tickRate / 4)
	g.session = core.NewSession(lvl.LevelDef, SessionSettings(g.cfg, g.seed), g.logger)
	g.session.Subscribe(core.PresenterObserver{P: g.effects})
	g.setupErr = g.session.Start()
	g.seed = NextSeed(g.seed)

	g.paused = false
	g.wait = 0
	g.hintTicks = 0
	g.msgTicks = 0
	g.cursor = firstActive(lvl.Grid)
	g.calculateLayout()
}

// firstActive returns the grid centre when it is active, otherwise the first
// active tile in row-major order.
func firstActive(grid *core.Grid) core.Coord {
	if grid.IsActive(grid.W/2, grid.H/2) {
		return core.C(grid.W/2, grid.H/2)
	}
	for _, c := range grid.Coords() {
		if grid.IsActive(c.X, c.Y) {
			return c
		}
	}
	return core.C(0, 0)
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++
	if !g.started {
		return platformcore.StepResult{State: g.State()}
	}
	g.effects.decay()
	if g.hintTicks > 0 {
		g.hintTicks--
	}
	if g.msgTicks > 0 {
		g.msgTicks--
	}

	switch {
	case g.setupErr != nil:
		if in.Has(platformcore.ActionRestart) || in.Has(platformcore.ActionConfirm) {
			g.startLevel()
		}
		return platformcore.StepResult{State: g.State()}
	case g.decided():
		g.handleDecided(in)
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return platformcore.StepResult{State: g.State()}
	}

	g.handleInput(in)
	g.pace()
	g.session.Tick(1 / float64(g.tickRate))

	return platformcore.StepResult{State: g.State()}
}

func (g *Game) decided() bool {
	st := g.session.Status()
	return st == core.StatusComplete || st == core.StatusFailed
}

func (g *Game) handleDecided(in platformcore.InputFrame) {
	// Finish the turn on screen before accepting menu input.
	g.pace()

	won := g.session.Status() == core.StatusComplete
	switch {
	case in.Has(platformcore.ActionConfirm) && won && g.levelIndex+1 < len(g.levels):
		g.levelIndex++
		g.startLevel()
	case in.Has(platformcore.ActionRestart), in.Has(platformcore.ActionConfirm) && !won:
		g.startLevel()
	}
}

func (g *Game) handleInput(in platformcore.InputFrame) {
	grid := g.session.Board().Grid

	if in.Clicked {
		if pos, ok := g.layout.tileAt(in.Click); ok {
			g.cursor = pos
			g.session.SelectAt(pos)
		}
	}

	for _, m := range []struct {
		action platformcore.Action
		dir    core.Dir
	}{
		{platformcore.ActionUp, core.DirUp},
		{platformcore.ActionDown, core.DirDown},
		{platformcore.ActionLeft, core.DirLeft},
		{platformcore.ActionRight, core.DirRight},
	} {
		if !in.Has(m.action) {
			continue
		}
		if _, selected := g.session.Selected(); selected {
			target := g.cursor.Step(m.dir)
			if g.session.SwipeDirection(m.dir) {
				g.cursor = target
			}
			continue
		}
		next := g.cursor.Step(m.dir)
		next.X = platformcore.Clamp(next.X, 0, grid.W-1)
		next.Y = platformcore.Clamp(next.Y, 0, grid.H-1)
		g.cursor = next
	}

	if in.Has(platformcore.ActionConfirm) {
		g.session.SelectAt(g.cursor)
	}
	if in.Has(platformcore.ActionBack) {
		g.session.Deselect()
	}
	if in.Has(platformcore.ActionHint) {
		if m, ok := g.session.Hint(); ok {
			g.hint = m
			g.hintTicks = 2 * g.tickRate
		} else {
			g.flash("No move to show")
		}
	}
	if in.Has(platformcore.ActionShuffle) {
		if err := g.session.Reshuffle(); err != nil {
			g.flash("Shuffle failed, try again")
		}
	}
}

// pace applies engine steps as their display delay elapses.
func (g *Game) pace() {
	eng := g.session.Engine()
	if eng == nil {
		return
	}
	for i := 0; i < maxStepsPerTick && inTurn(eng.Phase()); i++ {
		if g.wait < stepDelay(g.cfg.Pacing, eng.Phase()) {
			g.wait++
			return
		}
		g.wait = 0
		g.session.Advance()
	}
}

func inTurn(p core.Phase) bool {
	return p != core.PhaseIdle && p != core.PhaseNoMovesLeft
}

func (g *Game) flash(msg string) {
	g.message = msg
	g.msgTicks = 2 * g.tickRate
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	st := platformcore.GameState{Paused: g.paused}
	if g.session == nil {
		return st
	}
	if g.setupErr != nil {
		st.GameOver = true
		st.Outcome = platformcore.OutcomeLost
		return st
	}
	if run := g.session.Run(); run != nil {
		st.Score = run.Score
		st.Moves = run.Moves
		st.Matches = run.Matches
		st.Elapsed = run.Elapsed
	}
	switch g.session.Status() {
	case core.StatusComplete:
		st.GameOver = true
		st.Outcome = platformcore.OutcomeWon
	case core.StatusFailed:
		st.GameOver = true
		st.Outcome = platformcore.OutcomeLost
	}
	return st
}
