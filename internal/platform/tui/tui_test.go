package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-match3/internal/core"
	m3core "github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// stubGame finishes after a fixed number of steps.
type stubGame struct {
	steps    int
	finishAt int
	outcome  core.Outcome
	paused   bool
	level    string
	idle     bool // Finishes without a move
	lastIn   core.InputFrame
	resets   int
}

func (g *stubGame) ID() string { return "stub" }
func (g *stubGame) Title() string { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig) { g.steps = 0; g.resets++ }
func (g *stubGame) Resize(int, int) {}
func (g *stubGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "stub") }
func (g *stubGame) LevelID() string { return g.level }
func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.lastIn = in
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	return core.StepResult{State: g.State()}
}

func (g *stubGame) State() core.GameState {
	st := core.GameState{Score: 10 * g.steps, Moves: g.steps, Matches: 3 * g.steps, Elapsed: 1.5, Paused: g.paused}
	if g.idle {
		st.Moves = 0
	}
	if g.finishAt > 0 && g.steps >= g.finishAt {
		st.GameOver = true
		st.Outcome = g.outcome
	}
	return st
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testLevels(ids ...string) []levels.Level {
	out := make([]levels.Level, len(ids))
	for i, id := range ids {
		out[i] = levels.Level{LevelDef: &m3core.LevelDef{ID: id, Name: "Level " + id}}
	}
	return out
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key    string
		action core.Action
		quit   bool
	}{
		{"up", core.ActionUp, false},
		{"a", core.ActionLeft, false},
		{"d", core.ActionRight, false},
		{"enter", core.ActionConfirm, false},
		{" ", core.ActionConfirm, false},
		{"esc", core.ActionBack, false},
		{"h", core.ActionHint, false},
		{"x", core.ActionShuffle, false},
		{"r", core.ActionRestart, false},
		{"q", core.ActionQuit, true},
		{"z", core.ActionNone, false},
	}
	for _, tt := range tests {
		action, quit := km.MapKey(keyMsg(tt.key))
		if action != tt.action || quit != tt.quit {
			t.Errorf("MapKey(%q) = %v, %v; expected %v, %v", tt.key, action, quit, tt.action, tt.quit)
		}
	}

	if got := km.MapKeyToMenuAction(keyMsg("tab")); got != MenuActionScoreboard {
		t.Errorf("tab should open the scoreboard, got %v", got)
	}
	if got := km.MapKeyToMenuAction(keyMsg("j")); got != MenuActionDown {
		t.Errorf("j should move down, got %v", got)
	}
}

func TestMapMouseToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	km.MapMouseToFrame(tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}, &frame)
	if frame.Clicked {
		t.Error("release should not click")
	}

	km.MapMouseToFrame(tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, &frame)
	if !frame.Clicked || frame.Click != (core.Point{X: 3, Y: 4}) {
		t.Errorf("expected click at (3,4), got %+v", frame)
	}
}

func TestGameModelSavesResultOnce(t *testing.T) {
	store := openStore(t)
	game := &stubGame{finishAt: 3, outcome: core.OutcomeWon, level: "lvl02"}
	m := NewGameModel(game, store, core.DefaultConfig(), nil)

	var model tea.Model = m
	for i := 0; i < 6; i++ {
		model, _ = model.Update(TickMsg{})
	}

	results, err := store.TopResults("lvl02", 10)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected exactly one stored result, got %d", len(results))
	}
	r := results[0]
	if !r.Won() || r.Score != 30 || r.Moves != 3 || r.Matches != 9 || r.Duration.Seconds() != 1.5 {
		t.Errorf("unexpected result %+v", r)
	}
}

func TestGameModelSkipsUnplayedLevels(t *testing.T) {
	store := openStore(t)
	game := &stubGame{finishAt: 1, outcome: core.OutcomeLost, level: "lvl01", idle: true}
	m := NewGameModel(game, store, core.DefaultConfig(), nil)

	m.Update(TickMsg{})

	results, _ := store.RecentResults(10)
	if len(results) != 0 {
		t.Errorf("expected no stored results, got %d", len(results))
	}
}

func TestGameModelInputAndBack(t *testing.T) {
	game := &stubGame{level: "lvl01"}
	var model tea.Model = NewGameModel(game, nil, core.DefaultConfig(), nil)

	model, _ = model.Update(keyMsg("esc"))
	if model.(GameModel).BackToMenu() {
		t.Fatal("esc during play should only deselect")
	}
	model, _ = model.Update(tea.MouseMsg{X: 5, Y: 6, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	model, _ = model.Update(TickMsg{})
	if !game.lastIn.Has(core.ActionBack) || !game.lastIn.Clicked {
		t.Errorf("input was not forwarded: %+v", game.lastIn)
	}

	model, _ = model.Update(keyMsg("p"))
	model, _ = model.Update(TickMsg{})
	model, _ = model.Update(keyMsg("esc"))
	if !model.(GameModel).BackToMenu() {
		t.Error("esc while paused should return to the menu")
	}

	_, cmd := model.Update(keyMsg("q"))
	if cmd == nil {
		t.Error("q should quit")
	}
}

func TestMenuNavigation(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveResult(storage.LevelResult{LevelID: "b", Outcome: storage.OutcomeWon, Score: 120, Moves: 4}); err != nil {
		t.Fatal(err)
	}

	var model tea.Model = NewMenuModel(testLevels("a", "b", "c"), store, core.DefaultConfig())
	if got := model.(MenuModel).items[1]; got.Wins != 1 || got.BestScore != 120 {
		t.Errorf("expected stats on level b, got %+v", got)
	}

	model, _ = model.Update(keyMsg("up"))
	model, _ = model.Update(keyMsg("down"))
	model, _ = model.Update(keyMsg("down"))
	model, _ = model.Update(keyMsg("down"))
	model, _ = model.Update(keyMsg("down"))
	if c := model.(MenuModel).cursor; c != 2 {
		t.Fatalf("cursor should stop on the last level, got %d", c)
	}

	model, _ = model.Update(keyMsg("enter"))
	sel := model.(MenuModel).Selected()
	if sel == nil || sel.ID != "c" {
		t.Errorf("expected level c selected, got %+v", sel)
	}
}

func TestCenterTextIgnoresStyling(t *testing.T) {
	styled := GetTheme().MenuTitle.Render("abcd")
	got := centerText(styled, 10)
	if got[:3] != "   " {
		t.Errorf("expected 3 spaces of padding, got %q", got)
	}
	if centerText("too long", 4) != "too long" {
		t.Error("text wider than the screen is returned as is")
	}
}

func TestThemeByName(t *testing.T) {
	for _, name := range []string{"", "default", "neon", "mono"} {
		if _, ok := ThemeByName(name); !ok {
			t.Errorf("expected theme %q", name)
		}
	}
	if _, ok := ThemeByName("plaid"); ok {
		t.Error("unknown theme should not resolve")
	}
}

func TestCellStyleFollowsTheme(t *testing.T) {
	if got := cellStyle(DefaultTheme(), core.ColorRed).GetForeground(); got != lipgloss.Color("1") {
		t.Errorf("default red = %v", got)
	}
	if got := cellStyle(NeonTheme(), core.ColorRed).GetForeground(); got != lipgloss.Color("9") {
		t.Errorf("neon red = %v", got)
	}
	if got := cellStyle(NeonTheme(), core.ColorGray).GetForeground(); got != lipgloss.Color("245") {
		t.Errorf("neon gray falls back to the default palette, got %v", got)
	}

	mono := MonochromeTheme()
	if got := cellStyle(mono, core.ColorRed).GetForeground(); got != (lipgloss.NoColor{}) {
		t.Errorf("mono red = %v", got)
	}
	if !cellStyle(mono, core.ColorBrightYellow).GetBold() {
		t.Error("mono bright colors should be bold")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	defer SetTheme(DefaultTheme())
	SetTheme(MonochromeTheme())

	s := core.NewScreen(6, 2)
	s.DrawTextWithColor(0, 0, "ab", core.ColorRed)
	s.DrawTextWithColor(2, 0, "cd", core.ColorBrightRed)
	s.DrawText(0, 1, "xyz")

	want := "abcd  \nxyz   "
	if got := RenderScreen(s); got != want {
		t.Errorf("RenderScreen = %q, want %q", got, want)
	}
}

func TestScoreboardCyclesLevels(t *testing.T) {
	store := openStore(t)
	for _, score := range []int{50, 200} {
		if _, err := store.SaveResult(storage.LevelResult{LevelID: "b", Outcome: storage.OutcomeLost, Score: score, Moves: 2}); err != nil {
			t.Fatal(err)
		}
	}

	var model tea.Model = NewScoreboardModel(testLevels("a", "b"), store, "", 100, 30)
	if n := len(model.(ScoreboardModel).results); n != 0 {
		t.Fatalf("level a has no results, got %d", n)
	}

	model, _ = model.Update(keyMsg("tab"))
	sb := model.(ScoreboardModel)
	if sb.levelCursor != 1 || len(sb.results) != 2 || sb.results[0].Score != 200 {
		t.Errorf("expected level b results, got cursor %d results %+v", sb.levelCursor, sb.results)
	}
	if sb.statsLine() != "Attempts 2 | Wins 0 (0%)" {
		t.Errorf("unexpected stats line %q", sb.statsLine())
	}

	model, _ = model.Update(keyMsg("tab"))
	if c := model.(ScoreboardModel).levelCursor; c != 0 {
		t.Errorf("level cursor should wrap, got %d", c)
	}

	model, _ = model.Update(keyMsg("esc"))
	if !model.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}

func TestSessionModelFlow(t *testing.T) {
	game := &stubGame{level: "b"}
	registry.Register("tui-session-stub", "Stub", func(opts registry.Options) (registry.Game, error) {
		game.level = opts.Level
		return game, nil
	})

	opts := SessionOptions{GameID: "tui-session-stub", Levels: testLevels("a", "b")}
	var model tea.Model = NewSessionModel(opts, core.DefaultConfig())

	model, _ = model.Update(keyMsg("tab"))
	if s := model.(SessionModel).screen; s != screenScoreboard {
		t.Fatalf("tab should open the scoreboard, screen %v", s)
	}
	model, _ = model.Update(keyMsg("esc"))
	if s := model.(SessionModel).screen; s != screenMenu {
		t.Fatalf("esc should return to the menu, screen %v", s)
	}

	model, _ = model.Update(keyMsg("down"))
	model, cmd := model.Update(keyMsg("enter"))
	sess := model.(SessionModel)
	if sess.screen != screenGame || game.level != "b" {
		t.Fatalf("expected level b in play, screen %v level %q", sess.screen, game.level)
	}
	if cmd == nil {
		t.Error("starting a level should start the tick loop")
	}

	model, _ = model.Update(keyMsg("p"))
	model, _ = model.Update(TickMsg{})
	model, _ = model.Update(keyMsg("esc"))
	sess = model.(SessionModel)
	if sess.screen != screenMenu {
		t.Fatalf("expected menu after leaving the game, screen %v", sess.screen)
	}
	if sess.menu.cursor != 1 {
		t.Errorf("menu cursor should rest on the last level, got %d", sess.menu.cursor)
	}

	_, cmd = model.Update(keyMsg("q"))
	if cmd == nil {
		t.Error("q should quit the session")
	}
}
