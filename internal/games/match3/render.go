package match3

import (
	"fmt"
	"strings"

	platformcore "github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

const (
	hudHeight    = 4
	footerHeight = 2
	cellW        = 3
)

// Glyphs handed out to palette items in order, so items stay distinguishable
// without color.
var itemGlyphs = []rune{'●', '▲', '■', '◆', '★', '♥', '✚', '♣'}

// Fallback colors for items whose name is not a color.
var itemColors = []platformcore.Color{
	platformcore.ColorRed,
	platformcore.ColorGreen,
	platformcore.ColorBlue,
	platformcore.ColorYellow,
	platformcore.ColorMagenta,
	platformcore.ColorCyan,
	platformcore.ColorOrange,
	platformcore.ColorWhite,
}

// boardLayout places the board frame on screen.
type boardLayout struct {
	frame    platformcore.Rect // Includes the border
	tooSmall bool
}

// tileAt maps a screen cell to the board tile drawn there.
func (l boardLayout) tileAt(p platformcore.Point) (core.Coord, bool) {
	inner := platformcore.NewRect(l.frame.X+1, l.frame.Y+1, l.frame.W-2, l.frame.H-2)
	if l.tooSmall || !inner.Contains(p.X, p.Y) {
		return core.Coord{}, false
	}
	return core.C((p.X-inner.X)/cellW, p.Y-inner.Y), true
}

// calculateLayout centers the board between the HUD and the footer.
func (g *Game) calculateLayout() {
	grid := g.levels[g.levelIndex].Grid
	w := grid.W*cellW + 2
	h := grid.H + 2

	area := platformcore.NewRect(0, hudHeight, g.screenW, g.screenH-hudHeight-footerHeight)
	g.layout.tooSmall = area.W < w || area.H < h
	g.layout.frame = area.Centered(w, h)
}

// glyph returns how an item is drawn.
func (g *Game) glyph(item core.ItemKind) (rune, platformcore.Color) {
	items := g.levels[g.levelIndex].Palette.Items()
	idx := 0
	for i, it := range items {
		if it == item {
			idx = i
			break
		}
	}
	color, ok := platformcore.ParseColor(string(item))
	if !ok {
		color = itemColors[idx%len(itemColors)]
	}
	return itemGlyphs[idx%len(itemGlyphs)], color
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	switch {
	case g.session == nil:
		return
	case g.layout.tooSmall:
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	case g.setupErr != nil:
		g.renderOverlay(dst, "Could not set up this level", "Press R to try another layout")
		return
	}

	g.renderBoard(dst)
	g.renderFooter(dst)

	switch {
	case g.session.Status() == core.StatusComplete && !inTurn(g.session.Engine().Phase()):
		next := "Press R to replay"
		if g.levelIndex+1 < len(g.levels) {
			next = "Enter: next level | R: replay"
		}
		g.renderOverlay(dst, fmt.Sprintf("Level complete! Score %d", g.session.Run().Score), next)
	case g.session.Status() == core.StatusFailed && !inTurn(g.session.Engine().Phase()):
		g.renderOverlay(dst, "Level failed", "Press R to retry")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	lvl := g.levels[g.levelIndex]
	hud := fmt.Sprintf(" Match-3 | %s (%d/%d)", lvl.Name, g.levelIndex+1, len(g.levels))
	if g.session != nil && g.session.Run() != nil {
		run := g.session.Run()
		hud += fmt.Sprintf(" | Score: %d", run.Score)
		dst.DrawTextWithColor(0, 2, " "+run.ObjectivesText(), platformcore.ColorBrightWhite)
		if limits := run.LimitsText(); limits != "" {
			dst.DrawTextWithColor(dst.Width()-len([]rune(limits))-1, 2, limits, platformcore.ColorYellow)
		}
	}
	dst.DrawTextWithColor(0, 0, hud, platformcore.ColorCyan)
	dst.DrawHLine(0, 1, dst.Width(), '─', platformcore.ColorGray)
	dst.DrawHLine(0, 3, dst.Width(), '─', platformcore.ColorGray)
}

func (g *Game) renderBoard(dst *platformcore.Screen) {
	b := g.session.Board()
	frame := g.layout.frame
	dst.DrawBox(frame, platformcore.ColorGray)

	hinted := map[core.Coord]bool{}
	if g.hintTicks > 0 {
		hinted[g.hint.A], hinted[g.hint.B] = true, true
	}
	selected, hasSelected := g.session.Selected()

	for _, t := range b.Tiles() {
		if !t.Active {
			continue
		}
		x := frame.X + 1 + t.Pos.X*cellW
		y := frame.Y + 1 + t.Pos.Y
		g.renderTile(dst, x, y, t)

		var left, right rune
		color := platformcore.ColorBrightYellow
		switch {
		case hasSelected && t.Pos == selected:
			left, right = '[', ']'
		case t.Pos == g.cursor:
			left, right = '>', '<'
			color = platformcore.ColorBrightWhite
		case hinted[t.Pos]:
			left, right = '*', '*'
			color = platformcore.ColorBrightMagenta
		}
		if left != 0 {
			dst.SetWithColor(x, y, left, color)
			dst.SetWithColor(x+2, y, right, color)
		}
	}
	// The cursor may rest on an inactive tile.
	if !b.Grid.IsActive(g.cursor.X, g.cursor.Y) {
		x := frame.X + 1 + g.cursor.X*cellW
		y := frame.Y + 1 + g.cursor.Y
		dst.SetWithColor(x, y, '>', platformcore.ColorGray)
		dst.SetWithColor(x+2, y, '<', platformcore.ColorGray)
	}
}

func (g *Game) renderTile(dst *platformcore.Screen, x, y int, t *core.Tile) {
	obj := t.Object()
	switch {
	case obj == nil:
		if g.effects.popping[t.Pos] > 0 {
			dst.SetWithColor(x+1, y, '✶', platformcore.ColorBrightYellow)
		} else {
			dst.SetWithColor(x+1, y, '·', platformcore.ColorGray)
		}
	case obj.Kind == core.KindMatchable:
		r, color := g.glyph(obj.Item)
		if g.effects.fresh[t.Pos] > 0 || g.effects.popping[t.Pos] > 0 {
			color = color.Bright()
		}
		dst.SetWithColor(x+1, y, r, color)
	case obj.Kind == core.KindObstacle:
		color := platformcore.ColorGray
		if g.effects.hit[t.Pos] > 0 {
			color = platformcore.ColorBrightWhite
		}
		dst.SetWithColor(x, y, '▐', color)
		dst.SetWithColor(x+1, y, rune('0'+min(obj.Health, 9)), color)
		dst.SetWithColor(x+2, y, '▌', color)
	case obj.Kind == core.KindSink:
		dst.SetWithColor(x+1, y, '▼', platformcore.ColorBrightCyan)
	}
}

// renderFooter draws controls and transient messages below the board.
func (g *Game) renderFooter(dst *platformcore.Screen) {
	y := dst.Height() - footerHeight
	controls := " Arrows: move | Space: select | Arrow after select: swap | ?: hint | P: pause | Q: quit"
	if g.session.Stuck() && g.session.Playing() {
		controls = " No moves left | X: shuffle | Q: quit"
	}
	dst.DrawTextWithColor(0, y, controls, platformcore.ColorGray)
	if g.msgTicks > 0 {
		dst.DrawTextWithColor(1, y+1, g.message, platformcore.ColorBrightRed)
	}
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	width := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := platformcore.NewRect(0, 0, dst.Width(), dst.Height()).Centered(width, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, platformcore.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+1, line1, platformcore.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+3, line2, platformcore.ColorGray)
}

// boardText renders the board as plain text rows.
func boardText(b *core.Board, glyph func(core.ItemKind) rune) string {
	var sb strings.Builder
	for y := 0; y < b.Height(); y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < b.Width(); x++ {
			t := b.Tile(core.C(x, y))
			switch {
			case t == nil || !t.Active:
				sb.WriteRune(' ')
			case t.Empty():
				sb.WriteRune('·')
			case t.Object().Kind == core.KindObstacle:
				sb.WriteRune(rune('0' + min(t.Object().Health, 9)))
			case t.Object().Kind == core.KindSink:
				sb.WriteRune('▼')
			default:
				sb.WriteRune(glyph(t.Object().Item))
			}
		}
	}
	return sb.String()
}

// BoardText returns the current board as plain text, one rune per tile.
func (g *Game) BoardText() string {
	if g.session == nil || g.session.Board() == nil {
		return ""
	}
	return boardText(g.session.Board(), func(item core.ItemKind) rune {
		r, _ := g.glyph(item)
		return r
	})
}
