package penguin

import (
	"fmt"

	"github.com/vovakirdan/blank-arcade/internal/core"
)

const (
	hudHeight  = 2 // Title line and separator
	cellColumn = 2 // Terminal columns per field cell
)

// fieldSize is the bordered field size in terminal cells.
func (g *Game) fieldSize() (int, int) {
	return g.opts.GridSize*cellColumn + 2, g.opts.GridSize + 2
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		dst.DrawTextCentered(g.screenH/2, "Window too small")
		dst.DrawTextCentered(g.screenH/2+1, "Please resize terminal")
		return
	}

	if g.phase == PhaseTitle {
		g.renderTitle(dst)
		return
	}

	w, h := g.fieldSize()
	field := core.NewRect((g.screenW-w)/2, hudHeight, w, h)

	g.renderHUD(dst)
	g.renderField(dst, field)
	dst.DrawTextCentered(field.Bottom(), g.Controls())

	cx, cy := field.Center()
	switch {
	case g.paused:
		drawOverlay(dst, cx, cy, "PAUSED", "Press P to resume")
	case g.phase == PhaseCollided:
		drawOverlay(dst, cx, cy, "GAME OVER", fmt.Sprintf("Fish: %d", g.score), "R: restart  B: menu")
	case g.phase == PhaseCleared:
		drawOverlay(dst, cx, cy, "FIELD CLEARED", fmt.Sprintf("Fish: %d", g.score), "R: restart  B: menu")
	}
}

func (g *Game) renderTitle(dst *core.Screen) {
	y := g.screenH/2 - 3
	dst.DrawTextCentered(y, "Welcome to Penguin")
	dst.DrawTextCentered(y+2, "Use the arrow keys to steer the penguins.")
	dst.DrawTextCentered(y+3, "Catch fish to grow. Don't hit the edge or yourself.")
	dst.DrawTextCentered(y+5, "Press Enter to start, B for the menu")
}

func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" Penguin - Fish: %d  Length: %d", g.score, len(g.state.Body))
	dst.DrawText(0, 0, hud)
	for x := range dst.Width() {
		dst.Set(x, 1, '─')
	}
}

// renderField draws the border, the fish and the body.
func (g *Game) renderField(dst *core.Screen, field core.Rect) {
	dst.DrawBox(field)

	cell := func(c core.Coord) (int, int) {
		return field.X + 1 + c.X*cellColumn, field.Y + 1 + c.Y
	}

	if g.state.Food.InBounds(g.opts.GridSize) {
		x, y := cell(g.state.Food)
		dst.DrawTextColored(x, y, "><", core.ColorOrange)
	}

	// Tail first so the head wins if anything overlaps.
	for i := len(g.state.Body) - 1; i >= 0; i-- {
		x, y := cell(g.state.Body[i])
		if i == 0 {
			dst.DrawTextColored(x, y, "@@", core.ColorBrightWhite)
		} else {
			dst.DrawTextColored(x, y, "oo", core.ColorCyan)
		}
	}
}

// drawOverlay draws a centered text box.
func drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := core.Rect{W: maxLen + 4, H: len(lines) + 2}
	box.X = centerX - box.W/2
	box.Y = centerY - box.H/2

	dst.FillRect(box)
	dst.DrawBox(box)

	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, box.Y+1+i, line)
	}
}
