package alphabet

import (
	"fmt"

	"github.com/vovakirdan/blank-arcade/internal/core"
)

const (
	cellWidth  = 5 // Width of each cell (including borders)
	cellHeight = 2 // Height of each cell (including borders)
)

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

	boardW := Size*cellWidth + 1
	boardH := Size*cellHeight + 1
	hudHeight := 3

	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX, boardW)
	g.renderBoard(dst, boardX, boardY)
	dst.DrawTextCentered(boardY+boardH+1, g.Controls())
	g.renderOverlays(dst, boardX, boardY, boardW, boardH)
}

// renderTitle draws the start screen.
func (g *Game) renderTitle(dst *core.Screen) {
	y := g.screenH/2 - 3
	dst.DrawTextCentered(y, "Welcome to Alphabet 2048")
	dst.DrawTextCentered(y+2, "Use the arrow keys to slide the letter tiles.")
	dst.DrawTextCentered(y+3, "Two equal letters merge into the next one.")
	dst.DrawTextCentered(y+5, "Press Enter to start, B for the menu")
}

// renderHUD draws the score line.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	title := "ALPHABET 2048"
	dst.DrawText(boardX+(boardW-len(title))/2, 0, title)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", g.score))

	best := MaxLetter(g.grid).String()
	info := fmt.Sprintf("Max: %s", best)
	infoX := boardX + boardW - len(info)
	if infoX < boardX {
		infoX = boardX
	}
	dst.DrawText(infoX, 1, info)
}

// renderBoard draws the 4x4 grid with letter tiles.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	for y := range Size + 1 {
		for x := range Size + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == Size:
				corner = '┐'
			case y == Size && x == 0:
				corner = '└'
			case y == Size && x == Size:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == Size:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == Size:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColored(px, py, corner, core.ColorGray)

			if x < Size {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}
			if y < Size {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}

	for y := range Size {
		for x := range Size {
			cell := g.grid[y][x]
			if cell.Empty() {
				continue
			}

			cellX := boardX + x*cellWidth + 1
			cellY := boardY + y*cellHeight + 1

			label := cell.Letter.String()
			if cell.Moved {
				// Freshly merged tiles get a marker for the settle frames.
				label = "*" + label
			}
			if g.hasSpawn && g.lastSpawn == (core.Coord{X: x, Y: y}) && g.phase != PhaseSettling {
				label = "+" + label
			}
			padLeft := max((cellWidth-1-len(label))/2, 0)
			dst.DrawTextColored(cellX+padLeft, cellY, label, core.RankColor(int(cell.Letter)))
		}
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, boardX, boardY, boardW, boardH int) {
	centerX := boardX + boardW/2
	centerY := boardY + boardH/2

	switch {
	case g.paused:
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	case g.phase == PhaseGameOver:
		g.drawOverlay(dst, centerX, centerY, "GAME OVER",
			fmt.Sprintf("Score: %d", g.score), "R: restart  B: menu")
	}
}

// drawOverlay draws a centered text box.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
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
