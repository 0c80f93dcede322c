package blockfall

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall/engine"
)

const (
	cellWidth = 2 // terminal columns per grid cell

	boardW = engine.Width*cellWidth + 2 // +2 for borders
	boardH = engine.Height + 2
	panelW = 14
	gap    = 2

	minScreenW = boardW + gap + panelW
	minScreenH = boardH + 1 // +1 for the title row
)

var pieceColors = map[engine.PieceType]core.Color{
	engine.PieceI: core.ColorCyan,
	engine.PieceO: core.ColorYellow,
	engine.PieceT: core.ColorMagenta,
	engine.PieceS: core.ColorGreen,
	engine.PieceZ: core.ColorRed,
	engine.PieceJ: core.ColorBlue,
	engine.PieceL: core.ColorOrange,
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check screen size
	if g.tooSmall || g.eng == nil {
		g.renderTooSmall(dst)
		return
	}

	snap := g.eng.Snapshot()

	originX := (g.screenW - minScreenW) / 2
	originY := (g.screenH - minScreenH) / 2

	dst.DrawTextColored(originX+(boardW-len(g.Title()))/2, originY, g.Title(), core.ColorBrightWhite)

	boardX, boardY := originX, originY+1
	g.renderBoard(dst, snap, boardX, boardY)
	g.renderPanel(dst, snap, boardX+boardW+gap, boardY)
	g.renderOverlay(dst, snap, boardX, boardY)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
}

// renderBoard draws the frame, settled cells, ghost and falling piece.
func (g *Game) renderBoard(dst *core.Screen, snap engine.Snapshot, x0, y0 int) {
	dst.DrawBox(boardRect(x0, y0))

	ghost := make(map[engine.Point]bool, len(snap.GhostCells))
	for _, p := range snap.GhostCells {
		ghost[p] = true
	}

	grid := snap.Composite()
	for y := range engine.Height {
		for x := range engine.Width {
			px := x0 + 1 + x*cellWidth
			py := y0 + 1 + y

			if t, ok := grid[y][x].Type(); ok {
				drawBlock(dst, px, py, '█', pieceColors[t])
				continue
			}
			if ghost[engine.Point{X: x, Y: y}] {
				drawBlock(dst, px, py, '░', core.ColorGray)
				continue
			}
			dst.SetColored(px+1, py, '.', core.ColorGray)
		}
	}
}

func boardRect(x0, y0 int) core.Rect {
	return core.NewRect(x0, y0, boardW, boardH)
}

func drawBlock(dst *core.Screen, x, y int, r rune, c core.Color) {
	for i := range cellWidth {
		dst.SetColored(x+i, y, r, c)
	}
}

// renderPanel draws the next preview and the counters.
func (g *Game) renderPanel(dst *core.Screen, snap engine.Snapshot, x0, y0 int) {
	dst.DrawText(x0, y0, "NEXT")
	if snap.Next != nil {
		shape := engine.ShapeFor(snap.Next.Type, 0)
		for r := range shape {
			for c := range shape[r] {
				if shape[r][c] {
					drawBlock(dst, x0+c*cellWidth, y0+1+r, '█', pieceColors[snap.Next.Type])
				}
			}
		}
	}

	rows := []struct {
		label string
		value string
	}{
		{"SCORE", strconv.Itoa(snap.Score)},
		{"LEVEL", strconv.Itoa(snap.Level)},
		{"LINES", strconv.Itoa(snap.Lines)},
		{"SPEED", fmt.Sprintf("%dms", g.eng.Speed().Milliseconds())},
	}
	dst.DrawHLine(x0, y0+4, panelW, '─', core.ColorGray)
	y := y0 + 5
	for _, row := range rows {
		dst.DrawTextColored(x0, y, row.label, core.ColorGray)
		dst.DrawTextColored(x0, y+1, row.value, core.ColorBrightWhite)
		y += 3
	}

	help := []string{"←→ move", "↑ rotate", "↓ soft drop", "spc hard drop", "p pause"}
	for i, line := range help {
		dst.DrawTextColored(x0, y+i, line, core.ColorGray)
	}
}

// renderOverlay draws status messages across the middle of the board.
func (g *Game) renderOverlay(dst *core.Screen, snap engine.Snapshot, x0, y0 int) {
	var lines []string
	var color core.Color
	switch snap.Status {
	case engine.StatusIdle:
		lines, color = []string{"BLOCKFALL", "", "Enter to start"}, core.ColorBrightCyan
	case engine.StatusPaused:
		lines, color = []string{"PAUSED", "", "P to resume"}, core.ColorBrightYellow
	case engine.StatusGameOver:
		lines = []string{"GAME OVER", "", fmt.Sprintf("Score %d", snap.Score), "R to restart"}
		color = core.ColorBrightRed
	default:
		return
	}

	inner := boardRect(x0, y0).Inset(1)
	band := core.NewRect(inner.X, inner.Y+(inner.H-len(lines))/2-1, inner.W, len(lines)+2)
	dst.FillRect(band, ' ', core.ColorDefault)
	for i, line := range lines {
		x := inner.X + (inner.W-len(line))/2
		dst.DrawTextColored(x, band.Y+1+i, line, color)
	}
}
