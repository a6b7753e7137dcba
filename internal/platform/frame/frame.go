// Package frame lays out a rendered grid and its status panel on a
// core.Screen. Every text frontend draws through it so they look alike.
package frame

import (
	"fmt"
	"time"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
)

// Each board cell is two characters wide so blocks look square.
const cellWidth = 2

const (
	panelGap   = 2
	panelWidth = 22
	panelLines = 16
)

// Glyphs controls how cells are drawn.
type Glyphs struct {
	Block string
	Ghost string
	Empty string
}

var (
	// Unicode is used by terminal frontends.
	Unicode = Glyphs{Block: "██", Ghost: "░░", Empty: " ·"}
	// ASCII is used for plain-text frames.
	ASCII = Glyphs{Block: "[]", Ghost: "::", Empty: " ."}
)

// Size returns the screen size needed for a rows×columns board with its
// panel.
func Size(rows, columns int) (w, h int) {
	w = columns*cellWidth + 2 + panelGap + panelWidth
	h = core.Max(rows+2, panelLines)
	return w, h
}

// BoardRect returns where the board box is drawn.
func BoardRect(rows, columns int) core.Rect {
	return core.NewRect(0, 0, columns*cellWidth+2, rows+2)
}

// Compose draws grid and st onto dst starting at the top-left corner.
// dst is not cleared.
func Compose(dst *core.Screen, grid engine.Grid, st engine.Status, title string, g Glyphs) {
	box := BoardRect(grid.Rows, grid.Columns)
	border := core.ColorGray
	if st.Phase == engine.PhaseGameOver {
		border = core.ColorRed
	}
	dst.DrawBox(box, border)

	for r := 0; r < grid.Rows; r++ {
		for c := 0; c < grid.Columns; c++ {
			cell := grid.At(r, c)
			x, y := box.X+1+c*cellWidth, box.Y+1+r
			switch cell.Kind {
			case engine.CellOccupied:
				dst.DrawTextColored(x, y, g.Block, cell.Color)
			case engine.CellGhost:
				dst.DrawTextColored(x, y, g.Ghost, cell.Color)
			default:
				dst.DrawTextColored(x, y, g.Empty, core.ColorGray)
			}
		}
	}

	drawPanel(dst, box.Right()+panelGap, box.Y, st, title)
}

func drawPanel(dst *core.Screen, x, y int, st engine.Status, title string) {
	if title == "" {
		title = "BLOCKFALL"
	}
	dst.DrawTextColored(x, y, title, core.ColorBrightCyan)

	shape := st.Shape
	if shape == "" {
		shape = "-"
	}
	rows := []struct {
		label string
		value string
	}{
		{"Piece", shape},
		{"Lines", fmt.Sprint(st.Lines)},
		{"Pieces", fmt.Sprint(st.Pieces)},
		{"Level", fmt.Sprint(st.SpeedUps + 1)},
		{"Drop", FormatInterval(st.DropInterval)},
		{"Seed", fmt.Sprint(st.Seed)},
	}
	for i, row := range rows {
		dst.DrawTextColored(x, y+2+i, row.label, core.ColorGray)
		dst.DrawText(x+8, y+2+i, row.value)
	}

	line := y + 3 + len(rows)
	switch {
	case st.Phase == engine.PhaseGameOver:
		dst.DrawTextColored(x, line, "GAME OVER", core.ColorBrightRed)
		dst.DrawText(x, line+1, "r restart  q quit")
	case st.Paused:
		dst.DrawTextColored(x, line, "PAUSED", core.ColorBrightYellow)
		dst.DrawText(x, line+1, "p resume")
	default:
		dst.DrawTextColored(x, line, "←→ move  ↓ drop", core.ColorGray)
		dst.DrawTextColored(x, line+1, "↑/z rotate  ␣ slam", core.ColorGray)
		dst.DrawTextColored(x, line+2, "p pause  q quit", core.ColorGray)
	}
}

// FormatInterval formats a drop interval as whole milliseconds.
func FormatInterval(d time.Duration) string {
	return fmt.Sprintf("%dms", d.Milliseconds())
}
