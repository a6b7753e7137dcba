package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/platform/frame"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = func() map[core.Color]lipgloss.Style {
	styles := map[core.Color]lipgloss.Style{core.ColorDefault: lipgloss.NewStyle()}
	for c := core.ColorDefault + 1; c <= core.ColorGray; c++ {
		styles[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(strconv.Itoa(c.ANSI())))
	}
	return styles
}()

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// RenderFrame lays out f centered in a width×height terminal.
func RenderFrame(f FrameMsg, title string, width, height int) string {
	w, h := frame.Size(f.Grid.Rows, f.Grid.Columns)
	s := core.NewScreen(core.Max(w, width), core.Max(h, height))
	area := s.Bounds().Centered(w, h)

	buf := core.NewScreen(w, h)
	frame.Compose(buf, f.Grid, f.Status, title, frame.Unicode)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := buf.GetCell(x, y)
			s.SetColored(area.X+x, area.Y+y, c.Rune, c.Color)
		}
	}
	return RenderScreen(s)
}
