package vector

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/registry"
)

// CellSize is the edge of one board cell in SVG user units.
const CellSize = 24

const (
	emptyFill = "#000000"
	gridLine  = "#202020"
)

// hexColors maps palette colors to CSS colors.
var hexColors = map[core.Color]string{
	core.ColorDefault:       "#c0c0c0",
	core.ColorRed:           "#cd0000",
	core.ColorGreen:         "#00cd00",
	core.ColorYellow:        "#cdcd00",
	core.ColorBlue:          "#0000ee",
	core.ColorMagenta:       "#cd00cd",
	core.ColorCyan:          "#00cdcd",
	core.ColorWhite:         "#e5e5e5",
	core.ColorBrightRed:     "#ff0000",
	core.ColorBrightGreen:   "#00ff00",
	core.ColorBrightYellow:  "#ffff00",
	core.ColorBrightBlue:    "#5c5cff",
	core.ColorBrightMagenta: "#ff00ff",
	core.ColorBrightCyan:    "#00ffff",
	core.ColorBrightWhite:   "#ffffff",
	core.ColorOrange:        "#ff8700",
	core.ColorGray:          "#8a8a8a",
}

// Hex returns the CSS color used for c.
func Hex(c core.Color) string {
	if h, ok := hexColors[c]; ok {
		return h
	}
	return hexColors[core.ColorDefault]
}

// SVG renders each frame as a standalone SVG document with one path per
// board cell. Ghost cells are outlined in the piece color.
type SVG struct {
	sink    *sink
	pending pending
	rows    int
	columns int
}

// NewSVG creates an SVG renderer writing to opts.
func NewSVG(opts registry.Options) *SVG {
	return &SVG{sink: newSink(opts, "svg", "\n")}
}

// Init implements engine.Renderer.
func (s *SVG) Init(rows, columns int) {
	s.rows, s.columns = rows, columns
}

// Display implements engine.Renderer. The document is written on the
// following Status call.
func (s *SVG) Display(grid engine.Grid) {
	s.pending = pending{grid: grid, has: true}
}

// Status implements engine.StatusReporter.
func (s *SVG) Status(st engine.Status) {
	grid, ok := s.pending.take()
	if !ok {
		return
	}
	s.sink.write(Document(grid, st))
}

// Frames returns how many documents have been written.
func (s *SVG) Frames() int { return s.sink.count }

// Err returns the first write error.
func (s *SVG) Err() error { return s.sink.err }

// Document renders one frame as an SVG document.
func Document(grid engine.Grid, st engine.Status) []byte {
	w, h := grid.Columns*CellSize, grid.Rows*CellSize

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, w, h, w, h)
	buf.WriteByte('\n')

	title := fmt.Sprintf("blockfall gen %d: %s, lines %d, pieces %d", st.Generation, st.Phase, st.Lines, st.Pieces)
	if st.Paused {
		title += ", paused"
	}
	buf.WriteString("<title>")
	xml.EscapeText(&buf, []byte(title))
	buf.WriteString("</title>\n")

	for r := 0; r < grid.Rows; r++ {
		for c := 0; c < grid.Columns; c++ {
			cell := grid.At(r, c)
			x, y := c*CellSize, r*CellSize
			switch cell.Kind {
			case engine.CellOccupied:
				writeCell(&buf, x, y, Hex(cell.Color), gridLine)
			case engine.CellGhost:
				writeCell(&buf, x, y, emptyFill, Hex(cell.Color))
			default:
				writeCell(&buf, x, y, emptyFill, gridLine)
			}
		}
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writeCell(buf *bytes.Buffer, x, y int, fill, stroke string) {
	fmt.Fprintf(buf, `<path d="M%d %dh%dv%dh-%dz" fill="%s" stroke="%s"/>`,
		x, y, CellSize, CellSize, CellSize, fill, stroke)
	buf.WriteByte('\n')
}
