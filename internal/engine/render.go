package engine

import (
	"strings"
	"time"

	"github.com/vovakirdan/blockfall/internal/core"
)

// CellKind tags what a rendered grid cell shows.
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellOccupied
	CellGhost
)

// GridCell is one cell of a rendered frame. Color is meaningful for
// CellOccupied and CellGhost.
type GridCell struct {
	Kind  CellKind
	Color core.Color
}

// Grid is a read-only frame: the locked board with the active piece and
// its ghost drawn on top. Each frame is a fresh copy.
type Grid struct {
	Rows    int
	Columns int
	Cells   []GridCell
}

// NewGrid creates an all-empty grid.
func NewGrid(rows, columns int) Grid {
	return Grid{Rows: rows, Columns: columns, Cells: make([]GridCell, rows*columns)}
}

// At returns the cell at row r, column c.
func (g Grid) At(r, c int) GridCell {
	if r < 0 || r >= g.Rows || c < 0 || c >= g.Columns {
		return GridCell{}
	}
	return g.Cells[r*g.Columns+c]
}

func (g Grid) set(v Vector, cell GridCell) {
	if v.Row >= 0 && v.Row < g.Rows && v.Col >= 0 && v.Col < g.Columns {
		g.Cells[v.Row*g.Columns+v.Col] = cell
	}
}

// String renders the grid with '#' for blocks, '+' for ghost cells and
// '.' for empty cells.
func (g Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.Rows * (g.Columns + 1))
	for r := 0; r < g.Rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < g.Columns; c++ {
			switch g.At(r, c).Kind {
			case CellOccupied:
				sb.WriteByte('#')
			case CellGhost:
				sb.WriteByte('+')
			default:
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

// Renderer receives frames from the engine. Init is called once per game
// (including every restart) before the first Display. Both are called
// synchronously from the goroutine that owns the game.
type Renderer interface {
	Init(rows, columns int)
	Display(grid Grid)
}

// Status is the non-grid part of a frame.
type Status struct {
	Generation   uint64
	Seed         int64
	Phase        Phase
	Paused       bool
	Shape        string
	Lines        int
	Pieces       int
	SpeedUps     int
	DropInterval time.Duration
}

// StatusReporter is implemented by renderers that also show game status.
// It is called right after each Display.
type StatusReporter interface {
	Status(s Status)
}

// NopRenderer discards every frame.
type NopRenderer struct{}

func (NopRenderer) Init(int, int) {}
func (NopRenderer) Display(Grid)  {}
