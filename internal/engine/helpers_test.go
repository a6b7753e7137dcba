package engine

import (
	"testing"
	"time"

	"github.com/vovakirdan/blockfall/internal/core"
)

// parseBoard builds a board from rows of '#' (filled) and '.' (empty).
func parseBoard(t *testing.T, rows ...string) *Board {
	t.Helper()
	b := NewBoard(len(rows), len(rows[0]))
	for r, line := range rows {
		if len(line) != b.Columns() {
			t.Fatalf("parseBoard: row %d has %d columns, expected %d", r, len(line), b.Columns())
		}
		for c, ch := range line {
			if ch == '#' {
				b.set(Vec(r, c), Block{Filled: true, Color: core.ColorGray})
			}
		}
	}
	return b
}

// rotate90 turns a cell set a quarter clockwise inside an h×w box.
func rotate90(cells []Vector, h, w int) ([]Vector, int, int) {
	out := make([]Vector, len(cells))
	for k, c := range cells {
		out[k] = Vec(c.Col, h-1-c.Row)
	}
	return out, w, h
}

func cellSet(cells []Vector) map[Vector]bool {
	m := make(map[Vector]bool, len(cells))
	for _, c := range cells {
		m[c] = true
	}
	return m
}

func sameCells(a, b []Vector) bool {
	if len(a) != len(b) {
		return false
	}
	sa, sb := cellSet(a), cellSet(b)
	for v := range sa {
		if !sb[v] {
			return false
		}
	}
	return true
}

func testConfig(rows, columns int, shapes ...*Shape) Config {
	cfg := DefaultConfig()
	cfg.Rows = rows
	cfg.Columns = columns
	if len(shapes) > 0 {
		cfg.Catalog = Catalog(shapes)
	}
	return cfg
}

func fastTiming() Timing {
	return Timing{
		DropIntervalStart:    5 * time.Millisecond,
		DropIntervalDecrease: 1 * time.Millisecond,
		SpeedUpPeriod:        10 * time.Millisecond,
		DropIntervalMinimum:  2 * time.Millisecond,
	}
}

func newTestGame(t *testing.T, cfg Config, seed int64) *Game {
	t.Helper()
	g, err := NewGame(cfg, seed, nil)
	if err != nil {
		t.Fatalf("NewGame() failed: %v", err)
	}
	return g
}

// recordingRenderer keeps every call for inspection.
type recordingRenderer struct {
	inits    int
	rows     int
	columns  int
	frames   []Grid
	statuses []Status
}

func (r *recordingRenderer) Init(rows, columns int) {
	r.inits++
	r.rows, r.columns = rows, columns
}

func (r *recordingRenderer) Display(g Grid) {
	r.frames = append(r.frames, g)
}

func (r *recordingRenderer) Status(s Status) {
	r.statuses = append(r.statuses, s)
}

func (r *recordingRenderer) last() Grid {
	return r.frames[len(r.frames)-1]
}
