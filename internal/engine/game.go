package engine

import (
	"math/rand"
	"time"
)

// Outcome describes what a Tick or Apply did.
type Outcome struct {
	Moved    bool // the active piece changed position or rotation
	Locked   bool // a piece was locked into the board
	Cleared  int  // rows removed by the lock
	GameOver bool // the next piece could not be placed
}

// Game is the falling-block state machine. It is driven synchronously by
// Tick, Apply, and SpeedUp and is not safe for concurrent use; Controller
// owns a Game on a single goroutine.
type Game struct {
	cfg      Config
	renderer Renderer
	status   StatusReporter
	spawner  *Spawner
	state    State
}

// NewGame validates cfg and starts the first game with the given seed.
// A nil renderer discards frames.
func NewGame(cfg Config, seed int64, r Renderer) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if r == nil {
		r = NopRenderer{}
	}
	g := &Game{cfg: cfg, renderer: r}
	g.status, _ = r.(StatusReporter)
	g.Restart(seed)
	return g, nil
}

// Config returns the rules the game was created with.
func (g *Game) Config() Config { return g.cfg }

// Phase returns the current phase.
func (g *Game) Phase() Phase { return g.state.Phase }

// Paused reports whether ticks and commands are suspended.
func (g *Game) Paused() bool { return g.state.Paused }

// DropInterval returns the current time between automatic drops.
func (g *Game) DropInterval() time.Duration { return g.state.DropInterval }

// Generation counts restarts; the first game is generation 1.
func (g *Game) Generation() uint64 { return g.state.Generation }

// Seed returns the seed of the current game.
func (g *Game) Seed() int64 { return g.state.Seed }

// Stats returns the counters of the current game.
func (g *Game) Stats() *Stats { return g.state.Stats }

// Board returns a copy of the locked board.
func (g *Game) Board() *Board { return g.state.Board.Clone() }

// Active returns the falling piece, if any.
func (g *Game) Active() (Piece, bool) { return g.state.Active, g.state.HasActive }

// Restart discards the current state and starts a new game seeded with seed.
func (g *Game) Restart(seed int64) {
	g.spawner = NewSpawner(rand.New(rand.NewSource(seed)), g.cfg.Catalog, g.cfg.Palette)
	g.state = State{
		Board:        NewBoard(g.cfg.Rows, g.cfg.Columns),
		DropInterval: g.cfg.Timing.DropIntervalAfter(0),
		Phase:        PhaseFalling,
		Generation:   g.state.Generation + 1,
		Seed:         seed,
		Stats:        newStats(len(g.cfg.Catalog)),
	}
	g.renderer.Init(g.cfg.Rows, g.cfg.Columns)
	g.spawn()
	g.render()
}

// Tick moves the active piece down one row. When it cannot move, the
// piece is locked, full rows are cleared and the next piece is spawned.
func (g *Game) Tick() Outcome {
	if !g.live() {
		return Outcome{}
	}

	var out Outcome
	if next := g.state.Active.Moved(Down); g.state.Board.Fits(next) {
		g.state.Active = next
		out.Moved = true
	} else {
		out = g.settle()
	}
	g.render()
	return out
}

// Apply runs a player command. Illegal moves and rotations are ignored.
func (g *Game) Apply(cmd Command) Outcome {
	if !g.live() || cmd == CommandNone {
		return Outcome{}
	}

	var out Outcome
	if cmd == CommandHardDrop {
		target, steps := HardDropTarget(g.state.Board, g.state.Active)
		g.state.Active = target
		out.Moved = steps > 0
		if g.cfg.HardDropLocks {
			settled := g.settle()
			settled.Moved = out.Moved
			out = settled
		}
	} else {
		g.state.Active, out.Moved = Step(g.state.Board, g.state.Active, cmd)
		if !out.Moved {
			return out
		}
	}
	g.render()
	return out
}

// SpeedUp applies one speed-up step. It reports whether the drop interval
// changed; once the minimum is reached further calls only count.
func (g *Game) SpeedUp() bool {
	if g.state.Phase != PhaseFalling {
		return false
	}
	g.state.SpeedUps++
	prev := g.state.DropInterval
	g.state.DropInterval = g.cfg.Timing.DropIntervalAfter(g.state.SpeedUps)
	return g.state.DropInterval != prev
}

// SetPaused suspends or resumes Tick and Apply.
func (g *Game) SetPaused(paused bool) {
	if g.state.Phase != PhaseFalling || g.state.Paused == paused {
		return
	}
	g.state.Paused = paused
	g.render()
}

func (g *Game) live() bool {
	return g.state.Phase == PhaseFalling && !g.state.Paused && g.state.HasActive
}

// settle locks the active piece, clears full rows and spawns the next piece.
func (g *Game) settle() Outcome {
	g.state.Board.Lock(g.state.Active)
	cleared := g.state.Board.ClearFloor()
	g.state.Stats.recordClear(cleared)

	out := Outcome{Locked: true, Cleared: cleared}
	out.GameOver = !g.spawn()
	return out
}

// spawn places the next piece, moving to game over when it does not fit.
func (g *Game) spawn() bool {
	p, idx := g.spawner.Next(g.cfg.Columns)
	if !g.state.Board.Fits(p) {
		g.state.HasActive = false
		g.state.Phase = PhaseGameOver
		return false
	}
	g.state.Stats.recordSpawn(idx)
	g.state.Active = p
	g.state.HasActive = true
	return true
}

// Grid builds the current frame. The ghost is computed here and never
// written to the board.
func (g *Game) Grid() Grid {
	b := g.state.Board
	grid := NewGrid(b.Rows(), b.Columns())
	for i, blk := range b.cells {
		if blk.Filled {
			grid.Cells[i] = GridCell{Kind: CellOccupied, Color: blk.Color}
		}
	}

	if !g.state.HasActive {
		return grid
	}

	p := g.state.Active
	if g.cfg.Ghost {
		ghost, steps := HardDropTarget(b, p)
		if steps > 0 {
			for _, v := range ghost.Cells() {
				grid.set(v, GridCell{Kind: CellGhost, Color: p.Color})
			}
		}
	}
	for _, v := range p.Cells() {
		grid.set(v, GridCell{Kind: CellOccupied, Color: p.Color})
	}
	return grid
}

// Status returns the non-grid part of the current frame.
func (g *Game) Status() Status {
	s := Status{
		Generation:   g.state.Generation,
		Seed:         g.state.Seed,
		Phase:        g.state.Phase,
		Paused:       g.state.Paused,
		Lines:        g.state.Stats.Lines,
		Pieces:       g.state.Stats.Pieces,
		SpeedUps:     g.state.SpeedUps,
		DropInterval: g.state.DropInterval,
	}
	if g.state.HasActive {
		s.Shape = g.state.Active.Shape.Name
	}
	return s
}

func (g *Game) render() {
	g.renderer.Display(g.Grid())
	if g.status != nil {
		g.status.Status(g.Status())
	}
}

// Snapshot captures the current state for comparison.
func (g *Game) Snapshot() Snapshot {
	st := g.state
	snap := Snapshot{
		Generation:    st.Generation,
		Seed:          st.Seed,
		Phase:         st.Phase,
		Paused:        st.Paused,
		Board:         st.Board.String(),
		DropInterval:  st.DropInterval,
		SpeedUps:      st.SpeedUps,
		Pieces:        st.Stats.Pieces,
		Lines:         st.Stats.Lines,
		ClearsBySize:  make(map[int]int),
		PiecesByShape: make(map[string]int),
	}
	if st.HasActive {
		snap.Shape = st.Active.Shape.Name
		snap.Color = st.Active.Color
		snap.TopLeft = st.Active.TopLeft
		snap.Rotation = st.Active.Rotation
	}
	st.Stats.clears.ForEach(func(rows, times int) bool {
		snap.ClearsBySize[rows] = times
		return true
	})
	for i, s := range g.cfg.Catalog {
		if n := st.Stats.Spawned(i); n > 0 {
			snap.PiecesByShape[s.Name] = n
		}
	}
	return snap
}
