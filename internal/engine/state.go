package engine

import (
	"time"

	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/blockfall/internal/core"
)

// Phase is the game-level state.
type Phase uint8

const (
	PhaseFalling Phase = iota
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseFalling:
		return "falling"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// State is everything that changes during one game. A restart replaces it
// as a whole.
type State struct {
	Board        *Board
	Active       Piece
	HasActive    bool
	DropInterval time.Duration
	SpeedUps     int
	Phase        Phase
	Paused       bool
	Generation   uint64
	Seed         int64
	Stats        *Stats
}

// Stats counts what happened in one game. It is not a score.
type Stats struct {
	Pieces int
	Lines  int

	clears  *intmap.Map[int, int] // rows cleared at once -> times
	byShape *intmap.Map[int, int] // catalog index -> pieces spawned
}

func newStats(shapes int) *Stats {
	return &Stats{
		clears:  intmap.New[int, int](4),
		byShape: intmap.New[int, int](shapes),
	}
}

func (s *Stats) recordSpawn(shapeIndex int) {
	s.Pieces++
	n, _ := s.byShape.Get(shapeIndex)
	s.byShape.Put(shapeIndex, n+1)
}

func (s *Stats) recordClear(rows int) {
	if rows <= 0 {
		return
	}
	s.Lines += rows
	n, _ := s.clears.Get(rows)
	s.clears.Put(rows, n+1)
}

// Clears returns how many times exactly rows lines were cleared at once.
func (s *Stats) Clears(rows int) int {
	n, _ := s.clears.Get(rows)
	return n
}

// Spawned returns how many pieces of the catalog shape at index were spawned.
func (s *Stats) Spawned(index int) int {
	n, _ := s.byShape.Get(index)
	return n
}

// Snapshot is a comparable copy of the game state, used for determinism
// checks and headless inspection.
type Snapshot struct {
	Generation    uint64
	Seed          int64
	Phase         Phase
	Paused        bool
	Board         string
	Shape         string
	Color         core.Color
	TopLeft       Vector
	Rotation      Rotation
	DropInterval  time.Duration
	SpeedUps      int
	Pieces        int
	Lines         int
	ClearsBySize  map[int]int
	PiecesByShape map[string]int
}
