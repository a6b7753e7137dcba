// Package engine implements the falling-block simulation: shapes and their
// rotations, the board, spawning, command handling, locking and line
// clears, and the timing loop that ties them together.
//
// Nothing in this package talks to a terminal. Frontends receive frames
// through the Renderer interface and send input as Commands.
package engine

import "fmt"

// Vector is a (row, col) offset on the board. Row grows downward.
type Vector struct {
	Row int
	Col int
}

// Unit moves used by the command processor and the drop tick.
var (
	Down  = Vector{Row: 1}
	Left  = Vector{Col: -1}
	Right = Vector{Col: 1}
)

// Vec is shorthand for Vector{Row: row, Col: col}.
func Vec(row, col int) Vector {
	return Vector{Row: row, Col: col}
}

// Add returns the component-wise sum. There is no wraparound; callers
// check the result against the board bounds.
func (v Vector) Add(o Vector) Vector {
	return Vector{Row: v.Row + o.Row, Col: v.Col + o.Col}
}

// Equal reports whether both components match.
func (v Vector) Equal(o Vector) bool {
	return v.Row == o.Row && v.Col == o.Col
}

func (v Vector) String() string {
	return fmt.Sprintf("(%d,%d)", v.Row, v.Col)
}
