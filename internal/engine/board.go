package engine

import (
	"strings"

	"github.com/vovakirdan/blockfall/internal/core"
)

// Block is one board cell: empty, or filled with a color.
type Block struct {
	Filled bool
	Color  core.Color
}

// Board is the fixed-size grid of locked blocks, stored row-major.
// It is changed only by Lock and ClearFloor.
type Board struct {
	rows    int
	columns int
	cells   []Block
}

// NewBoard creates an empty rows×columns board.
func NewBoard(rows, columns int) *Board {
	return &Board{
		rows:    rows,
		columns: columns,
		cells:   make([]Block, rows*columns),
	}
}

// Rows returns the board height.
func (b *Board) Rows() int { return b.rows }

// Columns returns the board width.
func (b *Board) Columns() int { return b.columns }

// InBounds reports whether v lies inside [0,rows)×[0,columns).
func (b *Board) InBounds(v Vector) bool {
	return v.Row >= 0 && v.Row < b.rows && v.Col >= 0 && v.Col < b.columns
}

// At returns the block at v. Out-of-bounds positions read as empty.
func (b *Board) At(v Vector) Block {
	if !b.InBounds(v) {
		return Block{}
	}
	return b.cells[v.Row*b.columns+v.Col]
}

// Occupied reports whether v holds a locked block.
func (b *Board) Occupied(v Vector) bool {
	return b.At(v).Filled
}

func (b *Board) set(v Vector, blk Block) {
	if b.InBounds(v) {
		b.cells[v.Row*b.columns+v.Col] = blk
	}
}

func (b *Board) row(r int) []Block {
	return b.cells[r*b.columns : (r+1)*b.columns]
}

// IsAvailable reports whether shape in rotation rot can sit with its
// bounding box at topLeft: every cell must be on the board and empty.
// It is the only legality check used for moves, rotations, and spawns.
func (b *Board) IsAvailable(topLeft Vector, rot Rotation, shape *Shape) bool {
	for _, off := range shape.Offsets(rot) {
		v := topLeft.Add(off)
		if !b.InBounds(v) || b.cells[v.Row*b.columns+v.Col].Filled {
			return false
		}
	}
	return true
}

// Fits is IsAvailable for a piece's own placement.
func (b *Board) Fits(p Piece) bool {
	return b.IsAvailable(p.TopLeft, p.Rotation, p.Shape)
}

// Lock writes the piece's color into every cell it covers.
func (b *Board) Lock(p Piece) {
	blk := Block{Filled: true, Color: p.Color}
	for _, v := range p.Cells() {
		b.set(v, blk)
	}
}

// RowFull reports whether every cell of row r is filled.
func (b *Board) RowFull(r int) bool {
	if r < 0 || r >= b.rows {
		return false
	}
	for _, blk := range b.row(r) {
		if !blk.Filled {
			return false
		}
	}
	return true
}

// ClearFloor removes every full row and compacts the rows above it
// downward, keeping their order. Rows are scanned bottom-up with a running
// shift count; the top shift rows are emptied afterwards. Returns the
// number of rows removed.
func (b *Board) ClearFloor() int {
	shift := 0
	for r := b.rows - 1; r >= 0; r-- {
		if b.RowFull(r) {
			shift++
			continue
		}
		if shift > 0 {
			copy(b.row(r+shift), b.row(r))
		}
	}
	for r := 0; r < shift; r++ {
		clear(b.row(r))
	}
	return shift
}

// FilledCount returns the number of filled cells.
func (b *Board) FilledCount() int {
	n := 0
	for _, blk := range b.cells {
		if blk.Filled {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	c := &Board{rows: b.rows, columns: b.columns, cells: make([]Block, len(b.cells))}
	copy(c.cells, b.cells)
	return c
}

// String renders the board as rows of '#' (filled) and '.' (empty).
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(b.rows * (b.columns + 1))
	for r := 0; r < b.rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for _, blk := range b.row(r) {
			if blk.Filled {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
