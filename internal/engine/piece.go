package engine

import "github.com/vovakirdan/blockfall/internal/core"

// Piece is the active, player-controlled piece. Shape and Color are fixed
// at spawn; only TopLeft and Rotation change while it falls.
type Piece struct {
	Shape    *Shape
	Color    core.Color
	TopLeft  Vector
	Rotation Rotation
}

// Cells returns the board positions covered by the piece.
func (p Piece) Cells() []Vector {
	offs := p.Shape.Offsets(p.Rotation)
	out := make([]Vector, len(offs))
	for i, off := range offs {
		out[i] = p.TopLeft.Add(off)
	}
	return out
}

// Moved returns the piece translated by d.
func (p Piece) Moved(d Vector) Piece {
	p.TopLeft = p.TopLeft.Add(d)
	return p
}

// RotatedCW returns the piece turned a quarter clockwise about its top-left corner.
func (p Piece) RotatedCW() Piece {
	p.Rotation = p.Rotation.Next()
	return p
}

// RotatedCCW returns the piece turned a quarter counter-clockwise about its top-left corner.
func (p Piece) RotatedCCW() Piece {
	p.Rotation = p.Rotation.Prev()
	return p
}
