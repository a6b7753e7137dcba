package engine

import (
	"errors"
	"fmt"
)

// Shape construction errors.
var (
	ErrOddCoordinates     = errors.New("odd number of coordinates")
	ErrNegativeCoordinate = errors.New("negative coordinate")
	ErrEmptyShape         = errors.New("no cells")
	ErrDuplicateCell      = errors.New("duplicate cell")
)

// Rotation is one of four clockwise orientations.
type Rotation uint8

const (
	Rotation0 Rotation = iota
	Rotation90
	Rotation180
	Rotation270
)

// Next returns the orientation one quarter turn clockwise.
func (r Rotation) Next() Rotation {
	return (r + 1) % 4
}

// Prev returns the orientation one quarter turn counter-clockwise.
func (r Rotation) Prev() Rotation {
	return (r + 3) % 4
}

func (r Rotation) String() string {
	return fmt.Sprintf("%d°", int(r%4)*90)
}

// Shape is the cell template of a piece type. Cells are offsets inside a
// Height×Width bounding box. Shapes are immutable once built and shared
// between all pieces of that type.
type Shape struct {
	Name   string
	Height int
	Width  int
	Cells  []Vector

	rotated [4][]Vector
}

// NewShape builds a shape from a flat list of row,col pairs.
// The bounding box is derived from the largest row and column.
func NewShape(name string, coords ...int) (*Shape, error) {
	if len(coords)%2 != 0 {
		return nil, fmt.Errorf("shape %q: %w", name, ErrOddCoordinates)
	}
	if len(coords) == 0 {
		return nil, fmt.Errorf("shape %q: %w", name, ErrEmptyShape)
	}

	s := &Shape{Name: name, Cells: make([]Vector, 0, len(coords)/2)}
	seen := make(map[Vector]bool, len(coords)/2)
	for i := 0; i < len(coords); i += 2 {
		v := Vec(coords[i], coords[i+1])
		if v.Row < 0 || v.Col < 0 {
			return nil, fmt.Errorf("shape %q: cell %v: %w", name, v, ErrNegativeCoordinate)
		}
		if seen[v] {
			return nil, fmt.Errorf("shape %q: cell %v: %w", name, v, ErrDuplicateCell)
		}
		seen[v] = true
		s.Cells = append(s.Cells, v)
		s.Height = max(s.Height, v.Row+1)
		s.Width = max(s.Width, v.Col+1)
	}

	for r := Rotation0; r <= Rotation270; r++ {
		s.rotated[r] = Transform(s, r)
	}
	return s, nil
}

// MustShape is like NewShape but panics on a malformed definition.
// Intended for built-in catalogs.
func MustShape(name string, coords ...int) *Shape {
	s, err := NewShape(name, coords...)
	if err != nil {
		panic(err)
	}
	return s
}

// Dims returns the bounding box (height, width) of the shape in rotation r.
func (s *Shape) Dims(r Rotation) (height, width int) {
	if r%2 == 1 {
		return s.Width, s.Height
	}
	return s.Height, s.Width
}

// Offsets returns the cell offsets for rotation r. The returned slice is
// shared and must not be modified.
func (s *Shape) Offsets(r Rotation) []Vector {
	if cells := s.rotated[r%4]; cells != nil {
		return cells
	}
	return Transform(s, r)
}

// Transform maps the shape's cells into rotation r. Each cell stays
// inside the rotated bounding box reported by Dims:
//
//	0:   (i, j) -> (i, j)
//	90:  (i, j) -> (j, H-1-i)
//	180: (i, j) -> (H-1-i, W-1-j)
//	270: (i, j) -> (W-1-j, i)
//
// Rotating by 90 four times yields the original cells.
func Transform(s *Shape, r Rotation) []Vector {
	h, w := s.Height, s.Width
	out := make([]Vector, len(s.Cells))
	for k, c := range s.Cells {
		i, j := c.Row, c.Col
		switch r % 4 {
		case Rotation0:
			out[k] = Vec(i, j)
		case Rotation90:
			out[k] = Vec(j, h-1-i)
		case Rotation180:
			out[k] = Vec(h-1-i, w-1-j)
		case Rotation270:
			out[k] = Vec(w-1-j, i)
		}
	}
	return out
}

// String renders the shape in rotation 0 as rows of '#' and '.'.
func (s *Shape) String() string {
	return renderCells(s.Cells, s.Height, s.Width)
}

func renderCells(cells []Vector, h, w int) string {
	buf := make([]byte, 0, h*(w+1))
	grid := make([]bool, h*w)
	for _, c := range cells {
		grid[c.Row*w+c.Col] = true
	}
	for r := 0; r < h; r++ {
		if r > 0 {
			buf = append(buf, '\n')
		}
		for c := 0; c < w; c++ {
			if grid[r*w+c] {
				buf = append(buf, '#')
			} else {
				buf = append(buf, '.')
			}
		}
	}
	return string(buf)
}
