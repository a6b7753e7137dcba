package engine

import (
	"math/rand"

	"github.com/vovakirdan/blockfall/internal/core"
)

// Spawner picks the next piece: a uniform shape from the catalog, a uniform
// color from the palette, and a uniform column that keeps the bounding box
// on the board. All randomness comes from the injected generator so a seed
// reproduces the whole spawn sequence.
type Spawner struct {
	rng     *rand.Rand
	catalog Catalog
	palette []core.Color
}

// NewSpawner creates a spawner. catalog and palette must be non-empty.
func NewSpawner(rng *rand.Rand, catalog Catalog, palette []core.Color) *Spawner {
	return &Spawner{rng: rng, catalog: catalog, palette: palette}
}

// Next returns a new piece at row 0 in rotation 0 for a board of the given
// width, along with the catalog index of its shape.
// The column is drawn from [0, columns-width] inclusive, so the rightmost
// slot flush with the wall is reachable. A shape wider than the board is
// placed at column 0 and will fail the availability check.
func (s *Spawner) Next(columns int) (Piece, int) {
	idx := s.rng.Intn(len(s.catalog))
	shape := s.catalog[idx]
	color := s.palette[s.rng.Intn(len(s.palette))]

	span := columns - shape.Width
	col := 0
	if span > 0 {
		col = s.rng.Intn(span + 1)
	}

	return Piece{
		Shape:    shape,
		Color:    color,
		TopLeft:  Vec(0, col),
		Rotation: Rotation0,
	}, idx
}
