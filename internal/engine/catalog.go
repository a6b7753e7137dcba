package engine

import (
	"fmt"
	"strings"
)

// Catalog is the ordered set of shapes the spawner draws from.
type Catalog []*Shape

// Tetrominoes returns the seven standard four-cell shapes.
func Tetrominoes() Catalog {
	return Catalog{
		MustShape("I", 0, 0, 0, 1, 0, 2, 0, 3),
		MustShape("O", 0, 0, 0, 1, 1, 0, 1, 1),
		MustShape("T", 0, 0, 0, 1, 0, 2, 1, 1),
		MustShape("J", 0, 0, 1, 0, 1, 1, 1, 2),
		MustShape("L", 0, 2, 1, 0, 1, 1, 1, 2),
		MustShape("S", 0, 1, 0, 2, 1, 0, 1, 1),
		MustShape("Z", 0, 0, 0, 1, 1, 1, 1, 2),
	}
}

// ShapeDef is a shape definition as it appears in configuration files.
type ShapeDef struct {
	Name  string
	Cells []int
}

// NewCatalog builds a catalog from definitions, failing on the first
// malformed shape or a repeated name.
func NewCatalog(defs []ShapeDef) (Catalog, error) {
	cat := make(Catalog, 0, len(defs))
	names := make(map[string]bool, len(defs))
	for i, d := range defs {
		name := strings.TrimSpace(d.Name)
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		if names[name] {
			return nil, fmt.Errorf("shape %q: defined more than once", name)
		}
		names[name] = true

		s, err := NewShape(name, d.Cells...)
		if err != nil {
			return nil, err
		}
		cat = append(cat, s)
	}
	return cat, nil
}

// Lookup returns the shape with the given name and its index.
func (c Catalog) Lookup(name string) (*Shape, int, bool) {
	for i, s := range c {
		if s.Name == name {
			return s, i, true
		}
	}
	return nil, -1, false
}

// Names returns the shape names in catalog order.
func (c Catalog) Names() []string {
	out := make([]string, len(c))
	for i, s := range c {
		out[i] = s.Name
	}
	return out
}
