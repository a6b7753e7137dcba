package vector

import (
	"github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/registry"
)

func init() {
	registry.Register("svg", "SVG documents", func(opts registry.Options) (engine.Renderer, error) {
		return NewSVG(opts), nil
	})
	registry.Register("ascii", "Plain-text frames", func(opts registry.Options) (engine.Renderer, error) {
		return NewASCII(opts), nil
	})
}
