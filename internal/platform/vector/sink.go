// Package vector implements the file-style renderer backends: SVG
// documents and plain-text frames. They are used by the record command
// and in tests, and register themselves as "svg" and "ascii".
package vector

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/registry"
)

// sink writes numbered frames either to one stream or to one file each.
// The first error is kept and later frames are dropped.
type sink struct {
	out   io.Writer
	dir   string
	ext   string
	sep   string
	count int
	err   error
}

func newSink(opts registry.Options, ext, sep string) *sink {
	return &sink{out: opts.Writer(), dir: opts.Dir, ext: ext, sep: sep}
}

func (s *sink) write(frame []byte) {
	if s.err != nil {
		return
	}
	s.count++

	if s.dir != "" {
		if s.count == 1 {
			if err := os.MkdirAll(s.dir, 0o755); err != nil {
				s.err = fmt.Errorf("vector: create %s: %w", s.dir, err)
				return
			}
		}
		path := filepath.Join(s.dir, fmt.Sprintf("frame-%04d.%s", s.count, s.ext))
		if err := os.WriteFile(path, frame, 0o644); err != nil {
			s.err = fmt.Errorf("vector: write frame: %w", err)
		}
		return
	}

	if s.count > 1 && s.sep != "" {
		if _, err := io.WriteString(s.out, s.sep); err != nil {
			s.err = fmt.Errorf("vector: write frame: %w", err)
			return
		}
	}
	if _, err := s.out.Write(frame); err != nil {
		s.err = fmt.Errorf("vector: write frame: %w", err)
	}
}

// pending holds the grid between Display and the Status call that
// completes the frame.
type pending struct {
	grid engine.Grid
	has  bool
}

func (p *pending) take() (engine.Grid, bool) {
	g, ok := p.grid, p.has
	p.grid, p.has = engine.Grid{}, false
	return g, ok
}
