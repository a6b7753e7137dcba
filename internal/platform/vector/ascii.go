package vector

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/platform/frame"
	"github.com/vovakirdan/blockfall/internal/registry"
)

// ASCII renders each frame as plain text: a header line followed by the
// board and status panel.
type ASCII struct {
	sink    *sink
	pending pending
	screen  *core.Screen
}

// NewASCII creates an ASCII renderer writing to opts.
func NewASCII(opts registry.Options) *ASCII {
	return &ASCII{sink: newSink(opts, "txt", "\n")}
}

// Init implements engine.Renderer.
func (a *ASCII) Init(rows, columns int) {
	w, h := frame.Size(rows, columns)
	a.screen = core.NewScreen(w, h)
}

// Display implements engine.Renderer. The frame is written on the
// following Status call.
func (a *ASCII) Display(grid engine.Grid) {
	a.pending = pending{grid: grid, has: true}
}

// Status implements engine.StatusReporter.
func (a *ASCII) Status(st engine.Status) {
	grid, ok := a.pending.take()
	if !ok || a.screen == nil {
		return
	}
	a.screen.Clear()
	frame.Compose(a.screen, grid, st, "", frame.ASCII)

	var sb strings.Builder
	fmt.Fprintf(&sb, "-- frame %d gen %d --\n", a.sink.count+1, st.Generation)
	for y := 0; y < a.screen.Height(); y++ {
		sb.WriteString(strings.TrimRight(a.screen.Row(y), " "))
		sb.WriteByte('\n')
	}
	a.sink.write([]byte(sb.String()))
}

// Frames returns how many frames have been written.
func (a *ASCII) Frames() int { return a.sink.count }

// Err returns the first write error.
func (a *ASCII) Err() error { return a.sink.err }
