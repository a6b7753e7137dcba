// Package tui provides the Bubble Tea integration for blockfall.
// It handles the terminal UI loop, input mapping, menus, run history
// and the SSH server.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/registry"
)

func init() {
	registry.Register("tui", "Bubble Tea terminal", func(registry.Options) (engine.Renderer, error) {
		return NewFeed(), nil
	})
}

// FrameMsg carries one complete frame from the controller to the model.
type FrameMsg struct {
	Grid   engine.Grid
	Status engine.Status
}

// Feed is a renderer that hands frames to a Bubble Tea program through a
// one-slot channel. When the UI falls behind, stale frames are replaced
// by the newest one.
type Feed struct {
	frames chan FrameMsg
	grid   engine.Grid
}

// NewFeed creates an empty feed.
func NewFeed() *Feed {
	return &Feed{frames: make(chan FrameMsg, 1)}
}

// Frames returns the channel the model reads from.
func (f *Feed) Frames() <-chan FrameMsg {
	return f.frames
}

// Init implements engine.Renderer.
func (f *Feed) Init(rows, columns int) {
	f.grid = engine.NewGrid(rows, columns)
}

// Display implements engine.Renderer.
func (f *Feed) Display(grid engine.Grid) {
	f.grid = grid
}

// Status implements engine.StatusReporter and publishes the frame.
func (f *Feed) Status(st engine.Status) {
	msg := FrameMsg{Grid: f.grid, Status: st}
	for {
		select {
		case f.frames <- msg:
			return
		default:
		}
		// Drop the unread frame and retry
		select {
		case <-f.frames:
		default:
		}
	}
}

// waitForFrame returns a command that delivers the next frame, or nil
// once done is closed.
func waitForFrame(frames <-chan FrameMsg, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case f := <-frames:
			return f
		case <-done:
			return nil
		}
	}
}
