// Package canvas is an immediate-mode terminal frontend drawing straight
// to a tcell screen. It registers itself as the "tcell" backend.
package canvas

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/platform/frame"
	"github.com/vovakirdan/blockfall/internal/registry"
)

func init() {
	registry.Register("tcell", "tcell canvas", func(registry.Options) (engine.Renderer, error) {
		return New(), nil
	})
}

// Canvas keeps the latest frame and redraws it on the tcell screen from
// its own event loop. Display and Status may be called from any goroutine.
type Canvas struct {
	newScreen func() (tcell.Screen, error)

	mu     sync.Mutex
	grid   engine.Grid
	status engine.Status
	ready  bool
	screen tcell.Screen
}

// Option configures a Canvas.
type Option func(*Canvas)

// WithScreen makes Run use s instead of the real terminal.
func WithScreen(s tcell.Screen) Option {
	return func(c *Canvas) {
		c.newScreen = func() (tcell.Screen, error) { return s, nil }
	}
}

// New creates a canvas. The screen is opened by Run.
func New(opts ...Option) *Canvas {
	c := &Canvas{newScreen: tcell.NewScreen}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init implements engine.Renderer.
func (c *Canvas) Init(rows, columns int) {
	c.mu.Lock()
	c.grid = engine.NewGrid(rows, columns)
	c.ready = false
	c.mu.Unlock()
}

// Display implements engine.Renderer.
func (c *Canvas) Display(grid engine.Grid) {
	c.mu.Lock()
	c.grid = grid
	c.mu.Unlock()
}

// Status implements engine.StatusReporter. It completes a frame and wakes
// the draw loop.
func (c *Canvas) Status(st engine.Status) {
	c.mu.Lock()
	c.status = st
	c.ready = true
	screen := c.screen
	c.mu.Unlock()

	if screen != nil {
		//nolint:errcheck // A full queue already has a pending redraw
		screen.PostEvent(tcell.NewEventInterrupt(nil))
	}
}

func (c *Canvas) latest() (engine.Grid, engine.Status, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.grid, c.status, c.ready
}

// Run opens the screen and plays until the player quits or ctx ends.
// The controller runs alongside the event loop; either one stopping
// stops both.
func (c *Canvas) Run(ctx context.Context, s registry.Session) error {
	screen, err := c.newScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	screen.HideCursor()
	c.mu.Lock()
	c.screen = screen
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.screen = nil
		c.mu.Unlock()
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return s.Controller.Run(gctx)
	})
	g.Go(func() error {
		defer cancel()
		return c.loop(gctx, screen, s)
	})
	return g.Wait()
}

func (c *Canvas) loop(ctx context.Context, screen tcell.Screen, s registry.Session) error {
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go screen.ChannelEvents(events, quit)

	keys := s.KeyMap
	if keys == nil {
		keys = core.DefaultKeyMap()
	}

	var buf *core.Screen
	c.draw(screen, &buf, s.Title)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				_, st, _ := c.latest()
				if s.Handle(keys.Map(KeyName(ev)), st) {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
				c.draw(screen, &buf, s.Title)
			case *tcell.EventInterrupt:
				c.draw(screen, &buf, s.Title)
			}
		}
	}
}

// draw composes the latest frame into buf and copies it to the screen,
// centered.
func (c *Canvas) draw(screen tcell.Screen, buf **core.Screen, title string) {
	grid, st, ok := c.latest()
	screen.Clear()
	if !ok {
		screen.Show()
		return
	}

	w, h := frame.Size(grid.Rows, grid.Columns)
	if *buf == nil || (*buf).Width() != w || (*buf).Height() != h {
		*buf = core.NewScreen(w, h)
	}
	b := *buf
	b.Clear()
	frame.Compose(b, grid, st, title, frame.Unicode)

	sw, sh := screen.Size()
	area := core.NewRect(0, 0, sw, sh).Centered(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cell := b.GetCell(x, y)
			screen.SetContent(area.X+x, area.Y+y, cell.Rune, nil, Style(cell.Color))
		}
	}
	screen.Show()
}

// Style returns the tcell style for a palette color.
func Style(c core.Color) tcell.Style {
	n := c.ANSI()
	if n < 0 {
		return tcell.StyleDefault
	}
	return tcell.StyleDefault.Foreground(tcell.PaletteColor(n))
}

// KeyName converts a tcell key event to the key names used by core.KeyMap.
func KeyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyLeft:
		return "left"
	case tcell.KeyRight:
		return "right"
	case tcell.KeyUp:
		return "up"
	case tcell.KeyDown:
		return "down"
	case tcell.KeyEscape:
		return "esc"
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyCtrlC:
		return "ctrl+c"
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModCtrl != 0 && (ev.Rune() == 'c' || ev.Rune() == 'C') {
			return "ctrl+c"
		}
		if ev.Rune() == ' ' {
			return "space"
		}
		return string(ev.Rune())
	}
	return ""
}
