package canvas

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/registry"
)

// lockedScreen serializes drawing and reading so tests can inspect the
// screen while the canvas loop draws on it.
type lockedScreen struct {
	tcell.SimulationScreen
	mu sync.Mutex
}

func (s *lockedScreen) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.SimulationScreen.Init()
}

func (s *lockedScreen) Fini() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SimulationScreen.Fini()
}

func (s *lockedScreen) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SimulationScreen.Clear()
}

func (s *lockedScreen) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SimulationScreen.SetContent(x, y, primary, combining, style)
}

func (s *lockedScreen) Show() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SimulationScreen.Show()
}

func (s *lockedScreen) Sync() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SimulationScreen.Sync()
}

func (s *lockedScreen) GetContents() ([]tcell.SimCell, int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.SimulationScreen.GetContents()
}

func screenText(s *lockedScreen) string {
	cells, w, _ := s.GetContents()
	var sb strings.Builder
	for i, c := range cells {
		if i > 0 && i%w == 0 {
			sb.WriteByte('\n')
		}
		if len(c.Runes) > 0 {
			sb.WriteRune(c.Runes[0])
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

type harness struct {
	screen *lockedScreen
	ctrl   *engine.Controller
	errc   chan error
	cancel context.CancelFunc
}

func start(t *testing.T) *harness {
	t.Helper()
	screen := &lockedScreen{SimulationScreen: tcell.NewSimulationScreen("UTF-8")}
	c := New(WithScreen(screen))

	cfg := engine.DefaultConfig()
	cfg.Rows = 10
	cfg.Columns = 8
	cfg.Timing.DropIntervalStart = time.Hour
	cfg.Timing.DropIntervalMinimum = time.Hour
	game, err := engine.NewGame(cfg, 5, c)
	require.NoError(t, err)

	h := &harness{screen: screen, ctrl: engine.NewController(game), errc: make(chan error, 1)}
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	go func() {
		h.errc <- c.Run(ctx, registry.Session{Controller: h.ctrl, KeyMap: core.DefaultKeyMap(), Title: "TEST RUN"})
	}()
	t.Cleanup(cancel)
	return h
}

func (h *harness) snapshot(t *testing.T) engine.Snapshot {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	snap, err := h.ctrl.Snapshot(ctx)
	require.NoError(t, err)
	return snap
}

func TestCanvasDrawsFrame(t *testing.T) {
	h := start(t)
	require.Eventually(t, func() bool {
		return strings.Contains(screenText(h.screen), "TEST RUN")
	}, 2*time.Second, 10*time.Millisecond)

	text := screenText(h.screen)
	assert.Contains(t, text, "Lines")
	assert.Contains(t, text, "█")
}

func TestCanvasKeysReachController(t *testing.T) {
	h := start(t)
	require.Eventually(t, func() bool {
		return strings.Contains(screenText(h.screen), "TEST RUN")
	}, 2*time.Second, 10*time.Millisecond)

	h.screen.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
	require.Eventually(t, func() bool {
		return h.snapshot(t).Pieces == 2
	}, 2*time.Second, 10*time.Millisecond, "hard drop should lock and spawn")

	h.screen.InjectKey(tcell.KeyRune, 'p', tcell.ModNone)
	require.Eventually(t, func() bool {
		return h.snapshot(t).Paused
	}, 2*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool {
		return strings.Contains(screenText(h.screen), "PAUSED")
	}, 2*time.Second, 10*time.Millisecond)
}

func TestCanvasQuitStopsController(t *testing.T) {
	h := start(t)
	require.Eventually(t, func() bool {
		return strings.Contains(screenText(h.screen), "TEST RUN")
	}, 2*time.Second, 10*time.Millisecond)

	h.screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	select {
	case err := <-h.errc:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after q")
	}
	select {
	case <-h.ctrl.Done():
	default:
		t.Error("controller still running after quit")
	}
}

func TestCanvasContextCancel(t *testing.T) {
	h := start(t)
	h.cancel()
	select {
	case err := <-h.errc:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestCanvasScreenReadableWhileDrawing(t *testing.T) {
	h := start(t)
	deadline := time.Now().Add(300 * time.Millisecond)
	for i := 0; time.Now().Before(deadline); i++ {
		if i%2 == 0 {
			h.screen.InjectKey(tcell.KeyRune, 'p', tcell.ModNone)
		}
		_ = screenText(h.screen)
		time.Sleep(time.Millisecond)
	}
	h.cancel()
	select {
	case err := <-h.errc:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestKeyName(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want string
	}{
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), "left"},
		{tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), "down"},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "esc"},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), "space"},
		{tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), "z"},
		{tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), ""},
	}
	for _, tt := range tests {
		if got := KeyName(tt.ev); got != tt.want {
			t.Errorf("KeyName(%v) = %q, expected %q", tt.ev.Name(), got, tt.want)
		}
	}
}

func TestStyle(t *testing.T) {
	if Style(core.ColorDefault) != tcell.StyleDefault {
		t.Error("Style(default) should be the default style")
	}
	fg, _, _ := Style(core.ColorOrange).Decompose()
	if fg != tcell.PaletteColor(208) {
		t.Errorf("Style(orange) fg = %v", fg)
	}
}
