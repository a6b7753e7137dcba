package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
)

// GameModel is the Bubble Tea model for one running game. The game
// itself lives in a controller goroutine; the model only forwards keys
// and shows the frames it receives.
type GameModel struct {
	session    registry.Session
	frames     <-chan FrameMsg
	keyMapper  *KeyMapper
	frame      FrameMsg
	hasFrame   bool
	width      int
	height     int
	standalone bool // Back quits the program instead of returning to a menu
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model reading frames from feed.
func NewGameModel(feed *Feed, s registry.Session, width, height int) GameModel {
	return GameModel{
		session:   s,
		frames:    feed.Frames(),
		keyMapper: NewKeyMapper(s.KeyMap),
		width:     width,
		height:    height,
	}
}

// Init starts listening for frames.
func (m GameModel) Init() tea.Cmd {
	return waitForFrame(m.frames, m.session.Controller.Done())
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FrameMsg:
		m.frame = msg
		m.hasFrame = true
		return m, waitForFrame(m.frames, m.session.Controller.Done())

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKey(msg)
	if !m.session.Handle(action, m.frame.Status) {
		return m, nil
	}

	if action == core.ActionQuit || m.standalone {
		m.quitting = true
		return m, tea.Quit
	}
	m.backToMenu = true
	return m, nil
}

// View renders the latest frame.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.hasFrame {
		return "loading..."
	}
	return RenderFrame(m.frame, m.session.Title, m.width, m.height)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run implements registry.Frontend: it plays one game full-screen until
// the player quits or ctx is cancelled.
func (f *Feed) Run(ctx context.Context, s registry.Session) error {
	model := NewGameModel(f, s, 0, 0)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)
	return runWithController(ctx, p, s)
}

// runWithController runs the controller and the program side by side.
// Whichever ends first stops the other.
func runWithController(ctx context.Context, p *tea.Program, s registry.Session) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return s.Controller.Run(gctx)
	})
	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		p.Quit()
		return nil
	})
	return g.Wait()
}
