package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/play"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenHistory
)

// gameEndedMsg is sent when a game's controller returns.
type gameEndedMsg struct {
	game int
	err  error
}

// SessionModel manages the full session flow: menu -> game -> menu, with
// the history browser one key away. Each game gets its own controller
// goroutine bound to the session context.
type SessionModel struct {
	ctx      context.Context
	launcher play.Launcher
	history  HistoryStore
	preset   config.DifficultyPreset
	width    int
	height   int

	screen      sessionScreen
	menu        MenuModel
	historyView HistoryModel
	game        GameModel
	stopGame    context.CancelFunc
	games       int // Number of games started, used to match gameEndedMsg
	err         error
	quitting    bool
}

// NewSessionModel creates a session. history may be nil.
func NewSessionModel(ctx context.Context, l play.Launcher, history HistoryStore, preset config.DifficultyPreset, width, height int) SessionModel {
	return SessionModel{
		ctx:      ctx,
		launcher: l,
		history:  history,
		preset:   preset,
		width:    width,
		height:   height,
		menu:     NewMenuModel(preset, width, height),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}
	if ended, ok := msg.(gameEndedMsg); ok && m.screen == screenGame && ended.game == m.games {
		m.err = ended.err
		m.leaveGame()
		return m, nil
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenHistory:
		return m.updateHistory(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsHistory() {
		m.historyView = NewHistoryModel(m.history, m.width, m.height)
		m.screen = screenHistory
		return m, m.historyView.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		m.preset = selected.Preset
		return m.startGame()
	}

	return m, cmd
}

// startGame builds a game for the selected preset and starts its
// controller.
func (m SessionModel) startGame() (tea.Model, tea.Cmd) {
	feed := NewFeed()
	s, err := m.launcher.Start(m.preset, feed)
	if err != nil {
		m.err = err
		m.menu = NewMenuModel(m.preset, m.width, m.height)
		return m, nil
	}
	// Only the first game of a session uses the fixed seed
	m.launcher.Seed = 0

	ctx, cancel := context.WithCancel(m.ctx)
	m.stopGame = cancel
	m.games++
	id := m.games
	m.game = NewGameModel(feed, s, m.width, m.height)
	m.screen = screenGame
	m.err = nil

	run := func() tea.Msg {
		return gameEndedMsg{game: id, err: s.Controller.Run(ctx)}
	}
	return m, tea.Batch(run, m.game.Init())
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = gameModel
	}

	if m.game.IsQuitting() {
		m.leaveGame()
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.leaveGame()
		return m, m.menu.Init()
	}

	return m, cmd
}

// leaveGame stops the running controller and returns to the menu.
func (m *SessionModel) leaveGame() {
	if m.stopGame != nil {
		m.stopGame()
		m.stopGame = nil
	}
	m.screen = screenMenu
	m.menu = NewMenuModel(m.preset, m.width, m.height)
}

// updateHistory handles updates when browsing run history.
func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.historyView.Update(msg)
	if hm, ok := newModel.(HistoryModel); ok {
		m.historyView = hm
	}

	if m.historyView.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.historyView.IsGoingBack() {
		m.screen = screenMenu
		m.menu = NewMenuModel(m.preset, m.width, m.height)
		return m, m.menu.Init()
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenHistory:
		return m.historyView.View()
	}

	view := m.menu.View()
	if m.err != nil {
		view += "\n" + centerText("error: "+m.err.Error(), m.width)
	}
	return view
}

// Err returns the last game setup error, if any.
func (m SessionModel) Err() error {
	return m.err
}

// Close stops a game that is still running.
func (m SessionModel) Close() {
	if m.stopGame != nil {
		m.stopGame()
	}
}

// RunSession runs the menu-driven session on the local terminal.
func RunSession(ctx context.Context, l play.Launcher, history HistoryStore, preset config.DifficultyPreset) error {
	model := NewSessionModel(ctx, l, history, preset, 0, 0)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if sm, ok := final.(SessionModel); ok {
		sm.Close()
	}
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
