package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/play"
)

func newTestSession(t *testing.T) SessionModel {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	l := play.Launcher{Config: config.Default(), Seed: 21}
	return NewSessionModel(ctx, l, sampleHistory(), config.DifficultyNormal, 100, 30)
}

func update(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	sm, ok := updated.(SessionModel)
	require.True(t, ok)
	return sm, cmd
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	m := newTestSession(t)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, screenGame, m.screen)
	require.NotNil(t, cmd)
	ctrl := m.game.session.Controller

	// Run the batched commands: the controller and the first frame wait.
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	require.Len(t, batch, 2)
	ended := make(chan tea.Msg, 1)
	go func() { ended <- batch[0]() }()
	m, _ = update(t, m, batch[1]())
	assert.Contains(t, m.View(), "BLOCKFALL")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	assert.Equal(t, screenMenu, m.screen)

	select {
	case <-ctrl.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("controller still running after leaving the game")
	}

	// A late end message from the old game is ignored.
	msg := <-ended
	m, _ = update(t, m, msg)
	assert.Equal(t, screenMenu, m.screen)
	assert.NoError(t, m.Err())
}

func TestSessionHistory(t *testing.T) {
	m := newTestSession(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, screenHistory, m.screen)
	assert.Contains(t, m.View(), "RUN HISTORY")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	assert.Equal(t, screenMenu, m.screen)
}

func TestSessionQuitFromGame(t *testing.T) {
	m := newTestSession(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd := update(t, m, runeKey('q'))
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

func TestSessionSetupError(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.Palette = nil
	m := NewSessionModel(ctx, play.Launcher{Config: cfg}, nil, config.DifficultyNormal, 100, 30)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, screenMenu, m.screen)
	require.Error(t, m.Err())
	assert.Contains(t, m.View(), "error:")
}
