package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	if r == ' ' {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapperMapKey(t *testing.T) {
	km := NewKeyMapper(nil)

	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{tea.KeyMsg{Type: tea.KeyDown}, core.ActionSoftDrop},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionRotateCW},
		{runeKey(' '), core.ActionHardDrop},
		{runeKey('z'), core.ActionRotateCCW},
		{runeKey('e'), core.ActionRotateCW},
		{runeKey('p'), core.ActionPause},
		{runeKey('r'), core.ActionRestart},
		{tea.KeyMsg{Type: tea.KeyEscape}, core.ActionBack},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runeKey('?'), core.ActionNone},
	}
	for _, tt := range tests {
		if got := km.MapKey(tt.msg); got != tt.want {
			t.Errorf("MapKey(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestKeyMapperCustomBindings(t *testing.T) {
	km := NewKeyMapper(core.KeyMap{"u": core.ActionRotateCCW})
	if got := km.MapKey(runeKey('u')); got != core.ActionRotateCCW {
		t.Errorf("MapKey(u) = %v, expected RotateCCW", got)
	}
	if got := km.MapKey(runeKey('z')); got != core.ActionNone {
		t.Errorf("MapKey(z) = %v, expected None with custom bindings", got)
	}
}

func TestKeyMapperMenuActions(t *testing.T) {
	km := NewKeyMapper(nil)

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{runeKey(' '), MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionHistory},
		{tea.KeyMsg{Type: tea.KeyEscape}, MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
		}
	}
}
