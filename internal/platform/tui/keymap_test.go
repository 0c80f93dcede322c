package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestGameKeyMapAction(t *testing.T) {
	keys := DefaultGameKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{"a", runeKey('a'), core.ActionLeft},
		{"vim right", runeKey('l'), core.ActionRight},
		{"arrow up rotates", tea.KeyMsg{Type: tea.KeyUp}, core.ActionRotate},
		{"x rotates", runeKey('x'), core.ActionRotate},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionSoftDrop},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionHardDrop},
		{"pause", runeKey('p'), core.ActionPause},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm},
		{"restart", runeKey('r'), core.ActionRestart},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{"quit", runeKey('q'), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"screenshot is not an action", tea.KeyMsg{Type: tea.KeyCtrlS}, core.ActionNone},
		{"unbound", runeKey('z'), core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keys.Action(tt.msg); got != tt.want {
				t.Errorf("Action(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestKeyMapHelp(t *testing.T) {
	if len(DefaultGameKeyMap().ShortHelp()) == 0 || len(DefaultGameKeyMap().FullHelp()) != 2 {
		t.Error("game key map help is incomplete")
	}
	if len(DefaultMenuKeyMap().ShortHelp()) == 0 || len(DefaultMenuKeyMap().FullHelp()) != 2 {
		t.Error("menu key map help is incomplete")
	}
}
