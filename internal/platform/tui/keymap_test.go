package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapAction(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{"a", runeKey('a'), core.ActionLeft},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{"d", runeKey('d'), core.ActionRight},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionUp},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown},
		{"pause", runeKey('p'), core.ActionPause},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause},
		{"restart", runeKey('r'), core.ActionRestart},
		{"quit", runeKey('q'), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound", runeKey('z'), core.ActionNone},
		{"screenshot is not an action", tea.KeyMsg{Type: tea.KeyCtrlS}, core.ActionNone},
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
	keys := DefaultKeyMap()
	if len(keys.ShortHelp()) == 0 {
		t.Error("short help should not be empty")
	}
	total := 0
	for _, col := range keys.FullHelp() {
		total += len(col)
	}
	if total != 9 {
		t.Errorf("full help lists %d bindings, expected 9", total)
	}
}
