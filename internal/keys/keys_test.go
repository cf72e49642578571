package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/marktime/internal/config"
	"github.com/zjrosen/marktime/internal/hotkey"
)

func TestDefaultKeyMap_Assignments(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name     string
		binding  key.Binding
		expected []string
	}{
		{"Single uses alt+j", km.Single, []string{"alt+j"}},
		{"Multi uses alt+J", km.Multi, []string{"alt+J"}},
		{"Play uses alt+p", km.Play, []string{"alt+p"}},
		{"Back uses alt+,", km.Back, []string{"alt+,"}},
		{"Forward uses alt+.", km.Forward, []string{"alt+."}},
		{"Copy uses alt+c", km.Copy, []string{"alt+c"}},
		{"Save uses ctrl+s", km.Save, []string{"ctrl+s"}},
		{"Help uses f1", km.Help, []string{"f1"}},
		{"Quit uses ctrl+c", km.Quit, []string{"ctrl+c"}},
		{"Focus uses tab", km.Focus, []string{"tab"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.binding.Keys())
			require.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestCommand(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want hotkey.Command
		ok   bool
	}{
		{"single", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}, Alt: true}, hotkey.CommandSingle, true},
		{"multi", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'J'}, Alt: true}, hotkey.CommandMulti, true},
		{"plain j types text", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}, "", false},
		{"save is not a timecode command", tea.KeyMsg{Type: tea.KeyCtrlS}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := km.Command(tt.msg)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFromConfig_Overrides(t *testing.T) {
	cfg := config.Defaults().Keys
	cfg.Single = "ctrl+t"

	km := FromConfig(cfg)
	require.Equal(t, []string{"ctrl+t"}, km.Single.Keys())
	require.Equal(t, "ctrl+t", km.Single.Help().Key)

	cmd, ok := km.Command(tea.KeyMsg{Type: tea.KeyCtrlT})
	require.True(t, ok)
	require.Equal(t, hotkey.CommandSingle, cmd)
}

func TestFullHelp_CoversEveryBinding(t *testing.T) {
	km := DefaultKeyMap()
	var n int
	for _, group := range km.FullHelp() {
		n += len(group)
	}
	require.Equal(t, 10, n)
	require.Len(t, km.ShortHelp(), 5)
}
