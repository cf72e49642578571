// Package keys contains keybinding definitions.
package keys

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/marktime/internal/config"
	"github.com/zjrosen/marktime/internal/hotkey"
)

// KeyMap defines the keybindings for the editor.
type KeyMap struct {
	// Timecodes
	Single key.Binding
	Multi  key.Binding

	// Transport
	Play    key.Binding
	Back    key.Binding
	Forward key.Binding
	Copy    key.Binding

	// General
	Focus key.Binding
	Save  key.Binding
	Help  key.Binding
	Quit  key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return FromConfig(config.Defaults().Keys)
}

// FromConfig builds a KeyMap from the user's key settings.
func FromConfig(k config.KeysConfig) KeyMap {
	return KeyMap{
		Single:  binding(k.Single, "insert timecode"),
		Multi:   binding(k.Multi, "insert timecode run"),
		Play:    binding(k.Play, "play/pause"),
		Back:    binding(k.Back, "seek back"),
		Forward: binding(k.Forward, "seek forward"),
		Copy:    binding(k.Copy, "copy timecode"),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Save: binding(k.Save, "save"),
		Help: binding(k.Help, "toggle help"),
		Quit: binding(k.Quit, "quit"),
	}
}

func binding(k, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(k),
		key.WithHelp(k, desc),
	)
}

// Command maps a key press to a timecode command. ok is false for every
// other key.
func (k KeyMap) Command(msg tea.KeyMsg) (cmd hotkey.Command, ok bool) {
	switch {
	case key.Matches(msg, k.Single):
		return hotkey.CommandSingle, true
	case key.Matches(msg, k.Multi):
		return hotkey.CommandMulti, true
	}
	return "", false
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Single, k.Multi, k.Play, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Single, k.Multi},                 // Timecodes
		{k.Play, k.Back, k.Forward, k.Copy}, // Transport
		{k.Focus, k.Save, k.Help, k.Quit},   // General
	}
}
