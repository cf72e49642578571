// Package config provides configuration types and defaults for marktime.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"

	"github.com/zjrosen/marktime/internal/log"
)

// Config holds all configuration options for marktime.
type Config struct {
	Editor   EditorConfig   `mapstructure:"editor"`
	Timecode TimecodeConfig `mapstructure:"timecode"`
	Keys     KeysConfig     `mapstructure:"keys"`
	Store    StoreConfig    `mapstructure:"store"`
	Theme    ThemeConfig    `mapstructure:"theme"`
}

// EditorConfig holds editing surface options.
type EditorConfig struct {
	ShowLineNumbers bool   `mapstructure:"show_line_numbers"`
	Autosave        bool   `mapstructure:"autosave"`       // Save on quit when the buffer is dirty
	MarkdownStyle   string `mapstructure:"markdown_style"` // "dark" (default) or "light"
}

// TimecodeConfig holds timecode insertion and transport options.
type TimecodeConfig struct {
	// MultiOffsets are the seconds subtracted from the playback position by
	// the multi insert, most distant first.
	MultiOffsets []float64 `mapstructure:"multi_offsets"`

	// SeekStep is how far the back/forward keys move the clock, in seconds.
	SeekStep float64 `mapstructure:"seek_step"`
}

// KeysConfig holds the key strings bound to each command.
type KeysConfig struct {
	Single  string `mapstructure:"single"`
	Multi   string `mapstructure:"multi"`
	Play    string `mapstructure:"play"`
	Back    string `mapstructure:"back"`
	Forward string `mapstructure:"forward"`
	Copy    string `mapstructure:"copy"`
	Save    string `mapstructure:"save"`
	Help    string `mapstructure:"help"`
	Quit    string `mapstructure:"quit"`
}

// StoreConfig holds session store options.
type StoreConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"` // sqlite file, default ~/.config/marktime/sessions.db
}

// ThemeConfig holds colour overrides keyed by decoration kind.
// Example YAML:
//
//	colors:
//	  timecode: "#F59E0B"
//	  heading: "#60A5FA"
type ThemeConfig struct {
	Colors map[string]string `mapstructure:"colors"`
}

// ThemeKinds are the keys accepted in theme.colors.
var ThemeKinds = []string{
	"blockquote", "code", "heading", "hr", "list", "timecode", "bare-timecode",
	"link", "bold", "italic", "punctuation", "variable", "string",
}

// DefaultStorePath returns ~/.config/marktime/sessions.db, or an empty
// string if the home directory is unavailable.
func DefaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "marktime", "sessions.db")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Editor: EditorConfig{
			ShowLineNumbers: true,
			Autosave:        false,
			MarkdownStyle:   "dark",
		},
		Timecode: TimecodeConfig{
			MultiOffsets: []float64{3, 2, 1},
			SeekStep:     5,
		},
		Keys: KeysConfig{
			Single:  "alt+j",
			Multi:   "alt+J",
			Play:    "alt+p",
			Back:    "alt+,",
			Forward: "alt+.",
			Copy:    "alt+c",
			Save:    "ctrl+s",
			Help:    "f1",
			Quit:    "ctrl+c",
		},
		Store: StoreConfig{
			Enabled: true,
			Path:    DefaultStorePath(),
		},
	}
}

// Validate checks the whole configuration.
func Validate(cfg Config) error {
	if err := ValidateEditor(cfg.Editor); err != nil {
		return err
	}
	if err := ValidateTimecode(cfg.Timecode); err != nil {
		return err
	}
	if err := ValidateKeys(cfg.Keys); err != nil {
		return err
	}
	if err := ValidateStore(cfg.Store); err != nil {
		return err
	}
	return ValidateTheme(cfg.Theme)
}

// ValidateEditor checks editor options. An empty markdown style uses the default.
func ValidateEditor(e EditorConfig) error {
	switch e.MarkdownStyle {
	case "", "dark", "light":
		return nil
	default:
		return fmt.Errorf("editor.markdown_style must be \"dark\" or \"light\", got %q", e.MarkdownStyle)
	}
}

// ValidateTimecode checks offsets and the seek step.
func ValidateTimecode(tc TimecodeConfig) error {
	for i, off := range tc.MultiOffsets {
		if math.IsNaN(off) || off < 0 {
			return fmt.Errorf("timecode.multi_offsets[%d] must be >= 0, got %v", i, off)
		}
	}
	if !(tc.SeekStep > 0) {
		return fmt.Errorf("timecode.seek_step must be positive, got %v", tc.SeekStep)
	}
	return nil
}

// ValidateKeys requires every binding and forbids the two insert commands
// from sharing a key.
func ValidateKeys(k KeysConfig) error {
	named := []struct {
		name, value string
	}{
		{"single", k.Single},
		{"multi", k.Multi},
		{"play", k.Play},
		{"back", k.Back},
		{"forward", k.Forward},
		{"copy", k.Copy},
		{"save", k.Save},
		{"help", k.Help},
		{"quit", k.Quit},
	}
	for _, n := range named {
		if n.value == "" {
			return fmt.Errorf("keys.%s is required", n.name)
		}
	}
	if k.Single == k.Multi {
		return fmt.Errorf("keys.single and keys.multi must differ, both are %q", k.Single)
	}
	return nil
}

// ValidateStore requires a path when the store is enabled.
func ValidateStore(s StoreConfig) error {
	if s.Enabled && s.Path == "" {
		return fmt.Errorf("store.path is required when store.enabled is true")
	}
	return nil
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateTheme checks colour overrides.
func ValidateTheme(t ThemeConfig) error {
	for kind, color := range t.Colors {
		if !isThemeKind(kind) {
			return fmt.Errorf("theme.colors: unknown kind %q", kind)
		}
		if !hexColor.MatchString(color) {
			return fmt.Errorf("theme.colors.%s: invalid hex color %q", kind, color)
		}
	}
	return nil
}

func isThemeKind(kind string) bool {
	for _, k := range ThemeKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# marktime configuration

# Editing surface
editor:
  show_line_numbers: true
  autosave: false         # Save on quit when there are unsaved changes
  # markdown_style: dark  # Help overlay style: "dark" (default) or "light"

# Timecode insertion and transport
timecode:
  # Seconds subtracted from the playback position by the multi insert,
  # most distant first. The current position is always appended.
  multi_offsets: [3, 2, 1]
  seek_step: 5            # Seconds moved by the back/forward keys

# Key bindings (bubbletea key names)
keys:
  single: alt+j           # Insert [HH:MM:SS] for the current position
  multi: alt+J            # Insert a retrospective run
  play: alt+p
  back: "alt+,"
  forward: alt+.
  copy: alt+c             # Copy the current timecode to the clipboard
  save: ctrl+s
  help: f1
  quit: ctrl+c

# Session store: remembers content and playback position per file
store:
  enabled: true
  # path: ~/.config/marktime/sessions.db

# Decoration colours by kind
# theme:
#   colors:
#     timecode: "#F59E0B"
#     heading: "#60A5FA"
#
# Kinds: blockquote, code, heading, hr, list, timecode, bare-timecode,
#        link, bold, italic, punctuation, variable, string
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
