// Package app contains the root application model.
package app

import (
	"errors"
	"fmt"
	"time"

	bubbleshelp "github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/zjrosen/marktime/internal/config"
	"github.com/zjrosen/marktime/internal/document"
	"github.com/zjrosen/marktime/internal/hotkey"
	"github.com/zjrosen/marktime/internal/keys"
	"github.com/zjrosen/marktime/internal/log"
	"github.com/zjrosen/marktime/internal/playback"
	"github.com/zjrosen/marktime/internal/sessions/domain"
	"github.com/zjrosen/marktime/internal/timecode"
	"github.com/zjrosen/marktime/internal/ui/help"
	"github.com/zjrosen/marktime/internal/ui/preview"
	"github.com/zjrosen/marktime/internal/ui/styles"
	"github.com/zjrosen/marktime/internal/watcher"
)

// tickInterval is how often the transport readout refreshes.
const tickInterval = 250 * time.Millisecond

type pane int

const (
	paneEditor pane = iota
	panePreview
)

type tickMsg time.Time

type fileChangedMsg struct{}

// Config holds everything the application needs from the command layer.
type Config struct {
	Settings  config.Config
	Document  *document.Document
	Sessions  domain.SessionRepository // nil disables session restore
	Clipboard Clipboard
	Clock     *playback.Clock
	Watch     bool // reload on external writes
}

// Model is the root application state.
type Model struct {
	settings config.Config
	keys     keys.KeyMap

	editor    textarea.Model
	preview   preview.Model
	help      help.Model
	shortHelp bubbleshelp.Model
	showHelp  bool
	focus     pane

	doc       *document.Document
	sessions  domain.SessionRepository
	session   *domain.Session
	clipboard Clipboard

	clock        *playback.Clock
	resolver     *playback.Resolver
	orchestrator *hotkey.Orchestrator

	watcherHandle *watcher.Watcher
	changes       <-chan struct{}

	status     string
	statusKind statusKind

	width  int
	height int
}

// New creates the application model. A stored session for the document
// restores the playback position, and its content when the file is empty.
func New(cfg Config) Model {
	clock := cfg.Clock
	if clock == nil {
		clock = playback.NewClock()
	}
	clip := cfg.Clipboard
	if clip == nil {
		clip = SystemClipboard{}
	}
	km := keys.FromConfig(cfg.Settings.Keys)

	editor := textarea.New()
	editor.ShowLineNumbers = cfg.Settings.Editor.ShowLineNumbers
	editor.CharLimit = 0
	editor.MaxHeight = 0
	editor.Placeholder = "Start typing notes..."

	m := Model{
		settings:     cfg.Settings,
		keys:         km,
		editor:       editor,
		preview:      preview.New(),
		help:         help.New(km, cfg.Settings.Editor.MarkdownStyle),
		shortHelp:    bubbleshelp.New(),
		doc:          cfg.Document,
		sessions:     cfg.Sessions,
		clipboard:    clip,
		clock:        clock,
		resolver:     playback.NewResolver(clock),
		orchestrator: hotkey.New(hotkey.WithOffsets(cfg.Settings.Timecode.MultiOffsets)),
	}

	m.restoreSession()
	m.editor.SetValue(m.doc.Content())
	m.editor.Focus()
	m.preview.SetContent(m.doc.Content())

	if cfg.Watch {
		w, err := watcher.New(watcher.DefaultConfig(m.doc.Path()))
		if err == nil {
			ch, err := w.Start()
			if err == nil {
				m.watcherHandle = w
				m.changes = ch
			} else {
				log.Warn(log.CatWatcher, "Failed to start watcher", "error", err)
				_ = w.Stop()
			}
		} else {
			log.Warn(log.CatWatcher, "Failed to create watcher", "error", err)
		}
	}

	return m
}

func (m *Model) restoreSession() {
	if m.sessions == nil {
		return
	}

	s, err := m.sessions.FindByPath(m.doc.Path())
	var notFound *domain.SessionNotFoundError
	switch {
	case errors.As(err, &notFound):
		m.session = domain.NewSession(uuid.NewString(), m.doc.Path())
		return
	case err != nil:
		log.ErrorErr(log.CatDB, "Failed to load session", err, "path", m.doc.Path())
		m.setError("session store unavailable")
		return
	}

	m.session = s
	m.clock.Seek(s.Position())
	if m.doc.Content() == "" && s.Content() != "" {
		m.doc.SetContent(s.Content())
		m.setInfo("restored unsaved notes")
	}
	log.Info(log.CatDB, "Restored session", "path", s.Path(), "position", s.Position())
}

func (m *Model) recordSession() {
	if m.sessions == nil || m.session == nil {
		return
	}
	m.session.Record(m.doc.Content(), m.clock.Position())
	if err := m.sessions.Save(m.session); err != nil {
		log.ErrorErr(log.CatDB, "Failed to save session", err, "path", m.doc.Path())
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink, tick()}
	if m.changes != nil {
		cmds = append(cmds, waitForChange(m.changes))
	}
	return tea.Batch(cmds...)
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tickMsg:
		return m, tick()

	case fileChangedMsg:
		m.handleFileChanged()
		return m, waitForChange(m.changes)

	case tea.MouseMsg:
		if m.showHelp {
			return m, nil
		}
		if span, ok := m.preview.SpanAt(msg); ok {
			if m.resolver.Resolve(span.Text) {
				m.setInfo("seek " + timecode.Timecode(m.clock.Position()).String())
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || msg.Type == tea.KeyEsc {
			m.showHelp = false
		}
		return m, nil
	}

	if cmd, ok := m.keys.Command(msg); ok {
		if m.orchestrator.Fire(cmd, m.clock.Position(), &m.editor) {
			m.syncFromEditor()
			m.preview.GotoLine(m.editor.Line())
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quit()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Save):
		m.save()
		return m, nil

	case key.Matches(msg, m.keys.Play):
		if m.clock.Toggle() {
			m.setInfo("playing")
		} else {
			m.setInfo("paused")
		}
		return m, nil

	case key.Matches(msg, m.keys.Back):
		m.clock.Nudge(-m.settings.Timecode.SeekStep)
		return m, nil

	case key.Matches(msg, m.keys.Forward):
		m.clock.Nudge(m.settings.Timecode.SeekStep)
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		m.copyToken()
		return m, nil

	case key.Matches(msg, m.keys.Focus):
		m.toggleFocus()
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == panePreview {
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	}
	m.editor, cmd = m.editor.Update(msg)
	m.syncFromEditor()
	return m, cmd
}

func (m *Model) syncFromEditor() {
	value := m.editor.Value()
	if value == m.doc.Content() {
		return
	}
	m.doc.SetContent(value)
	m.preview.SetContent(value)
}

func (m *Model) toggleFocus() {
	if m.focus == paneEditor {
		m.focus = panePreview
		m.editor.Blur()
		return
	}
	m.focus = paneEditor
	m.editor.Focus()
}

func (m *Model) save() {
	if err := m.doc.Save(); err != nil {
		log.ErrorErr(log.CatDoc, "Save failed", err, "path", m.doc.Path())
		m.setError("save failed: " + err.Error())
		return
	}
	m.recordSession()
	m.setInfo("saved")
}

func (m *Model) quit() {
	if m.settings.Editor.Autosave && m.doc.Dirty() {
		if err := m.doc.Save(); err != nil {
			log.ErrorErr(log.CatDoc, "Autosave failed", err, "path", m.doc.Path())
		}
	}
	m.recordSession()
}

func (m *Model) copyToken() {
	token, err := timecode.Token(m.clock.Position())
	if err != nil {
		m.setError("position out of range")
		return
	}
	if err := m.clipboard.Copy(token); err != nil {
		log.ErrorErr(log.CatUI, "Clipboard copy failed", err)
		m.setError("copy failed")
		return
	}
	m.setInfo("copied " + token)
}

func (m *Model) handleFileChanged() {
	result, summary, err := m.doc.Reload()
	if err != nil {
		log.ErrorErr(log.CatDoc, "Reload failed", err, "path", m.doc.Path())
		m.setError("reload failed")
		return
	}

	switch result {
	case document.Reloaded:
		m.editor.SetValue(m.doc.Content())
		m.preview.SetContent(m.doc.Content())
		m.setInfo(fmt.Sprintf("reloaded from disk (%s)", summary))
	case document.Conflict:
		m.setError(fmt.Sprintf("file changed on disk (%s), unsaved edits kept", summary))
	}
}

func (m *Model) setInfo(s string) {
	m.status, m.statusKind = s, statusInfo
}

func (m *Model) setError(s string) {
	m.status, m.statusKind = s, statusError
}

// layout splits the screen into two bordered panes above the status bar.
func (m *Model) layout() {
	frameW, frameH := styles.PaneStyle.GetFrameSize()
	paneH := max(m.height-1-frameH, 1)
	leftW := m.width / 2

	m.editor.SetWidth(max(leftW-frameW, 1))
	m.editor.SetHeight(paneH)
	m.preview.SetSize(max(m.width-leftW-frameW, 1), paneH)
	m.help = m.help.SetSize(m.width, m.height)
	m.shortHelp.Width = m.width / 2
}

// View implements tea.Model.
func (m Model) View() string {
	editorStyle, previewStyle := styles.FocusedPaneStyle, styles.PaneStyle
	if m.focus == panePreview {
		editorStyle, previewStyle = previewStyle, editorStyle
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		editorStyle.Render(m.editor.View()),
		previewStyle.Render(m.preview.View()),
	)
	view := lipgloss.JoinVertical(lipgloss.Left, panes, m.renderStatus())

	if m.showHelp {
		view = m.help.View(view)
	}
	return m.preview.Scan(view)
}

// Close releases resources held by the application.
func (m *Model) Close() error {
	m.preview.Close()
	if m.watcherHandle != nil {
		return m.watcherHandle.Stop()
	}
	return nil
}
