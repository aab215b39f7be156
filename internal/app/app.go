// Package app is the quire terminal program: it owns the document snapshot,
// feeds it through the bridge on every update and lays out the editor with a
// status line.
package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/quire/bridge"
	"github.com/iw2rmb/quire/document"
	"github.com/iw2rmb/quire/editable"
	"github.com/iw2rmb/quire/focus"
	"github.com/iw2rmb/quire/internal/config"
	graphemeutil "github.com/iw2rmb/quire/internal/grapheme"
)

// EditorID is the focus identity of the single editor.
const EditorID = "main"

// ConfigMsg delivers a reloaded configuration.
type ConfigMsg struct {
	Config *config.Config
	Err    error
}

// Options configures New.
type Options struct {
	Config *config.Config
	Value  document.Value
	// Title is shown in the status line, usually the source file name.
	Title string
	// Target defaults to focus.Document.
	Target *focus.Target
}

// KeyMap holds the application level bindings.
type KeyMap struct {
	Quit, Reset, Blur key.Binding
}

// DefaultKeyMap returns the application bindings: ctrl+q quits, ctrl+r resets
// the document to its initial snapshot and esc blurs the editor.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:  key.NewBinding(key.WithKeys("ctrl+c", "ctrl+q"), key.WithHelp("ctrl+q", "quit")),
		Reset: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset")),
		Blur:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "blur")),
	}
}

// state is shared with the bridge sink, so it outlives Model copies.
type state struct {
	value   document.Value
	changes int
}

func (s *state) sink(v document.Value) {
	s.value = v
	s.changes++
}

// Model is the root Bubble Tea model.
type Model struct {
	keys   KeyMap
	target *focus.Target
	cfg    *config.Config
	title  string

	ed     *document.Editor
	bridge *bridge.Bridge
	editor editable.Model

	initial document.Value
	state   *state
	fields  document.Fields

	// renderErr comes from the last bridge render, cfgErr from the last
	// config reload. Each is cleared only by its own source.
	renderErr error
	cfgErr    error
}

// New mounts the bridge for a fresh editor holding opts.Value.
func New(opts Options) (Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	target := opts.Target
	if target == nil {
		target = focus.Document
	}
	value := opts.Value
	if len(value) == 0 {
		value = document.FromText("")
	}

	m := Model{
		keys:    DefaultKeyMap(),
		target:  target,
		cfg:     cfg,
		title:   opts.Title,
		ed:      document.NewEditor(EditorID, value),
		bridge:  bridge.New(bridge.WithTarget(target)),
		initial: value,
		state:   &state{value: value},
		fields:  cfg.Fields(),
	}
	if err := m.bridge.Mount(m.props()); err != nil {
		return Model{}, fmt.Errorf("app: %w", err)
	}

	ecfg := editable.DefaultConfig(EditorID)
	ecfg.Target = target
	ecfg.ShowLineNums = cfg.UI.LineNumbers
	ecfg.ShowHelp = cfg.UI.Help
	m.editor = editable.New(ecfg, m.bridge)
	return m, nil
}

func (m Model) props() bridge.Props {
	return bridge.Props{
		Editor:    m.ed,
		Value:     m.state.value,
		OnChange:  m.state.sink,
		Fields:    m.fields,
		IsFocused: editable.IsFocused(m.target),
	}
}

func (m Model) Init() tea.Cmd { return m.editor.Init() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.editor = m.editor.SetSize(msg.Width, max(msg.Height-1, 0))
		return m, nil
	case ConfigMsg:
		m.applyConfig(msg)
		return m.render(), nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Reset):
			// A programmatic reset: the editor picks the snapshot up on render.
			m.state.value = m.initial
			return m.render(), nil
		case key.Matches(msg, m.keys.Blur):
			m.editor = m.editor.Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m.render(), cmd
}

func (m Model) render() Model {
	if !m.bridge.Mounted() {
		return m
	}
	m.renderErr = m.bridge.Render(m.props())
	m.editor = m.editor.Sync()
	return m
}

func (m *Model) applyConfig(msg ConfigMsg) {
	if msg.Err != nil {
		m.cfgErr = msg.Err
		return
	}
	m.cfgErr = nil
	m.cfg = msg.Config
	m.fields = msg.Config.Fields()
}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

func (m Model) View() string {
	return m.editor.View() + "\n" + m.statusLine()
}

func (m Model) statusLine() string {
	if err := errors.Join(m.renderErr, m.cfgErr); err != nil {
		return errorStyle.Render("error: " + firstLine(err.Error()))
	}
	parts := make([]string, 0, 5)
	if m.title != "" {
		parts = append(parts, m.title)
	}
	parts = append(parts,
		fmt.Sprintf("%d blocks", len(m.state.value)),
		fmt.Sprintf("%d chars", graphemeutil.Count(document.PlainText(m.state.value))),
		fmt.Sprintf("%d changes", m.state.changes),
	)
	switch {
	case m.ed.ReadOnly:
		parts = append(parts, "read-only")
	case !m.editor.Focused():
		parts = append(parts, "blurred")
	}
	return statusStyle.Render(strings.Join(parts, " • "))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// Value returns the latest snapshot handed to the sink.
func (m Model) Value() document.Value { return m.state.value }

// Changes returns how many changes the sink received.
func (m Model) Changes() int { return m.state.changes }

// Editor returns the bridged editor.
func (m Model) Editor() *document.Editor { return m.ed }

// Close unmounts the bridge. It is safe to call more than once.
func (m Model) Close() {
	if m.bridge.Mounted() {
		m.bridge.Unmount()
	}
}
