package editable

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/quire/bridge"
	"github.com/iw2rmb/quire/document"
	"github.com/iw2rmb/quire/focus"
)

// Source provides the bridged state the Model renders. *bridge.Bridge
// implements it.
type Source interface {
	Editor() *document.Editor
	Context() *bridge.Context
	Focused() bool
}

// autofocusMsg is emitted by Init for editors with Autofocus set.
type autofocusMsg struct{ id string }

// Model is a Bubble Tea component that renders and edits a bridged editor.
type Model struct {
	cfg Config
	src Source

	viewport viewport.Model
	help     help.Model

	width, height int

	lastCtx     *bridge.Context
	lastFocused bool
	cursorRow   int
}

// New returns a Model rendering src. A nil Target in cfg means
// focus.Document and an empty KeyMap means DefaultKeyMap.
func New(cfg Config, src Source) Model {
	m := Model{
		cfg:      cfg.normalized(),
		src:      src,
		viewport: viewport.New(0, 0),
		help:     help.New(),
	}
	m.rebuild()
	return m
}

// Init focuses the editor when it asks for autofocus.
func (m Model) Init() tea.Cmd {
	ed := m.src.Editor()
	if ed == nil || !ed.Autofocus {
		return nil
	}
	id := m.cfg.ID
	return func() tea.Msg { return autofocusMsg{id: id} }
}

func (m Model) Target() *focus.Target { return m.cfg.Target }

func (m Model) KeyMap() KeyMap { return m.cfg.KeyMap }

func (m Model) SetSize(width, height int) Model {
	width = max(width, 0)
	height = max(height, 0)
	m.width, m.height = width, height

	m.help.Width = width
	vh := height
	if m.cfg.ShowHelp && vh > 0 {
		vh--
	}
	m.viewport.Width = width
	m.viewport.Height = vh

	m.rebuild()
	m.followCursor()
	return m
}

// Focus makes the editor the active element of the focus target.
func (m Model) Focus() Model {
	m.cfg.Target.Focus(m.cfg.ID)
	return m.Sync()
}

// Blur clears the active element if it is this editor.
func (m Model) Blur() Model {
	if m.cfg.Target.ActiveElement() == m.cfg.ID {
		m.cfg.Target.Blur()
	}
	return m.Sync()
}

// Focused reports the source's focus flag.
func (m Model) Focused() bool { return m.src.Focused() }

// Sync rebuilds the rendered content if the published context or the focus
// flag changed since the last rebuild.
func (m Model) Sync() Model {
	ctx := m.src.Context()
	focused := m.src.Focused()
	if ctx == m.lastCtx && focused == m.lastFocused {
		return m
	}
	m.rebuild()
	m.followCursor()
	return m
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if ev, ok := focus.FromMsg(msg); ok {
		m.cfg.Target.Dispatch(ev)
		return m.Sync(), nil
	}

	switch msg := msg.(type) {
	case autofocusMsg:
		if msg.id == m.cfg.ID {
			return m.Focus(), nil
		}
		return m, nil
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.MouseMsg:
		return m.updateMouse(msg)
	default:
		return m.Sync(), nil
	}
}

func (m Model) View() string {
	if !m.cfg.ShowHelp {
		return m.viewport.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), m.help.View(m.cfg.KeyMap))
}

func (m *Model) rebuild() {
	m.lastCtx = m.src.Context()
	m.lastFocused = m.src.Focused()
	m.viewport.SetContent(m.renderContent())
}

func (m *Model) followCursor() {
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h <= 0 {
		return
	}
	y := m.viewport.YOffset
	if m.cursorRow < y {
		m.viewport.SetYOffset(m.cursorRow)
		return
	}
	if m.cursorRow >= y+h {
		m.viewport.SetYOffset(m.cursorRow - h + 1)
	}
}
