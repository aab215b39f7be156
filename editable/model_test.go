package editable

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/quire/bridge"
	"github.com/iw2rmb/quire/document"
	"github.com/iw2rmb/quire/focus"
)

// host plays the role of the application: it owns the value handed to the
// sink and re-renders the bridge after every update.
type host struct {
	t       *testing.T
	target  *focus.Target
	b       *bridge.Bridge
	ed      *document.Editor
	value   document.Value
	fields  document.Fields
	changes int
}

func newHost(t *testing.T, value document.Value, fields document.Fields) *host {
	t.Helper()
	h := &host{t: t, target: focus.NewTarget(), value: value, fields: fields}
	h.ed = document.NewEditor("ed", value)
	h.b = bridge.New(bridge.WithTarget(h.target))
	if err := h.b.Mount(h.props()); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	t.Cleanup(h.b.Unmount)
	return h
}

func (h *host) props() bridge.Props {
	return bridge.Props{
		Editor: h.ed,
		Value:  h.value,
		OnChange: func(v document.Value) {
			h.value = v
			h.changes++
		},
		Fields:    h.fields,
		IsFocused: IsFocused(h.target),
	}
}

func (h *host) model(cfg Config) Model {
	cfg.ID = "ed"
	cfg.Target = h.target
	return New(cfg, h.b).SetSize(40, 10)
}

// update feeds msg through the model and re-renders the way a host would.
func (h *host) update(m Model, msg tea.Msg) Model {
	h.t.Helper()
	m, _ = m.Update(msg)
	if err := h.b.Render(h.props()); err != nil {
		h.t.Fatalf("Render: %v", err)
	}
	return m.Sync()
}

func markers() Style {
	plain := lipgloss.NewStyle()
	return Style{
		Gutter: plain, LineNum: plain, LineNumActive: plain,
		Paragraph: plain, Heading: plain, Quote: plain, Code: plain,
		Bold: plain, Italic: plain, InlineCode: plain,
		Selection:   plain.Transform(func(s string) string { return "{" + s + "}" }),
		Cursor:      plain.Transform(func(s string) string { return "[" + s + "]" }),
		Placeholder: plain.Transform(func(s string) string { return "<" + s + ">" }),
	}
}

func testConfig() Config {
	return Config{KeyMap: DefaultKeyMap(), Style: markers()}
}

// view returns what the viewport currently shows, without the padding it
// adds to fill its size.
func view(m Model) string {
	lines := strings.Split(m.viewport.View(), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// rendered runs the renderer directly, bypassing the viewport cache.
func rendered(m Model) string { return m.renderContent() }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestRender_BlockPrefixes(t *testing.T) {
	value := document.Value{
		&document.Element{Type: document.TypeHeading, Children: []document.Node{&document.Text{Text: "Title"}}},
		document.Paragraph("body"),
		&document.Element{Type: document.TypeQuote, Children: []document.Node{&document.Text{Text: "said"}}},
	}
	h := newHost(t, value, document.Fields{})
	m := h.model(testConfig())

	got := view(m)
	want := "# Title\nbody\n│ said"
	if got != want {
		t.Fatalf("content:\n got: %q\nwant: %q", got, want)
	}
}

func TestRender_CursorOnlyWhenFocused(t *testing.T) {
	h := newHost(t, document.FromText("ab"), document.Fields{})
	m := h.model(testConfig())

	if got := view(m); got != "ab" {
		t.Fatalf("blurred content: got %q, want %q", got, "ab")
	}

	m = m.Focus()
	if !m.Focused() {
		t.Fatalf("expected focus after Focus")
	}
	if got := m.cfg.Target.ActiveElement(); got != "ed" {
		t.Fatalf("active element: got %q, want %q", got, "ed")
	}
	if got := view(m); got != "[a]b" {
		t.Fatalf("focused content: got %q, want %q", got, "[a]b")
	}

	m = h.update(m, tea.KeyMsg{Type: tea.KeyEnd})
	if got := view(m); got != "ab[ ]" {
		t.Fatalf("cursor at end: got %q, want %q", got, "ab[ ]")
	}

	m = m.Blur()
	if m.Focused() {
		t.Fatalf("expected no focus after Blur")
	}
	if got := view(m); got != "ab" {
		t.Fatalf("content after blur: got %q, want %q", got, "ab")
	}
}

func TestUpdate_TypingReachesSinkAndView(t *testing.T) {
	h := newHost(t, document.FromText("ab"), document.Fields{})
	m := h.model(testConfig()).Focus()

	m = h.update(m, runes("x"))
	if h.changes != 1 {
		t.Fatalf("sink calls: got %d, want 1", h.changes)
	}
	if got := document.PlainText(h.value); got != "xab" {
		t.Fatalf("value: got %q, want %q", got, "xab")
	}
	if got := view(m); got != "x[a]b" {
		t.Fatalf("content: got %q, want %q", got, "x[a]b")
	}

	m = h.update(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = h.update(m, tea.KeyMsg{Type: tea.KeyBackspace})
	if got := document.PlainText(h.value); got != "xab" {
		t.Fatalf("value after split and merge: got %q, want %q", got, "xab")
	}
	if h.changes != 3 {
		t.Fatalf("sink calls: got %d, want 3", h.changes)
	}
}

func TestUpdate_PasteInsertsLiteralText(t *testing.T) {
	h := newHost(t, document.FromText(""), document.Fields{})
	m := h.model(testConfig()).Focus()

	m = h.update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("one\ntwo"), Paste: true})
	if got := document.PlainText(h.value); got != "one\ntwo" {
		t.Fatalf("value: got %q, want %q", got, "one\ntwo")
	}
	if got := view(m); got != "one\ntwo[ ]" {
		t.Fatalf("content: got %q, want %q", got, "one\ntwo[ ]")
	}
}

func TestUpdate_KeysIgnoredWithoutFocus(t *testing.T) {
	h := newHost(t, document.FromText("ab"), document.Fields{})
	m := h.model(testConfig())

	m = h.update(m, runes("x"))
	m = h.update(m, tea.KeyMsg{Type: tea.KeyRight})
	if h.changes != 0 {
		t.Fatalf("sink calls: got %d, want 0", h.changes)
	}
	if got := view(m); got != "ab" {
		t.Fatalf("content: got %q, want %q", got, "ab")
	}
}

func TestUpdate_ReadOnlyIgnoresEditsButMoves(t *testing.T) {
	h := newHost(t, document.FromText("ab"), document.Fields{ReadOnly: document.Ptr(true)})
	m := h.model(testConfig()).Focus()

	m = h.update(m, runes("x"))
	m = h.update(m, tea.KeyMsg{Type: tea.KeyBackspace})
	m = h.update(m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if h.changes != 0 {
		t.Fatalf("edits must be ignored, got %d sink calls", h.changes)
	}

	m = h.update(m, tea.KeyMsg{Type: tea.KeyRight})
	if h.changes != 1 {
		t.Fatalf("moves still notify: got %d sink calls, want 1", h.changes)
	}
	if got := view(m); got != "a[b]" {
		t.Fatalf("content: got %q, want %q", got, "a[b]")
	}
}

func TestUpdate_ShiftSelectsAndTypingReplaces(t *testing.T) {
	h := newHost(t, document.FromText("abc"), document.Fields{})
	m := h.model(testConfig()).Focus()

	m = h.update(m, tea.KeyMsg{Type: tea.KeyShiftRight})
	m = h.update(m, tea.KeyMsg{Type: tea.KeyShiftRight})
	if got := view(m); got != "{a}{b}[c]" {
		t.Fatalf("selection: got %q, want %q", got, "{a}{b}[c]")
	}

	m = h.update(m, runes("Z"))
	if got := document.PlainText(h.value); got != "Zc" {
		t.Fatalf("value: got %q, want %q", got, "Zc")
	}
	if got := view(m); got != "Z[c]" {
		t.Fatalf("content: got %q, want %q", got, "Z[c]")
	}
}

func TestUpdate_CycleBlockType(t *testing.T) {
	h := newHost(t, document.FromText("ab"), document.Fields{})
	m := h.model(testConfig()).Focus()

	m = h.update(m, tea.KeyMsg{Type: tea.KeyCtrlT})
	el := h.value[0].(*document.Element)
	if el.Type != document.TypeHeading {
		t.Fatalf("block type: got %q, want %q", el.Type, document.TypeHeading)
	}
	if got := view(m); got != "# [a]b" {
		t.Fatalf("content: got %q, want %q", got, "# [a]b")
	}
}

func TestUpdate_TerminalFocusReports(t *testing.T) {
	h := newHost(t, document.FromText("ab"), document.Fields{})
	m := h.model(testConfig()).Focus()

	m, _ = m.Update(tea.BlurMsg{})
	if m.Focused() {
		t.Fatalf("terminal blur must clear focus")
	}
	if got := view(m); got != "ab" {
		t.Fatalf("content after terminal blur: got %q, want %q", got, "ab")
	}
	if got := h.target.ActiveElement(); got != "ed" {
		t.Fatalf("terminal blur must keep the active element, got %q", got)
	}

	m, _ = m.Update(tea.FocusMsg{})
	if !m.Focused() {
		t.Fatalf("terminal focus must restore focus")
	}
	if got := view(m); got != "[a]b" {
		t.Fatalf("content after terminal focus: got %q, want %q", got, "[a]b")
	}
}

func TestSync_RebuildsOnlyOnPublishedChange(t *testing.T) {
	h := newHost(t, document.FromText("old"), document.Fields{})
	m := h.model(testConfig())

	// Out-of-band mutation without a notification is not observed.
	h.ed.Children = document.FromText("new")
	m = m.Sync()
	if got := view(m); got != "old" {
		t.Fatalf("cached content: got %q, want %q", got, "old")
	}

	// A programmatic reset through the host changes the snapshot identity.
	h.value = document.FromText("reset")
	m = h.update(m, nil)
	if got := view(m); got != "reset" {
		t.Fatalf("content after reset: got %q, want %q", got, "reset")
	}
}

func TestRender_Placeholder(t *testing.T) {
	h := newHost(t, document.FromText(""), document.Fields{Placeholder: document.Ptr("Write here")})
	m := h.model(testConfig())

	if got := view(m); got != "<Write here>" {
		t.Fatalf("blurred placeholder: got %q, want %q", got, "<Write here>")
	}
	m = m.Focus()
	if got := view(m); got != "[ ]<Write here>" {
		t.Fatalf("focused placeholder: got %q, want %q", got, "[ ]<Write here>")
	}

	m = h.update(m, runes("a"))
	if got := view(m); got != "a[ ]" {
		t.Fatalf("content after typing: got %q, want %q", got, "a[ ]")
	}
}

func TestInit_Autofocus(t *testing.T) {
	h := newHost(t, document.FromText("ab"), document.Fields{Autofocus: document.Ptr(true)})
	m := h.model(testConfig())

	cmd := m.Init()
	if cmd == nil {
		t.Fatalf("expected an autofocus command")
	}
	m, _ = m.Update(cmd())
	if !m.Focused() {
		t.Fatalf("expected focus after autofocus")
	}

	plain := newHost(t, document.FromText("ab"), document.Fields{})
	if cmd := plain.model(testConfig()).Init(); cmd != nil {
		t.Fatalf("expected no command without autofocus")
	}
}

func TestUpdate_ClickPlacesCursor(t *testing.T) {
	h := newHost(t, document.FromText("hello\nworld"), document.Fields{})
	m := h.model(testConfig()).SetSize(20, 5)

	m = h.update(m, tea.MouseMsg{X: 2, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !m.Focused() {
		t.Fatalf("click must focus the editor")
	}
	if got := view(m); got != "hello\nwo[r]ld" {
		t.Fatalf("content: got %q, want %q", got, "hello\nwo[r]ld")
	}
}

func TestRender_LineNumbers(t *testing.T) {
	h := newHost(t, document.FromText("a\nb"), document.Fields{})
	cfg := testConfig()
	cfg.ShowLineNums = true
	m := h.model(cfg)

	if got := view(m); got != "1 a\n2 b" {
		t.Fatalf("content: got %q, want %q", got, "1 a\n2 b")
	}
}

func TestView_HelpLine(t *testing.T) {
	h := newHost(t, document.FromText("ab"), document.Fields{})
	cfg := testConfig()
	cfg.ShowHelp = true
	m := h.model(cfg).SetSize(80, 4)

	lines := strings.Split(m.View(), "\n")
	if len(lines) != 4 {
		t.Fatalf("view lines: got %d, want 4", len(lines))
	}
	if !strings.Contains(lines[3], "ctrl+t") {
		t.Fatalf("help line: got %q, want it to mention ctrl+t", lines[3])
	}
}

func TestIsFocused(t *testing.T) {
	target := focus.NewTarget()
	pred := IsFocused(target)
	ed := document.NewEditor("ed", nil)

	if pred(ed) {
		t.Fatalf("no active element: expected false")
	}
	target.Focus("ed")
	if !pred(ed) {
		t.Fatalf("active element: expected true")
	}
	target.SetWindowFocus(false)
	if pred(ed) {
		t.Fatalf("window blurred: expected false")
	}
	if pred(nil) {
		t.Fatalf("nil editor: expected false")
	}
}
