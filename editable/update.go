package editable

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/iw2rmb/quire/document"
	"github.com/iw2rmb/quire/transform"
)

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	ed := m.src.Editor()
	if ed == nil || !m.src.Focused() {
		return m, nil
	}

	// Paste events always insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		if !ed.ReadOnly {
			m.run(transform.InsertText(ed, string(msg.Runes)))
		}
		return m, nil
	}

	km := m.cfg.KeyMap
	switch {
	case key.Matches(msg, km.Left):
		transform.Move(ed, transform.DirLeft, false)
	case key.Matches(msg, km.Right):
		transform.Move(ed, transform.DirRight, false)
	case key.Matches(msg, km.Up):
		transform.Move(ed, transform.DirUp, false)
	case key.Matches(msg, km.Down):
		transform.Move(ed, transform.DirDown, false)

	case key.Matches(msg, km.ShiftLeft):
		transform.Move(ed, transform.DirLeft, true)
	case key.Matches(msg, km.ShiftRight):
		transform.Move(ed, transform.DirRight, true)
	case key.Matches(msg, km.ShiftUp):
		transform.Move(ed, transform.DirUp, true)
	case key.Matches(msg, km.ShiftDown):
		transform.Move(ed, transform.DirDown, true)

	case key.Matches(msg, km.Home):
		transform.Move(ed, transform.DirHome, false)
	case key.Matches(msg, km.End):
		transform.Move(ed, transform.DirEnd, false)

	case key.Matches(msg, km.Backspace):
		if !ed.ReadOnly {
			m.run(transform.DeleteBackward(ed))
		}
	case key.Matches(msg, km.Delete):
		if !ed.ReadOnly {
			m.run(transform.DeleteForward(ed))
		}
	case key.Matches(msg, km.Enter):
		if !ed.ReadOnly {
			m.run(transform.InsertBreak(ed))
		}
	case key.Matches(msg, km.CycleBlock):
		if !ed.ReadOnly {
			m.run(transform.CycleBlockType(ed))
		}

	default:
		if msg.Type == tea.KeyTab {
			if !ed.ReadOnly {
				m.run(transform.InsertText(ed, "\t"))
			}
			return m, nil
		}
		if (msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace) && len(msg.Runes) > 0 && !msg.Alt {
			if !ed.ReadOnly {
				m.run(transform.InsertText(ed, string(msg.Runes)))
			}
		}
	}
	return m, nil
}

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		m = m.Focus()
		if ed := m.src.Editor(); ed != nil && len(ed.Children) > 0 {
			transform.Collapse(ed, m.screenToPoint(msg.X, msg.Y))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	// Don't follow the cursor here; allow manual scrolling via mouse wheel.
	return m, cmd
}

// run logs a rejected command. Rejections leave the editor untouched.
func (m Model) run(err error) {
	if err != nil {
		log.Debug().Err(err).Str("editor", m.cfg.ID).Msg("editable: command rejected")
	}
}

// screenToPoint maps viewport-local cell coordinates to a document point.
// Coordinates are clamped into the document.
func (m *Model) screenToPoint(x, y int) document.Point {
	ed := m.src.Editor()
	v := ed.Children
	b := clampInt(m.viewport.YOffset+y, 0, len(v)-1)

	x -= m.gutterWidth(len(v))
	if el, ok := v[b].(*document.Element); ok {
		x -= cellWidth(blockPrefix(el.Type))
	}
	return document.PointAt(v, b, offsetAtCell(document.NodeText(v[b]), x))
}
