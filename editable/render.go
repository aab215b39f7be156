package editable

import (
	"fmt"
	"strings"

	"github.com/iw2rmb/quire/document"
	graphemeutil "github.com/iw2rmb/quire/internal/grapheme"
)

// blockPos is a cursor or selection edge as a block offset.
type blockPos struct{ block, off int }

func (a blockPos) less(b blockPos) bool {
	return a.block < b.block || (a.block == b.block && a.off < b.off)
}

func (m *Model) renderContent() string {
	ed := m.src.Editor()
	if ed == nil {
		return ""
	}
	st := m.cfg.Style
	focused := m.src.Focused()
	v := ed.Children
	m.cursorRow = 0

	if isBlank(v) && ed.Placeholder != "" {
		text := ed.Placeholder
		if w := m.viewport.Width; w > 0 {
			text = graphemeutil.Truncate(text, max(w-1, 0))
		}
		if focused {
			return st.Cursor.Render(" ") + st.Placeholder.Render(text)
		}
		return st.Placeholder.Render(text)
	}

	var cur, selStart, selEnd blockPos
	hasCursor := ed.Selection != nil && len(v) > 0
	if hasCursor {
		r := *ed.Selection
		anchor, _ := document.ClampPoint(v, r.Anchor)
		fp, _ := document.ClampPoint(v, r.Focus)
		cur.block, cur.off = document.BlockOffset(v, fp)
		var a blockPos
		a.block, a.off = document.BlockOffset(v, anchor)
		selStart, selEnd = a, cur
		if selEnd.less(selStart) {
			selStart, selEnd = selEnd, selStart
		}
		m.cursorRow = cur.block
	}

	digits := 0
	if m.cfg.ShowLineNums {
		digits = gutterDigits(len(v))
	}

	out := make([]string, 0, len(v))
	for b, n := range v {
		var sb strings.Builder

		if m.cfg.ShowLineNums {
			numStyle := st.LineNum
			if hasCursor && b == cur.block {
				numStyle = st.LineNumActive
			}
			sb.WriteString(numStyle.Render(fmt.Sprintf("%*d", digits, b+1)))
			sb.WriteString(st.Gutter.Render(" "))
		}

		typ := document.TypeParagraph
		if el, ok := n.(*document.Element); ok {
			typ = el.Type
		}
		base := st.block(typ)
		if p := blockPrefix(typ); p != "" {
			sb.WriteString(st.Gutter.Render(p))
		}

		off := 0
		for _, lp := range document.BlockLeaves(v, b) {
			leaf, ok := document.Leaf(v, lp)
			if !ok {
				continue
			}
			ls := st.leaf(base, leaf)
			for _, g := range graphemeutil.Split(leaf.Text) {
				pos := blockPos{block: b, off: off}
				s := ls
				switch {
				case focused && hasCursor && pos == cur:
					s = st.Cursor.Inherit(ls)
				case hasCursor && !pos.less(selStart) && pos.less(selEnd):
					s = st.Selection.Inherit(ls)
				}
				sb.WriteString(s.Render(g))
				off++
			}
		}
		if focused && hasCursor && cur.block == b && cur.off >= off {
			sb.WriteString(st.Cursor.Render(" "))
		}
		out = append(out, sb.String())
	}
	return strings.Join(out, "\n")
}

// isBlank reports whether v holds no text in at most one block.
func isBlank(v document.Value) bool {
	return len(v) <= 1 && document.PlainText(v) == ""
}

func gutterDigits(n int) int {
	d := 1
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}

func (m *Model) gutterWidth(blocks int) int {
	if !m.cfg.ShowLineNums {
		return 0
	}
	return gutterDigits(blocks) + 1
}

func cellWidth(s string) int { return graphemeutil.Width(s) }

// offsetAtCell returns the grapheme offset in text under cell x.
func offsetAtCell(text string, x int) int {
	if x <= 0 {
		return 0
	}
	cells := 0
	for i, g := range graphemeutil.Split(text) {
		w := cellWidth(g)
		if x < cells+w {
			return i
		}
		cells += w
	}
	return graphemeutil.Count(text)
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
