package transform

import "github.com/iw2rmb/quire/document"

// Direction is a cursor movement.
type Direction uint8

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
	DirHome
	DirEnd
)

// Select replaces the selection with r clamped into the document.
func Select(ed *document.Editor, r document.Range) {
	if len(ed.Children) == 0 {
		return
	}
	next := clampRange(ed.Children, r)
	if ed.Selection != nil && rangeEqual(*ed.Selection, next) {
		return
	}
	commit(ed, ed.Children, &next)
}

// Collapse moves the cursor to p and drops any selection.
func Collapse(ed *document.Editor, p document.Point) {
	Select(ed, document.Collapsed(p))
}

// Move moves the cursor focus one step in dir. With extend the anchor stays
// put; without it an expanded selection collapses to the edge in dir first.
func Move(ed *document.Editor, dir Direction, extend bool) {
	v := ed.Children
	if len(v) == 0 {
		return
	}
	if ed.Selection == nil {
		start, _ := document.Start(v)
		Collapse(ed, start)
		return
	}
	r := clampRange(v, *ed.Selection)

	if !extend && !r.IsCollapsed() && (dir == DirLeft || dir == DirRight) {
		start, end := r.Edges()
		if dir == DirLeft {
			Collapse(ed, start)
		} else {
			Collapse(ed, end)
		}
		return
	}

	b, off := document.BlockOffset(v, r.Focus)
	switch dir {
	case DirLeft:
		switch {
		case off > 0:
			off--
		case b > 0:
			b, off = b-1, document.BlockLen(v, b-1)
		}
	case DirRight:
		switch {
		case off < document.BlockLen(v, b):
			off++
		case b+1 < len(v):
			b, off = b+1, 0
		}
	case DirUp:
		if b > 0 {
			b--
			off = min(off, document.BlockLen(v, b))
		} else {
			off = 0
		}
	case DirDown:
		if b+1 < len(v) {
			b++
			off = min(off, document.BlockLen(v, b))
		} else {
			off = document.BlockLen(v, b)
		}
	case DirHome:
		off = 0
	case DirEnd:
		off = document.BlockLen(v, b)
	}

	focus := document.PointAt(v, b, off)
	anchor := focus
	if extend {
		anchor = r.Anchor
	}
	Select(ed, document.Range{Anchor: anchor, Focus: focus})
}

func rangeEqual(a, b document.Range) bool {
	return a.Anchor.Equal(b.Anchor) && a.Focus.Equal(b.Focus)
}
