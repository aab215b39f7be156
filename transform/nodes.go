package transform

import (
	"slices"

	"github.com/iw2rmb/quire/document"
)

// SetBlockType changes the type of the block holding the cursor.
func SetBlockType(ed *document.Editor, typ string) error {
	if err := writable(ed); err != nil {
		return err
	}
	v := ed.Children
	if len(v) == 0 {
		return nil
	}
	focus, ok := document.ClampPoint(v, ed.Selection.Focus)
	if !ok {
		return nil
	}
	b := focus.Path[0]
	el, ok := v[b].(*document.Element)
	if !ok || el.Type == typ {
		return nil
	}
	next, _ := document.ReplaceNode(v, document.Path{b}, &document.Element{Type: typ, Children: el.Children})
	commit(ed, next, ed.Selection)
	return nil
}

// CycleBlockType advances the current block through document.BlockTypes.
func CycleBlockType(ed *document.Editor) error {
	if err := writable(ed); err != nil {
		return err
	}
	if len(ed.Children) == 0 {
		return nil
	}
	focus, ok := document.ClampPoint(ed.Children, ed.Selection.Focus)
	if !ok {
		return nil
	}
	el, ok := ed.Children[focus.Path[0]].(*document.Element)
	if !ok {
		return nil
	}
	i := slices.Index(document.BlockTypes, el.Type)
	return SetBlockType(ed, document.BlockTypes[(i+1)%len(document.BlockTypes)])
}

// InsertNodes inserts nodes as top-level blocks before index. The cursor
// keeps pointing at the same text.
func InsertNodes(ed *document.Editor, index int, nodes ...document.Node) error {
	if ed.ReadOnly {
		return ErrReadOnly
	}
	if len(nodes) == 0 {
		return nil
	}
	v := ed.Children
	index = clampInt(index, 0, len(v))
	next := slices.Concat(v[:index:index], document.Value(nodes), v[index:])

	sel := shiftRange(ed.Selection, index, len(nodes))
	if sel == nil {
		if p, ok := document.Start(next); ok {
			r := document.Collapsed(p)
			sel = &r
		}
	}
	commit(ed, next, sel)
	return nil
}

// RemoveNodes removes n top-level blocks starting at index. A cursor inside
// the removed blocks moves to the start of the block that takes their place.
func RemoveNodes(ed *document.Editor, index, n int) error {
	if ed.ReadOnly {
		return ErrReadOnly
	}
	v := ed.Children
	if index < 0 || index >= len(v) || n <= 0 {
		return nil
	}
	end := min(index+n, len(v))
	next := slices.Concat(v[:index:index], v[end:])

	var sel *document.Range
	if ed.Selection != nil && len(next) > 0 {
		r := *ed.Selection
		r.Anchor = removedPoint(next, r.Anchor, index, end)
		r.Focus = removedPoint(next, r.Focus, index, end)
		sel = &r
	}
	commit(ed, next, sel)
	return nil
}

// Replace swaps the whole document and puts the cursor at its start.
func Replace(ed *document.Editor, v document.Value) {
	var sel *document.Range
	if p, ok := document.Start(v); ok {
		r := document.Collapsed(p)
		sel = &r
	}
	commit(ed, v, sel)
}

func shiftRange(r *document.Range, index, by int) *document.Range {
	if r == nil {
		return nil
	}
	out := document.Range{Anchor: shiftPoint(r.Anchor, index, by), Focus: shiftPoint(r.Focus, index, by)}
	return &out
}

func shiftPoint(p document.Point, index, by int) document.Point {
	if len(p.Path) == 0 || p.Path[0] < index {
		return p
	}
	path := p.Path.Clone()
	path[0] += by
	return document.Point{Path: path, Offset: p.Offset}
}

func removedPoint(next document.Value, p document.Point, index, end int) document.Point {
	switch {
	case len(p.Path) == 0 || p.Path[0] < index:
		q, _ := document.ClampPoint(next, p)
		return q
	case p.Path[0] >= end:
		q, _ := document.ClampPoint(next, shiftPoint(p, 0, index-end))
		return q
	default:
		return document.PointAt(next, min(index, len(next)-1), 0)
	}
}
