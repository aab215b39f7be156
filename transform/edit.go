package transform

import (
	"errors"
	"strings"

	"github.com/iw2rmb/quire/document"
	graphemeutil "github.com/iw2rmb/quire/internal/grapheme"
	"github.com/iw2rmb/quire/notify"
)

var (
	ErrReadOnly    = errors.New("transform: editor is read-only")
	ErrNoSelection = errors.New("transform: editor has no selection")
)

// commit stores the new state and reports the change.
func commit(ed *document.Editor, v document.Value, sel *document.Range) {
	ed.Children = v
	ed.Selection = sel
	notify.Invoke(ed)
}

func writable(ed *document.Editor) error {
	if ed.ReadOnly {
		return ErrReadOnly
	}
	if ed.Selection == nil {
		return ErrNoSelection
	}
	return nil
}

// deleteSelection removes an expanded selection and returns the collapsed
// cursor as a block offset.
func deleteSelection(v document.Value, r document.Range) (document.Value, int, int) {
	start, end := r.Edges()
	b1, o1 := document.BlockOffset(v, start)
	b2, o2 := document.BlockOffset(v, end)
	if b1 == b2 {
		return spliceBlock(v, b1, o1, o2, ""), b1, o1
	}

	v = spliceBlock(v, b2, 0, o2, "")
	v = spliceBlock(v, b1, o1, document.BlockLen(v, b1), "")
	if b2-b1 > 1 {
		out := make(document.Value, 0, len(v)-(b2-b1-1))
		out = append(out, v[:b1+1]...)
		out = append(out, v[b2:]...)
		v = out
	}
	v, _ = mergeBlocks(v, b1)
	return v, b1, o1
}

// cursor resolves the editor selection into a block offset, removing an
// expanded selection first. removed reports whether anything was deleted.
func cursor(ed *document.Editor) (v document.Value, b, off int, removed bool) {
	v = ed.Children
	if len(v) == 0 {
		return document.Value{document.Paragraph("")}, 0, 0, false
	}
	r := clampRange(v, *ed.Selection)
	if !r.IsCollapsed() {
		v, b, off = deleteSelection(v, r)
		return v, b, off, true
	}
	b, off = document.BlockOffset(v, r.Focus)
	return v, b, off, false
}

// clampRange keeps a selection valid after the snapshot was swapped under it.
func clampRange(v document.Value, r document.Range) document.Range {
	anchor, _ := document.ClampPoint(v, r.Anchor)
	focus, _ := document.ClampPoint(v, r.Focus)
	return document.Range{Anchor: anchor, Focus: focus}
}

// InsertText inserts s at the cursor, replacing an expanded selection.
// Newlines in s split blocks.
func InsertText(ed *document.Editor, s string) error {
	if err := writable(ed); err != nil {
		return err
	}
	v, b, off, removed := cursor(ed)
	if s == "" {
		if removed {
			commit(ed, v, collapsedAt(v, b, off))
		}
		return nil
	}

	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			v = splitBlock(v, b, off)
			b, off = b+1, 0
		}
		v = spliceBlock(v, b, off, off, line)
		off += graphemeutil.Count(line)
	}
	commit(ed, v, collapsedAt(v, b, off))
	return nil
}

// InsertBreak splits the current block at the cursor.
func InsertBreak(ed *document.Editor) error {
	if err := writable(ed); err != nil {
		return err
	}
	v, b, off, _ := cursor(ed)
	v = splitBlock(v, b, off)
	commit(ed, v, collapsedAt(v, b+1, 0))
	return nil
}

// DeleteBackward removes the grapheme before the cursor, or the selection.
// At the start of a block it merges the block into the previous one.
func DeleteBackward(ed *document.Editor) error {
	if err := writable(ed); err != nil {
		return err
	}
	v, b, off, removed := cursor(ed)
	switch {
	case removed:
	case off > 0:
		v = spliceBlock(v, b, off-1, off, "")
		off--
	case b > 0:
		prevLen := document.BlockLen(v, b-1)
		var ok bool
		if v, ok = mergeBlocks(v, b-1); !ok {
			return nil
		}
		b, off = b-1, prevLen
	default:
		return nil
	}
	commit(ed, v, collapsedAt(v, b, off))
	return nil
}

// DeleteForward removes the grapheme after the cursor, or the selection.
// At the end of a block it merges the next block into it.
func DeleteForward(ed *document.Editor) error {
	if err := writable(ed); err != nil {
		return err
	}
	v, b, off, removed := cursor(ed)
	switch {
	case removed:
	case off < document.BlockLen(v, b):
		v = spliceBlock(v, b, off, off+1, "")
	case b+1 < len(v):
		var ok bool
		if v, ok = mergeBlocks(v, b); !ok {
			return nil
		}
	default:
		return nil
	}
	commit(ed, v, collapsedAt(v, b, off))
	return nil
}
