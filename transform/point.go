package transform

import (
	"github.com/iw2rmb/quire/document"
	graphemeutil "github.com/iw2rmb/quire/internal/grapheme"
)

func collapsedAt(v document.Value, b, off int) *document.Range {
	if len(v) == 0 {
		return nil
	}
	r := document.Collapsed(document.PointAt(v, b, off))
	return &r
}

// spliceBlock removes the graphemes in [from, to) of block b and inserts s at
// from. The insertion lands in the leaf that ends at or contains from.
func spliceBlock(v document.Value, b, from, to int, s string) document.Value {
	inserted := s == ""
	acc := 0
	for _, lp := range document.BlockLeaves(v, b) {
		leaf, ok := document.Leaf(v, lp)
		if !ok {
			continue
		}
		n := graphemeutil.Count(leaf.Text)
		lo := clampInt(from-acc, 0, n)
		hi := clampInt(to-acc, 0, n)

		ins := ""
		if !inserted && from >= acc && from <= acc+n {
			ins = s
			inserted = true
		}
		if lo < hi || ins != "" {
			next := *leaf
			next.Text = graphemeutil.Splice(leaf.Text, lo, hi, ins)
			v, _ = document.ReplaceNode(v, lp, &next)
		}
		acc += n
	}
	return v
}

// splitBlock splits block b at off into two blocks of the same type.
func splitBlock(v document.Value, b, off int) document.Value {
	if b < 0 || b >= len(v) {
		return v
	}
	p := document.PointAt(v, b, off)
	left, right, ok := splitNode(v[b], p.Path[1:], p.Offset)
	if !ok {
		return v
	}
	out := make(document.Value, 0, len(v)+1)
	out = append(out, v[:b]...)
	out = append(out, left, right)
	out = append(out, v[b+1:]...)
	return out
}

func splitNode(n document.Node, rel document.Path, off int) (left, right document.Node, ok bool) {
	switch n := n.(type) {
	case *document.Text:
		if len(rel) != 0 {
			return nil, nil, false
		}
		l, r := *n, *n
		l.Text = graphemeutil.Slice(n.Text, 0, off)
		r.Text = graphemeutil.Slice(n.Text, off, graphemeutil.Count(n.Text))
		return &l, &r, true
	case *document.Element:
		if len(rel) == 0 || rel[0] < 0 || rel[0] >= len(n.Children) {
			return nil, nil, false
		}
		idx := rel[0]
		l, r, ok := splitNode(n.Children[idx], rel[1:], off)
		if !ok {
			return nil, nil, false
		}
		lc := append(append([]document.Node(nil), n.Children[:idx]...), l)
		rc := append([]document.Node{r}, n.Children[idx+1:]...)
		return &document.Element{Type: n.Type, Children: lc}, &document.Element{Type: n.Type, Children: rc}, true
	}
	return nil, nil, false
}

// mergeBlocks joins block b+1 onto block b, keeping b's type.
func mergeBlocks(v document.Value, b int) (document.Value, bool) {
	if b < 0 || b+1 >= len(v) {
		return v, false
	}
	a, okA := v[b].(*document.Element)
	c, okC := v[b+1].(*document.Element)
	if !okA || !okC {
		return v, false
	}
	children := append(dropEmptyText(a.Children), dropEmptyText(c.Children)...)
	if len(children) == 0 {
		children = []document.Node{&document.Text{}}
	}
	out := make(document.Value, 0, len(v)-1)
	out = append(out, v[:b]...)
	out = append(out, &document.Element{Type: a.Type, Children: children})
	out = append(out, v[b+2:]...)
	return out, true
}

func dropEmptyText(nodes []document.Node) []document.Node {
	out := make([]document.Node, 0, len(nodes))
	for _, n := range nodes {
		if t, ok := n.(*document.Text); ok && t.Text == "" {
			continue
		}
		out = append(out, n)
	}
	return out
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
