package document

import graphemeutil "github.com/iw2rmb/quire/internal/grapheme"

// NodeAt returns the node addressed by p.
func NodeAt(v Value, p Path) (Node, bool) {
	if len(p) == 0 {
		return nil, false
	}
	children := []Node(v)
	var n Node
	for _, idx := range p {
		if idx < 0 || idx >= len(children) {
			return nil, false
		}
		n = children[idx]
		el, ok := n.(*Element)
		if !ok {
			children = nil
			continue
		}
		children = el.Children
	}
	return n, n != nil
}

// Leaf returns the Text leaf addressed by p.
func Leaf(v Value, p Path) (*Text, bool) {
	n, ok := NodeAt(v, p)
	if !ok {
		return nil, false
	}
	t, ok := n.(*Text)
	return t, ok
}

// LeafPaths returns the path of every Text leaf in document order.
func LeafPaths(v Value) []Path {
	var out []Path
	var walk func(children []Node, prefix Path)
	walk = func(children []Node, prefix Path) {
		for i, c := range children {
			p := append(prefix.Clone(), i)
			switch c := c.(type) {
			case *Text:
				out = append(out, p)
			case *Element:
				walk(c.Children, p)
			}
		}
	}
	walk(v, nil)
	return out
}

// LeafLen returns the grapheme length of the leaf at p, or 0.
func LeafLen(v Value, p Path) int {
	t, ok := Leaf(v, p)
	if !ok {
		return 0
	}
	return graphemeutil.Count(t.Text)
}

// Start returns the first position in v.
func Start(v Value) (Point, bool) {
	paths := LeafPaths(v)
	if len(paths) == 0 {
		return Point{}, false
	}
	return Point{Path: paths[0]}, true
}

// End returns the last position in v.
func End(v Value) (Point, bool) {
	paths := LeafPaths(v)
	if len(paths) == 0 {
		return Point{}, false
	}
	last := paths[len(paths)-1]
	return Point{Path: last, Offset: LeafLen(v, last)}, true
}

// ClampPoint moves p onto the nearest valid position in v.
func ClampPoint(v Value, p Point) (Point, bool) {
	if _, ok := Leaf(v, p.Path); ok {
		n := LeafLen(v, p.Path)
		switch {
		case p.Offset < 0:
			p.Offset = 0
		case p.Offset > n:
			p.Offset = n
		}
		return Point{Path: p.Path.Clone(), Offset: p.Offset}, true
	}
	paths := LeafPaths(v)
	if len(paths) == 0 {
		return Point{}, false
	}
	for _, lp := range paths {
		if ComparePath(lp, p.Path) >= 0 {
			return Point{Path: lp}, true
		}
	}
	return End(v)
}

// ReplaceNode returns a copy of v with the node at p replaced by n. Only the
// elements along p are copied; untouched subtrees are shared.
func ReplaceNode(v Value, p Path, n Node) (Value, bool) {
	children, ok := replaceIn(v, p, n)
	if !ok {
		return v, false
	}
	return Value(children), true
}

func replaceIn(children []Node, p Path, n Node) ([]Node, bool) {
	if len(p) == 0 {
		return nil, false
	}
	idx := p[0]
	if idx < 0 || idx >= len(children) {
		return nil, false
	}
	out := append([]Node(nil), children...)
	if len(p) == 1 {
		out[idx] = n
		return out, true
	}
	el, ok := children[idx].(*Element)
	if !ok {
		return nil, false
	}
	sub, ok := replaceIn(el.Children, p[1:], n)
	if !ok {
		return nil, false
	}
	out[idx] = &Element{Type: el.Type, Children: sub}
	return out, true
}
