package document

import (
	"reflect"
	"strings"
)

// Block element types understood by the view layer.
const (
	TypeParagraph = "paragraph"
	TypeHeading   = "heading"
	TypeQuote     = "quote"
	TypeCode      = "code"
)

// BlockTypes lists the block types in cycling order.
var BlockTypes = []string{TypeParagraph, TypeHeading, TypeQuote, TypeCode}

// Node is either an *Element or a *Text.
type Node interface {
	node()
}

// Element is a container node.
type Element struct {
	Type     string
	Children []Node
}

// Text is a leaf holding a run of text with uniform marks.
type Text struct {
	Text   string
	Bold   bool
	Italic bool
	Code   bool
}

func (*Element) node() {}
func (*Text) node()    {}

// Value is a document snapshot. It is assigned wholesale to Editor.Children.
type Value []Node

// SameValue reports whether a and b are the same snapshot: same backing array
// and same length. Two snapshots with equal content but different identity
// are different.
func SameValue(a, b Value) bool {
	if len(a) != len(b) {
		return false
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

// Path addresses a node by child indexes from the root.
type Path []int

// Equal reports whether p and q address the same node.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of p that does not share storage.
func (p Path) Clone() Path {
	return append(Path(nil), p...)
}

// ComparePath orders paths in document order.
func ComparePath(a, b Path) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] < b[i] {
			return -1
		}
		if a[i] > b[i] {
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// Point is a position inside a Text leaf; Offset counts grapheme clusters.
type Point struct {
	Path   Path
	Offset int
}

// Equal reports whether p and q are the same position.
func (p Point) Equal(q Point) bool {
	return p.Offset == q.Offset && p.Path.Equal(q.Path)
}

// ComparePoint orders points in document order.
func ComparePoint(a, b Point) int {
	if c := ComparePath(a.Path, b.Path); c != 0 {
		return c
	}
	if a.Offset < b.Offset {
		return -1
	}
	if a.Offset > b.Offset {
		return 1
	}
	return 0
}

// Range is a selection. Anchor is where it started, Focus is where the
// cursor is; Anchor may come after Focus.
type Range struct {
	Anchor Point
	Focus  Point
}

// Collapsed returns an empty range at p.
func Collapsed(p Point) Range {
	return Range{Anchor: p, Focus: p}
}

// IsCollapsed reports whether r is empty.
func (r Range) IsCollapsed() bool {
	return r.Anchor.Equal(r.Focus)
}

// Edges returns the range endpoints in document order.
func (r Range) Edges() (start, end Point) {
	if ComparePoint(r.Anchor, r.Focus) <= 0 {
		return r.Anchor, r.Focus
	}
	return r.Focus, r.Anchor
}

// FromText builds a value with one paragraph per line.
func FromText(text string) Value {
	lines := strings.Split(text, "\n")
	v := make(Value, 0, len(lines))
	for _, line := range lines {
		v = append(v, Paragraph(line))
	}
	return v
}

// Paragraph returns a paragraph holding a single unmarked leaf.
func Paragraph(text string) *Element {
	return &Element{Type: TypeParagraph, Children: []Node{&Text{Text: text}}}
}

// PlainText returns the text content of v with blocks separated by '\n'.
func PlainText(v Value) string {
	var sb strings.Builder
	for i, n := range v {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(NodeText(n))
	}
	return sb.String()
}

// NodeText concatenates the text of every leaf under n.
func NodeText(n Node) string {
	switch n := n.(type) {
	case *Text:
		return n.Text
	case *Element:
		var sb strings.Builder
		for _, c := range n.Children {
			sb.WriteString(NodeText(c))
		}
		return sb.String()
	}
	return ""
}

// Ptr returns a pointer to v. It is handy for filling Fields.
func Ptr[T any](v T) *T {
	return &v
}
