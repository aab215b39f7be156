package document

// BlockLeaves returns the paths of the leaves under top-level block b.
func BlockLeaves(v Value, b int) []Path {
	var out []Path
	for _, p := range LeafPaths(v) {
		if p[0] == b {
			out = append(out, p)
		}
	}
	return out
}

// BlockLen returns the grapheme length of top-level block b.
func BlockLen(v Value, b int) int {
	n := 0
	for _, p := range BlockLeaves(v, b) {
		n += LeafLen(v, p)
	}
	return n
}

// BlockOffset converts p into a block index and a grapheme offset into the
// concatenated text of that block. p must address a leaf.
func BlockOffset(v Value, p Point) (b, off int) {
	if len(p.Path) == 0 {
		return 0, 0
	}
	b = p.Path[0]
	for _, lp := range BlockLeaves(v, b) {
		if lp.Equal(p.Path) {
			return b, off + p.Offset
		}
		off += LeafLen(v, lp)
	}
	return b, off
}

// PointAt converts a block offset into a leaf point. At a boundary between
// two leaves the earlier leaf wins.
func PointAt(v Value, b, off int) Point {
	leaves := BlockLeaves(v, b)
	if len(leaves) == 0 {
		return Point{Path: Path{b}}
	}
	if off < 0 {
		off = 0
	}
	acc := 0
	for _, lp := range leaves {
		n := LeafLen(v, lp)
		if off <= acc+n {
			return Point{Path: lp, Offset: off - acc}
		}
		acc += n
	}
	last := leaves[len(leaves)-1]
	return Point{Path: last, Offset: LeafLen(v, last)}
}
