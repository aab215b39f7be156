package grapheme

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Split returns grapheme clusters for text in visual order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(text)
}

// Slice returns the grapheme-safe substring for [start, end).
func Slice(text string, start, end int) string {
	clusters := Split(text)
	start = clamp(start, 0, len(clusters))
	end = clamp(end, start, len(clusters))
	return strings.Join(clusters[start:end], "")
}

// Splice removes the clusters in [start, end) and inserts s in their place.
func Splice(text string, start, end int, s string) string {
	clusters := Split(text)
	start = clamp(start, 0, len(clusters))
	end = clamp(end, start, len(clusters))

	var sb strings.Builder
	for _, c := range clusters[:start] {
		sb.WriteString(c)
	}
	sb.WriteString(s)
	for _, c := range clusters[end:] {
		sb.WriteString(c)
	}
	return sb.String()
}

// Width returns the terminal cell width of text.
func Width(text string) int {
	w := 0
	for _, c := range Split(text) {
		w += clusterWidth(c)
	}
	return w
}

// Truncate returns the longest grapheme prefix of text that fits in cells.
func Truncate(text string, cells int) string {
	if cells <= 0 {
		return ""
	}
	var sb strings.Builder
	used := 0
	for _, c := range Split(text) {
		w := clusterWidth(c)
		if used+w > cells {
			break
		}
		sb.WriteString(c)
		used += w
	}
	return sb.String()
}

func clusterWidth(c string) int {
	w := runewidth.StringWidth(c)
	if w <= 0 {
		// runewidth reports 0 for some emoji sequences uniseg measures.
		w = uniseg.StringWidth(c)
	}
	if w < 0 {
		w = 0
	}
	return w
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
