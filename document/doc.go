// Package document implements the rich-text document model edited by quire.
//
// A document is a Value: an ordered sequence of block Elements whose children
// are Text leaves (or nested Elements). Points address a leaf by Path and a
// grapheme Offset inside it. The Editor is the single mutable object shared by
// the command layer, the bridge and the view; it is mutated in place and never
// replaced.
package document
