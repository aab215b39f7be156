// Package transform is the command layer: it edits a document.Editor in place
// and reports each effective change through notify.Invoke.
//
// Cursor arithmetic works in block offsets: a top-level block index plus a
// grapheme offset into the concatenated text of that block's leaves. Points
// are converted to and from block offsets at the edges of each command.
// Commands that change nothing do not notify.
package transform
