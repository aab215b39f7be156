package editable

import (
	"github.com/iw2rmb/quire/document"
	"github.com/iw2rmb/quire/focus"
)

// IsFocused returns a focus predicate reporting whether the editor's ID is
// the active element of target while the terminal window has focus.
func IsFocused(target *focus.Target) func(*document.Editor) bool {
	if target == nil {
		target = focus.Document
	}
	return func(ed *document.Editor) bool {
		return ed != nil && target.HasFocus(ed.ID)
	}
}
