// Package bridge connects a mutable document.Editor to a view that only
// redraws when it sees a new token.
//
// The editor is mutated in place by the command layer, so nothing about it
// ever looks "new" to the view. A Bridge fixes that: each activation (Mount or
// Render) pushes the host's snapshot and extension fields onto the editor and
// registers a change callback with package notify. When a command reports a
// change, the callback forwards editor.Children to the host's sink and bumps
// a private generation counter; the next Render publishes a fresh Context.
//
// Consumers read three channels:
//
//   - Editor: the editor itself; its identity never changes.
//   - Context: the published tuple; a new pointer means something changed.
//   - Focused: the cached focus flag maintained by a focus.Tracker.
//
// A Bridge is not safe for concurrent use. All calls, including the commands
// that end up invoking its change callback, must happen on the UI goroutine.
// A change notification that arrives while another one is being applied is a
// programming error and panics.
package bridge
