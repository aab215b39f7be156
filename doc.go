// Package quire bridges a long-lived, mutable rich-text editor object into a
// Bubble Tea view tree that redraws only when a published token changes.
//
// The pieces live in subpackages:
//
//   - document: the editor object, its node tree and the extension fields.
//   - transform: editing commands that mutate the editor and report changes.
//   - notify: the per-editor change-notification registry.
//   - focus: the focus event target and the capture-phase focus tracker.
//   - bridge: the render-trigger bridge that owns the generation counter and
//     publishes the editor, its context and the focus flag.
//   - editable: a Bubble Tea component consuming those channels.
//
// This package only carries build metadata.
package quire
