// Package editable is a Bubble Tea component that renders a bridged
// document.Editor and turns key presses into transform commands.
//
// The component never owns the document. It reads the editor, the published
// context and the focus flag from a Source (normally a *bridge.Bridge) and
// only rebuilds its rendered content when one of those tokens changes.
// Hosts call Sync after re-rendering the bridge so a new context is picked up.
//
// Focus is routed through a focus.Target: Focus and Blur dispatch element
// events, and terminal focus reports (tea.FocusMsg, tea.BlurMsg) dispatch
// window events. Use IsFocused to build the predicate the bridge expects.
package editable
