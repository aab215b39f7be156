// Package focus models input focus for terminal views.
//
// A [Target] is a document-wide event source: views call [Target.Focus] and
// [Target.Blur] when they gain or lose focus, and terminal focus reports
// ([tea.FocusMsg], [tea.BlurMsg]) are turned into window focus events with
// [FromMsg]. Listeners subscribe per event kind in one of two phases:
//
//   - [Capture] listeners run first and always see the event.
//   - [Bubble] listeners run afterwards in registration order; any of them may
//     call [Event.StopPropagation] to hide the event from the rest.
//
// A [Tracker] keeps a cached boolean in sync with an external predicate by
// listening to both kinds in the capture phase while mounted.
//
// [Document] is the process-wide target used when no other is supplied.
//
// [tea.FocusMsg]: https://pkg.go.dev/github.com/charmbracelet/bubbletea#FocusMsg
// [tea.BlurMsg]: https://pkg.go.dev/github.com/charmbracelet/bubbletea#BlurMsg
package focus
