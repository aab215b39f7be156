package focus

import (
	"errors"
	"runtime/debug"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
)

// Kind identifies a focus event.
type Kind uint8

const (
	KindFocus Kind = iota
	KindBlur
)

func (k Kind) String() string {
	switch k {
	case KindFocus:
		return "focus"
	case KindBlur:
		return "blur"
	default:
		return "unknown"
	}
}

// Phase selects when a listener runs relative to other listeners.
type Phase uint8

const (
	Capture Phase = iota
	Bubble
)

var (
	ErrClosed        = errors.New("focus: target closed")
	ErrNilListener   = errors.New("focus: nil listener")
	ErrListenerLimit = errors.New("focus: listener limit reached")
)

// Event is a focus change. Target is the element that gained or lost focus;
// an empty Target means the terminal window itself.
type Event struct {
	Kind    Kind
	Target  string
	Related string

	stopped bool
}

// StopPropagation prevents the remaining bubble listeners from seeing e.
func (e *Event) StopPropagation() { e.stopped = true }

// Stopped reports whether StopPropagation was called.
func (e *Event) Stopped() bool { return e.stopped }

// Listener handles a focus event.
type Listener func(*Event)

// ListenerID identifies a registered listener.
type ListenerID uint64

type listener struct {
	id    ListenerID
	kind  Kind
	phase Phase
	fn    Listener
}

// Option configures a Target.
type Option func(*Target)

// WithMaxListeners caps the number of listeners a Target accepts. Zero means
// no limit.
func WithMaxListeners(n int) Option {
	return func(t *Target) { t.maxListeners = n }
}

// Target dispatches focus events to listeners and remembers which element is
// active. It is safe for concurrent use; listeners run on the dispatching
// goroutine.
type Target struct {
	mu        sync.RWMutex
	listeners []listener
	nextID    ListenerID
	closed    bool

	active        string
	windowFocused bool

	maxListeners int
}

// Document is the process-wide focus target.
var Document = NewTarget()

// NewTarget returns an open target with no active element and a focused window.
func NewTarget(opts ...Option) *Target {
	t := &Target{windowFocused: true}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// AddListener registers fn for events of kind in phase.
func (t *Target) AddListener(kind Kind, phase Phase, fn Listener) (ListenerID, error) {
	if fn == nil {
		return 0, ErrNilListener
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return 0, ErrClosed
	}
	if t.maxListeners > 0 && len(t.listeners) >= t.maxListeners {
		return 0, ErrListenerLimit
	}
	t.nextID++
	t.listeners = append(t.listeners, listener{id: t.nextID, kind: kind, phase: phase, fn: fn})
	return t.nextID, nil
}

// RemoveListener unregisters id. It reports whether id was registered.
func (t *Target) RemoveListener(id ListenerID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, l := range t.listeners {
		if l.id == id {
			t.listeners = append(t.listeners[:i:i], t.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// ListenerCount returns the number of registered listeners.
func (t *Target) ListenerCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.listeners)
}

// ActiveElement returns the ID of the focused element, or "".
func (t *Target) ActiveElement() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active
}

// WindowFocused reports whether the terminal window has focus.
func (t *Target) WindowFocused() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.windowFocused
}

// HasFocus reports whether id is the active element of a focused window.
func (t *Target) HasFocus(id string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return id != "" && t.windowFocused && t.active == id
}

// Focus makes id the active element. If another element was active it is
// blurred first.
func (t *Target) Focus(id string) {
	prev := t.ActiveElement()
	if prev == id {
		return
	}
	if prev != "" {
		t.Dispatch(Event{Kind: KindBlur, Target: prev, Related: id})
	}
	t.Dispatch(Event{Kind: KindFocus, Target: id, Related: prev})
}

// Blur clears the active element.
func (t *Target) Blur() {
	prev := t.ActiveElement()
	if prev == "" {
		return
	}
	t.Dispatch(Event{Kind: KindBlur, Target: prev})
}

// SetWindowFocus records a terminal focus report.
func (t *Target) SetWindowFocus(focused bool) {
	kind := KindBlur
	if focused {
		kind = KindFocus
	}
	t.Dispatch(Event{Kind: kind})
}

// Dispatch applies ev to the target state and delivers it: capture listeners
// first, then bubble listeners until one stops propagation. State is updated
// before any listener runs.
func (t *Target) Dispatch(ev Event) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.apply(ev)
	snapshot := append([]listener(nil), t.listeners...)
	t.mu.Unlock()

	log.Trace().Str("kind", ev.Kind.String()).Str("target", ev.Target).Int("listeners", len(snapshot)).Msg("focus dispatch")

	for _, l := range snapshot {
		if l.phase == Capture && l.kind == ev.Kind {
			safeCall(l.fn, &ev)
		}
	}
	for _, l := range snapshot {
		if ev.stopped {
			break
		}
		if l.phase == Bubble && l.kind == ev.Kind {
			safeCall(l.fn, &ev)
		}
	}
}

func (t *Target) apply(ev Event) {
	if ev.Target == "" {
		t.windowFocused = ev.Kind == KindFocus
		return
	}
	switch ev.Kind {
	case KindFocus:
		t.active = ev.Target
	case KindBlur:
		if t.active == ev.Target {
			t.active = ""
		}
	}
}

// Close drops all listeners and rejects new ones. Dispatch becomes a no-op.
func (t *Target) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	t.listeners = nil
}

// FromMsg converts a Bubble Tea focus report into a window event.
func FromMsg(msg tea.Msg) (Event, bool) {
	switch msg.(type) {
	case tea.FocusMsg:
		return Event{Kind: KindFocus}, true
	case tea.BlurMsg:
		return Event{Kind: KindBlur}, true
	}
	return Event{}, false
}

func safeCall(fn Listener, ev *Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("kind", ev.Kind.String()).Interface("panic", r).Bytes("stack", debug.Stack()).Msg("focus listener panicked")
		}
	}()
	fn(ev)
}
