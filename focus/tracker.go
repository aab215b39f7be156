package focus

import "fmt"

// Predicate reports the current focus state. It is the single source of
// truth; event payloads are never trusted directly.
type Predicate func() bool

// Tracker caches the result of a Predicate and refreshes it on every focus or
// blur event seen in the capture phase while mounted.
type Tracker struct {
	target  *Target
	pred    Predicate
	focused bool

	// handler is created once so re-renders never churn listeners.
	handler Listener

	focusID ListenerID
	blurID  ListenerID
	mounted bool
}

// NewTracker returns an unmounted tracker initialised from pred.
func NewTracker(target *Target, pred Predicate) *Tracker {
	if target == nil {
		target = Document
	}
	t := &Tracker{target: target, pred: pred}
	t.handler = func(*Event) { t.Refresh() }
	t.Refresh()
	return t
}

// Mount subscribes to focus and blur events. It either subscribes both or
// neither.
func (t *Tracker) Mount() (err error) {
	if t.mounted {
		return nil
	}

	focusID, err := t.target.AddListener(KindFocus, Capture, t.handler)
	if err != nil {
		return fmt.Errorf("subscribe focus: %w", err)
	}
	defer func() {
		if err != nil {
			t.target.RemoveListener(focusID)
		}
	}()

	blurID, err := t.target.AddListener(KindBlur, Capture, t.handler)
	if err != nil {
		return fmt.Errorf("subscribe blur: %w", err)
	}

	t.focusID, t.blurID = focusID, blurID
	t.mounted = true
	t.Refresh()
	return nil
}

// Unmount removes the listeners added by Mount.
func (t *Tracker) Unmount() {
	if !t.mounted {
		return
	}
	t.target.RemoveListener(t.focusID)
	t.target.RemoveListener(t.blurID)
	t.focusID, t.blurID = 0, 0
	t.mounted = false
}

// Refresh re-reads the predicate.
func (t *Tracker) Refresh() {
	if t.pred == nil {
		t.focused = false
		return
	}
	t.focused = t.pred()
}

// SetPredicate swaps the predicate without touching the subscriptions.
func (t *Tracker) SetPredicate(pred Predicate) {
	t.pred = pred
}

// Focused returns the cached focus state.
func (t *Tracker) Focused() bool { return t.focused }

// Mounted reports whether the tracker holds subscriptions.
func (t *Tracker) Mounted() bool { return t.mounted }
