// Package notify holds the process-wide association from an editor to the one
// callback that runs when the command layer reports a change.
//
// The command layer mutates an editor in place and then calls Invoke without
// knowing who, if anyone, is listening. Each editor has at most one slot;
// Register replaces it and Clear parks a no-op in it.
package notify

import (
	"runtime"
	"sync"
	"weak"

	"github.com/iw2rmb/quire/document"
)

// Func is a change callback.
type Func func()

type slot struct {
	fn Func
}

var registry = struct {
	mu    sync.Mutex
	slots map[weak.Pointer[document.Editor]]*slot
}{
	slots: make(map[weak.Pointer[document.Editor]]*slot),
}

// Register installs fn as the change callback for ed, replacing any previous
// one. A nil fn is stored as a no-op.
func Register(ed *document.Editor, fn Func) {
	if ed == nil {
		return
	}
	if fn == nil {
		fn = func() {}
	}
	key := weak.Make(ed)

	registry.mu.Lock()
	defer registry.mu.Unlock()

	if s, ok := registry.slots[key]; ok {
		s.fn = fn
		return
	}
	registry.slots[key] = &slot{fn: fn}
	// The registry must never keep an editor alive.
	runtime.AddCleanup(ed, forget, key)
}

// Clear parks a no-op in ed's slot. After Clear, Invoke(ed) calls nothing but
// the slot still exists.
func Clear(ed *document.Editor) {
	Register(ed, nil)
}

// Invoke runs the callback registered for ed. It does nothing when nothing
// was ever registered.
func Invoke(ed *document.Editor) {
	if ed == nil {
		return
	}
	key := weak.Make(ed)

	registry.mu.Lock()
	s, ok := registry.slots[key]
	var fn Func
	if ok {
		fn = s.fn
	}
	registry.mu.Unlock()

	// Called outside the lock: the callback may re-register.
	if fn != nil {
		fn()
	}
}

// Registered reports whether ed has a slot, including a cleared one.
func Registered(ed *document.Editor) bool {
	if ed == nil {
		return false
	}
	registry.mu.Lock()
	defer registry.mu.Unlock()
	_, ok := registry.slots[weak.Make(ed)]
	return ok
}

func forget(key weak.Pointer[document.Editor]) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	delete(registry.slots, key)
}
