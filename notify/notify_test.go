package notify

import (
	"testing"

	"github.com/iw2rmb/quire/document"
)

func TestInvoke_WithoutRegistrationIsSilent(t *testing.T) {
	ed := document.NewEditor("e", document.FromText("a"))
	Invoke(ed)
	Invoke(nil)
	if Registered(ed) {
		t.Fatalf("editor must not have a slot before Register")
	}
}

func TestRegister_ReplacesPreviousCallback(t *testing.T) {
	ed := document.NewEditor("e", document.FromText("a"))

	var first, second int
	Register(ed, func() { first++ })
	Register(ed, func() { second++ })

	Invoke(ed)
	Invoke(ed)

	if first != 0 {
		t.Fatalf("superseded callback calls: got %d, want 0", first)
	}
	if second != 2 {
		t.Fatalf("live callback calls: got %d, want 2", second)
	}
}

func TestRegister_SlotsArePerEditor(t *testing.T) {
	a := document.NewEditor("a", document.FromText("a"))
	b := document.NewEditor("b", document.FromText("b"))

	var calls []string
	Register(a, func() { calls = append(calls, "a") })
	Register(b, func() { calls = append(calls, "b") })

	Invoke(b)
	Invoke(a)

	if len(calls) != 2 || calls[0] != "b" || calls[1] != "a" {
		t.Fatalf("calls: got %v, want [b a]", calls)
	}
}

func TestClear_KeepsSlotWithNoop(t *testing.T) {
	ed := document.NewEditor("e", document.FromText("a"))

	calls := 0
	Register(ed, func() { calls++ })
	Clear(ed)
	Invoke(ed)

	if calls != 0 {
		t.Fatalf("calls after Clear: got %d, want 0", calls)
	}
	if !Registered(ed) {
		t.Fatalf("cleared editor must keep its slot")
	}
}

func TestInvoke_CallbackMayReRegister(t *testing.T) {
	ed := document.NewEditor("e", document.FromText("a"))

	var order []int
	Register(ed, func() {
		order = append(order, 1)
		Register(ed, func() { order = append(order, 2) })
	})

	Invoke(ed)
	Invoke(ed)

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("order: got %v, want [1 2]", order)
	}
}
