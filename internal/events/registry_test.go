package events

import (
	"testing"

	"github.com/ironforge/authority/status"
)

func TestRegisterDispatchUnregister(t *testing.T) {
	r := NewRegistry[UserDeleteFunc]()
	h := NewHandle()

	var got []uint64
	if s := r.Register(h, func(targetID uint64) { got = append(got, targetID) }); s != status.Success {
		t.Fatalf("Register() = %v, want Success", s)
	}

	r.Range(func(fn UserDeleteFunc) { fn(42) })
	if len(got) != 1 || got[0] != 42 {
		t.Fatalf("got %v, want [42]", got)
	}

	if s := r.Unregister(h); s != status.Success {
		t.Fatalf("Unregister() = %v, want Success", s)
	}

	r.Range(func(fn UserDeleteFunc) { fn(99) })
	if len(got) != 1 {
		t.Fatalf("callback should not fire after unregister, got %v", got)
	}
}

func TestRegisterSameHandleTwiceIsAlreadyExist(t *testing.T) {
	r := NewRegistry[UserDeleteFunc]()
	h := NewHandle()

	r.Register(h, func(uint64) {})
	if s := r.Register(h, func(uint64) {}); s != status.CallbackAlreadyExist {
		t.Fatalf("Register() = %v, want CallbackAlreadyExist", s)
	}
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (second registration must not overwrite)", r.Len())
	}
}

func TestUnregisterUnknownHandleIsNotFound(t *testing.T) {
	r := NewRegistry[UserDeleteFunc]()
	if s := r.Unregister(NewHandle()); s != status.CallbackNotFound {
		t.Fatalf("Unregister() = %v, want CallbackNotFound", s)
	}
}

func TestUnregisterIsNotReusable(t *testing.T) {
	r := NewRegistry[UserDeleteFunc]()
	h := NewHandle()
	r.Register(h, func(uint64) {})
	r.Unregister(h)

	if s := r.Unregister(h); s != status.CallbackNotFound {
		t.Fatalf("second Unregister() = %v, want CallbackNotFound", s)
	}
}

func TestDifferentEventKindsAreIndependentRegistries(t *testing.T) {
	groups := NewRegistry[GroupDeleteFunc]()
	users := NewRegistry[UserDeleteFunc]()
	h := NewHandle()

	if s := groups.Register(h, func(string) {}); s != status.Success {
		t.Fatalf("groups.Register() = %v, want Success", s)
	}
	// The same handle value in a different event kind's set is not a
	// collision — registries don't share state.
	if s := users.Register(h, func(uint64) {}); s != status.Success {
		t.Fatalf("users.Register() with a handle already used elsewhere = %v, want Success", s)
	}
}

func TestActionString(t *testing.T) {
	if Add.String() != "Add" || Remove.String() != "Remove" {
		t.Fatalf("got %q/%q, want Add/Remove", Add.String(), Remove.String())
	}
}
