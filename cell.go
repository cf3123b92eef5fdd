package pairlock

import (
	"github.com/kolkov/pairlock/internal/pairlock/proto"
)

// Cell is a pair-slotted reader-writer cell holding a value of type T.
//
// Reads (View, and the free functions GetClone/Read built on it) are
// wait-free, touch only atomics, and run in O(1) time regardless of
// how many readers or writers are active. Writes (Set, Update,
// TryUpdate) serialize through a mutex and may block waiting for
// stragglers reading the slot about to be reused.
//
// The zero Cell is not usable; construct one with New, WithClone, or
// WithDefault.
type Cell[T any] struct {
	state *proto.State
	slots [2]T
}

// New creates a Cell with active and inactive as the two independent
// initial slot values.
func New[T any](active, inactive T) *Cell[T] {
	return &Cell[T]{
		state: proto.NewState(),
		slots: [2]T{active, inactive},
	}
}

// WithDefault creates a Cell with init as the active value and T's zero
// value as the inactive one.
func WithDefault[T any](init T) *Cell[T] {
	var zero T
	return New(init, zero)
}

// WithClone creates a Cell with init as the active value and a clone of
// init (via clone) as the inactive one. Use this instead of New when
// sharing one value between both slots would be unsafe or semantically
// wrong (e.g. the value owns a mutable buffer).
func WithClone[T any](init T, clone func(T) T) *Cell[T] {
	return New(init, clone(init))
}

// View runs fn over a pointer to the currently active value and
// returns fn's result. fn must not retain the pointer beyond its own
// return — the slot it points to may be mutated by a writer as soon as
// View returns.
//
// View never blocks and performs a bounded number of atomic operations
// independent of how many other readers or writers are active. It is
// safe to call View recursively from within fn, and safe to call it
// from many goroutines concurrently. Calling Update on the same Cell
// from within fn can deadlock: once the slot this View reserved becomes
// the inactive one, Update waits for that reservation, which is only
// released after fn returns. TryUpdate never blocks; in that situation
// it returns ErrInactiveNotDrained instead.
func (c *Cell[T]) View(fn func(v *T)) {
	slot, release := c.state.EnterReader()
	defer release()
	fn(&c.slots[slot])
}

// GetClone returns a clone of the active value using the type's own
// Clone method. Go has no built-in notion of a cloneable type, so the
// constraint is expressed structurally: T must implement Clone() T.
func GetClone[T interface{ Clone() T }](c *Cell[T]) T {
	var out T
	c.View(func(v *T) { out = (*v).Clone() })
	return out
}

// Read returns a copy of the active value. Since Go values are always
// copied on assignment, this needs no cloneable constraint — but it is
// only appropriate for values that are cheap and correct to shallow-
// copy; anything holding a slice, map, or pointer that the caller might
// mutate through should use GetClone or View instead.
func Read[T any](c *Cell[T]) T {
	var out T
	c.View(func(v *T) { out = *v })
	return out
}
