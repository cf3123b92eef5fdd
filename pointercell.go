package pairlock

import (
	"sync/atomic"

	"github.com/kolkov/pairlock/internal/pairlock/proto"
	"github.com/kolkov/pairlock/internal/pairlock/rc"
)

// PointerCell is the reference-counted-pointer specialization of Cell: it
// publishes handles rather than values. Get is a wait-free clone of a
// shared handle (a refcount increment, not a copy of T); Set publishes a
// new handle and releases the reference to whichever handle it displaces
// once every reader that could have cloned it has let go.
//
// Use PointerCell instead of Cell[T] when T is expensive to copy, or
// when readers need a handle they can hold onto past the scope of a
// single View call — something Cell's View intentionally disallows.
type PointerCell[T any] struct {
	state *proto.State
	slots [2]atomic.Pointer[rc.Box[T]]
}

// NewPointerCell creates a PointerCell publishing active, with a second
// internal reference to active occupying the inactive slot until the
// first Set. active's reference count must already account for the
// PointerCell's ownership, i.e. pass a fresh *rc.Box[T] with a count of
// one; NewPointerCell retains it once more for the inactive slot.
func NewPointerCell[T any](active *rc.Box[T]) *PointerCell[T] {
	p := &PointerCell[T]{state: proto.NewState()}
	p.slots[0].Store(active)
	p.slots[1].Store(active.Retain())
	return p
}

// NewPointerCellFromValue wraps value in a fresh *rc.Box[T] and
// publishes it, duplicating the handle into both slots the same way
// NewPointerCell does. This is the pointer-specialization counterpart
// of New/WithDefault: the caller supplies a bare value instead of
// already having constructed and owning a *rc.Box[T] themselves.
func NewPointerCellFromValue[T any](value T) *PointerCell[T] {
	return NewPointerCell(rc.New(value))
}

// Get returns a retained reference to the currently active handle. The
// caller owns the returned reference and must call Release on it
// exactly once when done. Get is wait-free: it performs the same
// bounded atomic operations as Cell.View, plus one Retain.
func (p *PointerCell[T]) Get() *rc.Box[T] {
	slot, release := p.state.EnterReader()
	defer release()
	return p.slots[slot].Load().Retain()
}

// Set blocks until it can safely replace the inactive slot's handle,
// stores next there (taking ownership of the one reference the caller
// passes in), publishes it as active, and releases the cell's own
// reference to whichever handle is displaced. Unlike Cell.Set, Set does
// not return the displaced handle — since PointerCell handles are
// refcounted, returning it would leave the caller unsure whether they
// now owe it a Release.
func (p *PointerCell[T]) Set(next *rc.Box[T]) {
	guard := p.state.AcquireWriter()
	slot := guard & 1
	displaced := p.slots[slot].Swap(next)
	p.state.CommitWriter(guard)
	displaced.Release()
}

// TrySet attempts the non-blocking variant of Set, returning
// ErrWriterContended or ErrInactiveNotDrained under the same conditions
// as Cell.TryUpdate.
func (p *PointerCell[T]) TrySet(next *rc.Box[T]) error {
	guard, err := p.state.TryAcquireWriter()
	if err != nil {
		return err
	}
	slot := guard & 1
	displaced := p.slots[slot].Swap(next)
	p.state.CommitWriter(guard)
	displaced.Release()
	return nil
}

// Close releases the PointerCell's reference to its inactive handle and
// returns the handle that was active, handing the cell's reference to
// it over to the caller, who must Release it. Go has no destructor to run this
// automatically the way the Rust source's Drop impl does, so a
// PointerCell that owns the last reference to its handles must have
// Close called explicitly once no reader or writer can still observe
// it, or those references leak for the life of the process.
//
// After Close, the PointerCell must not be used again.
func (p *PointerCell[T]) Close() *rc.Box[T] {
	active := p.slots[p.state.ActiveSlot()].Load()
	inactive := p.slots[p.state.ActiveSlot()^1].Load()
	inactive.Release()
	return active
}
