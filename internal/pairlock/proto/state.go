// Package proto implements the double-buffered publication protocol shared
// by every slot-storage flavor built on top of it (the generic value cell
// and the reference-counted-pointer specialization both embed a [State]).
//
// The protocol is the "pair-slotted reader-writer cell" at the center of
// this module: readers are wait-free and touch only atomics; a single
// writer blocks, draining the slot it is about to reuse before mutating
// it and flipping which slot is active.
package proto

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// MaxUpdateSpins bounds how many times a blocking writer re-checks drain
// completion before releasing the lock and yielding to the scheduler.
// Unvalidated against real hardware, same as the Rust source this protocol
// is ported from; exposed as a constant rather than tuned per platform.
const MaxUpdateSpins = 7

// State holds the atomic counter pair and the writer lock that together
// implement the publication protocol. It carries no storage of its own —
// embedders (Cell[T], PointerCell[T]) own the two value slots and use
// State only to decide which slot index is active and when the inactive
// one is safe to mutate.
//
// Counter discipline: active is stepped by 2 per reader entry; bit 0
// never changes except when a writer commits. finished[s] is stepped by
// 2 per reader exit from slot s. Wraparound of the machine word is
// permitted and correct because only equality between active's snapshot
// and finished[s] is ever tested, never ordering.
//
// drainTarget is guarded by mu: it is the value active held at the
// instant the now-inactive slot was last deactivated, i.e. the value
// finished[inactive] must reach before a writer may touch that slot.
// Bit 0 of drainTarget always identifies the inactive slot.
type State struct {
	active   atomic.Uint64
	finished [2]atomic.Uint64
	mu       sync.Mutex
	// drainTarget is guarded by mu. Not atomic: only ever read or written
	// while holding the lock.
	drainTarget uint64
}

// NewState returns a State ready for production use, with slot 0 active.
func NewState() *State {
	return NewStateAt(0)
}

// NewStateAt returns a State whose counters start at start instead of 0.
// Production code has no reason to call this directly; it exists so
// tests can start the counter close to the machine word's maximum and
// exercise wraparound, mirroring how the Rust source from which this
// protocol is ported starts its AtomicUsize near usize::MAX under
// cfg!(debug_assertions).
func NewStateAt(start uint64) *State {
	s := &State{}
	s.active.Store(start)
	s.finished[start&1].Store(start)
	s.finished[(start^1)&1].Store(start ^ 1)
	s.drainTarget = start ^ 1
	return s
}

// EnterReader reserves the currently active slot for a read and returns
// its index together with a release closure. The caller must invoke
// release exactly once, even if it panics while holding the reservation
// — stranding a reservation would block the writer from ever reusing
// that slot. A defer right after EnterReader returns is the only correct
// way to use it:
//
//	slot, release := state.EnterReader()
//	defer release()
//	... read embedder's slots[slot] ...
//
// EnterReader never blocks and performs exactly one atomic read-modify-
// write; it is the only operation on the reader path.
func (s *State) EnterReader() (slot int, release func()) {
	v := s.active.Add(2)
	slot = int(v & 1)
	fin := &s.finished[slot]
	return slot, func() { fin.Add(2) }
}

// drainedLocked reports whether the inactive slot named by drainTarget has
// been fully vacated by readers. Must be called with mu held.
func (s *State) drainedLocked() bool {
	slot := s.drainTarget & 1
	return s.finished[slot].Load() == s.drainTarget
}

// AcquireWriter blocks until the writer lock is held and the inactive
// slot has drained, then returns the drainTarget snapshot the caller
// must eventually pass to CommitWriter or discard via CancelWriter. The
// lock remains held when AcquireWriter returns.
//
// Algorithm: lock, spin up to MaxUpdateSpins times re-checking drain
// completion, and if still not drained release the lock and yield to
// the scheduler before restarting from the top. This bounds writer
// latency under contention without starving other goroutines — the
// spin avoids a syscall-class yield for the common case where a
// straggling reader is about to finish within a few atomic loads.
func (s *State) AcquireWriter() (drainTarget uint64) {
	for {
		s.mu.Lock()
		for i := 0; i < MaxUpdateSpins; i++ {
			if s.drainedLocked() {
				return s.drainTarget
			}
		}
		s.mu.Unlock()
		runtime.Gosched()
	}
}

// TryAcquireWriter attempts the non-blocking variant of AcquireWriter. It
// never blocks: if another writer holds the lock it returns
// ErrWriterContended immediately; if the lock is acquired but the
// inactive slot has outstanding readers, the lock is released before
// ErrInactiveNotDrained is returned, so other writers are not blocked by
// a writer that merely polled.
func (s *State) TryAcquireWriter() (drainTarget uint64, err error) {
	if !s.mu.TryLock() {
		return 0, ErrWriterContended
	}
	if s.drainedLocked() {
		return s.drainTarget, nil
	}
	s.mu.Unlock()
	return 0, ErrInactiveNotDrained
}

// CommitWriter publishes the slot named by drainTarget as active and
// releases the writer lock. drainTarget must be the value most recently
// returned by AcquireWriter or TryAcquireWriter on this State, with no
// intervening unlock. The embedder must have finished mutating the
// inactive slot before calling CommitWriter.
func (s *State) CommitWriter(drainTarget uint64) {
	oldActive := s.active.Swap(drainTarget)
	s.drainTarget = oldActive
	s.mu.Unlock()
}

// CancelWriter releases the writer lock without flipping the active
// slot. Any mutation already applied to the inactive slot remains there
// and is visible to the next writer before it overwrites that slot
// again.
func (s *State) CancelWriter() {
	s.mu.Unlock()
}

// ActiveSlot returns the currently active slot index without taking any
// lock or performing a reader reservation. Only safe when the caller has
// exclusive access to the embedder (construction, destruction, or a
// single-owner context) — there must be no concurrent reader or writer.
func (s *State) ActiveSlot() int {
	return int(s.active.Load() & 1)
}
