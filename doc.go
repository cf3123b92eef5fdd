// Package pairlock provides a pair-slotted reader-writer cell: a
// concurrency primitive giving many readers wait-free, constant-time
// snapshots of a shared value while a single writer publishes new
// values atomically.
//
// Two value slots are kept; readers always observe one complete,
// published slot, never a partially-written one, and never take a lock.
// A writer mutates the other (inactive) slot once it has proven every
// reader that started before the previous flip has finished, then
// flips which slot is active. This trades one extra copy of the value
// and writer-side latency (a writer may have to wait for stragglers)
// for reads that never block and never allocate.
//
// # Quick Start
//
//	cell := pairlock.New(0, 0)
//
//	// many readers, any number of goroutines, never block:
//	cell.View(func(v *int) {
//		fmt.Println(*v)
//	})
//
//	// one writer, blocks until it can safely mutate the inactive slot:
//	guard := cell.Update()
//	*guard.Mutable() = *guard.Mutable() + 1
//	guard.Commit()
//
// For the common case of replacing the whole value, Set is shorter:
//
//	prev := cell.Set(42)
//
// # API Overview
//
// Construction: [New], [WithClone], [WithDefault].
//
// Reading: [Cell.View], [GetClone], [Read].
//
// Writing: [Cell.Set], [Cell.Update], [Cell.TryUpdate].
//
// The write guard returned by Update/TryUpdate: [UpdateGuard.Mutable],
// [UpdateGuard.Active], [UpdateGuard.Both], [UpdateGuard.Commit],
// [UpdateGuard.Cancel].
//
// Exclusive-access helpers for single-owner contexts (construction,
// destruction, anywhere a *Cell[T] is not shared): [Cell.GetMutActive],
// [Cell.GetMutInactive], [Cell.GetMutBoth], [Cell.IntoInner].
//
// The reference-counted-pointer specialization, for publishing
// immutable snapshots behind a handle that readers can clone wait-free:
// [NewPointerCell], [NewPointerCellFromValue], [PointerCell.Get],
// [PointerCell.Set].
//
// # How It Works
//
// A reader increments an atomic counter by 2 on entry; its low bit
// names the active slot. It reads that slot, then increments a
// per-slot "finished" counter by 2 on exit. A writer holds a mutex
// that serializes writers, and waits for the inactive slot's finished
// counter to reach the value the active counter held at the moment
// that slot was last deactivated — proof that every reader who could
// have seen the old value in that slot has released it. Only then does
// the writer touch the slot; a swap of the active counter publishes
// the result. Counter wraparound is harmless because only equality is
// ever tested, never ordering.
//
// # Performance Characteristics
//
// Reads: O(1) atomic operations, zero allocations, never block.
// Writes: blocked, at minimum, by the time any other writer holds the
// lock plus the time for outstanding readers of the inactive slot to
// finish. There is no starvation-freedom guarantee for writers and no
// fairness guarantee across writers; a single writer is assumed.
//
// # Compatibility
//
// Requires Go 1.24+, the version declared in go.mod; the generics and
// sync/atomic typed-atomic APIs used throughout are older than that. No cgo, no unsafe, no platform-specific code.
//
// # Links
//
// This protocol shares a lineage with two pieces of prior art:
//
//   - Left-right concurrency control (Ramalhete & Correia): the general
//     pattern of trading a second copy of the data for wait-free,
//     population-oblivious reads, which this package's two slots and
//     drain-on-write discipline are a direct instance of.
//   - FastTrack (Flanagan & Freund, PLDI 2009): a different concurrency
//     analysis built on the same "pack a generation into a small
//     integer, compare only for equality, let it wrap" trick that this
//     package's drain-target comparison relies on.
//
// Package documentation: https://pkg.go.dev/github.com/kolkov/pairlock
//
// # Non-goals
//
// Starvation-free writers, fair writer ordering, more than one
// concurrent writer, reader reservations that outlive a single
// View/Get call, persistence or serialization, and more than two
// slots (a three-slot design was considered and rejected — two
// suffices given a writer's willingness to wait).

package pairlock
