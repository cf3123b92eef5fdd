package pairlock

// UpdateGuard grants exclusive mutable access to a Cell's inactive slot.
// It is returned by Cell.Update and Cell.TryUpdate, which acquire the
// writer lock on the caller's behalf; the guard must be released by
// calling exactly one of Commit or Cancel.
//
// Go has no destructors, so unlike the RAII guard this type is modeled
// on, UpdateGuard does not flip the slot automatically when it goes out
// of scope — the caller must call Commit (or Cancel) explicitly, most
// naturally via defer immediately after acquiring the guard:
//
//	guard := cell.Update()
//	defer guard.Commit()
//	*guard.Mutable() = newValue
//
// Calling Commit or Cancel more than once, or calling both, is a no-op
// after the first call — the guard forgets which slot it holds once
// released, so nothing after the first release can corrupt the cell.
type UpdateGuard[T any] struct {
	cell        *Cell[T]
	drainTarget uint64
	released    bool
}

// Mutable returns a pointer to the inactive (not yet published) slot.
// It is safe to write through this pointer for as long as the guard is
// held; no reader can observe the inactive slot until Commit runs.
//
// Calling Mutable after the guard has been released would hand out a
// pointer to a slot this guard no longer has any claim to — a second
// writer may already be mutating it. That should never happen in
// correct code, since Commit/Cancel are the last calls a caller makes
// on a guard; reaching it aborts rather than risking a torn write.
func (g *UpdateGuard[T]) Mutable() *T {
	if g.released {
		invariantViolation("UpdateGuard.Mutable called after release")
	}
	return &g.cell.slots[g.drainTarget&1]
}

// Active returns a pointer to the currently active (published) slot, so
// the writer can read the value being replaced while constructing the
// new one in place. The pointer must not be used to mutate the slot —
// readers may be observing it concurrently.
func (g *UpdateGuard[T]) Active() *T {
	if g.released {
		invariantViolation("UpdateGuard.Active called after release")
	}
	return &g.cell.slots[(g.drainTarget^1)&1]
}

// Both returns pointers to the inactive (mutable) and active
// (read-only) slots in one call, exploiting the fact that while the
// guard is held the inactive slot cannot be read concurrently.
func (g *UpdateGuard[T]) Both() (mutable *T, active *T) {
	return g.Mutable(), g.Active()
}

// Commit publishes the mutated inactive slot as active and releases the
// writer lock. After Commit returns, subsequent reads observe whatever
// Mutable() was last set to (or left unmodified, if Commit is called
// without writing through Mutable() at all — the previously-inactive
// value simply becomes active, unchanged).
func (g *UpdateGuard[T]) Commit() {
	if g.released {
		return
	}
	g.released = true
	g.cell.state.CommitWriter(g.drainTarget)
}

// Cancel releases the writer lock without making the inactive slot
// active. Any mutation already applied through Mutable() remains in
// the inactive slot and will be visible to whichever goroutine next
// acquires an update guard on this Cell, before that goroutine's own
// writes.
func (g *UpdateGuard[T]) Cancel() {
	if g.released {
		return
	}
	g.released = true
	g.cell.state.CancelWriter()
}
