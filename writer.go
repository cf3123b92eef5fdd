package pairlock

// Update blocks until the writer lock is free and the inactive slot has
// drained, then returns an UpdateGuard granting exclusive mutable
// access to that slot. The slot becomes active when the guard's Commit
// method runs.
//
// Update blocks for, at minimum: the duration any other writer holds
// the lock, plus the time needed for every reader that started before
// the previous flip to release its reservation of the slot Update is
// about to hand out.
func (c *Cell[T]) Update() *UpdateGuard[T] {
	target := c.state.AcquireWriter()
	return &UpdateGuard[T]{cell: c, drainTarget: target}
}

// TryUpdate attempts the non-blocking variant of Update. It never
// blocks: if another writer holds the lock it returns
// ErrWriterContended; if the lock was free but the inactive slot still
// has unfinished reads, it returns ErrInactiveNotDrained — in that
// case the lock is released before TryUpdate returns, so a polling
// caller never blocks a concurrent Update.
func (c *Cell[T]) TryUpdate() (*UpdateGuard[T], error) {
	target, err := c.state.TryAcquireWriter()
	if err != nil {
		return nil, err
	}
	return &UpdateGuard[T]{cell: c, drainTarget: target}, nil
}

// Set blocks until it can safely overwrite the inactive slot with
// value, then publishes it as active and returns the value that was
// previously inactive (i.e. the value published two writes ago).
func (c *Cell[T]) Set(value T) T {
	guard := c.Update()
	prev := *guard.Mutable()
	*guard.Mutable() = value
	guard.Commit()
	return prev
}
