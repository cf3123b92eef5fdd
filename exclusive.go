package pairlock

// GetMutBoth returns mutable references to both the active and inactive
// slots, given exclusive (*Cell[T] held by a single owner, no
// concurrent readers or writers) access. It performs no locking and no
// atomic read-modify-write — only a plain load of which slot is active,
// safe because the caller's exclusive access already rules out any
// concurrent mutation of that bit.
func (c *Cell[T]) GetMutBoth() (active *T, inactive *T) {
	a := c.state.ActiveSlot()
	return &c.slots[a], &c.slots[a^1]
}

// GetMutActive returns a mutable reference to the active slot, given
// exclusive access.
func (c *Cell[T]) GetMutActive() *T {
	active, _ := c.GetMutBoth()
	return active
}

// GetMutInactive returns a mutable reference to the inactive slot,
// given exclusive access.
func (c *Cell[T]) GetMutInactive() *T {
	_, inactive := c.GetMutBoth()
	return inactive
}

// IntoInner consumes the Cell and returns its active and inactive
// values. Since c is exclusively owned by the caller at this point (no
// other goroutine can hold a reference to an about-to-be-discarded
// Cell without a prior data race), there are no outstanding readers to
// race against.
func (c *Cell[T]) IntoInner() (active T, inactive T) {
	a, i := c.GetMutBoth()
	return *a, *i
}
