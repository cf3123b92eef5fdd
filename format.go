package pairlock

import "fmt"

// String renders the Cell's active value for debugging. It takes a
// reader reservation the same way View does, so it is safe to call
// concurrently with readers and writers, but the inactive slot — which
// may be mid-write — is deliberately not shown.
func (c *Cell[T]) String() string {
	var s string
	c.View(func(v *T) { s = fmt.Sprintf("PairLock(%v, _)", *v) })
	return s
}

// String renders the PointerCell's active handle by forwarding directly
// to the pointed-to value's own formatting — unlike Cell.String, it
// does not wrap the result or show a placeholder for the inactive
// slot, matching the handle-forwarding Debug behavior of the Rust
// source's ArcCell, which just formats the thing the handle points to.
func (p *PointerCell[T]) String() string {
	ref := p.Get()
	defer ref.Release()
	return fmt.Sprintf("%v", *ref.Value())
}
