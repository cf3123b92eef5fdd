package pairlock

import (
	"github.com/kolkov/pairlock/internal/pairlock/proto"
)

// ErrWriterContended is returned by TryUpdate when another writer
// already holds the update lock. Not fatal: the caller may retry.
var ErrWriterContended = proto.ErrWriterContended

// ErrInactiveNotDrained is returned by TryUpdate when the update lock
// was acquired but the inactive slot still has readers that have not
// released their reservation. The lock is released before this error
// is returned, so a polling TryUpdate never blocks a concurrent
// blocking Update. Not fatal: the caller may retry.
var ErrInactiveNotDrained = proto.ErrInactiveNotDrained

// invariantViolation panics with a message identifying which internal
// invariant was observed broken. Reaching this indicates a bug in this
// package, not caller misuse — continuing would risk returning a torn
// or uninitialized value, so the only safe response is to abort rather
// than propagate a recoverable error.
func invariantViolation(what string) {
	panic("pairlock: internal invariant violated: " + what)
}
