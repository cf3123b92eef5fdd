package proto

import "errors"

// ErrWriterContended is returned by TryAcquireWriter when another writer
// currently holds the lock. The caller may retry; the attempt never blocked.
var ErrWriterContended = errors.New("pairlock: another writer holds the lock")

// ErrInactiveNotDrained is returned by TryAcquireWriter when the lock was
// acquired but the inactive slot still has readers that have not released
// their reservation. The lock is released before this error is returned.
var ErrInactiveNotDrained = errors.New("pairlock: inactive slot still has unfinished reads")
