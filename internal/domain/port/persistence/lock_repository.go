package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LockRepository manages the per-beneficiary mutual-exclusion key used to
// serialize balance mutations. There is no re-entrancy and no queueing: a
// failed Acquire means the caller surfaces a conflict immediately.
//
// The TTL is a safety net against a crash while the lock is held; it is not
// extended while work is in progress, so it must exceed the worst-case
// duration of the critical section it protects.
type LockRepository interface {
	// Acquire sets the beneficiary's lock key only if absent, expiring after
	// ttl. Exclusive ownership goes to exactly one concurrent caller.
	//
	// Possible errors:
	// - ErrTransactionLocked: if another operation holds the lock
	// - ErrStoreUnavailable: if the key-value store fails
	Acquire(ctx context.Context, beneficiaryID uuid.UUID, ttl time.Duration) error

	// Release unconditionally deletes the lock key. Safe to call when the
	// lock already expired; the TTL remains the ultimate backstop if the
	// release itself fails.
	Release(ctx context.Context, beneficiaryID uuid.UUID) error
}
