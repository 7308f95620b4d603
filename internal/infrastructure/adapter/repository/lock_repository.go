package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	errs "github.com/streetcare/pointpay/internal/domain/error"
	coreport "github.com/streetcare/pointpay/internal/domain/port/core"
)

// LockRepository implements per-beneficiary mutual exclusion with a
// set-if-absent key. The TTL is the crash backstop; Release is the normal
// path.
type LockRepository struct {
	rdb    *redis.Client
	logger coreport.Logger
}

// NewLockRepository creates a new LockRepository instance
func NewLockRepository(rdb *redis.Client, logger coreport.Logger) *LockRepository {
	return &LockRepository{rdb: rdb, logger: logger}
}

// Acquire takes the beneficiary's lock or reports the conflict immediately.
// There is no waiting and no retry here; contention is the caller's signal.
func (r *LockRepository) Acquire(ctx context.Context, beneficiaryID uuid.UUID, ttl time.Duration) error {
	ok, err := r.rdb.SetNX(ctx, beneficiaryLockKey(beneficiaryID), "1", ttl).Result()
	if err != nil {
		return storeErr(err)
	}
	if !ok {
		r.logger.Warn("Beneficiary lock contention", map[string]any{
			"beneficiary_id": beneficiaryID.String(),
		})
		return errs.ErrTransactionLocked
	}
	return nil
}

// Release deletes the lock key. Deleting an already-expired key is a no-op.
func (r *LockRepository) Release(ctx context.Context, beneficiaryID uuid.UUID) error {
	if err := r.rdb.Del(ctx, beneficiaryLockKey(beneficiaryID)).Err(); err != nil {
		return storeErr(err)
	}
	return nil
}
