package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/streetcare/pointpay/internal/domain/error"
)

func TestLockAcquireAndRelease(t *testing.T) {
	_, client := newTestClient(t)
	repo := NewLockRepository(client, testLogger)
	ctx := context.Background()
	beneficiaryID := uuid.New()

	require.NoError(t, repo.Acquire(ctx, beneficiaryID, 30*time.Second))

	// Second acquisition on the same beneficiary must conflict
	err := repo.Acquire(ctx, beneficiaryID, 30*time.Second)
	assert.ErrorIs(t, err, errs.ErrTransactionLocked)

	// After release the lock is free again
	require.NoError(t, repo.Release(ctx, beneficiaryID))
	assert.NoError(t, repo.Acquire(ctx, beneficiaryID, 30*time.Second))
}

func TestLockIsPerBeneficiary(t *testing.T) {
	_, client := newTestClient(t)
	repo := NewLockRepository(client, testLogger)
	ctx := context.Background()

	require.NoError(t, repo.Acquire(ctx, uuid.New(), 30*time.Second))
	// A different beneficiary is unaffected
	assert.NoError(t, repo.Acquire(ctx, uuid.New(), 30*time.Second))
}

func TestLockExpiresAfterTTL(t *testing.T) {
	mr, client := newTestClient(t)
	repo := NewLockRepository(client, testLogger)
	ctx := context.Background()
	beneficiaryID := uuid.New()

	require.NoError(t, repo.Acquire(ctx, beneficiaryID, 5*time.Second))
	assert.ErrorIs(t, repo.Acquire(ctx, beneficiaryID, 5*time.Second), errs.ErrTransactionLocked)

	// The TTL backstop frees a lock its holder never released
	mr.FastForward(6 * time.Second)
	assert.NoError(t, repo.Acquire(ctx, beneficiaryID, 5*time.Second))
}

func TestLockReleaseIsIdempotent(t *testing.T) {
	_, client := newTestClient(t)
	repo := NewLockRepository(client, testLogger)
	ctx := context.Background()
	beneficiaryID := uuid.New()

	assert.NoError(t, repo.Release(ctx, beneficiaryID))
	require.NoError(t, repo.Acquire(ctx, beneficiaryID, time.Second))
	assert.NoError(t, repo.Release(ctx, beneficiaryID))
	assert.NoError(t, repo.Release(ctx, beneficiaryID))
}
