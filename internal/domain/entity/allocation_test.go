package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/streetcare/pointpay/internal/domain/error"
)

func TestNewAllocation(t *testing.T) {
	now := time.Now()
	beneficiaryID := uuid.New()
	adminID := uuid.New()

	alloc, err := NewAllocation(uuid.New(), beneficiaryID, adminID, 200, 300, "monthly support", now)
	require.NoError(t, err)

	assert.Equal(t, beneficiaryID, alloc.BeneficiaryID)
	assert.Equal(t, adminID, alloc.AdminID)
	assert.Equal(t, int64(300), alloc.BalanceBefore)
	assert.Equal(t, int64(500), alloc.BalanceAfter)
	assert.Equal(t, "monthly support", alloc.Notes)

	// The ledger invariant holds on every allocation record
	assert.Equal(t, alloc.BalanceBefore+alloc.Amount, alloc.BalanceAfter)
}

func TestNewAllocationInvalidAmount(t *testing.T) {
	_, err := NewAllocation(uuid.New(), uuid.New(), uuid.New(), 0, 100, "", time.Now())
	assert.ErrorIs(t, err, errs.ErrInvalidAmount)

	_, err = NewAllocation(uuid.New(), uuid.New(), uuid.New(), -10, 100, "", time.Now())
	assert.ErrorIs(t, err, errs.ErrInvalidAmount)
}
