package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/streetcare/pointpay/internal/domain/error"
)

func fixtureParticipants() (*Beneficiary, *Store) {
	b := &Beneficiary{
		ID:     uuid.New(),
		QRCode: "HL_AAAA11112222",
		Status: StatusActive,
	}
	s := &Store{
		ID:     uuid.New(),
		QRCode: "ST_BBBB33334444",
		Status: StatusActive,
	}
	return b, s
}

func TestNewCompletedTransaction(t *testing.T) {
	now := time.Now()
	b, s := fixtureParticipants()
	productID := uuid.New()

	txn, err := NewCompletedTransaction(uuid.New(), b, s, productID, "Hot meal", 50, 120, now)
	require.NoError(t, err)

	assert.Equal(t, b.ID, txn.BeneficiaryID)
	assert.Equal(t, b.QRCode, txn.BeneficiaryQR)
	assert.Equal(t, s.ID, txn.StoreID)
	assert.Equal(t, s.QRCode, txn.StoreQR)
	assert.Equal(t, productID, txn.ProductID)
	assert.Equal(t, int64(120), txn.BalanceBefore)
	assert.Equal(t, int64(70), txn.BalanceAfter)
	assert.Equal(t, TxnCompleted, txn.Status)

	// The ledger invariant holds on every completed record
	assert.Equal(t, txn.BalanceBefore-txn.Amount, txn.BalanceAfter)
}

func TestNewCompletedTransactionExactBalance(t *testing.T) {
	b, s := fixtureParticipants()

	txn, err := NewCompletedTransaction(uuid.New(), b, s, uuid.Nil, "Groceries", 100, 100, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(0), txn.BalanceAfter)
}

func TestNewCompletedTransactionInsufficientBalance(t *testing.T) {
	b, s := fixtureParticipants()

	_, err := NewCompletedTransaction(uuid.New(), b, s, uuid.Nil, "Groceries", 101, 100, time.Now())
	require.ErrorIs(t, err, errs.ErrInsufficientBalance)

	details := errs.ErrorDetails(err)
	require.NotNil(t, details)
	assert.Equal(t, int64(100), details["current_balance"])
	assert.Equal(t, int64(101), details["required"])
}

func TestNewCompletedTransactionInvalidAmount(t *testing.T) {
	b, s := fixtureParticipants()

	_, err := NewCompletedTransaction(uuid.New(), b, s, uuid.Nil, "Groceries", 0, 100, time.Now())
	assert.ErrorIs(t, err, errs.ErrInvalidAmount)

	_, err = NewCompletedTransaction(uuid.New(), b, s, uuid.Nil, "Groceries", -5, 100, time.Now())
	assert.ErrorIs(t, err, errs.ErrInvalidAmount)
}
