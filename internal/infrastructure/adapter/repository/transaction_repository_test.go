package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streetcare/pointpay/internal/domain/entity"
	errs "github.com/streetcare/pointpay/internal/domain/error"
	"github.com/streetcare/pointpay/internal/domain/port/persistence"
)

func newLedgerRecord(t *testing.T, beneficiaryID, storeID uuid.UUID, amount, balanceBefore int64, at time.Time) *entity.Transaction {
	t.Helper()
	b := &entity.Beneficiary{ID: beneficiaryID, QRCode: "HL_TEST", Status: entity.StatusActive}
	s := &entity.Store{ID: storeID, QRCode: "ST_TEST", Status: entity.StatusActive}
	txn, err := entity.NewCompletedTransaction(uuid.New(), b, s, uuid.Nil, "Hot meal", amount, balanceBefore, at)
	require.NoError(t, err)
	return txn
}

func TestTransactionCreateAndGet(t *testing.T) {
	_, client := newTestClient(t)
	clk := newFixedClock()
	repo := NewTransactionRepository(client, testLogger)
	ctx := context.Background()

	txn := newLedgerRecord(t, uuid.New(), uuid.New(), 50, 200, clk.Now())
	require.NoError(t, repo.Create(ctx, txn))

	got, err := repo.GetByID(ctx, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, txn.BeneficiaryID, got.BeneficiaryID)
	assert.Equal(t, txn.StoreID, got.StoreID)
	assert.Equal(t, "HL_TEST", got.BeneficiaryQR)
	assert.Equal(t, "ST_TEST", got.StoreQR)
	assert.Equal(t, int64(50), got.Amount)
	assert.Equal(t, int64(200), got.BalanceBefore)
	assert.Equal(t, int64(150), got.BalanceAfter)
	assert.Equal(t, entity.TxnCompleted, got.Status)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
}

func TestTransactionHistoryIndexes(t *testing.T) {
	_, client := newTestClient(t)
	clk := newFixedClock()
	repo := NewTransactionRepository(client, testLogger)
	ctx := context.Background()

	beneficiaryID := uuid.New()
	storeA := uuid.New()
	storeB := uuid.New()

	first := newLedgerRecord(t, beneficiaryID, storeA, 10, 100, clk.Now())
	require.NoError(t, repo.Create(ctx, first))
	clk.advance(time.Minute)
	second := newLedgerRecord(t, beneficiaryID, storeB, 20, 90, clk.Now())
	require.NoError(t, repo.Create(ctx, second))
	clk.advance(time.Minute)
	third := newLedgerRecord(t, uuid.New(), storeA, 30, 100, clk.Now())
	require.NoError(t, repo.Create(ctx, third))

	// Global ledger, newest first
	all, total, err := repo.ListAll(ctx, 1, 20, persistence.TimeRange{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, all, 3)
	assert.Equal(t, third.ID, all[0].ID)
	assert.Equal(t, first.ID, all[2].ID)

	// Per-beneficiary history excludes other beneficiaries
	hist, total, err := repo.ListByBeneficiary(ctx, beneficiaryID, 1, 20, persistence.TimeRange{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, hist, 2)
	assert.Equal(t, second.ID, hist[0].ID)
	assert.Equal(t, first.ID, hist[1].ID)

	// Per-store history
	storeHist, total, err := repo.ListByStore(ctx, storeA, 1, 20, persistence.TimeRange{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, storeHist, 2)
}

func TestTransactionListTimeRange(t *testing.T) {
	_, client := newTestClient(t)
	clk := newFixedClock()
	repo := NewTransactionRepository(client, testLogger)
	ctx := context.Background()

	beneficiaryID := uuid.New()
	storeID := uuid.New()

	early := newLedgerRecord(t, beneficiaryID, storeID, 10, 100, clk.Now())
	require.NoError(t, repo.Create(ctx, early))

	clk.advance(48 * time.Hour)
	cutoff := clk.Now().Add(-time.Hour)
	late := newLedgerRecord(t, beneficiaryID, storeID, 20, 90, clk.Now())
	require.NoError(t, repo.Create(ctx, late))

	within := persistence.TimeRange{From: cutoff}
	items, total, err := repo.ListByBeneficiary(ctx, beneficiaryID, 1, 20, within)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, late.ID, items[0].ID)

	bounded := persistence.TimeRange{To: cutoff}
	items, total, err = repo.ListByBeneficiary(ctx, beneficiaryID, 1, 20, bounded)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, early.ID, items[0].ID)
}

func TestTransactionListDay(t *testing.T) {
	_, client := newTestClient(t)
	clk := newFixedClock()
	repo := NewTransactionRepository(client, testLogger)
	ctx := context.Background()

	today := newLedgerRecord(t, uuid.New(), uuid.New(), 10, 100, clk.Now())
	require.NoError(t, repo.Create(ctx, today))

	clk.advance(24 * time.Hour)
	tomorrow := newLedgerRecord(t, uuid.New(), uuid.New(), 20, 100, clk.Now())
	require.NoError(t, repo.Create(ctx, tomorrow))

	items, err := repo.ListDay(ctx, DayBucket(today.CreatedAt))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, today.ID, items[0].ID)

	items, err = repo.ListDay(ctx, DayBucket(tomorrow.CreatedAt))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, tomorrow.ID, items[0].ID)
}

func TestTransactionPagination(t *testing.T) {
	_, client := newTestClient(t)
	clk := newFixedClock()
	repo := NewTransactionRepository(client, testLogger)
	ctx := context.Background()

	beneficiaryID := uuid.New()
	storeID := uuid.New()
	for i := 0; i < 5; i++ {
		txn := newLedgerRecord(t, beneficiaryID, storeID, 10, 100, clk.Now())
		require.NoError(t, repo.Create(ctx, txn))
		clk.advance(time.Second)
	}

	page, total, err := repo.ListAll(ctx, 2, 2, persistence.TimeRange{})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, page, 2)

	last, _, err := repo.ListAll(ctx, 3, 2, persistence.TimeRange{})
	require.NoError(t, err)
	assert.Len(t, last, 1)
}
