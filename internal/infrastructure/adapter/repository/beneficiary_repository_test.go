package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streetcare/pointpay/internal/domain/entity"
	errs "github.com/streetcare/pointpay/internal/domain/error"
	"github.com/streetcare/pointpay/internal/domain/port/persistence"
)

func newBeneficiary(t *testing.T, clk *fixedClock, nationalID string) *entity.Beneficiary {
	t.Helper()
	b, err := entity.NewBeneficiary(uuid.New(), "HL_"+uuid.NewString()[:12], nationalID, "Chen Wei", clk.Now())
	require.NoError(t, err)
	return b
}

func TestBeneficiaryCreateAndLookups(t *testing.T) {
	_, client := newTestClient(t)
	clk := newFixedClock()
	repo := NewBeneficiaryRepository(client, clk, testLogger)
	ctx := context.Background()

	b := newBeneficiary(t, clk, "A123456789")
	require.NoError(t, repo.Create(ctx, b))

	byID, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, byID.ID)
	assert.Equal(t, b.QRCode, byID.QRCode)
	assert.Equal(t, int64(0), byID.Balance)
	assert.Equal(t, entity.StatusActive, byID.Status)

	byQR, err := repo.GetByQRCode(ctx, b.QRCode)
	require.NoError(t, err)
	assert.Equal(t, b.ID, byQR.ID)

	byNID, err := repo.GetByNationalID(ctx, "A123456789")
	require.NoError(t, err)
	assert.Equal(t, b.ID, byNID.ID)
}

func TestBeneficiaryNotFound(t *testing.T) {
	_, client := newTestClient(t)
	repo := NewBeneficiaryRepository(client, newFixedClock(), testLogger)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, errs.ErrBeneficiaryNotFound)

	_, err = repo.GetByQRCode(ctx, "HL_DOESNOTEXIST")
	assert.ErrorIs(t, err, errs.ErrBeneficiaryNotFound)
}

func TestBeneficiaryDuplicateNationalID(t *testing.T) {
	_, client := newTestClient(t)
	clk := newFixedClock()
	repo := NewBeneficiaryRepository(client, clk, testLogger)
	ctx := context.Background()

	first := newBeneficiary(t, clk, "A123456789")
	require.NoError(t, repo.Create(ctx, first))

	second := newBeneficiary(t, clk, "A123456789")
	err := repo.Create(ctx, second)
	require.ErrorIs(t, err, errs.ErrDuplicateNationalID)

	// The losing record must not be reachable
	_, err = repo.GetByID(ctx, second.ID)
	assert.ErrorIs(t, err, errs.ErrBeneficiaryNotFound)
}

func TestBeneficiaryUpdate(t *testing.T) {
	_, client := newTestClient(t)
	clk := newFixedClock()
	repo := NewBeneficiaryRepository(client, clk, testLogger)
	ctx := context.Background()

	b := newBeneficiary(t, clk, "A123456789")
	require.NoError(t, repo.Create(ctx, b))

	clk.advance(time.Minute)
	phone := "0912345678"
	notes := "prefers morning visits"
	updated, err := repo.Update(ctx, b.ID, persistence.BeneficiaryUpdate{
		Phone: &phone,
		Notes: &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, notes, updated.Notes)
	assert.True(t, updated.UpdatedAt.After(b.CreatedAt))

	badPhone := "12345"
	_, err = repo.Update(ctx, b.ID, persistence.BeneficiaryUpdate{Phone: &badPhone})
	assert.ErrorIs(t, err, errs.ErrInvalidPhone)
}

func TestBeneficiaryUpdateNationalIDReindexes(t *testing.T) {
	_, client := newTestClient(t)
	clk := newFixedClock()
	repo := NewBeneficiaryRepository(client, clk, testLogger)
	ctx := context.Background()

	b := newBeneficiary(t, clk, "A123456789")
	require.NoError(t, repo.Create(ctx, b))

	newNID := "B223456789"
	_, err := repo.Update(ctx, b.ID, persistence.BeneficiaryUpdate{NationalID: &newNID})
	require.NoError(t, err)

	found, err := repo.GetByNationalID(ctx, newNID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, found.ID)

	_, err = repo.GetByNationalID(ctx, "A123456789")
	assert.ErrorIs(t, err, errs.ErrBeneficiaryNotFound)
}

func TestBeneficiaryUpdateBalance(t *testing.T) {
	_, client := newTestClient(t)
	clk := newFixedClock()
	repo := NewBeneficiaryRepository(client, clk, testLogger)
	ctx := context.Background()

	b := newBeneficiary(t, clk, "A123456789")
	require.NoError(t, repo.Create(ctx, b))

	require.NoError(t, repo.UpdateBalance(ctx, b.ID, 750))

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(750), got.Balance)

	err = repo.UpdateBalance(ctx, uuid.New(), 10)
	assert.ErrorIs(t, err, errs.ErrBeneficiaryNotFound)
}

func TestBeneficiaryReissueQRCode(t *testing.T) {
	_, client := newTestClient(t)
	clk := newFixedClock()
	repo := NewBeneficiaryRepository(client, clk, testLogger)
	ctx := context.Background()

	b := newBeneficiary(t, clk, "A123456789")
	require.NoError(t, repo.Create(ctx, b))
	require.NoError(t, repo.UpdateBalance(ctx, b.ID, 300))

	oldCode := b.QRCode
	newCode := "HL_FFFF00001111"
	require.NoError(t, repo.ReissueQRCode(ctx, b.ID, newCode))

	// Old code stops resolving immediately
	_, err := repo.GetByQRCode(ctx, oldCode)
	assert.ErrorIs(t, err, errs.ErrBeneficiaryNotFound)

	// The new code points at the same account; balance and ID are untouched
	got, err := repo.GetByQRCode(ctx, newCode)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
	assert.Equal(t, int64(300), got.Balance)
	assert.Equal(t, newCode, got.QRCode)
}

func TestBeneficiarySoftDelete(t *testing.T) {
	_, client := newTestClient(t)
	clk := newFixedClock()
	repo := NewBeneficiaryRepository(client, clk, testLogger)
	ctx := context.Background()

	b := newBeneficiary(t, clk, "A123456789")
	require.NoError(t, repo.Create(ctx, b))
	require.NoError(t, repo.SoftDelete(ctx, b.ID))

	// The record stays readable for history but can no longer transact
	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInactive, got.Status)
	assert.False(t, got.CanTransact())
}

func TestBeneficiaryList(t *testing.T) {
	_, client := newTestClient(t)
	clk := newFixedClock()
	repo := NewBeneficiaryRepository(client, clk, testLogger)
	ctx := context.Background()

	ids := make([]uuid.UUID, 0, 5)
	for i := 0; i < 5; i++ {
		b := newBeneficiary(t, clk, fmt.Sprintf("A12345678%d", i))
		require.NoError(t, repo.Create(ctx, b))
		ids = append(ids, b.ID)
		clk.advance(time.Second)
	}

	// Newest first
	pageOne, total, err := repo.List(ctx, 1, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, pageOne, 2)
	assert.Equal(t, ids[4], pageOne[0].ID)
	assert.Equal(t, ids[3], pageOne[1].ID)

	pageThree, _, err := repo.List(ctx, 3, 2, nil)
	require.NoError(t, err)
	require.Len(t, pageThree, 1)
	assert.Equal(t, ids[0], pageThree[0].ID)
}

func TestBeneficiaryListStatusFilter(t *testing.T) {
	_, client := newTestClient(t)
	clk := newFixedClock()
	repo := NewBeneficiaryRepository(client, clk, testLogger)
	ctx := context.Background()

	active := newBeneficiary(t, clk, "A123456780")
	require.NoError(t, repo.Create(ctx, active))
	retired := newBeneficiary(t, clk, "A123456781")
	require.NoError(t, repo.Create(ctx, retired))
	require.NoError(t, repo.SoftDelete(ctx, retired.ID))

	status := entity.StatusActive
	items, total, err := repo.List(ctx, 1, 20, &status)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, active.ID, items[0].ID)
}
