package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/streetcare/pointpay/internal/domain/error"
)

func TestNewBeneficiary(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.FixedZone("UTC+8", 8*3600))
	id := uuid.New()

	b, err := NewBeneficiary(id, "HL_A1B2C3D4E5F6", "A123456789", "Chen Wei", now)
	require.NoError(t, err)

	assert.Equal(t, id, b.ID)
	assert.Equal(t, "HL_A1B2C3D4E5F6", b.QRCode)
	assert.Equal(t, int64(0), b.Balance)
	assert.Equal(t, StatusActive, b.Status)
	assert.True(t, b.CanTransact())
	assert.Equal(t, now, b.CreatedAt)
	assert.Equal(t, now, b.UpdatedAt)
}

func TestNewBeneficiaryValidation(t *testing.T) {
	now := time.Now()

	_, err := NewBeneficiary(uuid.New(), "HL_X", "A123456789", "", now)
	assert.ErrorIs(t, err, errs.ErrInvalidName)

	_, err = NewBeneficiary(uuid.New(), "HL_X", "12345", "Chen Wei", now)
	assert.ErrorIs(t, err, errs.ErrInvalidNationalID)
}

func TestValidateNationalID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid male", "A123456789", false},
		{"valid female", "B223456789", false},
		{"lowercase letter", "a123456789", true},
		{"bad gender digit", "A323456789", true},
		{"too short", "A12345678", true},
		{"too long", "A1234567890", true},
		{"empty", "", true},
		{"no letter", "1123456789", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateNationalID(tc.id)
			if tc.wantErr {
				assert.ErrorIs(t, err, errs.ErrInvalidNationalID)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateMobile(t *testing.T) {
	assert.NoError(t, ValidateMobile(""))
	assert.NoError(t, ValidateMobile("0912345678"))
	assert.ErrorIs(t, ValidateMobile("0812345678"), errs.ErrInvalidPhone)
	assert.ErrorIs(t, ValidateMobile("091234567"), errs.ErrInvalidPhone)
	assert.ErrorIs(t, ValidateMobile("09123456789"), errs.ErrInvalidPhone)
}

func TestBeneficiaryCanTransact(t *testing.T) {
	b := &Beneficiary{Status: StatusActive}
	assert.True(t, b.CanTransact())

	b.Status = StatusSuspended
	assert.False(t, b.CanTransact())

	b.Status = StatusInactive
	assert.False(t, b.CanTransact())
}
