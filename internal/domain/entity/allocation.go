package entity

import (
	"time"

	"github.com/google/uuid"

	errs "github.com/streetcare/pointpay/internal/domain/error"
)

// Allocation is the immutable ledger record of an administrative credit
// issuance increasing a beneficiary's balance. Never updated after creation.
//
// Invariant: BalanceAfter == BalanceBefore + Amount.
type Allocation struct {
	ID            uuid.UUID
	BeneficiaryID uuid.UUID
	AdminID       uuid.UUID
	Amount        int64
	BalanceBefore int64
	BalanceAfter  int64
	Notes         string
	CreatedAt     time.Time
}

// NewAllocation builds an allocation record and enforces the balance invariant
func NewAllocation(id, beneficiaryID, adminID uuid.UUID, amount, balanceBefore int64, notes string, now time.Time) (*Allocation, error) {
	if amount <= 0 {
		return nil, errs.ErrInvalidAmount
	}
	return &Allocation{
		ID:            id,
		BeneficiaryID: beneficiaryID,
		AdminID:       adminID,
		Amount:        amount,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceBefore + amount,
		Notes:         notes,
		CreatedAt:     now,
	}, nil
}
