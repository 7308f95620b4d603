package entity

import (
	"time"

	"github.com/google/uuid"

	errs "github.com/streetcare/pointpay/internal/domain/error"
)

// Transaction is the immutable ledger record of a point-of-sale redemption:
// a beneficiary's balance goes down, a store's income goes up. Records are
// never updated after creation.
//
// Invariant for completed records: BalanceAfter == BalanceBefore - Amount
// and BalanceAfter >= 0.
type Transaction struct {
	ID            uuid.UUID
	BeneficiaryID uuid.UUID
	BeneficiaryQR string // QR code snapshot at transaction time
	StoreID       uuid.UUID
	StoreQR       string // QR code snapshot at transaction time
	ProductID     uuid.UUID // zero value when no product was referenced
	ProductName   string
	Amount        int64
	BalanceBefore int64
	BalanceAfter  int64
	Status        TransactionStatus
	CreatedAt     time.Time
}

// NewCompletedTransaction builds a completed ledger record and enforces the
// balance invariant before anything is persisted
func NewCompletedTransaction(
	id uuid.UUID,
	beneficiary *Beneficiary,
	store *Store,
	productID uuid.UUID,
	productName string,
	amount, balanceBefore int64,
	now time.Time,
) (*Transaction, error) {
	if amount <= 0 {
		return nil, errs.ErrInvalidAmount
	}
	balanceAfter := balanceBefore - amount
	if balanceAfter < 0 {
		return nil, errs.NewInsufficientBalanceError(balanceBefore, amount)
	}
	return &Transaction{
		ID:            id,
		BeneficiaryID: beneficiary.ID,
		BeneficiaryQR: beneficiary.QRCode,
		StoreID:       store.ID,
		StoreQR:       store.QRCode,
		ProductID:     productID,
		ProductName:   productName,
		Amount:        amount,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
		Status:        TxnCompleted,
		CreatedAt:     now,
	}, nil
}
