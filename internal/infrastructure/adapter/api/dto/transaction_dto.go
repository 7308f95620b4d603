package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/streetcare/pointpay/internal/domain/entity"
)

// CreateTransactionRequest is the API request for a point-of-sale redemption.
// ProductID is optional; ProductName travels as a snapshot either way.
type CreateTransactionRequest struct {
	BeneficiaryQR string `json:"beneficiaryQr" binding:"required"`
	StoreQR       string `json:"storeQr" binding:"required"`
	ProductID     string `json:"productId"`
	ProductName   string `json:"productName"`
	Amount        int64  `json:"amount" binding:"required,gt=0"`
}

// TransactionResponse is the API shape of a ledger record
type TransactionResponse struct {
	ID            string    `json:"id"`
	BeneficiaryID string    `json:"beneficiaryId"`
	BeneficiaryQR string    `json:"beneficiaryQr"`
	StoreID       string    `json:"storeId"`
	StoreQR       string    `json:"storeQr"`
	ProductID     string    `json:"productId,omitempty"`
	ProductName   string    `json:"productName,omitempty"`
	Amount        int64     `json:"amount"`
	BalanceBefore int64     `json:"balanceBefore"`
	BalanceAfter  int64     `json:"balanceAfter"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewTransactionResponse maps the entity to its API shape
func NewTransactionResponse(t *entity.Transaction) TransactionResponse {
	productID := ""
	if t.ProductID != uuid.Nil {
		productID = t.ProductID.String()
	}
	return TransactionResponse{
		ID:            t.ID.String(),
		BeneficiaryID: t.BeneficiaryID.String(),
		BeneficiaryQR: t.BeneficiaryQR,
		StoreID:       t.StoreID.String(),
		StoreQR:       t.StoreQR,
		ProductID:     productID,
		ProductName:   t.ProductName,
		Amount:        t.Amount,
		BalanceBefore: t.BalanceBefore,
		BalanceAfter:  t.BalanceAfter,
		Status:        string(t.Status),
		CreatedAt:     t.CreatedAt,
	}
}

// NewTransactionResponses maps a slice of entities
func NewTransactionResponses(items []*entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(items))
	for _, t := range items {
		out = append(out, NewTransactionResponse(t))
	}
	return out
}
