package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/streetcare/pointpay/internal/domain/entity"
)

// CreateAllocationRequest is the API request for an administrative credit
// issuance. The admin identity comes from the authenticated token, not the
// body.
type CreateAllocationRequest struct {
	BeneficiaryID string `json:"beneficiaryId" binding:"required"`
	Amount        int64  `json:"amount" binding:"required,gt=0"`
	Notes         string `json:"notes"`
}

// AllocationResponse is the API shape of an allocation record
type AllocationResponse struct {
	ID            string    `json:"id"`
	BeneficiaryID string    `json:"beneficiaryId"`
	AdminID       string    `json:"adminId,omitempty"`
	Amount        int64     `json:"amount"`
	BalanceBefore int64     `json:"balanceBefore"`
	BalanceAfter  int64     `json:"balanceAfter"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewAllocationResponse maps the entity to its API shape
func NewAllocationResponse(a *entity.Allocation) AllocationResponse {
	admin := ""
	if a.AdminID != uuid.Nil {
		admin = a.AdminID.String()
	}
	return AllocationResponse{
		ID:            a.ID.String(),
		BeneficiaryID: a.BeneficiaryID.String(),
		AdminID:       admin,
		Amount:        a.Amount,
		BalanceBefore: a.BalanceBefore,
		BalanceAfter:  a.BalanceAfter,
		Notes:         a.Notes,
		CreatedAt:     a.CreatedAt,
	}
}

// NewAllocationResponses maps a slice of entities
func NewAllocationResponses(items []*entity.Allocation) []AllocationResponse {
	out := make([]AllocationResponse, 0, len(items))
	for _, a := range items {
		out = append(out, NewAllocationResponse(a))
	}
	return out
}
