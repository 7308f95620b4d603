package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/streetcare/pointpay/internal/domain/entity"
)

// AllocationRepository defines access to the immutable allocation ledger
// and its time-series history indexes
type AllocationRepository interface {
	// Create writes the ledger record plus the global ordered set, the
	// per-beneficiary ordered set and the day bucket
	//
	// Possible errors:
	// - ErrStoreUnavailable: if the key-value store fails
	Create(ctx context.Context, a *entity.Allocation) error

	// GetByID retrieves a ledger record by ID
	//
	// Possible errors:
	// - ErrAllocationNotFound: if no allocation has this ID
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Allocation, error)

	// ListAll returns a page of allocations sorted newest-first, optionally
	// bounded by creation time
	ListAll(ctx context.Context, page, limit int, within TimeRange) ([]*entity.Allocation, int64, error)

	// ListByBeneficiary pages one beneficiary's allocations via its ordered set
	ListByBeneficiary(ctx context.Context, beneficiaryID uuid.UUID, page, limit int, within TimeRange) ([]*entity.Allocation, int64, error)
}
