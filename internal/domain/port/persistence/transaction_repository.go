package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/streetcare/pointpay/internal/domain/entity"
)

// TimeRange bounds a history query. Zero-valued ends are unbounded.
type TimeRange struct {
	From time.Time
	To   time.Time
}

// IsZero reports whether no bound is set
func (r TimeRange) IsZero() bool {
	return r.From.IsZero() && r.To.IsZero()
}

// TransactionRepository defines access to the immutable transaction ledger
// and its time-series history indexes
type TransactionRepository interface {
	// Create writes the ledger record plus every history index: the global
	// ordered set, the per-beneficiary ordered set, the per-store ordered
	// set and the day bucket. Records are never updated afterwards.
	//
	// Possible errors:
	// - ErrStoreUnavailable: if the key-value store fails
	Create(ctx context.Context, t *entity.Transaction) error

	// GetByID retrieves a ledger record by ID
	//
	// Possible errors:
	// - ErrTransactionNotFound: if no transaction has this ID
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// ListAll returns a page of transactions sorted newest-first, optionally
	// bounded by creation time. Full-history scans are for administrative
	// reporting only.
	ListAll(ctx context.Context, page, limit int, within TimeRange) ([]*entity.Transaction, int64, error)

	// ListByBeneficiary pages one beneficiary's history via its ordered set
	ListByBeneficiary(ctx context.Context, beneficiaryID uuid.UUID, page, limit int, within TimeRange) ([]*entity.Transaction, int64, error)

	// ListByStore pages one store's history via its ordered set
	ListByStore(ctx context.Context, storeID uuid.UUID, page, limit int, within TimeRange) ([]*entity.Transaction, int64, error)

	// ListDay returns every transaction in a single day bucket (key YYYY-MM-DD
	// in the platform zone)
	ListDay(ctx context.Context, day string) ([]*entity.Transaction, error)
}
