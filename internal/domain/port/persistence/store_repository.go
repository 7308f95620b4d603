package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/streetcare/pointpay/internal/domain/entity"
)

// StoreUpdate carries a partial update; nil fields are left untouched
type StoreUpdate struct {
	Name          *string
	Category      *string
	Address       *string
	Phone         *string
	AssociationID *uuid.UUID
	Status        *entity.Status
}

// StoreRepository defines access to partner store records
type StoreRepository interface {
	// GetByID retrieves a store by ID
	//
	// Possible errors:
	// - ErrStoreNotFound: if no store has this ID
	// - ErrStoreUnavailable: if the key-value store fails
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Store, error)

	// GetByQRCode resolves a scanned QR code to the store it indexes
	GetByQRCode(ctx context.Context, qrCode string) (*entity.Store, error)

	// Create writes the primary record, the QR index, the listing index and
	// the association membership set entry in the same call
	Create(ctx context.Context, s *entity.Store) error

	// Update merges only the supplied fields and bumps UpdatedAt. Moving the
	// store between associations updates both membership sets.
	Update(ctx context.Context, id uuid.UUID, update StoreUpdate) (*entity.Store, error)

	// IncrementIncome atomically adds amount to the store's cumulative income
	// and returns the new total. Safe under concurrent transactions without
	// any separate lock.
	IncrementIncome(ctx context.Context, id uuid.UUID, amount int64) (int64, error)

	// SoftDelete sets the status to inactive
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// List returns a page of stores sorted newest-created-first with the total count
	List(ctx context.Context, page, limit int, status *entity.Status) ([]*entity.Store, int64, error)

	// ListByAssociation returns the stores belonging to an association
	ListByAssociation(ctx context.Context, associationID uuid.UUID) ([]*entity.Store, error)
}
