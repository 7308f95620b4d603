package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/streetcare/pointpay/internal/domain/entity"
)

// AssociationUpdate carries a partial update; nil fields are left untouched
type AssociationUpdate struct {
	Name         *string
	District     *string
	ContactName  *string
	ContactPhone *string
	Status       *entity.Status
}

// AssociationRepository defines access to store associations
type AssociationRepository interface {
	// GetByID retrieves an association by ID
	//
	// Possible errors:
	// - ErrAssociationNotFound: if no association has this ID
	// - ErrStoreUnavailable: if the key-value store fails
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Association, error)

	// Create writes the primary record and the listing index
	Create(ctx context.Context, a *entity.Association) error

	// Update merges only the supplied fields and bumps UpdatedAt
	Update(ctx context.Context, id uuid.UUID, update AssociationUpdate) (*entity.Association, error)

	// SoftDelete sets the status to inactive
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// List returns a page of associations sorted newest-created-first with the total count
	List(ctx context.Context, page, limit int) ([]*entity.Association, int64, error)
}
