package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/streetcare/pointpay/internal/domain/entity"
)

// ProductUpdate carries a partial update; nil fields are left untouched
type ProductUpdate struct {
	Name        *string
	Points      *int64
	Category    *entity.ProductCategory
	Description *string
	Status      *entity.Status
}

// ProductRepository defines access to store products
type ProductRepository interface {
	// GetByID retrieves a product by ID
	//
	// Possible errors:
	// - ErrProductNotFound: if no product has this ID
	// - ErrStoreUnavailable: if the key-value store fails
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// Create writes the primary record and the owning store's membership set entry
	Create(ctx context.Context, p *entity.Product) error

	// Update merges only the supplied fields and bumps UpdatedAt
	Update(ctx context.Context, id uuid.UUID, update ProductUpdate) (*entity.Product, error)

	// SoftDelete sets the status to inactive
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// ListByStore returns a page of the store's products sorted
	// newest-created-first with the total count
	ListByStore(ctx context.Context, storeID uuid.UUID, page, limit int) ([]*entity.Product, int64, error)
}
