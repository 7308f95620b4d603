package entity

import (
	"time"

	"github.com/google/uuid"

	errs "github.com/streetcare/pointpay/internal/domain/error"
)

// Product is an item or service a store offers, priced in points
type Product struct {
	ID          uuid.UUID
	StoreID     uuid.UUID
	Name        string
	Points      int64
	Category    ProductCategory
	Description string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProduct creates an active product after validating name, price and category
func NewProduct(id, storeID uuid.UUID, name string, points int64, category ProductCategory, now time.Time) (*Product, error) {
	if name == "" {
		return nil, errs.ErrInvalidName
	}
	if points <= 0 {
		return nil, errs.ErrInvalidAmount
	}
	if !category.IsValid() {
		return nil, errs.ErrInvalidCategory
	}
	return &Product{
		ID:        id,
		StoreID:   storeID,
		Name:      name,
		Points:    points,
		Category:  category,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
