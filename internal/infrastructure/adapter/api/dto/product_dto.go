package dto

import (
	"time"

	"github.com/streetcare/pointpay/internal/domain/entity"
)

// CreateProductRequest is the API request for listing a product under a store
type CreateProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Points      int64  `json:"points" binding:"required,gt=0"`
	Category    string `json:"category" binding:"required"`
	Description string `json:"description"`
}

// UpdateProductRequest carries a partial update; absent fields are untouched
type UpdateProductRequest struct {
	Name        *string `json:"name"`
	Points      *int64  `json:"points"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// ProductResponse is the API shape of a product record
type ProductResponse struct {
	ID          string    `json:"id"`
	StoreID     string    `json:"storeId"`
	Name        string    `json:"name"`
	Points      int64     `json:"points"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewProductResponse maps the entity to its API shape
func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID.String(),
		StoreID:     p.StoreID.String(),
		Name:        p.Name,
		Points:      p.Points,
		Category:    string(p.Category),
		Description: p.Description,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// NewProductResponses maps a slice of entities
func NewProductResponses(items []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(items))
	for _, p := range items {
		out = append(out, NewProductResponse(p))
	}
	return out
}
