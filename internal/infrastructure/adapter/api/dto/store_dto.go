package dto

import (
	"time"

	"github.com/streetcare/pointpay/internal/domain/entity"
)

// CreateStoreRequest is the API request for registering a partner store
type CreateStoreRequest struct {
	Name          string `json:"name" binding:"required"`
	Category      string `json:"category"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	AssociationID string `json:"associationId"`
}

// UpdateStoreRequest carries a partial update; absent fields are untouched
type UpdateStoreRequest struct {
	Name          *string `json:"name"`
	Category      *string `json:"category"`
	Address       *string `json:"address"`
	Phone         *string `json:"phone"`
	AssociationID *string `json:"associationId"`
	Status        *string `json:"status"`
}

// StoreResponse is the API shape of a store record
type StoreResponse struct {
	ID            string    `json:"id"`
	QRCode        string    `json:"qrCode"`
	Name          string    `json:"name"`
	Category      string    `json:"category,omitempty"`
	Address       string    `json:"address,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	AssociationID string    `json:"associationId,omitempty"`
	TotalIncome   int64     `json:"totalIncome"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewStoreResponse maps the entity to its API shape
func NewStoreResponse(s *entity.Store) StoreResponse {
	assoc := ""
	if s.HasAssociation() {
		assoc = s.AssociationID.String()
	}
	return StoreResponse{
		ID:            s.ID.String(),
		QRCode:        s.QRCode,
		Name:          s.Name,
		Category:      s.Category,
		Address:       s.Address,
		Phone:         s.Phone,
		AssociationID: assoc,
		TotalIncome:   s.TotalIncome,
		Status:        string(s.Status),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// NewStoreResponses maps a slice of entities
func NewStoreResponses(items []*entity.Store) []StoreResponse {
	out := make([]StoreResponse, 0, len(items))
	for _, s := range items {
		out = append(out, NewStoreResponse(s))
	}
	return out
}

// ValidateStoreResponse is returned by the QR validation endpoint
type ValidateStoreResponse struct {
	Valid bool          `json:"valid"`
	Store StoreResponse `json:"store"`
}
