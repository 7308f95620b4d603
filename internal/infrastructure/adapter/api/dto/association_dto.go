package dto

import (
	"time"

	"github.com/streetcare/pointpay/internal/domain/entity"
)

// CreateAssociationRequest is the API request for registering an association
type CreateAssociationRequest struct {
	Name         string `json:"name" binding:"required"`
	District     string `json:"district"`
	ContactName  string `json:"contactName"`
	ContactPhone string `json:"contactPhone"`
}

// UpdateAssociationRequest carries a partial update; absent fields are untouched
type UpdateAssociationRequest struct {
	Name         *string `json:"name"`
	District     *string `json:"district"`
	ContactName  *string `json:"contactName"`
	ContactPhone *string `json:"contactPhone"`
	Status       *string `json:"status"`
}

// AssociationResponse is the API shape of an association record
type AssociationResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	District     string    `json:"district,omitempty"`
	ContactName  string    `json:"contactName,omitempty"`
	ContactPhone string    `json:"contactPhone,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewAssociationResponse maps the entity to its API shape
func NewAssociationResponse(a *entity.Association) AssociationResponse {
	return AssociationResponse{
		ID:           a.ID.String(),
		Name:         a.Name,
		District:     a.District,
		ContactName:  a.ContactName,
		ContactPhone: a.ContactPhone,
		Status:       string(a.Status),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// NewAssociationResponses maps a slice of entities
func NewAssociationResponses(items []*entity.Association) []AssociationResponse {
	out := make([]AssociationResponse, 0, len(items))
	for _, a := range items {
		out = append(out, NewAssociationResponse(a))
	}
	return out
}
