package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/streetcare/pointpay/internal/domain/entity"
)

// CreateUserRequest is the API request for creating a platform account
type CreateUserRequest struct {
	Username      string `json:"username" binding:"required,min=3"`
	Password      string `json:"password" binding:"required,min=6"`
	Name          string `json:"name" binding:"required"`
	Role          string `json:"role" binding:"required"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	StoreID       string `json:"storeId"`
	AssociationID string `json:"associationId"`
}

// UpdateUserRequest carries a partial update; absent fields are untouched
type UpdateUserRequest struct {
	Name          *string `json:"name"`
	Password      *string `json:"password"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Status        *string `json:"status"`
	StoreID       *string `json:"storeId"`
	AssociationID *string `json:"associationId"`
}

// UserResponse is the API shape of a user record. The password hash never
// leaves the server.
type UserResponse struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Status        string    `json:"status"`
	StoreID       string    `json:"storeId,omitempty"`
	AssociationID string    `json:"associationId,omitempty"`
	LastLoginAt   time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewUserResponse maps the entity to its API shape
func NewUserResponse(u *entity.User) UserResponse {
	optional := func(id uuid.UUID) string {
		if id == uuid.Nil {
			return ""
		}
		return id.String()
	}
	return UserResponse{
		ID:            u.ID.String(),
		Username:      u.Username,
		Name:          u.Name,
		Role:          string(u.Role),
		Email:         u.Email,
		Phone:         u.Phone,
		Status:        string(u.Status),
		StoreID:       optional(u.StoreID),
		AssociationID: optional(u.AssociationID),
		LastLoginAt:   u.LastLoginAt,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

// NewUserResponses maps a slice of entities
func NewUserResponses(items []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(items))
	for _, u := range items {
		out = append(out, NewUserResponse(u))
	}
	return out
}
