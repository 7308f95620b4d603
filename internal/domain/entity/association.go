package entity

import (
	"time"

	"github.com/google/uuid"

	errs "github.com/streetcare/pointpay/internal/domain/error"
)

// Association groups partner stores and the users who manage them
type Association struct {
	ID           uuid.UUID
	Name         string
	District     string
	ContactName  string
	ContactPhone string
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewAssociation creates an active association
func NewAssociation(id uuid.UUID, name string, now time.Time) (*Association, error) {
	if name == "" {
		return nil, errs.ErrInvalidName
	}
	return &Association{
		ID:        id,
		Name:      name,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
