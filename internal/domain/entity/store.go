package entity

import (
	"time"

	"github.com/google/uuid"

	errs "github.com/streetcare/pointpay/internal/domain/error"
)

// Store is a partner shop that redeems points for goods or services.
// TotalIncome only ever grows and is incremented atomically by the
// transaction engine.
type Store struct {
	ID            uuid.UUID
	QRCode        string
	Name          string
	Category      string
	Address       string
	Phone         string
	AssociationID uuid.UUID // zero value when the store has no association
	TotalIncome   int64
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewStore creates an active store with zero cumulative income
func NewStore(id uuid.UUID, qrCode, name string, now time.Time) (*Store, error) {
	if name == "" {
		return nil, errs.ErrInvalidName
	}
	return &Store{
		ID:        id,
		QRCode:    qrCode,
		Name:      name,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// CanTransact reports whether the store may accept point redemptions
func (s *Store) CanTransact() bool {
	return s.Status == StatusActive
}

// HasAssociation reports whether the store belongs to an association
func (s *Store) HasAssociation() bool {
	return s.AssociationID != uuid.Nil
}
