package entity

import (
	"time"

	"github.com/google/uuid"

	errs "github.com/streetcare/pointpay/internal/domain/error"
)

// User is a platform account: administrators, NGO staff, store operators and
// association members. The PasswordHash field always holds a bcrypt hash,
// never a plaintext password.
type User struct {
	ID            uuid.UUID
	Username      string
	PasswordHash  string
	Name          string
	Role          Role
	Email         string
	Phone         string
	Status        Status
	StoreID       uuid.UUID // set for store operators
	BeneficiaryID uuid.UUID // set for beneficiary-linked accounts
	AssociationID uuid.UUID // set for association members
	LastLoginAt   time.Time // zero until the first login
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewUser creates an active user account. The password must already be hashed.
func NewUser(id uuid.UUID, username, passwordHash, name string, role Role, now time.Time) (*User, error) {
	if len(username) < 3 {
		return nil, errs.ErrInvalidUsername
	}
	if name == "" {
		return nil, errs.ErrInvalidName
	}
	if passwordHash == "" {
		return nil, errs.ErrInvalidPassword
	}
	if !role.IsValid() {
		return nil, errs.ErrInvalidRole
	}
	return &User{
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
		Name:         name,
		Role:         role,
		Status:       StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// CanLogin reports whether the account is allowed to authenticate
func (u *User) CanLogin() bool {
	return u.Status == StatusActive
}
