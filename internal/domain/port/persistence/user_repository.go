package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/streetcare/pointpay/internal/domain/entity"
)

// UserUpdate carries a partial update; nil fields are left untouched
type UserUpdate struct {
	Name          *string
	Email         *string
	Phone         *string
	PasswordHash  *string
	Status        *entity.Status
	StoreID       *uuid.UUID
	AssociationID *uuid.UUID
}

// UserRepository defines access to platform user accounts
type UserRepository interface {
	// GetByID retrieves a user by ID
	//
	// Possible errors:
	// - ErrUserNotFound: if no user has this ID
	// - ErrStoreUnavailable: if the key-value store fails
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// GetByUsername resolves a username to its user via the username index
	GetByUsername(ctx context.Context, username string) (*entity.User, error)

	// Create writes the primary record, the username index, the role
	// membership set entry and the association membership entry in one call
	//
	// Possible errors:
	// - ErrDuplicateUsername: if the username index already exists
	Create(ctx context.Context, u *entity.User) error

	// Update merges only the supplied fields and bumps UpdatedAt. Role
	// changes are not supported; recreate the account instead.
	Update(ctx context.Context, id uuid.UUID, update UserUpdate) (*entity.User, error)

	// Delete removes the user permanently: the primary record, the username
	// index, the role membership entry and any association membership entry.
	// Unlike the other entities user deletion is hard.
	Delete(ctx context.Context, id uuid.UUID) error

	// TouchLastLogin records a successful login timestamp
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error

	// List returns a page of users sorted newest-created-first with the total count
	List(ctx context.Context, page, limit int) ([]*entity.User, int64, error)

	// ListByRole returns all users holding a role via the role membership set
	ListByRole(ctx context.Context, role entity.Role) ([]*entity.User, error)
}
