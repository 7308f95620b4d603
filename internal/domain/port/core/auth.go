package core

import (
	"time"

	"github.com/google/uuid"

	"github.com/streetcare/pointpay/internal/domain/entity"
)

// AuthClaims is the identity carried by a verified access token
type AuthClaims struct {
	UserID   uuid.UUID
	Username string
	Role     entity.Role
}

// TokenManager mints and verifies access tokens
type TokenManager interface {
	// Issue signs a token for the user and returns it with its expiry
	Issue(user *entity.User) (token string, expiresAt time.Time, err error)

	// Verify parses a token string and returns its claims
	//
	// Possible errors:
	// - ErrInvalidCredentials: if the token is malformed, forged or expired
	Verify(token string) (*AuthClaims, error)
}

// PasswordHasher hashes and verifies user passwords
type PasswordHasher interface {
	// Hash derives a storable hash from a plaintext password
	Hash(password string) (string, error)
	// Compare reports whether the password matches the stored hash
	Compare(hash, password string) bool
}
