package auth

import (
	"context"
	"time"

	"github.com/streetcare/pointpay/internal/domain/entity"
	errs "github.com/streetcare/pointpay/internal/domain/error"
	coreport "github.com/streetcare/pointpay/internal/domain/port/core"
	"github.com/streetcare/pointpay/internal/domain/port/persistence"
)

// LoginResult carries the issued token and the authenticated account
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

// Service authenticates platform users and issues access tokens
type Service struct {
	users        persistence.UserRepository
	tokens       coreport.TokenManager
	passwords    coreport.PasswordHasher
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates an authentication service
func NewService(
	users persistence.UserRepository,
	tokens coreport.TokenManager,
	passwords coreport.PasswordHasher,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		users:        users,
		tokens:       tokens,
		passwords:    passwords,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Login verifies a username/password pair and returns a signed access token.
// A missing user and a wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errs.IsNotFoundError(err) {
			return nil, errs.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.CanLogin() {
		s.logger.Warn("Login attempt for non-active account", map[string]any{
			"user_id": user.ID.String(),
			"status":  string(user.Status),
		})
		return nil, errs.ErrInvalidCredentials
	}

	if !s.passwords.Compare(user.PasswordHash, password) {
		s.logger.Warn("Login failed: password mismatch", map[string]any{
			"username": username,
		})
		return nil, errs.ErrInvalidCredentials
	}

	now := s.timeProvider.Now()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		// Login still succeeds; the timestamp is advisory
		s.logger.Warn("Failed to record last login", map[string]any{
			"user_id": user.ID.String(),
			"error":   err.Error(),
		})
	}
	user.LastLoginAt = now

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.Error("Failed to issue access token", map[string]any{
			"user_id": user.ID.String(),
			"error":   err.Error(),
		})
		return nil, errs.ErrInternalServer
	}

	s.logger.Info("User logged in", map[string]any{
		"user_id":  user.ID.String(),
		"username": user.Username,
		"role":     string(user.Role),
	})
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}
