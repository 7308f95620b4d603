package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/streetcare/pointpay/internal/domain/entity"
	errs "github.com/streetcare/pointpay/internal/domain/error"
	coreport "github.com/streetcare/pointpay/internal/domain/port/core"
	"github.com/streetcare/pointpay/internal/domain/port/persistence"
)

// Seeder writes the records the platform needs before the first request: the
// bootstrap admin account and the allocation limit settings. Every step is
// idempotent; existing records are never overwritten.
type Seeder struct {
	users        persistence.UserRepository
	config       persistence.ConfigRepository
	passwords    coreport.PasswordHasher
	ids          coreport.IDGenerator
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// New creates a seeder
func New(
	users persistence.UserRepository,
	config persistence.ConfigRepository,
	passwords coreport.PasswordHasher,
	ids coreport.IDGenerator,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Seeder {
	return &Seeder{
		users:        users,
		config:       config,
		passwords:    passwords,
		ids:          ids,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Run applies all seed steps
func (s *Seeder) Run(ctx context.Context, adminUsername, adminPassword string) error {
	if err := s.ensureAdminUser(ctx, adminUsername, adminPassword); err != nil {
		return fmt.Errorf("seeding admin user: %w", err)
	}
	if err := s.ensureLimitDefaults(ctx); err != nil {
		return fmt.Errorf("seeding limit defaults: %w", err)
	}
	return nil
}

// ensureAdminUser creates the bootstrap system administrator when no account
// with the configured username exists yet
func (s *Seeder) ensureAdminUser(ctx context.Context, username, password string) error {
	_, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errs.IsNotFoundError(err) {
		return err
	}

	if password == "" {
		s.logger.Warn("Skipping admin seed: no seed password configured", map[string]any{
			"username": username,
		})
		return nil
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return err
	}

	admin, err := entity.NewUser(
		s.ids.NewID(),
		username,
		hash,
		"System Administrator",
		entity.RoleSystemAdmin,
		s.timeProvider.Now(),
	)
	if err != nil {
		return err
	}

	if err := s.users.Create(ctx, admin); err != nil {
		// Another instance won the race; the account exists either way
		if errors.Is(err, errs.ErrDuplicateUsername) {
			return nil
		}
		return err
	}

	s.logger.Info("Created default admin user", map[string]any{
		"user_id":  admin.ID.String(),
		"username": admin.Username,
	})
	return nil
}

// ensureLimitDefaults writes the allocation limit settings unless an operator
// has already set them
func (s *Seeder) ensureLimitDefaults(ctx context.Context) error {
	defaults := []struct {
		key         string
		value       int64
		description string
	}{
		{entity.ConfigMaxAllocationLimit, entity.DefaultMaxAllocationLimit, "Maximum points per single allocation"},
		{entity.ConfigMaxBalanceLimit, entity.DefaultMaxBalanceLimit, "Maximum balance a beneficiary may hold"},
	}

	for _, d := range defaults {
		_, err := s.config.Get(ctx, d.key)
		if err == nil {
			continue
		}
		if !errors.Is(err, errs.ErrConfigNotFound) {
			return err
		}

		cfg := &entity.SystemConfig{
			Key:         d.key,
			Value:       fmt.Sprintf("%d", d.value),
			Description: d.description,
			UpdatedAt:   s.timeProvider.Now(),
		}
		if err := s.config.Set(ctx, cfg); err != nil {
			return err
		}
		s.logger.Info("Seeded config default", map[string]any{
			"key":   d.key,
			"value": d.value,
		})
	}
	return nil
}
