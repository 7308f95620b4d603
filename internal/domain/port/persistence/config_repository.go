package persistence

import (
	"context"

	"github.com/streetcare/pointpay/internal/domain/entity"
)

// ConfigRepository defines access to system configuration entries
type ConfigRepository interface {
	// Get retrieves a config entry by key
	//
	// Possible errors:
	// - ErrConfigNotFound: if the key has never been set
	// - ErrStoreUnavailable: if the key-value store fails
	Get(ctx context.Context, key string) (*entity.SystemConfig, error)

	// GetInt returns the key's value parsed as an integer, or fallback when
	// the key is unset or not numeric. Infrastructure faults still propagate.
	GetInt(ctx context.Context, key string, fallback int64) (int64, error)

	// Set creates or replaces a config entry
	Set(ctx context.Context, cfg *entity.SystemConfig) error

	// ListAll returns every config entry
	ListAll(ctx context.Context) ([]*entity.SystemConfig, error)
}
