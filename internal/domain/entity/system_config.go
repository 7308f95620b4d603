package entity

import (
	"time"

	"github.com/google/uuid"
)

// Configuration keys consumed by the allocation engine
const (
	ConfigMaxAllocationLimit = "max_allocation_limit"
	ConfigMaxBalanceLimit    = "max_balance_limit"
)

// Defaults applied when a limit key is unset
const (
	DefaultMaxAllocationLimit = 1000
	DefaultMaxBalanceLimit    = 10000
)

// SystemConfig is a single key/value operational setting with audit fields
type SystemConfig struct {
	Key         string
	Value       string
	Description string
	UpdatedBy   uuid.UUID // zero value when seeded by the system
	UpdatedAt   time.Time
}
