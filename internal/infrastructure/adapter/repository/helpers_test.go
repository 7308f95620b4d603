package repository

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/streetcare/pointpay/internal/infrastructure/adapter/clock"
	"github.com/streetcare/pointpay/internal/infrastructure/adapter/logger"
)

// newTestClient starts an in-process store and returns a client bound to it.
// Both are cleaned up with the test.
func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

// fixedClock is a TimeProvider pinned to a settable instant
type fixedClock struct {
	now time.Time
}

func newFixedClock() *fixedClock {
	return &fixedClock{
		now: time.Date(2025, 3, 10, 12, 0, 0, 0, clock.PlatformZone()),
	}
}

func (c *fixedClock) Now() time.Time                  { return c.now }
func (c *fixedClock) Since(t time.Time) time.Duration { return c.now.Sub(t) }

func (c *fixedClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

var testLogger = logger.NewNoopLogger()
