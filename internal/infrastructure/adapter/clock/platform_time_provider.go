package clock

import (
	"time"

	"github.com/streetcare/pointpay/internal/domain/port/core"
)

// platformZone is the civil time zone all record timestamps and day buckets
// are expressed in, regardless of where the process runs
var platformZone = time.FixedZone("UTC+8", 8*60*60)

// PlatformZone returns the platform's civil time zone
func PlatformZone() *time.Location {
	return platformZone
}

// PlatformTimeProvider implements the TimeProvider interface anchored to the
// platform's civil time zone
type PlatformTimeProvider struct{}

// NewPlatformTimeProvider creates a new platform time provider
func NewPlatformTimeProvider() core.TimeProvider {
	return &PlatformTimeProvider{}
}

// Now returns the current time in the platform zone
func (p *PlatformTimeProvider) Now() time.Time {
	return time.Now().In(platformZone)
}

// Since returns the time elapsed since t
func (p *PlatformTimeProvider) Since(t time.Time) time.Duration {
	return time.Since(t)
}
