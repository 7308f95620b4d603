package core

import "time"

// TimeProvider abstracts time for the domain. Now returns the current time
// in the platform's civil time zone (UTC+8); record timestamps and day-bucket
// keys are derived from it.
type TimeProvider interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}
