// Package clock provides the time source stamped onto records.
package clock

import "time"

//go:generate mockgen -destination=mocks/mock_time_provider.go -package=mocks github.com/KirkDiggler/rpg-keeper/internal/clock TimeProvider

// TimeProvider returns the current time
type TimeProvider interface {
	Now() time.Time
}

type realTimeProvider struct{}

// New returns a TimeProvider backed by the system clock, truncated to
// millisecond precision so values survive an ISO-8601 round trip unchanged.
func New() TimeProvider {
	return realTimeProvider{}
}

func (realTimeProvider) Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// Fixed is a TimeProvider that always reports the same instant
type Fixed time.Time

// Now implements TimeProvider
func (f Fixed) Now() time.Time {
	return time.Time(f)
}
