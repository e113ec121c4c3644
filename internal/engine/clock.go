package engine

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// Every computation in this package takes "now" explicitly; Clock is only
// consulted at the edges (session recomputes, feed stamping).
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}
