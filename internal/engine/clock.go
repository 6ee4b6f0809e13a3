package engine

import "time"

// Clock supplies the evaluation time for every time-sensitive
// operation: age bounds, the expiry sweep and the active-view
// filters. Injecting it keeps those operations deterministic under
// test; conflict detection itself is time-independent.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() time.Time

// Now returns f().
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the ambient wall clock in UTC.
func SystemClock() Clock {
	return ClockFunc(func() time.Time { return time.Now().UTC() })
}
