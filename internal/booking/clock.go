package booking

import "time"

// Clock supplies the store's notion of "now" for past-date validation.
// Tests swap in a fixed clock so date checks are deterministic.
type Clock interface {
    Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time { return time.Now() }
