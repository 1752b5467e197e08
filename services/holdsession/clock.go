package holdsession

import "time"

// Clock abstracts the time source so the state machine is testable without
// wall-clock waits. Expiry is always judged against the injected clock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
