package persist

import "time"

// FailurePolicy decides whether a failed save is attempted again.
// attempt counts from 1 for the first failure.
type FailurePolicy interface {
	Retry(kind Kind, attempt int, err error) (delay time.Duration, ok bool)
}

// NoRetry drops a save after its first failure.
type NoRetry struct{}

func (NoRetry) Retry(Kind, int, error) (time.Duration, bool) { return 0, false }

// FixedRetry re-attempts a failed save up to Attempts more times, Delay
// apart.
type FixedRetry struct {
	Attempts int
	Delay    time.Duration
}

func (p FixedRetry) Retry(_ Kind, attempt int, _ error) (time.Duration, bool) {
	if attempt > p.Attempts {
		return 0, false
	}
	return p.Delay, true
}

// PolicyFor builds the policy for a retry count from configuration.
func PolicyFor(attempts int, delay time.Duration) FailurePolicy {
	if attempts <= 0 {
		return NoRetry{}
	}
	return FixedRetry{Attempts: attempts, Delay: delay}
}
