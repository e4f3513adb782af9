package treasury

import (
	"sync"
	"time"
)

// Limiter spaces out submitted payouts so concurrent settlements never
// race the treasury wallet's UTxO selection. Reserve either claims the
// next payout slot or reports the wait until a slot opens.
type Limiter struct {
	// Clock is swappable in tests. Defaults to time.Now.
	Clock func() time.Time

	interval time.Duration

	mutex   sync.Mutex
	lastRun time.Time
}

func NewLimiter(interval time.Duration) *Limiter {
	return &Limiter{
		Clock:    time.Now,
		interval: interval,
	}
}

// Reserve atomically claims the next payout slot. On success the slot
// is consumed immediately, before any transfer is attempted, so two
// settlements can never hold the same slot. When denied, it returns
// the remaining wait and the caller must retry later.
func (l *Limiter) Reserve() (time.Duration, bool) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	now := l.Clock()
	if elapsed := now.Sub(l.lastRun); elapsed < l.interval {
		return l.interval - elapsed, false
	}

	l.lastRun = now
	return 0, true
}
