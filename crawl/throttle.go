package crawl

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Throttle spaces out requests to the source server. Every request after
// the first starts interval plus a uniform random jitter in [0, interval)
// after the previous one, so consecutive starts are between min and 2*min
// apart. The limiter keeps the min floor even when Sleep returns early.
type Throttle struct {
	interval time.Duration
	limiter  *rate.Limiter

	mu   sync.Mutex
	last time.Time

	// Jitter returns a random duration in [0, n). Replaced in tests.
	Jitter func(n time.Duration) time.Duration

	// Sleep waits for d or until ctx is done. Replaced in tests.
	Sleep func(ctx context.Context, d time.Duration) error
}

// NewThrottle creates a Throttle with the given minimum interval.
// A non-positive interval disables throttling.
func NewThrottle(interval time.Duration) *Throttle {
	t := &Throttle{
		interval: interval,
		Jitter:   randomJitter,
		Sleep:    sleep,
	}
	if interval > 0 {
		t.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
	return t
}

// Interval returns the minimum interval.
func (t *Throttle) Interval() time.Duration { return t.interval }

// Wait blocks until the next request may be sent.
// Returns an error if the context is canceled before the wait completes.
func (t *Throttle) Wait(ctx context.Context) error {
	if t == nil || t.limiter == nil {
		return ctx.Err()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.last.IsZero() {
		next := t.last.Add(t.interval + t.Jitter(t.interval))
		if err := t.Sleep(ctx, time.Until(next)); err != nil {
			return err
		}
	}
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}
	t.last = time.Now()
	return nil
}

func randomJitter(n time.Duration) time.Duration {
	if n <= 0 {
		return 0
	}
	return rand.N(n)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
