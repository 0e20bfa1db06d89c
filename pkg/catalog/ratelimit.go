package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/samber/lo"
)

const (
	// RequestsPerWindow is the amount of requests allowed within a window
	RequestsPerWindow = 59
	// Window is the span of time the requests are counted over
	Window = time.Minute
)

// rateLimiter limits requests to a fixed amount within a sliding window
type rateLimiter struct {
	mutex    sync.Mutex
	limit    int
	window   time.Duration
	requests []time.Time
	now      func() time.Time
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// untilNext returns how long to wait before another request is allowed (zero when it's allowed right away)
func (limiter *rateLimiter) untilNext() time.Duration {
	limiter.mutex.Lock()
	defer limiter.mutex.Unlock()

	now := limiter.now()
	limiter.dropOldRequests(now)
	if len(limiter.requests) < limiter.limit {
		return 0
	}

	// The next request can be made once the oldest one leaves the window
	oldest := lo.MinBy(limiter.requests, func(a, b time.Time) bool { return a.Before(b) })
	return max(0, oldest.Add(limiter.window).Sub(now))
}

// requestMade records a request made right now and returns the amount of requests within the window
func (limiter *rateLimiter) requestMade() int {
	limiter.mutex.Lock()
	defer limiter.mutex.Unlock()

	now := limiter.now()
	limiter.requests = append(limiter.requests, now)
	limiter.dropOldRequests(now)
	return len(limiter.requests)
}

func (limiter *rateLimiter) dropOldRequests(now time.Time) {
	limiter.requests = lo.Filter(limiter.requests, func(request time.Time, _ int) bool {
		return !request.Before(now.Add(-limiter.window))
	})
}

// wait blocks until another request is allowed or the context is done
func (limiter *rateLimiter) wait(ctx context.Context, onWait func(time.Duration)) error {
	for delay := limiter.untilNext(); delay > 0; delay = limiter.untilNext() {
		if onWait != nil {
			onWait(delay)
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}
