package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/glorpus-work/dscache/internal/logger"
	"golang.org/x/time/rate"
)

var (
	ErrInvalidRate   = fmt.Errorf("requests_per_second and burst must not be negative")
	ErrWaitingFailed = fmt.Errorf("limiter waiting failed")
	ErrContextEnded  = fmt.Errorf("throttle context ended")
)

// throttle is an http.RoundTripper restricting outbound calls with a token bucket.
type throttle struct {
	limiter *rate.Limiter
	rps     float64
	burst   int
	next    http.RoundTripper
}

// newThrottle wraps next in a throttle. A zero rps returns next unchanged.
func newThrottle(rps float64, burst int, next http.RoundTripper) (http.RoundTripper, error) {
	if rps < 0 || burst < 0 {
		return nil, fmt.Errorf("rps[%g] burst[%d]: %w", rps, burst, ErrInvalidRate)
	}
	if rps == 0 {
		return next, nil
	}
	if burst == 0 {
		burst = 1
	}

	return &throttle{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		rps:     rps,
		burst:   burst,
		next:    next,
	}, nil
}

func (t *throttle) RoundTrip(r *http.Request) (*http.Response, error) {
	ctx := r.Context()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w early: %w", ErrContextEnded, err)
	}

	if t.limiter.Allow() {
		return t.next.RoundTrip(r)
	}

	logger.Debug("throttle tokens exhausted", logger.Fields{"rate": t.rps, "burst": t.burst, "path": r.URL.Path})

	start := time.Now()
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWaitingFailed, err)
	}
	logger.Debug("throttle wait complete", logger.Fields{"waited": time.Since(start).String()})

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w post-wait: %w", ErrContextEnded, err)
	}

	return t.next.RoundTrip(r)
}
