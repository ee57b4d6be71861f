package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

// rateLimitTransport throttles outgoing requests with a token bucket,
// waiting on the request context so an aborted call never blocks.
type rateLimitTransport struct {
	next    http.RoundTripper
	limiter *rate.Limiter
}

func newRateLimitTransport(next http.RoundTripper, rps float64, burst int) *rateLimitTransport {
	return &rateLimitTransport{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (t *rateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.next.RoundTrip(req)
}

// breakerTransport wraps a RoundTripper in a circuit breaker so repeated
// transport failures against a dead backend fail fast instead of piling up
// timeouts. HTTP error statuses are responses, not failures, and do not
// count toward tripping; neither do caller-side cancellations.
type breakerTransport struct {
	next    http.RoundTripper
	breaker *gobreaker.CircuitBreaker[*http.Response]
}

func newBreakerTransport(next http.RoundTripper) *breakerTransport {
	settings := gobreaker.Settings{
		Name: "anycart-api",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
	}
	return &breakerTransport{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker[*http.Response](settings),
	}
}

func (t *breakerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.breaker.Execute(func() (*http.Response, error) {
		return t.next.RoundTrip(req)
	})
}
