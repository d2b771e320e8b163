package datasource

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/shyamyadavji/weather/payload"
)

// RateLimitedGateway wraps a Gateway with rate limiting so chat-driven
// bursts cannot exhaust the upstream free-tier quota.
type RateLimitedGateway struct {
	gateway Gateway
	limiter *rate.Limiter
	name    string
}

// NewRateLimitedGateway creates a new rate limited gateway.
// rps is the maximum requests per second allowed (can be fractional for less
// than 1 request per second) and burst is the maximum burst size allowed.
func NewRateLimitedGateway(gateway Gateway, rps float64, burst int) *RateLimitedGateway {
	return &RateLimitedGateway{
		gateway: gateway,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		name:    fmt.Sprintf("%s [Rate Limited]", gateway.Name()),
	}
}

// Fetch fetches a payload, respecting rate limits
func (r *RateLimitedGateway) Fetch(ctx context.Context, location string, kind EndpointKind) (payload.Tree, error) {
	// Wait for rate limiter permission or context cancellation
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.gateway.Fetch(ctx, location, kind)
}

// Probe forwards the startup probe directly; it runs once before the
// interaction loop and does not count against the fetch budget.
func (r *RateLimitedGateway) Probe(ctx context.Context, location string) error {
	return r.gateway.Probe(ctx, location)
}

// Name returns the gateway name
func (r *RateLimitedGateway) Name() string {
	return r.name
}

// Verify that the rate limited type implements the required interface
var _ Gateway = (*RateLimitedGateway)(nil)
