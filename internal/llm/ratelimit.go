package llm

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitProvider spaces requests out to stay under a vendor's
// requests-per-minute quota. Free Gemini keys allow 10 RPM, which a full
// assessment (questions, challenge, roadmap) plus a few code runs can hit.
type RateLimitProvider struct {
	inner   Provider
	limiter *rate.Limiter
}

// WithRateLimit allows perMinute requests per minute with a burst of the
// same size. Zero or less returns p unchanged.
func WithRateLimit(p Provider, perMinute int) Provider {
	if perMinute <= 0 {
		return p
	}
	return &RateLimitProvider{
		inner:   p,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
	}
}

// Generate waits for a token first. A cancelled context or a wait that
// cannot finish before the deadline is returned without calling the vendor.
func (r *RateLimitProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, &ErrRateLimit{Err: err}
	}
	return r.inner.Generate(ctx, req)
}

func (r *RateLimitProvider) ModelID() string { return r.inner.ModelID() }
