package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryProvider re-issues failed calls according to classify. The shipped
// config makes one attempt, so it only matters when
// llm.retry.max_attempts is raised.
type RetryProvider struct {
	inner Provider
	cfg   RetryConfig
	sleep func(context.Context, time.Duration) error
}

// WithRetry wraps p. MaxAttempts below 1 means a single attempt.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	cfg.MaxAttempts = max(cfg.MaxAttempts, 1)
	return &RetryProvider{inner: p, cfg: cfg, sleep: sleepCtx}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	reformatted := false
	for attempt := 1; ; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		switch classify(err) {
		case retryNever:
			return nil, err
		case retryOnce:
			// A second malformed reply in the same call is final.
			if reformatted {
				return nil, err
			}
			reformatted = true
		}
		if attempt >= r.cfg.MaxAttempts {
			return nil, err
		}

		wait := retryDelay(r.cfg, attempt-1, err, rand.Float64())
		if serr := r.sleep(ctx, wait); serr != nil {
			return nil, serr
		}
	}
}

func (r *RetryProvider) ModelID() string { return r.inner.ModelID() }

// retryDelay is the pause before retry n (0-based). A rate limit that
// names a Retry-After wins; otherwise the wait grows by Multiplier up to
// MaxWait and is spread by up to 20% either way using u in [0,1).
func retryDelay(cfg RetryConfig, n int, err error, u float64) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	base := math.Min(
		float64(cfg.InitialWait)*math.Pow(cfg.Multiplier, float64(n)),
		float64(cfg.MaxWait),
	)
	return time.Duration(math.Max(0, base*(1+0.2*(2*u-1))))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
