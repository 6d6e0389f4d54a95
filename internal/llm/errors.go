package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrRateLimit is a 429 from the vendor, or a local rate-limit wait that
// could not finish before the deadline. RetryAfter is the vendor's hint,
// zero when none was sent.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse is a reply that is not JSON, breaks the request
// schema, or was refused by the model.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable means no vendor answered. A nil Err means none is
// configured.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded is a reply cut off at the token budget. Fourteen-day
// roadmaps are the usual culprit.
type ErrMaxTokensExceeded struct {
	Limit   int
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	if e.Limit > 0 {
		return fmt.Sprintf("LLM response truncated at %d tokens", e.Limit)
	}
	return "LLM response truncated: max tokens exceeded"
}

// retryClass is how the retry decorator treats an error.
type retryClass int

const (
	retryNever   retryClass = iota
	retryOnce               // another sample usually conforms
	retryBackoff            // transient; back off and try again
)

func classify(err error) retryClass {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return retryNever
	}

	// Raising the budget is a config change; retrying gives the same cut.
	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return retryNever
	}

	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		return retryOnce
	}

	// Rate limits, outages and plain network errors are transient.
	return retryBackoff
}

// Describe turns a provider error into a sentence fit for the run console
// and fallback notices.
func Describe(err error) string {
	var (
		rl      *ErrRateLimit
		invalid *ErrInvalidResponse
		unavail *ErrProviderUnavailable
		maxTok  *ErrMaxTokensExceeded
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return "the AI provider took too long to answer"
	case errors.As(err, &rl):
		if rl.RetryAfter > 0 {
			return fmt.Sprintf("the AI provider is rate limiting requests, try again in %s", rl.RetryAfter.Round(time.Second))
		}
		return "the AI provider is rate limiting requests"
	case errors.As(err, &maxTok):
		return "the AI reply was cut off, raise llm.max_tokens"
	case errors.As(err, &invalid):
		return "the AI reply was not in the expected format"
	case errors.As(err, &unavail) && unavail.Err == nil:
		return "no AI provider is configured"
	}
	return err.Error()
}
