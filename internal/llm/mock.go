package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one scripted reply. Err, when set, is returned in place
// of Content. Stop defaults to StopEnd; StopMaxTokens makes the call fail
// as a truncated reply.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Stop    string
	Err     error
}

// JSONResponse scripts v, marshaled, as the reply. Fixtures that cannot be
// marshaled panic.
func JSONResponse(v any) MockResponse {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return MockResponse{Content: b}
}

// MockProvider answers from a script, first in first out, and keeps every
// request it saw along with the purpose it was made for.
//
// With an empty script it stands in for a real vendor when no API key is
// configured: calls fail with ErrProviderUnavailable and callers use their
// fallback content.
type MockProvider struct {
	mu       sync.Mutex
	script   []MockResponse
	Calls    []Request
	Purposes []Purpose
}

func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	m.Purposes = append(m.Purposes, PurposeFrom(ctx))
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(m.script) == 0 {
		return nil, &ErrProviderUnavailable{}
	}

	r := m.script[0]
	m.script = m.script[1:]
	switch {
	case r.Err != nil:
		return nil, r.Err
	case r.Stop == StopMaxTokens:
		return nil, &ErrMaxTokensExceeded{Limit: req.MaxTokens, Content: r.Content}
	}
	stop := r.Stop
	if stop == "" {
		stop = StopEnd
	}
	return &Response{Content: r.Content, Usage: r.Usage, Model: m.ModelID(), StopReason: stop}, nil
}

func (m *MockProvider) ModelID() string { return "mock" }

// CallCount reports how many requests have been made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Remaining reports how many scripted replies are unused.
func (m *MockProvider) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.script)
}
