package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, v := range vendors {
		t.Setenv(v.keyEnv, "")
	}
}

func TestDiscoverConfig(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		provider string
		found    bool
	}{
		{"none", nil, "gemini", false},
		{"gemini wins", map[string]string{"GEMINI_API_KEY": "g", "OPENAI_API_KEY": "o"}, "gemini", true},
		{"openai", map[string]string{"OPENAI_API_KEY": "o"}, "openai", true},
		{"anthropic", map[string]string{"ANTHROPIC_API_KEY": "a"}, "anthropic", true},
		{"openrouter", map[string]string{"OPENROUTER_API_KEY": "r"}, "openrouter", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearKeyEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, ok := DiscoverConfig(DefaultConfig())
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.provider, cfg.Provider)
			assert.Equal(t, tt.found, cfg.HasKey())
		})
	}
}

func TestValidate(t *testing.T) {
	withKey := DefaultConfig()
	withKey.Gemini.APIKey = "k"
	noRetry := withKey
	noRetry.Retry.MaxAttempts = 0
	mock := DefaultConfig()
	mock.Provider = "mock"
	unknown := DefaultConfig()
	unknown.Provider = "llama"

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"missing key", DefaultConfig(), "SMARTPREP_LLM_GEMINI_API_KEY is required"},
		{"key set", withKey, ""},
		{"zero attempts", noRetry, "retry max attempts"},
		{"mock needs no key", mock, ""},
		{"unknown provider", unknown, `unknown LLM provider: "llama"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestWithVendorKey(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg := DefaultConfig()
	cfg.Provider = "openai"
	assert.Equal(t, "sk-test", cfg.WithVendorKey().OpenAI.APIKey)

	cfg.OpenAI.APIKey = "configured"
	assert.Equal(t, "configured", cfg.WithVendorKey().OpenAI.APIKey)

	cfg.Provider = "mock"
	assert.Equal(t, cfg, cfg.WithVendorKey())
}

func TestNewProvider_Mock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "mock"

	p, err := NewProvider(context.Background(), cfg, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())

	// The empty mock queue surfaces as an unavailable provider.
	_, err = p.Generate(context.Background(), Request{})
	var unavailable *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavailable)
}

func TestNewProvider_MissingKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "openai"
	_, err := NewProvider(context.Background(), cfg, nil, nil)
	assert.ErrorContains(t, err, "SMARTPREP_LLM_OPENAI_API_KEY")
}

type slowProvider struct{}

func (slowProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (slowProvider) ModelID() string { return "slow" }

func TestWithTimeout(t *testing.T) {
	p := WithTimeout(slowProvider{}, 10*time.Millisecond)
	_, err := p.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "slow", p.ModelID())

	var same Provider = slowProvider{}
	assert.Equal(t, same, WithTimeout(same, 0), "zero timeout leaves the provider unwrapped")
}
