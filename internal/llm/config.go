package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config selects a provider and carries the settings of every vendor so
// switching is a one-key change.
type Config struct {
	// Provider is "gemini", "openai", "anthropic", "openrouter" or "mock".
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call, retries included. Zero means none.
	Timeout time.Duration

	// RequestsPerMinute throttles outgoing calls. Zero means unthrottled.
	RequestsPerMinute int
}

// Model names may be short aliases such as "claude-haiku"; each adapter
// resolves them. BaseURL points a vendor at a proxy or compatible server.

type AnthropicConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string // vendor-prefixed, e.g. "google/gemini-2.5-flash"
	BaseURL string
}

// RetryConfig shapes the backoff of WithRetry. MaxAttempts counts the
// first call, so 1 means no retries.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig makes one attempt per request: a failed content request
// already falls back to built-in questions, so retrying only adds delay.
func DefaultConfig() Config {
	return Config{
		Provider:   "gemini",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: time.Minute,
	}
}

// vendor ties a provider name to its key field and the variable its own
// SDKs and CLIs read.
type vendor struct {
	name   string
	keyEnv string
	key    func(*Config) *string
}

// vendors is in discovery order.
var vendors = []vendor{
	{"gemini", "GEMINI_API_KEY", func(c *Config) *string { return &c.Gemini.APIKey }},
	{"openai", "OPENAI_API_KEY", func(c *Config) *string { return &c.OpenAI.APIKey }},
	{"anthropic", "ANTHROPIC_API_KEY", func(c *Config) *string { return &c.Anthropic.APIKey }},
	{"openrouter", "OPENROUTER_API_KEY", func(c *Config) *string { return &c.OpenRouter.APIKey }},
}

func lookupVendor(name string) (vendor, bool) {
	for _, v := range vendors {
		if v.name == name {
			return v, true
		}
	}
	return vendor{}, false
}

// DiscoverConfig switches cfg to the first vendor whose standard key
// variable is set. It reports false, leaving cfg as is, when none is.
func DiscoverConfig(cfg Config) (Config, bool) {
	for _, v := range vendors {
		if k := os.Getenv(v.keyEnv); k != "" {
			cfg.Provider = v.name
			*v.key(&cfg) = k
			return cfg, true
		}
	}
	return cfg, false
}

// WithVendorKey fills an empty key for the selected provider from its
// standard variable, e.g. GEMINI_API_KEY. A configured key wins.
func (c Config) WithVendorKey() Config {
	if v, ok := lookupVendor(c.Provider); ok && *v.key(&c) == "" {
		*v.key(&c) = os.Getenv(v.keyEnv)
	}
	return c
}

// HasKey reports whether the selected provider can authenticate. The mock
// needs no key.
func (c Config) HasKey() bool {
	if c.Provider == "mock" {
		return true
	}
	v, ok := lookupVendor(c.Provider)
	return ok && *v.key(&c) != ""
}

func (c Config) Validate() error {
	if c.Provider != "mock" {
		if _, ok := lookupVendor(c.Provider); !ok {
			return fmt.Errorf("unknown LLM provider: %q", c.Provider)
		}
		if !c.HasKey() {
			return fmt.Errorf("SMARTPREP_LLM_%s_API_KEY is required for the %s provider",
				strings.ToUpper(c.Provider), c.Provider)
		}
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry max attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	return nil
}
