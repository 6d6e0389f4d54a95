package content

// Config controls the LLM requests issued by LLMService.
type Config struct {
	// MaxTokens is the token budget for each response. Roadmaps are the
	// largest payload and need several thousand tokens.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns the recommended request settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   8192,
		Temperature: 0.7,
	}
}
