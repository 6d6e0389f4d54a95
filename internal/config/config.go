// Package config loads application settings from an optional YAML file and
// SMARTPREP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/abhisek/smartprep/internal/llm"
)

// Config is the full application configuration.
type Config struct {
	LLM        LLMConfig        `mapstructure:"llm"`
	Timer      TimerConfig      `mapstructure:"timer"`
	Assessment AssessmentConfig `mapstructure:"assessment"`
	Roadmap    RoadmapConfig    `mapstructure:"roadmap"`
	Log        LogConfig        `mapstructure:"log"`
	DB         string           `mapstructure:"db"`
}

type LLMConfig struct {
	Provider    string        `mapstructure:"provider" validate:"oneof=gemini openai anthropic openrouter mock"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"gte=0"`
	MaxTokens   int           `mapstructure:"max_tokens" validate:"min=256"`
	Temperature float64       `mapstructure:"temperature" validate:"gte=0,lte=2"`

	Anthropic  ProviderConfig `mapstructure:"anthropic"`
	OpenAI     ProviderConfig `mapstructure:"openai"`
	Gemini     ProviderConfig `mapstructure:"gemini"`
	OpenRouter ProviderConfig `mapstructure:"openrouter"`

	Retry RetryConfig `mapstructure:"retry"`

	RequestsPerMinute int `mapstructure:"requests_per_minute" validate:"gte=0"`
}

type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts" validate:"min=1,max=10"`
	InitialWait time.Duration `mapstructure:"initial_wait" validate:"gte=0"`
	MaxWait     time.Duration `mapstructure:"max_wait" validate:"gtefield=InitialWait"`
	Multiplier  float64       `mapstructure:"multiplier" validate:"gte=1"`
}

// TimerConfig holds the countdown for each assessment phase.
type TimerConfig struct {
	Quiz   time.Duration `mapstructure:"quiz" validate:"gt=0"`
	Coding time.Duration `mapstructure:"coding" validate:"gt=0"`
}

type AssessmentConfig struct {
	Questions      int    `mapstructure:"questions" validate:"min=1,max=50"`
	MixedQuestions int    `mapstructure:"mixed_questions" validate:"min=1,max=50"`
	FullChallenge  string `mapstructure:"full_challenge" validate:"required"`
}

type RoadmapConfig struct {
	Days              int `mapstructure:"days" validate:"min=1,max=30"`
	ComprehensiveDays int `mapstructure:"comprehensive_days" validate:"min=1,max=30"`
}

type LogConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=debug info warn error"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"min=1"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"gte=0"`
}

// setDefaults registers a default for every key so env-only overrides
// are picked up by Unmarshal.
func setDefaults(v *viper.Viper) {
	d := llm.DefaultConfig()

	v.SetDefault("llm.provider", d.Provider)
	v.SetDefault("llm.timeout", d.Timeout)
	v.SetDefault("llm.max_tokens", 8192)
	v.SetDefault("llm.temperature", 0.7)

	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", d.Anthropic.Model)
	v.SetDefault("llm.anthropic.base_url", "")
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", d.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", d.Gemini.Model)
	v.SetDefault("llm.gemini.base_url", "")
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", d.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")

	v.SetDefault("llm.requests_per_minute", 0)
	v.SetDefault("llm.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.Retry.Multiplier)

	v.SetDefault("timer.quiz", 20*time.Minute)
	v.SetDefault("timer.coding", 20*time.Minute)

	v.SetDefault("assessment.questions", 20)
	v.SetDefault("assessment.mixed_questions", 10)
	v.SetDefault("assessment.full_challenge", "Python (Basic DSA)")

	v.SetDefault("roadmap.days", 5)
	v.SetDefault("roadmap.comprehensive_days", 14)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)

	v.SetDefault("db", "")
}

// Load reads configuration. An explicit path must exist; otherwise the
// default location is tried and silently skipped when absent.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("SMARTPREP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if dir, err := DefaultDir(); err == nil {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate checks every `validate` tag and reports failures by their
// config key, e.g. "timer.coding must be greater than 0".
func (c *Config) validate() error {
	err := validate.Struct(c)
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		msgs[i] = describe(fe)
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

var validate = newValidator()

// newValidator names fields by their mapstructure key so messages match
// what users write in config.yaml.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		return name
	})
	return v
}

func describe(fe validator.FieldError) string {
	// Namespace is "Config.timer.coding"; drop the root type.
	_, key, _ := strings.Cut(fe.Namespace(), ".")
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", key, fe.Param(), fe.Value())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", key, fe.Param())
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s", key, fe.Param())
	case "lte", "max":
		return fmt.Sprintf("%s must be at most %s", key, fe.Param())
	case "gtefield":
		return fmt.Sprintf("%s must not be below %s", key, fe.Param())
	case "required":
		return key + " is required"
	}
	return fmt.Sprintf("%s fails %s", key, fe.Tag())
}

// DefaultDir returns $XDG_CONFIG_HOME/smartprep, or ~/.config/smartprep.
func DefaultDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "smartprep"), nil
}

// ToLLM converts the LLM section into an llm.Config. When the selected
// provider has no key configured, its standard vendor variable is used,
// then the other vendor variables are checked in priority order.
func (c LLMConfig) ToLLM() llm.Config {
	cfg := llm.Config{
		Provider: c.Provider,
		Anthropic: llm.AnthropicConfig{
			APIKey:  c.Anthropic.APIKey,
			Model:   c.Anthropic.Model,
			BaseURL: c.Anthropic.BaseURL,
		},
		OpenAI: llm.OpenAIConfig{
			APIKey:  c.OpenAI.APIKey,
			Model:   c.OpenAI.Model,
			BaseURL: c.OpenAI.BaseURL,
		},
		Gemini: llm.GeminiConfig{
			APIKey:  c.Gemini.APIKey,
			Model:   c.Gemini.Model,
			BaseURL: c.Gemini.BaseURL,
		},
		OpenRouter: llm.OpenRouterConfig{
			APIKey:  c.OpenRouter.APIKey,
			Model:   c.OpenRouter.Model,
			BaseURL: c.OpenRouter.BaseURL,
		},
		Retry: llm.RetryConfig{
			MaxAttempts: c.Retry.MaxAttempts,
			InitialWait: c.Retry.InitialWait,
			MaxWait:     c.Retry.MaxWait,
			Multiplier:  c.Retry.Multiplier,
		},
		Timeout:           c.Timeout,
		RequestsPerMinute: c.RequestsPerMinute,
	}

	cfg = cfg.WithVendorKey()
	if !cfg.HasKey() {
		if discovered, ok := llm.DiscoverConfig(cfg); ok {
			return discovered
		}
	}
	return cfg
}
