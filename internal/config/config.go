// Package config defines the backend's runtime configuration, loaded
// from a config file and environment by the CLI layer.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Shared validator instance to reduce allocations.
var configValidator = validator.New()

// Config is the full runtime configuration.
type Config struct {
	// ListenAddr is the HTTP bind address.
	ListenAddr string `mapstructure:"listenAddr" validate:"required"`

	// DatabaseURL selects the database: a postgres:// URL or a SQLite
	// path.
	DatabaseURL string `mapstructure:"databaseUrl" validate:"required"`

	// RedisURL switches the response cache to Redis when non-empty;
	// empty keeps the in-process cache.
	RedisURL string `mapstructure:"redisUrl"`

	// CacheTTL bounds cached generation results.
	CacheTTL time.Duration `mapstructure:"cacheTtl"`

	// PromptConfigPath points at the YAML prompt template and creative
	// persona document. A missing file falls back to built-in defaults.
	PromptConfigPath string `mapstructure:"promptConfigPath"`

	// PromptVersion labels exported rows with the prompt set in use.
	PromptVersion string `mapstructure:"promptVersion"`

	// StripPII toggles the response scrubber.
	StripPII bool `mapstructure:"stripPii"`

	LLM LLMConfig `mapstructure:"llm"`
}

// LLMConfig configures the generation backend.
type LLMConfig struct {
	// Provider selects the backend adapter. An empty API key with a
	// non-mock provider degrades to the mock provider instead of
	// failing.
	Provider string `mapstructure:"provider" validate:"required,oneof=openai anthropic google mock"`

	APIKey  string `mapstructure:"apiKey"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"baseUrl"`

	Temperature float64       `mapstructure:"temperature" validate:"gte=0,lte=2"`
	TopP        float64       `mapstructure:"topP" validate:"gte=0,lte=1"`
	MaxTokens   int           `mapstructure:"maxTokens" validate:"gte=0"`
	Seed        *int          `mapstructure:"seed"`
	Timeout     time.Duration `mapstructure:"timeout"`

	// RateLimit caps sustained backend requests per second; zero
	// disables pacing. RateBurst is the token bucket size.
	RateLimit float64 `mapstructure:"rateLimit" validate:"gte=0"`
	RateBurst int     `mapstructure:"rateBurst" validate:"gte=0"`
}

// Default returns the configuration used when no file overrides it:
// local SQLite, in-process cache with a one hour TTL, scrubbing on, and
// the mock provider so the stack runs without credentials.
func Default() Config {
	return Config{
		ListenAddr:    ":8080",
		DatabaseURL:   "quartet.db",
		CacheTTL:      time.Hour,
		PromptVersion: "v1",
		StripPII:      true,
		LLM: LLMConfig{
			Provider:    "mock",
			Model:       "",
			Temperature: 0.8,
			TopP:        1.0,
			MaxTokens:   800,
			Timeout:     25 * time.Second,
		},
	}
}

// Validate checks the configuration for internal consistency.
func (c Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// EffectiveProvider returns the provider to instantiate: a credentialed
// provider without an API key degrades to mock.
func (c Config) EffectiveProvider() string {
	if c.LLM.Provider != "mock" && c.LLM.APIKey == "" {
		return "mock"
	}
	return c.LLM.Provider
}
