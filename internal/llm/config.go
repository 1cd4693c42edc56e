// Package llm generates assistant replies for career conversations, backed by
// Google Gemini with retries and a deterministic keyword fallback.
package llm

import "time"

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderFallback uses canned keyword replies only, no network calls
	ProviderFallback Provider = "fallback"
)

// Config holds the reply generation settings
type Config struct {
	Provider        Provider
	Model           string
	Temperature     float32
	MaxOutputTokens int32

	// Timeout bounds a single generation attempt
	Timeout time.Duration
	Retry   RetryConfig
}

// RetryConfig controls retry behavior
type RetryConfig struct {
	MaxRetries  int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetryConfig suits interactive chat: a reply is abandoned for the
// fallback within a few seconds.
var DefaultRetryConfig = RetryConfig{
	MaxRetries:  2,
	InitialWait: 300 * time.Millisecond,
	MaxWait:     2 * time.Second,
	Multiplier:  2.0,
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider:        ProviderGemini,
		Model:           "gemini-2.5-flash",
		Temperature:     0.7,
		MaxOutputTokens: 300,
		Timeout:         15 * time.Second,
		Retry:           DefaultRetryConfig,
	}
}

// WithModel returns a copy of the config using model
func (c *Config) WithModel(model string) *Config {
	copied := *c
	copied.Model = model
	return &copied
}
