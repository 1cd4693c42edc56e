// Package config provides configuration loading and validation for the career advisor.
//
// Values come from, in increasing priority: built-in defaults, an optional
// YAML or JSON config file, and environment variables prefixed with CAREER_
// (nested keys use underscores, e.g. CAREER_SESSION_TTL). A few well-known
// variables such as GEMINI_API_KEY, DATABASE_URL, REDIS_URL and PORT are
// honoured without the prefix.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load
const EnvPrefix = "CAREER"

// Session store backends
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Reply providers. ProviderAuto picks gemini when an API key is set.
const (
	ProviderAuto     = "auto"
	ProviderGemini   = "gemini"
	ProviderFallback = "fallback"
)

// Config is the complete service configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Session SessionConfig `mapstructure:"session"`

	DatabaseURL string `mapstructure:"database_url"` // PostgreSQL connection URL
	RedisURL    string `mapstructure:"redis_url"`    // redis://host:port/db
	CatalogDir  string `mapstructure:"catalog_dir"`  // Optional directory overriding the embedded catalog
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
}

// LogConfig selects the zap logger flavour
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json or console
}

// LLMConfig configures reply generation
type LLMConfig struct {
	Provider        string        `mapstructure:"provider"`
	APIKey          string        `mapstructure:"api_key"`
	Model           string        `mapstructure:"model"`
	Temperature     float64       `mapstructure:"temperature"`
	MaxOutputTokens int           `mapstructure:"max_output_tokens"`
	Timeout         time.Duration `mapstructure:"timeout"`
	MaxRetries      int           `mapstructure:"max_retries"`
}

// SessionConfig configures conversation storage
type SessionConfig struct {
	Store         string        `mapstructure:"store"`
	TTL           time.Duration `mapstructure:"ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// Default returns the configuration used when nothing is overridden
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            5000,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			MaxUploadBytes:  5 << 20,
		},
		Log: LogConfig{Level: "info", Format: "json"},
		LLM: LLMConfig{
			Provider:        ProviderAuto,
			Model:           "gemini-2.5-flash",
			Temperature:     0.7,
			MaxOutputTokens: 300,
			Timeout:         15 * time.Second,
			MaxRetries:      2,
		},
		Session: SessionConfig{
			Store:         StoreMemory,
			TTL:           24 * time.Hour,
			SweepInterval: 10 * time.Minute,
		},
	}
}

// Load reads configuration from defaults, the optional file at path and the
// environment. An empty path skips the file.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()

	d := Default()
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.max_upload_bytes", d.Server.MaxUploadBytes)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("llm.provider", d.LLM.Provider)
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", d.LLM.Model)
	v.SetDefault("llm.temperature", d.LLM.Temperature)
	v.SetDefault("llm.max_output_tokens", d.LLM.MaxOutputTokens)
	v.SetDefault("llm.timeout", d.LLM.Timeout)
	v.SetDefault("llm.max_retries", d.LLM.MaxRetries)
	v.SetDefault("session.store", d.Session.Store)
	v.SetDefault("session.ttl", d.Session.TTL)
	v.SetDefault("session.sweep_interval", d.Session.SweepInterval)
	v.SetDefault("database_url", "")
	v.SetDefault("redis_url", "")
	v.SetDefault("catalog_dir", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// unprefixed names used by hosting platforms and the Gemini SDK docs
	_ = v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", EnvPrefix+"_PORT", "PORT")
	_ = v.BindEnv("llm.api_key", EnvPrefix+"_LLM_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("database_url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("redis_url", EnvPrefix+"_REDIS_URL", "REDIS_URL")

	return v
}

// Validate checks that the configuration has valid values
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("server.max_upload_bytes must be positive"))
	}

	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format must be json or console, got %q", c.Log.Format))
	}

	switch c.LLM.Provider {
	case ProviderAuto, ProviderFallback:
	case ProviderGemini:
		if c.LLM.APIKey == "" {
			errs = append(errs, errors.New("llm.api_key (or GEMINI_API_KEY) is required for the gemini provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("llm.provider must be auto, gemini or fallback, got %q", c.LLM.Provider))
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		errs = append(errs, fmt.Errorf("llm.temperature must be between 0 and 2, got %v", c.LLM.Temperature))
	}
	if c.LLM.MaxOutputTokens <= 0 {
		errs = append(errs, errors.New("llm.max_output_tokens must be positive"))
	}
	if c.LLM.MaxRetries < 0 {
		errs = append(errs, errors.New("llm.max_retries must be non-negative"))
	}

	switch c.Session.Store {
	case StoreMemory:
	case StoreRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("redis_url (or REDIS_URL) is required for the redis session store"))
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("database_url (or DATABASE_URL) is required for the postgres session store"))
		}
	default:
		errs = append(errs, fmt.Errorf("session.store must be memory, redis or postgres, got %q", c.Session.Store))
	}
	if c.Session.TTL < 0 {
		errs = append(errs, errors.New("session.ttl must be non-negative"))
	}

	return errors.Join(errs...)
}

// ReplyProvider resolves ProviderAuto to a concrete provider
func (c *Config) ReplyProvider() string {
	if c.LLM.Provider != ProviderAuto {
		return c.LLM.Provider
	}
	if c.LLM.APIKey != "" {
		return ProviderGemini
	}
	return ProviderFallback
}
