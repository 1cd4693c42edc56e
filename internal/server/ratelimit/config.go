package ratelimit

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every rate limit environment variable
const EnvPrefix = "RATE_LIMIT"

// EndpointConfig overrides the default limit for one route
type EndpointConfig struct {
	Name   string        // env key for overrides, e.g. RATE_LIMIT_CHAT_LIMIT
	Path   string        // exact path, or a prefix when it ends in "/"
	Method string        // HTTP method
	Limit  int           // requests per window
	Window time.Duration // refill window
	Burst  int           // bucket capacity, Limit when 0
}

// DefaultEndpointConfigs are the per-route overrides. Reply generation and
// document parsing are the expensive routes and get the tightest buckets;
// catalog reads and recommendations fall under the default limit.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Name: "chat", Path: "/api/ai/chat", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Name: "cv_analyze", Path: "/api/cv/analyze", Method: "POST", Limit: 10, Window: time.Minute, Burst: 2},
		{Name: "session_create", Path: "/api/ai/sessions", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Name: "session_clear", Path: "/api/ai/session/", Method: "DELETE", Limit: 60, Window: time.Minute, Burst: 10},
	}
}

// LoadConfig reads RATE_LIMIT_* environment variables:
//
//	RATE_LIMIT_ENABLED, RATE_LIMIT_DEFAULT_LIMIT, RATE_LIMIT_DEFAULT_WINDOW,
//	RATE_LIMIT_CLEANUP_INTERVAL, RATE_LIMIT_WHITELIST, RATE_LIMIT_BLACKLIST
//
// and per endpoint RATE_LIMIT_<NAME>_LIMIT and RATE_LIMIT_<NAME>_BURST.
// Unparseable or non-positive numbers keep their defaults.
func LoadConfig() *Config {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetDefault("enabled", true)

	if !v.GetBool("enabled") {
		return &Config{Enabled: false}
	}

	endpoints := DefaultEndpointConfigs()
	for i := range endpoints {
		ep := &endpoints[i]
		ep.Limit = positiveInt(v, ep.Name+"_limit", ep.Limit)
		ep.Burst = positiveInt(v, ep.Name+"_burst", ep.Burst)
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    positiveInt(v, "default_limit", 1000),
		DefaultWindow:   positiveDuration(v, "default_window", time.Minute),
		CleanupInterval: positiveDuration(v, "cleanup_interval", 5*time.Minute),
		Whitelist:       parseIPList(v.GetString("whitelist")),
		Blacklist:       parseIPList(v.GetString("blacklist")),
		EndpointConfigs: endpoints,
	}
}

func positiveInt(v *viper.Viper, key string, fallback int) int {
	if n := v.GetInt(key); n > 0 {
		return n
	}
	return fallback
}

func positiveDuration(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	if d := v.GetDuration(key); d > 0 {
		return d
	}
	return fallback
}

// parseIPList turns a comma separated list into a set
func parseIPList(list string) map[string]bool {
	set := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			set[ip] = true
		}
	}
	return set
}
