package ratelimit

import (
	"net/http"
	"strings"
	"time"
)

// defaultScope is the bucket scope shared by every request without an
// endpoint override
const defaultScope = "default"

// Rule is the limit applied to one request. Requests from a client that
// resolve to the same Scope draw from the same bucket.
type Rule struct {
	Scope  string
	Limit  int // <= 0 means unlimited
	Window time.Duration
	Burst  int
}

// Unlimited reports whether the rule never rejects
func (r Rule) Unlimited() bool {
	return r.Limit <= 0
}

// unlimitedPaths are probed by load balancers and scrapers
var unlimitedPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// Resolve picks the rule for a request. A prefix override such as
// "/api/ai/session/" is scoped to the prefix, so every id behind it shares
// one bucket; unmatched requests share the default bucket.
func (c *Config) Resolve(path, method string) Rule {
	if method == http.MethodGet && unlimitedPaths[path] {
		return Rule{Scope: path}
	}

	if ep := MatchEndpoint(path, method, c.EndpointConfigs); ep != nil {
		return Rule{
			Scope:  ep.Method + " " + ep.Path,
			Limit:  ep.Limit,
			Window: ep.Window,
			Burst:  ep.Burst,
		}
	}

	return Rule{
		Scope:  defaultScope,
		Limit:  c.DefaultLimit,
		Window: c.DefaultWindow,
		Burst:  c.DefaultLimit,
	}
}

// MatchEndpoint returns the override for a request, or nil. Exact paths win
// over prefixes; a configured path ending in "/" matches every path below it.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	var prefix *EndpointConfig
	for i := range configs {
		ep := &configs[i]
		if ep.Method != method {
			continue
		}
		if ep.Path == path {
			return ep
		}
		if prefix == nil && strings.HasSuffix(ep.Path, "/") && strings.HasPrefix(path, ep.Path) {
			prefix = ep
		}
	}
	return prefix
}
