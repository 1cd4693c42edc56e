package ratelimit

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_Allow(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer limiter.Stop()

	// Should allow requests up to limit
	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	// 11th request should be denied
	allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Positive(t, info.RetryAfter)
	assert.True(t, info.ResetTime.After(time.Now()))
}

func TestLimiter_Refill(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start

	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 60, DefaultWindow: time.Minute})
	defer limiter.Stop()
	limiter.now = func() time.Time { return now }

	for i := 0; i < 60; i++ {
		allowed, _ := limiter.Allow("c", "/test", "GET")
		require.True(t, allowed)
	}
	allowed, info := limiter.Allow("c", "/test", "GET")
	require.False(t, allowed)
	assert.Equal(t, time.Second, info.RetryAfter)

	// one token per second
	now = start.Add(time.Second)
	allowed, _ = limiter.Allow("c", "/test", "GET")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("c", "/test", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Whitelist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"127.0.0.1": true},
	})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
		require.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Blacklist:     map[string]bool{"192.168.1.1": true},
	})
	defer limiter.Stop()

	allowed, _ := limiter.Allow("192.168.1.1", "/test", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
		require.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/api/ai/chat", Method: "POST", Limit: 5, Window: time.Minute, Burst: 5},
		},
	})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/api/ai/chat", "POST")
		require.True(t, allowed)
		assert.Equal(t, 5, info.Limit)
	}

	allowed, info := limiter.Allow("127.0.0.1", "/api/ai/chat", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 5, info.Limit)

	// Different endpoint should use default limit
	allowed, info = limiter.Allow("127.0.0.1", "/api/ai/jobs/search", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)

	// Other clients have their own buckets
	allowed, _ = limiter.Allow("10.0.0.2", "/api/ai/chat", "POST")
	assert.True(t, allowed)
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Hour})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := limiter.Allow("127.0.0.1", "/health", "GET")
		require.True(t, allowed)
		allowed, _ = limiter.Allow("127.0.0.1", "/metrics", "GET")
		require.True(t, allowed)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 100, DefaultWindow: time.Minute})
	defer limiter.Stop()

	var wg sync.WaitGroup
	var allowedCount atomic.Int32

	// Make 200 concurrent requests (should only allow 100)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := limiter.Allow("127.0.0.1", "/test", "GET"); allowed {
				allowedCount.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(100), allowedCount.Load())
}

func TestLimiter_CleanupBuckets(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start

	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer limiter.Stop()
	limiter.now = func() time.Time { return now }

	for i := 0; i < 10; i++ {
		limiter.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/test", "GET")
	}

	now = start.Add(2 * time.Hour)
	for i := 0; i < 5; i++ {
		limiter.Allow(fmt.Sprintf("127.0.0.%d", i+1), "/test", "GET")
	}

	remaining := limiter.cleanupBuckets(now.Add(-bucketIdleTTL))
	assert.Equal(t, 5, remaining)
}

func TestLimiter_Burst(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/burst", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5},
		},
	})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow("127.0.0.1", "/burst", "POST")
		require.True(t, allowed, "burst request %d", i+1)
	}

	allowed, _ := limiter.Allow("127.0.0.1", "/burst", "POST")
	assert.False(t, allowed)
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	allowed, info := limiter.Allow("127.0.0.1", "/test", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestLimiter_StopTwice(t *testing.T) {
	limiter := NewLimiter(nil)
	limiter.Stop()
	assert.NotPanics(t, limiter.Stop)
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	got := MatchEndpoint("/api/ai/chat", "POST", configs)
	require.NotNil(t, got)
	assert.Equal(t, 30, got.Limit)

	got = MatchEndpoint("/api/ai/session/abc", "DELETE", configs)
	require.NotNil(t, got)
	assert.Equal(t, "/api/ai/session/", got.Path)

	assert.Nil(t, MatchEndpoint("/api/ai/session/abc", "GET", configs))
	assert.Nil(t, MatchEndpoint("/api/ai/chat", "GET", configs))
	assert.Nil(t, MatchEndpoint("/health", "GET", configs))
}

func TestMatchEndpoint_ExactBeatsPrefix(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/api/ai/session/", Method: "DELETE", Limit: 60},
		{Path: "/api/ai/session/pinned", Method: "DELETE", Limit: 5},
	}

	got := MatchEndpoint("/api/ai/session/pinned", "DELETE", configs)
	require.NotNil(t, got)
	assert.Equal(t, 5, got.Limit)
}

func TestConfig_Resolve(t *testing.T) {
	cfg := &Config{DefaultLimit: 100, DefaultWindow: time.Minute, EndpointConfigs: DefaultEndpointConfigs()}

	tests := []struct {
		name      string
		path      string
		method    string
		wantScope string
		wantLimit int
	}{
		{"health", "/health", "GET", "/health", 0},
		{"metrics", "/metrics", "GET", "/metrics", 0},
		{"exact override", "/api/ai/chat", "POST", "POST /api/ai/chat", 30},
		{"prefix override", "/api/ai/session/abc", "DELETE", "DELETE /api/ai/session/", 60},
		{"other id same scope", "/api/ai/session/xyz", "DELETE", "DELETE /api/ai/session/", 60},
		{"default", "/api/ai/jobs/search", "GET", defaultScope, 100},
		{"unknown path", "/nope/123", "POST", defaultScope, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := cfg.Resolve(tt.path, tt.method)
			assert.Equal(t, tt.wantScope, rule.Scope)
			assert.Equal(t, tt.wantLimit, rule.Limit)
			assert.Equal(t, tt.wantLimit == 0, rule.Unlimited())
		})
	}
}

func TestLimiter_PrefixSharedAcrossIDs(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	})
	defer limiter.Stop()

	allowed := 0
	for i := 0; i < 200; i++ {
		if ok, _ := limiter.Allow("127.0.0.1", fmt.Sprintf("/api/ai/session/id-%d", i), "DELETE"); ok {
			allowed++
		}
	}

	assert.Equal(t, 10, allowed)
	assert.Equal(t, 1, limiter.cleanupBuckets(time.Time{}))
}

func TestLimiter_UnmatchedPathsShareDefaultBucket(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 5, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		ok, _ := limiter.Allow("127.0.0.1", fmt.Sprintf("/random/%d", i), "GET")
		require.True(t, ok)
	}
	ok, _ := limiter.Allow("127.0.0.1", "/random/other", "POST")
	assert.False(t, ok)
	assert.Equal(t, 1, limiter.cleanupBuckets(time.Time{}))
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "250")
	t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "30s")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2")

	cfg := LoadConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 250, cfg.DefaultLimit)
	assert.Equal(t, 30*time.Second, cfg.DefaultWindow)
	assert.Equal(t, map[string]bool{"10.0.0.1": true, "10.0.0.2": true}, cfg.Whitelist)
	assert.NotEmpty(t, cfg.EndpointConfigs)
}

func TestLoadConfig_EndpointOverrides(t *testing.T) {
	t.Setenv("RATE_LIMIT_CHAT_LIMIT", "12")
	t.Setenv("RATE_LIMIT_CHAT_BURST", "3")
	t.Setenv("RATE_LIMIT_CV_ANALYZE_LIMIT", "not-a-number")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "-4")

	cfg := LoadConfig()

	chat := MatchEndpoint("/api/ai/chat", "POST", cfg.EndpointConfigs)
	require.NotNil(t, chat)
	assert.Equal(t, 12, chat.Limit)
	assert.Equal(t, 3, chat.Burst)

	cv := MatchEndpoint("/api/cv/analyze", "POST", cfg.EndpointConfigs)
	require.NotNil(t, cv)
	assert.Equal(t, 10, cv.Limit)
	assert.Equal(t, 1000, cfg.DefaultLimit)
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg := LoadConfig()
	assert.False(t, cfg.Enabled)
}
