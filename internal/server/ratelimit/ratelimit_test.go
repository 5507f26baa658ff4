package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(limit, burst int, window time.Duration) *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  limit,
		DefaultWindow: window,
		Whitelist:     map[string]bool{},
		Blacklist:     map[string]bool{},
		EndpointConfigs: []EndpointConfig{
			{Path: "/auth/login", Method: "POST", Limit: limit, Window: window, Burst: burst},
		},
	}
}

func TestLimiter_AllowsWithinBurst(t *testing.T) {
	limiter := NewLimiter(newTestConfig(10, 3, time.Hour))
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		allowed, info := limiter.Allow("1.2.3.4", "/auth/login", "POST")
		require.True(t, allowed, "request %d should be allowed", i)
		assert.Equal(t, 10, info.Limit)
	}

	allowed, info := limiter.Allow("1.2.3.4", "/auth/login", "POST")
	assert.False(t, allowed)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_PerClientBuckets(t *testing.T) {
	limiter := NewLimiter(newTestConfig(10, 1, time.Hour))
	defer limiter.Stop()

	allowed, _ := limiter.Allow("1.1.1.1", "/auth/login", "POST")
	require.True(t, allowed)
	allowed, _ = limiter.Allow("1.1.1.1", "/auth/login", "POST")
	assert.False(t, allowed, "same client exhausted its bucket")

	allowed, _ = limiter.Allow("2.2.2.2", "/auth/login", "POST")
	assert.True(t, allowed, "other clients have their own bucket")
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := limiter.Allow("1.2.3.4", "/auth/login", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_WhitelistAndBlacklist(t *testing.T) {
	cfg := newTestConfig(10, 1, time.Hour)
	cfg.Whitelist["9.9.9.9"] = true
	cfg.Blacklist["6.6.6.6"] = true
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := limiter.Allow("9.9.9.9", "/auth/login", "POST")
		require.True(t, allowed, "whitelisted client is never limited")
	}

	allowed, _ := limiter.Allow("6.6.6.6", "/auth/login", "POST")
	assert.False(t, allowed, "blacklisted client is always rejected")
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	tests := []struct {
		path      string
		method    string
		wantMatch bool
		wantLimit int
	}{
		{"/health", "GET", true, 0},
		{"/auth/login", "POST", true, 10},
		{"/resumes", "POST", true, 100},
		{"/resumes/abc-123", "DELETE", true, 100},
		{"/sessions/abc/undo", "POST", true, 60},
		{"/export/abc.pdf", "GET", true, 10},
		{"/resumes", "GET", false, 0},
		{"/nothing", "GET", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			match := MatchEndpoint(tt.path, tt.method, configs)
			if !tt.wantMatch {
				assert.Nil(t, match)
				return
			}
			require.NotNil(t, match)
			assert.Equal(t, tt.wantLimit, match.Limit)
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 1000, cfg.DefaultLimit)
	assert.Equal(t, time.Minute, cfg.DefaultWindow)
	assert.NotEmpty(t, cfg.EndpointConfigs)
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg := LoadConfig()
	assert.False(t, cfg.Enabled)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
	t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "30s")
	t.Setenv("RATE_LIMIT_WHITELIST", "1.1.1.1, 2.2.2.2")

	cfg := LoadConfig()
	assert.Equal(t, 42, cfg.DefaultLimit)
	assert.Equal(t, 30*time.Second, cfg.DefaultWindow)
	assert.True(t, cfg.Whitelist["1.1.1.1"])
	assert.True(t, cfg.Whitelist["2.2.2.2"])
}

func TestTokenBucket_Refill(t *testing.T) {
	// 100 tokens per second so the refill is observable in a short test
	tb := newTokenBucket(1, 100)

	require.True(t, tb.allow())
	assert.False(t, tb.allow())

	time.Sleep(50 * time.Millisecond)
	assert.True(t, tb.allow(), "bucket refills over time")
}
