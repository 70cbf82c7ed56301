package app

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/accountvault/pkg/httpx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("VAULT_JWKS_FILE", "/etc/vault/jwks.json")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "vault.db", cfg.DatabaseFile)
	assert.Equal(t, 10, cfg.DailyLimit)
	assert.Equal(t, 15*time.Minute, cfg.JWKSRefreshInterval)
	assert.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("VAULT_PORT", "9090")
	t.Setenv("VAULT_JWKS_URL", "https://id.example.com/.well-known/jwks.json")
	t.Setenv("VAULT_JWT_AUDIENCE", "vault,vault-admin")
	t.Setenv("VAULT_DAILY_LIMIT", "3")
	t.Setenv("VAULT_JWKS_REFRESH_INTERVAL", "1m")
	t.Setenv("RATELIMIT_STRICT_REQUESTS", "50")
	t.Setenv("RATELIMIT_STRICT_WINDOW_SEC", "10")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, []string{"vault", "vault-admin"}, cfg.JWTAudience)
	assert.Equal(t, 3, cfg.DailyLimit)
	assert.Equal(t, time.Minute, cfg.JWKSRefreshInterval)
	assert.Equal(t, RateLimit{Requests: 50, WindowSec: 10}, cfg.RateLimits.Strict)
	assert.Equal(t, RateLimit{}, cfg.RateLimits.Public)
}

func TestLoadConfig_RejectsBadValues(t *testing.T) {
	t.Setenv("VAULT_JWKS_FILE", "/etc/vault/jwks.json")
	t.Setenv("VAULT_PORT", "not-a-port")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	base := Config{Port: 8080, DailyLimit: 10, JWKSFile: "jwks.json", Env: "dev"}
	require.NoError(t, base.Validate())

	cases := map[string]func(c *Config){
		"no key source":    func(c *Config) { c.JWKSFile = "" },
		"both key sources": func(c *Config) { c.JWKSURL = "https://id.test/jwks" },
		"zero limit":       func(c *Config) { c.DailyLimit = 0 },
		"bad port":         func(c *Config) { c.Port = 70000 },
		"prod without key": func(c *Config) { c.Env = "prod" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := base
			mutate(&c)
			require.Error(t, c.Validate())
		})
	}

	prod := base
	prod.Env = "prod"
	prod.MasterKeyFile = "/run/secrets/master"
	require.NoError(t, prod.Validate())

	// Production takes the admin secret as a hash only.
	prod.AdminSecret = "pw"
	require.Error(t, prod.Validate())
}

func TestApplyRateLimits(t *testing.T) {
	saved := []httpx.RateLimitConfig{httpx.StrictLimit, httpx.ModerateLimit, httpx.LenientLimit, httpx.PublicLimit}
	t.Cleanup(func() {
		httpx.StrictLimit, httpx.ModerateLimit, httpx.LenientLimit, httpx.PublicLimit = saved[0], saved[1], saved[2], saved[3]
	})

	cfg := Config{RateLimits: RateLimits{
		Strict:  RateLimit{Requests: 1000, Burst: 1000},
		Lenient: RateLimit{WindowSec: 1},
	}}
	cfg.ApplyRateLimits()

	assert.Equal(t, httpx.RateLimitConfig{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000}, httpx.StrictLimit)
	assert.Equal(t, saved[1], httpx.ModerateLimit)
	assert.Equal(t, time.Second, httpx.LenientLimit.Window)
	assert.Equal(t, saved[2].RequestsPerWindow, httpx.LenientLimit.RequestsPerWindow)
}
