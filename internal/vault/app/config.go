package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/accountvault/pkg/httpx"
	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port         int    `env:"VAULT_PORT"          envDefault:"8080"`
	DatabaseFile string `env:"VAULT_DATABASE_FILE" envDefault:"vault.db"`

	// Sealing key for stored secrets. The file wins over the inline value.
	MasterKeyFile string `env:"VAULT_MASTER_KEY_FILE"`
	MasterKey     string `env:"VAULT_MASTER_KEY"`

	AdminSecretHash string `env:"VAULT_ADMIN_SECRET_HASH"` // argon2id PHC string
	AdminSecret     string `env:"VAULT_ADMIN_SECRET"`      // hashed at startup
	AdminTOTPSecret string `env:"VAULT_ADMIN_TOTP_SECRET"` // base32, optional

	JWTIssuer           string        `env:"VAULT_JWT_ISSUER"`
	JWTAudience         []string      `env:"VAULT_JWT_AUDIENCE"          envSeparator:","`
	JWKSURL             string        `env:"VAULT_JWKS_URL"`
	JWKSFile            string        `env:"VAULT_JWKS_FILE"`
	JWKSRefreshInterval time.Duration `env:"VAULT_JWKS_REFRESH_INTERVAL" envDefault:"15m"`

	DailyLimit   int    `env:"VAULT_DAILY_LIMIT"   envDefault:"10"`
	OTelEndpoint string `env:"VAULT_OTEL_ENDPOINT"`

	Env                 string        `env:"ENV"                   envDefault:"dev"`
	LogLevel            string        `env:"LOG_LEVEL"             envDefault:"info"`
	LogFormat           string        `env:"LOG_FORMAT"            envDefault:"json"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`

	RateLimits RateLimits `envPrefix:"RATELIMIT_"`
}

// RateLimits overrides the httpx rate limit profiles.
type RateLimits struct {
	Strict   RateLimit `envPrefix:"STRICT_"`
	Moderate RateLimit `envPrefix:"MODERATE_"`
	Lenient  RateLimit `envPrefix:"LENIENT_"`
	Public   RateLimit `envPrefix:"PUBLIC_"`
}

// RateLimit fields left at zero keep the profile default.
type RateLimit struct {
	Requests  int `env:"REQUESTS"`
	WindowSec int `env:"WINDOW_SEC"`
	Burst     int `env:"BURST"`
}

func (l RateLimit) apply(def httpx.RateLimitConfig) httpx.RateLimitConfig {
	if l.Requests > 0 {
		def.RequestsPerWindow = l.Requests
	}
	if l.WindowSec > 0 {
		def.Window = time.Duration(l.WindowSec) * time.Second
	}
	if l.Burst > 0 {
		def.Burst = l.Burst
	}
	return def
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the service cannot run with.
func (c Config) Validate() error {
	var errs []error

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("VAULT_PORT out of range: %d", c.Port))
	}
	if c.DailyLimit <= 0 {
		errs = append(errs, fmt.Errorf("VAULT_DAILY_LIMIT must be positive: %d", c.DailyLimit))
	}
	if c.JWKSURL == "" && c.JWKSFile == "" {
		errs = append(errs, errors.New("one of VAULT_JWKS_URL or VAULT_JWKS_FILE is required"))
	}
	if c.JWKSURL != "" && c.JWKSFile != "" {
		errs = append(errs, errors.New("VAULT_JWKS_URL and VAULT_JWKS_FILE are mutually exclusive"))
	}
	if c.IsProduction() && c.MasterKeyFile == "" && c.MasterKey == "" {
		errs = append(errs, errors.New("a master key (VAULT_MASTER_KEY_FILE or VAULT_MASTER_KEY) is required in production"))
	}
	if c.IsProduction() && c.AdminSecret != "" {
		errs = append(errs, errors.New("VAULT_ADMIN_SECRET is not allowed in production, use VAULT_ADMIN_SECRET_HASH"))
	}

	return errors.Join(errs...)
}

// IsProduction reports whether ENV selects production.
func (c Config) IsProduction() bool {
	return c.Env == "prod" || c.Env == "production"
}

// ApplyRateLimits installs the configured overrides into httpx. It must run
// before routes are registered.
func (c Config) ApplyRateLimits() {
	httpx.StrictLimit = c.RateLimits.Strict.apply(httpx.StrictLimit)
	httpx.ModerateLimit = c.RateLimits.Moderate.apply(httpx.ModerateLimit)
	httpx.LenientLimit = c.RateLimits.Lenient.apply(httpx.LenientLimit)
	httpx.PublicLimit = c.RateLimits.Public.apply(httpx.PublicLimit)
}
