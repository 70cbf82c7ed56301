package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/accountvault/internal/vault/service"
	"github.com/aussiebroadwan/accountvault/pkg/cryptox"
	"github.com/aussiebroadwan/accountvault/pkg/jwtx"
)

// InitVerifier loads the identity provider's key set and returns a verifier
// over it, plus the refresher that keeps it current.
//
// Key sources:
//   - VAULT_JWKS_URL: fetched over HTTP on every refresh.
//   - VAULT_JWKS_FILE: re-read from disk on every refresh, so replacing the
//     file rotates keys without a restart.
//
// The first load is synchronous and must succeed; later refresh failures
// keep the previous keys.
func InitVerifier(ctx context.Context, cfg Config, logger *slog.Logger) (*jwtx.KeySet, jwtx.Verifier, *service.KeyRefresher, error) {
	var source service.JWKSSource
	if cfg.JWKSURL != "" {
		source = jwtx.NewJWKSFetcher(cfg.JWKSURL)
		logger.Info("using remote jwks", "url", cfg.JWKSURL)
	} else {
		source = service.JWKSFile{Path: cfg.JWKSFile}
		logger.Info("using jwks file", "path", cfg.JWKSFile)
	}

	keys := jwtx.NewKeySet()
	refresher := service.NewKeyRefresher(source, keys, logger, cfg.JWKSRefreshInterval)
	if err := refresher.Refresh(ctx); err != nil {
		return nil, nil, nil, fmt.Errorf("initial key load: %w", err)
	}
	logger.Info("identity provider keys loaded", "keys", keys.Len())

	if cfg.JWTIssuer == "" {
		logger.Warn("VAULT_JWT_ISSUER is not set, tokens from any issuer signed by these keys are accepted")
	}
	verifier := jwtx.NewVerifier(keys, jwtx.VerifyOptions{
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		Leeway:   jwtx.DefaultLeeway,
	})

	return keys, verifier, refresher, nil
}

// InitSealer builds the sealer for stored secrets. Outside production a
// missing master key falls back to an ephemeral one.
func InitSealer(cfg Config, logger *slog.Logger) (*cryptox.Sealer, error) {
	material, ok, err := cryptox.LoadMasterKey(cfg.MasterKeyFile, cfg.MasterKey)
	if err != nil {
		return nil, err
	}

	if !ok {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("master key is required in production")
		}
		logger.Warn("no master key configured, using an ephemeral key: stored secrets will be unreadable after restart")
		material, err = cryptox.EphemeralMasterKey()
		if err != nil {
			return nil, err
		}
	}

	return cryptox.NewSealer(material)
}

// InitAdminAuth builds the admin authenticator from the configured secrets.
func InitAdminAuth(cfg Config, logger *slog.Logger) (*service.AdminAuthenticator, error) {
	auth, err := service.NewAdminAuthenticator(cfg.AdminSecretHash, cfg.AdminSecret, cfg.AdminTOTPSecret)
	if err != nil {
		return nil, fmt.Errorf("admin authenticator: %w", err)
	}

	switch {
	case !auth.SecretConfigured():
		logger.Warn("no admin secret configured, admin operations need a token with the vault:admin scope")
	case auth.TOTPRequired():
		logger.Info("admin secret configured with totp")
	default:
		logger.Info("admin secret configured")
	}
	return auth, nil
}
