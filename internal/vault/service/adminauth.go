package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/accountvault/pkg/cryptox"
	"github.com/aussiebroadwan/accountvault/pkg/jwtx"
	"github.com/aussiebroadwan/accountvault/pkg/slogx"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// AdminScope lets an identity provider token stand in for the admin secret.
const AdminScope = "vault:admin"

var totpOpts = totp.ValidateOpts{
	Period:    30,
	Skew:      1,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

// AdminCredentials is what a caller presents for an admin operation.
type AdminCredentials struct {
	Password string
	OTP      string

	// Claims of a verified bearer token, nil for anonymous callers.
	Claims *jwtx.Claims
}

// AdminAuthenticator decides whether a caller may run admin operations.
// Either a token with AdminScope, or the shared secret (plus a TOTP code
// when one is configured) is accepted.
type AdminAuthenticator struct {
	secretHash string
	totpSecret string

	// Now defaults to time.Now.
	Now func() time.Time
}

// NewAdminAuthenticator takes an argon2id PHC hash of the admin secret, or
// the plaintext secret which is hashed here and then discarded. With neither
// set only AdminScope tokens are accepted.
func NewAdminAuthenticator(secretHash, plaintext, totpSecret string) (*AdminAuthenticator, error) {
	secretHash = strings.TrimSpace(secretHash)
	switch {
	case secretHash != "":
		if !cryptox.IsHash(secretHash) {
			return nil, fmt.Errorf("admin secret hash: %w", cryptox.ErrInvalidHash)
		}
	case plaintext != "":
		h, err := cryptox.HashSecret(plaintext)
		if err != nil {
			return nil, fmt.Errorf("hash admin secret: %w", err)
		}
		secretHash = h
	}

	totpSecret = strings.ToUpper(strings.TrimSpace(totpSecret))
	if totpSecret != "" && secretHash == "" {
		return nil, errors.New("admin totp secret set without an admin secret")
	}

	return &AdminAuthenticator{secretHash: secretHash, totpSecret: totpSecret}, nil
}

// SecretConfigured reports whether the shared secret path is enabled.
func (a *AdminAuthenticator) SecretConfigured() bool { return a.secretHash != "" }

// TOTPRequired reports whether a TOTP code must accompany the secret.
func (a *AdminAuthenticator) TOTPRequired() bool { return a.totpSecret != "" }

// Authorize returns nil when creds grant admin access and ErrUnauthenticated
// otherwise. The reason is logged, never returned.
func (a *AdminAuthenticator) Authorize(ctx context.Context, creds AdminCredentials) error {
	log := slogx.FromContext(ctx)

	if creds.Claims != nil && creds.Claims.HasScope(AdminScope) {
		log.Info("admin authorized by token", slog.String("subject", creds.Claims.Subject))
		return nil
	}

	if a.secretHash == "" {
		log.Warn("admin rejected: no admin secret configured and token lacks scope")
		return ErrUnauthenticated
	}
	if creds.Password == "" {
		log.Warn("admin rejected: missing password")
		return ErrUnauthenticated
	}

	if err := cryptox.VerifySecret(creds.Password, a.secretHash); err != nil {
		if !errors.Is(err, cryptox.ErrSecretMismatch) {
			log.Error("admin secret verification failed", slog.Any("error", err))
		} else {
			log.Warn("admin rejected: wrong password")
		}
		return ErrUnauthenticated
	}

	if a.totpSecret != "" {
		ok, err := totp.ValidateCustom(strings.TrimSpace(creds.OTP), a.totpSecret, a.now(), totpOpts)
		if err != nil || !ok {
			log.Warn("admin rejected: invalid otp")
			return ErrUnauthenticated
		}
	}

	log.Info("admin authorized by secret")
	return nil
}

func (a *AdminAuthenticator) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}
