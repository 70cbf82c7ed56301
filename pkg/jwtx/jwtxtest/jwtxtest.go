// Package jwtxtest mints signed access tokens for tests. It plays the part
// of the external identity provider.
package jwtxtest

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"
	"time"

	"github.com/aussiebroadwan/accountvault/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultIssuer   = "https://id.test"
	DefaultAudience = "vault"
)

// Issuer signs EdDSA tokens with a throwaway key.
type Issuer struct {
	Kid      string
	Issuer   string
	Audience string

	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
}

// NewIssuer generates a fresh Ed25519 signing key.
func NewIssuer(tb testing.TB) *Issuer {
	tb.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		tb.Fatalf("jwtxtest: generate key: %v", err)
	}
	return &Issuer{
		Kid:      "test-key",
		Issuer:   DefaultIssuer,
		Audience: DefaultAudience,
		priv:     priv,
		pub:      pub,
	}
}

// JWKS returns the public half as a key set document.
func (i *Issuer) JWKS() jwtx.JWKS {
	return jwtx.JWKS{Keys: []jwtx.JWK{jwtx.NewEd25519JWK(i.Kid, i.pub)}}
}

// KeySet returns a KeySet loaded with the issuer's public key.
func (i *Issuer) KeySet(tb testing.TB) *jwtx.KeySet {
	tb.Helper()
	ks := jwtx.NewKeySet()
	if err := ks.ResetFromJWKS(i.JWKS()); err != nil {
		tb.Fatalf("jwtxtest: load keyset: %v", err)
	}
	return ks
}

// Verifier returns a verifier that accepts this issuer's tokens.
func (i *Issuer) Verifier(tb testing.TB) *jwtx.KeySetVerifier {
	tb.Helper()
	return jwtx.NewVerifier(i.KeySet(tb), jwtx.VerifyOptions{
		Issuer:   i.Issuer,
		Audience: []string{i.Audience},
		Leeway:   jwtx.DefaultLeeway,
	})
}

// Token mints a five minute token for subject with the given scopes.
func (i *Issuer) Token(tb testing.TB, subject string, scopes ...string) string {
	tb.Helper()
	now := time.Now().UTC()
	return i.Sign(tb, jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.Issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings{i.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(5 * time.Minute)),
		},
		Scopes: scopes,
	})
}

// Sign signs arbitrary claims with the issuer's key and kid.
func (i *Issuer) Sign(tb testing.TB, claims jwtx.Claims) string {
	tb.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	tok.Header["kid"] = i.Kid
	s, err := tok.SignedString(i.priv)
	if err != nil {
		tb.Fatalf("jwtxtest: sign: %v", err)
	}
	return s
}
