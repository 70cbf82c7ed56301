package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/accountvault/pkg/httpx"
	"github.com/aussiebroadwan/accountvault/pkg/jwtx/jwtxtest"
	"github.com/aussiebroadwan/accountvault/pkg/vaultsdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccount_AlphaScenario(t *testing.T) {
	h := newHarness(t)
	svcID := h.addService("Alpha", "u1", "pw1")

	alice := h.issuer.Token(t, "alice")
	rec := h.do(http.MethodPost, "/v1/accounts/generate", alice, vaultsdk.GenerateAccountRequest{ServiceID: svcID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var got vaultsdk.GenerateAccountResponse
	decode(t, rec, &got)
	assert.Equal(t, vaultsdk.GenerateAccountResponse{Email: "u1", Password: "pw1", Remaining: 9}, got)

	bob := h.issuer.Token(t, "bob")
	rec = h.do(http.MethodPost, "/v1/accounts/generate", bob, vaultsdk.GenerateAccountRequest{ServiceID: svcID})
	requireError(t, rec, http.StatusNotFound, httpx.ErrKindNoInventory)
}

func TestGenerateAccount_QuotaExceeded(t *testing.T) {
	h := newHarness(t)

	pairs := make([]string, 0, 24)
	for i := range 12 {
		pairs = append(pairs, fmt.Sprintf("user%d@example.com", i), "pw")
	}
	svcID := h.addService("Beta", pairs...)

	tok := h.issuer.Token(t, "carol")
	for i := range 10 {
		rec := h.do(http.MethodPost, "/v1/accounts/generate", tok, vaultsdk.GenerateAccountRequest{ServiceID: svcID})
		require.Equal(t, http.StatusOK, rec.Code, "claim %d: %s", i, rec.Body.String())
	}

	rec := h.do(http.MethodPost, "/v1/accounts/generate", tok, vaultsdk.GenerateAccountRequest{ServiceID: svcID})
	requireError(t, rec, http.StatusTooManyRequests, httpx.ErrKindQuotaExceeded)
}

func TestGenerateAccount_Rejections(t *testing.T) {
	h := newHarness(t)
	svcID := h.addService("Gamma", "u1", "pw1")
	tok := h.issuer.Token(t, "dave")

	t.Run("no token", func(t *testing.T) {
		rec := h.do(http.MethodPost, "/v1/accounts/generate", "", vaultsdk.GenerateAccountRequest{ServiceID: svcID})
		requireError(t, rec, http.StatusUnauthorized, httpx.ErrKindUnauthenticated)
		assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")
	})

	t.Run("foreign token", func(t *testing.T) {
		other := jwtxtest.NewIssuer(t)
		rec := h.do(http.MethodPost, "/v1/accounts/generate", other.Token(t, "dave"), vaultsdk.GenerateAccountRequest{ServiceID: svcID})
		requireError(t, rec, http.StatusUnauthorized, httpx.ErrKindUnauthenticated)
	})

	t.Run("missing service id", func(t *testing.T) {
		rec := h.do(http.MethodPost, "/v1/accounts/generate", tok, vaultsdk.GenerateAccountRequest{})
		requireError(t, rec, http.StatusBadRequest, httpx.ErrKindInvalidRequest)
	})

	t.Run("empty body", func(t *testing.T) {
		rec := h.do(http.MethodPost, "/v1/accounts/generate", tok, nil)
		requireError(t, rec, http.StatusBadRequest, httpx.ErrKindInvalidRequest)
	})

	t.Run("unknown service", func(t *testing.T) {
		rec := h.do(http.MethodPost, "/v1/accounts/generate", tok, vaultsdk.GenerateAccountRequest{ServiceID: "01HZZZZZZZZZZZZZZZZZZZZZZZ"})
		requireError(t, rec, http.StatusNotFound, httpx.ErrKindNoInventory)
	})
}
