package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/accountvault/pkg/jwtx/jwtxtest"
	"github.com/aussiebroadwan/accountvault/pkg/vaultsdk"
	"github.com/stretchr/testify/require"
)

func writeJWKS(t *testing.T, iss *jwtxtest.Issuer) string {
	t.Helper()
	doc, err := json.Marshal(iss.JWKS())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "jwks.json")
	require.NoError(t, os.WriteFile(path, doc, 0o600))
	return path
}

func TestNew_WiresEndToEnd(t *testing.T) {
	iss := jwtxtest.NewIssuer(t)
	dir := t.TempDir()

	app, err := New(Config{
		Port:         8080,
		DatabaseFile: filepath.Join(dir, "vault.db"),
		MasterKey:    "app-test-master-key",
		AdminSecret:  "letmein",
		JWTIssuer:    iss.Issuer,
		JWTAudience:  []string{iss.Audience},
		JWKSFile:     writeJWKS(t, iss),
		DailyLimit:   2,
		Env:          "test",
		LogLevel:     "error",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.db.Close() })

	h := app.Handler()
	send := func(method, path, token string, body any) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		req := httptest.NewRequest(method, path, &buf)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	rec := send(http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = send(http.MethodPost, "/v1/admin/operations", "", vaultsdk.AdminRequest{
		Action:   vaultsdk.ActionAddService,
		Password: "letmein",
		Data:     json.RawMessage(`{"name":"Alpha"}`),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var added vaultsdk.AddServiceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &added))

	rec = send(http.MethodPost, "/v1/admin/operations", "", vaultsdk.AdminRequest{
		Action:   vaultsdk.ActionBulkAddAccounts,
		Password: "letmein",
		Data:     json.RawMessage(`{"service_id":"` + added.Service.ID + `","text":"a@x.com:p1\nb@x.com:p2\nc@x.com:p3"}`),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	tok := iss.Token(t, "alice")
	for _, want := range []int{1, 0} {
		rec = send(http.MethodPost, "/v1/accounts/generate", tok, vaultsdk.GenerateAccountRequest{ServiceID: added.Service.ID})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var got vaultsdk.GenerateAccountResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Equal(t, want, got.Remaining)
	}

	// The configured limit of two applies.
	rec = send(http.MethodPost, "/v1/accounts/generate", tok, vaultsdk.GenerateAccountRequest{ServiceID: added.Service.ID})
	require.Equal(t, http.StatusTooManyRequests, rec.Code, rec.Body.String())
}

func TestNew_FailsWithoutKeys(t *testing.T) {
	_, err := New(Config{
		DatabaseFile: filepath.Join(t.TempDir(), "vault.db"),
		JWKSFile:     filepath.Join(t.TempDir(), "missing.json"),
		DailyLimit:   10,
		Env:          "test",
		LogLevel:     "error",
	})
	require.Error(t, err)
}

func TestNew_ProductionRequiresMasterKey(t *testing.T) {
	iss := jwtxtest.NewIssuer(t)
	_, err := New(Config{
		DatabaseFile: filepath.Join(t.TempDir(), "vault.db"),
		JWKSFile:     writeJWKS(t, iss),
		DailyLimit:   10,
		Env:          "prod",
		LogLevel:     "error",
	})
	require.ErrorContains(t, err, "master key")
}
