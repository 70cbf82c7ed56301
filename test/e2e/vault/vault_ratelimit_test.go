//go:build e2e

package vault_test

import (
	"errors"
	"testing"

	"github.com/aussiebroadwan/accountvault/pkg/jwtx/jwtxtest"
	"github.com/aussiebroadwan/accountvault/pkg/vaultsdk"
	"github.com/stretchr/testify/require"
)

// TestAdminRateLimit verifies the strict per-IP limit on admin operations
// when running with default limits.
func TestAdminRateLimit(t *testing.T) {
	baseURL := setupVaultContainer(t, jwtxtest.NewIssuer(t), map[string]string{
		"RATELIMIT_STRICT_REQUESTS":   "",
		"RATELIMIT_STRICT_WINDOW_SEC": "",
		"RATELIMIT_STRICT_BURST":      "",
	})
	admin := vaultsdk.NewClient(baseURL).Admin("wrong", "")

	var limited bool
	for range 30 {
		_, err := admin.GetStats(t.Context())
		if errors.Is(err, vaultsdk.ErrRateLimited) {
			limited = true
			break
		}
		require.ErrorIs(t, err, vaultsdk.ErrUnauthenticated)
	}
	require.True(t, limited, "expected the strict limiter to kick in")
}

