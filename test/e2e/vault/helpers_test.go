//go:build e2e

package vault_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/accountvault/pkg/jwtx/jwtxtest"
	"github.com/aussiebroadwan/accountvault/pkg/vaultsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for vault end-to-end tests.
 * The container trusts a throwaway issuer whose JWKS is copied in as a file,
 * so tests can mint user and admin tokens locally.
 */

const (
	testImageName = "accountvault-test:latest"

	adminPassword = "Admin123!"
	dailyLimit    = "3"
	jwksPath      = "/tmp/jwks.json"
)

// TestMain builds the Docker image once before all tests and removes it after.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building vault Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up vault Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/vault/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	_ = exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName).Run()
}

// vaultEnv is the container environment with relaxed rate limits. Tests
// that exercise rate limiting pass overrides to remove them again.
func vaultEnv() map[string]string {
	return map[string]string{
		"VAULT_JWT_ISSUER":    jwtxtest.DefaultIssuer,
		"VAULT_JWT_AUDIENCE":  jwtxtest.DefaultAudience,
		"VAULT_JWKS_FILE":     jwksPath,
		"VAULT_ADMIN_SECRET":  adminPassword,
		"VAULT_MASTER_KEY":    "e2e-master-key-0123456789abcdef",
		"VAULT_DAILY_LIMIT":   dailyLimit,
		"ENV":                 "test",
		"LOG_LEVEL":           "info",
		"LOG_FORMAT":          "json",
		"VAULT_DATABASE_FILE": "/data/vault.db",

		"RATELIMIT_STRICT_REQUESTS":   "1000",
		"RATELIMIT_STRICT_WINDOW_SEC": "60",
		"RATELIMIT_STRICT_BURST":      "1000",
		"RATELIMIT_MODERATE_REQUESTS": "1000",
		"RATELIMIT_MODERATE_BURST":    "1000",
	}
}

// setupVaultContainer starts the vault trusting iss and returns its base URL.
func setupVaultContainer(t *testing.T, iss *jwtxtest.Issuer, overrides map[string]string) string {
	t.Helper()
	ctx := context.Background()

	jwks, err := json.Marshal(iss.JWKS())
	require.NoError(t, err)

	env := vaultEnv()
	for k, v := range overrides {
		if v == "" {
			delete(env, k)
			continue
		}
		env[k] = v
	}

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		Files: []testcontainers.ContainerFile{{
			Reader:            bytes.NewReader(jwks),
			ContainerFilePath: jwksPath,
			FileMode:          0o644,
		}},
		WaitingFor: wait.ForHTTP("/readyz").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)
	host, err := container.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
}

// seedService creates a service holding the given "login:secret" lines.
func seedService(t *testing.T, admin *vaultsdk.Admin, name, lines string) vaultsdk.ServiceInfo {
	t.Helper()

	svc, err := admin.AddService(t.Context(), vaultsdk.AddServiceData{Name: name})
	require.NoError(t, err)

	if lines != "" {
		_, err = admin.BulkAddAccounts(t.Context(), vaultsdk.BulkAddAccountsData{ServiceID: svc.ID, Text: lines})
		require.NoError(t, err)
	}
	return *svc
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *vaultsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
