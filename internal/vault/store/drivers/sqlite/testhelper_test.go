package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/accountvault/pkg/cryptox"
)

// setupTestStore opens a migrated store on a fresh file in t.TempDir.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	sealer, err := cryptox.NewSealer([]byte("test-master-key"))
	if err != nil {
		t.Fatalf("create sealer: %v", err)
	}

	s, err := NewStore(filepath.Join(t.TempDir(), "vault.db"), sealer)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	if err := s.ApplyMigrations(); err != nil {
		_ = s.Close()
		t.Fatalf("run migrations: %v", err)
	}

	t.Cleanup(func() { _ = s.Close() })
	return s
}
