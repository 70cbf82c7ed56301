package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/accountvault/internal/vault/domain"
	"github.com/aussiebroadwan/accountvault/internal/vault/store"
	"github.com/aussiebroadwan/accountvault/internal/vault/store/drivers/sqlite"
	"github.com/aussiebroadwan/accountvault/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	sealer, err := cryptox.NewSealer([]byte("service-test-key"))
	require.NoError(t, err)

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "vault.db"), sealer)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

// fixedClock returns a settable clock.
type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

func newClock(s string) *fixedClock {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &fixedClock{t: t}
}

func seedService(t *testing.T, inv *Inventory, name string, pairs ...string) domain.Service {
	t.Helper()
	ctx := context.Background()

	svc, err := inv.AddService(ctx, NewService{Name: name})
	require.NoError(t, err)

	for i := 0; i+1 < len(pairs); i += 2 {
		_, err := inv.AddCredential(ctx, svc.ID, pairs[i], pairs[i+1])
		require.NoError(t, err)
	}
	return svc
}

func stats(t *testing.T, s store.Store) domain.InventoryStats {
	t.Helper()
	st, err := s.Stats().InventoryStats(context.Background())
	require.NoError(t, err)
	return st
}

// flakyQuotaStore makes the quota compare-and-set lose a fixed number of
// times, as if another claim by the same user committed in between.
type flakyQuotaStore struct {
	store.Store
	losses int
}

func (s *flakyQuotaStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		return fn(&flakyTx{innerTx: tx, parent: s})
	})
}

// innerTx avoids a promoted field named Tx shadowing the Tx method.
type innerTx = store.Tx

type flakyTx struct {
	innerTx
	parent *flakyQuotaStore
}

func (t *flakyTx) QuotaProfiles() store.QuotaProfiles {
	return &flakyQuota{QuotaProfiles: t.innerTx.QuotaProfiles(), parent: t.parent}
}

type flakyQuota struct {
	store.QuotaProfiles
	parent *flakyQuotaStore
}

func (q *flakyQuota) CompareAndSetQuota(ctx context.Context, prev, next domain.QuotaProfile) (bool, error) {
	if q.parent.losses > 0 {
		q.parent.losses--
		return false, nil
	}
	return q.QuotaProfiles.CompareAndSetQuota(ctx, prev, next)
}

// failingAuditStore makes every claim record insert inside a transaction
// fail with err.
type failingAuditStore struct {
	store.Store
	err error
}

func (s *failingAuditStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		return fn(&failingAuditTx{innerTx: tx, err: s.err})
	})
}

type failingAuditTx struct {
	innerTx
	err error
}

func (t *failingAuditTx) ClaimRecords() store.ClaimRecords {
	return &failingClaimRecords{ClaimRecords: t.innerTx.ClaimRecords(), err: t.err}
}

type failingClaimRecords struct {
	store.ClaimRecords
	err error
}

func (r *failingClaimRecords) AppendClaimRecord(context.Context, domain.ClaimRecord) error {
	return r.err
}
