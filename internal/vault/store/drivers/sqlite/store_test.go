package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/accountvault/internal/vault/domain"
	"github.com/aussiebroadwan/accountvault/internal/vault/store"
	"github.com/aussiebroadwan/accountvault/pkg/idx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// seeded spaces out seeded services so listings have a strict order.
var seeded int

func seedService(t *testing.T, s *Store, name string, active bool) domain.Service {
	t.Helper()
	seeded++
	svc := domain.Service{ID: idx.New().String(), Name: name, Active: active, CreatedAt: testNow.Add(time.Duration(seeded) * time.Millisecond)}
	require.NoError(t, s.Services().CreateService(context.Background(), svc))
	return svc
}

func seedCredential(t *testing.T, s *Store, serviceID, login, secret string) domain.Credential {
	t.Helper()
	c := domain.Credential{ID: idx.New().String(), ServiceID: serviceID, Login: login, Secret: secret, CreatedAt: testNow}
	require.NoError(t, s.Credentials().CreateCredential(context.Background(), c))
	return c
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.ApplyMigrations())
}

func TestServices_CreateGetDelete(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	svc := domain.Service{
		ID:          idx.New().String(),
		Name:        "Alpha",
		Icon:        "🅰",
		Description: "first",
		Active:      true,
		CreatedAt:   testNow,
	}
	require.NoError(t, s.Services().CreateService(ctx, svc))

	got, err := s.Services().GetService(ctx, svc.ID)
	require.NoError(t, err)
	assert.Equal(t, svc, got)

	err = s.Services().CreateService(ctx, svc)
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	require.NoError(t, s.Services().DeleteService(ctx, svc.ID))
	_, err = s.Services().GetService(ctx, svc.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, s.Services().DeleteService(ctx, svc.ID), store.ErrNotFound)
}

func TestServices_ListNewestFirstWithCounts(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	older := seedService(t, s, "Older", true)
	hidden := seedService(t, s, "Hidden", false)
	newer := seedService(t, s, "Newer", true)

	seedCredential(t, s, older.ID, "a", "1")
	c := seedCredential(t, s, older.ID, "b", "2")
	ok, err := s.Credentials().ClaimIfUnclaimed(ctx, c.ID, "user-1", testNow)
	require.NoError(t, err)
	require.True(t, ok)

	all, err := s.Services().ListServices(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{newer.ID, hidden.ID, older.ID}, []string{all[0].ID, all[1].ID, all[2].ID})
	assert.Equal(t, 2, all[2].Total)
	assert.Equal(t, 1, all[2].Available)
	assert.Equal(t, 0, all[0].Total)

	active, err := s.Services().ListActiveServices(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	for _, a := range active {
		assert.True(t, a.Active)
	}
}

func TestServices_ListOrdersByCreationTime(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	// Ids deliberately sort opposite to creation time, and one timestamp
	// has no fractional part.
	first := domain.Service{ID: idx.NewAt(testNow.Add(time.Hour)).String(), Name: "First", Active: true, CreatedAt: testNow}
	second := domain.Service{ID: idx.NewAt(testNow).String(), Name: "Second", Active: true, CreatedAt: testNow.Add(100 * time.Millisecond)}
	require.NoError(t, s.Services().CreateService(ctx, first))
	require.NoError(t, s.Services().CreateService(ctx, second))

	all, err := s.Services().ListServices(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, []string{second.ID, first.ID}, []string{all[0].ID, all[1].ID})
	assert.Equal(t, second.CreatedAt, all[0].CreatedAt)
}

func TestCredentials_SecretIsSealedAtRest(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	svc := seedService(t, s, "Alpha", true)
	c := seedCredential(t, s, svc.ID, "u1", "pw1")

	var raw []byte
	require.NoError(t, s.db.QueryRowContext(ctx, `SELECT secret FROM credentials WHERE id = ?`, c.ID).Scan(&raw))
	assert.NotContains(t, string(raw), "pw1")

	got, err := s.Credentials().GetCredential(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "pw1", got.Secret)
	assert.False(t, got.Claimed)
	assert.Nil(t, got.ClaimedAt)
}

func TestCredentials_ClaimIsCompareAndSet(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	svc := seedService(t, s, "Alpha", true)
	c := seedCredential(t, s, svc.ID, "u1", "pw1")

	sel, err := s.Credentials().SelectUnclaimed(ctx, svc.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, sel.ID)
	assert.Equal(t, "pw1", sel.Secret)

	ok, err := s.Credentials().ClaimIfUnclaimed(ctx, c.ID, "alice", testNow)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.Credentials().ClaimIfUnclaimed(ctx, c.ID, "bob", testNow.Add(time.Second))
	require.NoError(t, err)
	require.False(t, ok, "second claim must lose")

	got, err := s.Credentials().GetCredential(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, got.Claimed)
	assert.Equal(t, "alice", got.ClaimedBy)
	require.NotNil(t, got.ClaimedAt)
	assert.Equal(t, testNow, *got.ClaimedAt)

	_, err = s.Credentials().SelectUnclaimed(ctx, svc.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCredentials_ClaimedRowIsFrozen(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	svc := seedService(t, s, "Alpha", true)
	c := seedCredential(t, s, svc.ID, "u1", "pw1")
	_, err := s.Credentials().ClaimIfUnclaimed(ctx, c.ID, "alice", testNow)
	require.NoError(t, err)

	_, err = s.db.ExecContext(ctx, `UPDATE credentials SET claimed_by = 'mallory' WHERE id = ?`, c.ID)
	require.Error(t, err)
}

func TestDeleteServiceCascadesButKeepsAudit(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	svc := seedService(t, s, "Alpha", true)
	c := seedCredential(t, s, svc.ID, "u1", "pw1")
	require.NoError(t, s.ClaimRecords().AppendClaimRecord(ctx, domain.ClaimRecord{
		ID: idx.New().String(), UserID: "alice", CredentialID: c.ID, ServiceID: svc.ID, ClaimedAt: testNow,
	}))

	require.NoError(t, s.Services().DeleteService(ctx, svc.ID))

	_, err := s.Credentials().GetCredential(ctx, c.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	recs, err := s.ClaimRecords().ListClaimRecordsByUser(ctx, "alice", 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, c.ID, recs[0].CredentialID)
}

func TestClaimRecordsAreAppendOnly(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	rec := domain.ClaimRecord{ID: idx.New().String(), UserID: "alice", CredentialID: "c", ServiceID: "s", ClaimedAt: testNow}
	require.NoError(t, s.ClaimRecords().AppendClaimRecord(ctx, rec))

	_, err := s.db.ExecContext(ctx, `DELETE FROM claim_records WHERE id = ?`, rec.ID)
	require.Error(t, err)
	_, err = s.db.ExecContext(ctx, `UPDATE claim_records SET user_id = 'bob' WHERE id = ?`, rec.ID)
	require.Error(t, err)
}

func TestQuotaProfiles_EnsureAndCompareAndSet(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	_, err := s.QuotaProfiles().GetQuotaProfile(ctx, "alice")
	require.ErrorIs(t, err, store.ErrNotFound)

	p, err := s.QuotaProfiles().EnsureQuotaProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.QuotaProfile{UserID: "alice"}, p)

	// Ensuring again must not reset anything.
	next := domain.QuotaProfile{UserID: "alice", ClaimedToday: 1, LastClaimDate: "2024-05-01"}
	ok, err := s.QuotaProfiles().CompareAndSetQuota(ctx, p, next)
	require.NoError(t, err)
	require.True(t, ok)

	again, err := s.QuotaProfiles().EnsureQuotaProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, next, again)

	// A stale prev loses.
	ok, err = s.QuotaProfiles().CompareAndSetQuota(ctx, p, domain.QuotaProfile{UserID: "alice", ClaimedToday: 5, LastClaimDate: "2024-05-01"})
	require.NoError(t, err)
	require.False(t, ok)

	got, err := s.QuotaProfiles().GetQuotaProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, next, got)
}

func TestStats(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	a := seedService(t, s, "Alpha", true)
	b := seedService(t, s, "Beta", false)
	seedCredential(t, s, a.ID, "1", "x")
	seedCredential(t, s, b.ID, "2", "y")
	c := seedCredential(t, s, b.ID, "3", "z")
	_, err := s.Credentials().ClaimIfUnclaimed(ctx, c.ID, "alice", testNow)
	require.NoError(t, err)
	_, err = s.QuotaProfiles().EnsureQuotaProfile(ctx, "alice")
	require.NoError(t, err)

	stats, err := s.Stats().InventoryStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.InventoryStats{Services: 2, Credentials: 3, Unclaimed: 2, Users: 1}, stats)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	var id string
	err := s.WithTx(ctx, func(tx store.Tx) error {
		id = idx.New().String()
		if err := tx.Services().CreateService(ctx, domain.Service{ID: id, Name: "Ghost", Active: true, CreatedAt: testNow}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Services().GetService(ctx, id)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestTxStore_NoNesting(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	err := s.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Tx(ctx)
		return err
	})
	require.Error(t, err)
}

func TestClaimRecords_FailedInsertKeepsEarlierTxWrites(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	svc := seedService(t, s, "Alpha", true)
	c := seedCredential(t, s, svc.ID, "u1", "pw1")

	_, err := s.db.ExecContext(ctx, `
		CREATE TRIGGER claim_records_reject BEFORE INSERT ON claim_records
		BEGIN SELECT RAISE(ABORT, 'audit rejected'); END`)
	require.NoError(t, err)

	err = s.WithTx(ctx, func(tx store.Tx) error {
		ok, err := tx.Credentials().ClaimIfUnclaimed(ctx, c.ID, "alice", testNow)
		require.NoError(t, err)
		require.True(t, ok)

		err = tx.ClaimRecords().AppendClaimRecord(ctx, domain.ClaimRecord{
			ID: idx.New().String(), UserID: "alice", CredentialID: c.ID, ServiceID: svc.ID, ClaimedAt: testNow,
		})
		require.Error(t, err)
		require.NotErrorIs(t, err, store.ErrTxAborted)

		p, err := tx.QuotaProfiles().EnsureQuotaProfile(ctx, "alice")
		if err != nil {
			return err
		}
		_, err = tx.QuotaProfiles().CompareAndSetQuota(ctx, p, domain.QuotaProfile{
			UserID: "alice", ClaimedToday: 1, LastClaimDate: "2024-05-01",
		})
		return err
	})
	require.NoError(t, err)

	got, err := s.Credentials().GetCredential(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, got.Claimed)

	p, err := s.QuotaProfiles().GetQuotaProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, p.ClaimedToday)
}

func TestClaimRecords_ReportsAbortedTx(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	svc := seedService(t, s, "Alpha", true)
	c := seedCredential(t, s, svc.ID, "u1", "pw1")

	_, err := s.db.ExecContext(ctx, `
		CREATE TRIGGER claim_records_rollback BEFORE INSERT ON claim_records
		BEGIN SELECT RAISE(ROLLBACK, 'audit rolled back'); END`)
	require.NoError(t, err)

	err = s.WithTx(ctx, func(tx store.Tx) error {
		ok, err := tx.Credentials().ClaimIfUnclaimed(ctx, c.ID, "alice", testNow)
		require.NoError(t, err)
		require.True(t, ok)

		return tx.ClaimRecords().AppendClaimRecord(ctx, domain.ClaimRecord{
			ID: idx.New().String(), UserID: "alice", CredentialID: c.ID, ServiceID: svc.ID, ClaimedAt: testNow,
		})
	})
	require.ErrorIs(t, err, store.ErrTxAborted)

	got, err := s.Credentials().GetCredential(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, got.Claimed, "the whole transaction was rolled back")
}
