package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/accountvault/internal/vault/store"
	"github.com/aussiebroadwan/accountvault/pkg/cryptox"
)

type txStore struct {
	tx     *sql.Tx
	sealer *cryptox.Sealer
}

func newTx(tx *sql.Tx, sealer *cryptox.Sealer) *txStore {
	return &txStore{tx: tx, sealer: sealer}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op; the caller commits or rolls back and the outer DB stays open.
func (t *txStore) Close() error { return nil }

// Ping is a no-op, the transaction already holds a live connection.
func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported.
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Services() store.Services { return &servicesRepo{db: t.tx} }
func (t *txStore) Credentials() store.Credentials {
	return &credentialsRepo{db: t.tx, sealer: t.sealer}
}
func (t *txStore) QuotaProfiles() store.QuotaProfiles { return &quotaProfilesRepo{db: t.tx} }
func (t *txStore) ClaimRecords() store.ClaimRecords   { return &claimRecordsRepo{db: t.tx} }
func (t *txStore) Stats() store.Stats                 { return &statsRepo{db: t.tx} }

// ApplyMigrations is a no-op; migrations run before any transaction.
func (t *txStore) ApplyMigrations() error { return nil }
