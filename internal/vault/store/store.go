package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/accountvault/internal/vault/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrTxAborted reports that the database abandoned the surrounding
	// transaction. Nothing written in it survives and the tx must not be used.
	ErrTxAborted = errors.New("store: transaction aborted")
)

// Store is the root data access interface. Concrete drivers implement this.
// It exposes sub-repositories to keep concerns tidy and testable, and so a
// transaction cannot be opened from inside another one.
type Store interface {
	Services() Services
	Credentials() Credentials
	QuotaProfiles() QuotaProfiles
	ClaimRecords() ClaimRecords
	Stats() Stats

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. Inside fn only
	// the tx argument may be used for data access.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Services interface {
	// CreateService inserts a new service (id is provided by app via ULID).
	CreateService(ctx context.Context, s domain.Service) error

	// GetService returns a service by id, active or not.
	GetService(ctx context.Context, id string) (domain.Service, error)

	// DeleteService removes a service and cascades to its credentials.
	// ClaimRecords are untouched. Returns ErrNotFound if nothing was deleted.
	DeleteService(ctx context.Context, id string) error

	// ListServices returns every service with inventory counts, newest first.
	ListServices(ctx context.Context) ([]domain.ServiceSummary, error)

	// ListActiveServices is ListServices restricted to active services.
	ListActiveServices(ctx context.Context) ([]domain.ServiceSummary, error)
}

type Credentials interface {
	// CreateCredential seals the secret and inserts an unclaimed credential.
	CreateCredential(ctx context.Context, c domain.Credential) error

	// SelectUnclaimed returns any unclaimed credential for the service with
	// its secret opened. Returns ErrNotFound when the service is exhausted.
	SelectUnclaimed(ctx context.Context, serviceID string) (domain.Credential, error)

	// ClaimIfUnclaimed flips claimed to true only if it is still false. It
	// reports false when another claimer got there first.
	ClaimIfUnclaimed(ctx context.Context, id, userID string, at time.Time) (bool, error)

	// GetCredential returns a credential by id with its secret opened.
	GetCredential(ctx context.Context, id string) (domain.Credential, error)
}

type QuotaProfiles interface {
	// EnsureQuotaProfile returns the user's profile, creating a zero profile
	// if none exists.
	EnsureQuotaProfile(ctx context.Context, userID string) (domain.QuotaProfile, error)

	// GetQuotaProfile returns ErrNotFound for users that never claimed.
	GetQuotaProfile(ctx context.Context, userID string) (domain.QuotaProfile, error)

	// CompareAndSetQuota writes next only if the stored row still equals
	// prev. It reports false when the row changed underneath the caller.
	CompareAndSetQuota(ctx context.Context, prev, next domain.QuotaProfile) (bool, error)
}

type ClaimRecords interface {
	// AppendClaimRecord writes an audit entry. Records are never updated.
	AppendClaimRecord(ctx context.Context, r domain.ClaimRecord) error

	// ListClaimRecordsByUser returns the user's claims, newest first.
	ListClaimRecordsByUser(ctx context.Context, userID string, limit int) ([]domain.ClaimRecord, error)
}

type Stats interface {
	// InventoryStats counts services, credentials and registered users.
	InventoryStats(ctx context.Context) (domain.InventoryStats, error)
}
