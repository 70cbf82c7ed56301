package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aussiebroadwan/accountvault/internal/vault/domain"
	"github.com/aussiebroadwan/accountvault/internal/vault/store"
)

type claimRecordsRepo struct {
	db dbtx
}

// AppendClaimRecord inserts rec. Inside a transaction the insert runs under a
// savepoint, so a failed insert leaves the earlier writes of the tx intact.
// If SQLite rolled the whole transaction back instead, the error wraps
// store.ErrTxAborted.
func (r *claimRecordsRepo) AppendClaimRecord(ctx context.Context, rec domain.ClaimRecord) error {
	if _, ok := r.db.(*sql.Tx); !ok {
		return r.insert(ctx, rec)
	}

	if _, err := r.db.ExecContext(ctx, `SAVEPOINT claim_record`); err != nil {
		return fmt.Errorf("append claim record: savepoint: %w", err)
	}

	if err := r.insert(ctx, rec); err != nil {
		if _, rbErr := r.db.ExecContext(ctx, `ROLLBACK TO SAVEPOINT claim_record`); rbErr != nil {
			return fmt.Errorf("%w: %w", store.ErrTxAborted, err)
		}
		if _, relErr := r.db.ExecContext(ctx, `RELEASE SAVEPOINT claim_record`); relErr != nil {
			return fmt.Errorf("%w: %w", store.ErrTxAborted, err)
		}
		return err
	}

	if _, err := r.db.ExecContext(ctx, `RELEASE SAVEPOINT claim_record`); err != nil {
		return fmt.Errorf("append claim record: release: %w", err)
	}
	return nil
}

func (r *claimRecordsRepo) insert(ctx context.Context, rec domain.ClaimRecord) error {
	const query = `
		INSERT INTO claim_records (id, user_id, credential_id, service_id, claimed_at)
		VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.UserID, rec.CredentialID, rec.ServiceID, formatTime(rec.ClaimedAt),
	)
	if err != nil {
		return fmt.Errorf("append claim record: %w", mapConstraint(err))
	}
	return nil
}

func (r *claimRecordsRepo) ListClaimRecordsByUser(ctx context.Context, userID string, limit int) ([]domain.ClaimRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	const query = `
		SELECT id, user_id, credential_id, service_id, claimed_at
		FROM claim_records
		WHERE user_id = ?
		ORDER BY claimed_at DESC, id DESC
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list claim records: %w", err)
	}
	defer rows.Close()

	var out []domain.ClaimRecord
	for rows.Next() {
		var (
			rec       domain.ClaimRecord
			claimedAt string
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.CredentialID, &rec.ServiceID, &claimedAt); err != nil {
			return nil, fmt.Errorf("scan claim record: %w", err)
		}
		if rec.ClaimedAt, err = parseTime(claimedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate claim records: %w", err)
	}
	return out, nil
}
