package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aussiebroadwan/accountvault/internal/vault/domain"
	"github.com/aussiebroadwan/accountvault/pkg/cryptox"
)

type credentialsRepo struct {
	db     dbtx
	sealer *cryptox.Sealer
}

func (r *credentialsRepo) CreateCredential(ctx context.Context, c domain.Credential) error {
	sealed, err := r.sealer.Seal([]byte(c.Secret))
	if err != nil {
		return fmt.Errorf("seal secret: %w", err)
	}

	const query = `
		INSERT INTO credentials (id, service_id, login, secret, claimed, created_at)
		VALUES (?, ?, ?, ?, 0, ?)`

	_, err = r.db.ExecContext(ctx, query, c.ID, c.ServiceID, c.Login, sealed, formatTime(c.CreatedAt))
	if err != nil {
		return fmt.Errorf("create credential: %w", mapConstraint(err))
	}
	return nil
}

// SelectUnclaimed hands out the oldest unclaimed credential first.
func (r *credentialsRepo) SelectUnclaimed(ctx context.Context, serviceID string) (domain.Credential, error) {
	const query = `
		SELECT id, service_id, login, secret, claimed, claimed_by, claimed_at, created_at
		FROM credentials
		WHERE service_id = ? AND claimed = 0
		ORDER BY created_at, id
		LIMIT 1`

	return r.scanOne(r.db.QueryRowContext(ctx, query, serviceID))
}

func (r *credentialsRepo) GetCredential(ctx context.Context, id string) (domain.Credential, error) {
	const query = `
		SELECT id, service_id, login, secret, claimed, claimed_by, claimed_at, created_at
		FROM credentials
		WHERE id = ?`

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *credentialsRepo) ClaimIfUnclaimed(ctx context.Context, id, userID string, at time.Time) (bool, error) {
	const query = `
		UPDATE credentials
		SET claimed = 1, claimed_by = ?, claimed_at = ?
		WHERE id = ? AND claimed = 0`

	res, err := r.db.ExecContext(ctx, query, userID, formatTime(at), id)
	if err != nil {
		return false, fmt.Errorf("claim credential: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("claim credential: %w", err)
	}
	return n == 1, nil
}

func (r *credentialsRepo) scanOne(row *sql.Row) (domain.Credential, error) {
	var (
		c         domain.Credential
		sealed    []byte
		claimedBy sql.NullString
		claimedAt sql.NullString
		createdAt string
	)
	if err := row.Scan(&c.ID, &c.ServiceID, &c.Login, &sealed, &c.Claimed, &claimedBy, &claimedAt, &createdAt); err != nil {
		return domain.Credential{}, mapNotFound(err)
	}

	secret, err := r.sealer.Open(sealed)
	if err != nil {
		return domain.Credential{}, fmt.Errorf("open secret for credential %s: %w", c.ID, err)
	}
	c.Secret = string(secret)
	c.ClaimedBy = mapNullString(claimedBy)

	if claimedAt.Valid {
		t, err := parseTime(claimedAt.String)
		if err != nil {
			return domain.Credential{}, err
		}
		c.ClaimedAt = &t
	}
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Credential{}, err
	}
	return c, nil
}
