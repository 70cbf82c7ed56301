package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aussiebroadwan/accountvault/internal/vault/domain"
)

type quotaProfilesRepo struct {
	db dbtx
}

func (r *quotaProfilesRepo) EnsureQuotaProfile(ctx context.Context, userID string) (domain.QuotaProfile, error) {
	const insert = `
		INSERT INTO quota_profiles (user_id, claimed_today, last_claim_date)
		VALUES (?, 0, NULL)
		ON CONFLICT (user_id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, insert, userID); err != nil {
		return domain.QuotaProfile{}, fmt.Errorf("ensure quota profile: %w", err)
	}
	return r.GetQuotaProfile(ctx, userID)
}

func (r *quotaProfilesRepo) GetQuotaProfile(ctx context.Context, userID string) (domain.QuotaProfile, error) {
	const query = `
		SELECT user_id, claimed_today, last_claim_date
		FROM quota_profiles WHERE user_id = ?`

	var (
		p    domain.QuotaProfile
		last sql.NullString
	)
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&p.UserID, &p.ClaimedToday, &last); err != nil {
		return domain.QuotaProfile{}, mapNotFound(err)
	}
	p.LastClaimDate = mapNullString(last)
	return p, nil
}

// CompareAndSetQuota uses IS so a NULL last_claim_date compares equal to an
// empty prev.LastClaimDate.
func (r *quotaProfilesRepo) CompareAndSetQuota(ctx context.Context, prev, next domain.QuotaProfile) (bool, error) {
	const query = `
		UPDATE quota_profiles
		SET claimed_today = ?, last_claim_date = ?
		WHERE user_id = ? AND claimed_today = ? AND last_claim_date IS ?`

	res, err := r.db.ExecContext(ctx, query,
		next.ClaimedToday,
		mapStringNull(next.LastClaimDate),
		prev.UserID,
		prev.ClaimedToday,
		mapStringNull(prev.LastClaimDate),
	)
	if err != nil {
		return false, fmt.Errorf("update quota profile: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update quota profile: %w", err)
	}
	return n == 1, nil
}
