package sqlite

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/accountvault/internal/vault/domain"
)

type statsRepo struct {
	db dbtx
}

func (r *statsRepo) InventoryStats(ctx context.Context) (domain.InventoryStats, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM services),
			(SELECT COUNT(*) FROM credentials),
			(SELECT COUNT(*) FROM credentials WHERE claimed = 0),
			(SELECT COUNT(*) FROM quota_profiles)`

	var s domain.InventoryStats
	if err := r.db.QueryRowContext(ctx, query).Scan(&s.Services, &s.Credentials, &s.Unclaimed, &s.Users); err != nil {
		return domain.InventoryStats{}, fmt.Errorf("inventory stats: %w", err)
	}
	return s, nil
}
