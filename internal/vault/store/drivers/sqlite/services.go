package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aussiebroadwan/accountvault/internal/vault/domain"
	"github.com/aussiebroadwan/accountvault/internal/vault/store"
)

type servicesRepo struct {
	db dbtx
}

func (r *servicesRepo) CreateService(ctx context.Context, s domain.Service) error {
	const query = `
		INSERT INTO services (id, name, icon, description, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Name,
		mapStringNull(s.Icon),
		mapStringNull(s.Description),
		s.Active,
		formatTime(s.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create service: %w", mapConstraint(err))
	}
	return nil
}

func (r *servicesRepo) GetService(ctx context.Context, id string) (domain.Service, error) {
	const query = `
		SELECT id, name, icon, description, active, created_at
		FROM services WHERE id = ?`

	var (
		s         domain.Service
		icon      sql.NullString
		desc      sql.NullString
		createdAt string
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.Name, &icon, &desc, &s.Active, &createdAt)
	if err != nil {
		return domain.Service{}, mapNotFound(err)
	}

	s.Icon = mapNullString(icon)
	s.Description = mapNullString(desc)
	if s.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Service{}, err
	}
	return s, nil
}

func (r *servicesRepo) DeleteService(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *servicesRepo) ListServices(ctx context.Context) ([]domain.ServiceSummary, error) {
	return r.list(ctx, false)
}

func (r *servicesRepo) ListActiveServices(ctx context.Context) ([]domain.ServiceSummary, error) {
	return r.list(ctx, true)
}

// list returns newest first. Ids only break ties between equal timestamps.
func (r *servicesRepo) list(ctx context.Context, activeOnly bool) ([]domain.ServiceSummary, error) {
	query := `
		SELECT s.id, s.name, s.icon, s.description, s.active, s.created_at,
		       COUNT(c.id),
		       COALESCE(SUM(CASE WHEN c.claimed = 0 THEN 1 ELSE 0 END), 0)
		FROM services s
		LEFT JOIN credentials c ON c.service_id = s.id`
	if activeOnly {
		query += `
		WHERE s.active = 1`
	}
	query += `
		GROUP BY s.id
		ORDER BY s.created_at DESC, s.id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var out []domain.ServiceSummary
	for rows.Next() {
		var (
			sum       domain.ServiceSummary
			icon      sql.NullString
			desc      sql.NullString
			createdAt string
		)
		if err := rows.Scan(
			&sum.ID, &sum.Name, &icon, &desc, &sum.Active, &createdAt,
			&sum.Total, &sum.Available,
		); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		sum.Icon = mapNullString(icon)
		sum.Description = mapNullString(desc)
		if sum.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate services: %w", err)
	}
	return out, nil
}
