package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/accountvault/internal/vault/domain"
	"github.com/aussiebroadwan/accountvault/internal/vault/store"
	"github.com/aussiebroadwan/accountvault/pkg/slogx"
)

// Catalog is the read-only user view: what can be claimed, and how much
// of today's quota is left. It never creates quota profiles.
type Catalog struct {
	Store store.Store

	// DailyLimit defaults to domain.DefaultDailyLimit when zero.
	DailyLimit int

	// Now defaults to time.Now.
	Now func() time.Time
}

// ListActiveServices returns active services with counts, newest first.
func (c *Catalog) ListActiveServices(ctx context.Context) ([]domain.ServiceSummary, error) {
	out, err := c.Store.Services().ListActiveServices(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list active services", slog.Any("error", err))
		return nil, storeFailure(err)
	}
	return out, nil
}

// QuotaStatus reports today's usage for userID.
func (c *Catalog) QuotaStatus(ctx context.Context, userID string) (domain.QuotaStatus, error) {
	if userID == "" {
		return domain.QuotaStatus{}, ErrUnauthenticated
	}

	today := domain.Day(c.now())

	p, err := c.Store.QuotaProfiles().GetQuotaProfile(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		slogx.FromContext(ctx).Error("failed to load quota profile", slog.Any("error", err))
		return domain.QuotaStatus{}, storeFailure(err)
	}
	// Missing profile reads as zero usage.
	return domain.NewQuotaStatus(p, today, c.limit()), nil
}

// ClaimHistory lists the user's own claims, newest first. Secrets are not
// part of the history.
func (c *Catalog) ClaimHistory(ctx context.Context, userID string, limit int) ([]domain.ClaimRecord, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	switch {
	case limit <= 0:
		limit = 50
	case limit > 100:
		limit = 100
	}

	out, err := c.Store.ClaimRecords().ListClaimRecordsByUser(ctx, userID, limit)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list claim history", slog.Any("error", err))
		return nil, storeFailure(err)
	}
	return out, nil
}

func (c *Catalog) limit() int {
	if c.DailyLimit > 0 {
		return c.DailyLimit
	}
	return domain.DefaultDailyLimit
}

func (c *Catalog) now() time.Time {
	if c.Now != nil {
		return c.Now().UTC()
	}
	return time.Now().UTC()
}
