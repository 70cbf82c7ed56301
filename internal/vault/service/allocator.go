package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/accountvault/internal/vault/domain"
	"github.com/aussiebroadwan/accountvault/internal/vault/store"
	"github.com/aussiebroadwan/accountvault/pkg/idx"
	"github.com/aussiebroadwan/accountvault/pkg/otelx"
	"github.com/aussiebroadwan/accountvault/pkg/slogx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// maxClaimAttempts bounds retries after losing the quota compare-and-set.
const maxClaimAttempts = 3

// errQuotaConflict means the quota row changed between read and write.
var errQuotaConflict = errors.New("quota profile changed concurrently")

// ClaimResult is what a successful claim hands back to the user.
type ClaimResult struct {
	CredentialID string
	ServiceID    string
	Login        string
	Secret       string
	Remaining    int
}

// Allocator hands out unclaimed credentials under a per-user daily quota.
type Allocator struct {
	Store store.Store

	// DailyLimit defaults to domain.DefaultDailyLimit when zero.
	DailyLimit int

	// Now defaults to time.Now.
	Now func() time.Time
}

func (a *Allocator) limit() int {
	if a.DailyLimit > 0 {
		return a.DailyLimit
	}
	return domain.DefaultDailyLimit
}

func (a *Allocator) now() time.Time {
	if a.Now != nil {
		return a.Now().UTC()
	}
	return time.Now().UTC()
}

// Claim assigns one unclaimed credential of serviceID to userID and counts
// it against the user's quota for the current UTC day.
//
// The quota check, the credential flip, the audit entry and the quota write
// share one transaction. The credential flip and the quota write are both
// conditioned on the values read earlier, so a racing claimer can never get
// the same credential or push a user past the limit.
func (a *Allocator) Claim(ctx context.Context, userID, serviceID string) (ClaimResult, error) {
	ctx, span := tracer.Start(ctx, "Allocator.Claim", trace.WithAttributes(
		attribute.String("vault.service_id", serviceID),
	))
	defer span.End()

	log := slogx.FromContext(ctx)

	userID = strings.TrimSpace(userID)
	serviceID = strings.TrimSpace(serviceID)
	if userID == "" {
		return ClaimResult{}, ErrUnauthenticated
	}
	if serviceID == "" {
		return ClaimResult{}, invalid("service_id is required")
	}

	for attempt := 1; attempt <= maxClaimAttempts; attempt++ {
		res, err := a.claimOnce(ctx, userID, serviceID)
		if errors.Is(err, errQuotaConflict) {
			log.Warn("quota changed during claim, retrying",
				slog.String("service_id", serviceID),
				slog.Int("attempt", attempt),
			)
			continue
		}
		if err != nil {
			if errors.Is(err, ErrStoreFailure) {
				otelx.RecordError(span, err)
				log.Error("claim failed", slog.String("service_id", serviceID), slog.Any("error", err))
			} else {
				log.Warn("claim rejected", slog.String("service_id", serviceID), slog.Any("reason", err))
			}
			return ClaimResult{}, err
		}

		span.SetAttributes(attribute.Int("vault.remaining", res.Remaining))
		log.Info("credential claimed",
			slog.String("service_id", serviceID),
			slog.String("credential_id", res.CredentialID),
			slog.Int("remaining", res.Remaining),
		)
		return res, nil
	}

	err := storeFailure(errQuotaConflict)
	otelx.RecordError(span, err)
	log.Error("claim gave up after repeated quota conflicts", slog.String("service_id", serviceID))
	return ClaimResult{}, err
}

func (a *Allocator) claimOnce(ctx context.Context, userID, serviceID string) (ClaimResult, error) {
	log := slogx.FromContext(ctx)
	now := a.now()
	today := domain.Day(now)
	limit := a.limit()

	var res ClaimResult
	err := a.Store.WithTx(ctx, func(tx store.Tx) error {
		// 1. Resolve the quota profile, creating it on first use.
		profile, err := tx.QuotaProfiles().EnsureQuotaProfile(ctx, userID)
		if err != nil {
			return storeFailure(err)
		}

		// 2. Stale dates count as zero.
		effective := profile.EffectiveCount(today)
		if effective >= limit {
			return ErrQuotaExceeded
		}

		// 3. The service must exist and be offered.
		svc, err := tx.Services().GetService(ctx, serviceID)
		if errors.Is(err, store.ErrNotFound) || (err == nil && !svc.Active) {
			return ErrServiceNotFound
		}
		if err != nil {
			return storeFailure(err)
		}

		// 4. Pick a credential and flip it. Losing the flip means someone
		// else took it, so pick again.
		var cred domain.Credential
		for {
			cred, err = tx.Credentials().SelectUnclaimed(ctx, serviceID)
			if errors.Is(err, store.ErrNotFound) {
				return ErrNoInventory
			}
			if err != nil {
				return storeFailure(err)
			}

			won, err := tx.Credentials().ClaimIfUnclaimed(ctx, cred.ID, userID, now)
			if err != nil {
				return storeFailure(err)
			}
			if won {
				break
			}
			log.Debug("credential taken concurrently, selecting another", slog.String("credential_id", cred.ID))
		}

		// 5. Audit is best effort.
		record := domain.ClaimRecord{
			ID:           idx.NewAt(now).String(),
			UserID:       userID,
			CredentialID: cred.ID,
			ServiceID:    serviceID,
			ClaimedAt:    now,
		}
		if err := tx.ClaimRecords().AppendClaimRecord(ctx, record); err != nil {
			if errors.Is(err, store.ErrTxAborted) {
				return storeFailure(err)
			}
			log.Error("failed to append claim record",
				slog.String("credential_id", cred.ID),
				slog.Any("error", err),
			)
		}

		// 6. Count the claim, conditioned on what step 1 read.
		next := domain.QuotaProfile{
			UserID:        userID,
			ClaimedToday:  effective + 1,
			LastClaimDate: today,
		}
		ok, err := tx.QuotaProfiles().CompareAndSetQuota(ctx, profile, next)
		if err != nil {
			return storeFailure(err)
		}
		if !ok {
			return errQuotaConflict
		}

		res = ClaimResult{
			CredentialID: cred.ID,
			ServiceID:    serviceID,
			Login:        cred.Login,
			Secret:       cred.Secret,
			Remaining:    limit - next.ClaimedToday,
		}
		return nil
	})
	if err != nil {
		if isDomainError(err) {
			return ClaimResult{}, err
		}
		// Begin or commit failed.
		return ClaimResult{}, storeFailure(err)
	}
	return res, nil
}

func isDomainError(err error) bool {
	for _, target := range []error{
		ErrQuotaExceeded,
		ErrNoInventory,
		ErrServiceNotFound,
		ErrInvalidRequest,
		ErrUnauthenticated,
		ErrStoreFailure,
		errQuotaConflict,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
