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

// NewService is the admin input for AddService.
type NewService struct {
	Name        string
	Icon        string
	Description string
}

// Inventory is the admin side of the vault: services, stock and stats.
// Callers are expected to have passed AdminAuthenticator already.
type Inventory struct {
	Store store.Store

	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *Inventory) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// AddService creates an active service.
func (s *Inventory) AddService(ctx context.Context, in NewService) (domain.Service, error) {
	log := slogx.FromContext(ctx)

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Service{}, invalid("name is required")
	}

	now := s.now()
	svc := domain.Service{
		ID:          idx.NewAt(now).String(),
		Name:        name,
		Icon:        strings.TrimSpace(in.Icon),
		Description: strings.TrimSpace(in.Description),
		Active:      true,
		CreatedAt:   now,
	}
	if err := s.Store.Services().CreateService(ctx, svc); err != nil {
		log.Error("failed to create service", slog.Any("error", err))
		return domain.Service{}, storeFailure(err)
	}

	log.Info("service created", slog.String("service_id", svc.ID), slog.String("name", svc.Name))
	return svc, nil
}

// DeleteService removes a service and all of its credentials.
func (s *Inventory) DeleteService(ctx context.Context, id string) error {
	log := slogx.FromContext(ctx)

	id = strings.TrimSpace(id)
	if id == "" {
		return invalid("service_id is required")
	}

	err := s.Store.Services().DeleteService(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrServiceNotFound
	}
	if err != nil {
		log.Error("failed to delete service", slog.String("service_id", id), slog.Any("error", err))
		return storeFailure(err)
	}

	log.Info("service deleted", slog.String("service_id", id))
	return nil
}

// AddCredential stocks a single credential.
func (s *Inventory) AddCredential(ctx context.Context, serviceID, login, secret string) (domain.Credential, error) {
	pair, ok := cleanPair(login, secret)
	if !ok {
		return domain.Credential{}, invalid("email and password are required")
	}

	var created domain.Credential
	_, err := s.insertCredentials(ctx, serviceID, []domain.CredentialPair{pair}, func(c domain.Credential) {
		created = c
	})
	if err != nil {
		return domain.Credential{}, err
	}
	return created, nil
}

// BulkAddCredentials stocks many credentials in one transaction, skipping
// incomplete pairs. It returns how many were stored.
func (s *Inventory) BulkAddCredentials(ctx context.Context, serviceID string, pairs []domain.CredentialPair) (int, error) {
	ctx, span := tracer.Start(ctx, "Inventory.BulkAddCredentials", trace.WithAttributes(
		attribute.String("vault.service_id", serviceID),
		attribute.Int("vault.submitted", len(pairs)),
	))
	defer span.End()

	valid := cleanPairs(pairs)
	if len(valid) == 0 {
		return 0, invalid("no valid email:password pairs")
	}

	n, err := s.insertCredentials(ctx, serviceID, valid, nil)
	if err != nil {
		otelx.RecordError(span, err)
		return 0, err
	}

	span.SetAttributes(attribute.Int("vault.imported", n))
	slogx.FromContext(ctx).Info("credentials imported",
		slog.String("service_id", serviceID),
		slog.Int("submitted", len(pairs)),
		slog.Int("imported", n),
	)
	return n, nil
}

func (s *Inventory) insertCredentials(
	ctx context.Context,
	serviceID string,
	pairs []domain.CredentialPair,
	onCreate func(domain.Credential),
) (int, error) {
	log := slogx.FromContext(ctx)

	serviceID = strings.TrimSpace(serviceID)
	if serviceID == "" {
		return 0, invalid("service_id is required")
	}

	now := s.now()
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Services().GetService(ctx, serviceID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrServiceNotFound
			}
			return storeFailure(err)
		}

		for _, p := range pairs {
			c := domain.Credential{
				ID:        idx.NewAt(now).String(),
				ServiceID: serviceID,
				Login:     p.Login,
				Secret:    p.Secret,
				CreatedAt: now,
			}
			if err := tx.Credentials().CreateCredential(ctx, c); err != nil {
				return storeFailure(err)
			}
			if onCreate != nil {
				onCreate(c)
			}
		}
		return nil
	})
	switch {
	case err == nil:
		return len(pairs), nil
	case errors.Is(err, ErrServiceNotFound):
		return 0, err
	case !errors.Is(err, ErrStoreFailure):
		err = storeFailure(err) // begin or commit
	}
	log.Error("failed to store credentials", slog.String("service_id", serviceID), slog.Any("error", err))
	return 0, err
}

// ListServices returns every service with counts, newest first.
func (s *Inventory) ListServices(ctx context.Context) ([]domain.ServiceSummary, error) {
	out, err := s.Store.Services().ListServices(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list services", slog.Any("error", err))
		return nil, storeFailure(err)
	}
	return out, nil
}

// Stats returns the admin overview.
func (s *Inventory) Stats(ctx context.Context) (domain.InventoryStats, error) {
	out, err := s.Store.Stats().InventoryStats(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to load stats", slog.Any("error", err))
		return domain.InventoryStats{}, storeFailure(err)
	}
	return out, nil
}
