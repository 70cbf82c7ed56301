package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/accountvault/pkg/jwtx"
)

// JWKSSource yields the identity provider's current key set.
type JWKSSource interface {
	Fetch(ctx context.Context) (jwtx.JWKS, error)
}

// JWKSFile reads a key set from disk on every fetch, so replacing the file
// rotates keys without a restart.
type JWKSFile struct {
	Path string
}

func (f JWKSFile) Fetch(ctx context.Context) (jwtx.JWKS, error) {
	return jwtx.LoadJWKSFile(f.Path)
}

// KeyRefresher keeps the shared KeySet in step with the identity provider.
// A failed fetch keeps the previous keys.
type KeyRefresher struct {
	Source   JWKSSource
	Keys     *jwtx.KeySet
	Logger   *slog.Logger
	Interval time.Duration

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewKeyRefresher creates a refresher. If interval is 0 or negative it
// defaults to 15 minutes.
func NewKeyRefresher(source JWKSSource, keys *jwtx.KeySet, logger *slog.Logger, interval time.Duration) *KeyRefresher {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &KeyRefresher{
		Source:   source,
		Keys:     keys,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Refresh fetches once and swaps the key set in.
func (r *KeyRefresher) Refresh(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	set, err := r.Source.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch jwks: %w", err)
	}
	if len(set.Keys) == 0 {
		return fmt.Errorf("fetch jwks: empty key set")
	}
	if err := r.Keys.ResetFromJWKS(set); err != nil {
		return fmt.Errorf("load jwks: %w", err)
	}
	return nil
}

// Start runs the refresh loop in the background. The first refresh is
// expected to have been done synchronously by the caller.
func (r *KeyRefresher) Start() {
	go r.run()
	r.Logger.Info("key refresher started", "interval", r.Interval)
}

// Stop ends the loop and waits for an in-flight refresh to finish.
func (r *KeyRefresher) Stop() {
	close(r.stopCh)
	<-r.doneCh
	r.Logger.Info("key refresher stopped")
}

func (r *KeyRefresher) run() {
	defer close(r.doneCh)

	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := r.Refresh(context.Background()); err != nil {
				r.Logger.Error("jwks refresh failed, keeping previous keys", "error", err)
				continue
			}
			r.Logger.Debug("jwks refreshed", "keys", r.Keys.Len())
		case <-r.stopCh:
			return
		}
	}
}
