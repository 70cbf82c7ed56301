package jwtx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxJWKSBytes caps how much of a JWKS response is read.
const maxJWKSBytes = 1 << 20

// JWKSFetcher downloads the identity provider's key set.
type JWKSFetcher struct {
	URL        string
	HTTPClient *http.Client
}

// NewJWKSFetcher returns a fetcher with a 10s client timeout.
func NewJWKSFetcher(url string) *JWKSFetcher {
	return &JWKSFetcher{
		URL:        url,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Fetch retrieves and parses the JWKS document.
func (f *JWKSFetcher) Fetch(ctx context.Context) (JWKS, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return JWKS{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return JWKS{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return JWKS{}, fmt.Errorf("jwtx: jwks endpoint returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxJWKSBytes))
	if err != nil {
		return JWKS{}, fmt.Errorf("failed to read response body: %w", err)
	}
	return ParseJWKS(body)
}
