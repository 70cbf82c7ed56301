package vaultsdk

import (
	"context"
	"net/http"
	"strconv"
)

// GenerateAccount claims a credential of serviceID for the token's subject.
func (c *Client) GenerateAccount(ctx context.Context, serviceID string) (*GenerateAccountResponse, error) {
	var out GenerateAccountResponse
	err := c.do(ctx, http.MethodPost, "/v1/accounts/generate", GenerateAccountRequest{ServiceID: serviceID}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListServices returns the active services.
func (c *Client) ListServices(ctx context.Context) ([]ServiceInfo, error) {
	var out ListServicesResponse
	if err := c.do(ctx, http.MethodGet, "/v1/services", nil, &out); err != nil {
		return nil, err
	}
	return out.Services, nil
}

// GetQuota returns today's quota usage.
func (c *Client) GetQuota(ctx context.Context) (*QuotaResponse, error) {
	var out QuotaResponse
	if err := c.do(ctx, http.MethodGet, "/v1/quota", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListClaims returns the caller's claim history, newest first. A limit of
// zero uses the server default.
func (c *Client) ListClaims(ctx context.Context, limit int) ([]ClaimInfo, error) {
	path := "/v1/claims"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var out ListClaimsResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Claims, nil
}

// AdminStats reads the inventory overview with a vault:admin scoped token.
func (c *Client) AdminStats(ctx context.Context) (*Stats, error) {
	var out GetStatsResponse
	if err := c.do(ctx, http.MethodGet, "/v1/admin/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out.Stats, nil
}
