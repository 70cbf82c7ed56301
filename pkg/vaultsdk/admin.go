package vaultsdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Admin runs admin operations. Password and OTP may be empty when the
// client's token carries the vault:admin scope.
type Admin struct {
	client   *Client
	Password string
	OTP      string
}

// Admin returns an admin handle over c.
func (c *Client) Admin(password, otp string) *Admin {
	return &Admin{client: c, Password: password, OTP: otp}
}

// Do runs action with data and decodes the response into out.
func (a *Admin) Do(ctx context.Context, action string, data, out any) error {
	req := AdminRequest{Action: action, Password: a.Password, OTP: a.OTP}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to encode %s data: %w", action, err)
		}
		req.Data = raw
	}
	return a.client.do(ctx, http.MethodPost, "/v1/admin/operations", req, out)
}

// AddService creates a service.
func (a *Admin) AddService(ctx context.Context, in AddServiceData) (*ServiceInfo, error) {
	var out AddServiceResponse
	if err := a.Do(ctx, ActionAddService, in, &out); err != nil {
		return nil, err
	}
	return &out.Service, nil
}

// DeleteService removes a service and all its credentials.
func (a *Admin) DeleteService(ctx context.Context, serviceID string) error {
	return a.Do(ctx, ActionDeleteService, DeleteServiceData{ServiceID: serviceID}, nil)
}

// AddAccount stocks one credential.
func (a *Admin) AddAccount(ctx context.Context, in AddAccountData) (*AccountInfo, error) {
	var out AddAccountResponse
	if err := a.Do(ctx, ActionAddAccount, in, &out); err != nil {
		return nil, err
	}
	return &out.Account, nil
}

// BulkAddAccounts stocks many credentials and returns how many were stored.
func (a *Admin) BulkAddAccounts(ctx context.Context, in BulkAddAccountsData) (int, error) {
	var out BulkAddAccountsResponse
	if err := a.Do(ctx, ActionBulkAddAccounts, in, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// GetServices lists every service, active or not, with counts.
func (a *Admin) GetServices(ctx context.Context) ([]ServiceInfo, error) {
	var out GetServicesResponse
	if err := a.Do(ctx, ActionGetServices, nil, &out); err != nil {
		return nil, err
	}
	return out.Services, nil
}

// GetStats returns the inventory overview.
func (a *Admin) GetStats(ctx context.Context) (*Stats, error) {
	var out GetStatsResponse
	if err := a.Do(ctx, ActionGetStats, nil, &out); err != nil {
		return nil, err
	}
	return &out.Stats, nil
}
