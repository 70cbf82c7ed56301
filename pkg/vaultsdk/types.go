package vaultsdk

import "encoding/json"

// ============================================================================
// Shared Types
// ============================================================================

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	// Error is the machine readable kind, e.g. "quota_exceeded"
	Error string `json:"error"`

	// Message is a human readable description
	Message string `json:"message"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
	// VerificationKeys is the number of identity provider keys currently
	// trusted for bearer tokens.
	VerificationKeys int           `json:"verification_keys"`
	Checks           *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of readiness dependencies.
type HealthChecks struct {
	Database string `json:"database"`
	Keys     string `json:"keys"`
}

// ServiceInfo describes a service and its stock.
type ServiceInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"active"`
	CreatedAt   string `json:"created_at"`

	// Total and Available are zero on freshly created services.
	Total     int `json:"total"`
	Available int `json:"available"`
}

// ============================================================================
// User Endpoints
// ============================================================================

// GenerateAccountRequest is the body of POST /v1/accounts/generate.
type GenerateAccountRequest struct {
	ServiceID string `json:"service_id"`
}

// GenerateAccountResponse carries a freshly claimed credential.
type GenerateAccountResponse struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Remaining int    `json:"remaining"`
}

// ListServicesResponse is returned by GET /v1/services.
type ListServicesResponse struct {
	Services []ServiceInfo `json:"services"`
}

// QuotaResponse is returned by GET /v1/quota.
type QuotaResponse struct {
	Used      int    `json:"used"`
	Remaining int    `json:"remaining"`
	Limit     int    `json:"limit"`
	Date      string `json:"date"`
}

// ClaimInfo is one entry of the caller's claim history.
type ClaimInfo struct {
	ID           string `json:"id"`
	CredentialID string `json:"credential_id"`
	ServiceID    string `json:"service_id"`
	ClaimedAt    string `json:"claimed_at"`
}

// ListClaimsResponse is returned by GET /v1/claims.
type ListClaimsResponse struct {
	Claims []ClaimInfo `json:"claims"`
}

// ============================================================================
// Admin Operations
// ============================================================================

// Admin actions accepted by POST /v1/admin/operations.
const (
	ActionAddService      = "add_service"
	ActionDeleteService   = "delete_service"
	ActionAddAccount      = "add_account"
	ActionBulkAddAccounts = "bulk_add_accounts"
	ActionGetServices     = "get_services"
	ActionGetStats        = "get_stats"
)

// AdminRequest is the envelope for every admin action.
type AdminRequest struct {
	Action   string          `json:"action"`
	Password string          `json:"password,omitempty"`
	OTP      string          `json:"otp,omitempty"`
	Data     json.RawMessage `json:"data,omitempty" swaggertype:"object"`
}

// AddServiceData is the data of add_service.
type AddServiceData struct {
	Name        string `json:"name"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description,omitempty"`
}

// DeleteServiceData is the data of delete_service.
type DeleteServiceData struct {
	ServiceID string `json:"service_id"`
}

// AddAccountData is the data of add_account. AccountPassword is accepted as
// an alias of Password.
type AddAccountData struct {
	ServiceID       string `json:"service_id"`
	Email           string `json:"email"`
	Password        string `json:"password,omitempty"`
	AccountPassword string `json:"accountPassword,omitempty"`
}

// AccountPair is one login/secret pair in a bulk import.
type AccountPair struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// BulkAddAccountsData is the data of bulk_add_accounts. Accounts and Text
// may both be set; Text holds one "email:password" pair per line.
type BulkAddAccountsData struct {
	ServiceID string        `json:"service_id"`
	Accounts  []AccountPair `json:"accounts,omitempty"`
	Text      string        `json:"text,omitempty"`
}

// AccountInfo describes a stored credential. The secret is never echoed.
type AccountInfo struct {
	ID        string `json:"id"`
	ServiceID string `json:"service_id"`
	Email     string `json:"email"`
	Claimed   bool   `json:"claimed"`
	CreatedAt string `json:"created_at"`
}

// Stats is the admin overview.
type Stats struct {
	TotalServices     int `json:"totalServices"`
	TotalAccounts     int `json:"totalAccounts"`
	AvailableAccounts int `json:"availableAccounts"`
	TotalUsers        int `json:"totalUsers"`
}

// AddServiceResponse is returned by add_service.
type AddServiceResponse struct {
	Success bool        `json:"success"`
	Service ServiceInfo `json:"service"`
}

// AddAccountResponse is returned by add_account.
type AddAccountResponse struct {
	Success bool        `json:"success"`
	Account AccountInfo `json:"account"`
}

// BulkAddAccountsResponse is returned by bulk_add_accounts.
type BulkAddAccountsResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}

// GetServicesResponse is returned by get_services.
type GetServicesResponse struct {
	Success  bool          `json:"success"`
	Services []ServiceInfo `json:"services"`
}

// GetStatsResponse is returned by get_stats.
type GetStatsResponse struct {
	Success bool  `json:"success"`
	Stats   Stats `json:"stats"`
}

// SuccessResponse is returned by actions with no payload.
type SuccessResponse struct {
	Success bool `json:"success"`
}
