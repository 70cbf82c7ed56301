package vaultsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error kinds reported by the vault.
const (
	KindQuotaExceeded   = "quota_exceeded"
	KindNoInventory     = "no_inventory"
	KindUnauthenticated = "unauthenticated"
	KindStoreFailure    = "store_failure"
	KindInvalidRequest  = "invalid_request"
	KindUnknownAction   = "unknown_action"
	KindForbidden       = "forbidden"
	KindRateLimited     = "rate_limit_exceeded"
)

// APIError is a non-2xx response from the vault.
type APIError struct {
	StatusCode int
	Kind       string
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches another *APIError by kind, so the predefined errors below work
// with errors.Is regardless of status code or message.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Kind == e.Kind
}

var (
	ErrQuotaExceeded   = &APIError{Kind: KindQuotaExceeded}
	ErrNoInventory     = &APIError{Kind: KindNoInventory}
	ErrUnauthenticated = &APIError{Kind: KindUnauthenticated}
	ErrStoreFailure    = &APIError{Kind: KindStoreFailure}
	ErrInvalidRequest  = &APIError{Kind: KindInvalidRequest}
	ErrUnknownAction   = &APIError{Kind: KindUnknownAction}
	ErrForbidden       = &APIError{Kind: KindForbidden}
	ErrRateLimited     = &APIError{Kind: KindRateLimited}
)

// parseErrorResponse turns an error body into an *APIError. Bodies that are
// not in the vault's error shape fall back to the status text.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Kind:       errResp.Error,
			Message:    errResp.Message,
		}
	}

	kind := KindStoreFailure
	if resp.StatusCode < 500 {
		kind = KindInvalidRequest
	}
	return &APIError{
		StatusCode: resp.StatusCode,
		Kind:       kind,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
