package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Error kinds returned in the "error" field of every failure body.
const (
	ErrKindQuotaExceeded   = "quota_exceeded"
	ErrKindNoInventory     = "no_inventory"
	ErrKindUnauthenticated = "unauthenticated"
	ErrKindStoreFailure    = "store_failure"
	ErrKindInvalidRequest  = "invalid_request"
	ErrKindUnknownAction   = "unknown_action"
	ErrKindForbidden       = "forbidden"
	ErrKindRateLimited     = "rate_limit_exceeded"
)

// MaxBodyBytes caps request bodies read by DecodeJSON. Bulk imports are the
// largest legitimate payload.
const MaxBodyBytes = 4 << 20

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error   string `json:"error" example:"quota_exceeded"`
	Message string `json:"message" example:"daily claim limit reached"`
}

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type header and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes an ErrorBody.
func WriteError(w http.ResponseWriter, code int, kind, message string) {
	WriteJSON(w, code, ErrorBody{Error: kind, Message: message})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// Claimed credentials must never sit in a shared cache.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// DecodeJSON reads a single JSON object from the request body into dst.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid json body: %w", err)
	}
	if dec.More() {
		return errors.New("request body must contain a single json object")
	}
	return nil
}
