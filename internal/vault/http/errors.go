package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/accountvault/internal/vault/service"
	"github.com/aussiebroadwan/accountvault/pkg/httpx"
	"github.com/aussiebroadwan/accountvault/pkg/slogx"
)

// writeServiceError maps a service error onto the error body. Store faults
// are logged and never echoed to the caller.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrQuotaExceeded):
		httpx.WriteError(w, http.StatusTooManyRequests, httpx.ErrKindQuotaExceeded, err.Error())
	case errors.Is(err, service.ErrNoInventory):
		httpx.WriteError(w, http.StatusNotFound, httpx.ErrKindNoInventory, err.Error())
	case errors.Is(err, service.ErrServiceNotFound):
		httpx.WriteError(w, http.StatusNotFound, httpx.ErrKindNoInventory, err.Error())
	case errors.Is(err, service.ErrUnauthenticated):
		httpx.WriteError(w, http.StatusUnauthorized, httpx.ErrKindUnauthenticated, "authentication required")
	case errors.Is(err, service.ErrInvalidRequest):
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrKindInvalidRequest, err.Error())
	default:
		slogx.FromContext(r.Context()).Error("request failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, httpx.ErrKindStoreFailure, "internal error, please retry")
	}
}

func writeInvalid(w http.ResponseWriter, msg string) {
	httpx.WriteError(w, http.StatusBadRequest, httpx.ErrKindInvalidRequest, msg)
}
