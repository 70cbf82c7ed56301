package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/accountvault/pkg/httpx"
	"github.com/aussiebroadwan/accountvault/pkg/jwtx"
	"github.com/aussiebroadwan/accountvault/pkg/vaultsdk"
)

// LivezHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness probe with uptime and the number of loaded identity provider keys.
//	@Description	Always 200 while the process serves requests; an empty key set is a readiness concern.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	vaultsdk.HealthResponse	"status, uptime, version, verification_keys"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string, keys *jwtx.KeySet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, vaultsdk.HealthResponse{
			Status:           "ok",
			Uptime:           time.Since(startTime).String(),
			Version:          version,
			VerificationKeys: keys.Len(),
		})
	}
}
