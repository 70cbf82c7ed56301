package http

import (
	"net/http"

	"github.com/aussiebroadwan/accountvault/internal/vault/service"
	"github.com/aussiebroadwan/accountvault/pkg/httpx"
	"github.com/aussiebroadwan/accountvault/pkg/vaultsdk"
)

// AdminStatsHandler exposes the inventory overview to vault:admin tokens.
type AdminStatsHandler struct {
	Inventory *service.Inventory
}

// ServeHTTP handles GET /v1/admin/stats
//
//	@Summary		Inventory stats
//	@Description	Same numbers as the get_stats admin action, for callers holding a token with the vault:admin scope.
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	vaultsdk.GetStatsResponse	"stats"
//	@Failure		401	{object}	vaultsdk.ErrorResponse		"unauthenticated"
//	@Failure		403	{object}	vaultsdk.ErrorResponse		"forbidden"
//	@Failure		500	{object}	vaultsdk.ErrorResponse		"store_failure"
//	@Router			/v1/admin/stats [get].
func (h *AdminStatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	st, err := h.Inventory.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, vaultsdk.GetStatsResponse{Success: true, Stats: toStats(st)})
}
