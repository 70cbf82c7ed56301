package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/aussiebroadwan/accountvault/internal/vault/service"
	"github.com/aussiebroadwan/accountvault/pkg/httpx"
	"github.com/aussiebroadwan/accountvault/pkg/vaultsdk"
)

// CatalogHandler serves the read-only user endpoints.
type CatalogHandler struct {
	Catalog *service.Catalog
}

// HandleServices handles GET /v1/services
//
//	@Summary		List services
//	@Description	Returns active services, newest first, with how many credentials are left.
//	@Tags			Accounts
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	vaultsdk.ListServicesResponse	"services"
//	@Failure		401	{object}	vaultsdk.ErrorResponse			"unauthenticated"
//	@Failure		500	{object}	vaultsdk.ErrorResponse			"store_failure"
//	@Router			/v1/services [get].
func (h *CatalogHandler) HandleServices(w http.ResponseWriter, r *http.Request) {
	list, err := h.Catalog.ListActiveServices(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, vaultsdk.ListServicesResponse{Services: toServiceInfos(list)})
}

// HandleQuota handles GET /v1/quota
//
//	@Summary		Quota status
//	@Description	Returns how many claims the caller has used today (UTC) and how many remain.
//	@Tags			Accounts
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	vaultsdk.QuotaResponse	"used, remaining, limit, date"
//	@Failure		401	{object}	vaultsdk.ErrorResponse	"unauthenticated"
//	@Failure		500	{object}	vaultsdk.ErrorResponse	"store_failure"
//	@Router			/v1/quota [get].
func (h *CatalogHandler) HandleQuota(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := httpx.UserIDFromContext(ctx)

	st, err := h.Catalog.QuotaStatus(ctx, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, vaultsdk.QuotaResponse{
		Used:      st.Used,
		Remaining: st.Remaining,
		Limit:     st.Limit,
		Date:      st.Date,
	})
}

// HandleClaims handles GET /v1/claims
//
//	@Summary		Claim history
//	@Description	Returns the caller's own claims, newest first. Secrets are not included.
//	@Tags			Accounts
//	@Produce		json
//	@Security		BearerAuth
//	@Param			limit	query		int							false	"Maximum entries (default 50, max 100)"
//	@Success		200		{object}	vaultsdk.ListClaimsResponse	"claims"
//	@Failure		400		{object}	vaultsdk.ErrorResponse		"invalid_request"
//	@Failure		401		{object}	vaultsdk.ErrorResponse		"unauthenticated"
//	@Failure		500		{object}	vaultsdk.ErrorResponse		"store_failure"
//	@Router			/v1/claims [get].
func (h *CatalogHandler) HandleClaims(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := httpx.UserIDFromContext(ctx)

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeInvalid(w, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	recs, err := h.Catalog.ClaimHistory(ctx, userID, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := vaultsdk.ListClaimsResponse{Claims: make([]vaultsdk.ClaimInfo, len(recs))}
	for i, rec := range recs {
		out.Claims[i] = vaultsdk.ClaimInfo{
			ID:           rec.ID,
			CredentialID: rec.CredentialID,
			ServiceID:    rec.ServiceID,
			ClaimedAt:    rec.ClaimedAt.Format(time.RFC3339),
		}
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
