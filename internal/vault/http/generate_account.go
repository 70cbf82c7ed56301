package http

import (
	"net/http"

	"github.com/aussiebroadwan/accountvault/internal/vault/service"
	"github.com/aussiebroadwan/accountvault/pkg/httpx"
	"github.com/aussiebroadwan/accountvault/pkg/vaultsdk"
)

// GenerateAccountHandler claims a credential for the caller.
type GenerateAccountHandler struct {
	Allocator *service.Allocator
}

// ServeHTTP handles POST /v1/accounts/generate
//
//	@Summary		Claim an account
//	@Description	Claims one unclaimed credential of the given service for the caller and counts it against today's quota.
//	@Description	The credential is never handed to anyone else.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		vaultsdk.GenerateAccountRequest		true	"Service to claim from"
//	@Success		200		{object}	vaultsdk.GenerateAccountResponse	"email, password, remaining"
//	@Failure		400		{object}	vaultsdk.ErrorResponse				"invalid_request"
//	@Failure		401		{object}	vaultsdk.ErrorResponse				"unauthenticated"
//	@Failure		404		{object}	vaultsdk.ErrorResponse				"no_inventory"
//	@Failure		429		{object}	vaultsdk.ErrorResponse				"quota_exceeded or rate_limit_exceeded"
//	@Failure		500		{object}	vaultsdk.ErrorResponse				"store_failure"
//	@Router			/v1/accounts/generate [post].
func (h *GenerateAccountHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		writeServiceError(w, r, service.ErrUnauthenticated)
		return
	}

	var req vaultsdk.GenerateAccountRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeInvalid(w, err.Error())
		return
	}

	res, err := h.Allocator.Claim(ctx, userID, req.ServiceID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, vaultsdk.GenerateAccountResponse{
		Email:     res.Login,
		Password:  res.Secret,
		Remaining: res.Remaining,
	})
}
