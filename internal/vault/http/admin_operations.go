package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/accountvault/internal/vault/domain"
	"github.com/aussiebroadwan/accountvault/internal/vault/service"
	"github.com/aussiebroadwan/accountvault/pkg/httpx"
	"github.com/aussiebroadwan/accountvault/pkg/slogx"
	"github.com/aussiebroadwan/accountvault/pkg/vaultsdk"
)

// AdminOperationsHandler dispatches the privileged inventory actions.
type AdminOperationsHandler struct {
	Auth      *service.AdminAuthenticator
	Inventory *service.Inventory
}

type adminAction func(w http.ResponseWriter, r *http.Request, data json.RawMessage)

// ServeHTTP handles POST /v1/admin/operations
//
//	@Summary		Admin operation
//	@Description	Runs one inventory action. The caller presents the admin password (plus otp when TOTP is configured),
//	@Description	or a bearer token carrying the vault:admin scope.
//	@Description
//	@Description	Actions and their data:
//	@Description	- add_service: {name, icon, description}
//	@Description	- delete_service: {service_id}
//	@Description	- add_account: {service_id, email, password} (accountPassword is accepted as an alias)
//	@Description	- bulk_add_accounts: {service_id, accounts: [{email, password}], text: "email:password per line"}
//	@Description	- get_services
//	@Description	- get_stats
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			request	body		vaultsdk.AdminRequest		true	"action, password, otp, data"
//	@Success		200		{object}	vaultsdk.SuccessResponse	"success plus an action specific payload"
//	@Failure		400		{object}	vaultsdk.ErrorResponse		"invalid_request or unknown_action"
//	@Failure		401		{object}	vaultsdk.ErrorResponse		"unauthenticated"
//	@Failure		404		{object}	vaultsdk.ErrorResponse		"no_inventory (service not found)"
//	@Failure		429		{object}	vaultsdk.ErrorResponse		"rate_limit_exceeded"
//	@Failure		500		{object}	vaultsdk.ErrorResponse		"store_failure"
//	@Router			/v1/admin/operations [post].
func (h *AdminOperationsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req vaultsdk.AdminRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeInvalid(w, err.Error())
		return
	}

	creds := service.AdminCredentials{Password: req.Password, OTP: req.OTP}
	if c, ok := httpx.ClaimsFromContext(ctx); ok {
		creds.Claims = &c
	}
	if err := h.Auth.Authorize(ctx, creds); err != nil {
		writeServiceError(w, r, err)
		return
	}

	action, ok := h.actions()[req.Action]
	if !ok {
		slogx.FromContext(ctx).Warn("unknown admin action", "action", req.Action)
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrKindUnknownAction, "unknown action: "+req.Action)
		return
	}

	r = r.WithContext(slogx.With(ctx, "action", req.Action))
	action(w, r, req.Data)
}

func (h *AdminOperationsHandler) actions() map[string]adminAction {
	return map[string]adminAction{
		vaultsdk.ActionAddService:      h.addService,
		vaultsdk.ActionDeleteService:   h.deleteService,
		vaultsdk.ActionAddAccount:      h.addAccount,
		vaultsdk.ActionBulkAddAccounts: h.bulkAddAccounts,
		vaultsdk.ActionGetServices:     h.getServices,
		vaultsdk.ActionGetStats:        h.getStats,
	}
}

func (h *AdminOperationsHandler) addService(w http.ResponseWriter, r *http.Request, data json.RawMessage) {
	var in vaultsdk.AddServiceData
	if !decodeData(w, data, &in) {
		return
	}

	svc, err := h.Inventory.AddService(r.Context(), service.NewService{
		Name:        in.Name,
		Icon:        in.Icon,
		Description: in.Description,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, vaultsdk.AddServiceResponse{Success: true, Service: toServiceInfo(svc)})
}

func (h *AdminOperationsHandler) deleteService(w http.ResponseWriter, r *http.Request, data json.RawMessage) {
	var in vaultsdk.DeleteServiceData
	if !decodeData(w, data, &in) {
		return
	}

	if err := h.Inventory.DeleteService(r.Context(), in.ServiceID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, vaultsdk.SuccessResponse{Success: true})
}

func (h *AdminOperationsHandler) addAccount(w http.ResponseWriter, r *http.Request, data json.RawMessage) {
	var in vaultsdk.AddAccountData
	if !decodeData(w, data, &in) {
		return
	}

	secret := in.Password
	if secret == "" {
		secret = in.AccountPassword
	}

	cred, err := h.Inventory.AddCredential(r.Context(), in.ServiceID, in.Email, secret)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, vaultsdk.AddAccountResponse{Success: true, Account: toAccountInfo(cred)})
}

func (h *AdminOperationsHandler) bulkAddAccounts(w http.ResponseWriter, r *http.Request, data json.RawMessage) {
	var in vaultsdk.BulkAddAccountsData
	if !decodeData(w, data, &in) {
		return
	}

	pairs := make([]domain.CredentialPair, 0, len(in.Accounts))
	for _, a := range in.Accounts {
		pairs = append(pairs, domain.CredentialPair{Login: a.Email, Secret: a.Password})
	}
	if strings.TrimSpace(in.Text) != "" {
		pairs = append(pairs, service.ParseBulkCredentials(in.Text)...)
	}

	n, err := h.Inventory.BulkAddCredentials(r.Context(), in.ServiceID, pairs)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, vaultsdk.BulkAddAccountsResponse{Success: true, Count: n})
}

func (h *AdminOperationsHandler) getServices(w http.ResponseWriter, r *http.Request, _ json.RawMessage) {
	list, err := h.Inventory.ListServices(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, vaultsdk.GetServicesResponse{Success: true, Services: toServiceInfos(list)})
}

func (h *AdminOperationsHandler) getStats(w http.ResponseWriter, r *http.Request, _ json.RawMessage) {
	st, err := h.Inventory.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, vaultsdk.GetStatsResponse{Success: true, Stats: toStats(st)})
}

// decodeData unmarshals an action's data. Missing data decodes as an empty
// object so the service layer reports which field is absent.
func decodeData(w http.ResponseWriter, data json.RawMessage, dst any) bool {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return true
	}
	if err := json.Unmarshal(data, dst); err != nil {
		writeInvalid(w, "invalid data: "+err.Error())
		return false
	}
	return true
}
