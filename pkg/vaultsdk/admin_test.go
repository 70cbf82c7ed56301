package vaultsdk

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// adminServer decodes each admin request and hands it to fn.
func adminServer(t *testing.T, fn func(req AdminRequest) (int, any)) *Client {
	t.Helper()
	return newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/admin/operations", r.URL.Path)

		var req AdminRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		status, body := fn(req)
		writeJSON(w, status, body)
	})
}

func TestAdminCredentialsSent(t *testing.T) {
	t.Parallel()

	c := adminServer(t, func(req AdminRequest) (int, any) {
		require.Equal(t, ActionGetStats, req.Action)
		require.Equal(t, "hunter2", req.Password)
		require.Equal(t, "123456", req.OTP)
		require.Empty(t, req.Data)
		return http.StatusOK, GetStatsResponse{Success: true, Stats: Stats{TotalServices: 2, AvailableAccounts: 5}}
	})

	stats, err := c.Admin("hunter2", "123456").GetStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, stats.TotalServices)
	require.Equal(t, 5, stats.AvailableAccounts)
}

func TestAdminAddServiceAndBulk(t *testing.T) {
	t.Parallel()

	c := adminServer(t, func(req AdminRequest) (int, any) {
		switch req.Action {
		case ActionAddService:
			var data AddServiceData
			require.NoError(t, json.Unmarshal(req.Data, &data))
			return http.StatusOK, AddServiceResponse{Success: true, Service: ServiceInfo{ID: "svc-1", Name: data.Name, Active: true}}
		case ActionBulkAddAccounts:
			var data BulkAddAccountsData
			require.NoError(t, json.Unmarshal(req.Data, &data))
			require.Equal(t, "svc-1", data.ServiceID)
			return http.StatusOK, BulkAddAccountsResponse{Success: true, Count: len(data.Accounts) + 2}
		}
		return http.StatusBadRequest, ErrorResponse{Error: KindUnknownAction}
	})

	admin := c.Admin("pw", "")
	svc, err := admin.AddService(context.Background(), AddServiceData{Name: "Alpha"})
	require.NoError(t, err)
	require.Equal(t, "svc-1", svc.ID)
	require.Equal(t, "Alpha", svc.Name)

	n, err := admin.BulkAddAccounts(context.Background(), BulkAddAccountsData{
		ServiceID: svc.ID,
		Accounts:  []AccountPair{{Email: "a@x.com", Password: "p1"}},
		Text:      "b@x.com:p2\nc@x.com:p3",
	})
	require.NoError(t, err)
	require.Equal(t, 3, n)
}

func TestAdminDeleteServiceNotFound(t *testing.T) {
	t.Parallel()

	c := adminServer(t, func(req AdminRequest) (int, any) {
		return http.StatusNotFound, ErrorResponse{Error: KindNoInventory, Message: "service not found"}
	})

	err := c.Admin("pw", "").DeleteService(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNoInventory)
}

func TestAdminUnauthenticated(t *testing.T) {
	t.Parallel()

	c := adminServer(t, func(req AdminRequest) (int, any) {
		return http.StatusUnauthorized, ErrorResponse{Error: KindUnauthenticated, Message: "invalid admin credentials"}
	})

	_, err := c.Admin("wrong", "").GetServices(context.Background())
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAdminStatsWithToken(t *testing.T) {
	t.Parallel()

	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/v1/admin/stats", r.URL.Path)
		if r.Header.Get("Authorization") != "Bearer admin-tok" {
			writeJSON(w, http.StatusForbidden, ErrorResponse{Error: KindForbidden, Message: "insufficient scope"})
			return
		}
		writeJSON(w, http.StatusOK, GetStatsResponse{Success: true, Stats: Stats{TotalUsers: 7}})
	})

	_, err := c.WithToken("user-tok").AdminStats(context.Background())
	require.ErrorIs(t, err, ErrForbidden)

	stats, err := c.WithToken("admin-tok").AdminStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 7, stats.TotalUsers)
}
