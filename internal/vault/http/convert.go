package http

import (
	"time"

	"github.com/aussiebroadwan/accountvault/internal/vault/domain"
	"github.com/aussiebroadwan/accountvault/pkg/vaultsdk"
)

func toServiceInfo(s domain.Service) vaultsdk.ServiceInfo {
	return vaultsdk.ServiceInfo{
		ID:          s.ID,
		Name:        s.Name,
		Icon:        s.Icon,
		Description: s.Description,
		Active:      s.Active,
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
	}
}

func toServiceInfos(in []domain.ServiceSummary) []vaultsdk.ServiceInfo {
	out := make([]vaultsdk.ServiceInfo, len(in))
	for i, s := range in {
		out[i] = toServiceInfo(s.Service)
		out[i].Total = s.Total
		out[i].Available = s.Available
	}
	return out
}

func toAccountInfo(c domain.Credential) vaultsdk.AccountInfo {
	return vaultsdk.AccountInfo{
		ID:        c.ID,
		ServiceID: c.ServiceID,
		Email:     c.Login,
		Claimed:   c.Claimed,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}

func toStats(st domain.InventoryStats) vaultsdk.Stats {
	return vaultsdk.Stats{
		TotalServices:     st.Services,
		TotalAccounts:     st.Credentials,
		AvailableAccounts: st.Unclaimed,
		TotalUsers:        st.Users,
	}
}
