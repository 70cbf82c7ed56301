package domain

import "time"

// Service is a third-party product that credentials are stocked for.
type Service struct {
	ID          string
	Name        string
	Icon        string // optional
	Description string // optional
	Active      bool
	CreatedAt   time.Time
}

// ServiceSummary is a Service with its inventory counts.
type ServiceSummary struct {
	Service
	Total     int
	Available int
}

// InventoryStats is the admin overview of the whole vault.
type InventoryStats struct {
	Services    int
	Credentials int
	Unclaimed   int
	Users       int // users that ever hit the claim path (have a quota profile)
}
