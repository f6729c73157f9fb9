package models

import "time"

// PaymentView is a payment joined to its tenant's display name for the
// recent-payments feed.
type PaymentView struct {
	ID            string    `json:"id"`
	TenantName    string    `json:"tenantName"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"paymentMethod"`
	PaymentDate   time.Time `json:"paymentDate"`
}

// DashboardSummary is the composed, immutable view-state handed to
// presentation. Loading is false once all four collection fetches have
// settled; a failed fetch leaves its metrics at empty/zero defaults.
type DashboardSummary struct {
	Loading              bool                 `json:"loading"`
	TenantCount          int                  `json:"tenantCount"`
	OverdueCount         int                  `json:"overdueCount"`
	OccupancyRate        int                  `json:"occupancyRate"`
	RecentPayments       []PaymentView        `json:"recentPayments"`
	PendingMaintenance   []MaintenanceRequest `json:"pendingMaintenance"`
	CompletedMaintenance []MaintenanceRequest `json:"completedMaintenance"`
	GeneratedAt          time.Time            `json:"generatedAt"`
}
