package analytics

import (
	"math"
	"sort"
	"strings"
	"time"

	"propview/internal/models"
)

// This package derives the dashboard metrics from already-fetched
// collections. Every function is pure and deterministic: time-dependent
// calculations take an explicit now instead of reading the wall clock.

// recentWindowDays is the size of the recent-payments window in calendar days.
const recentWindowDays = 30

// OverdueTenants returns the tenants whose status marks them overdue, in
// collection order.
func OverdueTenants(tenants []models.Tenant) []models.Tenant {
	overdue := make([]models.Tenant, 0)
	for _, tenant := range tenants {
		if tenant.Status == "Overdue" {
			overdue = append(overdue, tenant)
		}
	}
	return overdue
}

// OccupancyRate returns the percentage of occupied units rounded to the
// nearest integer, ties away from zero. No units means a rate of 0.
func OccupancyRate(units []models.Unit) int {
	if len(units) == 0 {
		return 0
	}

	occupied := 0
	for _, unit := range units {
		if unit.Status == "Occupied" {
			occupied++
		}
	}

	return int(math.Round(float64(occupied) / float64(len(units)) * 100))
}

// RecentPayments returns the payments dated within the last 30 calendar days
// (UTC, inclusive of both boundary days), most recent first, joined to their
// tenants' display names. Payments whose tenant reference cannot be resolved
// still appear, under the "Unknown Tenant" sentinel. Ties on the payment date
// keep collection order.
func RecentPayments(now time.Time, payments []models.Payment, tenants []models.Tenant) []models.PaymentView {
	today := utcDay(now)
	windowStart := today.AddDate(0, 0, -recentWindowDays)

	names := make(map[string]string, len(tenants))
	for _, tenant := range tenants {
		names[tenant.ID] = strings.TrimSpace(tenant.FirstName + " " + tenant.LastName)
	}

	recent := make([]models.Payment, 0)
	for _, payment := range payments {
		day := utcDay(payment.PaymentDate)
		if day.Before(windowStart) || day.After(today) {
			continue
		}
		recent = append(recent, payment)
	}

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].PaymentDate.After(recent[j].PaymentDate)
	})

	views := make([]models.PaymentView, 0, len(recent))
	for _, payment := range recent {
		name, resolved := names[payment.TenantID]
		switch {
		case payment.TenantID == "" || !resolved:
			name = "Unknown Tenant"
		case name == "":
			name = "Deleted Tenant"
		}

		method := payment.PaymentMethod
		if method == "" {
			method = "N/A"
		}

		views = append(views, models.PaymentView{
			ID:            payment.ID,
			TenantName:    name,
			Amount:        payment.Amount,
			PaymentMethod: method,
			PaymentDate:   payment.PaymentDate,
		})
	}
	return views
}

// PartitionMaintenance splits requests into pending and completed
// sub-collections. Requests in any other status land in neither.
func PartitionMaintenance(requests []models.MaintenanceRequest) (pending, completed []models.MaintenanceRequest) {
	pending = make([]models.MaintenanceRequest, 0)
	completed = make([]models.MaintenanceRequest, 0)
	for _, request := range requests {
		switch request.Status {
		case "Pending":
			pending = append(pending, request)
		case "Completed":
			completed = append(completed, request)
		}
	}
	return pending, completed
}

// utcDay truncates t to its UTC calendar day.
func utcDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
