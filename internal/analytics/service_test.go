package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"propview/internal/models"
)

var now = time.Date(2024, 6, 15, 13, 45, 0, 0, time.UTC)

func TestOverdueTenants(t *testing.T) {
	tenants := []models.Tenant{
		{ID: "t1", Status: "Active"},
		{ID: "t2", Status: "Overdue"},
		{ID: "t3", Status: "Overdue"},
	}

	overdue := OverdueTenants(tenants)
	assert.Len(t, overdue, 2)
	assert.Equal(t, "t2", overdue[0].ID)
	assert.Equal(t, "t3", overdue[1].ID)
}

func TestOverdueTenants_OrderIndependentCount(t *testing.T) {
	tenants := []models.Tenant{
		{ID: "t1", Status: "Overdue"},
		{ID: "t2", Status: "Active"},
		{ID: "t3", Status: "Overdue"},
	}
	reversed := []models.Tenant{tenants[2], tenants[1], tenants[0]}

	assert.Len(t, OverdueTenants(tenants), 2)
	assert.Len(t, OverdueTenants(reversed), 2)
}

func TestOverdueTenants_Empty(t *testing.T) {
	assert.Empty(t, OverdueTenants(nil))
	assert.Empty(t, OverdueTenants([]models.Tenant{}))
}

func TestOccupancyRate(t *testing.T) {
	units := []models.Unit{
		{Status: "Occupied"},
		{Status: "Occupied"},
		{Status: "Vacant"},
	}

	// 66.67 rounds up to 67
	assert.Equal(t, 67, OccupancyRate(units))
}

func TestOccupancyRate_NoUnits(t *testing.T) {
	assert.Equal(t, 0, OccupancyRate(nil))
	assert.Equal(t, 0, OccupancyRate([]models.Unit{}))
}

func TestOccupancyRate_Bounds(t *testing.T) {
	allOccupied := []models.Unit{{Status: "Occupied"}, {Status: "Occupied"}}
	assert.Equal(t, 100, OccupancyRate(allOccupied))

	allVacant := []models.Unit{{Status: "Vacant"}, {Status: "Vacant"}}
	assert.Equal(t, 0, OccupancyRate(allVacant))

	mixed := []models.Unit{
		{Status: "Occupied"},
		{Status: "Vacant"},
		{Status: "Under Renovation"},
	}
	rate := OccupancyRate(mixed)
	assert.GreaterOrEqual(t, rate, 0)
	assert.LessOrEqual(t, rate, 100)
	assert.Equal(t, 33, rate)
}

func TestRecentPayments_Window(t *testing.T) {
	payments := []models.Payment{
		{ID: "p1", PaymentDate: now.AddDate(0, 0, -5)},
		{ID: "p2", PaymentDate: now.AddDate(0, 0, -10)},
		{ID: "p3", PaymentDate: now.AddDate(0, 0, -40)},
	}

	feed := RecentPayments(now, payments, nil)
	assert.Len(t, feed, 2)
	assert.Equal(t, "p1", feed[0].ID)
	assert.Equal(t, "p2", feed[1].ID)
}

func TestRecentPayments_InclusiveBoundaries(t *testing.T) {
	payments := []models.Payment{
		// 30 days ago at one minute past midnight UTC: inside the window
		{ID: "edge", PaymentDate: time.Date(2024, 5, 16, 0, 1, 0, 0, time.UTC)},
		// same calendar day as now: inside
		{ID: "today", PaymentDate: time.Date(2024, 6, 15, 23, 59, 0, 0, time.UTC)},
		// 31 days ago: outside
		{ID: "old", PaymentDate: time.Date(2024, 5, 15, 23, 59, 0, 0, time.UTC)},
	}

	feed := RecentPayments(now, payments, nil)
	assert.Len(t, feed, 2)
	assert.Equal(t, "today", feed[0].ID)
	assert.Equal(t, "edge", feed[1].ID)
}

func TestRecentPayments_StableTieBreak(t *testing.T) {
	sameDate := now.AddDate(0, 0, -3)
	payments := []models.Payment{
		{ID: "first", PaymentDate: sameDate},
		{ID: "second", PaymentDate: sameDate},
		{ID: "third", PaymentDate: sameDate},
	}

	feed := RecentPayments(now, payments, nil)
	assert.Equal(t, []string{"first", "second", "third"}, []string{feed[0].ID, feed[1].ID, feed[2].ID})
}

func TestRecentPayments_Deterministic(t *testing.T) {
	payments := []models.Payment{
		{ID: "p1", PaymentDate: now.AddDate(0, 0, -1)},
		{ID: "p2", PaymentDate: now.AddDate(0, 0, -2)},
	}

	first := RecentPayments(now, payments, nil)
	second := RecentPayments(now, payments, nil)
	assert.Equal(t, first, second)
}

func TestRecentPayments_TenantJoin(t *testing.T) {
	tenants := []models.Tenant{
		{ID: "t1", FirstName: "Maria", LastName: "Santos"},
	}
	payments := []models.Payment{
		{ID: "p1", TenantID: "t1", PaymentDate: now.AddDate(0, 0, -1)},
	}

	feed := RecentPayments(now, payments, tenants)
	assert.Len(t, feed, 1)
	assert.Equal(t, "Maria Santos", feed[0].TenantName)
}

func TestRecentPayments_OrphanedPayment(t *testing.T) {
	payments := []models.Payment{
		{ID: "missing-ref", TenantID: "", PaymentDate: now.AddDate(0, 0, -1)},
		{ID: "unresolved-ref", TenantID: "ghost", PaymentDate: now.AddDate(0, 0, -2)},
	}

	feed := RecentPayments(now, payments, []models.Tenant{{ID: "t1", FirstName: "Maria", LastName: "Santos"}})
	assert.Len(t, feed, 2)
	assert.Equal(t, "Unknown Tenant", feed[0].TenantName)
	assert.Equal(t, "Unknown Tenant", feed[1].TenantName)
	assert.NotEmpty(t, feed[0].TenantName)
}

func TestRecentPayments_BlankTenantName(t *testing.T) {
	tenants := []models.Tenant{
		{ID: "t1", FirstName: "", LastName: ""},
	}
	payments := []models.Payment{
		{ID: "p1", TenantID: "t1", PaymentDate: now.AddDate(0, 0, -1)},
	}

	feed := RecentPayments(now, payments, tenants)
	assert.Equal(t, "Deleted Tenant", feed[0].TenantName)
}

func TestRecentPayments_MethodFallback(t *testing.T) {
	payments := []models.Payment{
		{ID: "p1", PaymentMethod: "", PaymentDate: now.AddDate(0, 0, -1)},
		{ID: "p2", PaymentMethod: "GCash", PaymentDate: now.AddDate(0, 0, -2)},
	}

	feed := RecentPayments(now, payments, nil)
	assert.Equal(t, "N/A", feed[0].PaymentMethod)
	assert.Equal(t, "GCash", feed[1].PaymentMethod)
}

func TestRecentPayments_ZeroDateExcluded(t *testing.T) {
	payments := []models.Payment{
		{ID: "undated"},
	}

	assert.Empty(t, RecentPayments(now, payments, nil))
}

func TestRecentPayments_Empty(t *testing.T) {
	assert.Empty(t, RecentPayments(now, nil, nil))
}

func TestPartitionMaintenance(t *testing.T) {
	requests := []models.MaintenanceRequest{
		{ID: "m1", Status: "Pending"},
		{ID: "m2", Status: "Completed"},
		{ID: "m3", Status: "In Progress"},
		{ID: "m4", Status: "Pending"},
	}

	pending, completed := PartitionMaintenance(requests)
	assert.Len(t, pending, 2)
	assert.Len(t, completed, 1)
	assert.Equal(t, "m1", pending[0].ID)
	assert.Equal(t, "m4", pending[1].ID)
	assert.Equal(t, "m2", completed[0].ID)
}

func TestPartitionMaintenance_Empty(t *testing.T) {
	pending, completed := PartitionMaintenance(nil)
	assert.Empty(t, pending)
	assert.Empty(t, completed)
}
