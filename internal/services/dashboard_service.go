package services

import (
	"context"
	"log"
	"sync"
	"time"

	"propview/internal/analytics"
	"propview/internal/caching"
	"propview/internal/models"
	"propview/internal/portal"
)

// recentPaymentsLimit caps the recent-payments feed for display. The
// underlying filtered list is unbounded; only the view is capped.
const recentPaymentsLimit = 8

// DashboardService composes the summary view-state from the portal
// collections.
type DashboardService interface {
	GetSummary(ctx context.Context) (*models.DashboardSummary, error)
	RefreshSummary(ctx context.Context) (*models.DashboardSummary, error)
}

type dashboardService struct {
	portal   portal.PortalAPI
	cache    caching.CacheService
	cacheTTL time.Duration
	now      func() time.Time
}

// NewDashboardService creates a dashboard service that caches the composed
// summary for cacheTTL.
func NewDashboardService(portalClient portal.PortalAPI, cache caching.CacheService, cacheTTL time.Duration) DashboardService {
	return &dashboardService{
		portal:   portalClient,
		cache:    cache,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

// GetSummary returns the cached summary when fresh, otherwise rebuilds it.
func (s *dashboardService) GetSummary(ctx context.Context) (*models.DashboardSummary, error) {
	cached, err := s.cache.GetDashboardSummary(ctx)
	if err != nil {
		log.Printf("Failed to read dashboard summary cache: %v", err)
	} else if cached != nil {
		return cached, nil
	}

	return s.RefreshSummary(ctx)
}

// RefreshSummary fetches the four collections concurrently, waits for all of
// them to settle, and composes the view-state. A failed fetch degrades to an
// empty collection; the dashboard always renders with best-available data.
func (s *dashboardService) RefreshSummary(ctx context.Context) (*models.DashboardSummary, error) {
	var (
		wg           sync.WaitGroup
		tenants      []models.Tenant
		payments     []models.Payment
		units        []models.Unit
		maintenances []models.MaintenanceRequest
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		fetched, err := s.portal.FetchTenants(ctx)
		if err != nil {
			log.Printf("Failed to fetch tenants: %v", err)
			return
		}
		tenants = fetched
	}()
	go func() {
		defer wg.Done()
		fetched, err := s.portal.FetchPayments(ctx)
		if err != nil {
			log.Printf("Failed to fetch payments: %v", err)
			return
		}
		payments = fetched
	}()
	go func() {
		defer wg.Done()
		fetched, err := s.portal.FetchUnits(ctx)
		if err != nil {
			log.Printf("Failed to fetch units: %v", err)
			return
		}
		units = fetched
	}()
	go func() {
		defer wg.Done()
		fetched, err := s.portal.FetchMaintenances(ctx)
		if err != nil {
			log.Printf("Failed to fetch maintenances: %v", err)
			return
		}
		maintenances = fetched
	}()
	wg.Wait()

	summary := composeSummary(s.now(), tenants, payments, units, maintenances)

	if err := s.cache.SetDashboardSummary(ctx, summary, s.cacheTTL); err != nil {
		log.Printf("Failed to cache dashboard summary: %v", err)
	}

	return summary, nil
}

// composeSummary derives the view-state from already-fetched collections.
func composeSummary(now time.Time, tenants []models.Tenant, payments []models.Payment, units []models.Unit, maintenances []models.MaintenanceRequest) *models.DashboardSummary {
	pending, completed := analytics.PartitionMaintenance(maintenances)

	feed := analytics.RecentPayments(now, payments, tenants)
	if len(feed) > recentPaymentsLimit {
		feed = feed[:recentPaymentsLimit]
	}

	return &models.DashboardSummary{
		Loading:              false,
		TenantCount:          len(tenants),
		OverdueCount:         len(analytics.OverdueTenants(tenants)),
		OccupancyRate:        analytics.OccupancyRate(units),
		RecentPayments:       feed,
		PendingMaintenance:   pending,
		CompletedMaintenance: completed,
		GeneratedAt:          now,
	}
}
