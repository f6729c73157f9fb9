package background

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"propview/internal/caching"
	"propview/internal/services"
)

// JobScheduler manages the service's background jobs.
type JobScheduler struct {
	scheduler    gocron.Scheduler
	dashboardSvc services.DashboardService
	cacheSvc     caching.CacheService
	jobs         map[string]gocron.Job
	mu           sync.RWMutex
}

// NewJobScheduler creates a new job scheduler.
func NewJobScheduler(dashboardSvc services.DashboardService, cacheSvc caching.CacheService) *JobScheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:    scheduler,
		dashboardSvc: dashboardSvc,
		cacheSvc:     cacheSvc,
		jobs:         make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js
}

// Start starts the job scheduler.
func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

// Stop stops the job scheduler.
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// registerJobs registers all background jobs.
func (js *JobScheduler) registerJobs() {
	// Summary cache warm - every 5 minutes
	refreshJob, err := js.scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(js.refreshDashboardSummary, context.Background()),
		gocron.WithName("dashboard-summary-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create summary refresh job: %v", err)
	} else {
		js.jobs["summary-refresh"] = refreshJob
	}

	// Cache cleanup job - every hour
	cacheJob, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.cleanupExpiredCache),
		gocron.WithName("cache-cleanup"),
	)
	if err != nil {
		log.Printf("Failed to create cache cleanup job: %v", err)
	} else {
		js.jobs["cache-cleanup"] = cacheJob
	}

	log.Printf("Registered %d background jobs", len(js.jobs))
}

// refreshDashboardSummary rebuilds the cached dashboard summary so the first
// request after the cache expires still gets a warm response.
func (js *JobScheduler) refreshDashboardSummary(ctx context.Context) error {
	log.Printf("Starting dashboard summary refresh")

	if err := js.cacheSvc.InvalidateDashboardSummary(ctx); err != nil {
		log.Printf("Failed to invalidate dashboard summary cache: %v", err)
	}

	if _, err := js.dashboardSvc.RefreshSummary(ctx); err != nil {
		log.Printf("Failed to refresh dashboard summary: %v", err)
		return err
	}

	log.Printf("Completed dashboard summary refresh")
	return nil
}

// cleanupExpiredCache performs cleanup of expired cache entries.
func (js *JobScheduler) cleanupExpiredCache() error {
	// Redis expires the summary and session flags via TTL; nothing to sweep.
	log.Printf("Cache cleanup completed (Redis handles TTL automatically)")
	return nil
}

// AddJob adds a custom job to the scheduler.
func (js *JobScheduler) AddJob(name string, interval time.Duration, taskFn interface{}, params ...interface{}) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(taskFn, params...),
		gocron.WithName(name),
	)
	if err != nil {
		return err
	}

	js.jobs[name] = job
	log.Printf("Added custom job: %s", name)
	return nil
}

// RemoveJob removes a job from the scheduler.
func (js *JobScheduler) RemoveJob(name string) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	if job, exists := js.jobs[name]; exists {
		err := js.scheduler.RemoveJob(job.ID())
		delete(js.jobs, name)
		return err
	}

	return nil
}

// GetJobStatus returns information about scheduled jobs.
func (js *JobScheduler) GetJobStatus() map[string]interface{} {
	js.mu.RLock()
	defer js.mu.RUnlock()

	status := make(map[string]interface{})
	status["total_jobs"] = len(js.jobs)

	jobs := make([]string, 0, len(js.jobs))
	for name := range js.jobs {
		jobs = append(jobs, name)
	}
	status["jobs"] = jobs

	return status
}
