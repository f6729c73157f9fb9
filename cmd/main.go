package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"propview/internal/caching"
	"propview/internal/config"
	"propview/internal/handlers"
	"propview/internal/jobs/background"
	"propview/internal/middleware"
	"propview/internal/portal"
	"propview/internal/services"
)

const version = "1.0.0"

func main() {
	// Portal API configuration
	var portalConfig *config.PortalConfig
	if configPath := os.Getenv("PORTAL_CONFIG"); configPath != "" {
		loaded, err := config.LoadPortalConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load portal config: %v", err)
		}
		portalConfig = loaded
	} else {
		portalConfig = config.PortalConfigFromEnv()
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379" // Default Redis address
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDBStr := os.Getenv("REDIS_DB")
	redisDB := 0 // Default DB
	if redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// Session flag lifetime, matching the browser session lifetime
	sessionTTL := 12 * time.Hour
	if ttlStr := os.Getenv("SESSION_TTL_HOURS"); ttlStr != "" {
		if hours, err := strconv.Atoi(ttlStr); err == nil && hours > 0 {
			sessionTTL = time.Duration(hours) * time.Hour
		}
	}

	// Summary cache lifetime
	summaryTTL := time.Minute
	if ttlStr := os.Getenv("SUMMARY_CACHE_SECONDS"); ttlStr != "" {
		if seconds, err := strconv.Atoi(ttlStr); err == nil && seconds > 0 {
			summaryTTL = time.Duration(seconds) * time.Second
		}
	}

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Create portal client
	portalClient := portal.NewClient(portalConfig)

	// Create services
	dashboardSvc := services.NewDashboardService(portalClient, cacheSvc, summaryTTL)
	verificationSvc := services.NewVerificationService(cacheSvc, sessionTTL)

	// Create handlers
	dashboardHandlers := handlers.NewDashboardHandlers(dashboardSvc)
	verificationHandlers := handlers.NewVerificationHandlers(verificationSvc)
	healthHandlers := handlers.NewHealthHandlers(cacheSvc, portalClient)

	// Background jobs
	scheduler := background.NewJobScheduler(dashboardSvc, cacheSvc)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start job scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.RequestIDWithConfig(echoMiddleware.RequestIDConfig{
		Generator: func() string { return uuid.New().String() },
	}))

	// Version middleware
	versionMiddleware := middleware.NewVersionMiddleware()
	e.Use(versionMiddleware.APIVersionResolver())

	// Identity extraction (best-effort, never rejects)
	e.Use(middleware.IdentityMiddleware())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	// API routes
	v1 := e.Group("/v1")
	v1.Use(versionMiddleware.VersionHeader("v1"))

	// Dashboard routes
	v1.GET("/dashboard/summary", dashboardHandlers.GetSummary)
	v1.POST("/dashboard/summary/refresh", dashboardHandlers.RefreshSummary)

	// Session verification gate routes
	v1.GET("/dashboard/verification", verificationHandlers.Status)
	v1.POST("/dashboard/verification/confirm", verificationHandlers.Confirm)
	v1.POST("/dashboard/verification/dismiss", verificationHandlers.Dismiss)

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("Propview server v%s starting on port %d", version, port)
	log.Printf("Upstream portal: %s", portalConfig.BaseURL)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
