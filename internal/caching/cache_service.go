package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"propview/internal/models"
)

type CacheService interface {
	// Dashboard summary caching
	GetDashboardSummary(ctx context.Context) (*models.DashboardSummary, error)
	SetDashboardSummary(ctx context.Context, summary *models.DashboardSummary, ttl time.Duration) error
	InvalidateDashboardSummary(ctx context.Context) error

	// Session verification gate flag
	VerificationShown(ctx context.Context, sessionID string) (bool, error)
	MarkVerificationShown(ctx context.Context, sessionID string, ttl time.Duration) error

	// Health
	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Parse Redis URL to extract host:port if protocol is included
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	// Test initial connectivity
	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

const summaryKey = "propview:dashboard:summary"

func (r *redisCacheService) GetDashboardSummary(ctx context.Context) (*models.DashboardSummary, error) {
	data, err := r.client.Get(ctx, summaryKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var summary models.DashboardSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *redisCacheService) SetDashboardSummary(ctx context.Context, summary *models.DashboardSummary, ttl time.Duration) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, summaryKey, data, ttl).Err()
}

func (r *redisCacheService) InvalidateDashboardSummary(ctx context.Context) error {
	return r.client.Del(ctx, summaryKey).Err()
}

func verificationKey(sessionID string) string {
	return fmt.Sprintf("propview:session:%s:verification", sessionID)
}

func (r *redisCacheService) VerificationShown(ctx context.Context, sessionID string) (bool, error) {
	val, err := r.client.Get(ctx, verificationKey(sessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil // never shown this session
		}
		return false, err
	}
	return val == "true", nil
}

func (r *redisCacheService) MarkVerificationShown(ctx context.Context, sessionID string, ttl time.Duration) error {
	return r.client.Set(ctx, verificationKey(sessionID), "true", ttl).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
