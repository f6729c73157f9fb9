package services

import (
	"context"
	"log"
	"time"

	"propview/internal/caching"
	"propview/internal/models"
)

// Gate states for the one-time session verification prompt.
const (
	GateIdle      = "idle"
	GatePending   = "pending"
	GateConfirmed = "confirmed"
	GateDismissed = "dismissed"
)

// VerificationService decides whether a privileged caller is interrupted with
// the one-time confirmation prompt, at most once per browser session. The
// gate is a UX affordance, not an authorization boundary.
type VerificationService interface {
	Evaluate(ctx context.Context, sessionID string, identity *models.Identity) string
	Confirm(identity *models.Identity) (state, redirect string)
	Dismiss() string
}

type verificationService struct {
	cache      caching.CacheService
	sessionTTL time.Duration
}

// NewVerificationService creates a verification gate backed by the given
// cache. sessionTTL bounds the shown-flag's lifetime to the browser session's.
func NewVerificationService(cache caching.CacheService, sessionTTL time.Duration) VerificationService {
	return &verificationService{cache: cache, sessionTTL: sessionTTL}
}

// Evaluate returns GatePending exactly once per session for admin and staff
// identities, and GateIdle in every other case. The shown-flag is written
// before GatePending is ever returned, so a reload mid-confirmation cannot
// re-prompt.
func (s *verificationService) Evaluate(ctx context.Context, sessionID string, identity *models.Identity) string {
	if identity == nil || sessionID == "" {
		return GateIdle
	}
	if identity.Role != "admin" && identity.Role != "staff" {
		return GateIdle
	}

	shown, err := s.cache.VerificationShown(ctx, sessionID)
	if err != nil {
		// Prompting again while the flag store is degraded could break the
		// at-most-once guarantee, so the prompt is suppressed instead.
		log.Printf("Failed to read verification flag for session %s: %v", sessionID, err)
		return GateIdle
	}
	if shown {
		return GateIdle
	}

	if err := s.cache.MarkVerificationShown(ctx, sessionID, s.sessionTTL); err != nil {
		log.Printf("Failed to mark verification shown for session %s: %v", sessionID, err)
		return GateIdle
	}
	return GatePending
}

// Confirm resolves the prompt and returns the role-specific destination.
// Roles other than admin and staff get no redirect; they cannot normally
// reach the prompt at all.
func (s *verificationService) Confirm(identity *models.Identity) (string, string) {
	redirect := ""
	if identity != nil {
		switch identity.Role {
		case "admin":
			redirect = "/admin"
		case "staff":
			redirect = "/staff"
		}
	}
	return GateConfirmed, redirect
}

// Dismiss closes the prompt without a redirect.
func (s *verificationService) Dismiss() string {
	return GateDismissed
}
