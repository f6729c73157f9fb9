package middleware

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"propview/internal/common"
	"propview/internal/models"
)

// SessionIDHeader carries the browser session identifier issued alongside the
// credential by the authentication service.
const SessionIDHeader = "X-Session-ID"

// IdentityClaims are the portal credential claims consumed for UI branching.
type IdentityClaims struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// DecodeIdentity extracts the identity claims from a session credential
// without verifying the signature or expiry. Integrity enforcement belongs to
// the authentication service that issued the credential; this decode exists
// only to branch the UI on the caller's role.
func DecodeIdentity(credential string) (*models.Identity, error) {
	claims := &IdentityClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(credential, claims); err != nil {
		return nil, fmt.Errorf("failed to parse credential: %w", err)
	}

	if claims.Role == "" {
		return nil, errors.New("credential is missing the role claim")
	}

	identity := &models.Identity{
		UserID: claims.UserID,
		Role:   claims.Role,
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}
	return identity, nil
}

// IdentityMiddleware decodes the bearer credential into the request context
// when one is present, and captures the session identifier header. A decode
// failure is logged and treated as an absent identity; this middleware never
// rejects a request.
func IdentityMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			if sessionID := c.Request().Header.Get(SessionIDHeader); sessionID != "" {
				ctx = context.WithValue(ctx, common.SessionIDKey, sessionID)
			}

			if authHeader := c.Request().Header.Get("Authorization"); authHeader != "" {
				tokenString := strings.TrimPrefix(authHeader, "Bearer ")
				if tokenString != authHeader {
					identity, err := DecodeIdentity(tokenString)
					if err != nil {
						log.Printf("Invalid session credential: %v", err)
					} else {
						ctx = context.WithValue(ctx, common.IdentityKey, identity)
					}
				}
			}

			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
