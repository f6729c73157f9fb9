package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"propview/internal/common"
	"propview/internal/services"
)

// VerificationHandlers handles the session verification gate endpoints
type VerificationHandlers struct {
	verificationService services.VerificationService
}

// NewVerificationHandlers creates a new verification handlers instance
func NewVerificationHandlers(verificationService services.VerificationService) *VerificationHandlers {
	return &VerificationHandlers{verificationService: verificationService}
}

// Status evaluates the gate for the current session and identity. The first
// privileged call per session gets "pending"; every later call gets "idle".
func (h *VerificationHandlers) Status(c echo.Context) error {
	ctx := c.Request().Context()
	identity, _ := common.GetIdentityFromContext(ctx)
	sessionID, _ := common.GetSessionIDFromContext(ctx)

	state := h.verificationService.Evaluate(ctx, sessionID, identity)

	return c.JSON(http.StatusOK, map[string]string{
		"state": state,
	})
}

// Confirm resolves the prompt and returns the role-specific destination.
func (h *VerificationHandlers) Confirm(c echo.Context) error {
	identity, _ := common.GetIdentityFromContext(c.Request().Context())

	state, redirect := h.verificationService.Confirm(identity)

	resp := map[string]string{
		"state": state,
	}
	if redirect != "" {
		resp["redirect"] = redirect
	}

	return c.JSON(http.StatusOK, resp)
}

// Dismiss closes the prompt without a redirect.
func (h *VerificationHandlers) Dismiss(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"state": h.verificationService.Dismiss(),
	})
}
