package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"propview/internal/common"
	"propview/internal/models"
	"propview/internal/services"
)

type MockVerificationService struct {
	mock.Mock
}

func (m *MockVerificationService) Evaluate(ctx context.Context, sessionID string, identity *models.Identity) string {
	args := m.Called(ctx, sessionID, identity)
	return args.String(0)
}

func (m *MockVerificationService) Confirm(identity *models.Identity) (string, string) {
	args := m.Called(identity)
	return args.String(0), args.String(1)
}

func (m *MockVerificationService) Dismiss() string {
	args := m.Called()
	return args.String(0)
}

func newGateContext(t *testing.T, method string, identity *models.Identity, sessionID string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	req := httptest.NewRequest(method, "/v1/dashboard/verification", nil)
	ctx := req.Context()
	if identity != nil {
		ctx = context.WithValue(ctx, common.IdentityKey, identity)
	}
	if sessionID != "" {
		ctx = context.WithValue(ctx, common.SessionIDKey, sessionID)
	}
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestVerificationStatus(t *testing.T) {
	admin := &models.Identity{UserID: "u1", Role: "admin"}

	mockSvc := &MockVerificationService{}
	mockSvc.On("Evaluate", mock.Anything, "sess-1", admin).Return(services.GatePending)

	h := NewVerificationHandlers(mockSvc)
	c, rec := newGateContext(t, http.MethodGet, admin, "sess-1")

	require.NoError(t, h.Status(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pending", decodeBody(t, rec)["state"])
	mockSvc.AssertExpectations(t)
}

func TestVerificationStatus_NoIdentity(t *testing.T) {
	mockSvc := &MockVerificationService{}
	mockSvc.On("Evaluate", mock.Anything, "", (*models.Identity)(nil)).Return(services.GateIdle)

	h := NewVerificationHandlers(mockSvc)
	c, rec := newGateContext(t, http.MethodGet, nil, "")

	require.NoError(t, h.Status(c))
	assert.Equal(t, "idle", decodeBody(t, rec)["state"])
}

func TestVerificationConfirm_AdminRedirect(t *testing.T) {
	admin := &models.Identity{UserID: "u1", Role: "admin"}

	mockSvc := &MockVerificationService{}
	mockSvc.On("Confirm", admin).Return(services.GateConfirmed, "/admin")

	h := NewVerificationHandlers(mockSvc)
	c, rec := newGateContext(t, http.MethodPost, admin, "sess-1")

	require.NoError(t, h.Confirm(c))
	body := decodeBody(t, rec)
	assert.Equal(t, "confirmed", body["state"])
	assert.Equal(t, "/admin", body["redirect"])
}

func TestVerificationConfirm_NoRedirect(t *testing.T) {
	tenant := &models.Identity{UserID: "u2", Role: "tenant"}

	mockSvc := &MockVerificationService{}
	mockSvc.On("Confirm", tenant).Return(services.GateConfirmed, "")

	h := NewVerificationHandlers(mockSvc)
	c, rec := newGateContext(t, http.MethodPost, tenant, "sess-2")

	require.NoError(t, h.Confirm(c))
	body := decodeBody(t, rec)
	assert.Equal(t, "confirmed", body["state"])
	assert.NotContains(t, body, "redirect")
}

func TestVerificationDismiss(t *testing.T) {
	mockSvc := &MockVerificationService{}
	mockSvc.On("Dismiss").Return(services.GateDismissed)

	h := NewVerificationHandlers(mockSvc)
	c, rec := newGateContext(t, http.MethodPost, nil, "")

	require.NoError(t, h.Dismiss(c))
	assert.Equal(t, "dismissed", decodeBody(t, rec)["state"])
}
