package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"propview/internal/config"
	"propview/internal/models"
)

// PortalAPI is the read-only surface of the upstream property-portal REST
// API. Each fetch is independent of the others; callers decide how to degrade
// when one fails.
type PortalAPI interface {
	FetchTenants(ctx context.Context) ([]models.Tenant, error)
	FetchPayments(ctx context.Context) ([]models.Payment, error)
	FetchUnits(ctx context.Context) ([]models.Unit, error)
	FetchMaintenances(ctx context.Context) ([]models.MaintenanceRequest, error)
	Ping(ctx context.Context) error
}

// Client handles REST communication with the property portal.
type Client struct {
	config     *config.PortalConfig
	httpClient *http.Client
}

// NewClient creates a new portal REST API client.
func NewClient(cfg *config.PortalConfig) *Client {
	httpClient := &http.Client{
		Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}

	return &Client{
		config:     cfg,
		httpClient: httpClient,
	}
}

// get performs a GET request against the portal API and returns the raw body.
func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	url := fmt.Sprintf("%s%s", c.config.BaseURL, endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.config.APIKey))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("portal API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}

// FetchTenants retrieves all tenant records from the portal.
func (c *Client) FetchTenants(ctx context.Context) ([]models.Tenant, error) {
	body, err := c.get(ctx, "/tenants")
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data []models.Tenant `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tenants response: %w", err)
	}

	// A missing or null data field means an empty collection, not an error.
	if envelope.Data == nil {
		return []models.Tenant{}, nil
	}
	return envelope.Data, nil
}

// FetchPayments retrieves all payment records from the portal.
func (c *Client) FetchPayments(ctx context.Context) ([]models.Payment, error) {
	body, err := c.get(ctx, "/payments/all")
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data []models.Payment `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payments response: %w", err)
	}

	if envelope.Data == nil {
		return []models.Payment{}, nil
	}
	return envelope.Data, nil
}

// FetchUnits retrieves all unit records from the portal.
func (c *Client) FetchUnits(ctx context.Context) ([]models.Unit, error) {
	body, err := c.get(ctx, "/units")
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data []models.Unit `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal units response: %w", err)
	}

	if envelope.Data == nil {
		return []models.Unit{}, nil
	}
	return envelope.Data, nil
}

// FetchMaintenances retrieves all maintenance requests from the portal.
func (c *Client) FetchMaintenances(ctx context.Context) ([]models.MaintenanceRequest, error) {
	body, err := c.get(ctx, "/maintenances")
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data []models.MaintenanceRequest `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal maintenances response: %w", err)
	}

	if envelope.Data == nil {
		return []models.MaintenanceRequest{}, nil
	}
	return envelope.Data, nil
}

// Ping checks that the portal API is reachable.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.get(ctx, "/units")
	return err
}
