package landlord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client talks to the landlord provisioning API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError is a landlord API request that was rejected or failed. Message
// carries the server-provided error string when the body had one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("landlord API: status %d", e.StatusCode)
}

// envelope is the JSON wrapper every landlord API response uses.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

func (e *envelope) errorMessage() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

func (c *Client) do(ctx context.Context, method, path string, body any, result any) error {
	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("landlord API request: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	// A non-2xx status or a success:false body both classify as a request
	// failure. Prefer the server message when the body was readable.
	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if decodeErr == nil {
			apiErr.Message = env.errorMessage()
		}
		return apiErr
	}
	if decodeErr != nil {
		return fmt.Errorf("decode response: %w", decodeErr)
	}
	if !env.Success {
		return &APIError{StatusCode: resp.StatusCode, Message: env.errorMessage()}
	}

	if result != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, result); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	return c.do(ctx, http.MethodGet, path, nil, result)
}

// CreateTenant submits a provisioning request for a new tenant storefront.
func (c *Client) CreateTenant(ctx context.Context, req CreateTenantRequest) (*ProvisionResult, error) {
	var result ProvisionResult
	if err := c.do(ctx, http.MethodPost, "/tenants", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DatabaseStatus returns the tenant's database readiness ("pending" or "ready").
func (c *Client) DatabaseStatus(ctx context.Context, subdomain string) (string, error) {
	var result databaseStatusResult
	path := fmt.Sprintf("/tenants/%s/database-status", url.PathEscape(subdomain))
	if err := c.get(ctx, path, &result); err != nil {
		return "", err
	}
	return result.DatabaseStatus, nil
}

// ListPlans returns the selectable pricing plans.
func (c *Client) ListPlans(ctx context.Context) ([]Plan, error) {
	var plans []Plan
	if err := c.get(ctx, "/plans", &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// ListThemes returns the selectable storefront themes.
func (c *Client) ListThemes(ctx context.Context) ([]Theme, error) {
	var themes []Theme
	if err := c.get(ctx, "/themes", &themes); err != nil {
		return nil, err
	}
	return themes, nil
}

// ListTenants returns one page of tenants matching the given list parameters.
func (c *Client) ListTenants(ctx context.Context, params ListParams) (*TenantPage, error) {
	var page TenantPage
	path := "/tenants"
	if q := params.Query().Encode(); q != "" {
		path += "?" + q
	}
	if err := c.get(ctx, path, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
