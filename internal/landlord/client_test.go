package landlord

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTenant_Success(t *testing.T) {
	var gotBody CreateTenantRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/tenants", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"subdomain":       "mysite",
				"database_status": "pending",
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	result, err := c.CreateTenant(context.Background(), CreateTenantRequest{
		Subdomain: "mysite", PlanID: 2, Theme: "default", ThemeCode: "#1e40af",
	})
	require.NoError(t, err)

	assert.Equal(t, "mysite", gotBody.Subdomain)
	assert.Equal(t, 2, gotBody.PlanID)
	assert.Equal(t, "mysite", result.SubdomainID())
	assert.Equal(t, DatabaseStatusPending, result.DatabaseStatus)
}

func TestCreateTenant_ServerErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   "subdomain already taken",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.CreateTenant(context.Background(), CreateTenantRequest{Subdomain: "mysite"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "subdomain already taken", apiErr.Error())
}

func TestCreateTenant_SuccessFalseBody(t *testing.T) {
	// A 200 with success:false still classifies as a request failure.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "plan not available",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.CreateTenant(context.Background(), CreateTenantRequest{Subdomain: "mysite"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "plan not available", apiErr.Message)
}

func TestCreateTenant_ErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.CreateTenant(context.Background(), CreateTenantRequest{Subdomain: "mysite"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Empty(t, apiErr.Message)
	assert.Contains(t, apiErr.Error(), "status 500")
}

func TestDatabaseStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tenants/mysite/database-status", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"database_status": "ready"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	status, err := c.DatabaseStatus(context.Background(), "mysite")
	require.NoError(t, err)
	assert.Equal(t, DatabaseStatusReady, status)
}

func TestListPlans_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/plans", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": []any{}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	plans, err := c.ListPlans(context.Background())
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestListTenants_QueryParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "beach", q.Get("search"))
		assert.Equal(t, "active", q.Get("status"))
		assert.Equal(t, "25", q.Get("limit"))
		assert.Equal(t, "abc", q.Get("cursor"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"items":       []map[string]any{{"id": "t1", "subdomain": "beachhomes"}},
				"next_cursor": "t1",
				"has_more":    true,
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	page, err := c.ListTenants(context.Background(), ListParams{
		Search: "beach", Status: "active", Limit: 25, Cursor: "abc",
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "beachhomes", page.Items[0].Subdomain)
	assert.True(t, page.HasMore)
	assert.Equal(t, "t1", page.NextCursor)
}

func TestSubdomainID_Priority(t *testing.T) {
	tests := []struct {
		name   string
		result ProvisionResult
		want   string
	}{
		{"tenant id wins", ProvisionResult{Tenant: &TenantRef{ID: "a", Subdomain: "b"}, Subdomain: "c"}, "a"},
		{"tenant subdomain next", ProvisionResult{Tenant: &TenantRef{Subdomain: "b"}, Subdomain: "c"}, "b"},
		{"top-level fallback", ProvisionResult{Subdomain: "c"}, "c"},
		{"nil tenant", ProvisionResult{Subdomain: "c"}, "c"},
		{"all empty", ProvisionResult{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.SubdomainID())
		})
	}
}

func TestListParams_ClampsLimit(t *testing.T) {
	q := ListParams{Limit: 10_000}.Query()
	assert.Equal(t, "200", q.Get("limit"))
}

func TestListParams_OmitsZeroValues(t *testing.T) {
	q := ListParams{}.Query()
	assert.Empty(t, q.Encode())
}

func TestListParams_RejectsBadOrder(t *testing.T) {
	q := ListParams{Order: "sideways"}.Query()
	assert.Empty(t, q.Get("order"))
}
