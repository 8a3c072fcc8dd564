package landlord

import "time"

// Database readiness states reported by the landlord API.
const (
	DatabaseStatusPending = "pending"
	DatabaseStatusReady   = "ready"
)

// Tenant lifecycle status constants.
const (
	StatusPending      = "pending"
	StatusProvisioning = "provisioning"
	StatusActive       = "active"
	StatusSuspended    = "suspended"
)

type CreateTenantRequest struct {
	Subdomain string `json:"subdomain"`
	PlanID    int    `json:"plan_id"`
	Theme     string `json:"theme"`
	ThemeCode string `json:"theme_code"`
}

// TenantRef is the nested tenant object in a provisioning response.
type TenantRef struct {
	ID        string `json:"id"`
	Subdomain string `json:"subdomain"`
}

// ProvisionResult is the data payload returned by POST /tenants.
type ProvisionResult struct {
	Tenant         *TenantRef `json:"tenant,omitempty"`
	Subdomain      string     `json:"subdomain,omitempty"`
	DatabaseStatus string     `json:"database_status"`
}

// SubdomainID returns the created tenant's identifying subdomain: the first
// non-empty of tenant.id, tenant.subdomain, and the top-level subdomain.
func (r *ProvisionResult) SubdomainID() string {
	if r.Tenant != nil {
		if r.Tenant.ID != "" {
			return r.Tenant.ID
		}
		if r.Tenant.Subdomain != "" {
			return r.Tenant.Subdomain
		}
	}
	return r.Subdomain
}

type databaseStatusResult struct {
	DatabaseStatus string `json:"database_status"`
}

type Plan struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	PriceCents  int     `json:"price_cents"`
	Currency    string  `json:"currency"`
	Period      string  `json:"period"`
}

type Theme struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DefaultColor string `json:"default_color"`
}

type Tenant struct {
	ID             string    `json:"id"`
	Subdomain      string    `json:"subdomain"`
	PlanID         int       `json:"plan_id"`
	Theme          string    `json:"theme"`
	ThemeCode      string    `json:"theme_code"`
	Status         string    `json:"status"`
	DatabaseStatus string    `json:"database_status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TenantPage is the data payload of the tenant list endpoint.
type TenantPage struct {
	Items      []Tenant `json:"items"`
	NextCursor string   `json:"next_cursor,omitempty"`
	HasMore    bool     `json:"has_more"`
}
