package devserver

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/edvin/estately/internal/landlord"
	"github.com/edvin/estately/internal/platform"
)

// Store keeps the dev server's tenants in memory. A tenant's database
// becomes ready once readyAfter has elapsed since creation, which lets the
// client-side poller be exercised realistically without a real backend.
type Store struct {
	mu         sync.Mutex
	readyAfter time.Duration
	tenants    map[string]*landlord.Tenant // keyed by subdomain
	now        func() time.Time
}

func NewStore(readyAfter time.Duration) *Store {
	return &Store{
		readyAfter: readyAfter,
		tenants:    make(map[string]*landlord.Tenant),
		now:        time.Now,
	}
}

func (s *Store) CreateTenant(subdomain string, planID int, theme, themeCode string) (*landlord.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tenants[subdomain]; exists {
		return nil, fmt.Errorf("subdomain %s is already taken", subdomain)
	}

	now := s.now()
	t := &landlord.Tenant{
		ID:             platform.NewID(),
		Subdomain:      subdomain,
		PlanID:         planID,
		Theme:          theme,
		ThemeCode:      themeCode,
		Status:         landlord.StatusProvisioning,
		DatabaseStatus: landlord.DatabaseStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if s.readyAfter <= 0 {
		t.Status = landlord.StatusActive
		t.DatabaseStatus = landlord.DatabaseStatusReady
	}
	s.tenants[subdomain] = t
	return copyTenant(t), nil
}

// DatabaseStatus returns the tenant's readiness, flipping pending tenants to
// ready once their provisioning delay has elapsed.
func (s *Store) DatabaseStatus(subdomain string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tenants[subdomain]
	if !ok {
		return "", false
	}
	s.maybePromoteLocked(t)
	return t.DatabaseStatus, true
}

func (s *Store) ListTenants(p listParams) landlord.TenantPage {
	s.mu.Lock()
	defer s.mu.Unlock()

	var all []landlord.Tenant
	for _, t := range s.tenants {
		s.maybePromoteLocked(t)
		if p.Search != "" && !strings.Contains(t.Subdomain, p.Search) {
			continue
		}
		if p.Status != "" && t.Status != p.Status {
			continue
		}
		all = append(all, *t)
	}

	sort.Slice(all, func(i, j int) bool {
		if p.Order == "asc" {
			return all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	start := 0
	if p.Cursor != "" {
		for i, t := range all {
			if t.ID == p.Cursor {
				start = i + 1
				break
			}
		}
	}
	if start > len(all) {
		start = len(all)
	}
	rest := all[start:]

	hasMore := len(rest) > p.Limit
	if hasMore {
		rest = rest[:p.Limit]
	}
	page := landlord.TenantPage{Items: rest, HasMore: hasMore}
	if hasMore && len(rest) > 0 {
		page.NextCursor = rest[len(rest)-1].ID
	}
	if page.Items == nil {
		page.Items = []landlord.Tenant{}
	}
	return page
}

func (s *Store) maybePromoteLocked(t *landlord.Tenant) {
	if t.DatabaseStatus == landlord.DatabaseStatusPending &&
		s.now().Sub(t.CreatedAt) >= s.readyAfter {
		t.DatabaseStatus = landlord.DatabaseStatusReady
		t.Status = landlord.StatusActive
		t.UpdatedAt = s.now()
	}
}

func copyTenant(t *landlord.Tenant) *landlord.Tenant {
	c := *t
	return &c
}

// Plans returns the static dev pricing plans.
func Plans() []landlord.Plan {
	starter := "Up to 25 listings on a single compound"
	growth := "Unlimited listings, inquiries inbox, custom theme colors"
	agency := "Multiple compounds, team accounts, priority support"
	return []landlord.Plan{
		{ID: 1, Name: "Starter", Description: &starter, PriceCents: 2900, Currency: "USD", Period: "month"},
		{ID: 2, Name: "Growth", Description: &growth, PriceCents: 7900, Currency: "USD", Period: "month"},
		{ID: 3, Name: "Agency", Description: &agency, PriceCents: 19900, Currency: "USD", Period: "month"},
	}
}

// Themes returns the static dev storefront themes.
func Themes() []landlord.Theme {
	return []landlord.Theme{
		{ID: "default", Name: "Default", DefaultColor: "#2563eb"},
		{ID: "coastal", Name: "Coastal", DefaultColor: "#0e7490"},
		{ID: "terracotta", Name: "Terracotta", DefaultColor: "#c2410c"},
		{ID: "noir", Name: "Noir", DefaultColor: "#171717"},
	}
}
