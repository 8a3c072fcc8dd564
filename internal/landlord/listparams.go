package landlord

import (
	"net/url"
	"strconv"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// ListParams holds pagination, search, filter, and sort parameters for
// tenant list requests.
type ListParams struct {
	Limit  int
	Cursor string
	Search string
	Status string
	Sort   string
	Order  string // "asc" or "desc"
}

// Query builds the query string for a list request. Zero values are omitted;
// the limit is clamped to MaxLimit.
func (p ListParams) Query() url.Values {
	q := url.Values{}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	if p.Order == "asc" || p.Order == "desc" {
		q.Set("order", p.Order)
	}
	if p.Cursor != "" {
		q.Set("cursor", p.Cursor)
	}
	if p.Limit > 0 {
		limit := p.Limit
		if limit > MaxLimit {
			limit = MaxLimit
		}
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}
