package devserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/edvin/estately/internal/platform"
)

var validate = validator.New()

func init() {
	validate.RegisterValidation("subdomain", func(fl validator.FieldLevel) bool {
		return platform.ValidSubdomain(fl.Field().String())
	})
}

type createTenantRequest struct {
	Subdomain string `json:"subdomain" validate:"required,subdomain"`
	PlanID    int    `json:"plan_id" validate:"required,min=1"`
	Theme     string `json:"theme" validate:"required"`
	ThemeCode string `json:"theme_code" validate:"omitempty,hexcolor"`
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	return nil
}

// listParams holds pagination, search, filter, and sort parameters for the
// tenant list endpoint.
type listParams struct {
	Limit  int
	Cursor string
	Search string
	Status string
	Order  string
}

const (
	defaultLimit = 50
	maxLimit     = 200
)

func parseListParams(r *http.Request) listParams {
	q := r.URL.Query()
	p := listParams{
		Limit:  defaultLimit,
		Cursor: q.Get("cursor"),
		Search: q.Get("search"),
		Status: q.Get("status"),
		Order:  q.Get("order"),
	}
	if p.Order != "asc" && p.Order != "desc" {
		p.Order = "desc"
	}
	if limitStr := q.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			p.Limit = limit
		}
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}
