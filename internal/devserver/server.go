// Package devserver is an in-memory stand-in for the landlord provisioning
// API, used for local development and demos. It honors the same contract the
// production backend does: enveloped JSON responses, tenant creation with a
// pending database that becomes ready after a configurable delay, and the
// plan/theme reference endpoints.
package devserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/edvin/estately/internal/landlord"
)

type Server struct {
	router chi.Router
	logger zerolog.Logger
	store  *Store
}

// NewServer builds the dev landlord API. readyAfter controls how long a new
// tenant's database stays pending; 0 makes tenants ready on creation.
func NewServer(logger zerolog.Logger, readyAfter time.Duration) *Server {
	s := &Server{
		router: chi.NewRouter(),
		logger: logger,
		store:  NewStore(readyAfter),
	}

	s.router.Use(chimw.RequestID)
	s.router.Use(chimw.RealIP)
	s.router.Use(requestLogger(logger))
	s.router.Use(chimw.Recoverer)
	s.router.Use(metrics)

	s.router.Handle("/metrics", promhttp.Handler())
	s.router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	s.router.Post("/tenants", s.createTenant)
	s.router.Get("/tenants", s.listTenants)
	s.router.Get("/tenants/{subdomain}/database-status", s.databaseStatus)
	s.router.Get("/plans", s.listPlans)
	s.router.Get("/themes", s.listThemes)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) createTenant(w http.ResponseWriter, r *http.Request) {
	var req createTenantRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tenant, err := s.store.CreateTenant(req.Subdomain, req.PlanID, req.Theme, req.ThemeCode)
	if err != nil {
		WriteError(w, http.StatusConflict, err.Error())
		return
	}

	s.logger.Info().
		Str("subdomain", tenant.Subdomain).
		Int("plan_id", tenant.PlanID).
		Str("database_status", tenant.DatabaseStatus).
		Msg("tenant created")

	WriteData(w, http.StatusAccepted, landlord.ProvisionResult{
		Tenant:         &landlord.TenantRef{ID: tenant.ID, Subdomain: tenant.Subdomain},
		Subdomain:      tenant.Subdomain,
		DatabaseStatus: tenant.DatabaseStatus,
	})
}

func (s *Server) databaseStatus(w http.ResponseWriter, r *http.Request) {
	subdomain := chi.URLParam(r, "subdomain")

	status, ok := s.store.DatabaseStatus(subdomain)
	if !ok {
		WriteError(w, http.StatusNotFound, "tenant not found")
		return
	}

	WriteData(w, http.StatusOK, map[string]string{"database_status": status})
}

func (s *Server) listTenants(w http.ResponseWriter, r *http.Request) {
	page := s.store.ListTenants(parseListParams(r))
	WriteData(w, http.StatusOK, page)
}

func (s *Server) listPlans(w http.ResponseWriter, _ *http.Request) {
	WriteData(w, http.StatusOK, Plans())
}

func (s *Server) listThemes(w http.ResponseWriter, _ *http.Request) {
	WriteData(w, http.StatusOK, Themes())
}
