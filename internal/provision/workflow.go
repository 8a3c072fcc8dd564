package provision

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/edvin/estately/internal/landlord"
)

// API is the slice of the landlord client the workflow depends on.
type API interface {
	CreateTenant(ctx context.Context, req landlord.CreateTenantRequest) (*landlord.ProvisionResult, error)
	DatabaseStatus(ctx context.Context, subdomain string) (string, error)
}

// User-facing messages for the two failure classes.
const (
	msgMissingFields = "please fill in all required fields"
	msgCreateFailed  = "failed to create website"
)

type Options struct {
	// BaseDomain is the apex domain tenant storefronts live under.
	BaseDomain string
	// URLScheme for built tenant URLs. Defaults to https.
	URLScheme string
	// PollInterval between database readiness checks. Defaults to 3s.
	PollInterval time.Duration
	// MaxPollAttempts bounds readiness polling; 0 means unlimited. Reaching
	// the bound disarms the poller without failing the attempt, since the
	// tenant may already exist and only success or cancellation may end it.
	MaxPollAttempts int
	// CloseDelay is how long Close waits before clearing transient state,
	// leaving room for an exit animation. 0 clears immediately.
	CloseDelay time.Duration
	// OnRefresh is invoked after every successful provisioning response and
	// again when the tenant database becomes ready.
	OnRefresh func()
	Logger    zerolog.Logger
}

// Workflow drives one tenant provisioning attempt through the phases
// form -> processing -> success/error. Safe for concurrent use.
type Workflow struct {
	api  API
	opts Options

	mu         sync.Mutex
	form       Form
	step       Step
	subdomain  string
	tenantURL  string
	submitting bool
	gen        int // bumped by Close; invalidates in-flight work
	pollCancel context.CancelFunc
	pollDone   chan struct{}
}

func NewWorkflow(api API, opts Options) *Workflow {
	if opts.URLScheme == "" {
		opts.URLScheme = "https"
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 3 * time.Second
	}
	return &Workflow{
		api:  api,
		opts: opts,
		form: NewForm(),
		step: StepForm{},
	}
}

// SetField forwards a field edit to the form.
func (w *Workflow) SetField(name, value string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form.SetField(name, value)
}

// Form returns a copy of the current form state.
func (w *Workflow) Form() Form {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.form
}

// Step returns the current workflow step.
func (w *Workflow) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// TenantURL returns the visitable URL of the provisioned tenant, or "" if
// no submission has succeeded yet.
func (w *Workflow) TenantURL() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tenantURL
}

// Submit validates the form and issues the provisioning request. With any
// required field missing it short-circuits to the error step without touching
// the network. Returns the step the workflow landed on.
func (w *Workflow) Submit(ctx context.Context) Step {
	w.mu.Lock()
	if _, ok := w.step.(StepForm); !ok || w.submitting {
		step := w.step
		w.mu.Unlock()
		return step
	}
	if !w.form.IsSubmittable() {
		w.step = StepError{Message: msgMissingFields}
		submitTotal.WithLabelValues("validation_error").Inc()
		w.mu.Unlock()
		return StepError{Message: msgMissingFields}
	}

	req := landlord.CreateTenantRequest{
		Subdomain: w.form.Subdomain,
		PlanID:    w.form.PlanIDValue(),
		Theme:     w.form.Theme,
		ThemeCode: w.form.ThemeCode,
	}
	w.submitting = true
	gen := w.gen
	w.mu.Unlock()

	result, err := w.api.CreateTenant(ctx, req)

	w.mu.Lock()
	w.submitting = false
	if w.gen != gen {
		// Closed while the request was in flight; drop the result.
		step := w.step
		w.mu.Unlock()
		return step
	}
	if err != nil {
		w.step = StepError{Message: requestErrorMessage(err)}
		submitTotal.WithLabelValues("error").Inc()
		w.opts.Logger.Error().Err(err).Str("subdomain", req.Subdomain).Msg("create tenant failed")
		step := w.step
		w.mu.Unlock()
		return step
	}

	sub := result.SubdomainID()
	if sub == "" {
		sub = req.Subdomain
	}
	w.subdomain = sub
	w.tenantURL = fmt.Sprintf("%s://%s.%s", w.opts.URLScheme, sub, w.opts.BaseDomain)
	submitTotal.WithLabelValues("success").Inc()

	if result.DatabaseStatus == landlord.DatabaseStatusPending {
		w.step = StepProcessing{Subdomain: sub}
		w.armPollerLocked()
		w.opts.Logger.Info().Str("subdomain", sub).Msg("tenant created, database pending")
	} else {
		w.step = StepSuccess{Subdomain: sub, URL: w.tenantURL}
		w.opts.Logger.Info().Str("subdomain", sub).Str("url", w.tenantURL).Msg("tenant created")
	}
	step := w.step
	refresh := w.opts.OnRefresh
	w.mu.Unlock()

	if refresh != nil {
		refresh()
	}
	return step
}

// Retry returns from the error step to an editable form, clearing the error
// message. Field values are left exactly as they were at failure time.
func (w *Workflow) Retry() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.step.(StepError); !ok {
		return w.step
	}
	w.step = StepForm{}
	return w.step
}

// Close dismisses the workflow: the poller is disarmed synchronously, and
// after CloseDelay all transient state (step, form, subdomain, URL) resets.
func (w *Workflow) Close() {
	w.mu.Lock()
	w.disarmLocked()
	w.gen++
	gen := w.gen
	delay := w.opts.CloseDelay
	w.mu.Unlock()

	if delay <= 0 {
		w.reset(gen)
		return
	}
	time.AfterFunc(delay, func() { w.reset(gen) })
}

func (w *Workflow) reset(gen int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.gen != gen {
		return
	}
	w.step = StepForm{}
	w.form.Reset()
	w.subdomain = ""
	w.tenantURL = ""
}

// armPollerLocked starts the readiness poller. Callers hold w.mu. The disarm
// rule guarantees at most one poller is ever armed.
func (w *Workflow) armPollerLocked() {
	if w.pollCancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	w.pollCancel = cancel
	done := make(chan struct{})
	w.pollDone = done
	go w.poll(ctx, cancel, w.subdomain, w.tenantURL, done)
}

// disarmLocked cancels the armed poller, if any. Cancellation is synchronous:
// a poll already in flight will observe the cancelled context before touching
// workflow state.
func (w *Workflow) disarmLocked() {
	if w.pollCancel != nil {
		w.pollCancel()
		w.pollCancel = nil
		w.pollDone = nil
	}
}

func (w *Workflow) poll(ctx context.Context, cancel context.CancelFunc, subdomain, tenantURL string, done chan struct{}) {
	defer close(done)
	defer cancel()

	ticker := time.NewTicker(w.opts.PollInterval)
	defer ticker.Stop()

	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		status, err := w.api.DatabaseStatus(ctx, subdomain)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return
			}
			// Transient failures never abort readiness tracking: the tenant
			// already exists, so only success or cancellation ends the wait.
			pollTotal.WithLabelValues("error").Inc()
			w.opts.Logger.Warn().Err(err).Str("subdomain", subdomain).Msg("database status poll failed")
		case status == landlord.DatabaseStatusReady:
			pollTotal.WithLabelValues("ready").Inc()
			w.finishPolling(ctx, subdomain, tenantURL)
			return
		default:
			pollTotal.WithLabelValues("pending").Inc()
		}

		attempts++
		if w.opts.MaxPollAttempts > 0 && attempts >= w.opts.MaxPollAttempts {
			w.opts.Logger.Warn().Str("subdomain", subdomain).Int("attempts", attempts).
				Msg("readiness polling disarmed after max attempts")
			w.mu.Lock()
			if w.pollDone == done {
				w.pollCancel = nil
				w.pollDone = nil
			}
			w.mu.Unlock()
			return
		}
	}
}

// finishPolling transitions processing -> success, unless the workflow was
// closed or moved on while the final poll was in flight.
func (w *Workflow) finishPolling(ctx context.Context, subdomain, tenantURL string) {
	w.mu.Lock()
	if ctx.Err() != nil {
		w.mu.Unlock()
		return
	}
	if _, ok := w.step.(StepProcessing); !ok {
		w.mu.Unlock()
		return
	}
	w.step = StepSuccess{Subdomain: subdomain, URL: tenantURL}
	w.pollCancel = nil
	w.pollDone = nil
	refresh := w.opts.OnRefresh
	logger := w.opts.Logger
	w.mu.Unlock()

	logger.Info().Str("subdomain", subdomain).Str("url", tenantURL).Msg("tenant database ready")
	if refresh != nil {
		refresh()
	}
}

// requestErrorMessage extracts the server-provided message from a failed
// create call, falling back to a generic message.
func requestErrorMessage(err error) string {
	var apiErr *landlord.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return msgCreateFailed
}
