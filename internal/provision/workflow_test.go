package provision

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edvin/estately/internal/landlord"
)

// fakeAPI is an in-memory landlord API with swappable behavior per call.
type fakeAPI struct {
	mu          sync.Mutex
	createCalls int
	statusCalls int
	lastCreate  landlord.CreateTenantRequest
	createFn    func(req landlord.CreateTenantRequest) (*landlord.ProvisionResult, error)
	statusFn    func(subdomain string) (string, error)
}

func (f *fakeAPI) CreateTenant(_ context.Context, req landlord.CreateTenantRequest) (*landlord.ProvisionResult, error) {
	f.mu.Lock()
	f.createCalls++
	f.lastCreate = req
	fn := f.createFn
	f.mu.Unlock()
	return fn(req)
}

func (f *fakeAPI) DatabaseStatus(_ context.Context, subdomain string) (string, error) {
	f.mu.Lock()
	f.statusCalls++
	fn := f.statusFn
	f.mu.Unlock()
	return fn(subdomain)
}

func (f *fakeAPI) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.createCalls, f.statusCalls
}

func (f *fakeAPI) setStatusFn(fn func(string) (string, error)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusFn = fn
}

func pendingResult(sub string) *landlord.ProvisionResult {
	return &landlord.ProvisionResult{Subdomain: sub, DatabaseStatus: landlord.DatabaseStatusPending}
}

func readyResult(sub string) *landlord.ProvisionResult {
	return &landlord.ProvisionResult{Subdomain: sub, DatabaseStatus: landlord.DatabaseStatusReady}
}

func newTestWorkflow(api *fakeAPI, refresh func()) *Workflow {
	return NewWorkflow(api, Options{
		BaseDomain:   "sites.test",
		URLScheme:    "http",
		PollInterval: 10 * time.Millisecond,
		OnRefresh:    refresh,
	})
}

func fillForm(w *Workflow) {
	w.SetField("subdomain", "My_Site!")
	w.SetField("plan_id", "2")
	w.SetField("theme", "default")
}

func (w *Workflow) pollerArmed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pollCancel != nil
}

// --- Validation gate ---

func TestSubmit_MissingFields_NoNetworkCall(t *testing.T) {
	api := &fakeAPI{
		createFn: func(landlord.CreateTenantRequest) (*landlord.ProvisionResult, error) {
			return readyResult("x"), nil
		},
	}
	w := newTestWorkflow(api, nil)
	w.SetField("subdomain", "mysite")
	// plan_id left empty

	step := w.Submit(context.Background())

	require.IsType(t, StepError{}, step)
	assert.Equal(t, msgMissingFields, step.(StepError).Message)
	creates, statuses := api.counts()
	assert.Zero(t, creates)
	assert.Zero(t, statuses)
}

// --- Immediate success path ---

func TestSubmit_ImmediateReady(t *testing.T) {
	refreshes := 0
	api := &fakeAPI{
		createFn: func(req landlord.CreateTenantRequest) (*landlord.ProvisionResult, error) {
			return readyResult(req.Subdomain), nil
		},
	}
	w := newTestWorkflow(api, func() { refreshes++ })
	fillForm(w)

	step := w.Submit(context.Background())

	require.IsType(t, StepSuccess{}, step)
	assert.Equal(t, "mysite", step.(StepSuccess).Subdomain)
	assert.Equal(t, "http://mysite.sites.test", step.(StepSuccess).URL)
	assert.Equal(t, 1, refreshes)
	assert.False(t, w.pollerArmed())

	// No polling ever starts on the immediate path.
	time.Sleep(50 * time.Millisecond)
	_, statuses := api.counts()
	assert.Zero(t, statuses)
}

func TestSubmit_RequestFields(t *testing.T) {
	api := &fakeAPI{
		createFn: func(req landlord.CreateTenantRequest) (*landlord.ProvisionResult, error) {
			return readyResult(req.Subdomain), nil
		},
	}
	w := newTestWorkflow(api, nil)
	fillForm(w)

	w.Submit(context.Background())

	assert.Equal(t, "mysite", api.lastCreate.Subdomain)
	assert.Equal(t, 2, api.lastCreate.PlanID)
	assert.Equal(t, "default", api.lastCreate.Theme)
	assert.Equal(t, DefaultThemeCode, api.lastCreate.ThemeCode)
}

func TestSubmit_UnparseablePlanDefaultsToOne(t *testing.T) {
	api := &fakeAPI{
		createFn: func(req landlord.CreateTenantRequest) (*landlord.ProvisionResult, error) {
			return readyResult(req.Subdomain), nil
		},
	}
	w := newTestWorkflow(api, nil)
	w.SetField("subdomain", "mysite")
	w.SetField("plan_id", "premium")
	w.SetField("theme", "default")

	w.Submit(context.Background())

	assert.Equal(t, DefaultPlanID, api.lastCreate.PlanID)
}

func TestSubmit_SubdomainExtractionPriority(t *testing.T) {
	api := &fakeAPI{
		createFn: func(landlord.CreateTenantRequest) (*landlord.ProvisionResult, error) {
			return &landlord.ProvisionResult{
				Tenant:         &landlord.TenantRef{ID: "tenant-id-wins"},
				Subdomain:      "ignored",
				DatabaseStatus: landlord.DatabaseStatusReady,
			}, nil
		},
	}
	w := newTestWorkflow(api, nil)
	fillForm(w)

	step := w.Submit(context.Background())

	require.IsType(t, StepSuccess{}, step)
	assert.Equal(t, "http://tenant-id-wins.sites.test", step.(StepSuccess).URL)
}

// --- Pending path ---

func TestSubmit_PendingArmsPoller(t *testing.T) {
	refreshes := 0
	api := &fakeAPI{
		createFn: func(req landlord.CreateTenantRequest) (*landlord.ProvisionResult, error) {
			return pendingResult(req.Subdomain), nil
		},
		statusFn: func(string) (string, error) { return landlord.DatabaseStatusPending, nil },
	}
	w := newTestWorkflow(api, func() { refreshes++ })
	fillForm(w)

	step := w.Submit(context.Background())

	require.IsType(t, StepProcessing{}, step)
	assert.Equal(t, "mysite", step.(StepProcessing).Subdomain)
	assert.True(t, w.pollerArmed())
	assert.Equal(t, 1, refreshes)

	require.Eventually(t, func() bool {
		_, statuses := api.counts()
		return statuses >= 2
	}, time.Second, 5*time.Millisecond)

	// Still processing while the database stays pending.
	assert.IsType(t, StepProcessing{}, w.Step())
	w.Close()
}

// --- Poll termination ---

func TestPoll_StopsOnReady(t *testing.T) {
	var refreshes atomic.Int32
	var polls atomic.Int32
	api := &fakeAPI{
		createFn: func(req landlord.CreateTenantRequest) (*landlord.ProvisionResult, error) {
			return pendingResult(req.Subdomain), nil
		},
	}
	api.statusFn = func(string) (string, error) {
		if polls.Add(1) < 3 {
			return landlord.DatabaseStatusPending, nil
		}
		return landlord.DatabaseStatusReady, nil
	}
	w := newTestWorkflow(api, func() { refreshes.Add(1) })
	fillForm(w)
	w.Submit(context.Background())

	require.Eventually(t, func() bool {
		_, ok := w.Step().(StepSuccess)
		return ok
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, "http://mysite.sites.test", w.Step().(StepSuccess).URL)
	assert.Equal(t, int32(2), refreshes.Load())
	assert.False(t, w.pollerArmed())

	// No further polls once ready was observed.
	_, before := api.counts()
	time.Sleep(60 * time.Millisecond)
	_, after := api.counts()
	assert.Equal(t, before, after)
}

// --- Cancellation safety ---

func TestClose_CancelsPoller(t *testing.T) {
	api := &fakeAPI{
		createFn: func(req landlord.CreateTenantRequest) (*landlord.ProvisionResult, error) {
			return pendingResult(req.Subdomain), nil
		},
		statusFn: func(string) (string, error) { return landlord.DatabaseStatusPending, nil },
	}
	w := newTestWorkflow(api, nil)
	fillForm(w)
	w.Submit(context.Background())
	require.True(t, w.pollerArmed())

	w.Close()

	assert.False(t, w.pollerArmed())
	assert.IsType(t, StepForm{}, w.Step())
	assert.Equal(t, NewForm(), w.Form())
	assert.Empty(t, w.TenantURL())

	// Even a "ready" response arriving after close must not mutate state.
	api.setStatusFn(func(string) (string, error) { return landlord.DatabaseStatusReady, nil })
	time.Sleep(50 * time.Millisecond)
	assert.IsType(t, StepForm{}, w.Step())

	_, before := api.counts()
	time.Sleep(50 * time.Millisecond)
	_, after := api.counts()
	assert.Equal(t, before, after)
}

func TestClose_DelayedReset(t *testing.T) {
	api := &fakeAPI{
		createFn: func(landlord.CreateTenantRequest) (*landlord.ProvisionResult, error) {
			return nil, &landlord.APIError{StatusCode: 500, Message: "boom"}
		},
	}
	w := NewWorkflow(api, Options{
		BaseDomain:   "sites.test",
		PollInterval: 10 * time.Millisecond,
		CloseDelay:   30 * time.Millisecond,
	})
	fillForm(w)
	w.Submit(context.Background())
	require.IsType(t, StepError{}, w.Step())

	w.Close()

	// The step survives until the close delay elapses.
	assert.IsType(t, StepError{}, w.Step())
	require.Eventually(t, func() bool {
		_, ok := w.Step().(StepForm)
		return ok
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, NewForm(), w.Form())
}

// --- Transient poll resilience ---

func TestPoll_TransientErrorsDoNotAbort(t *testing.T) {
	var polls atomic.Int32
	api := &fakeAPI{
		createFn: func(req landlord.CreateTenantRequest) (*landlord.ProvisionResult, error) {
			return pendingResult(req.Subdomain), nil
		},
	}
	api.statusFn = func(string) (string, error) {
		if polls.Add(1) <= 2 {
			return "", &landlord.APIError{StatusCode: 502}
		}
		return landlord.DatabaseStatusReady, nil
	}
	w := newTestWorkflow(api, nil)
	fillForm(w)
	w.Submit(context.Background())

	require.Eventually(t, func() bool {
		_, ok := w.Step().(StepSuccess)
		return ok
	}, time.Second, 5*time.Millisecond)
	assert.GreaterOrEqual(t, polls.Load(), int32(3))
}

// --- Error handling and retry ---

func TestSubmit_ServerErrorMessageSurfaces(t *testing.T) {
	api := &fakeAPI{
		createFn: func(landlord.CreateTenantRequest) (*landlord.ProvisionResult, error) {
			return nil, &landlord.APIError{StatusCode: 409, Message: "subdomain already taken"}
		},
	}
	w := newTestWorkflow(api, nil)
	fillForm(w)

	step := w.Submit(context.Background())

	require.IsType(t, StepError{}, step)
	assert.Equal(t, "subdomain already taken", step.(StepError).Message)
	assert.False(t, w.pollerArmed())
}

func TestSubmit_GenericFallbackMessage(t *testing.T) {
	api := &fakeAPI{
		createFn: func(landlord.CreateTenantRequest) (*landlord.ProvisionResult, error) {
			return nil, context.DeadlineExceeded
		},
	}
	w := newTestWorkflow(api, nil)
	fillForm(w)

	step := w.Submit(context.Background())

	require.IsType(t, StepError{}, step)
	assert.Equal(t, msgCreateFailed, step.(StepError).Message)
}

func TestRetry_PreservesFormFields(t *testing.T) {
	api := &fakeAPI{
		createFn: func(landlord.CreateTenantRequest) (*landlord.ProvisionResult, error) {
			return nil, &landlord.APIError{StatusCode: 409, Message: "subdomain already taken"}
		},
	}
	w := newTestWorkflow(api, nil)
	fillForm(w)
	before := w.Form()

	w.Submit(context.Background())
	require.IsType(t, StepError{}, w.Step())

	step := w.Retry()

	assert.IsType(t, StepForm{}, step)
	assert.Equal(t, before, w.Form())
}

func TestRetry_NoopOutsideErrorStep(t *testing.T) {
	api := &fakeAPI{}
	w := newTestWorkflow(api, nil)

	step := w.Retry()

	assert.IsType(t, StepForm{}, step)
}

func TestSubmit_BlockedOutsideFormStep(t *testing.T) {
	api := &fakeAPI{
		createFn: func(req landlord.CreateTenantRequest) (*landlord.ProvisionResult, error) {
			return pendingResult(req.Subdomain), nil
		},
		statusFn: func(string) (string, error) { return landlord.DatabaseStatusPending, nil },
	}
	w := newTestWorkflow(api, nil)
	fillForm(w)
	w.Submit(context.Background())
	require.IsType(t, StepProcessing{}, w.Step())

	step := w.Submit(context.Background())

	assert.IsType(t, StepProcessing{}, step)
	creates, _ := api.counts()
	assert.Equal(t, 1, creates)
	w.Close()
}

// --- Max attempt hardening ---

func TestPoll_MaxAttemptsDisarmsWithoutFailing(t *testing.T) {
	api := &fakeAPI{
		createFn: func(req landlord.CreateTenantRequest) (*landlord.ProvisionResult, error) {
			return pendingResult(req.Subdomain), nil
		},
		statusFn: func(string) (string, error) { return landlord.DatabaseStatusPending, nil },
	}
	w := NewWorkflow(api, Options{
		BaseDomain:      "sites.test",
		PollInterval:    10 * time.Millisecond,
		MaxPollAttempts: 2,
	})
	fillForm(w)
	w.Submit(context.Background())

	require.Eventually(t, func() bool { return !w.pollerArmed() }, time.Second, 5*time.Millisecond)

	// Exhausting the budget never auto-fails the attempt.
	assert.IsType(t, StepProcessing{}, w.Step())
	_, statuses := api.counts()
	assert.Equal(t, 2, statuses)
}
