package provision

// Step is the current phase of a provisioning workflow. It is a closed sum:
// exactly one of StepForm, StepProcessing, StepSuccess, or StepError is
// active at a time, and each variant carries only the data valid for it.
type Step interface {
	step()
	Name() string
}

// StepForm is the initial phase: the form is editable and submittable.
type StepForm struct{}

// StepProcessing means the tenant was created but its database is still
// being materialized; the readiness poller is armed.
type StepProcessing struct {
	Subdomain string
}

// StepSuccess is terminal for the attempt: the storefront is live at URL.
type StepSuccess struct {
	Subdomain string
	URL       string
}

// StepError is terminal for the attempt, recoverable via Retry.
type StepError struct {
	Message string
}

func (StepForm) step()       {}
func (StepProcessing) step() {}
func (StepSuccess) step()    {}
func (StepError) step()      {}

func (StepForm) Name() string       { return "form" }
func (StepProcessing) Name() string { return "processing" }
func (StepSuccess) Name() string    { return "success" }
func (StepError) Name() string      { return "error" }
