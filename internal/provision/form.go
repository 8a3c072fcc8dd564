package provision

import (
	"strconv"

	"github.com/edvin/estately/internal/platform"
)

// Form field defaults.
const (
	DefaultTheme     = "default"
	DefaultThemeCode = "#2563eb"
	DefaultPlanID    = 1
)

// Form holds the user-entered provisioning parameters. All fields are kept
// as strings the way the UI supplies them; coercion happens at submit time.
type Form struct {
	Subdomain string
	PlanID    string
	Theme     string
	ThemeCode string
}

func NewForm() Form {
	return Form{
		Theme:     DefaultTheme,
		ThemeCode: DefaultThemeCode,
	}
}

// SetField updates a single field by name. Subdomain input is normalized
// before storage; invalid characters are dropped without error. Unknown
// field names are ignored.
func (f *Form) SetField(name, value string) {
	switch name {
	case "subdomain":
		f.Subdomain = platform.NormalizeSubdomain(value)
	case "plan_id":
		f.PlanID = value
	case "theme":
		f.Theme = value
	case "theme_code":
		f.ThemeCode = value
	}
}

// IsSubmittable reports whether subdomain, plan, and theme are all set.
func (f *Form) IsSubmittable() bool {
	return f.Subdomain != "" && f.PlanID != "" && f.Theme != ""
}

// Reset restores all fields to their defaults.
func (f *Form) Reset() {
	*f = NewForm()
}

// PlanIDValue returns the selected plan as an integer, falling back to
// DefaultPlanID when the selection does not parse.
func (f *Form) PlanIDValue() int {
	id, err := strconv.Atoi(f.PlanID)
	if err != nil {
		return DefaultPlanID
	}
	return id
}
