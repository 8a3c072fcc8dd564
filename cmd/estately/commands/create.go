package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/edvin/estately/internal/landlord"
	"github.com/edvin/estately/internal/logging"
	"github.com/edvin/estately/internal/platform"
	"github.com/edvin/estately/internal/provision"
)

// Create returns the command that provisions a new tenant website.
func Create() *cobra.Command {
	var (
		plan         int
		theme        string
		themeColor   string
		noWait       bool
		timeout      time.Duration
		pollInterval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "create [subdomain]",
		Short: "Provision a new tenant website",
		Long: `Provision a new tenant website under the configured base domain.

With a subdomain argument the request is sent directly using the plan
and theme flags. Without one, an interactive form collects the details,
offering the plans and themes the landlord API advertises.

Unless --no-wait is given, the command keeps polling the tenant's
database status until it is ready.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := connect(cmd)
			if err != nil {
				return err
			}

			form := provision.NewForm()
			form.SetField("plan_id", strconv.Itoa(plan))
			form.SetField("theme", theme)
			if themeColor != "" {
				form.SetField("theme_code", themeColor)
			}

			if len(args) > 0 {
				form.SetField("subdomain", args[0])
			} else {
				if err := runCreateWizard(cmd.Context(), conn.Client, &form); err != nil {
					return err
				}
			}

			if !platform.ValidSubdomain(form.Subdomain) {
				return fmt.Errorf("invalid subdomain %q: use lowercase letters, digits, and inner hyphens", form.Subdomain)
			}

			return runProvision(cmd.Context(), conn, form, provisionOptions{
				wait:         !noWait,
				timeout:      timeout,
				pollInterval: pollInterval,
			})
		},
	}

	cmd.Flags().IntVar(&plan, "plan", provision.DefaultPlanID, "Pricing plan ID")
	cmd.Flags().StringVar(&theme, "theme", provision.DefaultTheme, "Storefront theme ID")
	cmd.Flags().StringVar(&themeColor, "color", "", "Theme accent color (hex)")
	cmd.Flags().BoolVar(&noWait, "no-wait", false, "Return after the provisioning request without waiting for the database")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Minute, "How long to wait for the database to become ready")
	cmd.Flags().DurationVar(&pollInterval, "poll-interval", 0, "Database status poll interval (default from POLL_INTERVAL, else 3s)")

	return cmd
}

// runCreateWizard collects provisioning details interactively, offering the
// plans and themes the landlord API advertises.
func runCreateWizard(ctx context.Context, client *landlord.Client, form *provision.Form) error {
	plans, err := client.ListPlans(ctx)
	if err != nil {
		return fmt.Errorf("fetch plans: %w", err)
	}
	themes, err := client.ListThemes(ctx)
	if err != nil {
		return fmt.Errorf("fetch themes: %w", err)
	}

	planOpts := make([]huh.Option[string], 0, len(plans))
	for _, p := range plans {
		label := fmt.Sprintf("%s (%s/%s)", p.Name, formatPrice(p.PriceCents, p.Currency), p.Period)
		planOpts = append(planOpts, huh.NewOption(label, strconv.Itoa(p.ID)))
	}
	themeOpts := make([]huh.Option[string], 0, len(themes))
	for _, t := range themes {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.ID))
	}

	var subdomain string
	wizard := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Subdomain").
				Description("Your site will live at <subdomain>.<base-domain>").
				Placeholder("my-agency").
				Value(&subdomain).
				Validate(func(s string) error {
					if !platform.ValidSubdomain(platform.NormalizeSubdomain(s)) {
						return fmt.Errorf("use lowercase letters, digits, and inner hyphens")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Plan").
				Options(planOpts...).
				Value(&form.PlanID),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(themeOpts...).
				Value(&form.Theme),
		),
	)

	if err := wizard.RunWithContext(ctx); err != nil {
		return fmt.Errorf("canceled: %w", err)
	}

	form.SetField("subdomain", subdomain)
	for _, t := range themes {
		if t.ID == form.Theme && t.DefaultColor != "" {
			form.SetField("theme_code", t.DefaultColor)
		}
	}
	return nil
}

type provisionOptions struct {
	wait         bool
	timeout      time.Duration
	pollInterval time.Duration
}

// runProvision submits the provisioning request through the workflow and,
// when waiting is enabled, follows the database readiness poller to its end.
func runProvision(ctx context.Context, conn *connection, form provision.Form, opts provisionOptions) error {
	interval := opts.pollInterval
	if interval <= 0 {
		interval = conn.Config.PollInterval
	}

	refresh := make(chan struct{}, 1)
	wf := provision.NewWorkflow(conn.Client, provision.Options{
		BaseDomain:   conn.BaseDomain,
		URLScheme:    conn.URLScheme,
		PollInterval: interval,
		OnRefresh: func() {
			select {
			case refresh <- struct{}{}:
			default:
			}
		},
		Logger: logging.NewLogger("estately", "warn"),
	})
	defer wf.Close()

	wf.SetField("subdomain", form.Subdomain)
	wf.SetField("plan_id", form.PlanID)
	wf.SetField("theme", form.Theme)
	wf.SetField("theme_code", form.ThemeCode)

	fmt.Printf("%s %s\n", dimStyle.Render("Creating"), titleStyle.Render(wf.Form().Subdomain))

	step := wf.Submit(ctx)
	switch s := step.(type) {
	case provision.StepError:
		return fmt.Errorf("%s", failedStyle.Render(s.Message))
	case provision.StepSuccess:
		printSuccess(s)
		return nil
	case provision.StepProcessing:
		if !opts.wait {
			fmt.Printf("Tenant %s created; database is still provisioning.\n", s.Subdomain)
			fmt.Println(dimStyle.Render("Check progress with: estately status " + s.Subdomain))
			return nil
		}
		return waitForReady(ctx, wf, refresh, opts.timeout)
	default:
		return fmt.Errorf("unexpected state %s", step.Name())
	}
}

// waitForReady blocks until the workflow's poller reports the database
// ready, the timeout lapses, or the context is canceled.
func waitForReady(ctx context.Context, wf *provision.Workflow, refresh <-chan struct{}, timeout time.Duration) error {
	fmt.Println(dimStyle.Render("Waiting for the database to become ready (Ctrl+C to stop waiting)..."))

	var deadline <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			fmt.Println(dimStyle.Render("Stopped waiting; provisioning continues server-side."))
			return nil
		case <-deadline:
			fmt.Println(dimStyle.Render("Timed out waiting; provisioning continues server-side."))
			return nil
		case <-refresh:
			if s, ok := wf.Step().(provision.StepSuccess); ok {
				printSuccess(s)
				return nil
			}
		}
	}
}

func printSuccess(s provision.StepSuccess) {
	fmt.Printf("%s %s is ready\n", readyStyle.Render("✓"), titleStyle.Render(s.Subdomain))
	if s.URL != "" {
		fmt.Printf("  %s\n", urlStyle.Render(s.URL))
	}
}

func formatPrice(cents int, currency string) string {
	return fmt.Sprintf("%.2f %s", float64(cents)/100, currency)
}
