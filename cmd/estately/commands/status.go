package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/edvin/estately/internal/landlord"
)

// Status returns the command that reports a tenant's database readiness.
func Status() *cobra.Command {
	var (
		wait    bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "status <subdomain>",
		Short: "Show a tenant's database status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := connect(cmd)
			if err != nil {
				return err
			}

			subdomain := args[0]
			status, err := conn.Client.DatabaseStatus(cmd.Context(), subdomain)
			if err != nil {
				return err
			}
			printStatus(subdomain, status)

			if !wait || status == landlord.DatabaseStatusReady {
				return nil
			}

			interval := conn.Config.PollInterval
			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			var deadline <-chan time.Time
			if timeout > 0 {
				timer := time.NewTimer(timeout)
				defer timer.Stop()
				deadline = timer.C
			}

			for {
				select {
				case <-cmd.Context().Done():
					return nil
				case <-deadline:
					fmt.Println(dimStyle.Render("Timed out waiting; provisioning continues server-side."))
					return nil
				case <-ticker.C:
				}

				status, err := conn.Client.DatabaseStatus(cmd.Context(), subdomain)
				if err != nil {
					// Transient; keep polling until ready, timeout, or Ctrl+C.
					fmt.Println(dimStyle.Render("poll failed: " + err.Error()))
					continue
				}
				if status == landlord.DatabaseStatusReady {
					printStatus(subdomain, status)
					return nil
				}
			}
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "Keep polling until the database is ready")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Minute, "How long to wait with --wait")

	return cmd
}

func printStatus(subdomain, status string) {
	style := dimStyle
	if status == landlord.DatabaseStatusReady {
		style = readyStyle
	}
	fmt.Printf("%s %s\n", titleStyle.Render(subdomain), style.Render(status))
}
