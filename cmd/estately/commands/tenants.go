package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edvin/estately/internal/landlord"
)

// Tenants returns the command that lists provisioned tenants.
func Tenants() *cobra.Command {
	var params landlord.ListParams

	cmd := &cobra.Command{
		Use:   "tenants",
		Short: "List provisioned tenants",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := connect(cmd)
			if err != nil {
				return err
			}

			page, err := conn.Client.ListTenants(cmd.Context(), params)
			if err != nil {
				return err
			}

			if len(page.Items) == 0 {
				fmt.Println(dimStyle.Render("No tenants found."))
				return nil
			}

			fmt.Printf("%-24s %-6s %-14s %-10s %s\n", "SUBDOMAIN", "PLAN", "STATUS", "DATABASE", "CREATED")
			for _, t := range page.Items {
				db := t.DatabaseStatus
				if db == landlord.DatabaseStatusReady {
					db = readyStyle.Render(db)
				} else {
					db = dimStyle.Render(db)
				}
				fmt.Printf("%-24s %-6d %-14s %-10s %s\n",
					t.Subdomain, t.PlanID, t.Status, db, t.CreatedAt.Format("2006-01-02 15:04"))
			}

			if page.HasMore {
				fmt.Println(dimStyle.Render("More results available: --cursor " + page.NextCursor))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&params.Limit, "limit", 50, "Maximum tenants per page")
	cmd.Flags().StringVar(&params.Cursor, "cursor", "", "Pagination cursor from a previous page")
	cmd.Flags().StringVar(&params.Search, "search", "", "Filter by subdomain substring")
	cmd.Flags().StringVar(&params.Status, "status", "", "Filter by lifecycle status")
	cmd.Flags().StringVar(&params.Order, "order", "", "Sort order (asc or desc)")

	return cmd
}
