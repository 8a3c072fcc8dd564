package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Plans returns the command that lists the selectable pricing plans.
func Plans() *cobra.Command {
	return &cobra.Command{
		Use:   "plans",
		Short: "List available pricing plans",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := connect(cmd)
			if err != nil {
				return err
			}

			plans, err := conn.Client.ListPlans(cmd.Context())
			if err != nil {
				return err
			}

			for _, p := range plans {
				fmt.Printf("%s  %s\n",
					sectionStyle.Render(fmt.Sprintf("[%d] %s", p.ID, p.Name)),
					dimStyle.Render(fmt.Sprintf("%s / %s", formatPrice(p.PriceCents, p.Currency), p.Period)))
				if p.Description != nil {
					fmt.Printf("    %s\n", *p.Description)
				}
			}
			return nil
		},
	}
}
