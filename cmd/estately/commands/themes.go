package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Themes returns the command that lists the selectable storefront themes.
func Themes() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List available storefront themes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := connect(cmd)
			if err != nil {
				return err
			}

			themes, err := conn.Client.ListThemes(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("%-14s %-14s %s\n", "ID", "NAME", "COLOR")
			for _, t := range themes {
				fmt.Printf("%-14s %-14s %s\n", t.ID, t.Name, dimStyle.Render(t.DefaultColor))
			}
			return nil
		},
	}
}
