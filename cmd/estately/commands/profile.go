package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edvin/estately/internal/cli"
)

// Profile returns the command group for managing saved connection profiles.
func Profile() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage saved landlord API connection profiles",
	}

	cmd.AddCommand(profileAdd())
	cmd.AddCommand(profileList())
	cmd.AddCommand(profileUse())
	cmd.AddCommand(profileDelete())

	return cmd
}

func profileAdd() *cobra.Command {
	var (
		apiURL     string
		apiKey     string
		baseDomain string
		setActive  bool
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Save a connection profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			p, err := cli.SaveProfile(cli.Profile{
				Name:       args[0],
				APIURL:     apiURL,
				APIKey:     apiKey,
				BaseDomain: baseDomain,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Saved profile %q\n", p.Name)

			if setActive {
				if err := cli.SetActive(p.Name); err != nil {
					return err
				}
				fmt.Printf("Active profile set to %q\n", p.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&apiURL, "api-url", "", "Landlord API base URL")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "Landlord API key")
	cmd.Flags().StringVar(&baseDomain, "base-domain", "", "Apex domain tenant sites live under")
	cmd.Flags().BoolVar(&setActive, "use", true, "Set this profile as active after saving")
	cmd.MarkFlagRequired("api-url")

	return cmd
}

func profileList() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved profiles",
		RunE: func(_ *cobra.Command, _ []string) error {
			profiles, err := cli.ListProfiles()
			if err != nil {
				return err
			}
			if len(profiles) == 0 {
				fmt.Println(dimStyle.Render("No profiles found. Add one with: estately profile add <name> --api-url URL"))
				return nil
			}

			active, _ := cli.GetActive()
			fmt.Printf("%-20s %-40s %s\n", "NAME", "API URL", "ACTIVE")
			for _, p := range profiles {
				marker := ""
				if p.Name == active {
					marker = readyStyle.Render("*")
				}
				fmt.Printf("%-20s %-40s %s\n", p.Name, p.APIURL, marker)
			}
			return nil
		},
	}
}

func profileUse() *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Set the active profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := cli.SetActive(args[0]); err != nil {
				return err
			}
			fmt.Printf("Active profile set to %q\n", args[0])
			return nil
		},
	}
}

func profileDelete() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := cli.DeleteProfile(args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted profile %q\n", args[0])
			return nil
		},
	}
}
