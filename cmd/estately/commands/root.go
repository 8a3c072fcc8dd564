// Package commands defines the estately CLI command tree.
//
// Commands parse flags and delegate to the landlord client and the
// provisioning workflow; connection settings resolve from flags, then
// environment, then the active saved profile.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the estately CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estately",
		Short: "Provision and manage estately tenant websites",
		Long: `estately drives the landlord provisioning API: create tenant
websites, watch their database come up, and browse plans and themes.

Connection settings resolve in order: command flags, environment
variables (LANDLORD_API_URL, LANDLORD_API_KEY, TENANT_BASE_DOMAIN),
then the active saved profile.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("api-url", "", "Landlord API base URL")
	cmd.PersistentFlags().String("api-key", "", "Landlord API key")
	cmd.PersistentFlags().String("base-domain", "", "Apex domain tenant sites live under")
	cmd.PersistentFlags().String("profile", "", "Saved connection profile to use")

	cmd.AddCommand(Create())
	cmd.AddCommand(Status())
	cmd.AddCommand(Tenants())
	cmd.AddCommand(Plans())
	cmd.AddCommand(Themes())
	cmd.AddCommand(Profile())
	cmd.AddCommand(Compare())
	cmd.AddCommand(Version())

	return cmd
}
