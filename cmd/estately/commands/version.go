package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set at build time via -ldflags "-X .../commands.version=v1.2.3".
var version = "dev"

// Version returns the command that prints the CLI version.
func Version() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the estately CLI version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println("estately", version)
		},
	}
}
