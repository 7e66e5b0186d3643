// Package commands defines the leadform cobra commands.
package commands

import "github.com/spf13/cobra"

// Root returns the root command.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "leadform",
		Short:         "Lead capture wizard and email submission service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(Serve())
	cmd.AddCommand(Wizard())
	cmd.AddCommand(Contract())
	cmd.AddCommand(Version())

	return cmd
}
