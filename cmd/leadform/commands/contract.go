package commands

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-leadform/pkg/contract"
)

// Contract returns the command printing the submission OpenAPI document.
func Contract() *cobra.Command {
	return &cobra.Command{
		Use:   "contract",
		Short: "Print the submission endpoint OpenAPI document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := cmd.OutOrStdout().Write(contract.Document())
			return err
		},
	}
}
