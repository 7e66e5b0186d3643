package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/goliatone/go-leadform/pkg/client"
	"github.com/goliatone/go-leadform/pkg/tui"
	"github.com/goliatone/go-leadform/pkg/wizard"
)

// ErrNoTerminal is returned when the wizard is not attached to a terminal.
var ErrNoTerminal = errors.New("leadform: wizard needs an interactive terminal")

// isTerminal is replaced in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Wizard returns the terminal wizard command.
func Wizard() *cobra.Command {
	var endpoint string

	cmd := &cobra.Command{
		Use:   "wizard",
		Short: "Answer the lead wizard in the terminal and submit it to a server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal() {
				return ErrNoTerminal
			}
			c, err := client.New(endpoint)
			if err != nil {
				return err
			}
			session := wizard.NewSession(wizard.WithSubmitter(c))
			runner, err := tui.New(session, tui.WithPromptDriver(tui.NewSurveyDriver(cmd.OutOrStdout())))
			if err != nil {
				return err
			}
			if err := runner.Run(cmd.Context()); err != nil {
				if errors.Is(err, tui.ErrAborted) {
					return fmt.Errorf("wizard cancelled: %w", err)
				}
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&endpoint, "endpoint", "e", "http://localhost:8080", "leadform server URL")
	return cmd
}
