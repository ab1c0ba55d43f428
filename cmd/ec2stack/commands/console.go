package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/ec2stack/cmd/ec2stack/handlers"
)

// Console returns the console command.
func Console(globals *handlers.Globals) *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Print the instance's serial console output",
		Long: `Console prints the latest serial console output of the stack's
instance. Lines starting with qs_err are boot script helpers that failed
and are highlighted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Console(cmd.Context(), *globals)
		},
	}
}
