package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/ec2stack/cmd/ec2stack/handlers"
)

// Status returns the status command.
func Status(globals *handlers.Globals) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show stack status, resources and outputs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Status(cmd.Context(), *globals, watch)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep polling in an interactive view")

	return cmd
}
