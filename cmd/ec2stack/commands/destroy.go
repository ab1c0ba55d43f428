package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/ec2stack/cmd/ec2stack/handlers"
)

// Destroy returns the destroy command.
//
// The destroy command deletes the stack and with it the instance, its
// security group, and its IAM role and instance profile.
func Destroy(globals *handlers.Globals) *cobra.Command {
	var opts handlers.DestroyOptions

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Delete the stack and all of its resources",
		Long: `Destroy deletes the CloudFormation stack and waits until it is gone.

A stack that does not exist is not an error.

Example:
  ec2stack destroy --force

WARNING: This operation is irreversible.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Destroy(cmd.Context(), *globals, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Do not ask for confirmation")
	cmd.Flags().BoolVar(&opts.NoTUI, "no-tui", false, "Print stack events instead of the interactive view")

	return cmd
}
