package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/ec2stack/cmd/ec2stack/handlers"
)

// Image returns the image command.
func Image(globals *handlers.Globals) *cobra.Command {
	return &cobra.Command{
		Use:   "image",
		Short: "Print the Ubuntu AMI the stack would launch",
		Long: `Image resolves Canonical's Ubuntu 20.04 SSM parameter in the target
region and prints the AMI ID. The stack resolves the same parameter at
deploy time.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Image(cmd.Context(), *globals)
		},
	}
}
