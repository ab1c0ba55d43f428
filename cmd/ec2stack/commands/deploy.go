package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/ec2stack/cmd/ec2stack/handlers"
)

// Deploy returns the deploy command.
func Deploy(globals *handlers.Globals) *cobra.Command {
	var opts handlers.DeployOptions

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Synthesize and deploy the stack",
		Long: `Deploy synthesizes the template and creates or updates the stack.

The command waits until the stack settles, then prints its outputs,
including webVmUrl (http://<public ip>/). nginx is installed by
cfn-init after the instance boots, so the URL may take a minute or two
to answer after the stack completes.

A stack left in ROLLBACK_COMPLETE by a failed first create is deleted
and created again.

Example:
  ec2stack deploy -c ec2stack.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Deploy(cmd.Context(), *globals, opts)
		},
	}

	addSynthFlags(cmd, &opts.SynthOptions)
	cmd.Flags().BoolVar(&opts.NoTUI, "no-tui", false, "Print stack events instead of the interactive view")

	return cmd
}
