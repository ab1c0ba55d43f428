package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/ec2stack/cmd/ec2stack/handlers"
)

// Synth returns the synth command.
//
// The synth command runs the recipe and writes the CloudFormation template
// to the output directory without touching the stack.
func Synth(globals *handlers.Globals) *cobra.Command {
	var opts handlers.SynthOptions

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Synthesize the CloudFormation template",
		Long: `Synthesize runs the recipe and writes the CloudFormation template.

The default VPC of the target account and region is looked up once and
cached in the context file (ec2stack.context.yaml). Use --no-cache to
look it up again, or --clear-context to drop every cached lookup.

Example:
  ec2stack synth
  ec2stack synth --upload`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Synth(cmd.Context(), *globals, opts)
		},
	}

	addSynthFlags(cmd, &opts)
	cmd.Flags().BoolVar(&opts.Upload, "upload", false, "Upload the template to the configured artifact bucket")

	return cmd
}

func addSynthFlags(cmd *cobra.Command, opts *handlers.SynthOptions) {
	cmd.Flags().BoolVar(&opts.NoCache, "no-cache", false, "Ignore cached lookups")
	cmd.Flags().BoolVar(&opts.ClearContext, "clear-context", false, "Remove the context file before synthesizing")
}
