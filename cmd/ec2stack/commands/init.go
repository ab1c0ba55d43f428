package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/ec2stack/cmd/ec2stack/handlers"
	"github.com/imamik/ec2stack/internal/config"
)

// Init returns the command for interactively creating ec2stack.yaml.
//
// Flags:
//
//	--output, -o: Path to output file (default "ec2stack.yaml")
//	--advanced, -a: Ask for output and context file locations
//	--full, -f: Output full YAML with all options (default: minimal output)
func Init() *cobra.Command {
	var (
		outputPath string
		advanced   bool
		fullOutput bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create an ec2stack configuration",
		Long: `Interactively create an ec2stack.yaml configuration file.

The wizard asks about:

  - Stack name and template format
  - Target region (written as a usage hint, the region itself is
    read from CDK_DEPLOY_REGION / CDK_DEFAULT_REGION at deploy time)
  - An optional S3 bucket for template artifacts
  - Extra resource tags

Use --advanced to also choose the output directory and context file.

Use --full to write every field, including defaults. By default only
values that differ from the defaults are written.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath, advanced, fullOutput)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultConfigFilename, "Output file path")
	cmd.Flags().BoolVarP(&advanced, "advanced", "a", false, "Show advanced configuration options")
	cmd.Flags().BoolVarP(&fullOutput, "full", "f", false, "Output full YAML with all options")

	return cmd
}
