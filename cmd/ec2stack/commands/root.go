// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/ec2stack/cmd/ec2stack/handlers"
)

// Root returns the root command for the ec2stack CLI.
//
// The root command owns the persistent flags shared by every subcommand.
func Root() *cobra.Command {
	globals := &handlers.Globals{}

	cmd := &cobra.Command{
		Use:           "ec2stack",
		Short:         "Deploy an nginx web VM on EC2 with CloudFormation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&globals.ConfigPath, "config", "c", "", "Path to ec2stack.yaml (default: search upwards from the working directory)")
	cmd.PersistentFlags().StringVar(&globals.LogFormat, "log-format", handlers.LogFormatText, "Log format: text or json")
	cmd.PersistentFlags().StringVar(&globals.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file (textfile collector format)")
	cmd.PersistentFlags().IntVarP(&globals.Verbosity, "verbose", "v", 0, "Log verbosity for json logs")

	// Core commands
	cmd.AddCommand(Init())
	cmd.AddCommand(Synth(globals))
	cmd.AddCommand(Deploy(globals))
	cmd.AddCommand(Status(globals))
	cmd.AddCommand(Destroy(globals))

	// Utility commands
	cmd.AddCommand(Console(globals))
	cmd.AddCommand(Image(globals))
	cmd.AddCommand(Version())

	return cmd
}
