package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/ec2stack/internal/config"
	"github.com/imamik/ec2stack/internal/config/wizard"
	"github.com/imamik/ec2stack/internal/provisioning/recipe"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = wizard.FileExists

	// confirmOverwrite asks before replacing an existing file.
	confirmOverwrite = wizard.ConfirmOverwrite

	// runWizard runs the interactive wizard.
	runWizard = wizard.RunWizard

	// writeConfig writes the config to a file.
	writeConfig = wizard.WriteConfig
)

// Init runs the configuration wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string, advanced, fullOutput bool) error {
	if fileExists(outputPath) {
		ok, err := confirmOverwrite(outputPath)
		if err != nil {
			return fmt.Errorf("failed to confirm overwrite: %w", err)
		}
		if !ok {
			fmt.Fprintln(stdout, "Aborted.")
			return nil
		}
	}

	printWelcome()

	result, err := runWizard(ctx, advanced)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	cfg := wizard.BuildConfig(result)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := writeConfig(cfg, outputPath, result.Region, fullOutput); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, result.Region, cfg)
	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "ec2stack - an nginx web VM on EC2")
	fmt.Fprintln(stdout, "=================================")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "This wizard creates an ec2stack.yaml with sensible defaults.")
	fmt.Fprintln(stdout)
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath, region string, cfg *config.Config) {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Configuration saved!")
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "  File: %s\n", outputPath)
	fmt.Fprintln(stdout)

	fmt.Fprintln(stdout, "Stack Summary")
	fmt.Fprintln(stdout, "-------------")
	fmt.Fprintf(stdout, "  Name:     %s\n", cfg.StackName)
	fmt.Fprintf(stdout, "  Format:   %s\n", cfg.TemplateFormat)
	fmt.Fprintf(stdout, "  Instance: %s, Ubuntu 20.04, nginx on port %d\n", recipe.InstanceType, recipe.HTTPPort)
	if cfg.ArtifactBucket != "" {
		fmt.Fprintf(stdout, "  Bucket:   %s\n", cfg.ArtifactBucket)
	}
	fmt.Fprintln(stdout)

	if region == "" {
		region = "<region>"
	}
	fmt.Fprintln(stdout, "Next Steps")
	fmt.Fprintln(stdout, "----------")
	fmt.Fprintln(stdout, "  1. Choose the target region:")
	fmt.Fprintf(stdout, "     export %s=%s\n", config.EnvDefaultRegion, region)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "  2. Deploy the stack:")
	fmt.Fprintf(stdout, "     ec2stack deploy -c %s\n", outputPath)
	fmt.Fprintln(stdout)
}
