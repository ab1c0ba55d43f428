package wizard

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/imamik/ec2stack/internal/config"
)

// Function variable for dependency injection in tests.
var confirmOverwrite = defaultConfirmOverwrite

// WriteConfig writes the config to a YAML file with a descriptive header.
// If fullOutput is false, only values that differ from the defaults are
// written. region is only used in the usage hint and may be empty.
func WriteConfig(cfg *config.Config, outputPath, region string, fullOutput bool) error {
	var yamlBytes []byte
	var err error

	if fullOutput {
		yamlBytes, err = yaml.Marshal(cfg)
	} else {
		yamlBytes, err = yaml.Marshal(buildMinimalConfig(cfg))
	}

	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(generateHeader(outputPath, region, fullOutput))
	sb.WriteString("\n")
	sb.Write(yamlBytes)

	if err := os.WriteFile(outputPath, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// MinimalConfig represents the minimal configuration for YAML output.
// Only contains fields that are required or differ from the defaults.
type MinimalConfig struct {
	StackName      string            `yaml:"stack_name"`
	OutputDir      string            `yaml:"output_dir,omitempty"`
	TemplateFormat string            `yaml:"template_format,omitempty"`
	ContextFile    string            `yaml:"context_file,omitempty"`
	ArtifactBucket string            `yaml:"artifact_bucket,omitempty"`
	Tags           map[string]string `yaml:"tags,omitempty"`
}

// buildMinimalConfig creates a minimal config from the full config.
func buildMinimalConfig(cfg *config.Config) *MinimalConfig {
	minCfg := &MinimalConfig{
		StackName:      cfg.StackName,
		ArtifactBucket: cfg.ArtifactBucket,
		Tags:           cfg.Tags,
	}

	if cfg.OutputDir != config.DefaultOutputDir {
		minCfg.OutputDir = cfg.OutputDir
	}
	if cfg.TemplateFormat != config.DefaultTemplateFormat {
		minCfg.TemplateFormat = cfg.TemplateFormat
	}
	if cfg.ContextFile != config.DefaultContextFile {
		minCfg.ContextFile = cfg.ContextFile
	}

	return minCfg
}

// generateHeader creates the YAML file header comment.
func generateHeader(outputPath, region string, fullOutput bool) string {
	mode := "minimal"
	note := "\n# Note: This is a minimal config. Use --full flag for all options."
	if fullOutput {
		mode = "full"
		note = ""
	}
	if region == "" {
		region = "<region>"
	}
	return fmt.Sprintf(`# ec2stack configuration
# Generated by: ec2stack init
# Generated at: %s
# Output mode: %s%s
#
# Deploy target (account falls back to the caller identity when unset):
#   %s / %s - AWS account
#   %s / %s - AWS region
#
# Usage:
#   export %s=%s
#   ec2stack deploy -c %s
`, time.Now().Format(time.RFC3339), mode, note,
		config.EnvDeployAccount, config.EnvDefaultAccount,
		config.EnvDeployRegion, config.EnvDefaultRegion,
		config.EnvDefaultRegion, region, outputPath)
}

// FileExists checks if a file exists at the given path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ConfirmOverwrite prompts the user to confirm overwriting an existing file.
func ConfirmOverwrite(path string) (bool, error) {
	return confirmOverwrite(path)
}

// defaultConfirmOverwrite is the default implementation that prompts via stdin.
func defaultConfirmOverwrite(path string) (bool, error) {
	fmt.Printf("\nFile already exists: %s\n", path)
	fmt.Print("Overwrite? (y/n): ")

	var response string
	if _, err := fmt.Scanln(&response); err != nil {
		return false, err
	}

	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes", nil
}
