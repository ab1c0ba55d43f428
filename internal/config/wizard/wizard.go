package wizard

import (
	"context"
	"fmt"
)

// WizardResult holds all the answers from the interactive wizard.
type WizardResult struct {
	// Stack identity
	StackName      string
	TemplateFormat string // "json" or "yaml"

	// Region is only used for the usage hint in the file header.
	Region string

	// Template artifacts
	UploadTemplates bool
	ArtifactBucket  string

	// Tags as key=value pairs
	Tags map[string]string

	// Advanced options (only set in advanced mode)
	AdvancedOptions *AdvancedOptions
}

// AdvancedOptions holds advanced configuration options.
type AdvancedOptions struct {
	OutputDir   string
	ContextFile string
}

// RunWizard runs the interactive configuration wizard.
// If advanced is true, additional configuration options are shown.
// The context is used for cancellation support (e.g., Ctrl+C).
func RunWizard(ctx context.Context, advanced bool) (*WizardResult, error) {
	result := &WizardResult{}

	if err := runStackIdentityGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("stack identity: %w", err)
	}

	if err := runArtifactsGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("artifacts: %w", err)
	}

	if err := runTagsGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("tags: %w", err)
	}

	if advanced {
		advOpts := &AdvancedOptions{}
		if err := runPathsGroup(ctx, advOpts); err != nil {
			return nil, fmt.Errorf("paths: %w", err)
		}
		result.AdvancedOptions = advOpts
	}

	return result, nil
}
