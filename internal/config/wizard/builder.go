package wizard

import "github.com/imamik/ec2stack/internal/config"

// BuildConfig creates a Config struct from the wizard result.
func BuildConfig(result *WizardResult) *config.Config {
	cfg := &config.Config{
		StackName:      result.StackName,
		TemplateFormat: result.TemplateFormat,
	}

	// Only set the bucket when uploads were requested
	if result.UploadTemplates {
		cfg.ArtifactBucket = result.ArtifactBucket
	}

	if len(result.Tags) > 0 {
		cfg.Tags = make(map[string]string, len(result.Tags))
		for k, v := range result.Tags {
			cfg.Tags[k] = v
		}
	}

	if result.AdvancedOptions != nil {
		applyAdvancedOptions(cfg, result.AdvancedOptions)
	}

	cfg.ApplyDefaults()
	return cfg
}

// applyAdvancedOptions applies advanced options to the config.
func applyAdvancedOptions(cfg *config.Config, opts *AdvancedOptions) {
	if opts.OutputDir != "" {
		cfg.OutputDir = opts.OutputDir
	}
	if opts.ContextFile != "" {
		cfg.ContextFile = opts.ContextFile
	}
}
