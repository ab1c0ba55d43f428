package config

// Config holds the stack configuration read from ec2stack.yaml.
type Config struct {
	// StackName is the CloudFormation stack name.
	StackName string `yaml:"stack_name"`

	// OutputDir receives synthesized templates.
	// Default: ec2stack.out
	OutputDir string `yaml:"output_dir,omitempty"`

	// TemplateFormat is json or yaml.
	// Default: json
	TemplateFormat string `yaml:"template_format,omitempty"`

	// ContextFile caches lookups (default VPC) between runs.
	// Default: ec2stack.context.yaml
	ContextFile string `yaml:"context_file,omitempty"`

	// ArtifactBucket, if set, receives a copy of every synthesized template.
	ArtifactBucket string `yaml:"artifact_bucket,omitempty"`

	// Tags are added to every taggable resource.
	Tags map[string]string `yaml:"tags,omitempty"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills empty fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c.StackName == "" {
		c.StackName = DefaultStackName
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.TemplateFormat == "" {
		c.TemplateFormat = DefaultTemplateFormat
	}
	if c.ContextFile == "" {
		c.ContextFile = DefaultContextFile
	}
}
