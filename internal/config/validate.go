package config

import (
	"fmt"
	"regexp"
)

// stackNameRegex matches CloudFormation stack names: a letter followed by
// up to 127 letters, digits or hyphens.
var stackNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]{0,127}$`)

// bucketNameRegex is a loose S3 bucket name check.
var bucketNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9.-]{1,61}[a-z0-9]$`)

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if c.StackName == "" {
		return fmt.Errorf("stack_name is required")
	}
	if !stackNameRegex.MatchString(c.StackName) {
		return fmt.Errorf("invalid stack_name %q: must start with a letter and contain only letters, digits and hyphens (max 128)", c.StackName)
	}

	switch c.TemplateFormat {
	case FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("invalid template_format %q: must be %q or %q", c.TemplateFormat, FormatJSON, FormatYAML)
	}

	if c.ArtifactBucket != "" && !bucketNameRegex.MatchString(c.ArtifactBucket) {
		return fmt.Errorf("invalid artifact_bucket %q", c.ArtifactBucket)
	}

	for k := range c.Tags {
		if k == "" {
			return fmt.Errorf("tag keys must not be empty")
		}
		if len(k) > 128 {
			return fmt.Errorf("tag key %q exceeds 128 characters", k)
		}
	}

	return nil
}
