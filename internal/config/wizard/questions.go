package wizard

import (
	"context"
	"regexp"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/imamik/ec2stack/internal/config"
)

// bucketNameRegex validates S3 bucket names: 3-63 lowercase letters, digits, dots or hyphens.
var bucketNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9.-]{1,61}[a-z0-9]$`)

// runStackIdentityGroup prompts for stack name, template format and region.
func runStackIdentityGroup(ctx context.Context, result *WizardResult) error {
	result.StackName = config.DefaultStackName
	result.TemplateFormat = config.DefaultTemplateFormat

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Stack Name").
				Description("CloudFormation stack name").
				Placeholder(config.DefaultStackName).
				Value(&result.StackName).
				Validate(validateStackName),
			huh.NewSelect[string]().
				Title("Template Format").
				Description("Format of the synthesized template").
				Options(FormatsToOptions()...).
				Value(&result.TemplateFormat),
			huh.NewSelect[string]().
				Title("Region").
				Description("Exported as CDK_DEFAULT_REGION before deploying").
				Options(RegionsToOptions(Regions)...).
				Value(&result.Region),
		).Title("Stack"),
	).RunWithContext(ctx)
}

// runArtifactsGroup asks whether templates are uploaded to S3, then for the bucket.
func runArtifactsGroup(ctx context.Context, result *WizardResult) error {
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Upload Templates to S3?").
				Description("Required for templates over 51,200 bytes").
				Value(&result.UploadTemplates),
		).Title("Template Artifacts"),
	).RunWithContext(ctx)

	if err != nil {
		return err
	}

	if !result.UploadTemplates {
		return nil
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Bucket Name").
				Description("Created in the deploy region if it does not exist").
				Placeholder("my-ec2stack-artifacts").
				Value(&result.ArtifactBucket).
				Validate(validateBucketName),
		).Title("Template Artifacts"),
	).RunWithContext(ctx)
}

// runTagsGroup prompts for extra resource tags (optional).
func runTagsGroup(ctx context.Context, result *WizardResult) error {
	var tagsInput string

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Tags (Optional)").
				Description("Comma-separated key=value pairs added to the security group and instance").
				Placeholder("team=web, env=dev (or leave empty)").
				Value(&tagsInput).
				Validate(validateTags),
		).Title("Tags"),
	).RunWithContext(ctx)

	if err != nil {
		return err
	}

	result.Tags, err = parseTags(tagsInput)
	return err
}

// runPathsGroup prompts for output and context file locations.
func runPathsGroup(ctx context.Context, opts *AdvancedOptions) error {
	opts.OutputDir = config.DefaultOutputDir
	opts.ContextFile = config.DefaultContextFile

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Output Directory").
				Description("Synthesized templates are written here").
				Value(&opts.OutputDir).
				Validate(validateRequired),
			huh.NewInput().
				Title("Context File").
				Description("Caches the default VPC lookup between runs").
				Value(&opts.ContextFile).
				Validate(validateRequired),
		).Title("Paths"),
	).RunWithContext(ctx)
}

// validateStackName validates the stack name with the same rules as config.Validate.
func validateStackName(s string) error {
	if s == "" {
		return errStackNameRequired
	}
	candidate := config.Default()
	candidate.StackName = s
	if candidate.Validate() != nil {
		return errStackNameInvalid
	}
	return nil
}

// validateBucketName validates an S3 bucket name.
func validateBucketName(s string) error {
	if s == "" {
		return errBucketRequired
	}
	if !bucketNameRegex.MatchString(s) {
		return errBucketInvalid
	}
	return nil
}

func validateTags(s string) error {
	_, err := parseTags(s)
	return err
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return errDirRequired
	}
	return nil
}

// parseTags parses a comma-separated list of key=value pairs. Empty input
// yields nil.
func parseTags(input string) (map[string]string, error) {
	var tags map[string]string
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, errTagInvalid
		}
		if tags == nil {
			tags = make(map[string]string)
		}
		tags[key] = strings.TrimSpace(value)
	}
	return tags, nil
}
