package wizard

import (
	"github.com/charmbracelet/huh"

	"github.com/imamik/ec2stack/internal/config"
)

// FormatOption represents a template serialization format.
type FormatOption struct {
	Value       string
	Label       string
	Description string
}

// RegionOption represents an AWS region.
type RegionOption struct {
	Value       string
	Label       string
	Description string
}

// TemplateFormats contains the supported template formats.
var TemplateFormats = []FormatOption{
	{Value: config.FormatJSON, Label: "JSON", Description: "CloudFormation JSON (default)"},
	{Value: config.FormatYAML, Label: "YAML", Description: "CloudFormation YAML"},
}

// Regions contains commonly used AWS regions. The region is read from the
// environment at deploy time; the wizard only uses it for the usage hint.
var Regions = []RegionOption{
	{Value: "us-east-1", Label: "us-east-1", Description: "N. Virginia"},
	{Value: "us-east-2", Label: "us-east-2", Description: "Ohio"},
	{Value: "us-west-2", Label: "us-west-2", Description: "Oregon"},
	{Value: "eu-west-1", Label: "eu-west-1", Description: "Ireland"},
	{Value: "eu-central-1", Label: "eu-central-1", Description: "Frankfurt"},
	{Value: "ap-southeast-1", Label: "ap-southeast-1", Description: "Singapore"},
	{Value: "ap-northeast-1", Label: "ap-northeast-1", Description: "Tokyo"},
}

// FormatsToOptions converts TemplateFormats to huh options.
func FormatsToOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(TemplateFormats))
	for i, f := range TemplateFormats {
		opts[i] = huh.NewOption(f.Label+" - "+f.Description, f.Value)
	}
	return opts
}

// RegionsToOptions converts RegionOption slice to huh.Option slice.
func RegionsToOptions(regions []RegionOption) []huh.Option[string] {
	opts := make([]huh.Option[string], len(regions))
	for i, r := range regions {
		opts[i] = huh.NewOption(r.Label+" - "+r.Description, r.Value)
	}
	return opts
}
