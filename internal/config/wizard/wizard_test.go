package wizard

import (
	"errors"
	"strings"
	"testing"

	"github.com/imamik/ec2stack/internal/config"
)

func TestBuildConfig(t *testing.T) {
	result := &WizardResult{
		StackName:       "web-vm",
		TemplateFormat:  config.FormatYAML,
		Region:          "eu-west-1",
		UploadTemplates: true,
		ArtifactBucket:  "my-artifacts",
		Tags:            map[string]string{"team": "web"},
	}

	cfg := BuildConfig(result)

	if cfg.StackName != "web-vm" {
		t.Errorf("StackName = %q, want %q", cfg.StackName, "web-vm")
	}
	if cfg.TemplateFormat != config.FormatYAML {
		t.Errorf("TemplateFormat = %q, want %q", cfg.TemplateFormat, config.FormatYAML)
	}
	if cfg.ArtifactBucket != "my-artifacts" {
		t.Errorf("ArtifactBucket = %q, want %q", cfg.ArtifactBucket, "my-artifacts")
	}
	if cfg.Tags["team"] != "web" {
		t.Errorf("Tags = %v, want team=web", cfg.Tags)
	}

	// Defaults fill the rest
	if cfg.OutputDir != config.DefaultOutputDir {
		t.Errorf("OutputDir = %q, want default", cfg.OutputDir)
	}
	if cfg.ContextFile != config.DefaultContextFile {
		t.Errorf("ContextFile = %q, want default", cfg.ContextFile)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("built config should validate: %v", err)
	}
}

func TestBuildConfig_TagsCopied(t *testing.T) {
	tags := map[string]string{"env": "dev"}
	cfg := BuildConfig(&WizardResult{StackName: "web-vm", Tags: tags})

	tags["env"] = "prod"
	if cfg.Tags["env"] != "dev" {
		t.Error("config tags should not alias the wizard answers")
	}
}

func TestBuildConfig_BucketIgnoredWithoutUpload(t *testing.T) {
	cfg := BuildConfig(&WizardResult{
		StackName:      "web-vm",
		ArtifactBucket: "leftover",
	})
	if cfg.ArtifactBucket != "" {
		t.Errorf("ArtifactBucket = %q, want empty", cfg.ArtifactBucket)
	}
	if cfg.Tags != nil {
		t.Errorf("Tags = %v, want nil", cfg.Tags)
	}
}

func TestBuildConfigWithAdvancedOptions(t *testing.T) {
	cfg := BuildConfig(&WizardResult{
		StackName: "web-vm",
		AdvancedOptions: &AdvancedOptions{
			OutputDir:   "build/cfn",
			ContextFile: ".ec2stack/context.yaml",
		},
	})

	if cfg.OutputDir != "build/cfn" {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, "build/cfn")
	}
	if cfg.ContextFile != ".ec2stack/context.yaml" {
		t.Errorf("ContextFile = %q, want %q", cfg.ContextFile, ".ec2stack/context.yaml")
	}
	if cfg.TemplateFormat != config.DefaultTemplateFormat {
		t.Errorf("TemplateFormat = %q, want default", cfg.TemplateFormat)
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		input   string
		want    map[string]string
		wantErr bool
	}{
		{"", nil, false},
		{"  ,  ", nil, false},
		{"team=web", map[string]string{"team": "web"}, false},
		{"team=web, env = dev", map[string]string{"team": "web", "env": "dev"}, false},
		{"empty=", map[string]string{"empty": ""}, false},
		{"novalue", nil, true},
		{"=web", nil, true},
		{"team=web,broken", nil, true},
	}

	for _, tt := range tests {
		got, err := parseTags(tt.input)
		if tt.wantErr {
			if !errors.Is(err, errTagInvalid) {
				t.Errorf("parseTags(%q) error = %v, want errTagInvalid", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseTags(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("parseTags(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for k, v := range tt.want {
			if got[k] != v {
				t.Errorf("parseTags(%q)[%q] = %q, want %q", tt.input, k, got[k], v)
			}
		}
	}
}

func TestValidateStackName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr error
	}{
		{"UbuntuBasedEc2InstanceStack", nil},
		{"web-vm-1", nil},
		{"", errStackNameRequired},
		{"1stack", errStackNameInvalid},
		{"web_vm", errStackNameInvalid},
		{strings.Repeat("a", 129), errStackNameInvalid},
	}

	for _, tt := range tests {
		err := validateStackName(tt.name)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("validateStackName(%q) = %v, want %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestValidateBucketName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr error
	}{
		{"my-artifacts", nil},
		{"my.artifacts.bucket", nil},
		{"", errBucketRequired},
		{"ab", errBucketInvalid},
		{"My-Bucket", errBucketInvalid},
		{"-leading", errBucketInvalid},
	}

	for _, tt := range tests {
		err := validateBucketName(tt.name)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("validateBucketName(%q) = %v, want %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestValidateRequired(t *testing.T) {
	if err := validateRequired("   "); !errors.Is(err, errDirRequired) {
		t.Errorf("expected errDirRequired, got %v", err)
	}
	if err := validateRequired("out"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateTags(t *testing.T) {
	if err := validateTags("team=web"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := validateTags("team"); err == nil {
		t.Error("expected error for tag without value separator")
	}
}
