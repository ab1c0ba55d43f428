package wizard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/imamik/ec2stack/internal/config"
)

func TestWriteConfig_MinimalOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ec2stack.yaml")

	cfg := config.Default()
	cfg.StackName = "web-vm"

	if err := WriteConfig(cfg, path, "eu-west-1", false); err != nil {
		t.Fatalf("WriteConfig() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "stack_name: web-vm") {
		t.Error("expected stack_name in output")
	}
	for _, absent := range []string{"output_dir", "template_format", "context_file", "artifact_bucket", "tags"} {
		if strings.Contains(content, absent+":") {
			t.Errorf("minimal output should omit default %s", absent)
		}
	}
	if !strings.Contains(content, "export CDK_DEFAULT_REGION=eu-west-1") {
		t.Error("expected region usage hint in header")
	}
}

func TestWriteConfig_FullOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ec2stack.yaml")

	cfg := config.Default()
	if err := WriteConfig(cfg, path, "", true); err != nil {
		t.Fatalf("WriteConfig() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	content := string(data)

	for _, want := range []string{"output_dir: ec2stack.out", "template_format: json", "context_file: ec2stack.context.yaml"} {
		if !strings.Contains(content, want) {
			t.Errorf("full output should contain %q", want)
		}
	}
	if !strings.Contains(content, "<region>") {
		t.Error("expected region placeholder when no region was chosen")
	}
}

func TestWriteConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ec2stack.yaml")

	cfg := BuildConfig(&WizardResult{
		StackName:       "web-vm",
		TemplateFormat:  config.FormatYAML,
		UploadTemplates: true,
		ArtifactBucket:  "my-artifacts",
		Tags:            map[string]string{"team": "web"},
	})
	if err := WriteConfig(cfg, path, "us-east-1", false); err != nil {
		t.Fatalf("WriteConfig() error = %v", err)
	}

	loaded, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if loaded.StackName != "web-vm" || loaded.TemplateFormat != config.FormatYAML {
		t.Errorf("loaded config = %+v", loaded)
	}
	if loaded.ArtifactBucket != "my-artifacts" || loaded.Tags["team"] != "web" {
		t.Errorf("loaded config = %+v", loaded)
	}
}

func TestWriteConfig_FilePermissions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ec2stack.yaml")

	if err := WriteConfig(config.Default(), path, "", false); err != nil {
		t.Fatalf("WriteConfig() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file permissions = %o, want 0600", perm)
	}
}

func TestWriteConfig_InvalidPath(t *testing.T) {
	err := WriteConfig(config.Default(), "/nonexistent/dir/ec2stack.yaml", "", false)
	if err == nil {
		t.Error("expected error for invalid path")
	}
}

func TestBuildMinimalConfig(t *testing.T) {
	cfg := config.Default()
	cfg.StackName = "web-vm"
	cfg.TemplateFormat = config.FormatYAML
	cfg.OutputDir = "build"

	minCfg := buildMinimalConfig(cfg)

	if minCfg.StackName != "web-vm" {
		t.Errorf("StackName = %q", minCfg.StackName)
	}
	if minCfg.TemplateFormat != config.FormatYAML {
		t.Errorf("TemplateFormat = %q, want yaml", minCfg.TemplateFormat)
	}
	if minCfg.OutputDir != "build" {
		t.Errorf("OutputDir = %q, want build", minCfg.OutputDir)
	}
	if minCfg.ContextFile != "" {
		t.Errorf("ContextFile = %q, want omitted default", minCfg.ContextFile)
	}

	out, err := yaml.Marshal(minCfg)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(out), "context_file") {
		t.Error("context_file should be omitted")
	}
}

func TestGenerateHeader(t *testing.T) {
	header := generateHeader("ec2stack.yaml", "us-west-2", false)
	for _, want := range []string{
		"# ec2stack configuration",
		"Output mode: minimal",
		"--full flag",
		"CDK_DEPLOY_ACCOUNT / CDK_DEFAULT_ACCOUNT",
		"ec2stack deploy -c ec2stack.yaml",
	} {
		if !strings.Contains(header, want) {
			t.Errorf("header should contain %q", want)
		}
	}
}

func TestGenerateHeader_FullMode(t *testing.T) {
	header := generateHeader("ec2stack.yaml", "", true)
	if !strings.Contains(header, "Output mode: full") {
		t.Error("header should report full mode")
	}
	if strings.Contains(header, "--full flag") {
		t.Error("full mode header should not suggest --full")
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "present.yaml")
	if FileExists(path) {
		t.Error("FileExists() = true before the file was written")
	}
	if err := os.WriteFile(path, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	if !FileExists(path) {
		t.Error("FileExists() = false for an existing file")
	}
}

func TestConfirmOverwrite_Injected(t *testing.T) {
	orig := confirmOverwrite
	defer func() { confirmOverwrite = orig }()

	var asked string
	confirmOverwrite = func(path string) (bool, error) {
		asked = path
		return true, nil
	}

	ok, err := ConfirmOverwrite("ec2stack.yaml")
	if err != nil || !ok {
		t.Errorf("ConfirmOverwrite() = %v, %v", ok, err)
	}
	if asked != "ec2stack.yaml" {
		t.Errorf("prompted for %q", asked)
	}
}
