package handlers

import (
	"bytes"
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/imamik/ec2stack/internal/config"
	awsplatform "github.com/imamik/ec2stack/internal/platform/aws"
	"github.com/imamik/ec2stack/internal/provisioning"
)

// saveAndRestoreSessionFactories saves and restores the factories every
// AWS-facing command goes through.
func saveAndRestoreSessionFactories(t *testing.T) {
	origLoadConfig := loadConfig
	origResolveEnvironment := resolveEnvironment
	origNewAWSClient := newAWSClient
	origIsInteractiveTTY := isInteractiveTTY
	origStdout := stdout
	origLogOutput := logOutput

	t.Cleanup(func() {
		loadConfig = origLoadConfig
		resolveEnvironment = origResolveEnvironment
		newAWSClient = origNewAWSClient
		isInteractiveTTY = origIsInteractiveTTY
		stdout = origStdout
		logOutput = origLogOutput
	})
}

// fakeSession points the session factories at mock and a config rooted in
// a temp dir, and captures stdout. The TTY is reported as absent.
func fakeSession(t *testing.T, mock *awsplatform.MockClient) (*config.Config, *bytes.Buffer) {
	t.Helper()
	saveAndRestoreSessionFactories(t)

	dir := t.TempDir()
	cfg := config.Default()
	cfg.OutputDir = filepath.Join(dir, "out")
	cfg.ContextFile = filepath.Join(dir, "ec2stack.context.yaml")

	loadConfig = func(string) (*config.Config, error) { return cfg, nil }
	resolveEnvironment = func() config.Environment {
		return config.Environment{
			Account:       "123456789012",
			Region:        "eu-west-1",
			AccountSource: config.SourcePrimary,
			RegionSource:  config.SourcePrimary,
		}
	}
	newAWSClient = func(context.Context, config.Environment) (awsplatform.Manager, error) {
		return mock, nil
	}
	isInteractiveTTY = func() bool { return false }

	var buf bytes.Buffer
	stdout = &buf
	logOutput = &bytes.Buffer{}
	return cfg, &buf
}

// recordingObserver keeps every event it receives.
type recordingObserver struct {
	mu     sync.Mutex
	lines  []string
	events []provisioning.Event
}

func (o *recordingObserver) Printf(format string, _ ...interface{}) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lines = append(o.lines, format)
}

func (o *recordingObserver) Event(event provisioning.Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) Progress(string, int, int) {}

func (o *recordingObserver) WithFields(map[string]string) provisioning.Observer { return o }
