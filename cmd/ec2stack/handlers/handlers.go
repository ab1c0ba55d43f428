// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/imamik/ec2stack/internal/config"
	awsplatform "github.com/imamik/ec2stack/internal/platform/aws"
	"github.com/imamik/ec2stack/internal/provisioning"
)

// Globals holds the persistent root flags shared by every command.
type Globals struct {
	ConfigPath  string
	LogFormat   string
	MetricsFile string
	Verbosity   int
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfig loads ec2stack.yaml, searching parent directories when
	// the path is empty.
	loadConfig = config.Load

	// resolveEnvironment reads CDK_DEPLOY_* / CDK_DEFAULT_*.
	resolveEnvironment = config.ResolveEnvironment

	// newAWSClient creates the AWS client for env.
	newAWSClient = func(ctx context.Context, env config.Environment) (awsplatform.Manager, error) {
		awsCfg, err := awsplatform.LoadConfig(ctx, env)
		if err != nil {
			return nil, err
		}
		return awsplatform.NewClient(awsCfg, awsplatform.WithTimeouts(config.LoadTimeouts())), nil
	}

	// isInteractiveTTY reports whether stdout is a terminal.
	isInteractiveTTY = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	// stdout receives command output.
	stdout io.Writer = os.Stdout

	// logOutput receives JSON log lines.
	logOutput io.Writer = os.Stderr
)

// session bundles what every AWS-facing command needs.
type session struct {
	globals  Globals
	cfg      *config.Config
	env      config.Environment
	client   awsplatform.Manager
	observer provisioning.Observer
	metrics  *provisioning.Metrics
}

// newSession loads the configuration, connects to AWS and resolves the
// deploy target. quiet silences progress logging (used under the TUI).
func newSession(ctx context.Context, g Globals, quiet bool) (*session, error) {
	cfg, err := loadConfig(g.ConfigPath)
	if err != nil {
		return nil, err
	}

	observer, err := newObserver(g, quiet)
	if err != nil {
		return nil, err
	}

	env := resolveEnvironment()
	if env.IsAgnostic() {
		observer.Printf("No deploy target set, using the SDK region and the caller account")
	}
	client, err := newAWSClient(ctx, env)
	if err != nil {
		return nil, err
	}

	env, err = resolveTarget(ctx, client, env)
	if err != nil {
		return nil, err
	}
	observer.Printf("Target: account %s (%s), region %s (%s)", env.Account, env.AccountSource, env.Region, env.RegionSource)

	return &session{
		globals:  g,
		cfg:      cfg,
		env:      env,
		client:   client,
		observer: observer,
		metrics:  provisioning.NewMetrics(cfg.StackName),
	}, nil
}

// resolveTarget fills an environment-agnostic target from the SDK region
// and the caller identity.
func resolveTarget(ctx context.Context, ids awsplatform.IdentityResolver, env config.Environment) (config.Environment, error) {
	if env.Region == "" {
		env.Region = ids.Region()
	}
	if env.Account == "" {
		account, err := ids.CallerAccount(ctx)
		if err != nil {
			return env, fmt.Errorf("failed to resolve account: %w", err)
		}
		env.Account = account
	}
	return env, nil
}

// finish records the operation result and writes the metrics file if one
// was requested. err is returned unchanged.
func (s *session) finish(operation string, err error) error {
	s.metrics.RecordOperation(operation, err)
	if s.globals.MetricsFile != "" {
		if werr := s.metrics.WriteToFile(s.globals.MetricsFile); werr != nil {
			log.Printf("Warning: failed to write metrics: %v", werr)
		}
	}
	return err
}
