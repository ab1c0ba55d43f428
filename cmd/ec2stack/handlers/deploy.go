package handlers

import (
	"context"
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/ec2stack/internal/config"
	"github.com/imamik/ec2stack/internal/deploy"
	awsplatform "github.com/imamik/ec2stack/internal/platform/aws"
	"github.com/imamik/ec2stack/internal/ui/tui"
)

// DeployOptions controls the deploy command.
type DeployOptions struct {
	SynthOptions
	// NoTUI disables the interactive progress view.
	NoTUI bool
}

// Deployer interface for testing - matches deploy.Deployer.
type Deployer interface {
	Deploy(ctx context.Context, req deploy.Request) (*deploy.Result, error)
	Destroy(ctx context.Context, name string) error
}

// Factory function variables for deploy - can be replaced in tests.
var (
	// newDeployer creates a stack deployer.
	newDeployer = func(stacks awsplatform.StackManager, opts ...deploy.Option) Deployer {
		return deploy.New(stacks, opts...)
	}

	// runDeployTUI runs a deploy or destroy under the Bubble Tea view.
	runDeployTUI = func(ctx context.Context, m tui.Model, run tui.RunFunc) (*deploy.Result, error) {
		return tui.RunDeployTUI(ctx, m, run)
	}
)

// useTUI reports whether the interactive view should be used.
func useTUI(g Globals, noTUI bool) bool {
	return !noTUI && g.LogFormat != LogFormatJSON && isInteractiveTTY()
}

// Deploy synthesizes the template, creates or updates the stack and prints
// its outputs.
func Deploy(ctx context.Context, g Globals, opts DeployOptions) error {
	interactive := useTUI(g, opts.NoTUI)
	s, err := newSession(ctx, g, interactive)
	if err != nil {
		return err
	}

	var result *deploy.Result
	if interactive {
		result, err = deployWithTUI(ctx, s, opts)
	} else {
		result, err = deployPlain(ctx, s, opts)
	}
	if err := s.finish("deploy", err); err != nil {
		return err
	}

	printOutputs(s.cfg.StackName, result)
	return nil
}

func deployPlain(ctx context.Context, s *session, opts DeployOptions) (*deploy.Result, error) {
	out, err := synthesize(ctx, s, opts.SynthOptions)
	if err != nil {
		return nil, err
	}
	d := newDeployer(s.client, s.deployOptions(stackEventLogger(s.observer))...)
	return d.Deploy(ctx, out.request(s))
}

func deployWithTUI(ctx context.Context, s *session, opts DeployOptions) (*deploy.Result, error) {
	m := tui.NewDeployModel(s.cfg.StackName, s.env.Region)
	return runDeployTUI(ctx, m, func(ch chan<- tea.Msg) (*deploy.Result, error) {
		ch <- tui.StepMsg{Step: tui.StepSynth}
		out, err := synthesize(ctx, s, opts.SynthOptions)
		if err != nil {
			ch <- tui.StepMsg{Step: tui.StepSynth, Err: err}
			return nil, err
		}

		ch <- tui.StepMsg{Step: tui.StepSubmit}
		d := newDeployer(s.client, s.deployOptions(eventsToTUI(ch))...)
		result, err := d.Deploy(ctx, out.request(s))
		if err != nil {
			return nil, err
		}
		ch <- tui.StepMsg{Step: tui.StepOutput, Done: true}
		return result, nil
	})
}

// eventsToTUI forwards stack events to the view, marking the resources
// step active on the first one.
func eventsToTUI(ch chan<- tea.Msg) deploy.EventHandler {
	send := tui.EventSender(ch)
	started := false
	return func(e awsplatform.StackEvent) {
		if !started {
			started = true
			ch <- tui.StepMsg{Step: tui.StepResources}
		}
		send(e)
	}
}

func (s *session) deployOptions(onEvent deploy.EventHandler) []deploy.Option {
	opts := []deploy.Option{
		deploy.WithTimeouts(config.LoadTimeouts()),
		deploy.WithObserver(s.observer),
		deploy.WithEventHandler(onEvent),
	}
	if s.cfg.ArtifactBucket != "" {
		opts = append(opts, deploy.WithArtifactBucket(s.client, s.cfg.ArtifactBucket))
	}
	return opts
}

// printOutputs prints the stack outputs as <stack>.<name> = <value>.
func printOutputs(stackName string, result *deploy.Result) {
	if result == nil {
		return
	}

	fmt.Fprintln(stdout)
	if result.Changed {
		fmt.Fprintf(stdout, " %s\n", stackName)
	} else {
		fmt.Fprintf(stdout, " %s (no changes)\n", stackName)
	}

	names := make([]string, 0, len(result.Outputs))
	for name := range result.Outputs {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Outputs:")
	for _, name := range names {
		fmt.Fprintf(stdout, "%s.%s = %s\n", stackName, name, result.Outputs[name].Value)
	}

	if result.StackID != "" {
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Stack ARN:")
		fmt.Fprintln(stdout, result.StackID)
	}
}
