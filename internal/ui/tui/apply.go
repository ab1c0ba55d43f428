package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/ec2stack/internal/deploy"
	awsplatform "github.com/imamik/ec2stack/internal/platform/aws"
)

// RunFunc performs a deploy or destroy, sending StepMsg and StackEventMsg
// values on ch. It returns the deploy result, or nil for destroy.
type RunFunc func(ch chan<- tea.Msg) (*deploy.Result, error)

// EventSender returns a deploy.EventHandler that forwards stack events to ch.
func EventSender(ch chan<- tea.Msg) deploy.EventHandler {
	return func(e awsplatform.StackEvent) {
		ch <- StackEventMsg{Event: e}
	}
}

// RunDeployTUI wraps a deploy or destroy with a Bubble Tea TUI. m is built
// with NewDeployModel or NewDestroyModel.
func RunDeployTUI(ctx context.Context, m Model, run RunFunc, opts ...tea.ProgramOption) (*deploy.Result, error) {
	if len(opts) == 0 {
		opts = []tea.ProgramOption{tea.WithAltScreen()}
	}
	p := tea.NewProgram(m, append(opts, tea.WithContext(ctx))...)

	go func() {
		ch := make(chan tea.Msg, 16)
		var (
			result *deploy.Result
			runErr error
		)
		go func() {
			defer close(ch)
			result, runErr = run(ch)
		}()

		for msg := range ch {
			p.Send(msg)
		}

		if runErr != nil {
			p.Send(ErrMsg{Err: runErr})
			return
		}
		p.Send(DoneMsg{Result: result})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("TUI error: %w", err)
	}

	fm := finalModel.(Model)
	if fm.Err != nil {
		return nil, fm.Err
	}
	if !fm.Done {
		return nil, fmt.Errorf("interrupted before %s finished", fm.Mode)
	}
	return fm.Result, nil
}
