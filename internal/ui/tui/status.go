package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	awsplatform "github.com/imamik/ec2stack/internal/platform/aws"
	"github.com/imamik/ec2stack/internal/util/async"
)

// statusEventWindow is how far back the first poll reads stack events.
const statusEventWindow = time.Hour

// RunStatusTUI watches a stack with a Bubble Tea TUI until the user quits.
func RunStatusTUI(ctx context.Context, stacks awsplatform.StackManager, stackName, region string, interval time.Duration) error {
	m := NewStatusModel(stackName)
	m.Region = region
	if interval <= 0 {
		interval = 3 * time.Second
	}

	p := tea.NewProgram(m, tea.WithAltScreen())

	// Poll the stack in background
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		since := time.Now().Add(-statusEventWindow)

		// Fetch immediately with a short timeout to avoid hanging
		fetchCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		since = pollStack(fetchCtx, p, stacks, stackName, since)
		cancel()

		for {
			select {
			case <-ctx.Done():
				p.Send(ErrMsg{Err: ctx.Err()})
				return
			case <-ticker.C:
				since = pollStack(ctx, p, stacks, stackName, since)
			}
		}
	}()

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	fm := finalModel.(Model)
	if fm.Err != nil {
		return fm.Err
	}
	return nil
}

// pollStack sends the stack status and any events newer than since, and
// returns the timestamp of the newest event seen.
func pollStack(ctx context.Context, p *tea.Program, stacks awsplatform.StackManager, stackName string, since time.Time) time.Time {
	msg, events := fetchStackStatus(ctx, stacks, stackName, since)
	for _, e := range events {
		p.Send(StackEventMsg{Event: e})
		if e.Timestamp.After(since) {
			since = e.Timestamp
		}
	}
	p.Send(msg)
	return since
}

// fetchStackStatus reads the stack and its recent events concurrently.
func fetchStackStatus(ctx context.Context, stacks awsplatform.StackManager, stackName string, since time.Time) (StackStatusMsg, []awsplatform.StackEvent) {
	var (
		status *awsplatform.StackStatus
		events []awsplatform.StackEvent
	)
	err := async.RunParallel(ctx, []async.Task{
		{Name: "describe stack", Func: func(ctx context.Context) (err error) {
			status, err = stacks.DescribeStack(ctx, stackName)
			return err
		}},
		{Name: "stack events", Func: func(ctx context.Context) (err error) {
			events, err = stacks.StackEvents(ctx, stackName, since)
			return err
		}},
	})
	if err != nil {
		return StackStatusMsg{FetchErr: err}, nil
	}
	if status == nil {
		return StackStatusMsg{NotFound: true}, nil
	}
	return StackStatusMsg{Status: status}, events
}

// RenderStatusOnce renders stack status once using lipgloss (non-watch mode).
func RenderStatusOnce(ctx context.Context, stacks awsplatform.StackManager, stackName, region string) (string, error) {
	m := NewStatusModel(stackName)
	m.Region = region

	msg, events := fetchStackStatus(ctx, stacks, stackName, time.Now().Add(-statusEventWindow))
	if msg.NotFound {
		return "", fmt.Errorf("stack %s not found", stackName)
	}
	if msg.FetchErr != nil {
		return "", fmt.Errorf("failed to describe stack: %w", msg.FetchErr)
	}
	for _, e := range events {
		m.applyEvent(e)
	}
	m.updateStackStatus(msg.Status)
	return renderView(m), nil
}
