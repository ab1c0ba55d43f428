// Package tui provides a Bubble Tea-based terminal UI for stack deploys.
package tui

import (
	"github.com/imamik/ec2stack/internal/deploy"
	awsplatform "github.com/imamik/ec2stack/internal/platform/aws"
)

// StepMsg reports progress of a CLI step (synth, submit, ...).
type StepMsg struct {
	Step string
	Done bool
	Err  error
}

// StackEventMsg carries one CloudFormation stack event.
type StackEventMsg struct {
	Event awsplatform.StackEvent
}

// StackStatusMsg carries the latest stack description for the status view.
type StackStatusMsg struct {
	Status   *awsplatform.StackStatus
	NotFound bool
	FetchErr error
}

// TickMsg is sent periodically to refresh the display.
type TickMsg struct{}

// ErrMsg carries an error.
type ErrMsg struct{ Err error }

// DoneMsg signals that the operation is complete. Result is nil for destroy.
type DoneMsg struct {
	Result *deploy.Result
}
