package handlers

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/imamik/ec2stack/internal/deploy"
	"github.com/imamik/ec2stack/internal/ui/tui"
)

// errNonInteractiveDestroy is returned when confirmation is needed but no
// terminal is attached.
var errNonInteractiveDestroy = errors.New("refusing to destroy without --force in a non-interactive session")

// Factory function variables for destroy - can be replaced in tests.
var (
	// confirmDestroy asks the user to confirm deleting the stack.
	confirmDestroy = func(ctx context.Context, stackName string) (bool, error) {
		var confirmed bool
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Are you sure you want to delete: %s?", stackName)).
					Description("The instance, its security group and IAM role are removed.").
					Value(&confirmed),
			),
		).RunWithContext(ctx)
		return confirmed, err
	}
)

// DestroyOptions controls the destroy command.
type DestroyOptions struct {
	// Force skips the confirmation prompt.
	Force bool
	// NoTUI disables the interactive progress view.
	NoTUI bool
}

// Destroy deletes the stack and waits until it is gone.
func Destroy(ctx context.Context, g Globals, opts DestroyOptions) error {
	if !opts.Force && !isInteractiveTTY() {
		return errNonInteractiveDestroy
	}

	interactive := useTUI(g, opts.NoTUI)
	s, err := newSession(ctx, g, interactive)
	if err != nil {
		return err
	}

	if !opts.Force {
		ok, err := confirmDestroy(ctx, s.cfg.StackName)
		if err != nil {
			return fmt.Errorf("confirmation canceled: %w", err)
		}
		if !ok {
			fmt.Fprintln(stdout, "Destroy aborted.")
			return nil
		}
	}

	if interactive {
		m := tui.NewDestroyModel(s.cfg.StackName, s.env.Region)
		_, err = runDeployTUI(ctx, m, func(ch chan<- tea.Msg) (*deploy.Result, error) {
			ch <- tui.StepMsg{Step: tui.StepDelete}
			d := newDeployer(s.client, s.deployOptions(eventsToTUI(ch))...)
			return nil, d.Destroy(ctx, s.cfg.StackName)
		})
	} else {
		d := newDeployer(s.client, s.deployOptions(stackEventLogger(s.observer))...)
		err = d.Destroy(ctx, s.cfg.StackName)
	}
	if err := s.finish("destroy", err); err != nil {
		return err
	}

	fmt.Fprintf(stdout, " %s: destroyed\n", s.cfg.StackName)
	return nil
}
