package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/ec2stack/internal/config"
	"github.com/imamik/ec2stack/internal/ui/tui"
)

// Factory function variables for status - can be replaced in tests.
var (
	// runStatusTUI watches a stack until the user quits.
	runStatusTUI = tui.RunStatusTUI

	// renderStatusOnce renders the stack status once.
	renderStatusOnce = tui.RenderStatusOnce
)

// Status shows the stack status, resources and outputs. With watch on a
// terminal it keeps polling until the user quits.
func Status(ctx context.Context, g Globals, watch bool) error {
	interactive := watch && useTUI(g, false)
	s, err := newSession(ctx, g, interactive)
	if err != nil {
		return err
	}

	if interactive {
		return runStatusTUI(ctx, s.client, s.cfg.StackName, s.env.Region, config.LoadTimeouts().PollInterval)
	}

	out, err := renderStatusOnce(ctx, s.client, s.cfg.StackName, s.env.Region)
	if err != nil {
		return err
	}
	fmt.Fprint(stdout, out)
	return nil
}
