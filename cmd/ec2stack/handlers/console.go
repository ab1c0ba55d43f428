package handlers

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/ec2stack/internal/bootstrap"
	"github.com/imamik/ec2stack/internal/util/naming"
)

// bootErrorMarker starts the line the first-boot script prints for every
// helper that failed.
const bootErrorMarker = bootstrap.ErrorReporter

var bootErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")).Bold(true)

// Console prints the serial console output of the stack's instance and
// highlights boot-script failures.
func Console(ctx context.Context, g Globals) error {
	s, err := newSession(ctx, g, false)
	if err != nil {
		return err
	}

	instanceID, err := s.client.PhysicalResourceID(ctx, s.cfg.StackName, naming.Instance)
	if err != nil {
		return fmt.Errorf("failed to find instance of stack %s: %w", s.cfg.StackName, err)
	}

	output, err := s.client.ConsoleOutput(ctx, instanceID)
	if err != nil {
		return err
	}
	if output == "" {
		fmt.Fprintf(stdout, "No console output yet for %s (it is published a few minutes after boot)\n", instanceID)
		return nil
	}

	failures := writeConsole(output)
	if failures > 0 {
		fmt.Fprintf(stdout, "\n%s\n", bootErrorStyle.Render(
			fmt.Sprintf("%d boot script command(s) failed on %s", failures, instanceID)))
	}
	return nil
}

// writeConsole prints output line by line and returns the number of
// boot-script failure lines.
func writeConsole(output string) int {
	failures := 0
	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, bootErrorMarker) {
			failures++
			line = bootErrorStyle.Render(line)
		}
		fmt.Fprintln(stdout, line)
	}
	return failures
}
