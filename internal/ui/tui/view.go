package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/ec2stack/internal/deploy"
	"github.com/imamik/ec2stack/internal/provisioning/recipe"
	"github.com/imamik/ec2stack/internal/ui/benchmarks"
)

// styleFunc is a single-string styling function.
type styleFunc func(string) string

// sf wraps a lipgloss.Style into a styleFunc.
func sf(s lipgloss.Style) styleFunc {
	return func(str string) string { return s.Render(str) }
}

func renderView(m Model) string {
	var b strings.Builder

	renderHeader(&b, m)

	if m.Mode == "deploy" {
		renderProgressBar(&b, m)
	}

	if len(m.Steps) > 0 && !m.StepsDone {
		renderSteps(&b, m)
	}

	if len(m.Resources) > 0 {
		renderResources(&b, m)
	}

	if len(m.Outputs) > 0 {
		renderOutputs(&b, m)
	}

	if len(m.Failures) > 0 {
		renderFailures(&b, m)
	}

	renderFooter(&b, m)

	return b.String()
}

func renderHeader(b *strings.Builder, m Model) {
	title := fmt.Sprintf("ec2stack: %s", m.StackName)
	if m.Region != "" {
		title += fmt.Sprintf(" (%s)", m.Region)
	}
	b.WriteString(titleStyle.Render(title))

	status := " "
	switch {
	case m.Err != nil:
		status += failedStyle.Render(fmt.Sprintf("Error: %v", m.Err))
	case m.Done && m.Mode == "destroy":
		status += readyStyle.Render("Deleted")
	case m.Done:
		status += readyStyle.Render("Ready")
	case m.StackStatus == "":
		status += dimStyle.Render("Preparing...")
	case deploy.IsFailure(m.StackStatus):
		status += failedStyle.Render(m.StackStatus)
	case deploy.IsInProgress(m.StackStatus):
		status += activeStyle.Render(currentSpinner(m.SpinnerFrame)+" ") + warningStyle.Render(m.StackStatus)
	default:
		status += readyStyle.Render(m.StackStatus)
	}
	b.WriteString(status)
	b.WriteString("\n")

	if m.StackReason != "" && deploy.IsFailure(m.StackStatus) {
		fmt.Fprintf(b, "  %s\n", subtitleStyle.Render(m.StackReason))
	}
}

func renderProgressBar(b *strings.Builder, m Model) {
	progress := calculateProgress(m)
	barWidth := 40
	if m.Width > 0 && m.Width < 80 {
		barWidth = m.Width - 30
		if barWidth < 10 {
			barWidth = 10
		}
	}
	filled := int(float64(barWidth) * progress)
	if filled > barWidth {
		filled = barWidth
	}

	bar := progressBarFull.Render(strings.Repeat("█", filled)) +
		progressBarEmpty.Render(strings.Repeat("░", barWidth-filled))

	pct := int(progress * 100)
	eta := ""
	if m.EstimatedRemaining > 0 {
		eta = fmt.Sprintf(" ETA %s", formatDuration(m.EstimatedRemaining))
	}
	if m.PerformanceScale != 0 && m.PerformanceScale != 1.0 {
		eta += fmt.Sprintf("  speed x%.2f", m.PerformanceScale)
	}

	fmt.Fprintf(b, "  %s %d%%%s\n", bar, pct, eta)
}

func renderSteps(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Steps"))
	b.WriteString("\n")

	for _, step := range m.Steps {
		var icon string
		var style styleFunc
		switch {
		case step.Err != nil:
			icon = crossMark
			style = sf(failedStyle)
		case step.Done:
			icon = checkMark
			style = sf(readyStyle)
		case step.Active:
			icon = currentSpinner(m.SpinnerFrame)
			style = sf(activeStyle)
		default:
			icon = pending
			style = sf(dimStyle)
		}
		fmt.Fprintf(b, "    %s %s\n", style(icon), style(step.Name))
	}
}

func renderResources(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Resources"))
	b.WriteString("\n")

	for _, row := range m.Resources {
		icon, style := resourceIcon(row.Status, m.SpinnerFrame)

		detail := row.Status
		if row.EndedAt != nil {
			detail += " in " + formatDuration(row.EndedAt.Sub(row.StartedAt))
		} else if expected, ok := benchmarks.ExpectedDuration(row.Type); ok {
			detail += " ~" + formatDuration(expected)
		}

		fmt.Fprintf(b, "    %s %-22s %-28s %s\n",
			style(icon), style(row.LogicalID), dimStyle.Render(row.Type), style(detail))
		if row.PhysicalID != "" && row.Type == recipe.TypeInstance {
			fmt.Fprintf(b, "         %s\n", dimStyle.Render(row.PhysicalID))
		}
	}
}

func renderOutputs(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Outputs"))
	b.WriteString("\n")

	names := make([]string, 0, len(m.Outputs))
	for name := range m.Outputs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(b, "    %-18s %s\n", name, readyStyle.Render(m.Outputs[name].Value))
	}
}

func renderFailures(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Recent Failures"))
	b.WriteString("\n")

	for _, f := range m.Failures {
		fmt.Fprintf(b, "    %s %s\n", failedStyle.Render(crossMark), dimStyle.Render(f))
	}
}

func renderFooter(b *strings.Builder, m Model) {
	elapsed := formatDuration(time.Since(m.StartTime))
	parts := []string{fmt.Sprintf("elapsed: %s", elapsed)}
	if m.LastUpdate != "" {
		parts = append(parts, fmt.Sprintf("last event: %s", m.LastUpdate))
	}
	pulse := ""
	if !m.Done && m.Err == nil && m.Mode != "status" {
		pulse = "  |  " + currentSpinner(m.SpinnerFrame) + " polling"
	}
	b.WriteString(footerStyle.Render(fmt.Sprintf("  %s%s  |  q: quit", strings.Join(parts, "  |  "), pulse)))
	b.WriteString("\n")
}

// Helper functions

func resourceIcon(status string, frame int) (string, styleFunc) {
	switch {
	case deploy.IsFailure(status):
		return crossMark, sf(failedStyle)
	case deploy.IsInProgress(status):
		return currentSpinner(frame), sf(activeStyle)
	case strings.HasSuffix(status, "_COMPLETE"):
		return checkMark, sf(readyStyle)
	case strings.HasSuffix(status, "_SKIPPED"):
		return warnMark, sf(warningStyle)
	default:
		return pending, sf(dimStyle)
	}
}

func currentSpinner(frame int) string {
	if len(spinnerFrames) == 0 {
		return spinner
	}
	if frame < 0 {
		frame = -frame
	}
	return spinnerFrames[frame%len(spinnerFrames)]
}

// calculateProgress weights CLI steps at 20% and resource creation at 80%.
func calculateProgress(m Model) float64 {
	if m.Done {
		return 1.0
	}

	var progress float64
	if len(m.Steps) > 0 {
		done := 0
		for _, s := range m.Steps {
			if s.Done {
				done++
			}
		}
		progress = float64(done) / float64(len(m.Steps)) * 0.2
	}

	total := len(benchmarks.ResourceOrder)
	if len(m.Resources) > total {
		total = len(m.Resources)
	}
	finished := 0
	for _, row := range m.Resources {
		if row.EndedAt != nil {
			finished++
		}
	}
	progress += float64(finished) / float64(total) * 0.8

	if progress > 1.0 {
		progress = 1.0
	}
	return progress
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
