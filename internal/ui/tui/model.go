package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/ec2stack/internal/deploy"
	awsplatform "github.com/imamik/ec2stack/internal/platform/aws"
	"github.com/imamik/ec2stack/internal/ui/benchmarks"
)

const stackResourceType = "AWS::CloudFormation::Stack"

// Step keys sent by the CLI handlers.
const (
	StepSynth     = "synth"
	StepSubmit    = "submit"
	StepResources = "resources"
	StepOutput    = "output"
	StepDelete    = "delete"
)

// maxFailures bounds the failure reasons kept for display.
const maxFailures = 5

// Step represents a CLI step for display.
type Step struct {
	Name   string
	Key    string
	Done   bool
	Active bool
	Err    error
}

// ResourceRow is the display state of one stack resource, built from its
// events.
type ResourceRow struct {
	LogicalID  string
	PhysicalID string
	Type       string
	Status     string
	Reason     string
	StartedAt  time.Time
	EndedAt    *time.Time
}

// Model is the Bubble Tea model for the TUI dashboard.
type Model struct {
	// Stack info
	StackName string
	Region    string

	// CLI steps (deploy/destroy commands)
	Steps     []Step
	StepsDone bool

	// Event-sourced state
	StackStatus string
	StackReason string
	Resources   []ResourceRow
	Failures    []string
	Outputs     map[string]awsplatform.StackOutput
	LastUpdate  string

	Result *deploy.Result

	// ETA
	EstimatedRemaining time.Duration
	PerformanceScale   float64
	StartTime          time.Time

	// Animation
	SpinnerFrame int

	// UI state
	Width  int
	Height int
	Err    error
	Done   bool

	// Mode
	Mode string // "deploy", "destroy", "status"
}

// NewDeployModel creates a model for the deploy command TUI.
func NewDeployModel(stackName, region string) Model {
	return Model{
		StackName:        stackName,
		Region:           region,
		StartTime:        time.Now(),
		Mode:             "deploy",
		PerformanceScale: 1.0,
		Steps: []Step{
			{Name: "Synthesize template", Key: StepSynth},
			{Name: "Submit stack", Key: StepSubmit},
			{Name: "Create resources", Key: StepResources},
			{Name: "Verify webVmUrl", Key: StepOutput},
		},
	}
}

// NewDestroyModel creates a model for the destroy command TUI.
func NewDestroyModel(stackName, region string) Model {
	return Model{
		StackName:        stackName,
		Region:           region,
		StartTime:        time.Now(),
		Mode:             "destroy",
		PerformanceScale: 1.0,
		Steps: []Step{
			{Name: "Delete stack", Key: StepDelete},
			{Name: "Remove resources", Key: StepResources},
		},
	}
}

// NewStatusModel creates a model for the status command TUI.
func NewStatusModel(stackName string) Model {
	return Model{
		StackName:        stackName,
		StartTime:        time.Now(),
		Mode:             "status",
		PerformanceScale: 1.0,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case StepMsg:
		m.updateStep(msg)
		if msg.Err != nil {
			m.Err = msg.Err
			return m, tea.Quit
		}

	case StackEventMsg:
		m.applyEvent(msg.Event)

	case StackStatusMsg:
		if msg.NotFound {
			m.Err = fmt.Errorf("stack %s not found. Run 'ec2stack deploy' to create it", m.StackName)
			return m, tea.Quit
		}
		if msg.FetchErr != nil {
			m.Err = fmt.Errorf("failed to describe stack: %w", msg.FetchErr)
			return m, tea.Quit
		}
		m.updateStackStatus(msg.Status)

	case TickMsg:
		m.SpinnerFrame++
		m.updateETA()
		return m, tickCmd()

	case ErrMsg:
		m.Err = msg.Err
		return m, tea.Quit

	case DoneMsg:
		m.Done = true
		m.Result = msg.Result
		if msg.Result != nil {
			m.Outputs = msg.Result.Outputs
			m.StackStatus = msg.Result.Status
		}
		for i := range m.Steps {
			m.Steps[i].Done = true
			m.Steps[i].Active = false
		}
		m.StepsDone = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) updateStep(msg StepMsg) {
	idx := -1
	for i, step := range m.Steps {
		if step.Key == msg.Step {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	// Mark previous steps as done
	for i := 0; i < idx; i++ {
		m.Steps[i].Done = true
		m.Steps[i].Active = false
	}

	if msg.Done {
		m.Steps[idx].Done = true
		m.Steps[idx].Active = false
		if idx == len(m.Steps)-1 {
			m.StepsDone = true
		}
	} else {
		m.Steps[idx].Active = true
	}

	if msg.Err != nil {
		m.Steps[idx].Err = msg.Err
	}
}

func (m *Model) applyEvent(e awsplatform.StackEvent) {
	m.LastUpdate = e.Timestamp.Format(time.TimeOnly)

	if e.ResourceType == stackResourceType && e.LogicalID == m.StackName {
		m.StackStatus = e.Status
		m.StackReason = e.Reason
		return
	}

	idx := -1
	for i := range m.Resources {
		if m.Resources[i].LogicalID == e.LogicalID {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.Resources = append(m.Resources, ResourceRow{
			LogicalID: e.LogicalID,
			Type:      e.ResourceType,
			StartedAt: e.Timestamp,
		})
		idx = len(m.Resources) - 1
	}

	row := &m.Resources[idx]
	row.Status = e.Status
	row.Reason = e.Reason
	if e.PhysicalID != "" {
		row.PhysicalID = e.PhysicalID
	}

	switch {
	case deploy.IsInProgress(e.Status) && row.EndedAt != nil:
		// a finished resource is being changed again
		row.StartedAt = e.Timestamp
		row.EndedAt = nil
	case !deploy.IsInProgress(e.Status) && row.EndedAt == nil:
		ended := e.Timestamp
		row.EndedAt = &ended
	}

	if deploy.IsFailure(e.Status) && e.Reason != "" {
		m.Failures = append(m.Failures, fmt.Sprintf("%s: %s", e.LogicalID, e.Reason))
		if len(m.Failures) > maxFailures {
			m.Failures = m.Failures[len(m.Failures)-maxFailures:]
		}
	}
}

func (m *Model) updateStackStatus(status *awsplatform.StackStatus) {
	if status == nil {
		return
	}
	m.StackStatus = status.Status
	m.StackReason = status.Reason
	m.Outputs = status.Outputs
	m.LastUpdate = time.Now().Format(time.TimeOnly)
}

func (m *Model) updateETA() {
	if m.Mode != "deploy" || m.Done {
		m.EstimatedRemaining = 0
		return
	}
	if len(m.Resources) == 0 {
		m.EstimatedRemaining = benchmarks.TotalEstimate()
		return
	}

	history := make([]benchmarks.Record, 0, len(m.Resources))
	current := ""
	var elapsed time.Duration
	for _, row := range m.Resources {
		history = append(history, benchmarks.Record{
			ResourceType: row.Type,
			StartedAt:    row.StartedAt,
			EndedAt:      row.EndedAt,
		})
		if current == "" && row.EndedAt == nil {
			current = row.Type
			elapsed = time.Since(row.StartedAt)
		}
	}

	m.PerformanceScale = benchmarks.PerformanceScale(current, elapsed, history)
	m.EstimatedRemaining = benchmarks.EstimateRemainingWithScale(current, elapsed, history, m.PerformanceScale)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}
