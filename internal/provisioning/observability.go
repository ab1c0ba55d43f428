package provisioning

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/go-logr/logr"
)

// Observer defines the interface for structured observability during provisioning.
type Observer interface {
	Logger

	// Event emits a structured event
	Event(event Event)

	// Progress reports progress for a phase
	Progress(phase string, current, total int)

	// WithFields returns a new Observer with additional context fields
	WithFields(fields map[string]string) Observer
}

// Event represents a structured provisioning event.
type Event struct {
	Type      EventType
	Phase     string // e.g. "network", "instance"
	Message   string
	Resource  string // logical ID if applicable
	Timestamp time.Time
	Fields    map[string]string
}

// EventType represents the type of provisioning event.
type EventType string

const (
	EventPhaseStarted   EventType = "phase.started"
	EventPhaseCompleted EventType = "phase.completed"
	EventPhaseFailed    EventType = "phase.failed"

	// EventResourceDeclared indicates a resource was added to the stack.
	EventResourceDeclared EventType = "resource.declared"
	// EventOutputDeclared indicates an output was added to the stack.
	EventOutputDeclared EventType = "output.declared"

	// EventLookup indicates an environment lookup was answered.
	EventLookup EventType = "lookup"

	// EventStack carries a CloudFormation stack event.
	EventStack EventType = "stack.event"

	EventValidationWarning EventType = "validation.warning"
	EventValidationError   EventType = "validation.error"

	EventProgress EventType = "progress"
)

// mergeFields returns event fields with context fields filled in where the
// event does not set them.
func mergeFields(event, context map[string]string) map[string]string {
	merged := make(map[string]string, len(event)+len(context))
	for k, v := range context {
		merged[k] = v
	}
	for k, v := range event {
		merged[k] = v
	}
	return merged
}

func copyFields(base, extra map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// ConsoleObserver implements Observer using standard log package.
type ConsoleObserver struct {
	contextFields map[string]string
}

// NewConsoleObserver creates a new console-based observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{contextFields: make(map[string]string)}
}

// Printf implements Logger.
func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// Event implements Observer.
func (o *ConsoleObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	event.Fields = mergeFields(event.Fields, o.contextFields)
	log.Print(FormatEvent(event))
}

// Progress implements Observer.
func (o *ConsoleObserver) Progress(phase string, current, total int) {
	if total == 0 {
		log.Printf("[%s] Progress: %d/%d", phase, current, total)
		return
	}
	log.Printf("[%s] Progress: %d/%d (%d%%)", phase, current, total, (current*100)/total)
}

// WithFields implements Observer.
func (o *ConsoleObserver) WithFields(fields map[string]string) Observer {
	return &ConsoleObserver{contextFields: copyFields(o.contextFields, fields)}
}

// FormatEvent renders an event as a single line:
// type [phase] resource=id message (k=v, ...), with fields sorted by key.
func FormatEvent(event Event) string {
	parts := []string{string(event.Type)}
	if event.Phase != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Phase))
	}
	if event.Resource != "" {
		parts = append(parts, "resource="+event.Resource)
	}
	if event.Message != "" {
		parts = append(parts, event.Message)
	}
	if len(event.Fields) > 0 {
		keys := make([]string, 0, len(event.Fields))
		for k := range event.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		kv := make([]string, 0, len(keys))
		for _, k := range keys {
			kv = append(kv, k+"="+event.Fields[k])
		}
		parts = append(parts, "("+strings.Join(kv, ", ")+")")
	}
	return strings.Join(parts, " ")
}

// LogrObserver implements Observer on a logr.Logger, so the same events
// can be emitted as JSON (funcr.NewJSON) or through any logr sink.
type LogrObserver struct {
	logger logr.Logger
	fields map[string]string
}

// NewLogrObserver creates an observer writing to logger.
func NewLogrObserver(logger logr.Logger) *LogrObserver {
	return &LogrObserver{logger: logger, fields: make(map[string]string)}
}

// Printf implements Logger.
func (o *LogrObserver) Printf(format string, v ...interface{}) {
	o.logger.Info(fmt.Sprintf(format, v...))
}

// Event implements Observer. Failures are logged as errors.
func (o *LogrObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	fields := mergeFields(event.Fields, o.fields)

	kv := []any{"type", string(event.Type)}
	if event.Phase != "" {
		kv = append(kv, "phase", event.Phase)
	}
	if event.Resource != "" {
		kv = append(kv, "resource", event.Resource)
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		kv = append(kv, k, fields[k])
	}

	switch event.Type {
	case EventPhaseFailed, EventValidationError:
		o.logger.Error(nil, event.Message, kv...)
	default:
		o.logger.Info(event.Message, kv...)
	}
}

// Progress implements Observer.
func (o *LogrObserver) Progress(phase string, current, total int) {
	o.logger.V(1).Info("progress", "phase", phase, "current", current, "total", total)
}

// WithFields implements Observer.
func (o *LogrObserver) WithFields(fields map[string]string) Observer {
	return &LogrObserver{logger: o.logger, fields: copyFields(o.fields, fields)}
}

// Helper functions for common events

// LogPhaseStart logs a phase start event.
func LogPhaseStart(observer Observer, phase string) {
	observer.Event(Event{Type: EventPhaseStarted, Phase: phase, Message: "starting"})
}

// LogPhaseComplete logs a phase completion event.
func LogPhaseComplete(observer Observer, phase string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventPhaseCompleted,
		Phase:   phase,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogPhaseFailed logs a phase failure event.
func LogPhaseFailed(observer Observer, phase string, err error) {
	observer.Event(Event{
		Type:    EventPhaseFailed,
		Phase:   phase,
		Message: fmt.Sprintf("failed: %v", err),
	})
}

// LogResourceDeclared logs a resource added to the stack.
func LogResourceDeclared(observer Observer, phase, resourceType, logicalID string) {
	observer.Event(Event{
		Type:     EventResourceDeclared,
		Phase:    phase,
		Resource: logicalID,
		Message:  fmt.Sprintf("declared %s", resourceType),
		Fields:   map[string]string{"type": resourceType},
	})
}

// LogOutputDeclared logs an output added to the stack.
func LogOutputDeclared(observer Observer, phase, name, exportName string) {
	fields := map[string]string{}
	if exportName != "" {
		fields["export"] = exportName
	}
	observer.Event(Event{
		Type:     EventOutputDeclared,
		Phase:    phase,
		Resource: name,
		Message:  "declared output",
		Fields:   fields,
	})
}

// LogLookup logs how an environment lookup was answered.
func LogLookup(observer Observer, phase, key string, cached bool) {
	source := "live"
	if cached {
		source = "context"
	}
	observer.Event(Event{
		Type:    EventLookup,
		Phase:   phase,
		Message: key,
		Fields:  map[string]string{"source": source},
	})
}
