package handlers

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"

	"github.com/imamik/ec2stack/internal/deploy"
	awsplatform "github.com/imamik/ec2stack/internal/platform/aws"
	"github.com/imamik/ec2stack/internal/provisioning"
)

// Log formats accepted by --log-format.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

func newObserver(g Globals, quiet bool) (provisioning.Observer, error) {
	if quiet {
		return provisioning.NewLogrObserver(logr.Discard()), nil
	}

	switch g.LogFormat {
	case "", LogFormatText:
		return provisioning.NewConsoleObserver(), nil
	case LogFormatJSON:
		logger := funcr.NewJSON(func(obj string) {
			fmt.Fprintln(logOutput, obj)
		}, funcr.Options{LogTimestamp: true, Verbosity: g.Verbosity})
		return provisioning.NewLogrObserver(logger.WithName("ec2stack")), nil
	default:
		return nil, fmt.Errorf("invalid log format %q: must be %q or %q", g.LogFormat, LogFormatText, LogFormatJSON)
	}
}

// stackEventLogger reports stack events through observer.
func stackEventLogger(observer provisioning.Observer) deploy.EventHandler {
	return func(e awsplatform.StackEvent) {
		fields := map[string]string{
			"status": e.Status,
			"type":   e.ResourceType,
		}
		if e.PhysicalID != "" {
			fields["physical_id"] = e.PhysicalID
		}
		if e.Reason != "" {
			fields["reason"] = e.Reason
		}
		observer.Event(provisioning.Event{
			Type:      provisioning.EventStack,
			Resource:  e.LogicalID,
			Message:   e.Status,
			Timestamp: e.Timestamp,
			Fields:    fields,
		})
	}
}
