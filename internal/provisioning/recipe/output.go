package recipe

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/imamik/ec2stack/internal/provisioning"
	"github.com/imamik/ec2stack/internal/stack"
	"github.com/imamik/ec2stack/internal/util/naming"
)

// ErrInvalidWebURL is returned when a deployed webVmUrl is not of the form
// http://<address>/.
var ErrInvalidWebURL = errors.New("invalid web URL")

var webURLRegex = regexp.MustCompile(`^http://\S+/$`)

type outputPhase struct{ r *Recipe }

func (p *outputPhase) Name() string { return PhaseOutput }

// Provision declares the exported webVmUrl output.
func (p *outputPhase) Provision(ctx *provisioning.Context) error {
	if p.r.InstanceID == "" {
		return errors.New("instance must be declared before the output")
	}

	err := ctx.Stack().AddOutput(&stack.Output{
		LogicalID:   naming.WebURLOutput,
		Value:       WebURLValue(p.r.InstanceID),
		Description: OutputDescription,
		ExportName:  naming.WebURLExport,
	})
	if err != nil {
		return err
	}
	provisioning.LogOutputDeclared(ctx.Observer, PhaseOutput, naming.WebURLOutput, naming.WebURLExport)
	return nil
}

// WebURLValue is the output expression http://<PublicIp>/ of instance.
func WebURLValue(instance string) map[string]any {
	return stack.Join("", "http://", stack.GetAtt(instance, "PublicIp"), "/")
}

// ValidateWebURL checks a deployed webVmUrl value.
func ValidateWebURL(url string) error {
	if !webURLRegex.MatchString(url) {
		return fmt.Errorf("%w: %q", ErrInvalidWebURL, url)
	}
	return nil
}
