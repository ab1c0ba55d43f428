package recipe

import (
	"fmt"

	"github.com/imamik/ec2stack/internal/bootstrap"
	"github.com/imamik/ec2stack/internal/provisioning"
	"github.com/imamik/ec2stack/internal/stack"
)

// Phase names, in execution order.
const (
	PhaseNetwork       = "network"
	PhaseBootScript    = "boot-script"
	PhaseMachineImage  = "machine-image"
	PhaseTrafficPolicy = "traffic-policy"
	PhaseInstance      = "instance"
	PhaseOutput        = "output"
)

// Recipe carries the values phases hand to each other.
type Recipe struct {
	Network  *NetworkContext
	UserData *bootstrap.UserData
	Image    *MachineImage
	Init     *bootstrap.Init

	// Logical IDs of declared resources, for later phases to reference.
	SecurityGroupID string
	InstanceID      string
}

// New returns an empty recipe.
func New() *Recipe {
	return &Recipe{}
}

// Phases returns the recipe steps in their required order.
func (r *Recipe) Phases() []provisioning.Phase {
	return []provisioning.Phase{
		&networkPhase{r},
		&bootScriptPhase{r},
		&machineImagePhase{r},
		&trafficPolicyPhase{r},
		&instancePhase{r},
		&outputPhase{r},
	}
}

// Synthesize validates the context, runs every recipe phase, and renders
// the resulting template.
func Synthesize(ctx *provisioning.Context) (*stack.Template, error) {
	r := New()
	phases := append([]provisioning.Phase{provisioning.NewValidationPhase()}, r.Phases()...)
	if err := provisioning.RunPhases(ctx, phases); err != nil {
		return nil, err
	}

	tmpl, err := ctx.Stack().Template()
	if err != nil {
		return nil, fmt.Errorf("failed to render template: %w", err)
	}
	return tmpl, nil
}

// declare adds a resource to the stack and reports it.
func declare(ctx *provisioning.Context, phase string, res *stack.Resource) error {
	if err := ctx.Stack().AddResource(res); err != nil {
		return err
	}
	ctx.State.RecordDeclared(phase, res.LogicalID)
	provisioning.LogResourceDeclared(ctx.Observer, phase, res.Type, res.LogicalID)
	return nil
}
