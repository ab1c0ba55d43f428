package recipe

import (
	"errors"

	"github.com/imamik/ec2stack/internal/bootstrap"
	"github.com/imamik/ec2stack/internal/provisioning"
	"github.com/imamik/ec2stack/internal/stack"
	"github.com/imamik/ec2stack/internal/util/naming"
)

type bootScriptPhase struct{ r *Recipe }

func (p *bootScriptPhase) Name() string { return PhaseBootScript }

// Provision builds the first-boot script.
func (p *bootScriptPhase) Provision(ctx *provisioning.Context) error {
	p.r.UserData = bootstrap.FirstBootScript()
	ctx.Observer.Printf("[%s] %d commands", PhaseBootScript, len(p.r.UserData.Commands()))
	return nil
}

type machineImagePhase struct{ r *Recipe }

func (p *machineImagePhase) Name() string { return PhaseMachineImage }

// Provision declares the image as an SSM-backed parameter, so the AMI is
// resolved by CloudFormation in the target region at deploy time.
func (p *machineImagePhase) Provision(ctx *provisioning.Context) error {
	if p.r.UserData == nil {
		return errors.New("boot script must be built before the machine image")
	}

	p.r.Image = &MachineImage{
		ParameterPath: ImageParameterPath,
		OS:            p.r.UserData.OS(),
		UserData:      p.r.UserData,
	}

	return ctx.Stack().AddParameter(&stack.Parameter{
		LogicalID:   naming.ImageParameter,
		Type:        ImageParameterType,
		Default:     ImageParameterPath,
		Description: "Ubuntu 20.04 image for the web VM",
	})
}
