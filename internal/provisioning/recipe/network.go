package recipe

import (
	"errors"
	"fmt"

	"github.com/imamik/ec2stack/internal/provisioning"
	"github.com/imamik/ec2stack/internal/util/naming"
)

// ErrNoPublicSubnet is returned when the default VPC has no subnet routed
// to an internet gateway, so the instance could not get a public IP.
var ErrNoPublicSubnet = errors.New("default VPC has no public subnet")

type networkPhase struct{ r *Recipe }

func (p *networkPhase) Name() string { return PhaseNetwork }

// Provision looks up the default VPC. Lookup errors are returned as they
// come: there is no fallback network.
func (p *networkPhase) Provision(ctx *provisioning.Context) error {
	vpc, cached, err := ctx.Lookup.DefaultVPC(ctx, ctx.Env.Account, ctx.Env.Region)
	if err != nil {
		return err
	}
	provisioning.LogLookup(ctx.Observer, PhaseNetwork, naming.VPCContextKey(ctx.Env.Account, ctx.Env.Region), cached)

	if len(vpc.PublicSubnetIDs) == 0 {
		return fmt.Errorf("%w: %s", ErrNoPublicSubnet, vpc.ID)
	}

	ctx.State.VPC = vpc
	ctx.State.VPCFromCache = cached
	p.r.Network = networkFromVPC(vpc)
	ctx.Observer.Printf("[%s] using %s (%d public subnets)", PhaseNetwork, vpc.ID, len(vpc.PublicSubnetIDs))
	return nil
}
