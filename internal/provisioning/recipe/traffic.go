package recipe

import (
	"errors"

	"github.com/imamik/ec2stack/internal/provisioning"
	"github.com/imamik/ec2stack/internal/stack"
	"github.com/imamik/ec2stack/internal/util/naming"
	"github.com/imamik/ec2stack/internal/util/tags"
)

type trafficPolicyPhase struct{ r *Recipe }

func (p *trafficPolicyPhase) Name() string { return PhaseTrafficPolicy }

// Provision declares the security group. Inbound traffic is limited to
// the HTTP rules; outbound is left open.
func (p *trafficPolicyPhase) Provision(ctx *provisioning.Context) error {
	if p.r.Network == nil {
		return errors.New("network must be resolved before the traffic policy")
	}

	rules := HTTPIngressRules()
	ingress := make([]any, 0, len(rules))
	for _, rule := range rules {
		ingress = append(ingress, rule.Property())
	}

	stackName := ctx.Stack().Name
	sg := &stack.Resource{
		LogicalID: naming.SecurityGroup,
		Type:      TypeSecurityGroup,
		Properties: map[string]any{
			"GroupDescription":     naming.ResourcePath(stackName, naming.SecurityGroup),
			"VpcId":                p.r.Network.VPCID,
			"SecurityGroupIngress": ingress,
			"SecurityGroupEgress":  []any{allowAllEgress()},
			"Tags": tags.NewBuilder(stackName).
				Merge(ctx.Config.Tags).
				WithName(naming.ResourcePath(stackName, naming.SecurityGroup)).
				List(),
		},
	}
	if err := declare(ctx, PhaseTrafficPolicy, sg); err != nil {
		return err
	}
	p.r.SecurityGroupID = sg.LogicalID

	for _, rule := range rules {
		ctx.Observer.Printf("[%s] allow %s (%s)", PhaseTrafficPolicy, rule, rule.Description)
	}
	return nil
}
