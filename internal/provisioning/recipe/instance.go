package recipe

import (
	"errors"

	"github.com/imamik/ec2stack/internal/bootstrap"
	"github.com/imamik/ec2stack/internal/provisioning"
	"github.com/imamik/ec2stack/internal/stack"
	"github.com/imamik/ec2stack/internal/util/naming"
	"github.com/imamik/ec2stack/internal/util/tags"
)

type instancePhase struct{ r *Recipe }

func (p *instancePhase) Name() string { return PhaseInstance }

// Provision declares the instance with its IAM role and profile. The role
// only lets cfn-init read the instance metadata from this stack.
func (p *instancePhase) Provision(ctx *provisioning.Context) error {
	switch {
	case p.r.Network == nil:
		return errors.New("network must be resolved before the instance")
	case p.r.Image == nil:
		return errors.New("machine image must be resolved before the instance")
	case p.r.SecurityGroupID == "":
		return errors.New("traffic policy must be declared before the instance")
	}

	stackName := ctx.Stack().Name
	instanceTags := tags.NewBuilder(stackName).
		Merge(ctx.Config.Tags).
		WithName(naming.ResourcePath(stackName, naming.Instance))

	role := &stack.Resource{
		LogicalID: naming.InstanceRole,
		Type:      TypeRole,
		Properties: map[string]any{
			"AssumeRolePolicyDocument": map[string]any{
				"Version": "2012-10-17",
				"Statement": []any{map[string]any{
					"Action":    "sts:AssumeRole",
					"Effect":    "Allow",
					"Principal": map[string]any{"Service": "ec2.amazonaws.com"},
				}},
			},
			"Tags": instanceTags.List(),
		},
	}

	policy := &stack.Resource{
		LogicalID: naming.InstancePolicy,
		Type:      TypePolicy,
		Properties: map[string]any{
			"PolicyName": naming.InstancePolicy,
			"PolicyDocument": map[string]any{
				"Version": "2012-10-17",
				"Statement": []any{map[string]any{
					"Action": []any{
						"cloudformation:DescribeStackResource",
						"cloudformation:SignalResource",
					},
					"Effect":   "Allow",
					"Resource": stack.Ref(stack.PseudoStackID),
				}},
			},
			"Roles": []any{stack.Ref(naming.InstanceRole)},
		},
	}

	profile := &stack.Resource{
		LogicalID: naming.InstanceProfile,
		Type:      TypeInstanceProfile,
		Properties: map[string]any{
			"Roles": []any{stack.Ref(naming.InstanceRole)},
		},
	}

	p.r.Init = bootstrap.WebServerInit()
	instance := &stack.Resource{
		LogicalID: naming.Instance,
		Type:      TypeInstance,
		Properties: map[string]any{
			"InstanceType":       InstanceType,
			"ImageId":            stack.Ref(naming.ImageParameter),
			"SubnetId":           p.r.Network.PublicSubnetIDs[0],
			"SecurityGroupIds":   []any{stack.GetAtt(p.r.SecurityGroupID, "GroupId")},
			"IamInstanceProfile": stack.Ref(naming.InstanceProfile),
			"UserData":           stack.Base64(stack.Sub(p.r.Image.UserData.RenderForSub(naming.Instance))),
			"Tags":               instanceTags.List(),
		},
		Metadata: map[string]any{
			"AWS::CloudFormation::Init": p.r.Init.Metadata(),
		},
		// The role must carry its policy before cfn-init runs on the instance.
		DependsOn: []string{naming.InstancePolicy, naming.InstanceRole},
	}

	for _, res := range []*stack.Resource{role, policy, profile, instance} {
		if err := declare(ctx, PhaseInstance, res); err != nil {
			return err
		}
	}
	p.r.InstanceID = instance.LogicalID
	return nil
}
