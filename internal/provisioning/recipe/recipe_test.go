package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/ec2stack/internal/config"
	"github.com/imamik/ec2stack/internal/lookup"
	awsplatform "github.com/imamik/ec2stack/internal/platform/aws"
	"github.com/imamik/ec2stack/internal/provisioning"
	"github.com/imamik/ec2stack/internal/stack"
	"github.com/imamik/ec2stack/internal/util/naming"
)

func newTestContext(t *testing.T, network *awsplatform.MockClient) *provisioning.Context {
	t.Helper()
	if network == nil {
		network = &awsplatform.MockClient{}
	}
	env := config.Environment{Account: "111111111111", Region: "us-east-1"}
	ctx := provisioning.NewContext(context.Background(), config.Default(), env, &lookup.Resolver{Network: network})
	ctx.Observer = provisioning.NewLogrObserver(logr.Discard())
	return ctx
}

func TestPhases_Order(t *testing.T) {
	t.Parallel()

	var names []string
	for _, p := range New().Phases() {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{
		PhaseNetwork, PhaseBootScript, PhaseMachineImage,
		PhaseTrafficPolicy, PhaseInstance, PhaseOutput,
	}, names)
}

func TestSynthesize(t *testing.T) {
	t.Parallel()
	ctx := newTestContext(t, nil)

	tmpl, err := Synthesize(ctx)
	require.NoError(t, err)

	t.Run("parameter", func(t *testing.T) {
		param, ok := tmpl.Parameters[naming.ImageParameter]
		require.True(t, ok)
		assert.Equal(t, ImageParameterType, param.Type)
		assert.Equal(t, ImageParameterPath, param.Default)
	})

	t.Run("security group", func(t *testing.T) {
		sg := tmpl.Resources[naming.SecurityGroup]
		assert.Equal(t, TypeSecurityGroup, sg.Type)
		assert.Equal(t, "vpc-mock", sg.Properties["VpcId"])

		ingress, ok := sg.Properties["SecurityGroupIngress"].([]any)
		require.True(t, ok)
		require.Len(t, ingress, 2)
		v4 := ingress[0].(map[string]any)
		v6 := ingress[1].(map[string]any)
		assert.Equal(t, "0.0.0.0/0", v4["CidrIp"])
		assert.Equal(t, "httpIpv4", v4["Description"])
		assert.Equal(t, "::/0", v6["CidrIpv6"])
		assert.Equal(t, "httpIpv6", v6["Description"])
		for _, rule := range []map[string]any{v4, v6} {
			assert.Equal(t, "tcp", rule["IpProtocol"])
			assert.Equal(t, 80, rule["FromPort"])
			assert.Equal(t, 80, rule["ToPort"])
		}

		egress := sg.Properties["SecurityGroupEgress"].([]any)
		require.Len(t, egress, 1)
		assert.Equal(t, "-1", egress[0].(map[string]any)["IpProtocol"])
		assert.Equal(t, "0.0.0.0/0", egress[0].(map[string]any)["CidrIp"])
	})

	t.Run("instance", func(t *testing.T) {
		vm := tmpl.Resources[naming.Instance]
		assert.Equal(t, TypeInstance, vm.Type)
		assert.Equal(t, "t2.micro", vm.Properties["InstanceType"])
		assert.Equal(t, "subnet-mock-a", vm.Properties["SubnetId"])
		assert.Equal(t, stack.Ref(naming.ImageParameter), vm.Properties["ImageId"])
		assert.Equal(t, []any{stack.GetAtt(naming.SecurityGroup, "GroupId")}, vm.Properties["SecurityGroupIds"])
		assert.Contains(t, vm.Metadata, "AWS::CloudFormation::Init")
	})

	t.Run("output", func(t *testing.T) {
		require.Len(t, tmpl.Outputs, 1)
		out := tmpl.Outputs[naming.WebURLOutput]
		assert.Equal(t, OutputDescription, out.Description)
		require.NotNil(t, out.Export)
		assert.Equal(t, "webVmUrl", out.Export.Name)
		assert.Equal(t, WebURLValue(naming.Instance), out.Value)
	})

	t.Run("resource counts", func(t *testing.T) {
		s := ctx.Stack()
		assert.Len(t, s.ResourcesOfType(TypeSecurityGroup), 1)
		assert.Len(t, s.ResourcesOfType(TypeInstance), 1)
		assert.Len(t, s.Outputs(), 1)
	})
}

func TestSynthesize_UserData(t *testing.T) {
	t.Parallel()
	ctx := newTestContext(t, nil)

	tmpl, err := Synthesize(ctx)
	require.NoError(t, err)

	userData := tmpl.Resources[naming.Instance].Properties["UserData"].(map[string]any)
	script := userData["Fn::Base64"].(map[string]any)["Fn::Sub"].(string)

	lines := strings.Split(script, "\n")
	assert.Equal(t, "#!/bin/bash", lines[0])
	assert.Equal(t, "apt-get update -y", lines[1])
	assert.Contains(t, script, `until git clone https://github.com/aws-quickstart/quickstart-linux-utilities.git; do echo "Retrying"; done`)
	assert.Contains(t, script, `qs_update-os || { echo "qs_err: qs_update-os failed"; qs_err; }
qs_bootstrap_pip || { echo "qs_err: qs_bootstrap_pip failed"; qs_err; }
qs_aws-cfn-bootstrap || { echo "qs_err: qs_aws-cfn-bootstrap failed"; qs_err; }`)
	assert.Contains(t, script, "--region ${AWS::Region} --stack ${AWS::StackName} --resource myVm -c default")
}

func TestSynthesize_InstanceAfterSecurityGroup(t *testing.T) {
	t.Parallel()
	ctx := newTestContext(t, nil)

	_, err := Synthesize(ctx)
	require.NoError(t, err)

	ordered, err := ctx.Stack().Order()
	require.NoError(t, err)
	pos := map[string]int{}
	for i, r := range ordered {
		pos[r.LogicalID] = i
	}
	assert.Less(t, pos[naming.SecurityGroup], pos[naming.Instance])
	assert.Less(t, pos[naming.InstanceProfile], pos[naming.Instance])
	assert.Less(t, pos[naming.InstancePolicy], pos[naming.Instance])
}

func TestSynthesize_NoDefaultVPC(t *testing.T) {
	t.Parallel()
	ctx := newTestContext(t, &awsplatform.MockClient{
		DescribeDefaultVPCFunc: func(context.Context) (*awsplatform.VPCInfo, error) {
			return nil, awsplatform.ErrNoDefaultVPC
		},
	})

	_, err := Synthesize(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoDefaultVPC))
	assert.Empty(t, ctx.Stack().Resources(), "nothing is declared when the lookup fails")
}

func TestSynthesize_LookupErrorUnchanged(t *testing.T) {
	t.Parallel()
	denied := errors.New("UnauthorizedOperation: You are not authorized to perform this operation")
	ctx := newTestContext(t, &awsplatform.MockClient{
		DescribeDefaultVPCFunc: func(context.Context) (*awsplatform.VPCInfo, error) {
			return nil, denied
		},
	})

	_, err := Synthesize(ctx)
	require.Error(t, err)
	assert.Equal(t, "network phase failed: "+denied.Error(), err.Error())
	assert.ErrorIs(t, err, denied)
}

func TestSynthesize_MalformedAccountReachesLookup(t *testing.T) {
	t.Parallel()
	lookupCalled := false
	rejected := errors.New("AuthFailure: account acct-dev does not exist")
	network := &awsplatform.MockClient{
		DescribeDefaultVPCFunc: func(context.Context) (*awsplatform.VPCInfo, error) {
			lookupCalled = true
			return nil, rejected
		},
	}
	env := config.Environment{Account: "acct-dev", Region: "us-east-1"}
	ctx := provisioning.NewContext(context.Background(), config.Default(), env, &lookup.Resolver{Network: network})
	ctx.Observer = provisioning.NewLogrObserver(logr.Discard())

	_, err := Synthesize(ctx)
	require.Error(t, err)
	assert.True(t, lookupCalled, "the account is judged by AWS, not locally")
	assert.ErrorIs(t, err, rejected)
	assert.Equal(t, "network phase failed: "+rejected.Error(), err.Error())
}

func TestSynthesize_NoPublicSubnet(t *testing.T) {
	t.Parallel()
	ctx := newTestContext(t, &awsplatform.MockClient{
		DescribeDefaultVPCFunc: func(context.Context) (*awsplatform.VPCInfo, error) {
			return &awsplatform.VPCInfo{ID: "vpc-1", PrivateSubnetIDs: []string{"subnet-1"}}, nil
		},
	})

	_, err := Synthesize(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoPublicSubnet)
}

func TestSynthesize_UserTags(t *testing.T) {
	t.Parallel()
	ctx := newTestContext(t, nil)
	ctx.Config.Tags = map[string]string{"team": "web", "ec2stack:stack": "ignored"}

	tmpl, err := Synthesize(ctx)
	require.NoError(t, err)

	data, err := json.Marshal(tmpl.Resources[naming.Instance].Properties["Tags"])
	require.NoError(t, err)
	var got []map[string]string
	require.NoError(t, json.Unmarshal(data, &got))

	values := map[string]string{}
	for _, tag := range got {
		values[tag["Key"]] = tag["Value"]
	}
	assert.Equal(t, "web", values["team"])
	assert.Equal(t, config.DefaultStackName, values["ec2stack:stack"])
	assert.Equal(t, config.DefaultStackName+"/myVm", values["Name"])
}

func TestPhases_RequirePredecessors(t *testing.T) {
	t.Parallel()
	ctx := newTestContext(t, nil)
	r := New()

	for _, p := range r.Phases()[2:] {
		err := p.Provision(ctx)
		assert.Error(t, err, p.Name())
	}
}

func TestValidateWebURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url   string
		valid bool
	}{
		{url: "http://203.0.113.10/", valid: true},
		{url: "http://ec2-203-0-113-10.compute-1.amazonaws.com/", valid: true},
		{url: "http:///", valid: false},
		{url: "http://203.0.113.10", valid: false},
		{url: "https://203.0.113.10/", valid: false},
		{url: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()
			err := ValidateWebURL(tt.url)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidWebURL)
			}
		})
	}
}
