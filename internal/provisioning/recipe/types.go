package recipe

import (
	"fmt"

	"github.com/imamik/ec2stack/internal/bootstrap"
	awsplatform "github.com/imamik/ec2stack/internal/platform/aws"
)

// Fixed recipe values.
const (
	// ImageParameterPath is the SSM parameter Canonical publishes the
	// current Ubuntu 20.04 amd64 gp2 AMI under.
	ImageParameterPath = "/aws/service/canonical/ubuntu/server/focal/stable/current/amd64/hvm/ebs-gp2/ami-id"

	// ImageParameterType makes CloudFormation resolve the parameter to an
	// AMI ID at deploy time.
	ImageParameterType = "AWS::SSM::Parameter::Value<AWS::EC2::Image::Id>"

	InstanceType = "t2.micro"

	HTTPPort = 80

	OutputDescription = "The URL of my instance."
)

// CloudFormation resource types declared by the recipe.
const (
	TypeSecurityGroup   = "AWS::EC2::SecurityGroup"
	TypeInstance        = "AWS::EC2::Instance"
	TypeRole            = "AWS::IAM::Role"
	TypePolicy          = "AWS::IAM::Policy"
	TypeInstanceProfile = "AWS::IAM::InstanceProfile"
)

// ErrNoDefaultVPC is returned by the network phase when the target has no
// default VPC.
var ErrNoDefaultVPC = awsplatform.ErrNoDefaultVPC

// NetworkContext is the looked-up network the instance is placed in.
type NetworkContext struct {
	VPCID             string
	CIDR              string
	AvailabilityZones []string
	PublicSubnetIDs   []string
	IsDefault         bool
}

func networkFromVPC(v *awsplatform.VPCInfo) *NetworkContext {
	return &NetworkContext{
		VPCID:             v.ID,
		CIDR:              v.CIDR,
		AvailabilityZones: append([]string(nil), v.AvailabilityZones...),
		PublicSubnetIDs:   append([]string(nil), v.PublicSubnetIDs...),
		IsDefault:         true,
	}
}

// MachineImage references the instance image and the script it boots with.
type MachineImage struct {
	ParameterPath string
	OS            bootstrap.OSType
	UserData      *bootstrap.UserData
}

// IngressRule is one inbound security group rule. Exactly one of CIDRv4
// and CIDRv6 is set.
type IngressRule struct {
	Protocol    string
	FromPort    int
	ToPort      int
	CIDRv4      string
	CIDRv6      string
	Description string
}

// HTTPIngressRules returns the only inbound traffic the instance accepts:
// TCP/80 from anywhere, IPv4 and IPv6.
func HTTPIngressRules() []IngressRule {
	return []IngressRule{
		{Protocol: "tcp", FromPort: HTTPPort, ToPort: HTTPPort, CIDRv4: "0.0.0.0/0", Description: "httpIpv4"},
		{Protocol: "tcp", FromPort: HTTPPort, ToPort: HTTPPort, CIDRv6: "::/0", Description: "httpIpv6"},
	}
}

// Property renders the rule as a SecurityGroupIngress entry.
func (r IngressRule) Property() map[string]any {
	p := map[string]any{
		"IpProtocol":  r.Protocol,
		"FromPort":    r.FromPort,
		"ToPort":      r.ToPort,
		"Description": r.Description,
	}
	if r.CIDRv6 != "" {
		p["CidrIpv6"] = r.CIDRv6
	} else {
		p["CidrIp"] = r.CIDRv4
	}
	return p
}

func (r IngressRule) String() string {
	cidr := r.CIDRv4
	if r.CIDRv6 != "" {
		cidr = r.CIDRv6
	}
	return fmt.Sprintf("%s/%d-%d from %s", r.Protocol, r.FromPort, r.ToPort, cidr)
}

// allowAllEgress is the rule CloudFormation itself adds when a security
// group declares no egress.
func allowAllEgress() map[string]any {
	return map[string]any{
		"CidrIp":      "0.0.0.0/0",
		"Description": "Allow all outbound traffic by default",
		"IpProtocol":  "-1",
	}
}
