package aws

import (
	"context"
	"time"
)

// VPCInfo describes the default VPC of an account/region.
type VPCInfo struct {
	ID                string   `yaml:"vpcId"`
	CIDR              string   `yaml:"vpcCidrBlock"`
	AvailabilityZones []string `yaml:"availabilityZones"`
	PublicSubnetIDs   []string `yaml:"publicSubnetIds"`
	PrivateSubnetIDs  []string `yaml:"privateSubnetIds,omitempty"`
}

// StackInput carries everything needed to create or update a stack.
// Exactly one of TemplateBody and TemplateURL is set.
type StackInput struct {
	Name         string
	TemplateBody string
	TemplateURL  string
	Tags         map[string]string
}

// StackStatus is the current state of a stack.
type StackStatus struct {
	ID      string
	Name    string
	Status  string
	Reason  string
	Outputs map[string]StackOutput
}

// StackOutput is one stack output value.
type StackOutput struct {
	Value       string
	Description string
	ExportName  string
}

// StackEvent is one entry of the stack event log.
type StackEvent struct {
	ID           string
	LogicalID    string
	PhysicalID   string
	ResourceType string
	Status       string
	Reason       string
	Timestamp    time.Time
}

// NetworkLookup resolves the default VPC.
type NetworkLookup interface {
	// DescribeDefaultVPC returns the default VPC of the configured
	// region, or an error wrapping ErrNoDefaultVPC.
	DescribeDefaultVPC(ctx context.Context) (*VPCInfo, error)
}

// IdentityResolver resolves the account the credentials belong to.
type IdentityResolver interface {
	CallerAccount(ctx context.Context) (string, error)
	Region() string
}

// ParameterResolver reads SSM parameters.
type ParameterResolver interface {
	ResolveImageParameter(ctx context.Context, name string) (string, error)
}

// StackManager applies and inspects CloudFormation stacks.
type StackManager interface {
	// DescribeStack returns nil, nil when the stack does not exist.
	DescribeStack(ctx context.Context, name string) (*StackStatus, error)
	CreateStack(ctx context.Context, in StackInput) (string, error)
	// UpdateStack returns false, nil when there is nothing to update.
	UpdateStack(ctx context.Context, in StackInput) (bool, error)
	DeleteStack(ctx context.Context, name string) error
	// StackEvents returns events newer than since, oldest first.
	StackEvents(ctx context.Context, name string, since time.Time) ([]StackEvent, error)
	PhysicalResourceID(ctx context.Context, stackName, logicalID string) (string, error)
}

// ConsoleReader reads instance console output.
type ConsoleReader interface {
	ConsoleOutput(ctx context.Context, instanceID string) (string, error)
}

// ArtifactStore stores synthesized templates.
type ArtifactStore interface {
	// PutTemplate uploads body and returns the URL CloudFormation can
	// read it from.
	PutTemplate(ctx context.Context, bucket, key string, body []byte) (string, error)
}

// Manager combines all interfaces.
type Manager interface {
	NetworkLookup
	IdentityResolver
	ParameterResolver
	StackManager
	ConsoleReader
	ArtifactStore
}
