package aws

import (
	"context"
	"time"
)

// MockClient is a mock implementation of Manager.
type MockClient struct {
	DescribeDefaultVPCFunc    func(ctx context.Context) (*VPCInfo, error)
	CallerAccountFunc         func(ctx context.Context) (string, error)
	RegionValue               string
	ResolveImageParameterFunc func(ctx context.Context, name string) (string, error)

	// Stacks
	DescribeStackFunc      func(ctx context.Context, name string) (*StackStatus, error)
	CreateStackFunc        func(ctx context.Context, in StackInput) (string, error)
	UpdateStackFunc        func(ctx context.Context, in StackInput) (bool, error)
	DeleteStackFunc        func(ctx context.Context, name string) error
	StackEventsFunc        func(ctx context.Context, name string, since time.Time) ([]StackEvent, error)
	PhysicalResourceIDFunc func(ctx context.Context, stackName, logicalID string) (string, error)

	ConsoleOutputFunc func(ctx context.Context, instanceID string) (string, error)
	PutTemplateFunc   func(ctx context.Context, bucket, key string, body []byte) (string, error)
}

var _ Manager = (*MockClient)(nil)

// DescribeDefaultVPC mocks the default VPC lookup.
func (m *MockClient) DescribeDefaultVPC(ctx context.Context) (*VPCInfo, error) {
	if m.DescribeDefaultVPCFunc != nil {
		return m.DescribeDefaultVPCFunc(ctx)
	}
	return &VPCInfo{
		ID:                "vpc-mock",
		CIDR:              "172.31.0.0/16",
		AvailabilityZones: []string{"us-east-1a", "us-east-1b"},
		PublicSubnetIDs:   []string{"subnet-mock-a", "subnet-mock-b"},
	}, nil
}

// CallerAccount mocks the STS caller identity.
func (m *MockClient) CallerAccount(ctx context.Context) (string, error) {
	if m.CallerAccountFunc != nil {
		return m.CallerAccountFunc(ctx)
	}
	return "111111111111", nil
}

// Region returns RegionValue, or us-east-1.
func (m *MockClient) Region() string {
	if m.RegionValue != "" {
		return m.RegionValue
	}
	return "us-east-1"
}

// ResolveImageParameter mocks reading an SSM parameter.
func (m *MockClient) ResolveImageParameter(ctx context.Context, name string) (string, error) {
	if m.ResolveImageParameterFunc != nil {
		return m.ResolveImageParameterFunc(ctx, name)
	}
	return "ami-0123456789abcdef0", nil
}

// DescribeStack mocks stack lookup. The default is a missing stack.
func (m *MockClient) DescribeStack(ctx context.Context, name string) (*StackStatus, error) {
	if m.DescribeStackFunc != nil {
		return m.DescribeStackFunc(ctx, name)
	}
	return nil, nil
}

// CreateStack mocks stack creation.
func (m *MockClient) CreateStack(ctx context.Context, in StackInput) (string, error) {
	if m.CreateStackFunc != nil {
		return m.CreateStackFunc(ctx, in)
	}
	return "arn:aws:cloudformation:us-east-1:111111111111:stack/" + in.Name + "/mock", nil
}

// UpdateStack mocks stack update.
func (m *MockClient) UpdateStack(ctx context.Context, in StackInput) (bool, error) {
	if m.UpdateStackFunc != nil {
		return m.UpdateStackFunc(ctx, in)
	}
	return true, nil
}

// DeleteStack mocks stack deletion.
func (m *MockClient) DeleteStack(ctx context.Context, name string) error {
	if m.DeleteStackFunc != nil {
		return m.DeleteStackFunc(ctx, name)
	}
	return nil
}

// StackEvents mocks the stack event log.
func (m *MockClient) StackEvents(ctx context.Context, name string, since time.Time) ([]StackEvent, error) {
	if m.StackEventsFunc != nil {
		return m.StackEventsFunc(ctx, name, since)
	}
	return nil, nil
}

// PhysicalResourceID mocks stack resource lookup.
func (m *MockClient) PhysicalResourceID(ctx context.Context, stackName, logicalID string) (string, error) {
	if m.PhysicalResourceIDFunc != nil {
		return m.PhysicalResourceIDFunc(ctx, stackName, logicalID)
	}
	return "i-0123456789abcdef0", nil
}

// ConsoleOutput mocks reading console output.
func (m *MockClient) ConsoleOutput(ctx context.Context, instanceID string) (string, error) {
	if m.ConsoleOutputFunc != nil {
		return m.ConsoleOutputFunc(ctx, instanceID)
	}
	return "", nil
}

// PutTemplate mocks template upload.
func (m *MockClient) PutTemplate(ctx context.Context, bucket, key string, body []byte) (string, error) {
	if m.PutTemplateFunc != nil {
		return m.PutTemplateFunc(ctx, bucket, key, body)
	}
	return TemplateURL(bucket, m.Region(), key), nil
}
