package aws

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/imamik/ec2stack/internal/config"
)

type fakeEC2 struct {
	vpcs        func(*ec2.DescribeVpcsInput) (*ec2.DescribeVpcsOutput, error)
	subnets     func(*ec2.DescribeSubnetsInput) (*ec2.DescribeSubnetsOutput, error)
	routeTables func(*ec2.DescribeRouteTablesInput) (*ec2.DescribeRouteTablesOutput, error)
	console     func(*ec2.GetConsoleOutputInput) (*ec2.GetConsoleOutputOutput, error)
}

func (f *fakeEC2) DescribeVpcs(_ context.Context, in *ec2.DescribeVpcsInput, _ ...func(*ec2.Options)) (*ec2.DescribeVpcsOutput, error) {
	return f.vpcs(in)
}

func (f *fakeEC2) DescribeSubnets(_ context.Context, in *ec2.DescribeSubnetsInput, _ ...func(*ec2.Options)) (*ec2.DescribeSubnetsOutput, error) {
	if f.subnets == nil {
		return &ec2.DescribeSubnetsOutput{}, nil
	}
	return f.subnets(in)
}

func (f *fakeEC2) DescribeRouteTables(_ context.Context, in *ec2.DescribeRouteTablesInput, _ ...func(*ec2.Options)) (*ec2.DescribeRouteTablesOutput, error) {
	if f.routeTables == nil {
		return &ec2.DescribeRouteTablesOutput{}, nil
	}
	return f.routeTables(in)
}

func (f *fakeEC2) GetConsoleOutput(_ context.Context, in *ec2.GetConsoleOutputInput, _ ...func(*ec2.Options)) (*ec2.GetConsoleOutputOutput, error) {
	return f.console(in)
}

type fakeSTS struct {
	identity func() (*sts.GetCallerIdentityOutput, error)
}

func (f *fakeSTS) GetCallerIdentity(context.Context, *sts.GetCallerIdentityInput, ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	return f.identity()
}

type fakeSSM struct {
	get func(*ssm.GetParameterInput) (*ssm.GetParameterOutput, error)
}

func (f *fakeSSM) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	return f.get(in)
}

type fakeCFN struct {
	describe func(*cloudformation.DescribeStacksInput) (*cloudformation.DescribeStacksOutput, error)
	create   func(*cloudformation.CreateStackInput) (*cloudformation.CreateStackOutput, error)
	update   func(*cloudformation.UpdateStackInput) (*cloudformation.UpdateStackOutput, error)
	del      func(*cloudformation.DeleteStackInput) (*cloudformation.DeleteStackOutput, error)
	events   func(*cloudformation.DescribeStackEventsInput) (*cloudformation.DescribeStackEventsOutput, error)
	resource func(*cloudformation.DescribeStackResourceInput) (*cloudformation.DescribeStackResourceOutput, error)
}

func (f *fakeCFN) DescribeStacks(_ context.Context, in *cloudformation.DescribeStacksInput, _ ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error) {
	return f.describe(in)
}

func (f *fakeCFN) CreateStack(_ context.Context, in *cloudformation.CreateStackInput, _ ...func(*cloudformation.Options)) (*cloudformation.CreateStackOutput, error) {
	return f.create(in)
}

func (f *fakeCFN) UpdateStack(_ context.Context, in *cloudformation.UpdateStackInput, _ ...func(*cloudformation.Options)) (*cloudformation.UpdateStackOutput, error) {
	return f.update(in)
}

func (f *fakeCFN) DeleteStack(_ context.Context, in *cloudformation.DeleteStackInput, _ ...func(*cloudformation.Options)) (*cloudformation.DeleteStackOutput, error) {
	return f.del(in)
}

func (f *fakeCFN) DescribeStackEvents(_ context.Context, in *cloudformation.DescribeStackEventsInput, _ ...func(*cloudformation.Options)) (*cloudformation.DescribeStackEventsOutput, error) {
	return f.events(in)
}

func (f *fakeCFN) DescribeStackResource(_ context.Context, in *cloudformation.DescribeStackResourceInput, _ ...func(*cloudformation.Options)) (*cloudformation.DescribeStackResourceOutput, error) {
	return f.resource(in)
}

type fakeS3 struct {
	head   func(*s3.HeadBucketInput) (*s3.HeadBucketOutput, error)
	create func(*s3.CreateBucketInput) (*s3.CreateBucketOutput, error)
	put    func(*s3.PutObjectInput) (*s3.PutObjectOutput, error)
}

func (f *fakeS3) HeadBucket(_ context.Context, in *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	return f.head(in)
}

func (f *fakeS3) CreateBucket(_ context.Context, in *s3.CreateBucketInput, _ ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	return f.create(in)
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	return f.put(in)
}

// testClient builds a Client with fast retries and the given fakes.
func testClient(region string, opts ...ClientOption) *Client {
	c := &Client{
		region: region,
		timeouts: &config.Timeouts{
			Deploy:            time.Minute,
			Destroy:           time.Minute,
			PollInterval:      time.Millisecond,
			RetryMaxAttempts:  2,
			RetryInitialDelay: time.Millisecond,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
