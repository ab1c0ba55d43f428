package aws

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/imamik/ec2stack/internal/config"
	"github.com/imamik/ec2stack/internal/util/retry"
)

// Static credential overrides. When both key variables are set they take
// precedence over the SDK default credential chain.
const (
	EnvAccessKeyID     = "EC2STACK_AWS_ACCESS_KEY_ID"
	EnvSecretAccessKey = "EC2STACK_AWS_SECRET_ACCESS_KEY"
	EnvSessionToken    = "EC2STACK_AWS_SESSION_TOKEN"
)

// The SDK surface used by Client, narrowed so tests can stub it.

type ec2API interface {
	DescribeVpcs(ctx context.Context, in *ec2.DescribeVpcsInput, opts ...func(*ec2.Options)) (*ec2.DescribeVpcsOutput, error)
	DescribeSubnets(ctx context.Context, in *ec2.DescribeSubnetsInput, opts ...func(*ec2.Options)) (*ec2.DescribeSubnetsOutput, error)
	DescribeRouteTables(ctx context.Context, in *ec2.DescribeRouteTablesInput, opts ...func(*ec2.Options)) (*ec2.DescribeRouteTablesOutput, error)
	GetConsoleOutput(ctx context.Context, in *ec2.GetConsoleOutputInput, opts ...func(*ec2.Options)) (*ec2.GetConsoleOutputOutput, error)
}

type stsAPI interface {
	GetCallerIdentity(ctx context.Context, in *sts.GetCallerIdentityInput, opts ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

type ssmAPI interface {
	GetParameter(ctx context.Context, in *ssm.GetParameterInput, opts ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

type cloudFormationAPI interface {
	DescribeStacks(ctx context.Context, in *cloudformation.DescribeStacksInput, opts ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error)
	CreateStack(ctx context.Context, in *cloudformation.CreateStackInput, opts ...func(*cloudformation.Options)) (*cloudformation.CreateStackOutput, error)
	UpdateStack(ctx context.Context, in *cloudformation.UpdateStackInput, opts ...func(*cloudformation.Options)) (*cloudformation.UpdateStackOutput, error)
	DeleteStack(ctx context.Context, in *cloudformation.DeleteStackInput, opts ...func(*cloudformation.Options)) (*cloudformation.DeleteStackOutput, error)
	DescribeStackEvents(ctx context.Context, in *cloudformation.DescribeStackEventsInput, opts ...func(*cloudformation.Options)) (*cloudformation.DescribeStackEventsOutput, error)
	DescribeStackResource(ctx context.Context, in *cloudformation.DescribeStackResourceInput, opts ...func(*cloudformation.Options)) (*cloudformation.DescribeStackResourceOutput, error)
}

type s3API interface {
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, opts ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, in *s3.CreateBucketInput, opts ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Client implements Manager on top of aws-sdk-go-v2.
type Client struct {
	region   string
	ec2      ec2API
	sts      stsAPI
	ssm      ssmAPI
	cfn      cloudFormationAPI
	s3       s3API
	timeouts *config.Timeouts
}

var _ Manager = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeouts sets custom timeouts and retry settings.
func WithTimeouts(t *config.Timeouts) ClientOption {
	return func(c *Client) {
		c.timeouts = t
	}
}

// WithEC2API overrides the EC2 client (useful for testing).
func WithEC2API(api ec2API) ClientOption {
	return func(c *Client) { c.ec2 = api }
}

// WithSTSAPI overrides the STS client (useful for testing).
func WithSTSAPI(api stsAPI) ClientOption {
	return func(c *Client) { c.sts = api }
}

// WithSSMAPI overrides the SSM client (useful for testing).
func WithSSMAPI(api ssmAPI) ClientOption {
	return func(c *Client) { c.ssm = api }
}

// WithCloudFormationAPI overrides the CloudFormation client (useful for testing).
func WithCloudFormationAPI(api cloudFormationAPI) ClientOption {
	return func(c *Client) { c.cfn = api }
}

// WithS3API overrides the S3 client (useful for testing).
func WithS3API(api s3API) ClientOption {
	return func(c *Client) { c.s3 = api }
}

// NewClient creates a Client from an SDK configuration.
func NewClient(cfg aws.Config, opts ...ClientOption) *Client {
	c := &Client{
		region:   cfg.Region,
		ec2:      ec2.NewFromConfig(cfg),
		sts:      sts.NewFromConfig(cfg),
		ssm:      ssm.NewFromConfig(cfg),
		cfn:      cloudformation.NewFromConfig(cfg),
		s3:       s3.NewFromConfig(cfg),
		timeouts: config.LoadTimeouts(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LoadConfig builds the SDK configuration for env. An empty region is left
// to the default chain (AWS_REGION, shared config profile).
func LoadConfig(ctx context.Context, env config.Environment) (aws.Config, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if env.Region != "" {
		opts = append(opts, awsconfig.WithRegion(env.Region))
	}
	if provider, ok := staticCredentials(os.Getenv); ok {
		opts = append(opts, awsconfig.WithCredentialsProvider(provider))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	if cfg.Region == "" {
		return aws.Config{}, fmt.Errorf("no region configured: set %s, %s or AWS_REGION",
			config.EnvDeployRegion, config.EnvDefaultRegion)
	}
	return cfg, nil
}

func staticCredentials(getenv func(string) string) (credentials.StaticCredentialsProvider, bool) {
	key, secret := getenv(EnvAccessKeyID), getenv(EnvSecretAccessKey)
	if key == "" || secret == "" {
		return credentials.StaticCredentialsProvider{}, false
	}
	return credentials.NewStaticCredentialsProvider(key, secret, getenv(EnvSessionToken)), true
}

// Region returns the region the client talks to.
func (c *Client) Region() string {
	return c.region
}

// withRetry retries op while AWS throttles us. The SDK retryer already
// backs off on throttling, so with zero extra attempts op runs once.
func (c *Client) withRetry(ctx context.Context, op func() error) error {
	if c.timeouts.RetryMaxAttempts <= 0 {
		return op()
	}
	return retry.WithExponentialBackoff(ctx, op,
		retry.WithMaxRetries(c.timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(c.timeouts.RetryInitialDelay),
		retry.WithRetryIf(IsThrottling),
	)
}
