package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// CallerAccount returns the account ID of the active credentials.
func (c *Client) CallerAccount(ctx context.Context) (string, error) {
	var out *sts.GetCallerIdentityOutput
	err := c.withRetry(ctx, func() error {
		var err error
		out, err = c.sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to get caller identity: %w", err)
	}
	return aws.ToString(out.Account), nil
}

// ResolveImageParameter returns the current value of an SSM parameter,
// typically an AMI ID published under /aws/service/.
func (c *Client) ResolveImageParameter(ctx context.Context, name string) (string, error) {
	var out *ssm.GetParameterOutput
	err := c.withRetry(ctx, func() error {
		var err error
		out, err = c.ssm.GetParameter(ctx, &ssm.GetParameterInput{Name: aws.String(name)})
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to read parameter %s: %w", name, err)
	}
	if out.Parameter == nil || aws.ToString(out.Parameter.Value) == "" {
		return "", fmt.Errorf("parameter %s has no value", name)
	}
	return aws.ToString(out.Parameter.Value), nil
}
