package aws

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// ConsoleOutput returns the decoded serial console output of an instance.
// An instance that has not produced output yet returns "".
func (c *Client) ConsoleOutput(ctx context.Context, instanceID string) (string, error) {
	var out *ec2.GetConsoleOutputOutput
	err := c.withRetry(ctx, func() error {
		var err error
		out, err = c.ec2.GetConsoleOutput(ctx, &ec2.GetConsoleOutputInput{
			InstanceId: aws.String(instanceID),
		})
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to get console output of %s: %w", instanceID, err)
	}
	if out.Output == nil {
		return "", nil
	}
	data, err := base64.StdEncoding.DecodeString(*out.Output)
	if err != nil {
		return "", fmt.Errorf("failed to decode console output of %s: %w", instanceID, err)
	}
	return string(data), nil
}
