package aws

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	cfntypes "github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
)

// DescribeStack returns the current state of a stack, or nil if it does
// not exist.
func (c *Client) DescribeStack(ctx context.Context, name string) (*StackStatus, error) {
	var out *cloudformation.DescribeStacksOutput
	err := c.withRetry(ctx, func() error {
		var err error
		out, err = c.cfn.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{StackName: aws.String(name)})
		return err
	})
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to describe stack %s: %w", name, err)
	}
	if len(out.Stacks) == 0 {
		return nil, nil
	}
	return toStackStatus(out.Stacks[0]), nil
}

func toStackStatus(s cfntypes.Stack) *StackStatus {
	st := &StackStatus{
		ID:      aws.ToString(s.StackId),
		Name:    aws.ToString(s.StackName),
		Status:  string(s.StackStatus),
		Reason:  aws.ToString(s.StackStatusReason),
		Outputs: make(map[string]StackOutput, len(s.Outputs)),
	}
	for _, o := range s.Outputs {
		st.Outputs[aws.ToString(o.OutputKey)] = StackOutput{
			Value:       aws.ToString(o.OutputValue),
			Description: aws.ToString(o.Description),
			ExportName:  aws.ToString(o.ExportName),
		}
	}
	return st
}

// CreateStack starts stack creation and returns the stack ID.
func (c *Client) CreateStack(ctx context.Context, in StackInput) (string, error) {
	input := &cloudformation.CreateStackInput{
		StackName:    aws.String(in.Name),
		Capabilities: []cfntypes.Capability{cfntypes.CapabilityCapabilityIam},
		Tags:         stackTags(in.Tags),
	}
	setTemplate(&input.TemplateBody, &input.TemplateURL, in)

	var out *cloudformation.CreateStackOutput
	err := c.withRetry(ctx, func() error {
		var err error
		out, err = c.cfn.CreateStack(ctx, input)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to create stack %s: %w", in.Name, err)
	}
	return aws.ToString(out.StackId), nil
}

// UpdateStack starts a stack update. It returns false, nil when
// CloudFormation reports that nothing changed.
func (c *Client) UpdateStack(ctx context.Context, in StackInput) (bool, error) {
	input := &cloudformation.UpdateStackInput{
		StackName:    aws.String(in.Name),
		Capabilities: []cfntypes.Capability{cfntypes.CapabilityCapabilityIam},
		Tags:         stackTags(in.Tags),
	}
	setTemplate(&input.TemplateBody, &input.TemplateURL, in)

	err := c.withRetry(ctx, func() error {
		_, err := c.cfn.UpdateStack(ctx, input)
		return err
	})
	if err != nil {
		if IsNoUpdates(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to update stack %s: %w", in.Name, err)
	}
	return true, nil
}

func setTemplate(body, url **string, in StackInput) {
	if in.TemplateURL != "" {
		*url = aws.String(in.TemplateURL)
		return
	}
	*body = aws.String(in.TemplateBody)
}

func stackTags(tags map[string]string) []cfntypes.Tag {
	if len(tags) == 0 {
		return nil
	}
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]cfntypes.Tag, 0, len(keys))
	for _, k := range keys {
		out = append(out, cfntypes.Tag{Key: aws.String(k), Value: aws.String(tags[k])})
	}
	return out
}

// DeleteStack starts stack deletion. Deleting a missing stack succeeds.
func (c *Client) DeleteStack(ctx context.Context, name string) error {
	err := c.withRetry(ctx, func() error {
		_, err := c.cfn.DeleteStack(ctx, &cloudformation.DeleteStackInput{StackName: aws.String(name)})
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete stack %s: %w", name, err)
	}
	return nil
}

// StackEvents returns the events after since, oldest first.
// CloudFormation lists events newest first, so paging stops at the first
// event that is not newer than since.
func (c *Client) StackEvents(ctx context.Context, name string, since time.Time) ([]StackEvent, error) {
	var events []StackEvent
	err := c.withRetry(ctx, func() error {
		events = nil
		p := cloudformation.NewDescribeStackEventsPaginator(c.cfn, &cloudformation.DescribeStackEventsInput{
			StackName: aws.String(name),
		})
		for p.HasMorePages() {
			page, err := p.NextPage(ctx)
			if err != nil {
				return err
			}
			for _, e := range page.StackEvents {
				ts := aws.ToTime(e.Timestamp)
				if !ts.After(since) {
					return nil
				}
				events = append(events, StackEvent{
					ID:           aws.ToString(e.EventId),
					LogicalID:    aws.ToString(e.LogicalResourceId),
					PhysicalID:   aws.ToString(e.PhysicalResourceId),
					ResourceType: aws.ToString(e.ResourceType),
					Status:       string(e.ResourceStatus),
					Reason:       aws.ToString(e.ResourceStatusReason),
					Timestamp:    ts,
				})
			}
		}
		return nil
	})
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to describe events of stack %s: %w", name, err)
	}

	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}
	return events, nil
}

// PhysicalResourceID returns the physical ID of a stack resource, such as
// the instance ID behind a logical instance.
func (c *Client) PhysicalResourceID(ctx context.Context, stackName, logicalID string) (string, error) {
	var out *cloudformation.DescribeStackResourceOutput
	err := c.withRetry(ctx, func() error {
		var err error
		out, err = c.cfn.DescribeStackResource(ctx, &cloudformation.DescribeStackResourceInput{
			StackName:         aws.String(stackName),
			LogicalResourceId: aws.String(logicalID),
		})
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to describe resource %s of stack %s: %w", logicalID, stackName, err)
	}
	if out.StackResourceDetail == nil || aws.ToString(out.StackResourceDetail.PhysicalResourceId) == "" {
		return "", fmt.Errorf("resource %s of stack %s has no physical ID yet", logicalID, stackName)
	}
	return aws.ToString(out.StackResourceDetail.PhysicalResourceId), nil
}
