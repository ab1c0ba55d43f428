package deploy

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/imamik/ec2stack/internal/config"
	awsplatform "github.com/imamik/ec2stack/internal/platform/aws"
	"github.com/imamik/ec2stack/internal/provisioning"
	"github.com/imamik/ec2stack/internal/provisioning/recipe"
	"github.com/imamik/ec2stack/internal/util/naming"
)

// ErrStackFailed is returned when a stack ends in a failed or rolled back
// state.
var ErrStackFailed = errors.New("stack operation failed")

// MaxInlineTemplateSize is the largest template CloudFormation accepts as
// a request body. Larger templates must be uploaded first.
const MaxInlineTemplateSize = 51200

// eventSkew widens the event window to absorb clock drift between this
// host and AWS.
const eventSkew = 5 * time.Second

// Request describes one deploy.
type Request struct {
	StackName    string
	TemplateBody []byte
	// Fingerprint names the uploaded artifact when an artifact bucket is set.
	Fingerprint string
	Tags        map[string]string
}

// Result is the state of a stack after Deploy.
type Result struct {
	StackID string
	Status  string
	Created bool
	// Changed is false when the template matched the deployed stack.
	Changed bool
	Outputs map[string]awsplatform.StackOutput
	WebURL  string
}

// EventHandler receives stack events as they are observed, oldest first.
type EventHandler func(awsplatform.StackEvent)

// Deployer applies and deletes stacks.
type Deployer struct {
	stacks         awsplatform.StackManager
	artifacts      awsplatform.ArtifactStore
	bucket         string
	pollInterval   time.Duration
	deployTimeout  time.Duration
	destroyTimeout time.Duration
	onEvent        EventHandler
	observer       provisioning.Observer
	now            func() time.Time
}

// Option configures a Deployer.
type Option func(*Deployer)

// WithTimeouts applies deploy, destroy, and poll settings.
func WithTimeouts(t *config.Timeouts) Option {
	return func(d *Deployer) {
		d.pollInterval = t.PollInterval
		d.deployTimeout = t.Deploy
		d.destroyTimeout = t.Destroy
	}
}

// WithPollInterval sets the interval between status polls.
func WithPollInterval(interval time.Duration) Option {
	return func(d *Deployer) { d.pollInterval = interval }
}

// WithEventHandler receives every new stack event.
func WithEventHandler(h EventHandler) Option {
	return func(d *Deployer) { d.onEvent = h }
}

// WithObserver sets the observer used for progress logging.
func WithObserver(o provisioning.Observer) Option {
	return func(d *Deployer) { d.observer = o }
}

// WithArtifactBucket uploads templates to bucket and deploys them by URL.
func WithArtifactBucket(store awsplatform.ArtifactStore, bucket string) Option {
	return func(d *Deployer) {
		d.artifacts = store
		d.bucket = bucket
	}
}

// New creates a Deployer. Timeouts default to config.LoadTimeouts.
func New(stacks awsplatform.StackManager, opts ...Option) *Deployer {
	d := &Deployer{
		stacks:   stacks,
		observer: provisioning.NewConsoleObserver(),
		now:      time.Now,
	}
	WithTimeouts(config.LoadTimeouts())(d)
	for _, opt := range opts {
		opt(d)
	}
	if d.pollInterval <= 0 {
		d.pollInterval = time.Second
	}
	return d
}

// Deploy creates or updates the stack and waits for it to settle.
func (d *Deployer) Deploy(ctx context.Context, req Request) (*Result, error) {
	input, err := d.stackInput(ctx, req)
	if err != nil {
		return nil, err
	}

	existing, err := d.stacks.DescribeStack(ctx, req.StackName)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		switch {
		case IsInProgress(existing.Status):
			return nil, fmt.Errorf("stack %s is busy (%s), try again when it settles", req.StackName, existing.Status)
		case existing.Status == StatusRollbackComplete:
			// A stack that failed its first create cannot be updated.
			d.observer.Printf("Stack %s is in %s, deleting it before re-creating", req.StackName, existing.Status)
			if err := d.Destroy(ctx, req.StackName); err != nil {
				return nil, err
			}
			existing = nil
		}
	}

	since := d.now().Add(-eventSkew)
	result := &Result{Changed: true}

	if existing == nil {
		d.observer.Printf("Creating stack %s...", req.StackName)
		id, err := d.stacks.CreateStack(ctx, input)
		if err != nil {
			return nil, submitError(req.StackName, err)
		}
		result.StackID = id
		result.Created = true
	} else {
		d.observer.Printf("Updating stack %s...", req.StackName)
		changed, err := d.stacks.UpdateStack(ctx, input)
		if err != nil {
			return nil, submitError(req.StackName, err)
		}
		if !changed {
			d.observer.Printf("Stack %s is up to date", req.StackName)
			return finish(&Result{StackID: existing.ID}, existing)
		}
	}

	status, err := d.wait(ctx, req.StackName, since, d.deployTimeout, deploySucceeded)
	if err != nil {
		return nil, err
	}
	if result.StackID == "" {
		result.StackID = status.ID
	}
	return finish(result, status)
}

// submitError calls out templates CloudFormation refused outright. Other
// errors are returned unchanged.
func submitError(name string, err error) error {
	if awsplatform.IsValidationError(err) {
		return fmt.Errorf("CloudFormation rejected the template for stack %s: %w", name, err)
	}
	return err
}

func finish(result *Result, status *awsplatform.StackStatus) (*Result, error) {
	result.Status = status.Status
	result.Outputs = status.Outputs
	if out, ok := status.Outputs[naming.WebURLOutput]; ok {
		if err := recipe.ValidateWebURL(out.Value); err != nil {
			return nil, err
		}
		result.WebURL = out.Value
	}
	return result, nil
}

func (d *Deployer) stackInput(ctx context.Context, req Request) (awsplatform.StackInput, error) {
	input := awsplatform.StackInput{Name: req.StackName, Tags: req.Tags}

	if d.artifacts != nil && d.bucket != "" {
		fingerprint := req.Fingerprint
		if fingerprint == "" {
			fingerprint = "latest"
		}
		url, err := d.artifacts.PutTemplate(ctx, d.bucket, naming.ArtifactKey(req.StackName, fingerprint), req.TemplateBody)
		if err != nil {
			return input, err
		}
		d.observer.Printf("Uploaded template to %s", url)
		input.TemplateURL = url
		return input, nil
	}

	if len(req.TemplateBody) > MaxInlineTemplateSize {
		return input, fmt.Errorf("template is %d bytes, more than the %d CloudFormation accepts inline: set artifact_bucket",
			len(req.TemplateBody), MaxInlineTemplateSize)
	}
	input.TemplateBody = string(req.TemplateBody)
	return input, nil
}

// Destroy deletes the stack and waits until it is gone. Destroying a
// stack that does not exist succeeds.
func (d *Deployer) Destroy(ctx context.Context, name string) error {
	existing, err := d.stacks.DescribeStack(ctx, name)
	if err != nil {
		return err
	}
	if existing == nil || existing.Status == StatusDeleteComplete {
		d.observer.Printf("Stack %s does not exist", name)
		return nil
	}

	since := d.now().Add(-eventSkew)
	d.observer.Printf("Deleting stack %s...", name)
	if err := d.stacks.DeleteStack(ctx, name); err != nil {
		return err
	}

	_, err = d.wait(ctx, name, since, d.destroyTimeout, destroySucceeded)
	return err
}

type outcome int

const (
	pending outcome = iota
	succeeded
	failed
)

func deploySucceeded(status string) outcome {
	switch status {
	case StatusCreateComplete, StatusUpdateComplete:
		return succeeded
	}
	if IsInProgress(status) {
		return pending
	}
	return failed
}

func destroySucceeded(status string) outcome {
	switch {
	case status == StatusDeleteComplete:
		return succeeded
	case IsInProgress(status):
		return pending
	}
	return failed
}

// wait polls until judge reports a terminal outcome. A stack that
// disappears counts as deleted.
func (d *Deployer) wait(ctx context.Context, name string, since time.Time, timeout time.Duration, judge func(string) outcome) (*awsplatform.StackStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var firstFailure string
	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	for {
		events, err := d.stacks.StackEvents(ctx, name, since)
		if err != nil {
			return nil, err
		}
		for _, e := range events {
			if firstFailure == "" && strings.HasSuffix(e.Status, "_FAILED") && e.Reason != "" {
				firstFailure = fmt.Sprintf("%s: %s", e.LogicalID, e.Reason)
			}
			if d.onEvent != nil {
				d.onEvent(e)
			}
			since = e.Timestamp
		}

		status, err := d.stacks.DescribeStack(ctx, name)
		if err != nil {
			return nil, err
		}
		if status == nil {
			status = &awsplatform.StackStatus{Name: name, Status: StatusDeleteComplete}
		}

		switch judge(status.Status) {
		case succeeded:
			d.observer.Printf("Stack %s reached %s", name, status.Status)
			return status, nil
		case failed:
			reason := status.Reason
			if firstFailure != "" {
				reason = firstFailure
			}
			return nil, fmt.Errorf("%w: %s is %s: %s", ErrStackFailed, name, status.Status, reason)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("timed out waiting for stack %s (last status %s): %w", name, status.Status, ctx.Err())
		case <-ticker.C:
		}
	}
}
