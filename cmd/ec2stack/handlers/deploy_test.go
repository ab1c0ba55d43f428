package handlers

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/imamik/ec2stack/internal/deploy"
	awsplatform "github.com/imamik/ec2stack/internal/platform/aws"
	ectest "github.com/imamik/ec2stack/internal/testing"
	"github.com/imamik/ec2stack/internal/ui/tui"
)

// saveAndRestoreDeployFactories saves and restores deploy factory functions.
func saveAndRestoreDeployFactories(t *testing.T) {
	origNewDeployer := newDeployer
	origRunDeployTUI := runDeployTUI

	t.Cleanup(func() {
		newDeployer = origNewDeployer
		runDeployTUI = origRunDeployTUI
	})
}

// installDeployer makes newDeployer return d. The returned slice holds the
// options of the most recent construction.
func installDeployer(t *testing.T, d *ectest.MockDeployer) *[]deploy.Option {
	t.Helper()
	saveAndRestoreDeployFactories(t)
	var opts []deploy.Option
	newDeployer = func(_ awsplatform.StackManager, o ...deploy.Option) Deployer {
		opts = o
		return d
	}
	return &opts
}

// collectTUI replaces the Bubble Tea program with a loop that runs the
// work function and keeps every message it sends.
func collectTUI(t *testing.T) (*tui.Model, *[]tea.Msg) {
	t.Helper()
	var model tui.Model
	var msgs []tea.Msg
	runDeployTUI = func(_ context.Context, m tui.Model, run tui.RunFunc) (*deploy.Result, error) {
		model = m
		ch := make(chan tea.Msg, 32)
		result, err := run(ch)
		close(ch)
		for msg := range ch {
			msgs = append(msgs, msg)
		}
		return result, err
	}
	return &model, &msgs
}

func webResult() *deploy.Result {
	return &deploy.Result{
		StackID: "arn:aws:cloudformation:eu-west-1:123456789012:stack/UbuntuBasedEc2InstanceStack/abc",
		Status:  deploy.StatusCreateComplete,
		Created: true,
		Changed: true,
		Outputs: map[string]awsplatform.StackOutput{
			"webVmUrl": {Value: "http://203.0.113.10/", ExportName: "webVmUrl"},
		},
		WebURL: "http://203.0.113.10/",
	}
}

func TestDeploy_Plain(t *testing.T) {
	cfg, out := fakeSession(t, &awsplatform.MockClient{})
	cfg.Tags = map[string]string{"team": "web"}

	d := &ectest.MockDeployer{}
	d.On("Deploy", mock.Anything, mock.MatchedBy(func(req deploy.Request) bool {
		return req.StackName == cfg.StackName && req.Fingerprint != "" && req.Tags["team"] == "web"
	})).Return(webResult(), nil).Once()
	installDeployer(t, d)

	err := Deploy(context.Background(), Globals{}, DeployOptions{})
	require.NoError(t, err)
	d.AssertExpectations(t)

	req := d.Calls[0].Arguments.Get(1).(deploy.Request)
	assert.Contains(t, string(req.TemplateBody), "AWS::EC2::Instance")

	assert.Contains(t, out.String(), " UbuntuBasedEc2InstanceStack\n")
	assert.Contains(t, out.String(), "Outputs:")
	assert.Contains(t, out.String(), "UbuntuBasedEc2InstanceStack.webVmUrl = http://203.0.113.10/")
	assert.Contains(t, out.String(), "Stack ARN:")
}

func TestDeploy_ArtifactBucketAddsOption(t *testing.T) {
	cfg, _ := fakeSession(t, &awsplatform.MockClient{})
	d := &ectest.MockDeployer{}
	d.On("Deploy", mock.Anything, mock.Anything).Return(webResult(), nil)
	opts := installDeployer(t, d)

	require.NoError(t, Deploy(context.Background(), Globals{}, DeployOptions{}))
	withoutBucket := len(*opts)

	cfg.ArtifactBucket = "my-artifacts"
	require.NoError(t, Deploy(context.Background(), Globals{}, DeployOptions{}))
	assert.Len(t, *opts, withoutBucket+1)
}

func TestDeploy_Failure(t *testing.T) {
	_, out := fakeSession(t, &awsplatform.MockClient{})
	d := &ectest.MockDeployer{}
	d.On("Deploy", mock.Anything, mock.Anything).
		Return(nil, errors.New("stack UbuntuBasedEc2InstanceStack failed: ROLLBACK_COMPLETE"))
	installDeployer(t, d)

	err := Deploy(context.Background(), Globals{}, DeployOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ROLLBACK_COMPLETE")
	assert.NotContains(t, out.String(), "Outputs:")
}

func TestDeploy_SynthFailureSkipsDeploy(t *testing.T) {
	client := &awsplatform.MockClient{
		DescribeDefaultVPCFunc: func(context.Context) (*awsplatform.VPCInfo, error) {
			return nil, awsplatform.ErrNoDefaultVPC
		},
	}
	fakeSession(t, client)
	d := &ectest.MockDeployer{}
	installDeployer(t, d)

	err := Deploy(context.Background(), Globals{}, DeployOptions{})
	require.ErrorIs(t, err, awsplatform.ErrNoDefaultVPC)
	d.AssertNotCalled(t, "Deploy", mock.Anything, mock.Anything)
}

func TestDeploy_TUI(t *testing.T) {
	cfg, out := fakeSession(t, &awsplatform.MockClient{})
	isInteractiveTTY = func() bool { return true }

	d := &ectest.MockDeployer{}
	d.On("Deploy", mock.Anything, mock.Anything).Return(webResult(), nil)
	installDeployer(t, d)
	model, msgs := collectTUI(t)

	require.NoError(t, Deploy(context.Background(), Globals{}, DeployOptions{}))

	assert.Equal(t, "deploy", model.Mode)
	assert.Equal(t, cfg.StackName, model.StackName)
	assert.Equal(t, "eu-west-1", model.Region)
	assert.Equal(t, []tea.Msg{
		tui.StepMsg{Step: tui.StepSynth},
		tui.StepMsg{Step: tui.StepSubmit},
		tui.StepMsg{Step: tui.StepOutput, Done: true},
	}, *msgs)
	assert.Contains(t, out.String(), "webVmUrl = http://203.0.113.10/")
}

func TestUseTUI(t *testing.T) {
	fakeSession(t, &awsplatform.MockClient{})
	isInteractiveTTY = func() bool { return true }

	assert.True(t, useTUI(Globals{}, false))
	assert.False(t, useTUI(Globals{}, true))
	assert.False(t, useTUI(Globals{LogFormat: LogFormatJSON}, false))

	isInteractiveTTY = func() bool { return false }
	assert.False(t, useTUI(Globals{}, false))
}

func TestEventsToTUI(t *testing.T) {
	t.Parallel()
	ch := make(chan tea.Msg, 8)
	handler := eventsToTUI(ch)

	handler(awsplatform.StackEvent{LogicalID: "myVmSecurityGroup", Status: "CREATE_IN_PROGRESS"})
	handler(awsplatform.StackEvent{LogicalID: "myVmSecurityGroup", Status: "CREATE_COMPLETE"})
	close(ch)

	var msgs []tea.Msg
	for msg := range ch {
		msgs = append(msgs, msg)
	}
	require.Len(t, msgs, 3)
	assert.Equal(t, tui.StepMsg{Step: tui.StepResources}, msgs[0])
	assert.IsType(t, tui.StackEventMsg{}, msgs[1])
	assert.IsType(t, tui.StackEventMsg{}, msgs[2])
}

func TestPrintOutputs_NoChanges(t *testing.T) {
	_, out := fakeSession(t, &awsplatform.MockClient{})

	result := webResult()
	result.Changed = false
	result.StackID = ""
	printOutputs("web", result)

	assert.Contains(t, out.String(), " web (no changes)")
	assert.Contains(t, out.String(), "web.webVmUrl = http://203.0.113.10/")
	assert.NotContains(t, out.String(), "Stack ARN:")
}

func TestPrintOutputs_NilResult(t *testing.T) {
	_, out := fakeSession(t, &awsplatform.MockClient{})

	printOutputs("web", nil)
	assert.Empty(t, out.String())
}
