package config

// Environment variables that select the deploy target. The deploy
// variables win over the defaults.
const (
	EnvDeployAccount  = "CDK_DEPLOY_ACCOUNT"
	EnvDefaultAccount = "CDK_DEFAULT_ACCOUNT"
	EnvDeployRegion   = "CDK_DEPLOY_REGION"
	EnvDefaultRegion  = "CDK_DEFAULT_REGION"
)

// Defaults for fields left empty in ec2stack.yaml.
const (
	DefaultStackName      = "UbuntuBasedEc2InstanceStack"
	DefaultOutputDir      = "ec2stack.out"
	DefaultContextFile    = "ec2stack.context.yaml"
	DefaultTemplateFormat = FormatJSON
)

// Template formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)
