// Package config defines the stack configuration and the deploy-time
// environment.
//
// [Config] is read from ec2stack.yaml and only carries the knobs that do
// not change what the recipe declares (stack name, output locations,
// tags). The target account and region come from the process environment
// through [ResolveEnvironment], which falls back to the AWS SDK's own
// resolution when nothing is set.
package config
