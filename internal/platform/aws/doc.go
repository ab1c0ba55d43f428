// Package aws wraps the AWS APIs the stack talks to: EC2 for the default
// VPC lookup and console output, STS for the caller account, SSM for the
// image parameter preview, CloudFormation for applying the template, and
// S3 for template artifacts.
//
// [Client] implements every interface on top of aws-sdk-go-v2. Callers
// depend on the narrow interfaces ([NetworkLookup], [StackManager], ...)
// so tests can substitute [MockClient].
package aws
