// Package stack models the declarations a recipe registers and renders
// them as a CloudFormation template.
//
// A [Stack] holds parameters, resources and outputs. Dependencies are
// explicit: [Stack.Order] derives an apply order from each resource's
// DependsOn list plus the Ref/GetAtt references found in its properties,
// and fails on unknown references or cycles instead of leaving ordering to
// the provisioning engine.
package stack
