// Package recipe declares the web VM stack: one Ubuntu t2.micro instance
// in the default VPC, reachable on TCP/80 over IPv4 and IPv6, serving
// nginx installed by cfn-init, with its URL exported as webVmUrl.
//
// The recipe is a fixed sequence of provisioning phases:
//
//	network -> boot-script -> machine-image -> traffic-policy -> instance -> output
//
// Every phase only adds declarations to the stack. Nothing exists in AWS
// until the synthesized template is deployed.
package recipe
