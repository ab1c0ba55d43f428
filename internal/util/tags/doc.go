// Package tags builds the AWS resource tags applied to every resource the
// stack declares.
//
// Keys use the ec2stack: prefix so resources can be traced back to the
// stack that owns them.
package tags
