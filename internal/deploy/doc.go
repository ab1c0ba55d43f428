// Package deploy applies a synthesized template with CloudFormation and
// tears it down again.
//
// Deploy creates the stack when it does not exist and updates it
// otherwise. An update CloudFormation rejects with "No updates are to be
// performed" counts as success. Both operations poll the stack and its
// event log until a terminal status or the configured timeout.
package deploy
