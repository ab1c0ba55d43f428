// Package bootstrap renders the shell the instance runs on first boot and
// the second-stage commands applied by cfn-init.
//
// The first-boot script is an ordered list of bash commands delivered as
// EC2 user data. Two command shapes carry the only control flow in the
// script: [RetryForever] wraps a command in an unbounded until-loop, and
// [ReportOnFailure] lets a helper fail without aborting the script by
// printing a failure line and routing the failure to an error-reporting
// helper.
package bootstrap
