package bootstrap

import "strings"

// Quickstart utilities used to install the CloudFormation helper scripts.
const (
	UtilitiesRepo   = "https://github.com/aws-quickstart/quickstart-linux-utilities.git"
	UtilitiesDir    = "/quickstart-linux-utilities"
	UtilitiesSource = "quickstart-cfn-tools.source"

	// ErrorReporter is the helper that records a failed bootstrap step.
	ErrorReporter = "qs_err"

	// HelperScriptsDir is where cfn-init is expected by the init block.
	HelperScriptsDir = "/opt/aws/bin"
)

// BaselinePackages are installed before anything else.
var BaselinePackages = []string{"git", "awscli", "ec2-instance-connect"}

// BootstrapHelpers run in order; each may fail independently.
var BootstrapHelpers = []string{
	"qs_update-os",
	"qs_bootstrap_pip",
	"qs_aws-cfn-bootstrap",
}

// FirstBootScript returns the user data every instance boots with.
func FirstBootScript() *UserData {
	ud := ForLinux()
	ud.AddCommands(
		"apt-get update -y",
		"apt-get install -y "+strings.Join(BaselinePackages, " "),
		RetryForever("git clone "+UtilitiesRepo),
		"cd "+UtilitiesDir,
		"source "+UtilitiesSource,
	)
	for _, helper := range BootstrapHelpers {
		ud.AddCommands(ReportOnFailure(helper, ErrorReporter))
	}
	ud.AddCommands(
		"mkdir -p "+HelperScriptsDir,
		"ln -s /usr/local/bin/cfn-* "+HelperScriptsDir+"/",
	)
	return ud
}
