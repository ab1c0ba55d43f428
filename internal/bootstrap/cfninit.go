package bootstrap

import (
	"fmt"
	"strings"
)

// DefaultConfigSet is the config set cfn-init applies.
const DefaultConfigSet = "default"

const defaultConfigName = "config"

// Init is the second-stage initialization applied by cfn-init after first
// boot. Only shell commands are supported.
type Init struct {
	commands []string
}

// NewInit returns an Init running commands in order.
func NewInit(commands ...string) *Init {
	return &Init{commands: append([]string(nil), commands...)}
}

// Commands returns a copy of the commands in execution order.
func (i *Init) Commands() []string {
	out := make([]string, len(i.commands))
	copy(out, i.commands)
	return out
}

// Metadata renders the AWS::CloudFormation::Init metadata block.
// Command keys are zero padded so cfn-init, which sorts them
// alphabetically, runs them in declaration order.
func (i *Init) Metadata() map[string]any {
	commands := make(map[string]any, len(i.commands))
	for idx, cmd := range i.commands {
		commands[fmt.Sprintf("%03d", idx)] = map[string]any{"command": cmd}
	}

	return map[string]any{
		"configSets": map[string]any{
			DefaultConfigSet: []string{defaultConfigName},
		},
		defaultConfigName: map[string]any{
			"commands": commands,
		},
	}
}

// InvocationCommands returns the user data lines that run cfn-init for
// resource in the running stack. The values are CloudFormation
// substitution variables, resolved at deploy time.
//
// The block runs in a subshell with errexit off so a cfn-init failure is
// logged rather than aborting what is left of the script. No cfn-signal is
// sent: nothing waits for the instance to finish booting.
func InvocationCommands(resource string) []string {
	return []string{
		"(",
		"  set +e",
		fmt.Sprintf("  %s/cfn-init -v --region ${AWS::Region} --stack ${AWS::StackName} --resource %s -c %s",
			HelperScriptsDir, resource, DefaultConfigSet),
		"  cat /var/log/cfn-init.log >&2",
		")",
	}
}

// WebServerInit returns the second-stage init for the web instance.
func WebServerInit() *Init {
	return NewInit(
		"sudo apt-get update -y",
		"sudo apt-get install -y nginx",
	)
}

// EscapeForSub escapes literal "${" sequences so a script can be embedded
// in Fn::Sub without CloudFormation treating them as variables.
func EscapeForSub(script string) string {
	return strings.ReplaceAll(script, "${", "${!")
}
