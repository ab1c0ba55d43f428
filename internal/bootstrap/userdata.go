package bootstrap

import (
	"fmt"
	"strings"
)

// OSType is the operating system family of a machine image.
type OSType string

const (
	// OSLinux images run user data with bash.
	OSLinux OSType = "linux"
)

const linuxShebang = "#!/bin/bash"

// UserData is an ordered shell script executed once on first boot.
type UserData struct {
	os       OSType
	commands []string
}

// ForLinux returns empty user data for a Linux instance.
func ForLinux() *UserData {
	return &UserData{os: OSLinux}
}

// OS returns the operating system family the script targets.
func (u *UserData) OS() OSType {
	return u.os
}

// AddCommands appends commands in order.
func (u *UserData) AddCommands(commands ...string) {
	u.commands = append(u.commands, commands...)
}

// Commands returns a copy of the commands in execution order.
func (u *UserData) Commands() []string {
	out := make([]string, len(u.commands))
	copy(out, u.commands)
	return out
}

// Render returns the script as the instance will receive it.
func (u *UserData) Render() string {
	lines := make([]string, 0, len(u.commands)+1)
	lines = append(lines, linuxShebang)
	lines = append(lines, u.commands...)
	return strings.Join(lines, "\n")
}

// RetryForever wraps cmd in a loop that only exits once cmd succeeds.
// There is no attempt limit, timeout or backoff.
func RetryForever(cmd string) string {
	return fmt.Sprintf(`until %s; do echo "Retrying"; done`, cmd)
}

// ReportOnFailure runs helper and, if it fails, prints FailureLine and runs
// reporter instead of aborting. The script continues with the next command
// either way.
func ReportOnFailure(helper, reporter string) string {
	return fmt.Sprintf(`%s || { echo "%s"; %s; }`, helper, FailureLine(helper, reporter), reporter)
}

// FailureLine is what ReportOnFailure writes to the console when helper
// fails. It starts with the reporter's name.
func FailureLine(helper, reporter string) string {
	return reporter + ": " + helper + " failed"
}

// RenderForSub renders the script for embedding in Fn::Sub, followed by
// the cfn-init invocation for resource. Only the invocation keeps live
// substitution variables.
func (u *UserData) RenderForSub(resource string) string {
	return EscapeForSub(u.Render()) + "\n" + strings.Join(InvocationCommands(resource), "\n")
}
