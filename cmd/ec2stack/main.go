// Package main is the entry point for the ec2stack CLI.
//
// ec2stack synthesizes and deploys a CloudFormation stack with a single
// Ubuntu EC2 instance in the default VPC, serving nginx on port 80.
//
// Commands: init, synth, deploy, status, console, image, destroy.
//
// For detailed usage information, run:
//
//	ec2stack --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/ec2stack/cmd/ec2stack/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
