package provisioning

import (
	awsplatform "github.com/imamik/ec2stack/internal/platform/aws"
	"github.com/imamik/ec2stack/internal/stack"
)

// State holds the shared results of provisioning phases.
// It is progressively populated as each phase completes and is passed
// to subsequent phases that need earlier results.
type State struct {
	// Stack receives every declaration.
	Stack *stack.Stack

	// Logical IDs in declaration order, per phase.
	Declared map[string][]string

	// VPC is the looked-up network, set by the network phase.
	VPC          *awsplatform.VPCInfo
	VPCFromCache bool
}

// NewState creates a provisioning state around an empty stack.
func NewState(s *stack.Stack) *State {
	return &State{
		Stack:    s,
		Declared: make(map[string][]string),
	}
}

// RecordDeclared notes that phase declared the given logical IDs.
func (s *State) RecordDeclared(phase string, ids ...string) {
	s.Declared[phase] = append(s.Declared[phase], ids...)
}
