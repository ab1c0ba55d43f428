package provisioning

import (
	"context"

	"github.com/imamik/ec2stack/internal/config"
	"github.com/imamik/ec2stack/internal/stack"
)

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Config   *config.Config
	Env      config.Environment
	State    *State
	Lookup   VPCResolver
	Observer Observer
	Metrics  *Metrics
	Timeouts *config.Timeouts
}

// NewContext creates a new provisioning context with an empty stack named
// after the config and targeted at env.
func NewContext(ctx context.Context, cfg *config.Config, env config.Environment, lookup VPCResolver) *Context {
	s := stack.New(cfg.StackName, env.Account, env.Region)
	return &Context{
		Context:  ctx,
		Config:   cfg,
		Env:      env,
		State:    NewState(s),
		Lookup:   lookup,
		Observer: NewConsoleObserver(),
		Timeouts: config.LoadTimeouts(),
	}
}

// Stack returns the stack being composed.
func (c *Context) Stack() *stack.Stack {
	return c.State.Stack
}
