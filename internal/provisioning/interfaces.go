package provisioning

import (
	"context"

	awsplatform "github.com/imamik/ec2stack/internal/platform/aws"
)

// Logger is the minimal printf-style logger.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Phase defines the interface for a provisioning phase.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Provision executes the provisioning logic for this phase.
	Provision(ctx *Context) error
}

// VPCResolver resolves the default VPC of an account/region.
// Implemented by lookup.Resolver.
type VPCResolver interface {
	// DefaultVPC returns the VPC and whether it came from the context cache.
	DefaultVPC(ctx context.Context, account, region string) (*awsplatform.VPCInfo, bool, error)
}
