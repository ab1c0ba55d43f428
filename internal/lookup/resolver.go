package lookup

import (
	"context"

	awsplatform "github.com/imamik/ec2stack/internal/platform/aws"
	"github.com/imamik/ec2stack/internal/util/naming"
)

// Resolver answers default VPC lookups from the cache, falling back to
// the network API and remembering the answer.
type Resolver struct {
	Network awsplatform.NetworkLookup
	Cache   *Cache
	// NoCache forces a live lookup. The fresh answer is still stored.
	NoCache bool
}

// DefaultVPC returns the default VPC for account/region. Errors from the
// live lookup are returned unchanged and never cached.
func (r *Resolver) DefaultVPC(ctx context.Context, account, region string) (*awsplatform.VPCInfo, bool, error) {
	key := naming.VPCContextKey(account, region)
	if r.Cache != nil && !r.NoCache {
		if v, ok := r.Cache.Get(key); ok {
			return v, true, nil
		}
	}

	info, err := r.Network.DescribeDefaultVPC(ctx)
	if err != nil {
		return nil, false, err
	}
	if r.Cache != nil {
		r.Cache.Put(key, info)
	}
	return info, false, nil
}
