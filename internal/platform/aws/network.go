package aws

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// DescribeDefaultVPC looks up the default VPC and classifies its subnets.
// A subnet is public when its route table (explicit association, or the
// VPC main table) routes to an internet gateway.
func (c *Client) DescribeDefaultVPC(ctx context.Context) (*VPCInfo, error) {
	var vpcs *ec2.DescribeVpcsOutput
	err := c.withRetry(ctx, func() error {
		var err error
		vpcs, err = c.ec2.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{
			Filters: []ec2types.Filter{{Name: aws.String("isDefault"), Values: []string{"true"}}},
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe VPCs: %w", err)
	}
	if len(vpcs.Vpcs) == 0 {
		return nil, fmt.Errorf("%w in region %s", ErrNoDefaultVPC, c.region)
	}
	vpc := vpcs.Vpcs[0]
	vpcID := aws.ToString(vpc.VpcId)
	vpcFilter := []ec2types.Filter{{Name: aws.String("vpc-id"), Values: []string{vpcID}}}

	var subnets []ec2types.Subnet
	err = c.withRetry(ctx, func() error {
		subnets = nil
		p := ec2.NewDescribeSubnetsPaginator(c.ec2, &ec2.DescribeSubnetsInput{Filters: vpcFilter})
		for p.HasMorePages() {
			page, err := p.NextPage(ctx)
			if err != nil {
				return err
			}
			subnets = append(subnets, page.Subnets...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe subnets of %s: %w", vpcID, err)
	}

	var tables []ec2types.RouteTable
	err = c.withRetry(ctx, func() error {
		tables = nil
		p := ec2.NewDescribeRouteTablesPaginator(c.ec2, &ec2.DescribeRouteTablesInput{Filters: vpcFilter})
		for p.HasMorePages() {
			page, err := p.NextPage(ctx)
			if err != nil {
				return err
			}
			tables = append(tables, page.RouteTables...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe route tables of %s: %w", vpcID, err)
	}

	return buildVPCInfo(vpc, subnets, tables), nil
}

func buildVPCInfo(vpc ec2types.Vpc, subnets []ec2types.Subnet, tables []ec2types.RouteTable) *VPCInfo {
	mainPublic := false
	subnetPublic := make(map[string]bool)
	for _, rt := range tables {
		public := routesToInternet(rt)
		for _, assoc := range rt.Associations {
			if aws.ToBool(assoc.Main) {
				mainPublic = public
			}
			if id := aws.ToString(assoc.SubnetId); id != "" {
				subnetPublic[id] = public
			}
		}
	}

	sort.SliceStable(subnets, func(i, j int) bool {
		ai, aj := aws.ToString(subnets[i].AvailabilityZone), aws.ToString(subnets[j].AvailabilityZone)
		if ai != aj {
			return ai < aj
		}
		return aws.ToString(subnets[i].SubnetId) < aws.ToString(subnets[j].SubnetId)
	})

	info := &VPCInfo{
		ID:   aws.ToString(vpc.VpcId),
		CIDR: aws.ToString(vpc.CidrBlock),
	}
	seenAZ := make(map[string]bool)
	for _, s := range subnets {
		id := aws.ToString(s.SubnetId)
		az := aws.ToString(s.AvailabilityZone)
		if !seenAZ[az] {
			seenAZ[az] = true
			info.AvailabilityZones = append(info.AvailabilityZones, az)
		}
		public, explicit := subnetPublic[id]
		if !explicit {
			public = mainPublic
		}
		if public {
			info.PublicSubnetIDs = append(info.PublicSubnetIDs, id)
		} else {
			info.PrivateSubnetIDs = append(info.PrivateSubnetIDs, id)
		}
	}
	return info
}

func routesToInternet(rt ec2types.RouteTable) bool {
	for _, r := range rt.Routes {
		if strings.HasPrefix(aws.ToString(r.GatewayId), "igw-") {
			return true
		}
	}
	return false
}
