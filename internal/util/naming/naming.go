package naming

import (
	"fmt"
	"strings"
)

// Logical IDs for the resources declared by the recipe.
const (
	SecurityGroup   = "myVmSecurityGroup"
	Instance        = "myVm"
	InstanceRole    = "myVmInstanceRole"
	InstancePolicy  = "myVmInstanceRoleDefaultPolicy"
	InstanceProfile = "myVmInstanceProfile"
	ImageParameter  = "MachineImageParameter"
)

// Output names.
const (
	WebURLOutput = "webVmUrl"
	WebURLExport = "webVmUrl"
)

// ResourcePath returns the construct-style path of a resource, used as the
// Name tag so resources are recognisable in the console.
func ResourcePath(stack, logicalID string) string {
	return fmt.Sprintf("%s/%s", stack, logicalID)
}

// TemplateFile returns the file name of a synthesized template.
func TemplateFile(stack, format string) string {
	return fmt.Sprintf("%s.template.%s", stack, strings.ToLower(format))
}

// ArtifactKey returns the object key a template is uploaded under.
func ArtifactKey(stack, fingerprint string) string {
	return fmt.Sprintf("ec2stack/%s/%s.template", stack, fingerprint)
}

// VPCContextKey returns the lookup cache key for the default VPC of an
// account/region pair.
func VPCContextKey(account, region string) string {
	return fmt.Sprintf("vpc-provider:account=%s:filter.isDefault=true:region=%s", account, region)
}
