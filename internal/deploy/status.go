package deploy

import "strings"

// CloudFormation stack statuses the deployer acts on.
const (
	StatusCreateComplete   = "CREATE_COMPLETE"
	StatusUpdateComplete   = "UPDATE_COMPLETE"
	StatusDeleteComplete   = "DELETE_COMPLETE"
	StatusRollbackComplete = "ROLLBACK_COMPLETE"
)

// IsInProgress reports whether status is transitional.
func IsInProgress(status string) bool {
	return strings.HasSuffix(status, "_IN_PROGRESS")
}

// IsFailure reports whether a resource or stack status is a failure or
// rollback.
func IsFailure(status string) bool {
	return strings.HasSuffix(status, "_FAILED") || strings.Contains(status, "ROLLBACK")
}
