package aws

import (
	"errors"
	"strings"

	"github.com/aws/smithy-go"
)

// ErrNoDefaultVPC is returned when the region has no default VPC.
var ErrNoDefaultVPC = errors.New("no default VPC found")

// errorCode returns the AWS API error code of err, or "".
func errorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

func errorMessage(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorMessage()
	}
	return ""
}

// IsNotFound reports whether err means the requested resource does not
// exist. CloudFormation signals a missing stack with a ValidationError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	switch errorCode(err) {
	case "NotFound", "NoSuchBucket", "NoSuchKey", "ParameterNotFound",
		"InvalidVpcID.NotFound", "InvalidInstanceID.NotFound", "404":
		return true
	case "ValidationError":
		return strings.Contains(errorMessage(err), "does not exist")
	}
	return false
}

// IsThrottling reports whether err is a rate limit error worth retrying.
func IsThrottling(err error) bool {
	switch errorCode(err) {
	case "Throttling", "ThrottlingException", "RequestLimitExceeded",
		"TooManyRequestsException", "RequestThrottled", "SlowDown":
		return true
	}
	return false
}

// IsNoUpdates reports whether err is CloudFormation's answer to an update
// that would not change anything.
func IsNoUpdates(err error) bool {
	return errorCode(err) == "ValidationError" &&
		strings.Contains(errorMessage(err), "No updates are to be performed")
}

// IsValidationError reports whether err is a CloudFormation ValidationError
// that is neither "not found" nor "no updates".
func IsValidationError(err error) bool {
	return errorCode(err) == "ValidationError" && !IsNotFound(err) && !IsNoUpdates(err)
}

// isBucketAlreadyOwned reports whether a CreateBucket error means we
// already have the bucket.
func isBucketAlreadyOwned(err error) bool {
	code := errorCode(err)
	return code == "BucketAlreadyOwnedByYou"
}
