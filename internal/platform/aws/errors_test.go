package aws

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
)

func apiError(code, msg string) error {
	return &smithy.GenericAPIError{Code: code, Message: msg}
}

func TestErrorClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		notFound   bool
		throttle   bool
		noUpdates  bool
		validation bool
	}{
		{name: "nil", err: nil},
		{name: "plain error", err: errors.New("boom")},
		{name: "missing stack", err: apiError("ValidationError", "Stack with id foo does not exist"), notFound: true},
		{name: "no updates", err: apiError("ValidationError", "No updates are to be performed."), noUpdates: true},
		{name: "template error", err: apiError("ValidationError", "Template format error: unsupported structure"), validation: true},
		{name: "missing parameter", err: apiError("ParameterNotFound", ""), notFound: true},
		{name: "throttled", err: apiError("Throttling", "Rate exceeded"), throttle: true},
		{name: "ec2 throttled", err: apiError("RequestLimitExceeded", ""), throttle: true},
		{name: "wrapped", err: fmt.Errorf("describe: %w", apiError("ValidationError", "Stack with id x does not exist")), notFound: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.notFound, IsNotFound(tt.err), "IsNotFound")
			assert.Equal(t, tt.throttle, IsThrottling(tt.err), "IsThrottling")
			assert.Equal(t, tt.noUpdates, IsNoUpdates(tt.err), "IsNoUpdates")
			assert.Equal(t, tt.validation, IsValidationError(tt.err), "IsValidationError")
		})
	}
}
