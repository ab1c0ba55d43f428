package provisioning

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	accountRegex = regexp.MustCompile(`^\d{12}$`)
	regionRegex  = regexp.MustCompile(`^[a-z]{2}(-[a-z]+)+-\d$`)
)

// ValidationError represents a configuration validation error or warning.
type ValidationError struct {
	Field    string // Configuration field that failed validation
	Message  string // Human-readable error message
	Severity string // "error" or "warning"
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", ve.Severity, ve.Field, ve.Message)
}

// IsError returns true if this is an error (not a warning).
func (ve ValidationError) IsError() bool {
	return ve.Severity == "error"
}

// ValidationPhase checks the configuration and the resolved environment
// before anything is declared.
type ValidationPhase struct{}

// NewValidationPhase creates a new validation phase.
func NewValidationPhase() *ValidationPhase {
	return &ValidationPhase{}
}

// Name implements the Phase interface.
func (vp *ValidationPhase) Name() string {
	return "validation"
}

// Provision implements the Phase interface.
func (vp *ValidationPhase) Provision(ctx *Context) error {
	var errs []string
	for _, ve := range validate(ctx) {
		if !ve.IsError() {
			ctx.Observer.Event(Event{Type: EventValidationWarning, Phase: vp.Name(), Message: ve.Message, Resource: ve.Field})
			continue
		}
		ctx.Observer.Event(Event{Type: EventValidationError, Phase: vp.Name(), Message: ve.Message, Resource: ve.Field})
		errs = append(errs, ve.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func validate(ctx *Context) []ValidationError {
	var errs []ValidationError

	if ctx.Config == nil {
		return []ValidationError{{Field: "Config", Message: "configuration is required", Severity: "error"}}
	}
	if err := ctx.Config.Validate(); err != nil {
		errs = append(errs, ValidationError{Field: "Config", Message: err.Error(), Severity: "error"})
	}

	// The environment must be resolved before declarations start: lookups
	// are keyed by account and region. Its shape is left to AWS to judge.
	switch {
	case ctx.Env.Account == "":
		errs = append(errs, ValidationError{
			Field:    "Environment.Account",
			Message:  "account is not resolved",
			Severity: "error",
		})
	case !accountRegex.MatchString(ctx.Env.Account):
		errs = append(errs, ValidationError{
			Field:    "Environment.Account",
			Message:  fmt.Sprintf("account %q is not a 12 digit AWS account ID", ctx.Env.Account),
			Severity: "warning",
		})
	}

	switch {
	case ctx.Env.Region == "":
		errs = append(errs, ValidationError{
			Field:    "Environment.Region",
			Message:  "region is not resolved",
			Severity: "error",
		})
	case !regionRegex.MatchString(ctx.Env.Region):
		errs = append(errs, ValidationError{
			Field:    "Environment.Region",
			Message:  fmt.Sprintf("region %q does not look like an AWS region (e.g., 'us-east-1')", ctx.Env.Region),
			Severity: "warning",
		})
	}

	if ctx.Lookup == nil {
		errs = append(errs, ValidationError{
			Field:    "Lookup",
			Message:  "no VPC resolver configured",
			Severity: "error",
		})
	}

	return errs
}
