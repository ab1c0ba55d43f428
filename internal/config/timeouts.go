package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds the deploy-time wait and retry settings.
type Timeouts struct {
	Deploy            time.Duration // Timeout for stack create/update
	Destroy           time.Duration // Timeout for stack deletion
	PollInterval      time.Duration // Interval between stack status polls
	RetryMaxAttempts  int           // Retries for throttled API calls on top of the SDK retryer
	RetryInitialDelay time.Duration // Initial delay between retries
}

// LoadTimeouts loads timeout configuration from environment variables.
// Unset or unparsable variables fall back to defaults.
//
// Environment Variables:
//   - EC2STACK_TIMEOUT_DEPLOY (default: 30m)
//   - EC2STACK_TIMEOUT_DESTROY (default: 20m)
//   - EC2STACK_POLL_INTERVAL (default: 5s)
//   - EC2STACK_RETRY_MAX_ATTEMPTS (default: 0)
//   - EC2STACK_RETRY_INITIAL_DELAY (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		Deploy:            parseDuration("EC2STACK_TIMEOUT_DEPLOY", 30*time.Minute),
		Destroy:           parseDuration("EC2STACK_TIMEOUT_DESTROY", 20*time.Minute),
		PollInterval:      parseDuration("EC2STACK_POLL_INTERVAL", 5*time.Second),
		RetryMaxAttempts:  parseInt("EC2STACK_RETRY_MAX_ATTEMPTS", 0),
		RetryInitialDelay: parseDuration("EC2STACK_RETRY_INITIAL_DELAY", 1*time.Second),
	}
}

func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil || i < 0 {
		return defaultVal
	}
	return i
}
