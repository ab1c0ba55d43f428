package config

import "os"

// Source records where an environment value came from.
type Source string

const (
	// SourcePrimary means the CDK_DEPLOY_* variable was set.
	SourcePrimary Source = "primary"
	// SourceFallback means the CDK_DEFAULT_* variable was used.
	SourceFallback Source = "fallback"
	// SourceProvider means neither variable was set and the AWS SDK
	// default chain decides.
	SourceProvider Source = "provider-default"
)

// Environment is the deploy target. An empty Account or Region is not an
// error: it is resolved later by the AWS SDK (shared config, AWS_REGION,
// STS caller identity).
type Environment struct {
	Account       string
	Region        string
	AccountSource Source
	RegionSource  Source
}

// IsAgnostic reports whether both values are left to the provider.
func (e Environment) IsAgnostic() bool {
	return e.Account == "" && e.Region == ""
}

// ResolveEnvironment reads the deploy target from the process environment.
func ResolveEnvironment() Environment {
	return ResolveEnvironmentFrom(os.Getenv)
}

// ResolveEnvironmentFrom reads the deploy target using getenv.
// Each value is looked up in three steps: primary variable, fallback
// variable, then left empty for the provider.
func ResolveEnvironmentFrom(getenv func(string) string) Environment {
	account, accountSource := lookupWithFallback(getenv, EnvDeployAccount, EnvDefaultAccount)
	region, regionSource := lookupWithFallback(getenv, EnvDeployRegion, EnvDefaultRegion)
	return Environment{
		Account:       account,
		Region:        region,
		AccountSource: accountSource,
		RegionSource:  regionSource,
	}
}

func lookupWithFallback(getenv func(string) string, primary, fallback string) (string, Source) {
	if v := getenv(primary); v != "" {
		return v, SourcePrimary
	}
	if v := getenv(fallback); v != "" {
		return v, SourceFallback
	}
	return "", SourceProvider
}
