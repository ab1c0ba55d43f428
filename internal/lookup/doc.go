// Package lookup caches environment lookups (currently the default VPC)
// in a context file next to the project config, so repeated synthesis is
// deterministic and does not need AWS credentials.
package lookup
