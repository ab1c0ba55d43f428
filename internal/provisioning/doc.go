// Package provisioning provides shared types, interfaces, and orchestration
// for composing a stack.
//
// # Subpackages
//
//   - recipe/: the web VM recipe (network lookup, boot script, image,
//     traffic policy, instance and output phases)
//
// # Core Types
//
// Context carries configuration, the target environment, the stack being
// composed, lookups, and the observer.
// Phase defines a composition step with Name() and Provision() methods.
// State accumulates what each phase declared.
package provisioning
