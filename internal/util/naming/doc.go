// Package naming provides the fixed logical IDs, export names and file
// names used by the stack.
//
// Logical IDs are stable across synthesis runs so CloudFormation updates
// the existing resources instead of replacing them.
package naming
