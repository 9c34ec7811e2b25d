// Package shared provides utilities used across the cvmstd codebase
// that don't belong to any specific domain or architectural layer.
//
// # Structure
//
// - testutil: testing utilities, currently the slog capture handler
//   used to assert on structured log output
//
// # Usage Guidelines
//
// This package should only contain:
//
// 1. Test utilities used by multiple packages
// 2. Generic helper functions with no domain-specific logic
//
// It should NOT contain business logic, external dependencies beyond
// the standard library, or circular dependencies with other internal
// packages.
package shared
