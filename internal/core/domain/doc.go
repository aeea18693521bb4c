// Package domain defines the core business entities for Echo.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - File: A remote drive item returned by a search, tagged with its origin
//   - Container: A searchable storage unit (a SharePoint site or a drive)
//   - Session: The bearer token held for one request cycle
//   - QueryPlan: A decomposed user query (year, core intent, variants)
//   - TokenCache: The cached refresh credential for an account
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
